package log

import (
	"io"
	"io/ioutil"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Print(...interface{})
	Printf(string, ...interface{})
	Debugf(string, ...interface{})
	Warnf(string, ...interface{})
	Error(...interface{})
	Errorf(string, ...interface{})
	Fatal(...interface{})
	Fatalf(string, ...interface{})

	WithField(key string, value interface{}) Logger
}

type logger struct {
	*logrus.Entry
}

// New creates a logger writing to stderr. The prod environment logs json at
// info level, every other environment logs text at debug level.
func New(env string) Logger {
	l := logrus.New()

	if env == "prod" {
		l.Formatter = &logrus.JSONFormatter{}
		l.Level = logrus.InfoLevel
	} else {
		l.Formatter = &logrus.TextFormatter{}
		l.Level = logrus.DebugLevel
	}

	return logger{l.WithField("env", env)}
}

// NewWithOutput is New with the output redirected to w and the level forced
// to level ("debug", "info", "warn", "error").
func NewWithOutput(env string, w io.Writer, level string) Logger {
	l := New(env).(logger)
	l.Logger.Out = w

	if lvl, err := logrus.ParseLevel(level); err == nil {
		l.Logger.Level = lvl
	}

	return l
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	l := logrus.New()
	l.Out = ioutil.Discard
	return logger{logrus.NewEntry(l)}
}

func (l logger) Print(args ...interface{}) {
	l.Println(args...)
}

func (l logger) Error(args ...interface{}) {
	l.Errorln(args...)
}

func (l logger) Fatal(args ...interface{}) {
	l.Fatalln(args...)
}

func (l logger) WithField(key string, value interface{}) Logger {
	return logger{l.Entry.WithField(key, value)}
}
