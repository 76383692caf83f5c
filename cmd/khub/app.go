package main

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/bobinette/knowledgehub"
	"github.com/bobinette/knowledgehub/bolt"
	"github.com/bobinette/knowledgehub/clients"
	"github.com/bobinette/knowledgehub/clients/ai"
	"github.com/bobinette/knowledgehub/clients/article"
	"github.com/bobinette/knowledgehub/clients/auth"
	"github.com/bobinette/knowledgehub/inmem"
	"github.com/bobinette/knowledgehub/log"
	"github.com/bobinette/knowledgehub/render"
	"github.com/bobinette/knowledgehub/session"
)

// App holds everything a command needs. It is built once per run.
type App struct {
	Logger    log.Logger
	Session   *session.Service
	Articles  knowledgehub.ArticleService
	Assistant knowledgehub.Assistant
	Renderer  *render.Renderer
	Notifier  *Notifier
	Navigator *Navigator
	Format    string

	out   io.Writer
	close func() error
}

func NewApp(cfg Configuration, format string, out, errOut io.Writer, logger log.Logger) (*App, error) {
	storage, closeStorage, err := openStorage(cfg.Session.Store)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.API.Timeout.Duration}
	tokens := session.StorageTokens{Storage: storage}
	client, err := clients.NewClient(httpClient, cfg.API.BaseURL, tokens, logger)
	if err != nil {
		closeStorage()
		return nil, err
	}

	sessionService := session.NewService(storage, auth.NewClient(client), logger)
	if err := sessionService.Restore(); err != nil {
		closeStorage()
		return nil, err
	}

	color := cfg.Color() && format == render.FormatText
	return &App{
		Logger:    logger,
		Session:   sessionService,
		Articles:  article.NewClient(client),
		Assistant: ai.NewClient(client),
		Renderer:  render.New(out, color),
		Notifier:  &Notifier{renderer: render.New(errOut, color)},
		Navigator: &Navigator{logger: logger},
		Format:    format,
		out:       out,
		close:     closeStorage,
	}, nil
}

func openStorage(store string) (knowledgehub.KeyValueStore, func() error, error) {
	if store == StoreMemory {
		return inmem.NewStore(), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(store), 0700); err != nil {
		return nil, nil, err
	}

	driver := &bolt.Driver{}
	if err := driver.Open(store); err != nil {
		return nil, nil, err
	}
	return &bolt.SessionStore{Driver: driver}, driver.Close, nil
}

// Structured reports whether the output is json or yaml.
func (a *App) Structured() bool {
	return a.Format != render.FormatText
}

// Encode writes v in the structured output format.
func (a *App) Encode(v interface{}) error {
	return render.Encode(a.out, a.Format, v)
}

func (a *App) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}
