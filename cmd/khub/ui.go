package main

import (
	"sync"

	"github.com/bobinette/knowledgehub/log"
	"github.com/bobinette/knowledgehub/render"
)

// Notifier prints notices on stderr.
type Notifier struct {
	renderer *render.Renderer
}

func (n *Notifier) Success(msg string) { n.renderer.Notice("success", msg) }
func (n *Notifier) Error(msg string)   { n.renderer.Notice("error", msg) }
func (n *Notifier) Info(msg string)    { n.renderer.Notice("info", msg) }

// Navigator remembers where the views asked to go. Commands follow it when
// it makes sense, e.g. to show an article once saved.
type Navigator struct {
	logger log.Logger

	mu   sync.Mutex
	last string
}

func (n *Navigator) Navigate(path string) {
	n.logger.WithField("path", path).Debugf("navigate")

	n.mu.Lock()
	defer n.mu.Unlock()
	n.last = path
}

func (n *Navigator) Last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}
