package views

import (
	"context"
	"fmt"
	"sync"

	"github.com/bobinette/knowledgehub"
	"github.com/bobinette/knowledgehub/errors"
)

// StatusAll is the dashboard filter showing every article.
const StatusAll knowledgehub.Status = "ALL"

type DashboardStats struct {
	Total     int `json:"total" yaml:"total"`
	Published int `json:"published" yaml:"published"`
	Drafts    int `json:"drafts" yaml:"drafts"`
}

// Dashboard lists the articles of the signed-in user.
type Dashboard struct {
	articles knowledgehub.ArticleService
	notifier Notifier

	mu       sync.Mutex
	all      []knowledgehub.Article
	filter   knowledgehub.Status
	loading  bool
	deleting int
}

func NewDashboard(articles knowledgehub.ArticleService, notifier Notifier) *Dashboard {
	return &Dashboard{
		articles: articles,
		notifier: notifier,
		all:      make([]knowledgehub.Article, 0),
		filter:   StatusAll,
	}
}

func (d *Dashboard) Load(ctx context.Context) error {
	d.setLoading(true)
	defer d.setLoading(false)

	articles, err := d.articles.Mine(ctx)
	if err != nil {
		d.notifier.Error("Failed to load your articles")
		return err
	}
	if articles == nil {
		articles = make([]knowledgehub.Article, 0)
	}

	d.mu.Lock()
	d.all = articles
	d.mu.Unlock()
	return nil
}

// SetFilter shows only the articles with status, or all of them for
// StatusAll.
func (d *Dashboard) SetFilter(status knowledgehub.Status) error {
	switch status {
	case StatusAll, knowledgehub.StatusPublished, knowledgehub.StatusDraft:
	default:
		return errors.New(fmt.Sprintf("unknown status filter %q", status), errors.BadRequest())
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.filter = status
	return nil
}

func (d *Dashboard) Filter() knowledgehub.Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.filter
}

// Articles returns the loaded articles matching the filter.
func (d *Dashboard) Articles() []knowledgehub.Article {
	d.mu.Lock()
	defer d.mu.Unlock()

	articles := make([]knowledgehub.Article, 0, len(d.all))
	for _, a := range d.all {
		if d.filter == StatusAll || a.Status == d.filter {
			articles = append(articles, a)
		}
	}
	return articles
}

// Stats counts over every loaded article, whatever the filter.
func (d *Dashboard) Stats() DashboardStats {
	d.mu.Lock()
	defer d.mu.Unlock()

	stats := DashboardStats{Total: len(d.all)}
	for _, a := range d.all {
		switch a.Status {
		case knowledgehub.StatusPublished:
			stats.Published++
		case knowledgehub.StatusDraft:
			stats.Drafts++
		}
	}
	return stats
}

func (d *Dashboard) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

// Deleting returns the id of the article being deleted, 0 if none.
func (d *Dashboard) Deleting() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.deleting
}

// Delete deletes the article and removes it from the list.
func (d *Dashboard) Delete(ctx context.Context, id int) error {
	d.mu.Lock()
	d.deleting = id
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.deleting = 0
		d.mu.Unlock()
	}()

	if err := d.articles.Delete(ctx, id); err != nil {
		d.notifier.Error(errors.UserMessage(err, "Failed to delete"))
		return err
	}

	d.mu.Lock()
	kept := make([]knowledgehub.Article, 0, len(d.all))
	for _, a := range d.all {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	d.all = kept
	d.mu.Unlock()

	d.notifier.Success("Article deleted")
	return nil
}

func (d *Dashboard) setLoading(loading bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = loading
}
