package views

import (
	"context"
	"sync"

	"github.com/bobinette/knowledgehub"
	"github.com/bobinette/knowledgehub/errors"
)

// Detail shows one article.
type Detail struct {
	articles  knowledgehub.ArticleService
	session   Session
	notifier  Notifier
	navigator Navigator

	mu       sync.Mutex
	article  knowledgehub.Article
	loaded   bool
	loading  bool
	deleting bool
}

func NewDetail(articles knowledgehub.ArticleService, session Session, notifier Notifier, navigator Navigator) *Detail {
	return &Detail{
		articles:  articles,
		session:   session,
		notifier:  notifier,
		navigator: navigator,
	}
}

// Load fetches the article. A failure sends the user back home.
func (d *Detail) Load(ctx context.Context, id int) error {
	d.mu.Lock()
	d.loading = true
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.loading = false
		d.mu.Unlock()
	}()

	article, err := d.articles.Get(ctx, id)
	if err != nil {
		d.notifier.Error("Article not found")
		d.navigator.Navigate(RouteHome.Pattern)
		return err
	}

	d.mu.Lock()
	d.article = article
	d.loaded = true
	d.mu.Unlock()
	return nil
}

func (d *Detail) Article() (knowledgehub.Article, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.article, d.loaded
}

// IsAuthor reports whether the signed-in user wrote the loaded article.
func (d *Detail) IsAuthor() bool {
	user, ok := d.session.Current()
	if !ok {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loaded && d.article.Author.ID == user.ID
}

func (d *Detail) Deleting() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.deleting
}

// Delete deletes the loaded article and goes to the dashboard.
func (d *Detail) Delete(ctx context.Context) error {
	d.mu.Lock()
	if !d.loaded {
		d.mu.Unlock()
		return errors.New("no article loaded", errors.BadRequest())
	}
	id := d.article.ID
	d.deleting = true
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.deleting = false
		d.mu.Unlock()
	}()

	if err := d.articles.Delete(ctx, id); err != nil {
		d.notifier.Error(errors.UserMessage(err, "Failed to delete article"))
		return err
	}

	d.notifier.Success("Article deleted successfully")
	d.navigator.Navigate(RouteDashboard.Pattern)
	return nil
}
