package main

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bobinette/knowledgehub"
	"github.com/bobinette/knowledgehub/errors"
	"github.com/bobinette/knowledgehub/views"
)

func init() {
	RootCmd.AddCommand(&OpenCommand)
}

var OpenCommand = cobra.Command{
	Use:   "open <path>",
	Short: "Open a page of the site",
	Long:  "Open a page of the site by its path, e.g. /articles/12 or /dashboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		m, redirect, err := views.Guard(path, app.Session)
		if err != nil {
			return err
		}
		if redirect != "" {
			app.Notifier.Error("Please sign in to open " + path)
			app.Navigator.Navigate(redirect)
			return reported(errors.New("not signed in", errors.Unauthorized()))
		}

		switch m.Route {
		case views.RouteHome:
			return openHome(cmd, path)
		case views.RouteArticle:
			id, err := parseID(m.Params["id"])
			if err != nil {
				return err
			}
			return showArticle(cmd, id)
		case views.RouteEdit:
			id, err := parseID(m.Params["id"])
			if err != nil {
				return err
			}
			return openEdit(cmd, id)
		case views.RouteNew:
			app.Notifier.Info("Write an article with: khub article new --title <title> --content <content>")
			return nil
		case views.RouteDashboard:
			dashboard, err := loadDashboard(cmd)
			if err != nil {
				return err
			}
			return showDashboard(dashboard)
		case views.RouteLogin:
			app.Notifier.Info("Sign in with: khub login --email <email>")
			return nil
		case views.RouteSignup:
			app.Notifier.Info("Create an account with: khub signup --username <name> --email <email>")
			return nil
		}

		app.Notifier.Error("Page not found")
		return reported(errors.New(fmt.Sprintf("no page at %s", path), errors.NotFound()))
	},
}

// openHome reads the filters of the home page from the query string.
func openHome(cmd *cobra.Command, path string) error {
	u, err := url.Parse(path)
	if err != nil {
		return errors.New("invalid path", errors.WithCause(err), errors.BadRequest())
	}
	q := u.Query()

	category := knowledgehub.AllCategories
	if v := q.Get("category"); v != "" {
		c, err := knowledgehub.ParseCategory(v, true)
		if err != nil {
			return err
		}
		category = c
	}

	// Pages start at 1, as with articles --page.
	page := 1
	if v := q.Get("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 {
			return errors.New(fmt.Sprintf("invalid page %q", v), errors.BadRequest())
		}
		page = p
	}

	return showHome(cmd, category, q.Get("search"), page-1)
}

type draftOutput struct {
	ID       int                   `json:"id" yaml:"id"`
	Title    string                `json:"title" yaml:"title"`
	Content  string                `json:"content" yaml:"content"`
	Summary  string                `json:"summary" yaml:"summary"`
	Category knowledgehub.Category `json:"category" yaml:"category"`
	Tags     string                `json:"tags" yaml:"tags"`
	Status   knowledgehub.Status   `json:"status" yaml:"status"`
}

// openEdit shows the article as loaded in the edit form.
func openEdit(cmd *cobra.Command, id int) error {
	form := views.NewEditForm(id, app.Articles, app.Assistant, app.Session, app.Notifier, app.Navigator, app.Logger)
	if err := form.Load(cmd.Context()); err != nil {
		return reported(err)
	}

	d := form.Draft()
	if app.Structured() {
		return app.Encode(draftOutput{
			ID:       id,
			Title:    d.Title,
			Content:  d.Content,
			Summary:  d.Summary,
			Category: d.Category,
			Tags:     d.Tags,
			Status:   d.Status,
		})
	}

	app.Renderer.Article(knowledgehub.Article{
		ID:       id,
		Title:    d.Title,
		Content:  d.Content,
		Summary:  d.Summary,
		Category: d.Category,
		Tags:     d.Tags,
		Status:   d.Status,
	}, true)
	return nil
}
