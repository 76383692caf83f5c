package main

import (
	"fmt"
	"io/ioutil"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bobinette/knowledgehub"
	"github.com/bobinette/knowledgehub/content"
	"github.com/bobinette/knowledgehub/errors"
	"github.com/bobinette/knowledgehub/richtext"
	"github.com/bobinette/knowledgehub/views"
)

var (
	listCategory string
	listSearch   string
	listPage     int

	draftFlags articleFlags
)

// articleFlags are the flags shared by article new and article edit.
type articleFlags struct {
	title    string
	content  string
	file     string
	markdown bool
	summary  string
	category string
	tags     string
	status   string
	draft    bool
	styles   []string
	aiTitle  bool
	aiTags   bool
}

func (f *articleFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.title, "title", "", "title of the article")
	flags.StringVar(&f.content, "content", "", "content of the article, as an HTML fragment")
	flags.StringVar(&f.file, "file", "", "read the content from a file")
	flags.BoolVar(&f.markdown, "markdown", false, "convert the content from markdown")
	flags.StringVar(&f.summary, "summary", "", "summary, generated by the AI when empty")
	flags.StringVar(&f.category, "category", "", "category of the article")
	flags.StringVar(&f.tags, "tags", "", "comma separated tags")
	flags.StringVar(&f.status, "status", "", "PUBLISHED or DRAFT")
	flags.BoolVar(&f.draft, "draft", false, "save as a draft")
	flags.StringArrayVar(&f.styles, "style", nil, "editor command applied to the content, can be repeated")
	flags.BoolVar(&f.aiTitle, "ai-title", false, "let the AI suggest the title")
	flags.BoolVar(&f.aiTags, "ai-tags", false, "add the tags suggested by the AI")
}

// apply copies the flags into form. Unless all is set, only the flags given
// on the command line are applied.
func (f *articleFlags) apply(cmd *cobra.Command, form *views.ArticleForm, all bool) error {
	changed := func(name string) bool {
		return all || cmd.Flags().Changed(name)
	}

	if changed("title") {
		form.SetTitle(f.title)
	}
	if changed("summary") {
		form.SetSummary(f.summary)
	}
	if f.category != "" {
		c, err := knowledgehub.ParseCategory(f.category, false)
		if err != nil {
			return err
		}
		form.SetCategory(c)
	}
	if changed("tags") {
		form.SetTags(f.tags)
	}
	if f.status != "" {
		s, err := knowledgehub.ParseStatus(f.status)
		if err != nil {
			return err
		}
		form.SetStatus(s)
	}
	if f.draft {
		form.SetStatus(knowledgehub.StatusDraft)
	}

	if f.file != "" || changed("content") {
		html := f.content
		if f.file != "" {
			data, err := ioutil.ReadFile(f.file)
			if err != nil {
				return err
			}
			html = string(data)
		}
		if f.markdown {
			html = content.FromMarkdown([]byte(html))
		}
		form.SetContent(html)
	}

	if len(f.styles) > 0 {
		editor := form.NewEditor(&richtext.Buffer{})
		for _, name := range f.styles {
			if err := editor.Exec(name); err != nil {
				return errors.New(err.Error(), errors.BadRequest())
			}
		}
	}
	return nil
}

// assist runs the AI helpers asked for on the command line. Their failures
// are shown but do not stop the command.
func (f *articleFlags) assist(cmd *cobra.Command, form *views.ArticleForm) {
	ctx := cmd.Context()
	if f.aiTitle {
		if err := form.SuggestTitle(ctx); err != nil {
			app.Logger.Debugf("title suggestion: %v", err)
		}
	}
	if f.aiTags {
		tags, err := form.SuggestTags(ctx)
		if err != nil {
			app.Logger.Debugf("tag suggestion: %v", err)
		}
		for _, tag := range tags {
			form.ApplyTag(tag)
		}
	}
}

var formFieldOrder = []string{
	views.FieldTitle,
	views.FieldContent,
	views.FieldSummary,
	views.FieldCategory,
	views.FieldTags,
	views.FieldStatus,
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, errors.New(fmt.Sprintf("invalid article id %q", s), errors.BadRequest())
	}
	return id, nil
}

func init() {
	ArticlesCommand.Flags().StringVar(&listCategory, "category", "", "only list articles of this category")
	ArticlesCommand.Flags().StringVar(&listSearch, "search", "", "only list articles matching this search")
	ArticlesCommand.Flags().IntVar(&listPage, "page", 1, "page to show, starting at 1")

	draftFlags.register(&ArticleNewCommand)
	draftFlags.register(&ArticleEditCommand)

	ArticleCommand.AddCommand(&ArticleShowCommand)
	ArticleCommand.AddCommand(&ArticleNewCommand)
	ArticleCommand.AddCommand(&ArticleEditCommand)
	ArticleCommand.AddCommand(&ArticleDeleteCommand)

	RootCmd.AddCommand(&ArticlesCommand)
	RootCmd.AddCommand(&ArticleCommand)
}

type listOutput struct {
	Articles      []knowledgehub.Article `json:"articles" yaml:"articles"`
	Page          int                    `json:"page" yaml:"page"`
	TotalPages    int                    `json:"totalPages" yaml:"totalPages"`
	TotalElements int                    `json:"totalElements" yaml:"totalElements"`
	Category      knowledgehub.Category  `json:"category" yaml:"category"`
	Search        string                 `json:"search,omitempty" yaml:"search,omitempty"`
}

var ArticlesCommand = cobra.Command{
	Use:   "articles",
	Short: "List the published articles",
	Long:  "List the published articles, filtered by category and search",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		category := knowledgehub.AllCategories
		if listCategory != "" {
			c, err := knowledgehub.ParseCategory(listCategory, true)
			if err != nil {
				return err
			}
			category = c
		}

		return showHome(cmd, category, listSearch, listPage-1)
	},
}

func showHome(cmd *cobra.Command, category knowledgehub.Category, search string, page int) error {
	home := views.NewHome(app.Articles, app.Logger)
	if err := home.Open(cmd.Context(), category, search, page); err != nil {
		app.Notifier.Error(errors.UserMessage(err, "Failed to load articles"))
		return reported(err)
	}

	state := home.State()
	if app.Structured() {
		return app.Encode(listOutput{
			Articles:      state.Articles,
			Page:          state.Page + 1,
			TotalPages:    state.TotalPages,
			TotalElements: state.TotalElements,
			Category:      state.Category,
			Search:        state.Search,
		})
	}

	app.Renderer.Home(state)
	return nil
}

var ArticleCommand = cobra.Command{
	Use:   "article",
	Short: "Read and write articles",
	Long:  "Read, write, edit and delete articles",
}

var ArticleShowCommand = cobra.Command{
	Use:   "show <id>",
	Short: "Show an article",
	Long:  "Show an article with its summary and tags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return showArticle(cmd, id)
	},
}

func showArticle(cmd *cobra.Command, id int) error {
	detail := views.NewDetail(app.Articles, app.Session, app.Notifier, app.Navigator)
	if err := detail.Load(cmd.Context(), id); err != nil {
		return reported(err)
	}

	article, _ := detail.Article()
	if app.Structured() {
		return app.Encode(article)
	}
	app.Renderer.Article(article, detail.IsAuthor())
	return nil
}

var ArticleNewCommand = cobra.Command{
	Use:   "new",
	Short: "Write an article",
	Long:  "Write an article. The summary is generated by the AI when none is given",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(views.RouteNew.Pattern); err != nil {
			return err
		}

		form := views.NewCreateForm(app.Articles, app.Assistant, app.Notifier, app.Navigator, app.Logger)
		if err := draftFlags.apply(cmd, form.ArticleForm, true); err != nil {
			return err
		}
		draftFlags.assist(cmd, form.ArticleForm)

		article, err := form.Submit(cmd.Context())
		if err != nil {
			return fieldErrors(err, "", formFieldOrder)
		}
		return showSaved(article)
	},
}

var ArticleEditCommand = cobra.Command{
	Use:   "edit <id>",
	Short: "Edit one of your articles",
	Long:  "Edit one of your articles. Only the flags given are changed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		form := views.NewEditForm(id, app.Articles, app.Assistant, app.Session, app.Notifier, app.Navigator, app.Logger)
		if err := form.Load(cmd.Context()); err != nil {
			return reported(err)
		}
		if err := draftFlags.apply(cmd, form.ArticleForm, false); err != nil {
			return err
		}
		draftFlags.assist(cmd, form.ArticleForm)

		article, err := form.Submit(cmd.Context())
		if err != nil {
			return fieldErrors(err, "", formFieldOrder)
		}
		return showSaved(article)
	},
}

func showSaved(article knowledgehub.Article) error {
	if app.Structured() {
		return app.Encode(article)
	}
	fmt.Fprintln(app.out, app.Renderer.Card(article))
	if path := app.Navigator.Last(); path != "" {
		app.Notifier.Info("Open it with: khub open " + path)
	}
	return nil
}

var ArticleDeleteCommand = cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one of your articles",
	Long:  "Delete one of your articles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		detail := views.NewDetail(app.Articles, app.Session, app.Notifier, app.Navigator)
		if err := detail.Load(cmd.Context(), id); err != nil {
			return reported(err)
		}
		if !detail.IsAuthor() {
			app.Notifier.Error("You are not authorized to delete this article")
			return reported(errors.New("not the author of the article", errors.Forbidden()))
		}
		if err := detail.Delete(cmd.Context()); err != nil {
			return reported(err)
		}
		return nil
	},
}

// requireSession fails with a notice when path needs a session and there is
// none.
func requireSession(path string) error {
	_, redirect, err := views.Guard(path, app.Session)
	if err != nil {
		return err
	}
	if redirect != "" {
		app.Notifier.Error("Please sign in first: khub login")
		app.Navigator.Navigate(redirect)
		return reported(errors.New("not signed in", errors.Unauthorized()))
	}
	return nil
}
