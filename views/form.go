package views

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bobinette/knowledgehub"
	"github.com/bobinette/knowledgehub/content"
	"github.com/bobinette/knowledgehub/errors"
	"github.com/bobinette/knowledgehub/log"
	"github.com/bobinette/knowledgehub/richtext"
)

// MinContentLength is the minimum number of characters of article content,
// markup excluded.
const MinContentLength = 10

const (
	FieldTitle    = "title"
	FieldContent  = "content"
	FieldSummary  = "summary"
	FieldCategory = "category"
	FieldTags     = "tags"
	FieldStatus   = "status"
)

// Draft is the content of an article form.
type Draft struct {
	Title    string
	Content  string
	Summary  string
	Category knowledgehub.Category
	Tags     string
	Status   knowledgehub.Status
}

func NewDraft() Draft {
	return Draft{
		Category: knowledgehub.CategoryTech,
		Status:   knowledgehub.StatusPublished,
	}
}

func (d Draft) Input() knowledgehub.ArticleInput {
	return knowledgehub.ArticleInput{
		Title:    d.Title,
		Content:  d.Content,
		Summary:  d.Summary,
		Category: d.Category,
		Tags:     d.Tags,
		Status:   d.Status,
	}
}

// Validate returns the field errors of the draft, nil when it can be saved.
func (d Draft) Validate() errors.Fields {
	errs := errors.Fields{}
	if strings.TrimSpace(d.Title) == "" {
		errs[FieldTitle] = "Title is required"
	}
	if content.TextLength(d.Content) < MinContentLength {
		errs[FieldContent] = fmt.Sprintf("Content must be at least %d characters", MinContentLength)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ArticleForm is the part shared by the create and edit forms: the draft,
// its validation, and the AI assist.
type ArticleForm struct {
	articles  knowledgehub.ArticleService
	assistant knowledgehub.Assistant
	notifier  Notifier
	navigator Navigator
	logger    log.Logger

	mu         sync.Mutex
	draft      Draft
	errs       errors.Fields
	submitting bool
	assisting  bool
	onContent  func(string)
}

func newArticleForm(articles knowledgehub.ArticleService, assistant knowledgehub.Assistant, notifier Notifier, navigator Navigator, logger log.Logger) *ArticleForm {
	return &ArticleForm{
		articles:  articles,
		assistant: assistant,
		notifier:  notifier,
		navigator: navigator,
		logger:    logger,
		draft:     NewDraft(),
		errs:      errors.Fields{},
	}
}

func (f *ArticleForm) SetTitle(v string) {
	f.set(FieldTitle, func(d *Draft) { d.Title = v })
}

func (f *ArticleForm) SetSummary(v string) {
	f.set(FieldSummary, func(d *Draft) { d.Summary = v })
}

func (f *ArticleForm) SetCategory(v knowledgehub.Category) {
	f.set(FieldCategory, func(d *Draft) { d.Category = v })
}

func (f *ArticleForm) SetTags(v string) {
	f.set(FieldTags, func(d *Draft) { d.Tags = v })
}

func (f *ArticleForm) SetStatus(v knowledgehub.Status) {
	f.set(FieldStatus, func(d *Draft) { d.Status = v })
}

// SetContent changes the content. A bound editor is told about the new
// value.
func (f *ArticleForm) SetContent(v string) {
	f.set(FieldContent, func(d *Draft) { d.Content = v })

	f.mu.Lock()
	onContent := f.onContent
	f.mu.Unlock()
	if onContent != nil {
		onContent(v)
	}
}

// set changes a field of the draft and clears the error on that field.
func (f *ArticleForm) set(field string, change func(*Draft)) {
	f.mu.Lock()
	defer f.mu.Unlock()

	change(&f.draft)
	delete(f.errs, field)
}

// NewEditor binds a rich text editor over surface to the content field.
func (f *ArticleForm) NewEditor(surface richtext.Surface) *richtext.Editor {
	editor := richtext.NewEditor(surface, f.SetContent)

	f.mu.Lock()
	f.onContent = editor.SetValue
	current := f.draft.Content
	f.mu.Unlock()

	editor.SetValue(current)
	return editor
}

// ApplyTag adds tag to the tags of the draft, unless it is already there.
func (f *ArticleForm) ApplyTag(tag string) {
	f.mu.Lock()
	tags := knowledgehub.AddTag(f.draft.Tags, tag)
	unchanged := tags == f.draft.Tags
	f.mu.Unlock()

	if !unchanged {
		f.SetTags(tags)
	}
}

func (f *ArticleForm) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Errors returns a copy of the current field errors.
func (f *ArticleForm) Errors() errors.Fields {
	f.mu.Lock()
	defer f.mu.Unlock()

	errs := errors.Fields{}
	for k, v := range f.errs {
		errs[k] = v
	}
	return errs
}

func (f *ArticleForm) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

func (f *ArticleForm) setDraft(d Draft) {
	f.mu.Lock()
	f.draft = d
	f.errs = errors.Fields{}
	onContent := f.onContent
	f.mu.Unlock()

	if onContent != nil {
		onContent(d.Content)
	}
}

// submit validates the draft, fills a blank summary with the assistant and
// saves it with save. fallback is the notice used when save fails without a
// server message.
func (f *ArticleForm) submit(ctx context.Context, save func(context.Context, knowledgehub.ArticleInput) (knowledgehub.Article, error), fallback string) (knowledgehub.Article, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return knowledgehub.Article{}, errors.New("already submitting", errors.BadRequest())
	}

	draft := f.draft
	if errs := draft.Validate(); errs != nil {
		f.errs = errs
		f.mu.Unlock()
		f.notifier.Error("Please fix the errors before submitting")
		return knowledgehub.Article{}, errs
	}
	f.submitting = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	input := draft.Input()
	if strings.TrimSpace(input.Summary) == "" {
		summary, err := f.assistant.GenerateSummary(ctx, draft.Content, draft.Title)
		if err != nil {
			f.logger.Warnf("could not generate summary: %v", err)
			f.notifier.Error("AI summary failed, but continuing...")
			input.Summary = ""
		} else {
			input.Summary = summary
			f.SetSummary(summary)
			f.notifier.Success("AI summary generated!")
		}
	}

	article, err := save(ctx, input)
	if err != nil {
		f.notifier.Error(errors.UserMessage(err, fallback))
		return knowledgehub.Article{}, err
	}
	return article, nil
}

// assist runs one assistant call. Calls need some content and run one at a
// time. failure is the notice shown when the call fails.
func (f *ArticleForm) assist(failure string, call func(Draft) error) error {
	f.mu.Lock()
	if f.assisting {
		f.mu.Unlock()
		return errors.New("an assist call is already running", errors.BadRequest())
	}
	draft := f.draft
	if content.TextLength(draft.Content) == 0 {
		f.mu.Unlock()
		f.notifier.Info("Write some content first")
		return errors.New("no content to work on", errors.BadRequest())
	}
	f.assisting = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.assisting = false
		f.mu.Unlock()
	}()

	if err := call(draft); err != nil {
		f.logger.Warnf("assist call failed: %v", err)
		f.notifier.Error(failure)
		return err
	}
	return nil
}

// ImproveContent rewrites the content in mode, clarity by default.
func (f *ArticleForm) ImproveContent(ctx context.Context, mode string) error {
	return f.assist("AI improvement failed", func(d Draft) error {
		improved, err := f.assistant.Improve(ctx, d.Content, mode)
		if err != nil {
			return err
		}
		f.SetContent(improved)
		f.notifier.Success("Content improved!")
		return nil
	})
}

func (f *ArticleForm) SuggestTitle(ctx context.Context) error {
	return f.assist("AI title suggestion failed", func(d Draft) error {
		title, err := f.assistant.SuggestTitle(ctx, d.Content)
		if err != nil {
			return err
		}
		f.SetTitle(title)
		f.notifier.Success("Title suggested!")
		return nil
	})
}

func (f *ArticleForm) GenerateSummary(ctx context.Context) error {
	return f.assist("AI summary failed", func(d Draft) error {
		summary, err := f.assistant.GenerateSummary(ctx, d.Content, d.Title)
		if err != nil {
			return err
		}
		f.SetSummary(summary)
		f.notifier.Success("Summary generated!")
		return nil
	})
}

// SuggestTags returns tags for the draft. They are not applied: pick them
// with ApplyTag.
func (f *ArticleForm) SuggestTags(ctx context.Context) ([]string, error) {
	var tags []string
	err := f.assist("AI tag suggestion failed", func(d Draft) error {
		suggested, err := f.assistant.SuggestTags(ctx, d.Content, d.Category)
		if err != nil {
			return err
		}
		tags = suggested
		return nil
	})
	return tags, err
}

// CreateForm writes a new article.
type CreateForm struct {
	*ArticleForm
}

func NewCreateForm(articles knowledgehub.ArticleService, assistant knowledgehub.Assistant, notifier Notifier, navigator Navigator, logger log.Logger) *CreateForm {
	return &CreateForm{
		ArticleForm: newArticleForm(articles, assistant, notifier, navigator, logger),
	}
}

// Submit creates the article and goes to its page.
func (f *CreateForm) Submit(ctx context.Context) (knowledgehub.Article, error) {
	article, err := f.submit(ctx, f.articles.Create, "Failed to create article")
	if err != nil {
		return article, err
	}

	f.notifier.Success("Article published successfully!")
	f.navigator.Navigate(articlePath(article.ID))
	return article, nil
}

// EditForm edits an existing article of the signed-in user.
type EditForm struct {
	*ArticleForm

	id      int
	session Session

	loadMu  sync.Mutex
	loading bool
	loaded  bool
}

func NewEditForm(id int, articles knowledgehub.ArticleService, assistant knowledgehub.Assistant, session Session, notifier Notifier, navigator Navigator, logger log.Logger) *EditForm {
	return &EditForm{
		ArticleForm: newArticleForm(articles, assistant, notifier, navigator, logger),
		id:          id,
		session:     session,
	}
}

func (f *EditForm) ID() int { return f.id }

// Load fetches the article and fills the draft with it. Only its author can
// edit an article: anybody else is sent back home and the draft is left
// empty.
func (f *EditForm) Load(ctx context.Context) error {
	f.setLoading(true)
	defer f.setLoading(false)

	user, ok := f.session.Current()
	if !ok {
		f.notifier.Error("Please sign in to edit articles")
		f.navigator.Navigate(RouteLogin.Pattern)
		return errors.New("not signed in", errors.Unauthorized())
	}

	article, err := f.articles.Get(ctx, f.id)
	if err != nil {
		f.notifier.Error("Article not found")
		f.navigator.Navigate(RouteHome.Pattern)
		return err
	}

	if article.Author.ID != user.ID {
		f.notifier.Error("You are not authorized to edit this article")
		f.navigator.Navigate(RouteHome.Pattern)
		return errors.New("not the author of the article", errors.Forbidden())
	}

	d := NewDraft()
	d.Title = article.Title
	d.Content = article.Content
	d.Summary = article.Summary
	d.Tags = article.Tags
	if article.Category != "" {
		d.Category = article.Category
	}
	if article.Status != "" {
		d.Status = article.Status
	}
	f.setDraft(d)

	f.loadMu.Lock()
	f.loaded = true
	f.loadMu.Unlock()
	return nil
}

func (f *EditForm) Loading() bool {
	f.loadMu.Lock()
	defer f.loadMu.Unlock()
	return f.loading
}

// Submit replaces the article with the draft and goes to its page.
func (f *EditForm) Submit(ctx context.Context) (knowledgehub.Article, error) {
	f.loadMu.Lock()
	loaded := f.loaded
	f.loadMu.Unlock()
	if !loaded {
		return knowledgehub.Article{}, errors.New("article is not loaded", errors.BadRequest())
	}

	update := func(ctx context.Context, input knowledgehub.ArticleInput) (knowledgehub.Article, error) {
		return f.articles.Update(ctx, f.id, input)
	}
	article, err := f.submit(ctx, update, "Failed to update article")
	if err != nil {
		return article, err
	}

	f.notifier.Success("Article updated successfully!")
	f.navigator.Navigate(articlePath(f.id))
	return article, nil
}

func (f *EditForm) setLoading(loading bool) {
	f.loadMu.Lock()
	defer f.loadMu.Unlock()
	f.loading = loading
}

func articlePath(id int) string {
	return fmt.Sprintf("/articles/%d", id)
}
