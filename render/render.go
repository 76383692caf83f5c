// Package render draws the view-models on a terminal and encodes them as
// json or yaml.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/bobinette/knowledgehub"
	"github.com/bobinette/knowledgehub/content"
	"github.com/bobinette/knowledgehub/views"
)

// CardTags is the number of tags shown on a card.
const CardTags = 3

const noSummary = "No summary provided for this article..."

type Renderer struct {
	w      io.Writer
	styles Styles
	now    func() time.Time
}

func New(w io.Writer, color bool) *Renderer {
	return &Renderer{
		w:      w,
		styles: NewStyles(color),
		now:    time.Now,
	}
}

func (r *Renderer) println(s string) {
	fmt.Fprintln(r.w, s)
}

// Card renders the summary of an article shown in lists.
func (r *Renderer) Card(a knowledgehub.Article) string {
	meta := r.styles.Badge(a.Category)
	if a.Summary != "" {
		meta += " " + r.styles.AIBadge.Render("* AI Summary")
	}

	lines := []string{
		meta,
		r.styles.Title.Render(fmt.Sprintf("#%d %s", a.ID, a.Title)),
	}
	if tags := knowledgehub.FirstTags(a.Tags, CardTags); len(tags) > 0 {
		lines = append(lines, r.tags(tags))
	}

	summary := a.Summary
	if summary == "" {
		summary = noSummary
	}
	lines = append(lines,
		summary,
		r.styles.Muted.Render(fmt.Sprintf("%s %s · %s", initial(a.Author.Username), a.Author.Username, r.relative(a.CreatedAt))),
	)

	return r.styles.Card.Render(strings.Join(lines, "\n"))
}

// Home renders the article list with its filters and pagination.
func (r *Renderer) Home(state views.HomeState) {
	var filters []string
	if state.Category != "" && state.Category != knowledgehub.AllCategories {
		filters = append(filters, "category "+string(state.Category))
	}
	if state.Search != "" {
		filters = append(filters, fmt.Sprintf("search %q", state.Search))
	}
	if len(filters) > 0 {
		r.println(r.styles.Muted.Render("Filtered by " + strings.Join(filters, ", ")))
	}

	if len(state.Articles) == 0 {
		r.println("No articles found")
		return
	}

	for _, a := range state.Articles {
		r.println(r.Card(a))
	}
	r.println(r.Pagination(state.Page, state.TotalPages, state.TotalElements))
}

// Pagination renders the 1-based position in the list and the moves
// available.
func (r *Renderer) Pagination(page, totalPages, totalElements int) string {
	count := fmt.Sprintf("%s %s", humanize.Comma(int64(totalElements)), plural(totalElements, "article", "articles"))
	if totalPages <= 1 {
		return r.styles.Muted.Render(count)
	}

	parts := []string{}
	if page > 0 {
		parts = append(parts, "< prev")
	}
	parts = append(parts, fmt.Sprintf("page %d of %d", page+1, totalPages))
	if page < totalPages-1 {
		parts = append(parts, "next >")
	}
	parts = append(parts, count)

	return r.styles.Muted.Render(strings.Join(parts, " · "))
}

// Article renders the full article. The author actions are listed when
// isAuthor is set.
func (r *Renderer) Article(a knowledgehub.Article, isAuthor bool) {
	r.println(r.styles.Badge(a.Category))
	r.println(r.styles.Title.Render(a.Title))

	date := "-"
	if !a.CreatedAt.IsZero() {
		date = fmt.Sprintf("%s (%s)", a.CreatedAt.Format("January 2, 2006"), r.relative(a.CreatedAt))
	}
	r.println(r.styles.Muted.Render(fmt.Sprintf("%s %s · %s · %s", initial(a.Author.Username), a.Author.Username, date, a.Status)))

	if isAuthor {
		r.println(r.styles.Info.Render(fmt.Sprintf("edit: khub article edit %d · delete: khub article delete %d", a.ID, a.ID)))
	}

	if a.Summary != "" {
		r.println("")
		r.println(r.styles.Summary.Render(r.styles.AIBadge.Render("AI Summary") + "\n" + a.Summary))
	}

	if outline := content.Headings(a.Content); len(outline) > 1 {
		r.println("")
		r.println(r.styles.Muted.Render("Contents: " + strings.Join(outline, " / ")))
	}

	r.println("")
	r.println(content.PlainText(a.Content))

	if tags := knowledgehub.ParseTags(a.Tags); len(tags) > 0 {
		r.println("")
		r.println(r.tags(tags))
	}
}

// Dashboard renders the stats and the filtered articles of the signed-in
// user.
func (r *Renderer) Dashboard(user knowledgehub.User, stats views.DashboardStats, filter knowledgehub.Status, articles []knowledgehub.Article) {
	r.println(r.styles.Title.Render(fmt.Sprintf("%s My Dashboard", initial(user.Username))))
	r.println(r.styles.Muted.Render(fmt.Sprintf(
		"%d total · %d published · %d %s",
		stats.Total, stats.Published, stats.Drafts, plural(stats.Drafts, "draft", "drafts"),
	)))
	if filter != "" && filter != views.StatusAll {
		r.println(r.styles.Muted.Render("Showing " + strings.ToLower(string(filter)) + " articles"))
	}

	if len(articles) == 0 {
		r.println("No articles yet")
		return
	}

	for _, a := range articles {
		r.println(fmt.Sprintf("%-6s %-10s %s %s %s",
			fmt.Sprintf("#%d", a.ID),
			a.Status,
			r.styles.Badge(a.Category),
			a.Title,
			r.styles.Muted.Render(r.relative(a.CreatedAt)),
		))
	}
}

// User renders the signed-in user. expiry is skipped when zero.
func (r *Renderer) User(u knowledgehub.User, expiry time.Time) {
	r.println(r.styles.Title.Render(fmt.Sprintf("%s %s", initial(u.Username), u.Username)))
	r.println(fmt.Sprintf("id:    %d", u.ID))
	r.println(fmt.Sprintf("email: %s", u.Email))
	if u.Role != "" {
		r.println(fmt.Sprintf("role:  %s", u.Role))
	}
	if !expiry.IsZero() {
		r.println(r.styles.Muted.Render(fmt.Sprintf("session expires %s", humanize.RelTime(expiry, r.now(), "ago", "from now"))))
	}
}

// Notice renders a message of the given level: success, error or info.
func (r *Renderer) Notice(level, msg string) {
	switch level {
	case "success":
		r.println(r.styles.Success.Render("✓ " + msg))
	case "error":
		r.println(r.styles.Error.Render("✗ " + msg))
	default:
		r.println(r.styles.Info.Render("· " + msg))
	}
}

// Fields renders validation errors, one per line.
func (r *Renderer) Fields(errs map[string]string, order ...string) {
	for _, f := range order {
		if msg, ok := errs[f]; ok && msg != "" {
			r.println(r.styles.Error.Render(fmt.Sprintf("  %s: %s", f, msg)))
		}
	}
}

func (r *Renderer) tags(tags []string) string {
	pills := make([]string, len(tags))
	for i, t := range tags {
		pills[i] = "#" + t
	}
	return r.styles.Tag.Render(strings.Join(pills, " "))
}

func (r *Renderer) relative(t knowledgehub.Timestamp) string {
	if t.IsZero() {
		return "Recently"
	}
	return humanize.RelTime(t.Time, r.now(), "ago", "from now")
}

func initial(username string) string {
	first, _ := utf8.DecodeRuneInString(username)
	if first == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(first))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
