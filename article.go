package knowledgehub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Category string

const (
	CategoryTech     Category = "TECH"
	CategoryAI       Category = "AI"
	CategoryBackend  Category = "BACKEND"
	CategoryFrontend Category = "FRONTEND"
	CategoryDevOps   Category = "DEVOPS"
	CategoryDatabase Category = "DATABASE"
	CategorySecurity Category = "SECURITY"
	CategoryMobile   Category = "MOBILE"
	CategoryCloud    Category = "CLOUD"
	CategoryOther    Category = "OTHER"

	// AllCategories is the list filter sentinel. It is never sent to the API.
	AllCategories Category = "ALL"
)

// Categories lists the categories an article can belong to, in display order.
var Categories = []Category{
	CategoryTech,
	CategoryAI,
	CategoryBackend,
	CategoryFrontend,
	CategoryDevOps,
	CategoryDatabase,
	CategorySecurity,
	CategoryMobile,
	CategoryCloud,
	CategoryOther,
}

// ParseCategory parses s case-insensitively. The ALL sentinel is accepted only
// when allowAll is set.
func ParseCategory(s string, allowAll bool) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if allowAll && c == AllCategories {
		return c, nil
	}

	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}

	return "", fmt.Errorf("unknown category %q", s)
}

type Status string

const (
	StatusPublished Status = "PUBLISHED"
	StatusDraft     Status = "DRAFT"
)

// ParseStatus parses s case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPublished, StatusDraft:
		return st, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

type Author struct {
	ID       int    `json:"id" yaml:"id"`
	Username string `json:"username" yaml:"username"`
}

type Article struct {
	ID       int      `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Content  string   `json:"content" yaml:"content"`
	Summary  string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Category Category `json:"category" yaml:"category"`
	Tags     string   `json:"tags" yaml:"tags"`
	Status   Status   `json:"status" yaml:"status"`
	Author   Author   `json:"author" yaml:"author"`

	CreatedAt Timestamp `json:"createdAt" yaml:"createdAt"`
}

// Input returns the writable fields of the article.
func (a Article) Input() ArticleInput {
	return ArticleInput{
		Title:    a.Title,
		Content:  a.Content,
		Summary:  a.Summary,
		Category: a.Category,
		Tags:     a.Tags,
		Status:   a.Status,
	}
}

// ArticleInput is the body of the create and update calls. Update is a full
// replace, every field is sent.
type ArticleInput struct {
	Title    string   `json:"title" yaml:"title"`
	Content  string   `json:"content" yaml:"content"`
	Summary  string   `json:"summary" yaml:"summary"`
	Category Category `json:"category" yaml:"category"`
	Tags     string   `json:"tags" yaml:"tags"`
	Status   Status   `json:"status" yaml:"status"`
}

type ArticlePage struct {
	Articles      []Article `json:"articles" yaml:"articles"`
	TotalPages    int       `json:"totalPages" yaml:"totalPages"`
	TotalElements int       `json:"totalElements" yaml:"totalElements"`
}

// DefaultPageSize is the page size of the public article list.
const DefaultPageSize = 9

type ListParams struct {
	Page     int
	Size     int
	Category Category
	Search   string
}

// Query encodes the params in the order page, size, category, search. The
// ALL category and an empty search are omitted.
func (p ListParams) Query() string {
	page := p.Page
	if page < 0 {
		page = 0
	}
	size := p.Size
	if size <= 0 {
		size = DefaultPageSize
	}

	parts := []string{
		"page=" + strconv.Itoa(page),
		"size=" + strconv.Itoa(size),
	}
	if p.Category != "" && p.Category != AllCategories {
		parts = append(parts, "category="+url.QueryEscape(string(p.Category)))
	}
	if p.Search != "" {
		parts = append(parts, "search="+url.QueryEscape(p.Search))
	}

	return strings.Join(parts, "&")
}

type ArticleService interface {
	List(context.Context, ListParams) (ArticlePage, error)
	Get(ctx context.Context, id int) (Article, error)
	Create(context.Context, ArticleInput) (Article, error)
	Update(ctx context.Context, id int, input ArticleInput) (Article, error)
	Delete(ctx context.Context, id int) error
	Mine(context.Context) ([]Article, error)
}

// DefaultImproveMode is the mode used when improving content without one.
const DefaultImproveMode = "clarity"

// Assistant wraps the AI writing endpoints. Every call is optional: callers
// must keep working when one fails.
type Assistant interface {
	Improve(ctx context.Context, content, mode string) (string, error)
	SuggestTitle(ctx context.Context, content string) (string, error)
	GenerateSummary(ctx context.Context, content, title string) (string, error)
	SuggestTags(ctx context.Context, content string, category Category) ([]string, error)
}

// Timestamp is a time that also decodes the zone-less local date-times the
// backend emits, e.g. 2024-03-01T10:15:30.123.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp should be a string: %v", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}

	return fmt.Errorf("invalid timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

func (t Timestamp) MarshalYAML() (interface{}, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Time.Format(time.RFC3339), nil
}
