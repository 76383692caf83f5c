package views

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bobinette/knowledgehub"
	"github.com/bobinette/knowledgehub/errors"
	"github.com/bobinette/knowledgehub/log"
)

type HomeState struct {
	Articles      []knowledgehub.Article
	Page          int
	TotalPages    int
	TotalElements int
	Category      knowledgehub.Category
	Search        string
	Loading       bool
}

// Home is the public article list with its filters and pagination. Only the
// response of the latest fetch is applied.
type Home struct {
	articles knowledgehub.ArticleService
	logger   log.Logger

	mu    sync.Mutex
	state HomeState
	seq   uint64
}

func NewHome(articles knowledgehub.ArticleService, logger log.Logger) *Home {
	return &Home{
		articles: articles,
		logger:   logger,
		state: HomeState{
			Articles: make([]knowledgehub.Article, 0),
			Category: knowledgehub.AllCategories,
		},
	}
}

// Load fetches the list for the current filters and page.
func (h *Home) Load(ctx context.Context) error {
	return h.update(ctx, func(s *HomeState) {}, true)
}

// Open sets every filter and the page at once and fetches the list.
func (h *Home) Open(ctx context.Context, c knowledgehub.Category, query string, page int) error {
	if c == "" {
		c = knowledgehub.AllCategories
	}
	if page < 0 {
		return errors.New(fmt.Sprintf("page %d out of range", page), errors.BadRequest())
	}
	query = strings.TrimSpace(query)
	return h.update(ctx, func(s *HomeState) {
		s.Category = c
		s.Search = query
		s.Page = page
	}, true)
}

// SetCategory filters on c and goes back to the first page.
func (h *Home) SetCategory(ctx context.Context, c knowledgehub.Category) error {
	if c == "" {
		c = knowledgehub.AllCategories
	}
	return h.update(ctx, func(s *HomeState) {
		s.Category = c
		s.Page = 0
	}, false)
}

// SubmitSearch searches for query and goes back to the first page.
func (h *Home) SubmitSearch(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	return h.update(ctx, func(s *HomeState) {
		s.Search = query
		s.Page = 0
	}, false)
}

// SetPage jumps to page, keeping the filters. Once a list has been loaded the
// page must be one of its pages.
func (h *Home) SetPage(ctx context.Context, page int) error {
	h.mu.Lock()
	total := h.state.TotalPages
	h.mu.Unlock()

	if page < 0 || (total > 0 && page >= total) {
		return errors.New(fmt.Sprintf("page %d out of range", page), errors.BadRequest())
	}

	return h.update(ctx, func(s *HomeState) {
		s.Page = page
	}, false)
}

func (h *Home) Next(ctx context.Context) error {
	if !h.CanNext() {
		return errors.New("already on the last page", errors.BadRequest())
	}
	return h.SetPage(ctx, h.State().Page+1)
}

func (h *Home) Prev(ctx context.Context) error {
	if !h.CanPrev() {
		return errors.New("already on the first page", errors.BadRequest())
	}
	return h.SetPage(ctx, h.State().Page-1)
}

// ClearFilters resets category, search and page.
func (h *Home) ClearFilters(ctx context.Context) error {
	return h.update(ctx, func(s *HomeState) {
		s.Category = knowledgehub.AllCategories
		s.Search = ""
		s.Page = 0
	}, false)
}

func (h *Home) CanPrev() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.Page > 0
}

func (h *Home) CanNext() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.Page < h.state.TotalPages-1
}

// HasFilters reports whether a category or a search is applied.
func (h *Home) HasFilters() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.Category != knowledgehub.AllCategories || h.state.Search != ""
}

// State returns a copy of the current state.
func (h *Home) State() HomeState {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := h.state
	s.Articles = append([]knowledgehub.Article{}, h.state.Articles...)
	return s
}

// update applies change to the filters and fetches the resulting list. The
// fetch is skipped when the filters are left as they were, unless force is
// set.
func (h *Home) update(ctx context.Context, change func(*HomeState), force bool) error {
	h.mu.Lock()
	before := h.params()
	change(&h.state)
	params := h.params()
	if params == before && !force {
		h.mu.Unlock()
		return nil
	}

	h.seq++
	seq := h.seq
	h.state.Loading = true
	h.mu.Unlock()

	page, err := h.articles.List(ctx, params)

	h.mu.Lock()
	defer h.mu.Unlock()

	if seq != h.seq {
		h.logger.WithField("seq", seq).Debugf("discarding stale article list")
		return nil
	}

	h.state.Loading = false
	if err != nil {
		h.state.Articles = make([]knowledgehub.Article, 0)
		h.logger.Errorf("failed to fetch articles: %v", err)
		return err
	}

	h.state.Articles = page.Articles
	if h.state.Articles == nil {
		h.state.Articles = make([]knowledgehub.Article, 0)
	}
	h.state.TotalPages = page.TotalPages
	h.state.TotalElements = page.TotalElements
	return nil
}

// params builds the list params of the state. The lock must be held.
func (h *Home) params() knowledgehub.ListParams {
	return knowledgehub.ListParams{
		Page:     h.state.Page,
		Size:     knowledgehub.DefaultPageSize,
		Category: h.state.Category,
		Search:   h.state.Search,
	}
}
