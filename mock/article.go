package mock

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/bobinette/knowledgehub"
	"github.com/bobinette/knowledgehub/errors"
)

// ArticleService is an in-memory ArticleService. Mine returns the articles
// of Author. Setting one of the Err fields makes the matching call fail.
type ArticleService struct {
	Author knowledgehub.Author

	ListErr   error
	GetErr    error
	CreateErr error
	UpdateErr error
	DeleteErr error
	MineErr   error

	// ListFunc, when set, replaces the in-memory listing.
	ListFunc func(context.Context, knowledgehub.ListParams) (knowledgehub.ArticlePage, error)

	mu      sync.Mutex
	db      map[int]knowledgehub.Article
	maxID   int
	lists   []knowledgehub.ListParams
	creates []knowledgehub.ArticleInput
	updates []knowledgehub.ArticleInput
	deletes []int
}

// Insert stores article as is, the id included.
func (s *ArticleService) Insert(articles ...knowledgehub.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		s.db = make(map[int]knowledgehub.Article)
	}
	for _, article := range articles {
		if article.ID > s.maxID {
			s.maxID = article.ID
		}
		s.db[article.ID] = article
	}
}

func (s *ArticleService) List(ctx context.Context, params knowledgehub.ListParams) (knowledgehub.ArticlePage, error) {
	s.mu.Lock()
	s.lists = append(s.lists, params)
	listFunc := s.ListFunc
	s.mu.Unlock()

	if listFunc != nil {
		return listFunc(ctx, params)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ListErr != nil {
		return knowledgehub.ArticlePage{}, s.ListErr
	}

	size := params.Size
	if size <= 0 {
		size = knowledgehub.DefaultPageSize
	}

	matching := make([]knowledgehub.Article, 0)
	for _, article := range s.sorted() {
		if params.Category != "" && params.Category != knowledgehub.AllCategories && article.Category != params.Category {
			continue
		}
		if params.Search != "" && !strings.Contains(strings.ToLower(article.Title), strings.ToLower(params.Search)) {
			continue
		}
		matching = append(matching, article)
	}

	page := knowledgehub.ArticlePage{
		Articles:      make([]knowledgehub.Article, 0),
		TotalElements: len(matching),
		TotalPages:    (len(matching) + size - 1) / size,
	}
	start := params.Page * size
	if start < len(matching) {
		end := start + size
		if end > len(matching) {
			end = len(matching)
		}
		page.Articles = append(page.Articles, matching[start:end]...)
	}
	return page, nil
}

func (s *ArticleService) Get(ctx context.Context, id int) (knowledgehub.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.GetErr != nil {
		return knowledgehub.Article{}, s.GetErr
	}

	article, ok := s.db[id]
	if !ok {
		return knowledgehub.Article{}, errors.New("article not found", errors.NotFound())
	}
	return article, nil
}

func (s *ArticleService) Create(ctx context.Context, input knowledgehub.ArticleInput) (knowledgehub.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creates = append(s.creates, input)
	if s.CreateErr != nil {
		return knowledgehub.Article{}, s.CreateErr
	}

	if s.db == nil {
		s.db = make(map[int]knowledgehub.Article)
	}
	s.maxID++
	article := fromInput(s.maxID, input, s.Author)
	s.db[article.ID] = article
	return article, nil
}

func (s *ArticleService) Update(ctx context.Context, id int, input knowledgehub.ArticleInput) (knowledgehub.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updates = append(s.updates, input)
	if s.UpdateErr != nil {
		return knowledgehub.Article{}, s.UpdateErr
	}

	existing, ok := s.db[id]
	if !ok {
		return knowledgehub.Article{}, errors.New("article not found", errors.NotFound())
	}

	article := fromInput(id, input, existing.Author)
	article.CreatedAt = existing.CreatedAt
	s.db[id] = article
	return article, nil
}

func (s *ArticleService) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deletes = append(s.deletes, id)
	if s.DeleteErr != nil {
		return s.DeleteErr
	}

	if _, ok := s.db[id]; !ok {
		return errors.New("article not found", errors.NotFound())
	}
	delete(s.db, id)
	return nil
}

func (s *ArticleService) Mine(ctx context.Context) ([]knowledgehub.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.MineErr != nil {
		return nil, s.MineErr
	}

	articles := make([]knowledgehub.Article, 0)
	for _, article := range s.sorted() {
		if article.Author.ID == s.Author.ID {
			articles = append(articles, article)
		}
	}
	return articles, nil
}

// Lists returns the params of every List call, in call order.
func (s *ArticleService) Lists() []knowledgehub.ListParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]knowledgehub.ListParams{}, s.lists...)
}

func (s *ArticleService) Creates() []knowledgehub.ArticleInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]knowledgehub.ArticleInput{}, s.creates...)
}

func (s *ArticleService) Updates() []knowledgehub.ArticleInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]knowledgehub.ArticleInput{}, s.updates...)
}

func (s *ArticleService) Deletes() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int{}, s.deletes...)
}

// sorted returns the stored articles by id. The lock must be held.
func (s *ArticleService) sorted() []knowledgehub.Article {
	articles := make([]knowledgehub.Article, 0, len(s.db))
	for _, article := range s.db {
		articles = append(articles, article)
	}
	sort.Slice(articles, func(i, j int) bool { return articles[i].ID < articles[j].ID })
	return articles
}

func fromInput(id int, input knowledgehub.ArticleInput, author knowledgehub.Author) knowledgehub.Article {
	return knowledgehub.Article{
		ID:       id,
		Title:    input.Title,
		Content:  input.Content,
		Summary:  input.Summary,
		Category: input.Category,
		Tags:     input.Tags,
		Status:   input.Status,
		Author:   author,
	}
}
