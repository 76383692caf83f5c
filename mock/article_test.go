package mock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/knowledgehub"
	"github.com/bobinette/knowledgehub/errors"
)

func TestArticleService_GetNone(t *testing.T) {
	s := &ArticleService{}

	_, err := s.Get(context.Background(), 1)
	errors.AssertCode(t, err, 404)
}

func TestArticleService_CreateUpdate(t *testing.T) {
	ctx := context.Background()
	s := &ArticleService{Author: knowledgehub.Author{ID: 3, Username: "ada"}}

	created, err := s.Create(ctx, knowledgehub.ArticleInput{Title: "Test", Category: knowledgehub.CategoryAI})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, 3, created.Author.ID)

	updated, err := s.Update(ctx, created.ID, knowledgehub.ArticleInput{Title: "Updated"})
	require.NoError(t, err)

	retrieved, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, retrieved)
	assert.Equal(t, "Updated", retrieved.Title)

	mine, err := s.Mine(ctx)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestArticleService_List(t *testing.T) {
	s := &ArticleService{}
	for i := 1; i <= 12; i++ {
		category := knowledgehub.CategoryTech
		if i%2 == 0 {
			category = knowledgehub.CategoryCloud
		}
		s.Insert(knowledgehub.Article{ID: i, Title: "Article", Category: category})
	}

	tts := map[string]struct {
		params knowledgehub.ListParams
		count  int
		total  int
		pages  int
	}{
		"first page": {
			params: knowledgehub.ListParams{Page: 0, Size: 9},
			count:  9, total: 12, pages: 2,
		},
		"last page": {
			params: knowledgehub.ListParams{Page: 1, Size: 9},
			count:  3, total: 12, pages: 2,
		},
		"category": {
			params: knowledgehub.ListParams{Size: 9, Category: knowledgehub.CategoryCloud},
			count:  6, total: 6, pages: 1,
		},
		"out of range": {
			params: knowledgehub.ListParams{Page: 5, Size: 9},
			count:  0, total: 12, pages: 2,
		},
	}

	for name, tt := range tts {
		page, err := s.List(context.Background(), tt.params)
		require.NoError(t, err, name)
		assert.Len(t, page.Articles, tt.count, name)
		assert.Equal(t, tt.total, page.TotalElements, name)
		assert.Equal(t, tt.pages, page.TotalPages, name)
	}
	assert.Len(t, s.Lists(), len(tts))
}
