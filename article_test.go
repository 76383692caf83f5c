package knowledgehub

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListParams_Query(t *testing.T) {
	tts := map[string]struct {
		params   ListParams
		expected string
	}{
		"all categories and no search": {
			params:   ListParams{Page: 0, Size: 9, Category: AllCategories, Search: ""},
			expected: "page=0&size=9",
		},
		"empty category": {
			params:   ListParams{Page: 1, Size: 9},
			expected: "page=1&size=9",
		},
		"category and search": {
			params:   ListParams{Page: 0, Size: 9, Category: CategoryAI, Search: "rust"},
			expected: "page=0&size=9&category=AI&search=rust",
		},
		"search only": {
			params:   ListParams{Page: 2, Size: 9, Category: AllCategories, Search: "rust"},
			expected: "page=2&size=9&search=rust",
		},
		"search is escaped": {
			params:   ListParams{Page: 0, Size: 9, Search: "go & rust"},
			expected: "page=0&size=9&search=go+%26+rust",
		},
		"defaults": {
			params:   ListParams{Page: -1, Size: 0, Category: CategoryDevOps},
			expected: "page=0&size=9&category=DEVOPS",
		},
	}

	for name, tt := range tts {
		assert.Equal(t, tt.expected, tt.params.Query(), name)
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("devops", false)
	require.NoError(t, err)
	assert.Equal(t, CategoryDevOps, c)

	_, err = ParseCategory("ALL", false)
	assert.Error(t, err, "ALL is only a filter")

	c, err = ParseCategory("all", true)
	require.NoError(t, err)
	assert.Equal(t, AllCategories, c)

	_, err = ParseCategory("cooking", true)
	assert.Error(t, err)

	assert.Len(t, Categories, 10)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("draft")
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, s)

	_, err = ParseStatus("archived")
	assert.Error(t, err)
}

func TestArticle_Decode(t *testing.T) {
	tts := map[string]struct {
		createdAt string
		expected  time.Time
	}{
		"local date time": {
			createdAt: `"2024-03-01T10:15:30.123"`,
			expected:  time.Date(2024, 3, 1, 10, 15, 30, 123000000, time.UTC),
		},
		"rfc3339": {
			createdAt: `"2024-03-01T10:15:30Z"`,
			expected:  time.Date(2024, 3, 1, 10, 15, 30, 0, time.UTC),
		},
		"null": {
			createdAt: `null`,
			expected:  time.Time{},
		},
	}

	for name, tt := range tts {
		data := `{"id":3,"title":"T","tags":"go, rust","status":"DRAFT","category":"AI",` +
			`"author":{"id":7,"username":"ada"},"createdAt":` + tt.createdAt + `}`

		var article Article
		require.NoError(t, json.Unmarshal([]byte(data), &article), name)
		assert.True(t, tt.expected.Equal(article.CreatedAt.Time), "%s: got %v", name, article.CreatedAt)
		assert.Equal(t, 7, article.Author.ID, name)
		assert.Equal(t, StatusDraft, article.Status, name)
	}

	var article Article
	assert.Error(t, json.Unmarshal([]byte(`{"createdAt":"yesterday"}`), &article))
}

func TestArticle_Input(t *testing.T) {
	article := Article{
		ID:       4,
		Title:    "Title",
		Content:  "<p>content</p>",
		Category: CategoryCloud,
		Tags:     "aws",
		Status:   StatusPublished,
		Author:   Author{ID: 1},
	}

	data, err := json.Marshal(article.Input())
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Title","content":"<p>content</p>","summary":"","category":"CLOUD","tags":"aws","status":"PUBLISHED"}`, string(data))
}

func TestAuthResponse(t *testing.T) {
	res := AuthResponse{ID: 1, Username: "ada", Email: "ada@example.com", Role: "USER", Token: "t"}
	assert.True(t, res.Valid())
	assert.Equal(t, User{ID: 1, Username: "ada", Email: "ada@example.com", Role: "USER"}, res.User())

	assert.False(t, AuthResponse{ID: 1}.Valid(), "no token")
	assert.False(t, AuthResponse{Token: "t"}.Valid(), "no id")
}
