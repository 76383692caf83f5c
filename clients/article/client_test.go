package article

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/knowledgehub"
	"github.com/bobinette/knowledgehub/clients"
	"github.com/bobinette/knowledgehub/errors"
	"github.com/bobinette/knowledgehub/log"
)

type call struct {
	method string
	path   string
	query  string
	body   string
}

func createClient(t *testing.T, status int, response string) (*Client, *[]call, func()) {
	calls := make([]call, 0)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := ioutil.ReadAll(r.Body)
		calls = append(calls, call{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, body: string(data)})

		w.WriteHeader(status)
		w.Write([]byte(response))
	}))

	c, err := clients.NewClient(ts.Client(), ts.URL, nil, log.Discard())
	require.NoError(t, err)

	return NewClient(c), &calls, ts.Close
}

func TestClient_List(t *testing.T) {
	tts := map[string]struct {
		params knowledgehub.ListParams
		query  string
	}{
		"defaults": {
			params: knowledgehub.ListParams{Page: 0, Size: 9, Category: knowledgehub.AllCategories},
			query:  "page=0&size=9",
		},
		"filtered": {
			params: knowledgehub.ListParams{Page: 1, Size: 9, Category: knowledgehub.CategoryAI, Search: "rust"},
			query:  "page=1&size=9&category=AI&search=rust",
		},
	}

	for name, tt := range tts {
		client, calls, f := createClient(t, http.StatusOK, `{"articles":[{"id":1,"title":"One"}],"totalPages":3,"totalElements":21}`)

		page, err := client.List(context.Background(), tt.params)
		f()
		require.NoError(t, err, name)

		require.Len(t, *calls, 1, name)
		assert.Equal(t, http.MethodGet, (*calls)[0].method, name)
		assert.Equal(t, "/api/articles", (*calls)[0].path, name)
		assert.Equal(t, tt.query, (*calls)[0].query, name)

		assert.Equal(t, 3, page.TotalPages, name)
		assert.Equal(t, 21, page.TotalElements, name)
		assert.Equal(t, []knowledgehub.Article{{ID: 1, Title: "One"}}, page.Articles, name)
	}
}

func TestClient_List_NoArticles(t *testing.T) {
	client, _, f := createClient(t, http.StatusOK, `{"totalPages":0,"totalElements":0}`)
	defer f()

	page, err := client.List(context.Background(), knowledgehub.ListParams{})
	require.NoError(t, err)
	assert.NotNil(t, page.Articles)
	assert.Len(t, page.Articles, 0)
}

func TestClient_CRUD(t *testing.T) {
	input := knowledgehub.ArticleInput{
		Title:    "Title",
		Content:  "<p>hello world</p>",
		Category: knowledgehub.CategoryBackend,
		Tags:     "go",
		Status:   knowledgehub.StatusDraft,
	}
	expectedBody := `{"title":"Title","content":"<p>hello world</p>","summary":"","category":"BACKEND","tags":"go","status":"DRAFT"}`

	client, calls, f := createClient(t, http.StatusOK, `{"id":12,"title":"Title","author":{"id":3,"username":"ada"}}`)
	defer f()
	ctx := context.Background()

	created, err := client.Create(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, 12, created.ID)
	assert.Equal(t, 3, created.Author.ID)

	_, err = client.Get(ctx, 12)
	require.NoError(t, err)

	_, err = client.Update(ctx, 12, input)
	require.NoError(t, err)

	err = client.Delete(ctx, 12)
	require.NoError(t, err)

	require.Len(t, *calls, 4)
	tts := []call{
		{method: http.MethodPost, path: "/api/articles"},
		{method: http.MethodGet, path: "/api/articles/12"},
		{method: http.MethodPut, path: "/api/articles/12"},
		{method: http.MethodDelete, path: "/api/articles/12"},
	}
	for i, expected := range tts {
		got := (*calls)[i]
		assert.Equal(t, expected.method, got.method, "call %d", i)
		assert.Equal(t, expected.path, got.path, "call %d", i)
	}
	assert.JSONEq(t, expectedBody, (*calls)[0].body)
	assert.JSONEq(t, expectedBody, (*calls)[2].body)
}

func TestClient_Mine(t *testing.T) {
	client, calls, f := createClient(t, http.StatusOK, `[{"id":1,"status":"DRAFT"},{"id":2,"status":"PUBLISHED"}]`)
	defer f()

	articles, err := client.Mine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/articles/my-articles", (*calls)[0].path)
	assert.Len(t, articles, 2)
	assert.Equal(t, knowledgehub.StatusPublished, articles[1].Status)
}

func TestClient_Get_NotFound(t *testing.T) {
	client, _, f := createClient(t, http.StatusNotFound, `{"message":"Article not found with id 99"}`)
	defer f()

	_, err := client.Get(context.Background(), 99)
	require.Error(t, err)
	errors.AssertCode(t, err, http.StatusNotFound)
	assert.Equal(t, "Article not found with id 99", errors.UserMessage(err, ""))
}

func TestClient_Implements(t *testing.T) {
	var _ knowledgehub.ArticleService = &Client{}

	data, err := json.Marshal(knowledgehub.ArticleInput{})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"summary":""`, "update is a full replace, summary is always sent")
}
