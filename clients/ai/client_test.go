package ai

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
	"github.com/bobinette/knowledgehub/log"
)

func createClient(t *testing.T, responses map[string]string) (*Client, map[string]map[string]string, func()) {
	requests := make(map[string]map[string]string)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := ioutil.ReadAll(r.Body)
		body := make(map[string]string)
		json.Unmarshal(data, &body)
		requests[r.URL.Path] = body

		res, ok := responses[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(res))
	}))

	c, err := clients.NewClient(ts.Client(), ts.URL, nil, log.Discard())
	require.NoError(t, err)
	return NewClient(c), requests, ts.Close
}

func TestClient(t *testing.T) {
	client, requests, f := createClient(t, map[string]string{
		"/api/ai/improve":          `{"content":"<p>Better</p>"}`,
		"/api/ai/suggest-title":    `{"title":"A Better Title"}`,
		"/api/ai/generate-summary": `{"summary":"Short."}`,
		"/api/ai/suggest-tags":     `{"tags":["go"," rust ",""]}`,
	})
	defer f()
	ctx := context.Background()

	improved, err := client.Improve(ctx, "<p>Good</p>", "")
	require.NoError(t, err)
	assert.Equal(t, "<p>Better</p>", improved)
	assert.Equal(t, map[string]string{"content": "<p>Good</p>", "mode": "clarity"}, requests["/api/ai/improve"])

	_, err = client.Improve(ctx, "<p>Good</p>", "grammar")
	require.NoError(t, err)
	assert.Equal(t, "grammar", requests["/api/ai/improve"]["mode"])

	title, err := client.SuggestTitle(ctx, "text")
	require.NoError(t, err)
	assert.Equal(t, "A Better Title", title)
	assert.Equal(t, map[string]string{"content": "text"}, requests["/api/ai/suggest-title"])

	summary, err := client.GenerateSummary(ctx, "text", "title")
	require.NoError(t, err)
	assert.Equal(t, "Short.", summary)
	assert.Equal(t, map[string]string{"content": "text", "title": "title"}, requests["/api/ai/generate-summary"])

	tags, err := client.SuggestTags(ctx, "text", knowledgehub.CategoryAI)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "rust"}, tags)
	assert.Equal(t, map[string]string{"content": "text", "category": "AI"}, requests["/api/ai/suggest-tags"])
}

func TestClient_SuggestTags_CommaString(t *testing.T) {
	client, _, f := createClient(t, map[string]string{
		"/api/ai/suggest-tags": `{"tags":"go, rust, go"}`,
	})
	defer f()

	tags, err := client.SuggestTags(context.Background(), "text", knowledgehub.CategoryTech)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "rust"}, tags)
}

func TestClient_Unavailable(t *testing.T) {
	client, _, f := createClient(t, nil)
	defer f()

	_, err := client.GenerateSummary(context.Background(), "text", "title")
	assert.Error(t, err)

	var _ knowledgehub.Assistant = client
}
