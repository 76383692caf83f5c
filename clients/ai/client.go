package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bobinette/knowledgehub"
	"github.com/bobinette/knowledgehub/clients"
)

type Client struct {
	client *clients.Client
}

func NewClient(c *clients.Client) *Client {
	return &Client{
		client: c,
	}
}

type improveRequest struct {
	Content string `json:"content"`
	Mode    string `json:"mode"`
}

func (c *Client) Improve(ctx context.Context, content, mode string) (string, error) {
	if mode == "" {
		mode = knowledgehub.DefaultImproveMode
	}

	var res struct {
		Content string `json:"content"`
	}
	err := c.client.Do(ctx, clients.Request{
		Method: http.MethodPost,
		Path:   "/api/ai/improve",
		Body:   improveRequest{Content: content, Mode: mode},
	}, &res)
	return res.Content, err
}

func (c *Client) SuggestTitle(ctx context.Context, content string) (string, error) {
	var res struct {
		Title string `json:"title"`
	}
	err := c.client.Do(ctx, clients.Request{
		Method: http.MethodPost,
		Path:   "/api/ai/suggest-title",
		Body:   map[string]string{"content": content},
	}, &res)
	return res.Title, err
}

func (c *Client) GenerateSummary(ctx context.Context, content, title string) (string, error) {
	var res struct {
		Summary string `json:"summary"`
	}
	err := c.client.Do(ctx, clients.Request{
		Method: http.MethodPost,
		Path:   "/api/ai/generate-summary",
		Body:   map[string]string{"content": content, "title": title},
	}, &res)
	return res.Summary, err
}

type suggestTagsRequest struct {
	Content  string                `json:"content"`
	Category knowledgehub.Category `json:"category"`
}

func (c *Client) SuggestTags(ctx context.Context, content string, category knowledgehub.Category) ([]string, error) {
	var res struct {
		Tags tagList `json:"tags"`
	}
	err := c.client.Do(ctx, clients.Request{
		Method: http.MethodPost,
		Path:   "/api/ai/suggest-tags",
		Body:   suggestTagsRequest{Content: content, Category: category},
	}, &res)
	if err != nil {
		return nil, err
	}
	return []string(res.Tags), nil
}

// tagList decodes either a json array of tags or a comma separated string.
type tagList []string

func (l *tagList) UnmarshalJSON(data []byte) error {
	var tags []string
	if err := json.Unmarshal(data, &tags); err == nil {
		cleaned := make([]string, 0, len(tags))
		for _, tag := range tags {
			if tag = strings.TrimSpace(tag); tag != "" {
				cleaned = append(cleaned, tag)
			}
		}
		*l = cleaned
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = knowledgehub.ParseTags(s)
	return nil
}
