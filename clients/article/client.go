package article

import (
	"context"
	"fmt"
	"net/http"

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

func (c *Client) List(ctx context.Context, params knowledgehub.ListParams) (knowledgehub.ArticlePage, error) {
	var page knowledgehub.ArticlePage
	err := c.client.Do(ctx, clients.Request{
		Method: http.MethodGet,
		Path:   "/api/articles",
		Query:  params.Query(),
	}, &page)
	if err != nil {
		return knowledgehub.ArticlePage{}, err
	}

	if page.Articles == nil {
		page.Articles = make([]knowledgehub.Article, 0)
	}
	return page, nil
}

func (c *Client) Get(ctx context.Context, id int) (knowledgehub.Article, error) {
	var article knowledgehub.Article
	err := c.client.Do(ctx, clients.Request{
		Method: http.MethodGet,
		Path:   articlePath(id),
	}, &article)
	return article, err
}

func (c *Client) Create(ctx context.Context, input knowledgehub.ArticleInput) (knowledgehub.Article, error) {
	var article knowledgehub.Article
	err := c.client.Do(ctx, clients.Request{
		Method: http.MethodPost,
		Path:   "/api/articles",
		Body:   input,
	}, &article)
	return article, err
}

func (c *Client) Update(ctx context.Context, id int, input knowledgehub.ArticleInput) (knowledgehub.Article, error) {
	var article knowledgehub.Article
	err := c.client.Do(ctx, clients.Request{
		Method: http.MethodPut,
		Path:   articlePath(id),
		Body:   input,
	}, &article)
	return article, err
}

func (c *Client) Delete(ctx context.Context, id int) error {
	return c.client.Do(ctx, clients.Request{
		Method: http.MethodDelete,
		Path:   articlePath(id),
	}, nil)
}

func (c *Client) Mine(ctx context.Context) ([]knowledgehub.Article, error) {
	articles := make([]knowledgehub.Article, 0)
	err := c.client.Do(ctx, clients.Request{
		Method: http.MethodGet,
		Path:   "/api/articles/my-articles",
	}, &articles)
	if err != nil {
		return nil, err
	}

	if articles == nil {
		articles = make([]knowledgehub.Article, 0)
	}
	return articles, nil
}

func articlePath(id int) string {
	return fmt.Sprintf("/api/articles/%d", id)
}
