package auth

import (
	"context"
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

func (c *Client) Signup(ctx context.Context, req knowledgehub.SignupRequest) (knowledgehub.AuthResponse, error) {
	var res knowledgehub.AuthResponse
	err := c.client.Do(ctx, clients.Request{
		Method: http.MethodPost,
		Path:   "/api/auth/signup",
		Body:   req,
	}, &res)
	return res, err
}

func (c *Client) Login(ctx context.Context, req knowledgehub.LoginRequest) (knowledgehub.AuthResponse, error) {
	var res knowledgehub.AuthResponse
	err := c.client.Do(ctx, clients.Request{
		Method: http.MethodPost,
		Path:   "/api/auth/login",
		Body:   req,
	}, &res)
	return res, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.client.Do(ctx, clients.Request{
		Method: http.MethodPost,
		Path:   "/api/auth/logout",
	}, nil)
}

func (c *Client) Me(ctx context.Context) (knowledgehub.User, error) {
	var user knowledgehub.User
	err := c.client.Do(ctx, clients.Request{
		Method: http.MethodGet,
		Path:   "/api/auth/me",
	}, &user)
	return user, err
}
