package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-kit/kit/endpoint"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/google/uuid"

	"github.com/bobinette/knowledgehub/errors"
	"github.com/bobinette/knowledgehub/log"
)

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// TokenSource gives the bearer token to attach to outgoing requests. An empty
// token means the request is sent without Authorization header.
type TokenSource interface {
	Token() (string, error)
}

// Request describes one call to the API. Query must already be encoded.
type Request struct {
	Method string
	Path   string
	Query  string
	Body   interface{}
}

// Client is the adapter every API wrapper goes through. It resolves paths
// against the base url, attaches the token and decodes json responses. It
// does not retry.
type Client struct {
	baseURL *url.URL
	tokens  TokenSource
	logger  log.Logger

	endpoint endpoint.Endpoint
}

func NewClient(c HTTPClient, baseURL string, tokens TokenSource, logger log.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.New("invalid base url", errors.WithCause(err))
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.New(fmt.Sprintf("invalid base url %q: scheme and host are required", baseURL))
	}

	client := &Client{
		baseURL: u,
		tokens:  tokens,
		logger:  logger,
	}

	opts := []kithttp.ClientOption{
		kithttp.SetClient(c),
		kithttp.ClientBefore(requestID, acceptJSON),
	}
	ep := kithttp.NewExplicitClient(client.createRequest, decodeResponse, opts...).Endpoint()
	client.endpoint = loggingMiddleware(logger)(ep)

	return client, nil
}

// Do sends req and decodes the response body into out, when out is not nil
// and the body is not empty. Transport errors are returned as is, non 2xx
// responses as an errors.Error carrying the status code and the body.
func (c *Client) Do(ctx context.Context, req Request, out interface{}) error {
	res, err := c.endpoint(ctx, req)
	if err != nil {
		return err
	}

	body, _ := res.([]byte)
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.New(fmt.Sprintf("could not decode response of %s %s", req.Method, req.Path), errors.WithCause(err))
	}
	return nil
}

func (c *Client) createRequest(ctx context.Context, r interface{}) (*http.Request, error) {
	req, ok := r.(Request)
	if !ok {
		return nil, errors.New("invalid request")
	}

	u := *c.baseURL
	u.Path = u.Path + req.Path
	u.RawQuery = req.Query

	var body *bytes.Buffer
	if req.Body != nil {
		body = &bytes.Buffer{}
		if err := json.NewEncoder(body).Encode(req.Body); err != nil {
			return nil, err
		}
	}

	var httpReq *http.Request
	var err error
	if body != nil {
		httpReq, err = http.NewRequest(req.Method, u.String(), body)
	} else {
		httpReq, err = http.NewRequest(req.Method, u.String(), nil)
	}
	if err != nil {
		return nil, err
	}
	httpReq = httpReq.WithContext(ctx)

	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return nil, err
		}
		if token != "" {
			httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		}
	}

	return httpReq, nil
}

func decodeResponse(_ context.Context, res *http.Response) (interface{}, error) {
	data, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, errors.New(
			fmt.Sprintf("error in call: %s", res.Status),
			errors.WithCode(res.StatusCode),
			errors.WithBody(data),
		)
	}

	return data, nil
}

func requestID(ctx context.Context, r *http.Request) context.Context {
	r.Header.Set("X-Request-ID", uuid.New().String())
	return ctx
}

func acceptJSON(ctx context.Context, r *http.Request) context.Context {
	r.Header.Set("Accept", "application/json")
	return ctx
}

func loggingMiddleware(logger log.Logger) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, r interface{}) (interface{}, error) {
			start := time.Now()
			res, err := next(ctx, r)

			req, _ := r.(Request)
			l := logger.WithField("method", req.Method).WithField("path", req.Path).WithField("took", time.Since(start))
			if err != nil {
				l.WithField("code", errors.Code(err)).Debugf("call failed: %v", err)
			} else {
				l.Debugf("call done")
			}

			return res, err
		}
	}
}
