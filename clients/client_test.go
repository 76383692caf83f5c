package clients

import (
	"context"
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kherrors "github.com/bobinette/knowledgehub/errors"
	"github.com/bobinette/knowledgehub/log"
)

type tokenFunc func() (string, error)

func (f tokenFunc) Token() (string, error) { return f() }

func staticToken(token string) TokenSource {
	return tokenFunc(func() (string, error) { return token, nil })
}

func newTestClient(t *testing.T, h http.HandlerFunc, tokens TokenSource) (*Client, func()) {
	ts := httptest.NewServer(h)

	client, err := NewClient(ts.Client(), ts.URL, tokens, log.Discard())
	require.NoError(t, err, "client should be created")

	return client, ts.Close
}

func TestClient_Do(t *testing.T) {
	var got *http.Request
	var gotBody map[string]string
	client, f := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		data, _ := ioutil.ReadAll(r.Body)
		json.Unmarshal(data, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"title":"A title"}`))
	}, staticToken("secret"))
	defer f()

	var res struct {
		Title string `json:"title"`
	}
	err := client.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/api/ai/suggest-title",
		Query:  "a=b",
		Body:   map[string]string{"content": "text"},
	}, &res)
	require.NoError(t, err)

	assert.Equal(t, "A title", res.Title)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/api/ai/suggest-title", got.URL.Path)
	assert.Equal(t, "a=b", got.URL.RawQuery)
	assert.Equal(t, "Bearer secret", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Contains(t, got.Header.Get("Content-Type"), "application/json")
	assert.Len(t, got.Header.Get("X-Request-ID"), 36, "request id should be a uuid")
	assert.Equal(t, map[string]string{"content": "text"}, gotBody)
}

func TestClient_Do_NoToken(t *testing.T) {
	var got *http.Request
	client, f := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.WriteHeader(http.StatusOK)
	}, staticToken(""))
	defer f()

	var out map[string]interface{}
	err := client.Do(context.Background(), Request{Method: http.MethodPost, Path: "/api/auth/logout"}, &out)
	require.NoError(t, err, "an empty body is not an error")

	assert.Equal(t, "", got.Header.Get("Authorization"))
	assert.Equal(t, "", got.Header.Get("Content-Type"), "no body, no content type")
	assert.Nil(t, out)
}

func TestClient_Do_TokenError(t *testing.T) {
	called := false
	client, f := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, tokenFunc(func() (string, error) { return "", errors.New("storage closed") }))
	defer f()

	err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/auth/me"}, nil)
	assert.EqualError(t, err, "storage closed")
	assert.False(t, called, "no request should be sent")
}

func TestClient_Do_ErrorStatus(t *testing.T) {
	client, f := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"Email already registered"}`))
	}, nil)
	defer f()

	err := client.Do(context.Background(), Request{Method: http.MethodPost, Path: "/api/auth/signup", Body: struct{}{}}, nil)
	require.Error(t, err)

	kherrors.AssertCode(t, err, http.StatusConflict)
	e, ok := err.(kherrors.Error)
	require.True(t, ok, "error should carry the response")
	assert.Equal(t, `{"message":"Email already registered"}`, string(e.Body()))
	assert.Equal(t, "Email already registered", kherrors.UserMessage(err, "Signup failed"))
}

func TestClient_Do_InvalidJSON(t *testing.T) {
	client, f := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title":`))
	}, nil)
	defer f()

	var out map[string]string
	err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"}, &out)
	assert.Error(t, err)
}

func TestClient_Do_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client, err := NewClient(ts.Client(), ts.URL, nil, log.Discard())
	require.NoError(t, err)
	ts.Close()

	err = client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/articles"}, nil)
	require.Error(t, err)
	assert.Equal(t, 0, kherrors.Code(err), "transport errors are not wrapped")
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	for _, baseURL := range []string{"", "localhost", "://nope"} {
		_, err := NewClient(http.DefaultClient, baseURL, nil, log.Discard())
		assert.Error(t, err, baseURL)
	}
}
