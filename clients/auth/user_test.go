package auth

import (
	"context"
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

func TestClient(t *testing.T) {
	bodies := make(map[string]string)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := ioutil.ReadAll(r.Body)
		bodies[r.Method+" "+r.URL.Path] = string(data)

		switch r.URL.Path {
		case "/api/auth/signup", "/api/auth/login":
			w.Write([]byte(`{"id":5,"username":"ada","email":"ada@example.com","role":"USER","token":"jwt"}`))
		case "/api/auth/logout":
			w.Write([]byte(`{}`))
		case "/api/auth/me":
			w.Write([]byte(`{"id":5,"username":"ada","email":"ada@example.com","role":"ADMIN"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	c, err := clients.NewClient(ts.Client(), ts.URL, nil, log.Discard())
	require.NoError(t, err)
	client := NewClient(c)
	ctx := context.Background()

	res, err := client.Signup(ctx, knowledgehub.SignupRequest{Username: "ada", Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "jwt", res.Token)
	assert.JSONEq(t, `{"username":"ada","email":"ada@example.com","password":"secret"}`, bodies["POST /api/auth/signup"])

	res, err = client.Login(ctx, knowledgehub.LoginRequest{Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, 5, res.ID)
	assert.JSONEq(t, `{"email":"ada@example.com","password":"secret"}`, bodies["POST /api/auth/login"])

	require.NoError(t, client.Logout(ctx))
	assert.Contains(t, bodies, "POST /api/auth/logout")

	user, err := client.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, knowledgehub.User{ID: 5, Username: "ada", Email: "ada@example.com", Role: "ADMIN"}, user)
}

func TestClient_LoginRejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer ts.Close()

	c, err := clients.NewClient(ts.Client(), ts.URL, nil, log.Discard())
	require.NoError(t, err)

	_, err = NewClient(c).Login(context.Background(), knowledgehub.LoginRequest{Email: "a@b.c", Password: "x"})
	errors.AssertCode(t, err, http.StatusUnauthorized)
}
