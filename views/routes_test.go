package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPath(t *testing.T) {
	tts := map[string]struct {
		route  Route
		params map[string]string
	}{
		"/":                  {route: RouteHome, params: map[string]string{}},
		"":                   {route: RouteHome, params: map[string]string{}},
		"/articles/12":       {route: RouteArticle, params: map[string]string{"id": "12"}},
		"/articles/12/":      {route: RouteArticle, params: map[string]string{"id": "12"}},
		"/articles/12/edit":  {route: RouteEdit, params: map[string]string{"id": "12"}},
		"/new-article":       {route: RouteNew, params: map[string]string{}},
		"/dashboard?tab=all": {route: RouteDashboard, params: map[string]string{}},
		"/login":             {route: RouteLogin, params: map[string]string{}},
		"/signup":            {route: RouteSignup, params: map[string]string{}},
		"/articles":          {route: RouteNotFound, params: map[string]string{}},
		"/nope/nope":         {route: RouteNotFound, params: map[string]string{}},
		"//articles//7//":    {route: RouteArticle, params: map[string]string{"id": "7"}},
		"/articles/7/edit/x": {route: RouteNotFound, params: map[string]string{}},
		"/articles/7#top":    {route: RouteArticle, params: map[string]string{"id": "7"}},
	}

	for path, tt := range tts {
		m := MatchPath(path)
		assert.Equal(t, tt.route, m.Route, path)
		assert.Equal(t, tt.params, m.Params, path)
	}
}

func TestGuard(t *testing.T) {
	tts := map[string]struct {
		path     string
		session  *fakeSession
		redirect string
		err      error
	}{
		"not ready": {
			path:    "/dashboard",
			session: &fakeSession{},
			err:     ErrNotReady,
		},
		"public signed out": {
			path:    "/articles/1",
			session: &fakeSession{ready: true},
		},
		"protected signed out": {
			path:     "/new-article",
			session:  &fakeSession{ready: true},
			redirect: "/login",
		},
		"edit signed out": {
			path:     "/articles/1/edit",
			session:  &fakeSession{ready: true},
			redirect: "/login",
		},
		"protected signed in": {
			path:    "/dashboard",
			session: signedIn(1),
		},
	}

	for name, tt := range tts {
		_, redirect, err := Guard(tt.path, tt.session)
		assert.Equal(t, tt.err, err, name)
		assert.Equal(t, tt.redirect, redirect, name)
	}
}
