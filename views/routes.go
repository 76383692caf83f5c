package views

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bobinette/knowledgehub/errors"
)

type Route struct {
	Name      string
	Pattern   string
	Protected bool
}

var (
	RouteHome      = Route{Name: "home", Pattern: "/"}
	RouteArticle   = Route{Name: "article", Pattern: "/articles/{id}"}
	RouteEdit      = Route{Name: "edit", Pattern: "/articles/{id}/edit", Protected: true}
	RouteNew       = Route{Name: "new", Pattern: "/new-article", Protected: true}
	RouteDashboard = Route{Name: "dashboard", Pattern: "/dashboard", Protected: true}
	RouteLogin     = Route{Name: "login", Pattern: "/login"}
	RouteSignup    = Route{Name: "signup", Pattern: "/signup"}
	RouteNotFound  = Route{Name: "not-found", Pattern: "*"}
)

// Routes is the route table. Paths matching none of them resolve to
// RouteNotFound.
var Routes = []Route{
	RouteHome,
	RouteArticle,
	RouteEdit,
	RouteNew,
	RouteDashboard,
	RouteLogin,
	RouteSignup,
}

// ErrNotReady is returned by Guard while the session has not been restored.
var ErrNotReady = errors.New("session is not restored yet")

type Match struct {
	Route  Route
	Params map[string]string
}

var router = newRouter()

// newRouter registers the route table on a chi mux. Only its matching is
// used: nothing is ever served.
func newRouter() *chi.Mux {
	mux := chi.NewRouter()
	for _, route := range Routes {
		mux.Get(route.Pattern, http.NotFound)
	}
	return mux
}

// MatchPath resolves path against the route table. The query string and a
// trailing slash are ignored.
func MatchPath(path string) Match {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = "/" + strings.Join(strings.FieldsFunc(path, func(r rune) bool { return r == '/' }), "/")

	rctx := chi.NewRouteContext()
	if !router.Match(rctx, http.MethodGet, path) {
		return Match{Route: RouteNotFound, Params: map[string]string{}}
	}

	pattern := rctx.RoutePattern()
	for _, route := range Routes {
		if route.Pattern != pattern {
			continue
		}
		params := make(map[string]string, len(rctx.URLParams.Keys))
		for i, key := range rctx.URLParams.Keys {
			params[key] = rctx.URLParams.Values[i]
		}
		return Match{Route: route, Params: params}
	}
	return Match{Route: RouteNotFound, Params: map[string]string{}}
}

// Guard resolves path and decides whether it can be shown. Unauthenticated
// access to a protected route gives a redirect to the login route. The check
// is advisory: the API enforces access on its side.
func Guard(path string, session Session) (Match, string, error) {
	m := MatchPath(path)
	if !session.Ready() {
		return m, "", ErrNotReady
	}

	if m.Route.Protected {
		if _, ok := session.Current(); !ok {
			return m, RouteLogin.Pattern, nil
		}
	}
	return m, "", nil
}
