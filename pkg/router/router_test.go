package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupJoinsPrefixAndMiddleware(t *testing.T) {
	r := New()

	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, req)
			})
		}
	}

	api := r.Group("/api/", tag("api"))
	admin := api.Group("admin", tag("admin"))
	admin.Get("/", "admin.overview", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}, tag("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, []string{"api", "admin", "route"}, order)
}

func TestURLFillsParams(t *testing.T) {
	r := New()
	r.Post("/api/alerts/{id}/read", "alerts.read", func(http.ResponseWriter, *http.Request) {})

	u, err := r.URL("alerts.read", map[string]string{"id": "7"})
	require.NoError(t, err)
	assert.Equal(t, "/api/alerts/7/read", u)

	_, err = r.URL("alerts.read", nil)
	assert.Error(t, err)

	_, err = r.URL("missing", nil)
	assert.Error(t, err)
}

func TestRoutesSorted(t *testing.T) {
	r := New()
	noop := func(http.ResponseWriter, *http.Request) {}
	r.Post("/api/sales", "sales.store", noop)
	r.Get("/api/sales", "sales.index", noop)
	r.Get("/api/alerts", "", noop)

	routes := r.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, RouteInfo{Method: http.MethodGet, Path: "/api/alerts"}, routes[0])
	assert.Equal(t, RouteInfo{Method: http.MethodGet, Path: "/api/sales", Name: "sales.index"}, routes[1])
	assert.Equal(t, RouteInfo{Method: http.MethodPost, Path: "/api/sales", Name: "sales.store"}, routes[2])
}
