package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/kashvi-shop/pkg/router"
)

func ok(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(body)) }
}

func TestGroupsAndNamedRoutes(t *testing.T) {
	r := router.New()
	products := r.Group("/products/")
	products.Get("/", "products.index", ok("index"))
	products.Get("/{id}", "products.show", ok("show"))
	r.Post("orders", "orders.store", ok("store"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/9", nil))
	assert.Equal(t, "show", rec.Body.String())

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", nil))
	assert.Equal(t, "store", rec.Body.String())

	url, err := r.URL("products.show", map[string]string{"id": "9"})
	require.NoError(t, err)
	assert.Equal(t, "/products/9", url)

	_, err = r.URL("products.show", nil)
	assert.Error(t, err)
	_, err = r.URL("nope", nil)
	assert.Error(t, err)
}

func TestGroupMiddlewareOrder(t *testing.T) {
	var trail []string
	mark := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				trail = append(trail, tag)
				next.ServeHTTP(w, req)
			})
		}
	}

	r := router.New()
	g := r.Group("/a", mark("group"))
	g.Group("/b", mark("nested")).Get("/c", "", ok("c"), mark("route"))

	r.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/a/b/c", nil))
	assert.Equal(t, []string{"group", "nested", "route"}, trail)
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	r.Post("/users", "users.store", ok(""))
	r.Get("/", "home", ok(""))
	r.Get("/users", "", ok(""))

	assert.Equal(t, []router.RouteInfo{
		{Method: http.MethodGet, Path: "/", Name: "home"},
		{Method: http.MethodGet, Path: "/users", Name: ""},
		{Method: http.MethodPost, Path: "/users", Name: "users.store"},
	}, r.Routes())
}
