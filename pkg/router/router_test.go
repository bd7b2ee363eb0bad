package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestNamedRouteURL(t *testing.T) {
	r := New()
	r.Get("/api/admin/products/{id}", "admin.products.show", ok)

	url, err := r.URL("admin.products.show", map[string]string{"id": "7"})
	require.NoError(t, err)
	assert.Equal(t, "/api/admin/products/7", url)

	_, err = r.URL("admin.products.show", nil)
	assert.Error(t, err, "missing parameter must not resolve")

	_, err = r.URL("no.such.route", nil)
	assert.Error(t, err)
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var order []string
	mw := func(tag string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := New()
	api := r.Group("/api", mw("api"))
	admin := api.Group("/admin", mw("admin"))
	admin.Get("/orders", "admin.orders.index", ok)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"api", "admin"}, order)

	path, found := r.Path("admin.orders.index")
	require.True(t, found)
	assert.Equal(t, "/api/admin/orders", path)
}

func TestRoutesListing(t *testing.T) {
	r := New()
	r.Get("/a", "a", ok)
	r.Post("/b", "b", ok)
	r.Get("/c", "", ok) // unnamed routes are not listed

	infos := r.Routes()
	assert.Len(t, infos, 2)
}
