package controllers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/portostore/portostore/app/catalog"
	"github.com/portostore/portostore/pkg/logger"
	"github.com/portostore/portostore/pkg/response"
)

// StorefrontReader is the read surface the public endpoints need.
type StorefrontReader interface {
	Home(ctx context.Context) (*catalog.HomeView, error)
	ProductsByCategory(ctx context.Context, name string) ([]catalog.ProductCard, error)
}

type StorefrontController struct {
	reader StorefrontReader
}

func NewStorefrontController(r StorefrontReader) *StorefrontController {
	return &StorefrontController{reader: r}
}

// Health answers the root path with service identity and status.
func (c *StorefrontController) Health(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{
		"service": "portostore",
		"status":  "ok",
	})
}

// Home serves the landing payload: featured products plus category tiles.
// A failed read is logged and rendered as an empty page, never a 5xx —
// shoppers get a degraded storefront instead of an error screen.
func (c *StorefrontController) Home(w http.ResponseWriter, r *http.Request) {
	view, err := c.reader.Home(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("storefront: home read failed", "error", err)
		view = &catalog.HomeView{
			Featured:   []catalog.ProductCard{},
			Categories: []catalog.CategoryTile{},
		}
	}
	response.Success(w, view)
}

// Category serves the product cards of one category, matched by the decoded
// slug against the category name, case-insensitively. Unknown categories and
// failed reads both render an empty list.
func (c *StorefrontController) Category(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if decoded, err := url.PathUnescape(slug); err == nil {
		slug = decoded
	}

	cards, err := c.reader.ProductsByCategory(r.Context(), slug)
	if err != nil {
		logger.WithCtx(r.Context()).Error("storefront: category read failed",
			"slug", slug, "error", err)
		cards = []catalog.ProductCard{}
	}
	if cards == nil {
		cards = []catalog.ProductCard{}
	}
	response.Success(w, cards)
}
