// Package routes maps the HTTP surface onto controllers. Controllers are
// constructed by the server and handed in fully wired; this package only
// decides paths, names, and which middleware guards what.
package routes

import (
	"net/http"
	"time"

	"github.com/portostore/portostore/app/controllers"
	"github.com/portostore/portostore/pkg/metrics"
	"github.com/portostore/portostore/pkg/middleware"
	"github.com/portostore/portostore/pkg/router"
	"github.com/portostore/portostore/pkg/ws"
)

// Deps carries the wired controllers and handlers the route table mounts.
type Deps struct {
	Storefront *controllers.StorefrontController
	Products   *controllers.ProductController
	Categories *controllers.CategoryController
	Orders     *controllers.OrderController
	Upload     *controllers.UploadController
	GraphQL    http.Handler
	Hub        *ws.Hub

	// AdminSecret guards /api/admin when non-empty.
	AdminSecret string

	// LocalStorageRoot, when set, is served under /storage so locally
	// stored uploads resolve at their public URLs.
	LocalStorageRoot string
}

// uploadsPerMinute caps image uploads per client IP.
const uploadsPerMinute = 30

// Register mounts every route.
func Register(r *router.Router, d Deps) {
	r.Get("/", "root", d.Storefront.Health)
	r.Handle("/metrics", "metrics", metrics.Handler())
	r.Get("/ws/catalog", "ws.catalog", d.Hub.Handler())

	if d.LocalStorageRoot != "" {
		r.Handle("/storage/*", "storage.files",
			http.StripPrefix("/storage/", http.FileServer(http.Dir(d.LocalStorageRoot))))
	}

	api := r.Group("/api")
	api.Get("/storefront/home", "storefront.home", d.Storefront.Home)
	api.Get("/storefront/categories/{slug}", "storefront.category", d.Storefront.Category)
	// Uploads write to disk, so they carry a much tighter per-IP budget
	// than the router-wide limit.
	api.Post("/upload", "upload.store", d.Upload.Store,
		middleware.RateLimit(uploadsPerMinute, time.Minute))
	api.Get("/graphql", "graphql", d.GraphQL.ServeHTTP)
	api.Post("/graphql", "", d.GraphQL.ServeHTTP)

	admin := api.Group("/admin", middleware.AdminGuard(d.AdminSecret))
	admin.Get("/categories", "admin.categories.index", d.Categories.List)
	admin.Post("/categories", "admin.categories.store", d.Categories.Create)
	admin.Get("/products", "admin.products.index", d.Products.List)
	admin.Post("/products", "admin.products.store", d.Products.Create)
	admin.Get("/products/form", "admin.products.form", d.Products.FormOptions)
	admin.Get("/products/{id}", "admin.products.show", d.Products.Show)
	admin.Put("/products/{id}", "admin.products.update", d.Products.Update)
	admin.Get("/orders", "admin.orders.index", d.Orders.List)
}
