package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/portostore/portostore/app/catalog"
	"github.com/portostore/portostore/app/models"
	"github.com/portostore/portostore/pkg/bind"
	"github.com/portostore/portostore/pkg/metrics"
	"github.com/portostore/portostore/pkg/response"
)

// ProductReader is the read surface the admin product endpoints need.
type ProductReader interface {
	AdminProducts(ctx context.Context) ([]catalog.AdminProductRow, error)
	ProductForEdit(ctx context.Context, id uint) (*models.Product, error)
	FormVocabularies(ctx context.Context) (*catalog.FormVocab, error)
}

// ProductWriter is the write surface behind the product forms.
type ProductWriter interface {
	CreateProduct(ctx context.Context, in catalog.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id, version uint, in catalog.ProductInput) (*models.Product, error)
}

type ProductController struct {
	reader ProductReader
	writer ProductWriter
}

func NewProductController(r ProductReader, w ProductWriter) *ProductController {
	return &ProductController{reader: r, writer: w}
}

// List serves the admin product table, newest-first.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	rows, err := c.reader.AdminProducts(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "read_failed")
		return
	}
	response.Success(w, rows)
}

// FormOptions serves the reference vocabularies the product form renders:
// categories, measurement units, payment types, sizes.
func (c *ProductController) FormOptions(w http.ResponseWriter, r *http.Request) {
	vocab, err := c.reader.FormVocabularies(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "read_failed")
		return
	}
	response.Success(w, vocab)
}

// Create handles the product creation form submit.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var in catalog.ProductInput
	if err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid_body")
		return
	}

	product, err := c.writer.CreateProduct(r.Context(), in)
	metrics.CatalogWrites.WithLabelValues("create", writeOutcome(err)).Inc()
	if err != nil {
		renderCatalogError(w, err)
		return
	}
	response.Created(w, product)
}

// Show loads one product with its owned rows for the edit form.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	product, err := c.reader.ProductForEdit(r.Context(), id)
	if err != nil {
		renderCatalogError(w, err)
		return
	}
	response.Success(w, product)
}

// Update handles the edit form submit. The client echoes back the version it
// loaded; a stale version is rejected with 409 so the second writer never
// silently overwrites the first.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var body struct {
		catalog.ProductInput
		Version uint `json:"version"`
	}
	if err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid_body")
		return
	}

	product, err := c.writer.UpdateProduct(r.Context(), id, body.Version, body.ProductInput)
	metrics.CatalogWrites.WithLabelValues("update", writeOutcome(err)).Inc()
	if err != nil {
		renderCatalogError(w, err)
		return
	}
	response.Success(w, product)
}

// pathID parses the {id} route parameter, responding 404 when malformed.
func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.NotFound(w)
		return 0, false
	}
	return uint(id), true
}
