package controllers

import (
	"context"
	"net/http"

	"github.com/portostore/portostore/app/models"
	"github.com/portostore/portostore/pkg/bind"
	"github.com/portostore/portostore/pkg/metrics"
	"github.com/portostore/portostore/pkg/response"
)

type CategoryReader interface {
	AdminCategories(ctx context.Context) ([]models.Category, error)
}

type CategoryWriter interface {
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
}

type CategoryController struct {
	reader CategoryReader
	writer CategoryWriter
}

func NewCategoryController(r CategoryReader, w CategoryWriter) *CategoryController {
	return &CategoryController{reader: r, writer: w}
}

func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	categories, err := c.reader.AdminCategories(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "read_failed")
		return
	}
	response.Success(w, categories)
}

func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid_body")
		return
	}

	category, err := c.writer.CreateCategory(r.Context(), body.Name)
	metrics.CatalogWrites.WithLabelValues("category", writeOutcome(err)).Inc()
	if err != nil {
		renderCatalogError(w, err)
		return
	}
	response.Created(w, category)
}
