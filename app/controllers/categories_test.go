package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portostore/portostore/app/catalog"
	"github.com/portostore/portostore/app/models"
)

type mockCategoryStore struct {
	categories []models.Category
	createErr  error
	gotName    string
}

func (m *mockCategoryStore) AdminCategories(context.Context) ([]models.Category, error) {
	return m.categories, nil
}

func (m *mockCategoryStore) CreateCategory(_ context.Context, name string) (*models.Category, error) {
	m.gotName = name
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &models.Category{ID: 1, Name: name}, nil
}

func TestCategoryCreate(t *testing.T) {
	store := &mockCategoryStore{}
	c := NewCategoryController(store, store)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/categories",
		bytes.NewBufferString(`{"name":"Vestidos"}`))
	rec := httptest.NewRecorder()
	c.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Vestidos", store.gotName)
}

func TestCategoryCreateValidation(t *testing.T) {
	store := &mockCategoryStore{createErr: &catalog.ValidationError{Field: "name", Reason: "is required"}}
	c := NewCategoryController(store, store)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/categories",
		bytes.NewBufferString(`{"name":""}`))
	rec := httptest.NewRecorder()
	c.Create(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCategoryList(t *testing.T) {
	store := &mockCategoryStore{categories: []models.Category{{ID: 1, Name: "Vestidos"}}}
	c := NewCategoryController(store, store)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/categories", nil)
	rec := httptest.NewRecorder()
	c.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Vestidos")
}
