// Package controllers holds the HTTP handlers. Controllers receive their
// collaborators through small interfaces so handler tests can substitute
// mocks without a database.
package controllers

import (
	"errors"
	"net/http"

	"github.com/portostore/portostore/app/catalog"
	"github.com/portostore/portostore/pkg/response"
)

// renderCatalogError maps the catalog error taxonomy onto HTTP statuses.
func renderCatalogError(w http.ResponseWriter, err error) {
	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ValidationError(w, map[string]string{verr.Field: verr.Reason})
	case errors.Is(err, catalog.ErrProductNotFound):
		response.NotFound(w)
	case errors.Is(err, catalog.ErrVersionConflict):
		response.Conflict(w, "product was modified by another writer")
	default:
		response.Error(w, http.StatusInternalServerError, "write_failed")
	}
}

// writeOutcome labels a write result for the catalog write counter.
func writeOutcome(err error) string {
	if err == nil {
		return "ok"
	}
	var verr *catalog.ValidationError
	if errors.As(err, &verr) {
		return "validation"
	}
	return "error"
}
