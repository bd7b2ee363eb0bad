package catalog

import (
	"errors"
	"fmt"
)

// ErrProductNotFound is returned when a product identity does not exist.
var ErrProductNotFound = errors.New("product not found")

// ErrVersionConflict is returned when an update carries a stale product
// version. One writer at a time per product identity.
var ErrVersionConflict = errors.New("product was modified by another writer")

// ValidationError means the input never reached the backend.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

// WriteError wraps a failed backend write. The whole operation is rolled
// back, so Step only identifies where the transaction aborted.
type WriteError struct {
	Step string // "product" | "images" | "price" | "stock" | "category"
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Step, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ReadError wraps a failed read view. Storefront callers log it and render
// an empty result instead of failing the page.
type ReadError struct {
	View string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.View, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
