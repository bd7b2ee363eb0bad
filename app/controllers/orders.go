package controllers

import (
	"context"
	"net/http"

	"github.com/portostore/portostore/app/catalog"
	"github.com/portostore/portostore/pkg/response"
)

type OrderReader interface {
	Orders(ctx context.Context) ([]catalog.OrderRow, error)
}

type OrderController struct {
	reader OrderReader
}

func NewOrderController(r OrderReader) *OrderController {
	return &OrderController{reader: r}
}

// List serves the admin order table: newest-first, capped, with payment type
// name and payment record statuses already normalized for display.
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	rows, err := c.reader.Orders(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "read_failed")
		return
	}
	response.Success(w, rows)
}
