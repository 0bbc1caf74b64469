package inventory

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/handlerutils"
)

type servicer interface {
	getMovements(ctx context.Context, productID int64) ([]*StockMovement, error)
}

type middleware interface {
	ErrorHandler(h handlerutils.APIHandler) http.HandlerFunc
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(inventoryService servicer, middleware middleware) *handler {
	return &handler{
		service:    inventoryService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/products/{productID}/stock-movements",
		h.middleware.ErrorHandler(
			h.getStockMovementsHandler,
		),
	)
}

func (h *handler) getStockMovementsHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := handlerutils.PathID(r, "productID")
	if err != nil {
		return err
	}

	movements, err := h.service.getMovements(r.Context(), productID)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"stock movements retrieved",
		movements,
	)
}
