package order

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/handlerutils"
)

type servicer interface {
	createOrder(ctx context.Context, req *CreateOrderRequest) (*Order, error)
	updateOrder(ctx context.Context, req *UpdateOrderRequest) (*Order, error)
	getOrder(ctx context.Context, orderID int64) (*Order, error)
	getAllOrders(ctx context.Context) ([]*Order, error)
	getOrdersForProduct(ctx context.Context, productID int64) ([]*Order, error)
}

type middleware interface {
	ErrorHandler(h handlerutils.APIHandler) http.HandlerFunc
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(orderService servicer, middleware middleware) *handler {
	return &handler{
		service:    orderService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/orders",
		h.middleware.ErrorHandler(
			h.createOrderHandler,
		),
	)

	router.Put(
		"/orders/{orderID}",
		h.middleware.ErrorHandler(
			h.updateOrderHandler,
		),
	)

	router.Get(
		"/orders",
		h.middleware.ErrorHandler(
			h.getAllOrdersHandler,
		),
	)

	router.Get(
		"/orders/{orderID}",
		h.middleware.ErrorHandler(
			h.getOrderHandler,
		),
	)

	router.Get(
		"/products/{productID}/orders",
		h.middleware.ErrorHandler(
			h.getProductOrdersHandler,
		),
	)
}

func (h *handler) createOrderHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()
	defer r.Body.Close()

	payload, err := handlerutils.DecodeValid[CreateOrderRequest](r)
	if err != nil {
		return err
	}

	order, err := h.service.createOrder(ctx, payload)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"order placed",
		order,
	)
}

func (h *handler) updateOrderHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()
	defer r.Body.Close()

	orderID, err := handlerutils.PathID(r, "orderID")
	if err != nil {
		return err
	}

	payload, err := handlerutils.DecodeValid[UpdateOrderRequest](r)
	if err != nil {
		return err
	}
	payload.OrderID = orderID

	order, err := h.service.updateOrder(ctx, payload)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"order updated",
		order,
	)
}

func (h *handler) getOrderHandler(w http.ResponseWriter, r *http.Request) error {
	orderID, err := handlerutils.PathID(r, "orderID")
	if err != nil {
		return err
	}

	order, err := h.service.getOrder(r.Context(), orderID)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(w, http.StatusOK, "order found", order)
}

func (h *handler) getAllOrdersHandler(w http.ResponseWriter, r *http.Request) error {
	orders, err := h.service.getAllOrders(r.Context())
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(w, http.StatusOK, "all orders retrieved", orders)
}

func (h *handler) getProductOrdersHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := handlerutils.PathID(r, "productID")
	if err != nil {
		return err
	}

	orders, err := h.service.getOrdersForProduct(r.Context(), productID)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(w, http.StatusOK, "product orders retrieved", orders)
}
