package report

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/features/product"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/handlerutils"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/servererrors"
)

type servicer interface {
	productsAfterID(ctx context.Context, productID int64) ([]*product.Product, error)
	productsByName(ctx context.Context, name string) ([]*product.Product, error)
	productsByNameDesc(ctx context.Context) ([]*product.Product, error)
	productsByBrandName(ctx context.Context, brandName string) ([]*product.Product, error)
	productsByCategoryName(ctx context.Context, categoryName string) ([]*product.Product, error)
	productsAbovePrice(ctx context.Context, price decimal.Decimal) ([]*ProductPrice, error)
	productNamesUpper(ctx context.Context) ([]*ProductUpper, error)
	productOrdersAbovePrice(ctx context.Context, price decimal.Decimal) ([]*ProductOrder, error)
	categoryCounts(ctx context.Context) ([]*CategoryCount, error)
	categoryAveragePrices(ctx context.Context) ([]*CategoryAveragePrice, error)
	brandCounts(ctx context.Context, name string, minProducts int) ([]*BrandCount, error)
	productOrderDetails(ctx context.Context) ([]*ProductOrderDetail, error)
	sales(ctx context.Context) ([]*Sale, error)
	customerOrders(ctx context.Context, customerID int64) ([]*CustomerOrder, error)
}

type middleware interface {
	ErrorHandler(h handlerutils.APIHandler) http.HandlerFunc
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(reportService servicer, middleware middleware) *handler {
	return &handler{
		service:    reportService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	routes := map[string]handlerutils.APIHandler{
		"/reports/products-after-id":             h.productsAfterIDHandler,
		"/reports/products-by-price":             h.productsByPriceHandler,
		"/reports/products-by-name":              h.productsByNameHandler,
		"/reports/products-name-desc":            h.productsNameDescHandler,
		"/reports/product-names-upper":           h.productNamesUpperHandler,
		"/reports/product-orders-by-price":       h.productOrdersByPriceHandler,
		"/reports/category-counts":               h.categoryCountsHandler,
		"/reports/category-average-prices":       h.categoryAveragePricesHandler,
		"/reports/brand-counts":                  h.brandCountsHandler,
		"/reports/product-order-details":         h.productOrderDetailsHandler,
		"/reports/sales":                         h.salesHandler,
		"/reports/customers/{customerID}/orders": h.customerOrdersHandler,
		"/reports/products-by-brand":             h.productsByBrandHandler,
		"/reports/products-by-category":          h.productsByCategoryHandler,
	}

	for pattern, apiHandler := range routes {
		router.Get(pattern, h.middleware.ErrorHandler(apiHandler))
	}
}

func writeReport(w http.ResponseWriter, items any, err error) error {
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(w, http.StatusOK, "report generated", items)
}

func (h *handler) productsAfterIDHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := handlerutils.QueryID(r, "productId")
	if err != nil {
		return err
	}

	products, err := h.service.productsAfterID(r.Context(), productID)
	return writeReport(w, products, err)
}

func (h *handler) productsByPriceHandler(w http.ResponseWriter, r *http.Request) error {
	price, err := handlerutils.QueryDecimal(r, "price")
	if err != nil {
		return err
	}

	items, err := h.service.productsAbovePrice(r.Context(), price)
	return writeReport(w, items, err)
}

func (h *handler) productsByNameHandler(w http.ResponseWriter, r *http.Request) error {
	name, err := handlerutils.QueryAlpha(r, "name")
	if err != nil {
		return err
	}

	products, err := h.service.productsByName(r.Context(), name)
	return writeReport(w, products, err)
}

func (h *handler) productsNameDescHandler(w http.ResponseWriter, r *http.Request) error {
	products, err := h.service.productsByNameDesc(r.Context())
	return writeReport(w, products, err)
}

func (h *handler) productNamesUpperHandler(w http.ResponseWriter, r *http.Request) error {
	items, err := h.service.productNamesUpper(r.Context())
	return writeReport(w, items, err)
}

func (h *handler) productOrdersByPriceHandler(w http.ResponseWriter, r *http.Request) error {
	price, err := handlerutils.QueryDecimal(r, "price")
	if err != nil {
		return err
	}

	items, err := h.service.productOrdersAbovePrice(r.Context(), price)
	return writeReport(w, items, err)
}

func (h *handler) categoryCountsHandler(w http.ResponseWriter, r *http.Request) error {
	items, err := h.service.categoryCounts(r.Context())
	return writeReport(w, items, err)
}

func (h *handler) categoryAveragePricesHandler(w http.ResponseWriter, r *http.Request) error {
	items, err := h.service.categoryAveragePrices(r.Context())
	return writeReport(w, items, err)
}

func (h *handler) brandCountsHandler(w http.ResponseWriter, r *http.Request) error {
	name, err := handlerutils.QueryAlpha(r, "name")
	if err != nil {
		return err
	}

	number, err := handlerutils.QueryInt(r, "number")
	if err != nil {
		return err
	}

	items, err := h.service.brandCounts(r.Context(), name, number)
	return writeReport(w, items, err)
}

func (h *handler) productOrderDetailsHandler(w http.ResponseWriter, r *http.Request) error {
	items, err := h.service.productOrderDetails(r.Context())
	return writeReport(w, items, err)
}

func (h *handler) salesHandler(w http.ResponseWriter, r *http.Request) error {
	items, err := h.service.sales(r.Context())
	return writeReport(w, items, err)
}

func (h *handler) customerOrdersHandler(w http.ResponseWriter, r *http.Request) error {
	customerID, err := handlerutils.PathID(r, "customerID")
	if err != nil {
		return err
	}

	items, err := h.service.customerOrders(r.Context(), customerID)
	return writeReport(w, items, err)
}

func (h *handler) productsByBrandHandler(w http.ResponseWriter, r *http.Request) error {
	brandName := strings.TrimSpace(r.URL.Query().Get("brandName"))
	if brandName == "" {
		return servererrors.New(http.StatusBadRequest, "brandName cannot be blank", nil)
	}

	products, err := h.service.productsByBrandName(r.Context(), brandName)
	return writeReport(w, products, err)
}

func (h *handler) productsByCategoryHandler(w http.ResponseWriter, r *http.Request) error {
	categoryName := strings.TrimSpace(r.URL.Query().Get("categoryName"))
	if categoryName == "" {
		return servererrors.New(http.StatusBadRequest, "categoryName cannot be blank", nil)
	}

	products, err := h.service.productsByCategoryName(r.Context(), categoryName)
	return writeReport(w, products, err)
}
