package product

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/handlerutils"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/servererrors"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/validate"
)

type servicer interface {
	createProduct(ctx context.Context, newProduct *CreateProductRequest) (*Product, error)
	updateProduct(ctx context.Context, update *UpdateProductRequest) (*Product, error)
	getAllProducts(ctx context.Context, query *GetAllProductsRequestQuery) ([]*Product, int, error)
	getProduct(ctx context.Context, productID int64) (*Product, error)
	productNameExists(ctx context.Context, name string) (bool, error)
	barcodeExists(ctx context.Context, barcode string) (bool, error)
}

type middleware interface {
	ErrorHandler(h handlerutils.APIHandler) http.HandlerFunc
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(productService servicer, middleware middleware) *handler {
	return &handler{
		service:    productService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/products",
		h.middleware.ErrorHandler(
			h.getAllProductsHandler,
		),
	)

	router.Get(
		"/products/check-name",
		h.middleware.ErrorHandler(
			h.checkProductNameHandler,
		),
	)

	router.Get(
		"/products/check-barcode",
		h.middleware.ErrorHandler(
			h.checkBarcodeHandler,
		),
	)

	router.Get(
		"/products/{productID}",
		h.middleware.ErrorHandler(
			h.getProductHandler,
		),
	)

	router.Post(
		"/products",
		h.middleware.ErrorHandler(
			h.createProductHandler,
		),
	)

	router.Put(
		"/products/{productID}",
		h.middleware.ErrorHandler(
			h.updateProductHandler,
		),
	)
}

func (h *handler) createProductHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	defer r.Body.Close()

	payload, err := handlerutils.DecodeValid[CreateProductRequest](r)
	if err != nil {
		return err
	}

	product, err := h.service.createProduct(ctx, payload)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(w, http.StatusCreated, "product created", product)
}

// updateProductHandler replaces every field of the product in the path.
func (h *handler) updateProductHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	defer r.Body.Close()

	productID, err := handlerutils.PathID(r, "productID")
	if err != nil {
		return err
	}

	payload, err := handlerutils.DecodeValid[UpdateProductRequest](r)
	if err != nil {
		return err
	}
	payload.ProductID = productID

	product, err := h.service.updateProduct(ctx, payload)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(w, http.StatusOK, "product updated", product)
}

func (h *handler) getAllProductsHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	queryItems := getQueryItems(r.URL.Query())

	if err := validate.StructFields(queryItems); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrURLQueryParams.Error(),
			err,
		)
	}

	products, totalCount, err := h.service.getAllProducts(ctx, queryItems)
	if err != nil {
		return err
	}

	limit := int(queryItems.PageOpts.Limit)
	totalPagesCount := (totalCount + limit - 1) / limit
	itemsLeftCount := totalCount - int(queryItems.PageOpts.Page)*limit
	pagesLeftCount := (itemsLeftCount + limit - 1) / limit

	if itemsLeftCount < 0 {
		itemsLeftCount = 0
		pagesLeftCount = 0
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all products retrieved",
		GetAllProductsResponse{
			AllProductsCount:   totalCount,
			RetrievedItemCount: len(products),
			ItemsLeftCount:     itemsLeftCount,
			TotalPagesCount:    totalPagesCount,
			PagesLeftCount:     pagesLeftCount,
			Products:           products,
		},
	)
}

func (h *handler) getProductHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := handlerutils.PathID(r, "productID")
	if err != nil {
		return err
	}

	product, err := h.service.getProduct(r.Context(), productID)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product found",
		product,
	)
}

func (h *handler) checkProductNameHandler(w http.ResponseWriter, r *http.Request) error {
	name := r.URL.Query().Get("productName")
	if strings.TrimSpace(name) == "" {
		return servererrors.New(
			http.StatusBadRequest,
			"productName cannot be blank",
			nil,
		)
	}

	exists, err := h.service.productNameExists(r.Context(), name)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product name checked",
		ExistsResponse{Exists: exists},
	)
}

func (h *handler) checkBarcodeHandler(w http.ResponseWriter, r *http.Request) error {
	barcode := r.URL.Query().Get("barcode")
	if strings.TrimSpace(barcode) == "" {
		return servererrors.New(
			http.StatusBadRequest,
			"barcode cannot be blank",
			nil,
		)
	}

	exists, err := h.service.barcodeExists(r.Context(), barcode)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"barcode checked",
		ExistsResponse{Exists: exists},
	)
}

func getQueryItems(queriesParams url.Values) *GetAllProductsRequestQuery {
	query := new(GetAllProductsRequestQuery)

	results := strings.Split(queriesParams.Get("sort"), ":")

	query.SortOpts.SortBy = "product_id"
	query.SortOpts.SortOpt = "asc"

	if len(results) == 1 && results[0] != "" {
		query.SortOpts.SortBy = results[0]
	}

	if len(results) == 2 {
		query.SortOpts.SortBy = results[0]
		query.SortOpts.SortOpt = results[1]
	}

	query.FilterOpts.Search = queriesParams.Get("search")

	query.FilterOpts.BrandID = stringToInt64(0, queriesParams.Get("brandID"))
	query.FilterOpts.CategoryID = stringToInt64(0, queriesParams.Get("categoryID"))

	query.PageOpts.Page = stringToUint64(
		1,
		queriesParams.Get("page"),
	)

	query.PageOpts.Limit = stringToUint64(
		20,
		queriesParams.Get("limit"),
	)

	query.FilterOpts.PriceMin = stringToFloat64(
		0.00,
		queriesParams.Get("priceMin"),
	)

	query.FilterOpts.PriceMax = stringToFloat64(
		0.00,
		queriesParams.Get("priceMax"),
	)

	return query
}

func stringToUint64(defaultValue uint64, field string) uint64 {
	num, err := strconv.ParseUint(field, 10, 0)
	if err != nil {
		return defaultValue
	}

	return num
}

func stringToInt64(defaultValue int64, field string) int64 {
	num, err := strconv.ParseInt(field, 10, 64)
	if err != nil {
		return defaultValue
	}

	return num
}

func stringToFloat64(defaultValue float64, field string) float64 {
	num, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return defaultValue
	}

	return num
}
