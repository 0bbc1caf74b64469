package catalog

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/handlerutils"
)

type servicer interface {
	createBrand(ctx context.Context, req *CreateBrandRequest) (*Brand, error)
	createCategory(ctx context.Context, req *CreateCategoryRequest) (*Category, error)
	getAllBrands(ctx context.Context) ([]*Brand, error)
	getAllCategories(ctx context.Context) ([]*Category, error)
}

type middleware interface {
	ErrorHandler(h handlerutils.APIHandler) http.HandlerFunc
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(catalogService servicer, middleware middleware) *handler {
	return &handler{
		service:    catalogService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get("/brands", h.middleware.ErrorHandler(h.getAllBrandsHandler))
	router.Post("/brands", h.middleware.ErrorHandler(h.createBrandHandler))

	router.Get("/categories", h.middleware.ErrorHandler(h.getAllCategoriesHandler))
	router.Post("/categories", h.middleware.ErrorHandler(h.createCategoryHandler))
}

func (h *handler) createBrandHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	defer r.Body.Close()

	payload, err := handlerutils.DecodeValid[CreateBrandRequest](r)
	if err != nil {
		return err
	}

	brand, err := h.service.createBrand(ctx, payload)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(w, http.StatusCreated, "brand created", brand)
}

func (h *handler) createCategoryHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	defer r.Body.Close()

	payload, err := handlerutils.DecodeValid[CreateCategoryRequest](r)
	if err != nil {
		return err
	}

	category, err := h.service.createCategory(ctx, payload)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(w, http.StatusCreated, "category created", category)
}

func (h *handler) getAllBrandsHandler(w http.ResponseWriter, r *http.Request) error {
	brands, err := h.service.getAllBrands(r.Context())
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(w, http.StatusOK, "all brands retrieved", brands)
}

func (h *handler) getAllCategoriesHandler(w http.ResponseWriter, r *http.Request) error {
	categories, err := h.service.getAllCategories(r.Context())
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(w, http.StatusOK, "all categories retrieved", categories)
}
