package customer

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/handlerutils"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/servererrors"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/validate"
)

type servicer interface {
	createCustomer(ctx context.Context, req *CreateCustomerRequest) (*Customer, error)
	login(ctx context.Context, req *LoginRequest) (*Customer, error)
	usernameExists(ctx context.Context, username string) (bool, error)
	emailExists(ctx context.Context, email string) (bool, error)
	locationExists(ctx context.Context, kind LocationKind, name string) (bool, error)
}

type middleware interface {
	ErrorHandler(h handlerutils.APIHandler) http.HandlerFunc
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(customerService servicer, middleware middleware) *handler {
	return &handler{
		service:    customerService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post("/customers", h.middleware.ErrorHandler(h.createCustomerHandler))
	router.Post("/customers/login", h.middleware.ErrorHandler(h.loginHandler))
	router.Get("/customers/check-username", h.middleware.ErrorHandler(h.checkUsernameHandler))
	router.Get("/customers/check-email", h.middleware.ErrorHandler(h.checkEmailHandler))

	router.Get("/locations/{kind}/check", h.middleware.ErrorHandler(h.checkLocationHandler))
}

func (h *handler) createCustomerHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	defer r.Body.Close()

	payload, err := handlerutils.DecodeValid[CreateCustomerRequest](r)
	if err != nil {
		return err
	}

	customer, err := h.service.createCustomer(ctx, payload)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(w, http.StatusCreated, "customer created", customer)
}

func (h *handler) loginHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	defer r.Body.Close()

	payload, err := handlerutils.DecodeValid[LoginRequest](r)
	if err != nil {
		return err
	}

	customer, err := h.service.login(ctx, payload)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"login successful",
		LoginResponse{
			Authenticated: true,
			CustomerID:    customer.CustomerID,
		},
	)
}

func (h *handler) checkUsernameHandler(w http.ResponseWriter, r *http.Request) error {
	username := r.URL.Query().Get("username")
	if strings.TrimSpace(username) == "" {
		return servererrors.New(http.StatusBadRequest, "username cannot be blank", nil)
	}

	exists, err := h.service.usernameExists(r.Context(), username)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(w, http.StatusOK, "username checked", ExistsResponse{Exists: exists})
}

func (h *handler) checkEmailHandler(w http.ResponseWriter, r *http.Request) error {
	email := r.URL.Query().Get("email")

	err := validate.Var(email, "required,email")
	if err != nil {
		return servererrors.New(http.StatusBadRequest, servererrors.ErrURLQueryParams.Error(), map[string]string{"email": err.Error()})
	}

	exists, err := h.service.emailExists(r.Context(), email)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(w, http.StatusOK, "email checked", ExistsResponse{Exists: exists})
}

func (h *handler) checkLocationHandler(w http.ResponseWriter, r *http.Request) error {
	kind := LocationKind(chi.URLParam(r, "kind"))
	if _, ok := locationTables[kind]; !ok {
		return servererrors.New(
			http.StatusBadRequest,
			"location kind must be one of cities, states, countries",
			nil,
		)
	}

	name, err := handlerutils.QueryAlpha(r, "name")
	if err != nil {
		return err
	}

	exists, err := h.service.locationExists(r.Context(), kind, name)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(w, http.StatusOK, string(kind)+" checked", ExistsResponse{Exists: exists})
}
