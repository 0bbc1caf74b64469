package product

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/middlewares"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/servererrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeService struct {
	products map[int64]*Product
	created  *CreateProductRequest
	query    *GetAllProductsRequestQuery
}

func (f *fakeService) createProduct(ctx context.Context, newProduct *CreateProductRequest) (*Product, error) {
	f.created = newProduct
	for _, p := range f.products {
		if p.Barcode == newProduct.Barcode {
			return nil, fmt.Errorf("%w: barcode %q already exists", servererrors.ErrDuplicateEntry, p.Barcode)
		}
	}
	return &Product{ProductID: 10, ProductName: newProduct.ProductName}, nil
}

func (f *fakeService) updateProduct(ctx context.Context, update *UpdateProductRequest) (*Product, error) {
	p, ok := f.products[update.ProductID]
	if !ok {
		return nil, servererrors.ErrResourceNotFound
	}
	p.StockAvailable = *update.StockAvailable
	return p, nil
}

func (f *fakeService) getAllProducts(ctx context.Context, query *GetAllProductsRequestQuery) ([]*Product, int, error) {
	f.query = query
	products := make([]*Product, 0, len(f.products))
	for _, p := range f.products {
		products = append(products, p)
	}
	return products, 45, nil
}

func (f *fakeService) getProduct(ctx context.Context, productID int64) (*Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, fmt.Errorf("%w: product not found with ID: %d", servererrors.ErrResourceNotFound, productID)
	}
	return p, nil
}

func (f *fakeService) productNameExists(ctx context.Context, name string) (bool, error) {
	for _, p := range f.products {
		if p.ProductName == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeService) barcodeExists(ctx context.Context, barcode string) (bool, error) {
	for _, p := range f.products {
		if p.Barcode == barcode {
			return true, nil
		}
	}
	return false, nil
}

func newTestRouter() (*chi.Mux, *fakeService) {
	service := &fakeService{
		products: map[int64]*Product{
			1: {
				ProductID:      1,
				ProductName:    "Pencil",
				StockAvailable: 10,
				Price:          decimal.RequireFromString("5.00"),
				Barcode:        "PENC0001",
				BrandID:        1,
				CategoryID:     1,
			},
		},
	}

	router := chi.NewRouter()
	NewHandler(service, middlewares.NewMiddleware(zap.NewNop())).RegisterRoutes(router)
	return router, service
}

type envelope struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Errors     json.RawMessage `json:"errors"`
}

func serve(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestHandler_createProduct(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "created",
			body:       `{"productName":"Eraser","stockAvailable":0,"price":"1.50","barcode":"ERAS0001","brandId":1,"categoryId":2}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "duplicate barcode",
			body:       `{"productName":"Eraser","stockAvailable":3,"price":2,"barcode":"PENC0001","brandId":1,"categoryId":2}`,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "price below one",
			body:       `{"productName":"Eraser","stockAvailable":3,"price":0.5,"barcode":"ERAS0001","brandId":1,"categoryId":2}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "price finer than a cent",
			body:       `{"productName":"Eraser","stockAvailable":3,"price":"12.345","barcode":"ERAS0001","brandId":1,"categoryId":2}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad barcode",
			body:       `{"productName":"Eraser","stockAvailable":3,"price":2,"barcode":"eras01","brandId":1,"categoryId":2}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative stock",
			body:       `{"productName":"Eraser","stockAvailable":-1,"price":2,"barcode":"ERAS0001","brandId":1,"categoryId":2}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field",
			body:       `{"productName":"Eraser","colour":"pink"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not json",
			body:       `productName=Eraser`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter()

			rec, env := serve(t, router, http.MethodPost, "/products", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus, env.StatusCode)
			assert.Equal(t, tt.wantStatus == http.StatusCreated, env.Success)
		})
	}
}

func TestHandler_getProduct(t *testing.T) {
	router, _ := newTestRouter()

	rec, env := serve(t, router, http.MethodGet, "/products/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var p Product
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "Pencil", p.ProductName)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("5")))

	rec, _ = serve(t, router, http.MethodGet, "/products/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	for _, id := range []string{"0", "-3", "abc"} {
		rec, _ = serve(t, router, http.MethodGet, "/products/"+id, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, id)
	}
}

func TestHandler_updateProduct(t *testing.T) {
	router, service := newTestRouter()

	rec, _ := serve(t, router, http.MethodPut, "/products/1",
		`{"productName":"Pencil","stockAvailable":25,"price":5,"barcode":"PENC0001","brandId":1,"categoryId":1}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 25, service.products[1].StockAvailable)
}

func TestHandler_getAllProducts(t *testing.T) {
	router, service := newTestRouter()

	rec, env := serve(t, router, http.MethodGet, "/products?sort=price:desc&page=2&limit=20&search=Pen&brandID=3", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "price", service.query.SortOpts.SortBy)
	assert.Equal(t, "desc", service.query.SortOpts.SortOpt)
	assert.Equal(t, uint64(2), service.query.PageOpts.Page)
	assert.Equal(t, "Pen", service.query.FilterOpts.Search)
	assert.Equal(t, int64(3), service.query.FilterOpts.BrandID)

	var resp GetAllProductsResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, 45, resp.AllProductsCount)
	assert.Equal(t, 3, resp.TotalPagesCount)
	assert.Equal(t, 5, resp.ItemsLeftCount)
	assert.Equal(t, 1, resp.PagesLeftCount)

	rec, _ = serve(t, router, http.MethodGet, "/products?sort=barcode", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = serve(t, router, http.MethodGet, "/products?limit=500", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_existenceChecks(t *testing.T) {
	router, _ := newTestRouter()

	rec, env := serve(t, router, http.MethodGet, "/products/check-name?productName=Pencil", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"exists":true}`, string(env.Data))

	rec, env = serve(t, router, http.MethodGet, "/products/check-barcode?barcode=ERAS0001", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"exists":false}`, string(env.Data))

	rec, _ = serve(t, router, http.MethodGet, "/products/check-barcode", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
