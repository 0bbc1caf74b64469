package middlewares

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sowmyavarshini/Inventory-Management-System/internal/servererrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type errorBody struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Errors     any    `json:"errors"`
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "server error keeps its status and message",
			err:         servererrors.New(http.StatusBadRequest, "validation failed", map[string]string{"price": "must be greater than or equal to 1"}),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "validation failed",
		},
		{
			name:        "not found",
			err:         fmt.Errorf("%w: product not found with ID: 4", servererrors.ErrResourceNotFound),
			wantStatus:  http.StatusNotFound,
			wantMessage: "resource not found: product not found with ID: 4",
		},
		{
			name:        "out of stock",
			err:         fmt.Errorf("%w: \"Pencil\" (product 1)", servererrors.ErrOutOfStock),
			wantStatus:  http.StatusConflict,
			wantMessage: "product is out of stock: \"Pencil\" (product 1)",
		},
		{
			name:        "insufficient stock",
			err:         servererrors.ErrInsufficientStock,
			wantStatus:  http.StatusConflict,
			wantMessage: servererrors.ErrInsufficientStock.Error(),
		},
		{
			name:        "stale write after retries",
			err:         servererrors.ErrStaleWrite,
			wantStatus:  http.StatusConflict,
			wantMessage: servererrors.ErrStaleWrite.Error(),
		},
		{
			name:        "invalid credentials",
			err:         servererrors.ErrInvalidCredentials,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: servererrors.ErrInvalidCredentials.Error(),
		},
		{
			name:        "unknown errors are hidden",
			err:         errors.New("pq: connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: servererrors.ErrSomethingWentWrong.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := NewMiddleware(zap.NewNop())
			handler := mw.ErrorHandler(func(w http.ResponseWriter, r *http.Request) error {
				return tt.err
			})

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders/1", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantStatus, body.StatusCode)
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}

func TestErrorHandler_logsByStatus(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	mw := NewMiddleware(zap.New(core))

	for _, err := range []error{servererrors.ErrResourceNotFound, errors.New("boom")} {
		handler := mw.ErrorHandler(func(w http.ResponseWriter, r *http.Request) error {
			return err
		})
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
}

func TestErrorHandler_passesThroughSuccess(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	mw := NewMiddleware(zap.New(core))

	handler := mw.ErrorHandler(func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusNoContent)
		return nil
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, logs.Len())
}
