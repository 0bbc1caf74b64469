package handlerutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/servererrors"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/validate"
)

// APIHandler is an http handler that returns its failure instead of writing
// it, leaving the translation to middlewares.ErrorHandler.
type APIHandler func(w http.ResponseWriter, r *http.Request) error

type successResponse struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

type errorResponse struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Errors     any    `json:"errors,omitempty"`
}

var alphabetPattern = regexp.MustCompile(`^[A-Za-z]+$`)

func ParseJSON(r *http.Request, payload any) error {
	if r.Body == nil {
		return errors.New("missing request body")
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	return decoder.Decode(payload)
}

// DecodeValid parses the request body into a new T and validates it. Both
// failures come back as a 400 ServerError.
func DecodeValid[T any](r *http.Request) (*T, error) {
	var payload *T

	if err := ParseJSON(r, &payload); err != nil || payload == nil {
		return nil, servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := validate.StructFields(payload); err != nil {
		return nil, servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	return payload, nil
}

func WriteJSON(w http.ResponseWriter, statusCode int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(v)
}

func WriteSuccessJSON(w http.ResponseWriter, statusCode int, message string, data any) error {
	return WriteJSON(
		w,
		statusCode,
		successResponse{
			Success:    true,
			StatusCode: statusCode,
			Message:    message,
			Data:       data,
		},
	)
}

func WriteErrorJSON(w http.ResponseWriter, statusCode int, message string, errs any) error {
	return WriteJSON(
		w,
		statusCode,
		errorResponse{
			Success:    false,
			StatusCode: statusCode,
			Message:    message,
			Errors:     errs,
		},
	)
}

// PathID reads a positive integer id from the chi url param named key.
func PathID(r *http.Request, key string) (int64, error) {
	return parseID(chi.URLParam(r, key), key)
}

// QueryID reads a positive integer id from the url query param named key.
func QueryID(r *http.Request, key string) (int64, error) {
	return parseID(r.URL.Query().Get(key), key)
}

func parseID(raw, key string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, servererrors.New(
			http.StatusBadRequest,
			fmt.Sprintf("invalid %s provided", key),
			map[string]string{key: servererrors.ErrInvalidID.Error()},
		)
	}

	return id, nil
}

// QueryInt reads a required integer query param.
func QueryInt(r *http.Request, key string) (int, error) {
	num, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0, servererrors.New(
			http.StatusBadRequest,
			fmt.Sprintf("invalid value for parameter '%s', expected an integer", key),
			nil,
		)
	}

	return num, nil
}

// QueryDecimal reads a required decimal query param.
func QueryDecimal(r *http.Request, key string) (decimal.Decimal, error) {
	num, err := decimal.NewFromString(r.URL.Query().Get(key))
	if err != nil {
		return decimal.Zero, servererrors.New(
			http.StatusBadRequest,
			fmt.Sprintf("invalid value for parameter '%s', expected a number", key),
			nil,
		)
	}

	return num, nil
}

// QueryAlpha reads a required query param that may only contain letters.
func QueryAlpha(r *http.Request, key string) (string, error) {
	value := r.URL.Query().Get(key)
	if !alphabetPattern.MatchString(value) {
		return "", servererrors.New(
			http.StatusBadRequest,
			fmt.Sprintf("%s must contain only alphabets", key),
			nil,
		)
	}

	return value, nil
}
