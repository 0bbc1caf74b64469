package servererrors

import (
	"errors"
	"net/http"
)

// Domain failures. Stores and services wrap these with context using
// fmt.Errorf("%w: ...") so callers can test them with errors.Is.
var (
	ErrResourceNotFound   = errors.New("resource not found")
	ErrOutOfStock         = errors.New("product is out of stock")
	ErrInsufficientStock  = errors.New("insufficient stock for product")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrBadRequest         = errors.New("bad request")
	ErrStaleWrite         = errors.New("record was modified by another request")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Request level failures raised by handlers.
var (
	ErrInvalidRequestPayload = errors.New("invalid request payload")
	ErrValidationFailed      = errors.New("validation failed")
	ErrURLQueryParams        = errors.New("invalid url query params")
	ErrInvalidID             = errors.New("id must be a positive integer")
	ErrSomethingWentWrong    = errors.New("something went wrong")
)

// ServerError carries the status code and user-facing message of a failed
// request. Errors holds optional details such as per-field validation
// messages.
type ServerError struct {
	StatusCode int
	Message    string
	Errors     any
}

func New(statusCode int, message string, errs any) *ServerError {
	return &ServerError{
		StatusCode: statusCode,
		Message:    message,
		Errors:     errs,
	}
}

func (e *ServerError) Error() string {
	return e.Message
}

// StatusOf maps an error returned by a service to the HTTP status it should
// surface as. Unknown errors map to 500.
func StatusOf(err error) int {
	var serverError *ServerError
	if errors.As(err, &serverError) {
		return serverError.StatusCode
	}

	switch {
	case errors.Is(err, ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrOutOfStock),
		errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrStaleWrite),
		errors.Is(err, ErrDuplicateEntry):
		return http.StatusConflict
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
