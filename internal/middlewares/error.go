package middlewares

import (
	"errors"
	"net/http"

	chimiddleware "github.com/go-chi/chi/middleware"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/handlerutils"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/servererrors"
	"go.uber.org/zap"
)

// ErrorHandler is a middleware that takes handler that returns an error and
// return a HandlerFunc to create a centralized error handling, logging and etc.
func (mw *middleware) ErrorHandler(h handlerutils.APIHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		statusCode := servererrors.StatusOf(err)

		fields := []zap.Field{
			zap.Error(err),
			zap.Int("status", statusCode),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", chimiddleware.GetReqID(r.Context())),
		}
		if statusCode >= http.StatusInternalServerError {
			mw.logger.Error("request failed", fields...)
		} else {
			mw.logger.Warn("request rejected", fields...)
		}

		var serverError *servererrors.ServerError
		switch {
		case errors.As(err, &serverError):
			handlerutils.WriteErrorJSON(
				w,
				serverError.StatusCode,
				serverError.Error(),
				serverError.Errors,
			)

		case statusCode == http.StatusInternalServerError:
			handlerutils.WriteErrorJSON(
				w,
				http.StatusInternalServerError,
				servererrors.ErrSomethingWentWrong.Error(),
				nil,
			)

		default:
			// domain failures carry a message that is safe to show
			handlerutils.WriteErrorJSON(
				w,
				statusCode,
				err.Error(),
				nil,
			)
		}
	}
}
