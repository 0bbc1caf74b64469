package middlewares

import "go.uber.org/zap"

type middleware struct {
	logger *zap.Logger
}

func NewMiddleware(logger *zap.Logger) *middleware {
	return &middleware{
		logger: logger,
	}
}
