package logging

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

type ctxKey struct{}

// New creates a zap logger for the given environment
func New(env string) (*zap.Logger, error) {
	switch strings.ToLower(env) {
	case "production", "prod":
		return zap.NewProduction()
	case "development", "dev":
		return zap.NewDevelopment()
	default:
		return zap.NewExample(), nil
	}
}

// WithRequestID returns a context whose logger is tagged with the request id
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, zap.S().With("requestId", requestID))
}

// FromContext returns the request scoped logger, falling back to the global one
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok {
			return l
		}
	}
	return zap.S()
}
