package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	bootstrapKey ctxKey = "bootstrap"
)

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// EnsureRequestID returns ctx unchanged when it already carries a request ID,
// otherwise a child context holding a fresh random one.
func EnsureRequestID(ctx context.Context) (context.Context, string) {
	if id := RequestIDFromCtx(ctx); id != "" {
		return ctx, id
	}
	id := uuid.NewString()
	return WithRequestID(ctx, id), id
}

// WithBootstrap marks ctx as belonging to the startup sequence.
func WithBootstrap(ctx context.Context) context.Context {
	return context.WithValue(ctx, bootstrapKey, true)
}

// IsBootstrap reports whether ctx was marked by WithBootstrap.
func IsBootstrap(ctx context.Context) bool {
	v, _ := ctx.Value(bootstrapKey).(bool)
	return v
}
