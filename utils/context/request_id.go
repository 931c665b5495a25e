package context

import (
	"context"

	"github.com/google/uuid"
)

// EnsureRequestID returns ctx carrying a request id, generating one when
// absent. The original request and its retry share the id.
func EnsureRequestID(ctx context.Context) (context.Context, string) {
	if id := GetRequestIDFromContext(ctx); id != "" {
		return ctx, id
	}
	id := uuid.NewString()
	return context.WithValue(ctx, requestIDKey, id), id
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
