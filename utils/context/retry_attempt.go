package context

import (
	"context"
)

// WithRetryAttempt marks ctx as carrying the single retry of a request whose
// credentials were just refreshed. A marked request never triggers another
// refresh.
func WithRetryAttempt(ctx context.Context) context.Context {
	return context.WithValue(ctx, retryAttemptKey, true)
}

func IsRetryAttempt(ctx context.Context) bool {
	retry, _ := ctx.Value(retryAttemptKey).(bool)
	return retry
}

// WithoutRefresh disables refresh-and-retry for requests issued with ctx.
// Used by the authentication endpoints themselves.
func WithoutRefresh(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipRefreshKey, true)
}

func IsRefreshDisabled(ctx context.Context) bool {
	skip, _ := ctx.Value(skipRefreshKey).(bool)
	return skip
}
