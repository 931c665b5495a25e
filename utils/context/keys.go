package context

type contextKey string

const (
	retryAttemptKey contextKey = "retryAttempt"
	skipRefreshKey  contextKey = "skipRefresh"
	requestIDKey    contextKey = "requestID"
)
