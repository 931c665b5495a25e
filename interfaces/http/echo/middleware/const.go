package middleware

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "requestID"
	TokenKey        = "requestToken"
	TokenSubjectKey = "tokenSubject"
	TokenParam      = "token"
	Authorization   = "Authorization"
)
