package middleware

import (
	"github.com/labstack/echo/v4"
	ctxutil "github.com/octabyte/skillswap-client/utils/context"
)

// SetRequestID propagates an incoming X-Request-ID or assigns a new one, and
// echoes it on the response.
func SetRequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			if incoming := c.Request().Header.Get(RequestIDHeader); incoming != "" {
				ctx = ctxutil.WithRequestID(ctx, incoming)
			}

			ctx, id := ctxutil.EnsureRequestID(ctx)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set(RequestIDKey, id)
			c.Response().Header().Set(RequestIDHeader, id)
			return next(c)
		}
	}
}
