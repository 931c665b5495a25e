package echo

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/octabyte/skillswap-client/interfaces/http/echo/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Middleware returns an Echo middleware that instruments HTTP requests with OpenTelemetry
func Middleware(serviceName string) echo.MiddlewareFunc {
	return MiddlewareWithConfig(serviceName, nil)
}

// MiddlewareWithConfig is Middleware with a skipper. Skipped requests are not
// traced at all.
func MiddlewareWithConfig(serviceName string, skipper echomw.Skipper) echo.MiddlewareFunc {
	base := otelecho.Middleware(serviceName, otelecho.WithSkipper(func(c echo.Context) bool {
		return skipper != nil && skipper(c)
	}))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return base(func(c echo.Context) error {
			err := next(c)

			span := trace.SpanFromContext(c.Request().Context())
			if !span.IsRecording() {
				return err
			}

			span.SetAttributes(
				attribute.String("http.route", c.Path()),
				attribute.Bool("oauth.token_present", c.QueryParam(middleware.TokenParam) != ""),
				attribute.Bool("oauth.error_present", c.QueryParam("error") != ""),
			)
			if id, ok := c.Get(middleware.RequestIDKey).(string); ok && id != "" {
				span.SetAttributes(attribute.String("request.id", id))
			}
			if subject, ok := c.Get(middleware.TokenSubjectKey).(string); ok {
				span.SetAttributes(attribute.String("enduser.id", subject))
			}
			if err != nil {
				span.SetAttributes(attribute.String("error.message", err.Error()))
			}

			return err
		})
	}
}
