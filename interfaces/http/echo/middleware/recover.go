package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
	apperrors "github.com/octabyte/skillswap-client/errors"
)

// RecoverMalformedCallback turns a panic in the callback handler into a
// MalformedCallbackError returned to echo's error handler.
func RecoverMalformedCallback() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					cause, ok := r.(error)
					if !ok {
						cause = fmt.Errorf("%v", r)
					}
					err = &apperrors.MalformedCallbackError{Reason: "callback handler panicked", Err: cause}
				}
			}()
			return next(c)
		}
	}
}
