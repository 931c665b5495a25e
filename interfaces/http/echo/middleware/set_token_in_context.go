package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/octabyte/skillswap-client/utils"
)

// SetTokenInContext stores the access token delivered by the OAuth redirect.
// The query parameter wins over an Authorization header.
func SetTokenInContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.QueryParam(TokenParam)

			if token == "" {
				token = utils.TokenFromHeader(c.Request().Header.Get(Authorization))
			}

			c.Set(TokenKey, token)
			return next(c)
		}
	}
}
