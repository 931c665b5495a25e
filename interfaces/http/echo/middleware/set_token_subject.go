package middleware

import (
	"encoding/base64"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/tidwall/gjson"
)

// SetTokenSubject reads the subject of the token stored by SetTokenInContext
// without verifying it. It is only used to label logs and spans.
func SetTokenSubject() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, _ := c.Get(TokenKey).(string)
			if token == "" {
				return next(c)
			}

			parts := strings.Split(token, ".")
			if len(parts) != 3 {
				return next(c)
			}

			payload, err := base64.RawURLEncoding.DecodeString(parts[1])
			if err != nil {
				log.Debugf("callback token payload is not base64url: %v", err)
				return next(c)
			}

			claims := gjson.ParseBytes(payload)
			for _, path := range []string{"sub", "user_id", "user.id"} {
				if subject := claims.Get(path).String(); subject != "" {
					c.Set(TokenSubjectKey, subject)
					break
				}
			}
			return next(c)
		}
	}
}
