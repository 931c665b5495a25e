package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const bearerPrefix = "Bearer "

// BearerHeader formats an Authorization header value.
func BearerHeader(token string) string {
	return fmt.Sprintf("%s%s", bearerPrefix, token)
}

// TokenFromHeader returns the credential of a bearer Authorization header.
func TokenFromHeader(header string) string {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

// TokenExpiry reads the exp claim of a JWT without verifying its signature.
// Only for display: the server remains the authority on validity.
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// MaskToken keeps the first and last four characters of a credential.
func MaskToken(token string) string {
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "***" + token[len(token)-4:]
}
