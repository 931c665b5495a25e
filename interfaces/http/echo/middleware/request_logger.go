package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/octabyte/skillswap-client/utils/logger"
	"go.uber.org/zap"
)

func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			fields := []zap.Field{
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			}
			if id, ok := c.Get(RequestIDKey).(string); ok && id != "" {
				fields = append(fields, zap.String("request_id", id))
			}
			if token, ok := c.Get(TokenKey).(string); ok && token != "" {
				fields = append(fields, logger.Token("token", token))
			}
			if subject, ok := c.Get(TokenSubjectKey).(string); ok {
				fields = append(fields, zap.String("subject", subject))
			}

			if err != nil {
				logger.LogWarn("callback request failed", append(fields, zap.Error(err))...)
				return err
			}
			logger.LogInfo("callback request", fields...)
			return nil
		}
	}
}
