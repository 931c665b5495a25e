package logger

import (
	"context"

	"github.com/octabyte/skillswap-client/utils/logger"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// InfoCtx logs an info message with trace context
func InfoCtx(ctx context.Context, msg string, fields ...zap.Field) {
	logger.LogInfo(msg, withTrace(ctx, fields)...)
}

// ErrorCtx logs an error message with trace context
func ErrorCtx(ctx context.Context, msg string, err error, fields ...zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	logger.LogError(msg, withTrace(ctx, fields)...)
}

// WarnCtx logs a warning message with trace context
func WarnCtx(ctx context.Context, msg string, fields ...zap.Field) {
	logger.LogWarn(msg, withTrace(ctx, fields)...)
}

// DebugCtx logs a debug message with trace context
func DebugCtx(ctx context.Context, msg string, fields ...zap.Field) {
	logger.LogDebug(msg, withTrace(ctx, fields)...)
}

func withTrace(ctx context.Context, fields []zap.Field) []zap.Field {
	return append(fields, TraceFields(ctx)...)
}

// TraceFields returns trace_id and span_id fields when ctx carries a valid
// span, nil otherwise.
func TraceFields(ctx context.Context) []zap.Field {
	spanContext := trace.SpanContextFromContext(ctx)
	if !spanContext.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.String("trace_id", spanContext.TraceID().String()),
		zap.String("span_id", spanContext.SpanID().String()),
	}
}

// GetTraceID extracts the trace ID from context
func GetTraceID(ctx context.Context) string {
	spanContext := trace.SpanContextFromContext(ctx)
	if spanContext.IsValid() {
		return spanContext.TraceID().String()
	}
	return ""
}

// GetSpanID extracts the span ID from context
func GetSpanID(ctx context.Context) string {
	spanContext := trace.SpanContextFromContext(ctx)
	if spanContext.IsValid() {
		return spanContext.SpanID().String()
	}
	return ""
}
