package metrics

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Token refresh outcomes.
const (
	RefreshSucceeded = "success"
	RefreshFailed    = "failure"
	RefreshSkipped   = "no_refresh_token"
)

var (
	meter metric.Meter

	// API gateway metrics
	apiRequestsTotal    metric.Int64Counter
	apiRequestDuration  metric.Float64Histogram
	apiRequestsInFlight metric.Int64UpDownCounter
	tokenRefreshTotal   metric.Int64Counter

	// Session metrics
	sessionTransitions metric.Int64Counter
	oauthCallbacks     metric.Int64Counter

	// Runtime metrics
	goGoroutines metric.Int64ObservableGauge
)

// Init initializes the metrics. Recording before Init is a no-op.
func Init(serviceName string) error {
	meter = otel.Meter(serviceName)

	var err error

	apiRequestsTotal, err = meter.Int64Counter(
		"skillswap_api_requests_total",
		metric.WithDescription("Total number of SkillSwap API requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create skillswap_api_requests_total counter: %w", err)
	}

	apiRequestDuration, err = meter.Float64Histogram(
		"skillswap_api_request_duration_seconds",
		metric.WithDescription("SkillSwap API request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create skillswap_api_request_duration_seconds histogram: %w", err)
	}

	apiRequestsInFlight, err = meter.Int64UpDownCounter(
		"skillswap_api_requests_in_flight",
		metric.WithDescription("Number of SkillSwap API requests currently in flight"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create skillswap_api_requests_in_flight counter: %w", err)
	}

	tokenRefreshTotal, err = meter.Int64Counter(
		"skillswap_token_refresh_total",
		metric.WithDescription("Access token refresh attempts by outcome"),
		metric.WithUnit("{refresh}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create skillswap_token_refresh_total counter: %w", err)
	}

	sessionTransitions, err = meter.Int64Counter(
		"skillswap_session_transitions_total",
		metric.WithDescription("Session state transitions"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create skillswap_session_transitions_total counter: %w", err)
	}

	oauthCallbacks, err = meter.Int64Counter(
		"skillswap_oauth_callbacks_total",
		metric.WithDescription("OAuth callbacks received by outcome"),
		metric.WithUnit("{callback}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create skillswap_oauth_callbacks_total counter: %w", err)
	}

	goGoroutines, err = meter.Int64ObservableGauge(
		"go_goroutines",
		metric.WithDescription("Number of goroutines currently running"),
		metric.WithUnit("{goroutine}"),
		metric.WithInt64Callback(func(ctx context.Context, observer metric.Int64Observer) error {
			observer.Observe(int64(runtime.NumGoroutine()))
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create go_goroutines gauge: %w", err)
	}

	return nil
}

// RecordAPIRequest records one round trip to the API. A status of 0 means no
// response was received.
func RecordAPIRequest(ctx context.Context, method, route string, statusCode int, duration time.Duration, retried bool) {
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", statusCode),
		attribute.Bool("retry", retried),
	)

	if apiRequestsTotal != nil {
		apiRequestsTotal.Add(ctx, 1, attrs)
	}
	if apiRequestDuration != nil {
		apiRequestDuration.Record(ctx, duration.Seconds(), attrs)
	}
}

// IncrementInFlightRequests increments the in-flight requests counter
func IncrementInFlightRequests(ctx context.Context, method, route string) {
	addInFlight(ctx, method, route, 1)
}

// DecrementInFlightRequests decrements the in-flight requests counter
func DecrementInFlightRequests(ctx context.Context, method, route string) {
	addInFlight(ctx, method, route, -1)
}

func addInFlight(ctx context.Context, method, route string, delta int64) {
	if apiRequestsInFlight == nil {
		return
	}
	apiRequestsInFlight.Add(ctx, delta, metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
	))
}

func RecordTokenRefresh(ctx context.Context, outcome string) {
	if tokenRefreshTotal != nil {
		tokenRefreshTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
}

func RecordSessionTransition(ctx context.Context, from, to, reason string) {
	if sessionTransitions != nil {
		sessionTransitions.Add(ctx, 1, metric.WithAttributes(
			attribute.String("from", from),
			attribute.String("to", to),
			attribute.String("reason", reason),
		))
	}
}

func RecordOAuthCallback(ctx context.Context, success bool) {
	if oauthCallbacks != nil {
		oauthCallbacks.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))
	}
}
