package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AuthMetrics defines the interface for recording authentication attempt
// metrics. Attempts are labeled by scheme and outcome, never by principal, so
// cardinality stays bounded and usernames never reach the metrics pipeline.
type AuthMetrics interface {
	// RecordAuthentication records one authentication attempt.
	// Scheme examples: "basic", "apikey", "bearer"
	// Outcome examples: "success", "invalid_credentials", "token_expired",
	// "token_tampered", "missing_credential", "malformed_credential"
	RecordAuthentication(ctx context.Context, scheme, outcome string)
}

// authMetrics implements AuthMetrics using OpenTelemetry metrics.
type authMetrics struct {
	attemptCounter metric.Int64Counter
}

// NewAuthMetrics creates a new AuthMetrics implementation using the provided
// meter provider. The namespace parameter is used as a prefix for the metric
// name (e.g., "guardpost").
func NewAuthMetrics(meterProvider metric.MeterProvider, namespace string) (AuthMetrics, error) {
	meter := meterProvider.Meter(namespace)

	attemptCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_authentication_attempts_total", namespace),
		metric.WithDescription("Total number of authentication attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create authentication counter: %w", err)
	}

	return &authMetrics{
		attemptCounter: attemptCounter,
	}, nil
}

// RecordAuthentication increments the attempt counter with scheme and outcome labels.
func (a *authMetrics) RecordAuthentication(ctx context.Context, scheme, outcome string) {
	a.attemptCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("scheme", scheme),
			attribute.String("outcome", outcome),
		),
	)
}

// NoOpAuthMetrics is a no-op implementation of AuthMetrics for when metrics are disabled.
type NoOpAuthMetrics struct{}

// NewNoOpAuthMetrics creates a no-op AuthMetrics implementation.
func NewNoOpAuthMetrics() AuthMetrics {
	return &NoOpAuthMetrics{}
}

// RecordAuthentication does nothing when metrics are disabled.
func (n *NoOpAuthMetrics) RecordAuthentication(ctx context.Context, scheme, outcome string) {
	// No-op
}
