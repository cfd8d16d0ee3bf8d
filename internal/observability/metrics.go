package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricRequests        = "checkstyle.requests.total"
	metricRequestDuration = "checkstyle.request.duration.seconds"
	metricErrors          = "checkstyle.errors.total"
	metricInflight        = "checkstyle.inflight.requests"

	attrOp     = "op"
	attrStatus = "status"

	statusError = "error"
)

// latencyBuckets covers 5ms to 60s: single-file checks finish in milliseconds
// while a full repository run can take tens of seconds.
var latencyBuckets = []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}

// REDMetrics holds the OTel instruments for Rate, Error, Duration metrics.
type REDMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
	failures metric.Int64Counter
	inflight metric.Int64UpDownCounter
}

// NewREDMetrics registers the request, latency, error, and in-flight
// instruments on mt.
func NewREDMetrics(mt metric.Meter) (*REDMetrics, error) {
	var errs []error

	capture := func(name string, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("create %s: %w", name, err))
		}
	}

	requests, err := mt.Int64Counter(metricRequests,
		metric.WithDescription("Total number of requests"),
		metric.WithUnit("{request}"),
	)
	capture(metricRequests, err)

	duration, err := mt.Float64Histogram(metricRequestDuration,
		metric.WithDescription("Request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	)
	capture(metricRequestDuration, err)

	failures, err := mt.Int64Counter(metricErrors,
		metric.WithDescription("Total number of errors"),
		metric.WithUnit("{error}"),
	)
	capture(metricErrors, err)

	inflight, err := mt.Int64UpDownCounter(metricInflight,
		metric.WithDescription("Number of in-flight requests"),
		metric.WithUnit("{request}"),
	)
	capture(metricInflight, err)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &REDMetrics{
		requests: requests,
		duration: duration,
		failures: failures,
		inflight: inflight,
	}, nil
}

// RecordRequest closes out one operation: counts it, records its latency, and
// bumps the failure counter when status is "error".
func (rm *REDMetrics) RecordRequest(ctx context.Context, op, status string, elapsed time.Duration) {
	tags := metric.WithAttributes(
		attribute.String(attrOp, op),
		attribute.String(attrStatus, status),
	)

	rm.requests.Add(ctx, 1, tags)
	rm.duration.Record(ctx, elapsed.Seconds(), tags)

	if status != statusError {
		return
	}

	rm.failures.Add(ctx, 1, metric.WithAttributes(attribute.String(attrOp, op)))
}

// TrackInflight increments the in-flight gauge for op and returns the
// matching decrement.
func (rm *REDMetrics) TrackInflight(ctx context.Context, op string) func() {
	tags := metric.WithAttributes(attribute.String(attrOp, op))
	rm.inflight.Add(ctx, 1, tags)

	return func() {
		rm.inflight.Add(ctx, -1, tags)
	}
}
