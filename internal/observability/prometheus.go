package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// PrometheusHandler builds the /metrics scrape endpoint for the server modes.
// The registry is private to the returned handler, so repeated calls never
// collide on collector registration. Besides the Go runtime and process
// collectors it exposes a checkstyle_build_info gauge carrying the running
// version, and bridges OTel instruments through the Prometheus exporter.
func PrometheusHandler(serviceVersion string) (http.Handler, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		buildInfo(serviceVersion),
	)

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	// The bridge only collects from a MeterProvider that reads through it.
	_ = sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))

	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), nil
}

// buildInfo returns a constant gauge identifying the binary on the scrape
// page. The value is always 1; the version rides in a label.
func buildInfo(serviceVersion string) prometheus.Collector {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   "checkstyle",
		Name:        "build_info",
		Help:        "Build metadata of the running checkstyle binary.",
		ConstLabels: prometheus.Labels{"version": serviceVersion},
	})
	gauge.Set(1)

	return gauge
}
