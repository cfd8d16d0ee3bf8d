package commands

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/ningg/checkstyle/internal/config"
	"github.com/ningg/checkstyle/internal/observability"
	"github.com/ningg/checkstyle/pkg/version"
)

// metricsReadTimeout bounds reads on the Prometheus scrape endpoint.
const metricsReadTimeout = 10 * time.Second

// serverObservabilityConfig builds the telemetry configuration for a
// long-running mode. The OTLP endpoint comes from the config file, with
// the standard environment variables as fallback.
func serverObservabilityConfig(mode observability.AppMode, cfg *config.Config) observability.Config {
	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Mode = mode
	obsCfg.LogJSON = true

	obsCfg.OTLPEndpoint = cfg.Observability.OTLPEndpoint
	if obsCfg.OTLPEndpoint == "" {
		obsCfg.OTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	}

	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
	obsCfg.OTLPInsecure = os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true"

	return obsCfg
}

// cliObservabilityConfig builds the telemetry configuration for one-shot
// CLI runs, honoring the logging section of the config file.
func cliObservabilityConfig(cfg *config.Config) observability.Config {
	obsCfg := serverObservabilityConfig(observability.ModeCLI, cfg)
	obsCfg.LogJSON = cfg.Logging.Format == "json"
	obsCfg.LogLevel = parseLogLevel(cfg.Logging.Level)

	return obsCfg
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// startMetricsServer serves /metrics and /healthz on addr in the
// background. An empty addr disables the server.
func startMetricsServer(addr string, logger *slog.Logger) error {
	if addr == "" {
		return nil
	}

	handler, err := observability.MetricsServer(version.Version)
	if err != nil {
		return err
	}

	server := &http.Server{Addr: addr, Handler: handler, ReadTimeout: metricsReadTimeout}

	go func() {
		serveErr := server.ListenAndServe()
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Warn("metrics server stopped", "error", serveErr)
		}
	}()

	logger.Info("metrics server listening", "addr", addr)

	return nil
}
