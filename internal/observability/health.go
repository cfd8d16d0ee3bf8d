package observability

import (
	"encoding/json"
	"net/http"
)

const healthStatusOK = "ok"

// HealthHandler returns an [http.Handler] for liveness checks at /healthz.
// It always returns HTTP 200 with {"status":"ok"}.
func HealthHandler() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		rw.Header().Set("Content-Type", "application/json")
		rw.WriteHeader(http.StatusOK)

		data, err := json.Marshal(map[string]string{"status": healthStatusOK})
		if err != nil {
			return
		}

		if _, err := rw.Write(data); err != nil {
			return
		}
	})
}

// MetricsServer wires /metrics and /healthz onto a mux for the long-running
// server modes. The handler is ready to pass to [http.Server].
func MetricsServer(serviceVersion string) (http.Handler, error) {
	metricsHandler, err := PrometheusHandler(serviceVersion)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metricsHandler)
	mux.Handle("/healthz", HealthHandler())

	return mux, nil
}
