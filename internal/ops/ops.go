// Package ops serves the operational endpoints on their own listener:
// liveness, readiness, Prometheus metrics and pprof.
package ops

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Readiness reports whether the service has a snapshot to serve.
type Readiness interface {
	Ready() (ready bool, stale bool, lastSuccess time.Time)
}

// NewRouter builds the ops router.
func NewRouter(readiness Readiness) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		ready, stale, last := readiness.Ready()
		body := map[string]interface{}{"ready": ready, "stale": stale}
		if !last.IsZero() {
			body["last_success"] = last.UTC().Format(time.RFC3339)
		}
		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, body)
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/debug", middleware.Profiler())

	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
