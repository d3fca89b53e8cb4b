package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Checker reports readiness of a dependency (database, redis).
type Checker func(ctx context.Context) error

// Server provides HTTP endpoints for health monitoring and metrics.
type Server struct {
	checks map[string]Checker
	server *http.Server
}

// NewServer creates a new health server.
func NewServer(port int, checks map[string]Checker) *Server {
	mux := http.NewServeMux()
	s := &Server{
		checks: checks,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
	}

	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	detail := map[string]string{}
	code := http.StatusOK

	for name, check := range s.checks {
		if err := check(r.Context()); err != nil {
			status = "critical"
			code = http.StatusServiceUnavailable
			detail[name] = err.Error()
		} else {
			detail[name] = "ok"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"status": status,
		"checks": detail,
	})
}
