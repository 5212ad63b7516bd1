package metrics

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vietddude/payguard/internal/vendor"
)

// StatsFunc reports the vendor monitor snapshot served on /health.
type StatsFunc func() vendor.MonitorStats

// Server provides the /health and /metrics endpoints.
type Server struct {
	stats  StatsFunc
	server *http.Server
}

// NewServer creates a server listening on addr.
func NewServer(addr string, stats StatsFunc) *Server {
	s := &Server{stats: stats}
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the mux serving both endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

type healthResponse struct {
	Status         string `json:"status"`
	AverageLatency string `json:"average_latency"`
	Requests       int    `json:"requests"`
	Failures       int    `json:"failures"`
	Throttled      int    `json:"throttled"`
	RetryAfter     string `json:"retry_after,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.stats()

	resp := healthResponse{
		Status:         stats.Status.String(),
		AverageLatency: stats.AverageLatency.String(),
		Requests:       stats.Requests,
		Failures:       stats.Failures,
		Throttled:      stats.Throttled,
	}
	if stats.RetryAfter > 0 {
		resp.RetryAfter = stats.RetryAfter.String()
	}

	w.Header().Set("Content-Type", "application/json")
	if stats.Status == vendor.StatusThrottled {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	_ = json.NewEncoder(w).Encode(resp)
}
