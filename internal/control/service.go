package control

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/vietddude/payguard/internal/client"
	"github.com/vietddude/payguard/internal/metrics"
)

// DefaultProbeInterval is used when Config.Interval is not set.
const DefaultProbeInterval = time.Minute

// Config holds the service configuration.
type Config struct {
	MetricsAddr  string
	Interval     time.Duration
	GroupOptions map[string][]client.GroupOption
}

// Service probes the vendor periodically and serves /health and /metrics.
type Service struct {
	cfg    Config
	client *client.Client
	server *metrics.Server
	log    *slog.Logger

	started atomic.Bool
	done    chan struct{}
}

// NewService creates a service around c.
func NewService(cfg Config, c *client.Client, log *slog.Logger) *Service {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultProbeInterval
	}
	if log == nil {
		log = slog.Default()
	}

	s := &Service{
		cfg:    cfg,
		client: c,
		log:    log,
		done:   make(chan struct{}),
	}
	if cfg.MetricsAddr != "" {
		s.server = metrics.NewServer(cfg.MetricsAddr, c.Stats)
	}
	return s
}

// Start launches the metrics server and the probe loop. It returns
// immediately; the loop ends when ctx is cancelled.
func (s *Service) Start(ctx context.Context) error {
	if s.server != nil {
		go func() {
			if err := s.server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.log.Error("Metrics server failed", "error", err)
			}
		}()
		s.log.Info("Metrics server listening", "addr", s.cfg.MetricsAddr)
	}

	s.started.Store(true)
	go s.loop(ctx)
	return nil
}

func (s *Service) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		s.probeOnce(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Service) probeOnce(ctx context.Context) {
	res, err := Probe(ctx,
		s.client.Locations(s.cfg.GroupOptions[client.LocationsGroup]...),
		s.client.Customers(s.cfg.GroupOptions[client.CustomersGroup]...),
	)
	stats := s.client.Stats()
	if err != nil {
		s.log.Warn("Vendor probe failed", "error", err, "vendor_status", stats.Status.String())
		return
	}
	s.log.Info("Vendor probe succeeded",
		"locations", res.Locations,
		"customers", res.Customers,
		"duration", res.Duration,
		"vendor_status", stats.Status.String(),
		"avg_latency", stats.AverageLatency,
	)
}

// Stop waits for the probe loop to end and shuts down the metrics server.
// The caller cancels the context passed to Start first.
func (s *Service) Stop(ctx context.Context) error {
	s.log.Info("Stopping service...")

	if s.started.Load() {
		select {
		case <-s.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := s.client.Close(); err != nil {
		s.log.Warn("Failed to close vendor client", "error", err)
	}

	if s.server == nil {
		return nil
	}
	return s.server.Stop(ctx)
}
