package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vietddude/payguard/internal/client"
	"github.com/vietddude/payguard/internal/control"
)

var (
	metricsAddr   string
	probeInterval time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Probe the vendor periodically and expose /health and /metrics",
	Run:   runServe,
}

func init() {
	serveCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "listen address for /health and /metrics (overrides metrics.addr)")
	serveCmd.Flags().DurationVar(&probeInterval, "interval", control.DefaultProbeInterval, "probe interval")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, log := bootstrap()

	addr := cfg.Metrics.Addr
	if metricsAddr != "" {
		addr = metricsAddr
	}

	svc := control.NewService(control.Config{
		MetricsAddr: addr,
		Interval:    probeInterval,
		GroupOptions: map[string][]client.GroupOption{
			client.LocationsGroup: cfg.GroupOptions(client.LocationsGroup),
			client.CustomersGroup: cfg.GroupOptions(client.CustomersGroup),
		},
	}, newClient(cfg, log), log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if err := svc.Start(ctx); err != nil {
		slog.Error("Failed to start service", "error", err)
		os.Exit(1)
	}

	slog.Info("Service started", "config", cfgPath, "interval", probeInterval)

	sig := <-sigChan
	slog.Info("Received signal, shutting down...", "signal", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := svc.Stop(shutdownCtx); err != nil {
		slog.Error("Error during shutdown", "error", err)
		os.Exit(1)
	}
}
