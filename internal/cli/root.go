package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/vietddude/stylelog"

	"github.com/vietddude/payguard/internal/client"
	"github.com/vietddude/payguard/internal/core/config"
	"github.com/vietddude/payguard/internal/logging"
)

var (
	cfgPath string
	isDebug bool
)

var rootCmd = &cobra.Command{
	Use:   "payguard",
	Short: "Resilient payment vendor API client",
	Long:  `payguard wraps the payment vendor API with retries, error normalization and payload mapping.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "config file (default is config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")
}

// bootstrap loads .env and the config file, then installs the logger.
func bootstrap() (*config.AppConfig, *slog.Logger) {
	_ = godotenv.Load()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		stylelog.InitDefault()
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	level := logging.ParseLevel(cfg.Logging.Level)
	if isDebug {
		level = slog.LevelDebug
	}
	return cfg, logging.Setup(level)
}

func newClient(cfg *config.AppConfig, log *slog.Logger) *client.Client {
	return client.New(cfg.Vendor.AccessToken, cfg.ClientOptions(log))
}
