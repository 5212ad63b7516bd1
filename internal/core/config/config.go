package config

import (
	"time"

	redisclient "github.com/vietddude/payguard/internal/infra/redis"
	"github.com/vietddude/payguard/internal/vendor"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Vendor      vendor.Config      `yaml:"vendor"`
	Retry       RetryConfig        `yaml:"retry"`
	Logging     LoggingConfig      `yaml:"logging"`
	LogContext  map[string]any     `yaml:"log_context"`
	Redis       redisclient.Config `yaml:"redis"`
	Idempotency IdempotencyConfig  `yaml:"idempotency"`
	Metrics     MetricsConfig      `yaml:"metrics"`
}

// RetryConfig holds the retry policy shared by all API groups.
type RetryConfig struct {
	MaxRetries *int          `yaml:"max_retries"` // unset = client default
	FixedDelay time.Duration `yaml:"fixed_delay"` // 0 = exponential backoff

	// Retryable replaces the default allowlist of the named API groups.
	Retryable map[string][]string `yaml:"retryable"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// IdempotencyConfig holds keyring settings.
type IdempotencyConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Addr string `yaml:"addr"` // empty = disabled
}
