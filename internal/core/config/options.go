package config

import (
	"github.com/vietddude/payguard/internal/client"
	"github.com/vietddude/payguard/internal/logging"
	"github.com/vietddude/payguard/internal/resilience/backoff"
)

// ClientOptions returns the option layer this configuration contributes on
// top of client.DefaultOptions.
func (c *AppConfig) ClientOptions(logger logging.Logger) client.Options {
	opts := client.Options{
		Retry:      client.RetryOptions{MaxRetries: c.Retry.MaxRetries},
		LogContext: c.LogContext,
		Vendor:     c.Vendor,
		Logger:     logger,
	}
	if c.Retry.FixedDelay > 0 {
		opts.Retry.RetryDelay = backoff.Constant(c.Retry.FixedDelay)
	}
	return opts
}

// GroupOptions returns the per-group overrides for the named API group.
func (c *AppConfig) GroupOptions(group string) []client.GroupOption {
	names, ok := c.Retry.Retryable[group]
	if !ok {
		return nil
	}
	return []client.GroupOption{client.WithRetryable(names...)}
}
