package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vietddude/payguard/internal/client"
	"github.com/vietddude/payguard/internal/logging"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("TEST_VENDOR_TOKEN", "sq0atp-secret")
	t.Setenv("TEST_REDIS_URL", "redis://localhost:6380/1")

	path := writeConfig(t, `
vendor:
  access_token: ${TEST_VENDOR_TOKEN}
  timeout: 5s
redis:
  url: ${TEST_REDIS_URL}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Vendor.AccessToken != "sq0atp-secret" {
		t.Errorf("Expected token sq0atp-secret, got %s", cfg.Vendor.AccessToken)
	}
	if cfg.Vendor.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", cfg.Vendor.Timeout)
	}
	if cfg.Redis.URL != "redis://localhost:6380/1" {
		t.Errorf("Expected redis URL, got %s", cfg.Redis.URL)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PAYGUARD_ACCESS_TOKEN", "from-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %q", cfg.Logging.Level)
	}
	if cfg.Idempotency.TTL != 24*time.Hour {
		t.Errorf("TTL = %v", cfg.Idempotency.TTL)
	}
	if cfg.Vendor.AccessToken != "from-env" {
		t.Errorf("AccessToken = %q", cfg.Vendor.AccessToken)
	}
	if cfg.Retry.MaxRetries != nil {
		t.Errorf("MaxRetries = %v, want unset", *cfg.Retry.MaxRetries)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("vendor: [unclosed")); err == nil {
		t.Error("expected parse error")
	}
}

func TestClientOptions_MergeOverDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
retry:
  max_retries: 0
  fixed_delay: 250ms
  retryable:
    locations: [ListLocations, CreateLocation]
log_context:
  merchant_id: M42
  service:
    name: checkout
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	opts := client.MergeOptions(client.DefaultOptions(), cfg.ClientOptions(logging.Nop()))

	if *opts.Retry.MaxRetries != 0 {
		t.Errorf("MaxRetries = %d, want explicit 0", *opts.Retry.MaxRetries)
	}
	if opts.Retry.RetryDelay(5) != 250*time.Millisecond {
		t.Errorf("RetryDelay = %v", opts.Retry.RetryDelay(5))
	}
	if opts.LogContext["merchant_id"] != "M42" {
		t.Errorf("merchant_id = %v", opts.LogContext["merchant_id"])
	}
	service, ok := opts.LogContext["service"].(map[string]any)
	if !ok || service["name"] != "checkout" {
		t.Errorf("service = %#v", opts.LogContext["service"])
	}
	if opts.Vendor.Timeout != client.DefaultVendorTimeout {
		t.Errorf("Timeout = %v", opts.Vendor.Timeout)
	}

	if len(cfg.GroupOptions("locations")) != 1 {
		t.Error("locations override missing")
	}
	if cfg.GroupOptions("orders") != nil {
		t.Error("orders should keep defaults")
	}
}
