package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	defaultLogLevel       = "info"
	defaultIdempotencyTTL = 24 * time.Hour
)

// Load reads configuration from a YAML file. A missing file yields the
// defaults, so the CLI can run from environment variables alone.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		data = nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML content after expanding environment variables in it.
func Parse(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// yaml.v2 decodes nested mappings with interface{} keys.
	cfg.LogContext = stringKeys(cfg.LogContext)

	if cfg.Vendor.AccessToken == "" {
		cfg.Vendor.AccessToken = os.Getenv("PAYGUARD_ACCESS_TOKEN")
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}
	if cfg.Idempotency.TTL == 0 {
		cfg.Idempotency.TTL = defaultIdempotencyTTL
	}

	return &cfg, nil
}

func stringKeys(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}

func normalize(v any) any {
	switch val := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[fmt.Sprint(k)] = normalize(elem)
		}
		return out
	case map[string]any:
		return stringKeys(val)
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = normalize(elem)
		}
		return out
	default:
		return v
	}
}
