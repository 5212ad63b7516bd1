package client

import (
	"maps"
	"time"

	"github.com/vietddude/payguard/internal/logging"
	"github.com/vietddude/payguard/internal/resilience/backoff"
	"github.com/vietddude/payguard/internal/resilience/dispatch"
	"github.com/vietddude/payguard/internal/vendor"
)

// DefaultVendorTimeout bounds a single vendor HTTP request.
const DefaultVendorTimeout = 15 * time.Second

// RetryOptions configures the retry policy shared by all API groups.
// A nil MaxRetries means "not set in this layer".
type RetryOptions struct {
	MaxRetries     *int
	RetryDelay     backoff.Func
	RetryCondition dispatch.Condition
}

// Options configures a Client. Options are layered with MergeOptions; the
// zero value of a field leaves the lower layer untouched.
type Options struct {
	Retry      RetryOptions
	LogContext map[string]any
	Vendor     vendor.Config
	Logger     logging.Logger
}

// MaxRetries returns a pointer to n for RetryOptions.MaxRetries.
func MaxRetries(n int) *int {
	return &n
}

// DefaultOptions returns the base layer every client starts from.
func DefaultOptions() Options {
	return Options{
		Retry: RetryOptions{
			MaxRetries:     MaxRetries(dispatch.DefaultMaxRetries),
			RetryDelay:     backoff.Exponential,
			RetryCondition: dispatch.DefaultCondition,
		},
		LogContext: map[string]any{"merchant_id": "unknown"},
		Vendor: vendor.Config{
			BaseURL: vendor.DefaultBaseURL,
			Timeout: DefaultVendorTimeout,
		},
		Logger: logging.Nop(),
	}
}

// MergeOptions merges layers left to right. A later layer wins per leaf;
// log-context maps and vendor headers are merged key by key, recursively for
// nested maps. No layer is modified.
func MergeOptions(layers ...Options) Options {
	var out Options
	for _, l := range layers {
		if l.Retry.MaxRetries != nil {
			out.Retry.MaxRetries = MaxRetries(*l.Retry.MaxRetries)
		}
		if l.Retry.RetryDelay != nil {
			out.Retry.RetryDelay = l.Retry.RetryDelay
		}
		if l.Retry.RetryCondition != nil {
			out.Retry.RetryCondition = l.Retry.RetryCondition
		}
		if l.LogContext != nil {
			out.LogContext = mergeMaps(out.LogContext, l.LogContext)
		}
		out.Vendor = mergeVendor(out.Vendor, l.Vendor)
		if l.Logger != nil {
			out.Logger = l.Logger
		}
	}
	return out
}

func (o Options) policy() dispatch.Policy {
	p := dispatch.Policy{
		RetryDelay:     o.Retry.RetryDelay,
		RetryCondition: o.Retry.RetryCondition,
	}
	if o.Retry.MaxRetries != nil {
		p.MaxRetries = *o.Retry.MaxRetries
	}
	return p
}

func mergeVendor(dst, src vendor.Config) vendor.Config {
	if src.BaseURL != "" {
		dst.BaseURL = src.BaseURL
	}
	if src.AccessToken != "" {
		dst.AccessToken = src.AccessToken
	}
	if src.Version != "" {
		dst.Version = src.Version
	}
	if src.Timeout != 0 {
		dst.Timeout = src.Timeout
	}
	if src.Headers != nil {
		headers := maps.Clone(dst.Headers)
		if headers == nil {
			headers = make(map[string]string, len(src.Headers))
		}
		maps.Copy(headers, src.Headers)
		dst.Headers = headers
	}
	return dst
}

// mergeMaps returns a new map holding dst overlaid with src.
func mergeMaps(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = cloneValue(v)
	}
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if prev, ok := out[k].(map[string]any); ok {
				out[k] = mergeMaps(prev, sub)
				continue
			}
		}
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	if m, ok := v.(map[string]any); ok {
		return mergeMaps(nil, m)
	}
	return v
}
