// Package backoff computes the delay before a retry attempt.
package backoff

import (
	"math"
	"math/rand/v2"
	"time"
)

// Func returns the delay before the given retry attempt (1-based).
type Func func(attempt int) time.Duration

const (
	baseUnit     = 100 * time.Millisecond
	jitterFactor = 0.2
	maxExponent  = 30
)

// Exponential returns 2^attempt * 100ms plus a jitter uniformly drawn from
// [0, 20%) of that base. Attempts below 1 are treated as 1.
func Exponential(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > maxExponent {
		attempt = maxExponent
	}

	base := float64(baseUnit) * math.Pow(2, float64(attempt))
	jitter := base * jitterFactor * rand.Float64()

	return time.Duration(base + jitter)
}

// Constant returns a Func that always waits d.
func Constant(d time.Duration) Func {
	return func(int) time.Duration {
		return d
	}
}
