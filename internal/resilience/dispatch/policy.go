package dispatch

import (
	"context"

	"github.com/vietddude/payguard/internal/resilience/apierror"
	"github.com/vietddude/payguard/internal/resilience/backoff"
)

// DefaultMaxRetries is the retry budget used when none is configured.
const DefaultMaxRetries = 6

// Decision is the outcome of a retry condition.
type Decision int

const (
	// Retry sleeps for the backoff delay and calls the operation again.
	Retry Decision = iota
	// StopWithOriginalError ends the loop and returns the normalized error.
	StopWithOriginalError
	// StopWithOverrideError ends the loop and returns Verdict.Err instead.
	StopWithOverrideError
)

func (d Decision) String() string {
	switch d {
	case Retry:
		return "retry"
	case StopWithOriginalError:
		return "stop"
	case StopWithOverrideError:
		return "stop_with_override"
	default:
		return "unknown"
	}
}

// Verdict is returned by a Condition.
type Verdict struct {
	Decision Decision
	Err      error
}

// Continue asks for another attempt.
func Continue() Verdict {
	return Verdict{Decision: Retry}
}

// Stop ends the loop with the normalized error.
func Stop() Verdict {
	return Verdict{Decision: StopWithOriginalError}
}

// Override ends the loop with err.
func Override(err error) Verdict {
	return Verdict{Decision: StopWithOverrideError, Err: err}
}

// Condition decides whether a failed attempt is retried. retries is the
// number of retries already performed.
type Condition func(ctx context.Context, err *apierror.Error, maxRetries, retries int) Verdict

// DefaultCondition retries transient failures while retry budget remains.
func DefaultCondition(_ context.Context, err *apierror.Error, maxRetries, retries int) Verdict {
	if err.Retryable() && maxRetries > retries {
		return Continue()
	}
	return Stop()
}

// Policy configures the retry loop.
type Policy struct {
	// MaxRetries bounds the number of retries; 0 never retries.
	MaxRetries int

	// RetryDelay returns the wait before retry n (1-based).
	RetryDelay backoff.Func

	// RetryCondition decides whether to retry a failed attempt.
	RetryCondition Condition
}

// DefaultPolicy returns six retries with exponential backoff and DefaultCondition.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:     DefaultMaxRetries,
		RetryDelay:     backoff.Exponential,
		RetryCondition: DefaultCondition,
	}
}

func (p Policy) withDefaults() Policy {
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if p.RetryDelay == nil {
		p.RetryDelay = backoff.Exponential
	}
	if p.RetryCondition == nil {
		p.RetryCondition = DefaultCondition
	}
	return p
}
