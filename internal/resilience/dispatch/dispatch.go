// Package dispatch wraps vendor API operations in a policy-driven retry loop.
//
// A Dispatcher is bound to one API group and one set of retryable operation
// names. Every call goes through Do: it is logged, executed, normalized on
// failure and retried while the operation is retryable and the policy says so.
// Operations outside the retryable set are still logged and normalized but
// never retried.
package dispatch

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/vietddude/payguard/internal/logging"
	"github.com/vietddude/payguard/internal/mapper"
	"github.com/vietddude/payguard/internal/metrics"
	"github.com/vietddude/payguard/internal/resilience/apierror"
)

// Dispatcher runs calls of one API group through the retry policy.
// It is immutable after New and safe for concurrent use.
type Dispatcher struct {
	api        string
	retryable  map[string]struct{}
	policy     Policy
	logger     logging.Logger
	logContext []any
	sleep      func(ctx context.Context, d time.Duration) error
	now        func() time.Time
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithPolicy sets the retry policy. A nil RetryDelay or RetryCondition falls
// back to the default; MaxRetries 0 never retries.
func WithPolicy(p Policy) Option {
	return func(d *Dispatcher) {
		d.policy = p
	}
}

// WithLogger sets the lifecycle event logger.
func WithLogger(l logging.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithLogContext adds fields to every lifecycle event.
func WithLogContext(fields map[string]any) Option {
	return func(d *Dispatcher) {
		d.logContext = d.logContext[:0]
		for _, k := range slices.Sorted(maps.Keys(fields)) {
			d.logContext = append(d.logContext, k, fields[k])
		}
	}
}

// WithSleep replaces the backoff sleep. fn must return ctx.Err() when ctx ends first.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(d *Dispatcher) {
		if fn != nil {
			d.sleep = fn
		}
	}
}

// WithClock replaces the time source used for timings.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// New creates a dispatcher for the api group; only operations named in
// retryable are ever retried.
func New(api string, retryable []string, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		api:       api,
		retryable: make(map[string]struct{}, len(retryable)),
		policy:    DefaultPolicy(),
		logger:    logging.Nop(),
		sleep:     sleepContext,
		now:       time.Now,
	}
	for _, name := range retryable {
		d.retryable[name] = struct{}{}
	}
	for _, opt := range opts {
		opt(d)
	}
	d.policy = d.policy.withDefaults()

	return d
}

// API returns the API group name.
func (d *Dispatcher) API() string {
	return d.api
}

// Policy returns the effective retry policy.
func (d *Dispatcher) Policy() Policy {
	return d.policy
}

// Retryable reports whether method may be retried.
func (d *Dispatcher) Retryable(method string) bool {
	_, ok := d.retryable[method]
	return ok
}

// Do executes fn as the named operation. args are only used for logging.
//
// On success the result of fn is returned. On failure the last attempt's
// *apierror.Error is returned, unless the retry condition stopped the loop
// with an override error, or ctx ended during a backoff sleep, in which case
// the returned error wraps both ctx.Err() and the last normalized error.
func Do[T any](
	ctx context.Context,
	d *Dispatcher,
	method string,
	args any,
	fn func(context.Context) (T, error),
) (T, error) {
	var zero T

	callSite := captureCallSite()
	startedAt := d.now()

	d.logger.Debug("vendor api request started", d.fields(
		"method", method,
		"args", mapper.StringifyIntegers(args),
		"started_at", startedAt,
	)...)

	retries := 0
	for {
		metrics.VendorAttemptsTotal.WithLabelValues(d.api, method).Inc()

		attemptStart := d.now()
		result, err := fn(ctx)
		if err == nil {
			d.finish(method, startedAt, nil)
			return result, nil
		}

		apiErr := apierror.Normalize(err, retries, d.now().Sub(attemptStart))
		apiErr.CallSite = callSite

		if !d.Retryable(method) || retries >= d.policy.MaxRetries {
			d.finish(method, startedAt, apiErr)
			return zero, apiErr
		}

		verdict := d.policy.RetryCondition(ctx, apiErr, d.policy.MaxRetries, retries)
		switch verdict.Decision {
		case Retry:
		case StopWithOverrideError:
			d.finish(method, startedAt, apiErr)
			if verdict.Err != nil {
				return zero, verdict.Err
			}
			return zero, apiErr
		default:
			d.finish(method, startedAt, apiErr)
			return zero, apiErr
		}

		delay := d.policy.RetryDelay(retries + 1)
		d.logger.Info("vendor api retry", d.fields(
			"method", method,
			"retries", retries,
			"max_retries", d.policy.MaxRetries,
			"delay", delay,
			"error", apiErr,
		)...)
		metrics.VendorRetriesTotal.WithLabelValues(d.api, method).Inc()

		if err := d.sleep(ctx, delay); err != nil {
			d.finish(method, startedAt, apiErr)
			return zero, fmt.Errorf("%w: %w", err, apiErr)
		}
		retries++
	}
}

func (d *Dispatcher) finish(method string, startedAt time.Time, apiErr *apierror.Error) {
	finishedAt := d.now()
	duration := finishedAt.Sub(startedAt)

	outcome := "success"
	if apiErr != nil {
		outcome = "failure"
		metrics.VendorErrorsTotal.WithLabelValues(d.api, method, strconv.Itoa(apiErr.StatusCode)).Inc()

		if apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500 {
			d.logger.Warn("vendor api request failed", d.fields(
				"method", method,
				"status_code", apiErr.StatusCode,
				"retries", apiErr.Retries,
				"error", apiErr,
			)...)
		}
	}

	metrics.VendorCallsTotal.WithLabelValues(d.api, method, outcome).Inc()
	metrics.VendorCallDuration.WithLabelValues(d.api, method).Observe(duration.Seconds())

	d.logger.Info("vendor api request finished", d.fields(
		"method", method,
		"outcome", outcome,
		"started_at", startedAt,
		"finished_at", finishedAt,
		"duration", duration,
	)...)
}

func (d *Dispatcher) fields(kv ...any) []any {
	out := make([]any, 0, len(d.logContext)+2+len(kv))
	out = append(out, d.logContext...)
	out = append(out, "api", d.api)
	return append(out, kv...)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// captureCallSite records the stack above Do.
func captureCallSite() string {
	pcs := make([]uintptr, 32)
	// Skip runtime.Callers, captureCallSite and Do.
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return sb.String()
}
