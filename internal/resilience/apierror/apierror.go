// Package apierror normalizes every vendor-call failure into a single
// structured error carrying the status code, the vendor error list, the
// request it belongs to and how long it took.
package apierror

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/vietddude/payguard/internal/vendor"
)

// DefaultMessage is used when a failure carries no better description.
const DefaultMessage = "API error"

// RetryableCodes are vendor error codes that mark a failure as transient.
var RetryableCodes = []string{
	"RATE_LIMITED",
	"REQUEST_TIMEOUT",
	"GATEWAY_TIMEOUT",
	"SERVICE_UNAVAILABLE",
	"INTERNAL_SERVER_ERROR",
}

// Error is the normalized vendor failure.
type Error struct {
	Message      string
	StatusCode   int
	Retries      int
	Errors       []vendor.ErrorDetail
	URL          string
	Method       string
	ResponseTime time.Duration

	// Request is a copy of the failed request's metadata with credentials removed.
	Request *vendor.Request

	// CallSite is the stack of the code that dispatched the call.
	CallSite string

	Cause error
}

func (e *Error) Error() string {
	if e.Method != "" || e.URL != "" {
		return fmt.Sprintf("%s (status %d, %s %s, retries %d)", e.Message, e.StatusCode, e.Method, e.URL, e.Retries)
	}
	return fmt.Sprintf("%s (status %d, retries %d)", e.Message, e.StatusCode, e.Retries)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Code returns the first vendor error code, or "" when there is none.
func (e *Error) Code() string {
	if len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Code
}

// Retryable reports whether the failure is transient: status 408, 429 or a
// 5xx other than 501, or a first vendor error code listed in RetryableCodes.
func (e *Error) Retryable() bool {
	return retryableStatus(e.StatusCode) || slices.Contains(RetryableCodes, e.Code())
}

// ClientFault reports whether the caller caused the failure (4xx other than 408 and 429).
func (e *Error) ClientFault() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 &&
		e.StatusCode != http.StatusRequestTimeout &&
		e.StatusCode != http.StatusTooManyRequests
}

// StackTrace returns the call-site stack recorded by the dispatcher.
func (e *Error) StackTrace() string {
	return e.CallSite
}

// LogValue renders the error as a structured log group.
func (e *Error) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("message", e.Message),
		slog.Int("status_code", e.StatusCode),
		slog.Int("retries", e.Retries),
		slog.Duration("response_time", e.ResponseTime),
	}
	if e.Method != "" {
		attrs = append(attrs, slog.String("method", e.Method))
	}
	if e.URL != "" {
		attrs = append(attrs, slog.String("url", e.URL))
	}
	if len(e.Errors) > 0 {
		attrs = append(attrs, slog.Any("errors", e.Errors))
	}
	return slog.GroupValue(attrs...)
}

// As returns the normalized error in err's chain, if any.
func As(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

func retryableStatus(code int) bool {
	switch {
	case code == http.StatusRequestTimeout, code == http.StatusTooManyRequests:
		return true
	case code == http.StatusNotImplemented:
		return false
	default:
		return code >= 500 && code <= 599
	}
}

// Normalize converts raw into an *Error stamped with the retries performed so
// far and the elapsed time of the failed attempt. It returns nil for a nil raw
// error and never mutates raw.
func Normalize(raw error, retries int, elapsed time.Duration) *Error {
	if raw == nil {
		return nil
	}

	if prev, ok := As(raw); ok {
		out := *prev
		out.Retries = retries
		out.ResponseTime = elapsed
		out.Errors = slices.Clone(prev.Errors)
		return &out
	}

	out := &Error{
		Message:      DefaultMessage,
		StatusCode:   http.StatusInternalServerError,
		Retries:      retries,
		ResponseTime: elapsed,
		Cause:        raw,
	}

	if req := requestOf(raw); req != nil {
		out.Request = redact(req)
		out.URL = req.URL
		out.Method = req.Method
		out.Message = raw.Error()
	}

	var apiErr *vendor.APIError
	if errors.As(raw, &apiErr) {
		out.StatusCode = apiErr.StatusCode
		out.Errors = slices.Clone(apiErr.Errors)
		out.Message = firstMessage(out.Errors, out.Message)
		return out
	}

	if applyStatus(raw, out) {
		return out
	}

	if isTimeout(raw) {
		out.StatusCode = http.StatusGatewayTimeout
		out.Errors = []vendor.ErrorDetail{{
			Category: "API_ERROR",
			Code:     "GATEWAY_TIMEOUT",
			Detail:   "vendor api timeout",
		}}
	}

	return out
}

func requestOf(raw error) *vendor.Request {
	var apiErr *vendor.APIError
	if errors.As(raw, &apiErr) && apiErr.Request != nil {
		return apiErr.Request
	}

	var reqErr *vendor.RequestError
	if errors.As(raw, &reqErr) && reqErr.Request != nil {
		return reqErr.Request
	}
	return nil
}

func redact(req *vendor.Request) *vendor.Request {
	out := req.Clone()
	if out.Header != nil {
		out.Header.Del("Authorization")
	}
	return out
}

func firstMessage(details []vendor.ErrorDetail, fallback string) string {
	if len(details) == 0 {
		return fallback
	}
	if details[0].Detail != "" {
		return details[0].Detail
	}
	if details[0].Code != "" {
		return details[0].Code
	}
	return fallback
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
