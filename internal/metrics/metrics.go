// Package metrics provides Prometheus instrumentation for dispatched vendor calls.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VendorCallsTotal counts dispatched calls by final outcome (success, failure).
	VendorCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payguard",
			Name:      "vendor_calls_total",
			Help:      "Total number of dispatched vendor API calls",
		},
		[]string{"api", "method", "outcome"},
	)

	// VendorAttemptsTotal counts every attempt, including retries.
	VendorAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payguard",
			Name:      "vendor_attempts_total",
			Help:      "Total number of vendor API attempts",
		},
		[]string{"api", "method"},
	)

	// VendorRetriesTotal counts retries scheduled by the dispatcher.
	VendorRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payguard",
			Name:      "vendor_retries_total",
			Help:      "Total number of vendor API retries",
		},
		[]string{"api", "method"},
	)

	// VendorErrorsTotal counts final failures by status code.
	VendorErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payguard",
			Name:      "vendor_errors_total",
			Help:      "Total number of vendor API calls that failed after retries",
		},
		[]string{"api", "method", "status"},
	)

	// VendorCallDuration tracks the duration of a dispatched call, retries included.
	VendorCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "payguard",
			Name:      "vendor_call_duration_seconds",
			Help:      "Vendor API call duration in seconds, retries included",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"api", "method"},
	)
)
