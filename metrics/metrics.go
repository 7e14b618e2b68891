// Package metrics holds the Prometheus collectors for the calculators.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Calculator label values.
const (
	CalculatorActuarial   = "actuarial"
	CalculatorLiquidation = "liquidation"
)

var (
	CalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clasc_calculations_total",
			Help: "Total number of completed calculator runs",
		},
		[]string{"calculator"},
	)

	ValidationRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clasc_validation_rejections_total",
			Help: "Total number of calculator submissions rejected by validation",
		},
		[]string{"calculator"},
	)

	CalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clasc_calculation_duration_seconds",
			Help:    "Duration of calculator runs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
		},
		[]string{"calculator"},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clasc_rate_limited_requests_total",
			Help: "Total number of calculator requests refused by the rate limiter",
		},
	)
)
