package viewmodel

import (
	"fmt"
	"math"
)

// Options contains the health classification thresholds used by a Builder.
// NewOptions should be used to create instances of Options.
type Options struct {
	// DegradedFailureRateThreshold is the failure percentage at or above which a server is degraded.
	DegradedFailureRateThreshold float64

	// UnhealthyFailureRateThreshold is the failure percentage above which a server is unhealthy.
	UnhealthyFailureRateThreshold float64

	// DegradedLatencyThresholdMs is the average latency above which a server is degraded.
	DegradedLatencyThresholdMs float64

	// UnhealthyLatencyThresholdMs is the average latency above which a server is unhealthy.
	// Zero disables the latency based unhealthy classification.
	UnhealthyLatencyThresholdMs float64
}

// Option defines a functional option for configuring Options.
// Options are applied in order, with later options overriding earlier ones.
type Option func(*Options) error

// NewOptions creates Options with optional configurations applied.
// Starts with default values, then applies options in order with later options overriding earlier ones.
// The resulting thresholds are validated as a whole.
func NewOptions(opts ...Option) (Options, error) {
	options := defaultOptions()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&options); err != nil {
			return Options{}, err
		}
	}

	if err := options.validate(); err != nil {
		return Options{}, err
	}

	return options, nil
}

// WithDegradedFailureRateThreshold sets the failure percentage at which a server becomes degraded.
func WithDegradedFailureRateThreshold(pct float64) Option {
	return func(o *Options) error {
		if err := validPercent(pct); err != nil {
			return fmt.Errorf("degraded failure rate threshold: %w", err)
		}
		o.DegradedFailureRateThreshold = pct
		return nil
	}
}

// WithUnhealthyFailureRateThreshold sets the failure percentage above which a server becomes unhealthy.
func WithUnhealthyFailureRateThreshold(pct float64) Option {
	return func(o *Options) error {
		if err := validPercent(pct); err != nil {
			return fmt.Errorf("unhealthy failure rate threshold: %w", err)
		}
		o.UnhealthyFailureRateThreshold = pct
		return nil
	}
}

// WithDegradedLatencyThreshold sets the average latency (in milliseconds) above which a server becomes degraded.
func WithDegradedLatencyThreshold(ms float64) Option {
	return func(o *Options) error {
		if ms < 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
			return fmt.Errorf("degraded latency threshold must be a non-negative number, got %v", ms)
		}
		o.DegradedLatencyThresholdMs = ms
		return nil
	}
}

// WithUnhealthyLatencyThreshold sets the average latency (in milliseconds) above which a server becomes unhealthy.
// Zero disables the check.
func WithUnhealthyLatencyThreshold(ms float64) Option {
	return func(o *Options) error {
		if ms < 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
			return fmt.Errorf("unhealthy latency threshold must be a non-negative number, got %v", ms)
		}
		o.UnhealthyLatencyThresholdMs = ms
		return nil
	}
}

// DefaultDegradedFailureRateThreshold is the default failure percentage at which a server is degraded.
func DefaultDegradedFailureRateThreshold() float64 {
	return 1
}

// DefaultUnhealthyFailureRateThreshold is the default failure percentage above which a server is unhealthy.
func DefaultUnhealthyFailureRateThreshold() float64 {
	return 20
}

// DefaultDegradedLatencyThresholdMs is the default average latency above which a server is degraded.
func DefaultDegradedLatencyThresholdMs() float64 {
	return 200
}

// DefaultUnhealthyLatencyThresholdMs is the default average latency above which a server is unhealthy.
func DefaultUnhealthyLatencyThresholdMs() float64 {
	return 500
}

func defaultOptions() Options {
	return Options{
		DegradedFailureRateThreshold:  DefaultDegradedFailureRateThreshold(),
		UnhealthyFailureRateThreshold: DefaultUnhealthyFailureRateThreshold(),
		DegradedLatencyThresholdMs:    DefaultDegradedLatencyThresholdMs(),
		UnhealthyLatencyThresholdMs:   DefaultUnhealthyLatencyThresholdMs(),
	}
}

func (o Options) validate() error {
	if o.DegradedFailureRateThreshold > o.UnhealthyFailureRateThreshold {
		return fmt.Errorf(
			"degraded failure rate threshold (%v) must not exceed unhealthy threshold (%v)",
			o.DegradedFailureRateThreshold,
			o.UnhealthyFailureRateThreshold,
		)
	}
	if o.UnhealthyLatencyThresholdMs > 0 && o.DegradedLatencyThresholdMs > o.UnhealthyLatencyThresholdMs {
		return fmt.Errorf(
			"degraded latency threshold (%v) must not exceed unhealthy threshold (%v)",
			o.DegradedLatencyThresholdMs,
			o.UnhealthyLatencyThresholdMs,
		)
	}
	return nil
}

func validPercent(pct float64) error {
	if math.IsNaN(pct) || pct < 0 || pct > 100 {
		return fmt.Errorf("must be a percentage between 0 and 100, got %v", pct)
	}
	return nil
}
