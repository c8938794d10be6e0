package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// rateTolerance is the allowed drift between success and failure percentages summing to 100.
const rateTolerance = 0.5

// MetricsSnapshot is the monitoring data for a single server over the current observation window.
// Snapshots are produced by the gateway backend and are read-only in this module.
type MetricsSnapshot struct {
	TotalRequests   int64
	SuccessRequests int64
	FailedRequests  int64

	AvgLatencyMs float64
	MinLatencyMs float64
	MaxLatencyMs float64

	SuccessRatePercent float64
	FailureRatePercent float64

	// UptimeSeconds is how long the server has been registered with the gateway.
	UptimeSeconds int64

	// ActiveConnections is not reported by every backend version.
	ActiveConnections *int64

	LastHeartbeat *time.Time
}

// HasData reports whether any requests have been observed for the server yet.
func (m *MetricsSnapshot) HasData() bool {
	return m != nil && m.TotalRequests > 0
}

// FailureRate returns the failure percentage, deriving it from the request counters
// when the backend did not supply one.
func (m *MetricsSnapshot) FailureRate() float64 {
	if !m.HasData() {
		return 0
	}
	if m.FailureRatePercent > 0 || m.SuccessRatePercent > 0 {
		return m.FailureRatePercent
	}
	return float64(m.FailedRequests) * 100 / float64(m.TotalRequests)
}

// Validate reports every invariant the snapshot violates.
// A nil snapshot is valid and means no data has been collected yet.
func (m *MetricsSnapshot) Validate() error {
	if m == nil {
		return nil
	}

	var errs []error

	if m.TotalRequests < 0 || m.SuccessRequests < 0 || m.FailedRequests < 0 {
		errs = append(errs, fmt.Errorf("request counters must not be negative"))
	}
	if m.SuccessRequests+m.FailedRequests > m.TotalRequests {
		errs = append(errs, fmt.Errorf(
			"success (%d) and failed (%d) requests exceed total (%d)",
			m.SuccessRequests, m.FailedRequests, m.TotalRequests,
		))
	}
	if m.MinLatencyMs < 0 || m.AvgLatencyMs < 0 || m.MaxLatencyMs < 0 {
		errs = append(errs, fmt.Errorf("latencies must not be negative"))
	}
	if m.HasData() && (m.MinLatencyMs > m.AvgLatencyMs || m.AvgLatencyMs > m.MaxLatencyMs) {
		errs = append(errs, fmt.Errorf(
			"latencies out of order: min=%v avg=%v max=%v",
			m.MinLatencyMs, m.AvgLatencyMs, m.MaxLatencyMs,
		))
	}
	if m.HasData() && math.Abs(m.SuccessRatePercent+m.FailureRatePercent-100) > rateTolerance {
		errs = append(errs, fmt.Errorf(
			"success rate (%v%%) and failure rate (%v%%) do not sum to 100",
			m.SuccessRatePercent, m.FailureRatePercent,
		))
	}
	if m.ActiveConnections != nil && *m.ActiveConnections < 0 {
		errs = append(errs, fmt.Errorf("active connections must not be negative"))
	}

	return errors.Join(errs...)
}
