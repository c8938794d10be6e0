package viewmodel

import (
	"github.com/cloudnook/mcpgw/internal/domain"
	"github.com/cloudnook/mcpgw/internal/filter"
)

// Builder turns raw monitoring data into the values every view renders.
// It holds no state beyond its thresholds, never mutates its inputs and performs no I/O.
// NewBuilder should be used to create instances of Builder.
type Builder struct {
	opts Options
}

// Counts are the summary figures shown on the dashboard and monitoring pages.
type Counts struct {
	Total        int `json:"total"        yaml:"total"`
	Healthy      int `json:"healthy"      yaml:"healthy"`
	Degraded     int `json:"degraded"     yaml:"degraded"`
	Unhealthy    int `json:"unhealthy"    yaml:"unhealthy"`
	Unknown      int `json:"unknown"      yaml:"unknown"`
	Active       int `json:"active"       yaml:"active"`
	Inactive     int `json:"inactive"     yaml:"inactive"`
	Connecting   int `json:"connecting"   yaml:"connecting"`
	Disconnected int `json:"disconnected" yaml:"disconnected"`
}

// NewBuilder creates a Builder, applying the supplied threshold options on top of the defaults.
func NewBuilder(opt ...Option) (*Builder, error) {
	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	return &Builder{opts: opts}, nil
}

// Options returns the thresholds in use by the builder.
func (b *Builder) Options() Options {
	return b.opts
}

// ClassifyHealth derives a health status from a metrics snapshot and the server lifecycle state.
//
// No collected data is always unknown. A disconnected server, a failure rate above the unhealthy threshold,
// or an average latency above the unhealthy ceiling is unhealthy. A failure rate at or above the degraded
// threshold, or latency above the degraded ceiling, is degraded. Everything else is healthy.
func (b *Builder) ClassifyHealth(snapshot *domain.MetricsSnapshot, lifecycle domain.LifecycleStatus) domain.HealthStatus {
	if !snapshot.HasData() {
		return domain.HealthUnknown
	}

	failureRate := snapshot.FailureRate()
	latency := snapshot.AvgLatencyMs

	switch {
	case lifecycle == domain.LifecycleDisconnected,
		failureRate > b.opts.UnhealthyFailureRateThreshold,
		b.opts.UnhealthyLatencyThresholdMs > 0 && latency > b.opts.UnhealthyLatencyThresholdMs:
		return domain.HealthUnhealthy
	case failureRate >= b.opts.DegradedFailureRateThreshold && failureRate > 0,
		latency > b.opts.DegradedLatencyThresholdMs:
		return domain.HealthDegraded
	default:
		return domain.HealthHealthy
	}
}

// ResolveHealth returns the health a summary should be displayed with.
// Servers with metrics are classified locally so every view agrees; otherwise the backend value is kept.
func (b *Builder) ResolveHealth(summary domain.ServerSummary) domain.HealthStatus {
	if summary.Metrics != nil {
		return b.ClassifyHealth(summary.Metrics, summary.Server.LifecycleStatus)
	}
	if summary.Server.HealthStatus == "" {
		return domain.HealthUnknown
	}
	return summary.Server.HealthStatus
}

// Resolve returns the server records from the summaries with their health resolved by the builder.
func (b *Builder) Resolve(summaries []domain.ServerSummary) []domain.ServerRecord {
	records := make([]domain.ServerRecord, 0, len(summaries))
	for _, s := range summaries {
		r := s.Server
		r.HealthStatus = b.ResolveHealth(s)
		records = append(records, r)
	}
	return records
}

// AggregateCounts computes every summary figure in a single pass.
// The result does not depend on the order of servers.
func AggregateCounts(servers []domain.ServerRecord) Counts {
	c := Counts{Total: len(servers)}

	for _, s := range servers {
		switch s.HealthStatus {
		case domain.HealthHealthy:
			c.Healthy++
		case domain.HealthDegraded:
			c.Degraded++
		case domain.HealthUnhealthy:
			c.Unhealthy++
		default:
			c.Unknown++
		}

		switch s.LifecycleStatus {
		case domain.LifecycleActive:
			c.Active++
		case domain.LifecycleInactive:
			c.Inactive++
		case domain.LifecycleConnecting:
			c.Connecting++
		case domain.LifecycleDisconnected:
			c.Disconnected++
		}
	}

	return c
}

// FilterServers returns the servers whose name, transport type or description contain query (case-insensitive).
// A blank query returns servers unchanged. Order is always preserved.
func FilterServers(servers []domain.ServerRecord, query string) []domain.ServerRecord {
	return filter.Search(servers, query, serverPredicate())
}

func serverPredicate() filter.Predicate[domain.ServerRecord] {
	return filter.PartialAny(
		func(s domain.ServerRecord) string { return s.Name },
		func(s domain.ServerRecord) string { return string(s.TransportType) },
		func(s domain.ServerRecord) string { return s.Description },
	)
}
