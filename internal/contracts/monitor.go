package contracts

import (
	"github.com/cloudnook/mcpgw/internal/domain"
)

// ObservationRecorder receives the state of every server each time the server list is refreshed.
type ObservationRecorder interface {
	// Observe records one refresh worth of observations.
	Observe(observations []domain.Observation)
}

// IncidentLog derives incidents from observed health transitions.
type IncidentLog interface {
	ObservationRecorder

	// Incidents returns a copy of the recorded incidents, newest first.
	Incidents() []domain.IncidentRecord
}

// UptimeLog buckets observations into daily uptime counts.
type UptimeLog interface {
	ObservationRecorder

	// Buckets returns a copy of the daily buckets for a server, oldest first.
	Buckets(serverID string) []domain.DayBucket

	// Days is the size of the window the log retains.
	Days() int
}

// HealthMonitor exposes the last observed state of every server.
type HealthMonitor interface {
	// Status returns the state of a single server.
	Status(serverID string) (domain.ServerHealth, error)

	// List returns the state of every observed server.
	List() []domain.ServerHealth
}
