package domain

import "time"

// ServerHealth is the last observed state of a server.
type ServerHealth struct {
	ServerID    string
	Name        string
	Lifecycle   LifecycleStatus
	Health      HealthStatus
	LastChecked *time.Time
	LastHealthy *time.Time

	// IncidentID is the active incident for the server, if any.
	IncidentID string
}
