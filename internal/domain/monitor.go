package domain

import "time"

// ServerSummary is the list-level monitoring view of a server: its record plus key metrics.
type ServerSummary struct {
	Server  ServerRecord
	Metrics *MetricsSnapshot
}

// ServerDetail is the full monitoring view of a single server.
type ServerDetail struct {
	Server  ServerRecord
	Metrics *MetricsSnapshot

	// RegisterTime, Uptime and LastHeartbeat are pre-formatted by the backend.
	// They are kept for display when the corresponding raw values are absent.
	RegisterTime  string
	Uptime        string
	LastHeartbeat string
}

// Observation is a single point-in-time reading of a server, used to track incidents and uptime.
type Observation struct {
	ServerID   string
	ServerName string
	Lifecycle  LifecycleStatus
	Health     HealthStatus
	ObservedAt time.Time
}

// Up reports whether the observation counts towards uptime.
func (o Observation) Up() bool {
	return o.Lifecycle == LifecycleActive && o.Health != HealthUnhealthy
}

// DayBucket counts the up and down observations of a server on a single (UTC) day.
type DayBucket struct {
	Day  time.Time
	Up   int
	Down int
}

// Observed reports whether any observation fell in the bucket.
func (b DayBucket) Observed() bool {
	return b.Up+b.Down > 0
}
