package domain

import "time"

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

const (
	IncidentActive   IncidentStatus = "active"
	IncidentResolved IncidentStatus = "resolved"
)

// Severity classifies how serious an incident is.
type Severity string

// IncidentStatus is whether an incident is still ongoing.
type IncidentStatus string

// IncidentRecord is a notable change in the state of a server.
type IncidentRecord struct {
	ID         string
	ServerID   string
	ServerName string
	Severity   Severity
	Message    string
	OccurredAt time.Time
	Status     IncidentStatus
	ResolvedAt *time.Time
}
