package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	TransportStdio          TransportType = "stdio"
	TransportSSE            TransportType = "sse"
	TransportStreamableHTTP TransportType = "streamable_http"
)

const (
	LifecycleActive       LifecycleStatus = "active"
	LifecycleInactive     LifecycleStatus = "inactive"
	LifecycleConnecting   LifecycleStatus = "connecting"
	LifecycleDisconnected LifecycleStatus = "disconnected"
)

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthDegraded  HealthStatus = "degraded"
	HealthUnhealthy HealthStatus = "unhealthy"
	HealthUnknown   HealthStatus = "unknown"
)

// TransportType is the connection mechanism a registered MCP server uses.
type TransportType string

// LifecycleStatus is the connection state of a server as reported by the gateway backend.
type LifecycleStatus string

// HealthStatus is a classification of server well-being derived from its metrics.
// It is distinct from LifecycleStatus.
type HealthStatus string

// ServerRecord is one registered MCP server.
type ServerRecord struct {
	ID              string
	Name            string
	TransportType   TransportType
	Endpoint        string
	LifecycleStatus LifecycleStatus
	HealthStatus    HealthStatus
	Description     string
	Version         string
	RegisteredAt    *time.Time
}

// Registration is the payload used to register a new server with the gateway backend.
type Registration struct {
	Name          string
	Description   string
	TransportType TransportType
	Endpoint      string
	Version       string
}

// AllTransportTypes returns every supported transport type in display order.
func AllTransportTypes() []TransportType {
	return []TransportType{TransportStdio, TransportSSE, TransportStreamableHTTP}
}

// AllLifecycleStatuses returns every lifecycle state.
func AllLifecycleStatuses() []LifecycleStatus {
	return []LifecycleStatus{LifecycleConnecting, LifecycleActive, LifecycleInactive, LifecycleDisconnected}
}

// AllHealthStatuses returns every health classification.
func AllHealthStatuses() []HealthStatus {
	return []HealthStatus{HealthHealthy, HealthDegraded, HealthUnhealthy, HealthUnknown}
}

// ParseTransportType parses a transport type, ignoring case and surrounding whitespace.
// The gateway backend sends upper case values (e.g. STREAMABLE_HTTP).
func ParseTransportType(s string) (TransportType, error) {
	v := TransportType(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case TransportStdio, TransportSSE, TransportStreamableHTTP:
		return v, nil
	default:
		return "", fmt.Errorf("unknown transport type: %s", s)
	}
}

// ParseLifecycleStatus parses a lifecycle status, ignoring case and surrounding whitespace.
func ParseLifecycleStatus(s string) (LifecycleStatus, error) {
	v := LifecycleStatus(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case LifecycleActive, LifecycleInactive, LifecycleConnecting, LifecycleDisconnected:
		return v, nil
	default:
		return "", fmt.Errorf("unknown lifecycle status: %s", s)
	}
}

// ParseHealthStatus parses a health status, ignoring case and surrounding whitespace.
// An empty value is treated as HealthUnknown.
func ParseHealthStatus(s string) (HealthStatus, error) {
	v := HealthStatus(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case "":
		return HealthUnknown, nil
	case HealthHealthy, HealthDegraded, HealthUnhealthy, HealthUnknown:
		return v, nil
	default:
		return "", fmt.Errorf("unknown health status: %s", s)
	}
}

// Wire returns the upper case form the gateway backend expects.
func (t TransportType) Wire() string {
	return strings.ToUpper(string(t))
}

// RequiresEndpoint reports whether servers using this transport must declare a network endpoint.
// Local process (stdio) servers have none.
func (t TransportType) RequiresEndpoint() bool {
	return t == TransportSSE || t == TransportStreamableHTTP
}

func (t TransportType) String() string {
	return string(t)
}

func (s LifecycleStatus) String() string {
	return string(s)
}

func (s HealthStatus) String() string {
	return string(s)
}

// CanTransition reports whether the backend state machine permits moving from one lifecycle state to another.
//
//	connecting   -> active
//	active       -> inactive | disconnected
//	disconnected -> connecting
//
// Re-observing the current state is always permitted.
func CanTransition(from LifecycleStatus, to LifecycleStatus) bool {
	if from == to {
		return true
	}

	switch from {
	case LifecycleConnecting:
		return to == LifecycleActive
	case LifecycleActive:
		return to == LifecycleInactive || to == LifecycleDisconnected
	case LifecycleDisconnected:
		return to == LifecycleConnecting
	default:
		return false
	}
}

// Validate checks the registration contains what the backend needs to connect to the server.
func (r Registration) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("server name is required")
	}

	t, err := ParseTransportType(string(r.TransportType))
	if err != nil {
		return err
	}

	endpoint := strings.TrimSpace(r.Endpoint)
	if t.RequiresEndpoint() && endpoint == "" {
		return fmt.Errorf("endpoint is required for transport type %s", t)
	}
	if !t.RequiresEndpoint() && endpoint != "" {
		return fmt.Errorf("endpoint must not be set for transport type %s", t)
	}

	return nil
}
