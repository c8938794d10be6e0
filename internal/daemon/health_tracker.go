package daemon

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cloudnook/mcpgw/internal/contracts"
	"github.com/cloudnook/mcpgw/internal/domain"
	"github.com/cloudnook/mcpgw/internal/errors"
)

// HealthTracker follows the health of every observed server and records an incident each time it changes
// for the worse or recovers.
// NewHealthTracker should be used to create instances of HealthTracker.
type HealthTracker struct {
	mu        sync.RWMutex
	limit     int
	nextID    int
	statuses  map[string]domain.ServerHealth
	incidents []domain.IncidentRecord // Newest first.
}

var (
	_ contracts.IncidentLog   = (*HealthTracker)(nil)
	_ contracts.HealthMonitor = (*HealthTracker)(nil)
)

// NewHealthTracker creates a HealthTracker retaining at most limit incidents.
func NewHealthTracker(limit int) (*HealthTracker, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("incident limit must be positive, got %d", limit)
	}

	return &HealthTracker{
		limit:     limit,
		statuses:  map[string]domain.ServerHealth{},
		incidents: []domain.IncidentRecord{},
	}, nil
}

// Status returns the health status for a single tracked server.
func (h *HealthTracker) Status(serverID string) (domain.ServerHealth, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if health, ok := h.statuses[serverID]; ok {
		return health, nil
	}

	return domain.ServerHealth{}, fmt.Errorf("%w: %s", errors.ErrServerNotFound, serverID)
}

// List returns a copy of all known server health records, ordered by name.
func (h *HealthTracker) List() []domain.ServerHealth {
	h.mu.RLock()
	defer h.mu.RUnlock()

	list := slices.Collect(maps.Values(h.statuses))
	slices.SortFunc(list, func(a, b domain.ServerHealth) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ServerID, b.ServerID)
	})
	return list
}

// Incidents implements contracts.IncidentLog.
func (h *HealthTracker) Incidents() []domain.IncidentRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.incidents)
}

// Observe implements contracts.ObservationRecorder.
//
// A server entering a degraded state opens a warning incident; becoming unhealthy or disconnected opens an error
// incident. Any change resolves the server's active incident, and returning to normal records an info incident.
// Servers absent from observations keep their last state.
func (h *HealthTracker) Observe(observations []domain.Observation) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, o := range observations {
		h.observe(o)
	}
}

func (h *HealthTracker) observe(o domain.Observation) {
	at := o.ObservedAt.UTC()
	prev, tracked := h.statuses[o.ServerID]

	next := domain.ServerHealth{
		ServerID:    o.ServerID,
		Name:        o.ServerName,
		Lifecycle:   o.Lifecycle,
		Health:      o.Health,
		LastChecked: &at,
		LastHealthy: prev.LastHealthy,
		IncidentID:  prev.IncidentID,
	}
	if o.Health == domain.HealthHealthy {
		next.LastHealthy = &at
	}

	prevSeverity, prevBad := severityOf(prev.Lifecycle, prev.Health)
	severity, bad := severityOf(o.Lifecycle, o.Health)

	switch {
	case tracked && prevBad == bad && prevSeverity == severity:
		// No change.
	case bad:
		h.resolve(prev.IncidentID, at)
		next.IncidentID = h.record(o, severity, problemMessage(o), domain.IncidentActive, at)
	case tracked && prevBad:
		h.resolve(prev.IncidentID, at)
		next.IncidentID = ""
		h.record(o, domain.SeverityInfo, fmt.Sprintf("Server %s recovered", o.ServerName), domain.IncidentResolved, at)
	}

	h.statuses[o.ServerID] = next
}

// record adds an incident, dropping the oldest when over the limit, and returns its ID.
func (h *HealthTracker) record(
	o domain.Observation,
	severity domain.Severity,
	msg string,
	status domain.IncidentStatus,
	at time.Time,
) string {
	h.nextID++
	inc := domain.IncidentRecord{
		ID:         fmt.Sprintf("inc-%d", h.nextID),
		ServerID:   o.ServerID,
		ServerName: o.ServerName,
		Severity:   severity,
		Message:    msg,
		OccurredAt: at,
		Status:     status,
	}
	if status == domain.IncidentResolved {
		resolved := at
		inc.ResolvedAt = &resolved
	}

	h.incidents = slices.Insert(h.incidents, 0, inc)
	if len(h.incidents) > h.limit {
		h.incidents = h.incidents[:h.limit]
	}

	return inc.ID
}

func (h *HealthTracker) resolve(id string, at time.Time) {
	if id == "" {
		return
	}

	for i := range h.incidents {
		if h.incidents[i].ID != id || h.incidents[i].Status != domain.IncidentActive {
			continue
		}
		resolved := at
		h.incidents[i].Status = domain.IncidentResolved
		h.incidents[i].ResolvedAt = &resolved
		return
	}
}

// severityOf returns the incident severity for a state, and false when the state is normal.
func severityOf(lifecycle domain.LifecycleStatus, health domain.HealthStatus) (domain.Severity, bool) {
	switch {
	case lifecycle == domain.LifecycleDisconnected, health == domain.HealthUnhealthy:
		return domain.SeverityError, true
	case health == domain.HealthDegraded:
		return domain.SeverityWarning, true
	default:
		return "", false
	}
}

func problemMessage(o domain.Observation) string {
	if o.Lifecycle == domain.LifecycleDisconnected {
		return fmt.Sprintf("Server %s disconnected", o.ServerName)
	}
	return fmt.Sprintf("Server %s is %s", o.ServerName, o.Health)
}
