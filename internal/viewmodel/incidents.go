package viewmodel

import (
	"time"

	"github.com/cloudnook/mcpgw/internal/domain"
)

// IncidentRow is a single line of the incident list.
type IncidentRow struct {
	ID         string        `json:"id"         yaml:"id"`
	ServerID   string        `json:"serverId"   yaml:"serverId"`
	ServerName string        `json:"serverName" yaml:"serverName"`
	Severity   StatusDisplay `json:"severity"   yaml:"severity"`
	Message    string        `json:"message"    yaml:"message"`
	Status     string        `json:"status"     yaml:"status"`
	OccurredAt string        `json:"occurredAt" yaml:"occurredAt"`
	Age        string        `json:"age"        yaml:"age"`
	ResolvedAt string        `json:"resolvedAt" yaml:"resolvedAt"`
}

// BuildIncidentRows formats incidents for display relative to now, preserving order.
func BuildIncidentRows(incidents []domain.IncidentRecord, now time.Time) []IncidentRow {
	rows := make([]IncidentRow, 0, len(incidents))
	for _, inc := range incidents {
		occurred := inc.OccurredAt
		rows = append(rows, IncidentRow{
			ID:         inc.ID,
			ServerID:   inc.ServerID,
			ServerName: Text(inc.ServerName),
			Severity:   SeverityDisplay(inc.Severity),
			Message:    Text(inc.Message),
			Status:     string(inc.Status),
			OccurredAt: FormatTime(&occurred),
			Age:        FormatAge(now, occurred),
			ResolvedAt: FormatTime(inc.ResolvedAt),
		})
	}
	return rows
}
