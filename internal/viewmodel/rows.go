package viewmodel

import (
	"github.com/cloudnook/mcpgw/internal/domain"
	"github.com/cloudnook/mcpgw/internal/filter"
)

// ServerRow is a single line of the server list.
type ServerRow struct {
	ID            string        `json:"id"            yaml:"id"`
	Name          string        `json:"name"          yaml:"name"`
	Description   string        `json:"description"   yaml:"description"`
	Transport     string        `json:"transport"     yaml:"transport"`
	Endpoint      string        `json:"endpoint"      yaml:"endpoint"`
	Lifecycle     StatusDisplay `json:"lifecycle"     yaml:"lifecycle"`
	Health        StatusDisplay `json:"health"        yaml:"health"`
	TotalRequests string        `json:"totalRequests" yaml:"totalRequests"`
	AvgLatency    string        `json:"avgLatency"    yaml:"avgLatency"`
	SuccessRate   string        `json:"successRate"   yaml:"successRate"`
	Uptime        string        `json:"uptime"        yaml:"uptime"`

	// Record is the server record the row was built from, with its health resolved.
	Record domain.ServerRecord `json:"-" yaml:"-"`
}

// BuildRows builds one display row per summary, preserving order.
func (b *Builder) BuildRows(summaries []domain.ServerSummary) []ServerRow {
	rows := make([]ServerRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, b.BuildRow(s))
	}
	return rows
}

// BuildRow builds the display row for a single summary.
func (b *Builder) BuildRow(s domain.ServerSummary) ServerRow {
	record := s.Server
	record.HealthStatus = b.ResolveHealth(s)

	row := ServerRow{
		ID:            record.ID,
		Name:          Text(record.Name),
		Description:   Text(record.Description),
		Transport:     record.TransportType.String(),
		Endpoint:      Text(record.Endpoint),
		Lifecycle:     LifecycleDisplay(record.LifecycleStatus),
		Health:        Display(record.HealthStatus),
		TotalRequests: Placeholder,
		AvgLatency:    Placeholder,
		SuccessRate:   Placeholder,
		Uptime:        Placeholder,
		Record:        record,
	}

	if m := s.Metrics; m != nil {
		row.TotalRequests = FormatCount(m.TotalRequests)
		row.Uptime = FormatUptime(m.UptimeSeconds)
		if m.HasData() {
			row.AvgLatency = FormatLatency(m.AvgLatencyMs)
			row.SuccessRate = FormatPercent(m.SuccessRatePercent)
		}
	}

	return row
}

// Records returns the resolved server records behind the rows.
func Records(rows []ServerRow) []domain.ServerRecord {
	records := make([]domain.ServerRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.Record)
	}
	return records
}

// FilterRows returns the rows whose server matches query, using the same rules as FilterServers.
func FilterRows(rows []ServerRow, query string) []ServerRow {
	match := serverPredicate()
	return filter.Search(rows, query, func(r ServerRow, q string) bool { return match(r.Record, q) })
}
