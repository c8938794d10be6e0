package console

import (
	"github.com/cloudnook/mcpgw/internal/contracts"
	"github.com/cloudnook/mcpgw/internal/domain"
	"github.com/cloudnook/mcpgw/internal/viewmodel"
)

// MonitoringView is the content of the monitoring overview page.
type MonitoringView struct {
	Counts          viewmodel.Counts        `json:"counts"          yaml:"counts"`
	Servers         []viewmodel.ServerRow   `json:"servers"         yaml:"servers"`
	ActiveIncidents int                     `json:"activeIncidents" yaml:"activeIncidents"`
	Incidents       []viewmodel.IncidentRow `json:"incidents"       yaml:"incidents"`
	UptimeDays      int                     `json:"uptimeDays"      yaml:"uptimeDays"`
	Uptime          []viewmodel.UptimeRow   `json:"uptime"          yaml:"uptime"`
	State           LoadState               `json:"state"           yaml:"state"`
}

// Monitoring combines the last loaded server list with the incident and uptime history.
// Either log may be nil, in which case its section is empty.
func (s *Store) Monitoring(incidents contracts.IncidentLog, uptime contracts.UptimeLog) MonitoringView {
	dash := s.Dashboard("")
	now := s.clock()

	view := MonitoringView{
		Counts:    dash.Counts,
		Servers:   dash.Rows,
		Incidents: []viewmodel.IncidentRow{},
		Uptime:    []viewmodel.UptimeRow{},
		State:     dash.State,
	}

	if incidents != nil {
		records := incidents.Incidents()
		for _, inc := range records {
			if inc.Status == domain.IncidentActive {
				view.ActiveIncidents++
			}
		}
		view.Incidents = viewmodel.BuildIncidentRows(records, now)
	}

	if uptime != nil {
		view.UptimeDays = uptime.Days()
		for _, row := range dash.Rows {
			view.Uptime = append(view.Uptime, viewmodel.BuildUptimeRow(
				row.ID,
				row.Name,
				uptime.Buckets(row.ID),
				view.UptimeDays,
				now,
			))
		}
	}

	return view
}
