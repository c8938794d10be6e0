package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudnook/mcpgw/internal/console"
	"github.com/cloudnook/mcpgw/internal/domain"
	"github.com/cloudnook/mcpgw/internal/viewmodel"
)

func TestMonitoringPrinter_Item(t *testing.T) {
	t.Parallel()

	view := console.MonitoringView{
		Counts: viewmodel.Counts{Total: 2, Healthy: 1, Unhealthy: 1, Active: 1},
		Servers: []viewmodel.ServerRow{
			testRow("srv-1", "github", domain.LifecycleActive, domain.HealthHealthy),
			testRow("srv-2", "files", domain.LifecycleDisconnected, domain.HealthUnhealthy),
		},
		ActiveIncidents: 1,
		Incidents: []viewmodel.IncidentRow{{
			ID:         "inc-1",
			ServerID:   "srv-2",
			ServerName: "files",
			Severity:   viewmodel.SeverityDisplay(domain.SeverityError),
			Message:    "files is unhealthy",
			Status:     "active",
			Age:        "5m ago",
		}},
		UptimeDays: 3,
		Uptime: []viewmodel.UptimeRow{
			{
				ServerID:   "srv-1",
				ServerName: "github",
				Uptime:     "100.0%",
				Days: []viewmodel.UptimeDay{
					{Date: "2026-10-15", Status: viewmodel.DayNoData},
					{Date: "2026-10-16", Status: viewmodel.DayUp},
					{Date: "2026-10-17", Status: viewmodel.DayUp},
				},
			},
			{
				ServerID:   "srv-2",
				ServerName: "files",
				Uptime:     "25.0%",
				Days: []viewmodel.UptimeDay{
					{Date: "2026-10-15", Status: viewmodel.DayNoData},
					{Date: "2026-10-16", Status: viewmodel.DayPartial},
					{Date: "2026-10-17", Status: viewmodel.DayDown},
				},
			},
		},
	}

	var buf bytes.Buffer
	p := &MonitoringPrinter{}
	require.NoError(t, p.Item(&buf, view))

	out := buf.String()
	require.Contains(t, out, "2 total | 1 healthy")
	require.Contains(t, out, "Incidents: 1 active")
	require.Contains(t, out, "files is unhealthy")
	require.Contains(t, out, "✗ Error")
	require.Contains(t, out, "Uptime: last 3 days")
	require.Contains(t, out, "github  ·▇▇  100.0%")
	require.Contains(t, out, "files   ·▄▁  25.0%")
}

func TestMonitoringPrinter_Item_NoHistory(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := &MonitoringPrinter{}
	require.NoError(t, p.Item(&buf, console.MonitoringView{}))

	out := buf.String()
	require.Contains(t, out, "(No incidents recorded)")
	require.NotContains(t, out, "Uptime:")
}

func TestUptimeBar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		days []viewmodel.UptimeDay
		want string
	}{
		{"empty", nil, ""},
		{"all states", []viewmodel.UptimeDay{
			{Status: viewmodel.DayUp},
			{Status: viewmodel.DayPartial},
			{Status: viewmodel.DayDown},
			{Status: viewmodel.DayNoData},
		}, "▇▄▁·"},
		{"unknown status", []viewmodel.UptimeDay{{Status: "bogus"}}, "·"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.want, uptimeBar(tc.days))
		})
	}
}
