package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/cloudnook/mcpgw/internal/cmd/output"
	"github.com/cloudnook/mcpgw/internal/console"
	"github.com/cloudnook/mcpgw/internal/viewmodel"
)

var _ output.Printer[console.MonitoringView] = (*MonitoringPrinter)(nil)

var dayGlyphs = map[viewmodel.DayStatus]string{
	viewmodel.DayUp:      "▇",
	viewmodel.DayPartial: "▄",
	viewmodel.DayDown:    "▁",
	viewmodel.DayNoData:  "·",
}

// MonitoringPrinter prints the monitoring overview: counts, server health, incidents and the uptime grid.
type MonitoringPrinter struct {
	frame[console.MonitoringView]
}

func (p *MonitoringPrinter) Item(w io.Writer, v console.MonitoringView) error {
	if err := printLoadState(w, v.State); err != nil {
		return err
	}

	printCounts(w, v.Counts)
	_, _ = fmt.Fprintln(w)

	if len(v.Servers) > 0 {
		_, _ = fmt.Fprintln(w, serverTable(v.Servers))
	}

	_, _ = fmt.Fprintf(w, "\n%s %d active\n", title("Incidents:"), v.ActiveIncidents)
	if len(v.Incidents) == 0 {
		_, _ = fmt.Fprintln(w, "  (No incidents recorded)")
	} else {
		t := newTable("Severity", "Server", "Message", "Status", "When")
		for _, inc := range v.Incidents {
			t.Row(badge(inc.Severity), inc.ServerName, inc.Message, inc.Status, inc.Age)
		}
		_, _ = fmt.Fprintln(w, t.String())
	}

	if len(v.Uptime) > 0 {
		_, _ = fmt.Fprintf(w, "\n%s last %d %s\n", title("Uptime:"), v.UptimeDays, plural(v.UptimeDays, "day"))
		width := 0
		for _, row := range v.Uptime {
			width = max(width, len(row.ServerName))
		}
		for _, row := range v.Uptime {
			_, _ = fmt.Fprintf(w, "  %-*s  %s  %s\n", width, row.ServerName, uptimeBar(row.Days), row.Uptime)
		}
	}

	return nil
}

func uptimeBar(days []viewmodel.UptimeDay) string {
	var sb strings.Builder
	for _, d := range days {
		g, ok := dayGlyphs[d.Status]
		if !ok {
			g = dayGlyphs[viewmodel.DayNoData]
		}
		sb.WriteString(g)
	}
	return sb.String()
}
