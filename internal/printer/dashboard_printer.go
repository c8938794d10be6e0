package printer

import (
	"fmt"
	"io"

	"github.com/cloudnook/mcpgw/internal/cmd/output"
	"github.com/cloudnook/mcpgw/internal/console"
	"github.com/cloudnook/mcpgw/internal/viewmodel"
)

var _ output.Printer[console.DashboardView] = (*DashboardPrinter)(nil)

// DashboardPrinter prints the server counts followed by a table of servers.
type DashboardPrinter struct {
	frame[console.DashboardView]
}

func (p *DashboardPrinter) Item(w io.Writer, v console.DashboardView) error {
	if err := printLoadState(w, v.State); err != nil {
		return err
	}

	printCounts(w, v.Counts)

	if len(v.Rows) == 0 {
		if v.Query != "" {
			_, _ = fmt.Fprintf(w, "No servers match '%s'\n", v.Query)
		} else {
			_, _ = fmt.Fprintln(w, "No servers registered")
		}
		return nil
	}

	_, _ = fmt.Fprintln(w, serverTable(v.Rows))

	if v.Query != "" {
		_, _ = fmt.Fprintf(w, "%d of %d %s match '%s'\n", v.Matched, v.Counts.Total, plural(v.Counts.Total, "server"), v.Query)
	}

	return nil
}

func serverTable(rows []viewmodel.ServerRow) string {
	t := newTable("ID", "Name", "Transport", "Status", "Health", "Requests", "Avg Latency", "Success", "Uptime")
	for _, r := range rows {
		t.Row(
			r.ID,
			r.Name,
			r.Transport,
			badge(r.Lifecycle),
			badge(r.Health),
			r.TotalRequests,
			r.AvgLatency,
			r.SuccessRate,
			r.Uptime,
		)
	}
	return t.String()
}

func printCounts(w io.Writer, c viewmodel.Counts) {
	_, _ = fmt.Fprintf(
		w,
		"%s %d total | %d healthy | %d degraded | %d unhealthy | %d active\n",
		title("Servers:"),
		c.Total,
		c.Healthy,
		c.Degraded,
		c.Unhealthy,
		c.Active,
	)
}

// printLoadState reports a failed load. The view still holds the data of the last successful load.
func printLoadState(w io.Writer, s console.LoadState) error {
	if s.Status != console.LoadError {
		return nil
	}

	msg := fmt.Sprintf("! Last refresh failed: %s", s.Message)
	if s.TraceID != "" {
		msg += fmt.Sprintf(" (trace: %s)", s.TraceID)
	}
	_, err := fmt.Fprintln(w, msg)
	return err
}
