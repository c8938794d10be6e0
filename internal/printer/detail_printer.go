package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/cloudnook/mcpgw/internal/cmd/output"
	"github.com/cloudnook/mcpgw/internal/console"
	"github.com/cloudnook/mcpgw/internal/viewmodel"
)

var _ output.Printer[console.DetailState] = (*DetailPrinter)(nil)

// DetailPrinter prints a server's detail page: its properties, metrics and capabilities.
type DetailPrinter struct {
	frame[console.DetailState]
}

func (p *DetailPrinter) Item(w io.Writer, s console.DetailState) error {
	if s.Status != console.DetailReady || s.Detail == nil {
		_, err := fmt.Fprintf(w, "! %s\n", s.Message)
		return err
	}

	d := s.Detail
	_, _ = fmt.Fprintf(w, "%s (%s)\n", title(d.Name), d.ID)
	if d.Description != "" {
		_, _ = fmt.Fprintf(w, "  %s\n", d.Description)
	}
	_, _ = fmt.Fprintln(w)

	props := [][2]string{
		{"Status", badge(d.Lifecycle)},
		{"Health", badge(d.Health)},
		{"Transport", d.Transport},
		{"Endpoint", d.Endpoint},
		{"Version", d.Version},
		{"Registered", d.RegisteredAt},
		{"Last heartbeat", d.LastHeartbeat},
		{"Uptime", d.Uptime},
	}
	printProperties(w, props)
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, title("Metrics"))
	printProperties(w, [][2]string{
		{"Requests", d.TotalRequests},
		{"Succeeded", d.SuccessRequests},
		{"Failed", d.FailedRequests},
		{"Success rate", d.SuccessRate},
		{"Failure rate", d.FailureRate},
		{"Avg latency", d.AvgLatency},
		{"Min latency", d.MinLatency},
		{"Max latency", d.MaxLatency},
		{"Connections", d.ActiveConnections},
	})

	switch {
	case s.CapabilitiesError != "":
		_, _ = fmt.Fprintf(w, "\n! Capabilities unavailable: %s\n", s.CapabilitiesError)
	case s.Capabilities != nil:
		printCapabilities(w, *s.Capabilities)
	}

	return nil
}

func printProperties(w io.Writer, props [][2]string) {
	width := 0
	for _, p := range props {
		width = max(width, len(p[0]))
	}
	for _, p := range props {
		_, _ = fmt.Fprintf(w, "  %-*s  %s\n", width, p[0]+":", p[1])
	}
}

func printCapabilities(w io.Writer, c viewmodel.CapabilitiesView) {
	_, _ = fmt.Fprintf(w, "\n%s (%d)\n", title("Tools"), len(c.Tools))
	if len(c.Tools) == 0 {
		_, _ = fmt.Fprintln(w, "  (No tools available)")
	}
	for _, t := range c.Tools {
		_, _ = fmt.Fprintf(w, "  %s\n", t.Name)
		if t.Description != "" {
			_, _ = fmt.Fprintf(w, "    %s\n", t.Description)
		}
		if len(t.Parameters) > 0 {
			_, _ = fmt.Fprintf(w, "    parameters: %s\n", strings.Join(t.Parameters, ", "))
		}
		if len(t.Required) > 0 {
			_, _ = fmt.Fprintf(w, "    required: %s\n", strings.Join(t.Required, ", "))
		}
	}

	_, _ = fmt.Fprintf(w, "\n%s (%d)\n", title("Resources"), len(c.Resources))
	if len(c.Resources) == 0 {
		_, _ = fmt.Fprintln(w, "  (No resources available)")
	}
	for _, r := range c.Resources {
		_, _ = fmt.Fprintf(w, "  %s  %s  %s\n", r.URI, r.Name, r.MIMEType)
	}

	_, _ = fmt.Fprintf(w, "\n%s (%d)\n", title("Prompts"), len(c.Prompts))
	if len(c.Prompts) == 0 {
		_, _ = fmt.Fprintln(w, "  (No prompts available)")
	}
	for _, pr := range c.Prompts {
		_, _ = fmt.Fprintf(w, "  %s\n", pr.Name)
		if pr.Arguments != "" {
			_, _ = fmt.Fprintf(w, "    arguments: %s\n", pr.Arguments)
		}
	}
}
