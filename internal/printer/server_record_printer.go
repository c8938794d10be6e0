package printer

import (
	"fmt"
	"io"

	"github.com/cloudnook/mcpgw/internal/api"
	"github.com/cloudnook/mcpgw/internal/cmd/output"
)

var _ output.Printer[api.ServerRecord] = (*ServerRecordPrinter)(nil)

// ServerRecordPrinter confirms a server registration.
type ServerRecordPrinter struct {
	frame[api.ServerRecord]
}

func (p *ServerRecordPrinter) Item(w io.Writer, r api.ServerRecord) error {
	_, _ = fmt.Fprintf(w, "✓ Registered server '%s' (id: %s)\n", r.Name, r.ID)
	_, _ = fmt.Fprintf(w, "  transport: %s\n", r.TransportType)
	if r.Endpoint != "" {
		_, _ = fmt.Fprintf(w, "  endpoint: %s\n", r.Endpoint)
	}
	_, _ = fmt.Fprintf(w, "  status: %s\n", r.LifecycleStatus)

	return nil
}
