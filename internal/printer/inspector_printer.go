package printer

import (
	"fmt"
	"io"

	"github.com/cloudnook/mcpgw/internal/cmd/output"
	"github.com/cloudnook/mcpgw/internal/inspector"
)

var (
	_ output.Printer[inspector.CategoryGroup] = (*MethodGroupPrinter)(nil)
	_ output.Printer[inspector.Result]        = (*InspectorResultPrinter)(nil)
)

// MethodGroupPrinter prints a category of JSON-RPC methods.
type MethodGroupPrinter struct {
	frame[inspector.CategoryGroup]
}

func (p *MethodGroupPrinter) Item(w io.Writer, g inspector.CategoryGroup) error {
	_, _ = fmt.Fprintln(w, title(string(g.Category)))

	width := 0
	for _, m := range g.Methods {
		width = max(width, len(m.Name))
	}

	for _, m := range g.Methods {
		marker := " "
		if !m.Executable {
			marker = "-"
		}
		_, _ = fmt.Fprintf(w, " %s %-*s  %s\n", marker, width, m.Name, m.Description)
	}
	_, _ = fmt.Fprintln(w)

	return nil
}

// MethodsFooter notes which methods cannot be executed through the gateway.
func MethodsFooter() output.WriteFunc[inspector.CategoryGroup] {
	return func(w io.Writer, _ int) {
		_, _ = fmt.Fprintln(w, "Methods marked '-' are listed for reference and cannot be executed through the gateway.")
	}
}

// InspectorResultPrinter prints the formatted JSON-RPC response and how long it took.
type InspectorResultPrinter struct {
	frame[inspector.Result]
}

func (p *InspectorResultPrinter) Item(w io.Writer, r inspector.Result) error {
	status := "✓ OK"
	if !r.OK() {
		status = fmt.Sprintf("✗ Error %d", r.Response.Error.Code)
	}

	if _, err := fmt.Fprintf(w, "%s (%dms)\n", status, r.ElapsedMs); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, r.Formatted)
	return err
}
