// Package printer renders console views as text for the terminal.
package printer

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cloudnook/mcpgw/internal/cmd/output"
	"github.com/cloudnook/mcpgw/internal/viewmodel"
)

var palette = map[viewmodel.Color]lipgloss.Color{
	viewmodel.ColorGreen:  lipgloss.Color("2"),
	viewmodel.ColorYellow: lipgloss.Color("3"),
	viewmodel.ColorRed:    lipgloss.Color("1"),
	viewmodel.ColorBlue:   lipgloss.Color("4"),
	viewmodel.ColorGray:   lipgloss.Color("8"),
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
)

// frame holds the optional header and footer shared by every printer.
type frame[T any] struct {
	headerFunc output.WriteFunc[T]
	footerFunc output.WriteFunc[T]
}

func (f *frame[T]) Header(w io.Writer, count int) {
	if f.headerFunc != nil {
		f.headerFunc(w, count)
	}
}

func (f *frame[T]) SetHeader(fn output.WriteFunc[T]) {
	f.headerFunc = fn
}

func (f *frame[T]) Footer(w io.Writer, count int) {
	if f.footerFunc != nil {
		f.footerFunc(w, count)
	}
}

func (f *frame[T]) SetFooter(fn output.WriteFunc[T]) {
	f.footerFunc = fn
}

// badge renders a status as its glyph and label, colored when the terminal supports it.
func badge(d viewmodel.StatusDisplay) string {
	s := strings.TrimSpace(d.Glyph + " " + d.Label)
	if c, ok := palette[d.Color]; ok {
		return lipgloss.NewStyle().Foreground(c).Render(s)
	}
	return s
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...)
}

func title(s string) string {
	return titleStyle.Render(s)
}

func plural(n int, singular string) string {
	if n == 1 {
		return singular
	}
	return singular + "s"
}
