package viewmodel

import (
	"github.com/cloudnook/mcpgw/internal/domain"
)

// Color is a semantic color name understood by every renderer.
type Color string

const (
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorGray   Color = "gray"
)

// StatusDisplay is the display metadata for a status badge.
type StatusDisplay struct {
	// Value is the underlying status value.
	Value string `json:"value" yaml:"value"`

	// Label is the human-readable name.
	Label string `json:"label" yaml:"label"`

	// Icon is the name of the icon a graphical client should render.
	Icon string `json:"icon" yaml:"icon"`

	// Glyph is a single character rendering of the icon for terminals.
	Glyph string `json:"glyph" yaml:"glyph"`

	// Color is the semantic color of the badge.
	Color Color `json:"color" yaml:"color"`
}

// Display maps a health status to its badge.
// Unrecognized values are displayed as unknown.
func Display(h domain.HealthStatus) StatusDisplay {
	switch h {
	case domain.HealthHealthy:
		return StatusDisplay{Value: string(h), Label: "Healthy", Icon: "check-circle", Glyph: "✓", Color: ColorGreen}
	case domain.HealthDegraded:
		return StatusDisplay{Value: string(h), Label: "Degraded", Icon: "alert-circle", Glyph: "⚠", Color: ColorYellow}
	case domain.HealthUnhealthy:
		return StatusDisplay{Value: string(h), Label: "Unhealthy", Icon: "x-circle", Glyph: "✗", Color: ColorRed}
	case domain.HealthUnknown:
		return StatusDisplay{Value: string(h), Label: "Unknown", Icon: "help-circle", Glyph: "?", Color: ColorGray}
	default:
		return Display(domain.HealthUnknown)
	}
}

// LifecycleDisplay maps a lifecycle status to its badge.
func LifecycleDisplay(l domain.LifecycleStatus) StatusDisplay {
	switch l {
	case domain.LifecycleActive:
		return StatusDisplay{Value: string(l), Label: "Active", Icon: "play-circle", Glyph: "●", Color: ColorGreen}
	case domain.LifecycleInactive:
		return StatusDisplay{Value: string(l), Label: "Inactive", Icon: "pause-circle", Glyph: "○", Color: ColorGray}
	case domain.LifecycleConnecting:
		return StatusDisplay{Value: string(l), Label: "Connecting", Icon: "loader", Glyph: "…", Color: ColorBlue}
	case domain.LifecycleDisconnected:
		return StatusDisplay{Value: string(l), Label: "Disconnected", Icon: "unplug", Glyph: "✗", Color: ColorRed}
	default:
		return StatusDisplay{Value: string(l), Label: NotAvailable, Icon: "help-circle", Glyph: "?", Color: ColorGray}
	}
}

// SeverityDisplay maps an incident severity to its badge.
func SeverityDisplay(s domain.Severity) StatusDisplay {
	switch s {
	case domain.SeverityError:
		return StatusDisplay{Value: string(s), Label: "Error", Icon: "x-circle", Glyph: "✗", Color: ColorRed}
	case domain.SeverityWarning:
		return StatusDisplay{Value: string(s), Label: "Warning", Icon: "alert-triangle", Glyph: "⚠", Color: ColorYellow}
	case domain.SeverityInfo:
		return StatusDisplay{Value: string(s), Label: "Info", Icon: "info", Glyph: "i", Color: ColorBlue}
	default:
		return SeverityDisplay(domain.SeverityInfo)
	}
}
