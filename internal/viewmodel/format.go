package viewmodel

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// Placeholder is rendered for absent or invalid numeric values.
	Placeholder = "-"

	// NotAvailable is rendered for absent text and time values.
	NotAvailable = "N/A"

	// TimeLayout is the layout used when rendering timestamps.
	TimeLayout = "2006-01-02 15:04:05"
)

// FormatLatency renders a latency in milliseconds rounded to the nearest millisecond (half away from zero).
// Negative or non-finite values render as Placeholder.
func FormatLatency(ms float64) string {
	if !finite(ms) || ms < 0 {
		return Placeholder
	}
	rounded := math.Round(ms)
	if rounded == 0 {
		// Negative zero.
		rounded = 0
	}
	return strconv.FormatFloat(rounded, 'f', 0, 64) + "ms"
}

// FormatUptime renders a duration in seconds as "<d>d <h>h <m>m", dropping zero-valued leading units.
// Zero and negative durations render as "0m".
func FormatUptime(seconds int64) string {
	if seconds <= 0 {
		return "0m"
	}

	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// FormatPercent renders a percentage with one decimal place, e.g. "98.2%".
func FormatPercent(pct float64) string {
	if !finite(pct) || pct < 0 {
		return Placeholder
	}
	return strconv.FormatFloat(pct, 'f', 1, 64) + "%"
}

// FormatCount renders a counter, with negative values rendering as Placeholder.
func FormatCount(n int64) string {
	if n < 0 {
		return Placeholder
	}
	return strconv.FormatInt(n, 10)
}

// FormatOptionalCount renders an optional counter, absent values render as Placeholder.
func FormatOptionalCount(n *int64) string {
	if n == nil {
		return Placeholder
	}
	return FormatCount(*n)
}

// FormatTime renders a timestamp in UTC using TimeLayout, or NotAvailable when absent.
func FormatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return NotAvailable
	}
	return t.UTC().Format(TimeLayout)
}

// FormatAge renders how long ago t occurred relative to now, e.g. "5m ago".
func FormatAge(now time.Time, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
}

// Text returns s trimmed, or NotAvailable when s is blank.
func Text(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return NotAvailable
	}
	return s
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
