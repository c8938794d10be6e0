package viewmodel

import (
	"time"

	"github.com/cloudnook/mcpgw/internal/domain"
)

// DayStatus is the state of a single cell in the uptime grid.
type DayStatus string

const (
	DayUp      DayStatus = "up"
	DayPartial DayStatus = "partial"
	DayDown    DayStatus = "down"
	DayNoData  DayStatus = "no_data"
)

// UptimeDay is a single cell in the uptime grid.
type UptimeDay struct {
	Date   string    `json:"date"   yaml:"date"`
	Status DayStatus `json:"status" yaml:"status"`
}

// UptimeRow is the uptime grid for a single server, oldest day first.
type UptimeRow struct {
	ServerID   string      `json:"serverId"   yaml:"serverId"`
	ServerName string      `json:"serverName" yaml:"serverName"`
	Uptime     string      `json:"uptime"     yaml:"uptime"`
	Days       []UptimeDay `json:"days"       yaml:"days"`
}

// DayStatusOf classifies a bucket: all up, all down, mixed or unobserved.
func DayStatusOf(b domain.DayBucket) DayStatus {
	switch {
	case !b.Observed():
		return DayNoData
	case b.Down == 0:
		return DayUp
	case b.Up == 0:
		return DayDown
	default:
		return DayPartial
	}
}

// UptimePercent returns the share of up observations across the buckets, and false when nothing was observed.
func UptimePercent(buckets []domain.DayBucket) (float64, bool) {
	var up, total int
	for _, b := range buckets {
		up += b.Up
		total += b.Up + b.Down
	}
	if total == 0 {
		return 0, false
	}
	return float64(up) * 100 / float64(total), true
}

// BuildUptimeGrid lays out the buckets for the days window ending on today (UTC).
// Days without a bucket are DayNoData. Buckets outside the window are ignored.
func BuildUptimeGrid(buckets []domain.DayBucket, days int, today time.Time) []UptimeDay {
	if days <= 0 {
		return []UptimeDay{}
	}

	end := truncateDay(today)
	start := end.AddDate(0, 0, -(days - 1))

	byDay := make(map[string]domain.DayBucket, len(buckets))
	for _, b := range buckets {
		d := truncateDay(b.Day)
		if d.Before(start) || d.After(end) {
			continue
		}
		key := d.Format(time.DateOnly)
		existing := byDay[key]
		existing.Up += b.Up
		existing.Down += b.Down
		byDay[key] = existing
	}

	grid := make([]UptimeDay, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(time.DateOnly)
		grid = append(grid, UptimeDay{Date: key, Status: DayStatusOf(byDay[key])})
	}
	return grid
}

// BuildUptimeRow builds the grid and uptime percentage for a single server.
func BuildUptimeRow(serverID string, serverName string, buckets []domain.DayBucket, days int, today time.Time) UptimeRow {
	row := UptimeRow{
		ServerID:   serverID,
		ServerName: Text(serverName),
		Uptime:     NotAvailable,
		Days:       BuildUptimeGrid(buckets, days, today),
	}

	if pct, ok := UptimePercent(buckets); ok {
		row.Uptime = FormatPercent(pct)
	}
	return row
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
