package daemon

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/cloudnook/mcpgw/internal/contracts"
	"github.com/cloudnook/mcpgw/internal/domain"
)

// UptimeTracker counts up and down observations per server per UTC day, over a sliding window of days.
// NewUptimeTracker should be used to create instances of UptimeTracker.
type UptimeTracker struct {
	mu      sync.RWMutex
	days    int
	latest  time.Time
	buckets map[string]map[time.Time]domain.DayBucket
}

var _ contracts.UptimeLog = (*UptimeTracker)(nil)

// NewUptimeTracker creates an UptimeTracker retaining the given number of days.
func NewUptimeTracker(days int) (*UptimeTracker, error) {
	if days <= 0 {
		return nil, fmt.Errorf("uptime window must be positive, got %d days", days)
	}

	return &UptimeTracker{
		days:    days,
		buckets: map[string]map[time.Time]domain.DayBucket{},
	}, nil
}

// Days implements contracts.UptimeLog.
func (u *UptimeTracker) Days() int {
	return u.days
}

// Observe implements contracts.ObservationRecorder.
func (u *UptimeTracker) Observe(observations []domain.Observation) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, o := range observations {
		day := truncateDay(o.ObservedAt)
		if day.After(u.latest) {
			u.latest = day
		}

		perDay, ok := u.buckets[o.ServerID]
		if !ok {
			perDay = map[time.Time]domain.DayBucket{}
			u.buckets[o.ServerID] = perDay
		}

		b := perDay[day]
		b.Day = day
		if o.Up() {
			b.Up++
		} else {
			b.Down++
		}
		perDay[day] = b
	}

	u.prune()
}

// Buckets implements contracts.UptimeLog.
func (u *UptimeTracker) Buckets(serverID string) []domain.DayBucket {
	u.mu.RLock()
	defer u.mu.RUnlock()

	perDay := u.buckets[serverID]
	out := make([]domain.DayBucket, 0, len(perDay))
	for _, b := range perDay {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b domain.DayBucket) int {
		return a.Day.Compare(b.Day)
	})
	return out
}

// prune drops buckets that fall outside the window ending on the latest observed day.
func (u *UptimeTracker) prune() {
	cutoff := u.latest.AddDate(0, 0, -(u.days - 1))

	for id, perDay := range u.buckets {
		for day := range perDay {
			if day.Before(cutoff) {
				delete(perDay, day)
			}
		}
		if len(perDay) == 0 {
			delete(u.buckets, id)
		}
	}
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
