package daemon

import (
	"fmt"
	"time"
)

// Options contains optional configuration for the daemon.
// NewOptions should be used to create instances of Options.
type Options struct {
	// APIOptions contains functional options for the API server.
	APIOptions []APIOption

	// RefreshInterval specifies how often the server list is reloaded from the gateway backend.
	RefreshInterval time.Duration

	// RefreshTimeout specifies the maximum time a single reload may take.
	RefreshTimeout time.Duration

	// IncidentLimit is the number of incidents kept in history.
	IncidentLimit int

	// UptimeDays is the number of days of uptime kept per server.
	UptimeDays int

	// NotificationLimit is the number of undrained operator notifications kept.
	NotificationLimit int

	// Clock returns the current time.
	Clock func() time.Time
}

// Option defines a functional option for configuring Options.
// Options are applied in order, with later options overriding earlier ones.
type Option func(*Options) error

// NewOptions creates Options with optional configurations applied.
// Starts with default values, then applies options in order with later options overriding earlier ones.
func NewOptions(opts ...Option) (Options, error) {
	options := defaultOptions()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&options); err != nil {
			return Options{}, err
		}
	}

	return options, nil
}

// WithAPIOptions configures API server options.
// Replaces all previous API configuration including CORS settings.
func WithAPIOptions(apiOpts ...APIOption) Option {
	return func(o *Options) error {
		o.APIOptions = apiOpts
		return nil
	}
}

// WithRefreshInterval configures how often the server list is reloaded.
func WithRefreshInterval(interval time.Duration) Option {
	return func(o *Options) error {
		if interval <= 0 {
			return fmt.Errorf("refresh interval must be positive, got %v", interval)
		}
		o.RefreshInterval = interval
		return nil
	}
}

// WithRefreshTimeout configures the maximum time a single reload may take.
func WithRefreshTimeout(timeout time.Duration) Option {
	return func(o *Options) error {
		if timeout <= 0 {
			return fmt.Errorf("refresh timeout must be positive, got %v", timeout)
		}
		o.RefreshTimeout = timeout
		return nil
	}
}

// WithIncidentLimit configures how many incidents are kept in history.
func WithIncidentLimit(limit int) Option {
	return func(o *Options) error {
		if limit <= 0 {
			return fmt.Errorf("incident limit must be positive, got %d", limit)
		}
		o.IncidentLimit = limit
		return nil
	}
}

// WithUptimeDays configures how many days of uptime are kept per server.
func WithUptimeDays(days int) Option {
	return func(o *Options) error {
		if days <= 0 {
			return fmt.Errorf("uptime window must be positive, got %d days", days)
		}
		o.UptimeDays = days
		return nil
	}
}

// WithNotificationLimit configures how many undrained notifications are kept.
func WithNotificationLimit(limit int) Option {
	return func(o *Options) error {
		if limit <= 0 {
			return fmt.Errorf("notification limit must be positive, got %d", limit)
		}
		o.NotificationLimit = limit
		return nil
	}
}

// WithClock replaces the clock used to timestamp observations.
func WithClock(clock func() time.Time) Option {
	return func(o *Options) error {
		if clock == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		o.Clock = clock
		return nil
	}
}

// DefaultRefreshInterval is the default interval between server list reloads.
func DefaultRefreshInterval() time.Duration {
	return 30 * time.Second
}

// DefaultRefreshTimeout is the default maximum time for a single reload.
func DefaultRefreshTimeout() time.Duration {
	return 10 * time.Second
}

// DefaultIncidentLimit is the default number of incidents kept in history.
func DefaultIncidentLimit() int {
	return 100
}

// DefaultUptimeDays is the default uptime window.
func DefaultUptimeDays() int {
	return 90
}

// DefaultNotificationLimit is the default number of undrained notifications kept.
func DefaultNotificationLimit() int {
	return 50
}

func defaultOptions() Options {
	return Options{
		RefreshInterval:   DefaultRefreshInterval(),
		RefreshTimeout:    DefaultRefreshTimeout(),
		IncidentLimit:     DefaultIncidentLimit(),
		UptimeDays:        DefaultUptimeDays(),
		NotificationLimit: DefaultNotificationLimit(),
		Clock:             time.Now,
	}
}
