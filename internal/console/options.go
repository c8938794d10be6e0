package console

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/cloudnook/mcpgw/internal/contracts"
	"github.com/cloudnook/mcpgw/internal/notify"
)

// Options contains optional configuration for the Store.
// NewOptions should be used to create instances of Options.
type Options struct {
	// Notifier receives transient operator notifications.
	Notifier notify.Notifier

	// Logger for store diagnostics.
	Logger hclog.Logger

	// Observers are told about every server each time the dashboard is refreshed.
	Observers []contracts.ObservationRecorder

	// Clock returns the current time.
	Clock func() time.Time
}

// Option defines a functional option for configuring Options.
// Options are applied in order, with later options overriding earlier ones.
type Option func(*Options) error

// NewOptions creates Options with optional configurations applied.
// Starts with default values, then applies options in order with later options overriding earlier ones.
func NewOptions(opts ...Option) (Options, error) {
	options := Options{
		Notifier: notify.Discard,
		Logger:   hclog.NewNullLogger(),
		Clock:    func() time.Time { return time.Now().UTC() },
	}

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

// WithNotifier sets the notifier used for operator notifications.
func WithNotifier(n notify.Notifier) Option {
	return func(o *Options) error {
		if n == nil {
			return fmt.Errorf("notifier cannot be nil")
		}
		o.Notifier = n
		return nil
	}
}

// WithLogger sets the logger used by the store.
func WithLogger(logger hclog.Logger) Option {
	return func(o *Options) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		o.Logger = logger
		return nil
	}
}

// WithObserver adds an observer that records every refresh.
func WithObserver(r contracts.ObservationRecorder) Option {
	return func(o *Options) error {
		if r == nil {
			return fmt.Errorf("observer cannot be nil")
		}
		o.Observers = append(o.Observers, r)
		return nil
	}
}

// WithClock sets the function used to obtain the current time.
func WithClock(clock func() time.Time) Option {
	return func(o *Options) error {
		if clock == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		o.Clock = clock
		return nil
	}
}
