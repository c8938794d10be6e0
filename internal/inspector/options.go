package inspector

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Options contains optional configuration for the Inspector.
// NewOptions should be used to create instances of Options.
type Options struct {
	Logger hclog.Logger
	Clock  func() time.Time
}

// Option defines a functional option for configuring Options.
type Option func(*Options) error

// NewOptions creates Options with optional configurations applied.
func NewOptions(opts ...Option) (Options, error) {
	options := Options{
		Logger: hclog.NewNullLogger(),
		Clock:  time.Now,
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

// WithLogger sets the logger used by the inspector.
func WithLogger(logger hclog.Logger) Option {
	return func(o *Options) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		o.Logger = logger
		return nil
	}
}

// WithClock sets the function used to time execution.
func WithClock(clock func() time.Time) Option {
	return func(o *Options) error {
		if clock == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		o.Clock = clock
		return nil
	}
}
