package gateway

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"
)

// ClientOptions contains optional configuration for the gateway Client.
// NewClientOptions should be used to create instances of ClientOptions.
type ClientOptions struct {
	// Timeout bounds every request made by the client.
	Timeout time.Duration

	// HTTPClient performs requests. Its own timeout is ignored in favor of Timeout.
	HTTPClient *http.Client

	// Logger for request diagnostics.
	Logger hclog.Logger
}

// ClientOption defines a functional option for configuring ClientOptions.
// Options are applied in order, with later options overriding earlier ones.
type ClientOption func(*ClientOptions) error

// NewClientOptions creates ClientOptions with optional configurations applied.
// Starts with default values, then applies options in order with later options overriding earlier ones.
func NewClientOptions(opts ...ClientOption) (ClientOptions, error) {
	options := ClientOptions{
		Timeout:    DefaultTimeout(),
		HTTPClient: &http.Client{},
		Logger:     hclog.NewNullLogger(),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&options); err != nil {
			return ClientOptions{}, err
		}
	}

	return options, nil
}

// WithTimeout sets the deadline applied to every request.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(o *ClientOptions) error {
		if timeout <= 0 {
			return fmt.Errorf("timeout must be positive, got %v", timeout)
		}
		o.Timeout = timeout
		return nil
	}
}

// WithHTTPClient sets the HTTP client used to perform requests.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *ClientOptions) error {
		if c == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		o.HTTPClient = c
		return nil
	}
}

// WithLogger sets the logger used by the client.
func WithLogger(logger hclog.Logger) ClientOption {
	return func(o *ClientOptions) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		o.Logger = logger
		return nil
	}
}

// DefaultTimeout is the default deadline applied to backend requests.
func DefaultTimeout() time.Duration {
	return 15 * time.Second
}
