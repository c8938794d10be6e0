package daemon

import (
	"fmt"
	"net/http"
	"time"
)

// APIOptions configures the console API server.
// NewAPIOptions should be used to create instances of APIOptions.
type APIOptions struct {
	// CORS lets a browser console on another origin call the API.
	CORS CORSConfig

	// ShutdownTimeout bounds how long in-flight requests may finish after the daemon stops.
	ShutdownTimeout time.Duration

	// RequestTimeout bounds one API request, including its calls to the gateway backend.
	RequestTimeout time.Duration
}

// CORSConfig mirrors the [api.cors] config section.
// Disabled unless the console is served from a different origin than the API.
type CORSConfig struct {
	Enabled bool

	// AllowOrigins may be "*", in which case credentials are never allowed.
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool

	// MaxAge is how long a browser may reuse a preflight answer.
	MaxAge time.Duration
}

// APIOption adjusts APIOptions. Later options win.
type APIOption func(*APIOptions) error

// NewAPIOptions returns the defaults with opts applied. Nil options are skipped.
func NewAPIOptions(opts ...APIOption) (APIOptions, error) {
	options := defaultAPIOptions()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&options); err != nil {
			return APIOptions{}, err
		}
	}

	return options, nil
}

func defaultAPIOptions() APIOptions {
	return APIOptions{
		CORS: CORSConfig{
			AllowMethods:     DefaultCORSAllowMethods(),
			AllowHeaders:     DefaultCORSAllowHeaders(),
			AllowCredentials: DefaultCORSAllowCredentials(),
			MaxAge:           DefaultCORSMaxAge(),
		},
		ShutdownTimeout: DefaultAPIShutdownTimeout(),
		RequestTimeout:  DefaultAPIRequestTimeout(),
	}
}

func WithCORSEnabled(enabled bool) APIOption {
	return func(o *APIOptions) error {
		o.CORS.Enabled = enabled
		return nil
	}
}

func WithCORSAllowOrigins(origins []string) APIOption {
	return func(o *APIOptions) error {
		o.CORS.AllowOrigins = origins
		return nil
	}
}

func WithCORSAllowMethods(methods []string) APIOption {
	return func(o *APIOptions) error {
		o.CORS.AllowMethods = methods
		return nil
	}
}

func WithCORSAllowHeaders(headers []string) APIOption {
	return func(o *APIOptions) error {
		o.CORS.AllowHeaders = headers
		return nil
	}
}

func WithCORSExposeHeaders(headers []string) APIOption {
	return func(o *APIOptions) error {
		o.CORS.ExposeHeaders = headers
		return nil
	}
}

func WithCORSAllowCredentials(allowed bool) APIOption {
	return func(o *APIOptions) error {
		o.CORS.AllowCredentials = allowed
		return nil
	}
}

// WithCORSMaxAge sets the preflight cache lifetime. Zero disables caching.
func WithCORSMaxAge(maxAge time.Duration) APIOption {
	return func(o *APIOptions) error {
		if maxAge < 0 {
			return fmt.Errorf("CORS max age must not be negative, got %v", maxAge)
		}
		o.CORS.MaxAge = maxAge
		return nil
	}
}

func WithShutdownTimeout(timeout time.Duration) APIOption {
	return func(o *APIOptions) error {
		if timeout <= 0 {
			return fmt.Errorf("shutdown timeout must be positive, got %v", timeout)
		}
		o.ShutdownTimeout = timeout
		return nil
	}
}

// WithRequestTimeout bounds each API request. Calls to the gateway backend inherit the deadline.
func WithRequestTimeout(timeout time.Duration) APIOption {
	return func(o *APIOptions) error {
		if timeout <= 0 {
			return fmt.Errorf("request timeout must be positive, got %v", timeout)
		}
		o.RequestTimeout = timeout
		return nil
	}
}

// DefaultCORSAllowHeaders covers the simple headers plus the JSON content type the console sends.
func DefaultCORSAllowHeaders() []string {
	return []string{"Accept", "Accept-Language", "Content-Language", "Content-Type"}
}

// DefaultCORSAllowMethods are the only methods the console API routes use.
func DefaultCORSAllowMethods() []string {
	return []string{http.MethodGet, http.MethodPost, http.MethodOptions}
}

func DefaultCORSAllowCredentials() bool {
	return false
}

func DefaultCORSMaxAge() time.Duration {
	return 5 * time.Minute
}

func DefaultAPIShutdownTimeout() time.Duration {
	return 5 * time.Second
}

func DefaultAPIRequestTimeout() time.Duration {
	return 30 * time.Second
}
