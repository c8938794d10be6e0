package config

var _ Provider = (*DefaultLoader)(nil)

type Loader interface {
	Load(path string) (*Config, error)
}

type Initializer interface {
	Init(path string) error
}

type Provider interface {
	Initializer
	Loader
}

type DefaultLoader struct{}

// Config represents the .mcpgw.toml file structure.
// Every section is optional; unset values fall back to component defaults.
//
// NOTE: if you add/remove fields you must review the associated Validate implementations
// and the skeleton written by Init.
type Config struct {
	// Backend configures the gateway backend the console reads from.
	Backend *BackendSection `json:"backend,omitempty" toml:"backend,omitempty" yaml:"backend,omitempty"`

	// API configures the console API served by the daemon.
	API *APISection `json:"api,omitempty" toml:"api,omitempty" yaml:"api,omitempty"`

	// Refresh configures the daemon's periodic reload of the server list.
	Refresh *RefreshSection `json:"refresh,omitempty" toml:"refresh,omitempty" yaml:"refresh,omitempty"`

	// Health configures health classification thresholds.
	Health *HealthSection `json:"health,omitempty" toml:"health,omitempty" yaml:"health,omitempty"`

	// Monitoring configures incident and uptime history.
	Monitoring *MonitoringSection `json:"monitoring,omitempty" toml:"monitoring,omitempty" yaml:"monitoring,omitempty"`

	configFilePath string `toml:"-"`
}

// BackendSection contains gateway backend settings.
type BackendSection struct {
	// URL is the base URL of the gateway backend REST API (e.g. "http://localhost:8080").
	// Maps to CLI flag --backend-url
	URL *string `json:"url,omitempty" toml:"url,omitempty" yaml:"url,omitempty"`

	// Timeout bounds each request to the backend.
	Timeout *Duration `json:"timeout,omitempty" toml:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// APISection contains API server configuration settings.
type APISection struct {
	// Address to bind the API server (e.g., "0.0.0.0:8090")
	// Maps to CLI flag --addr
	Addr *string `json:"addr,omitempty" toml:"addr,omitempty" yaml:"addr,omitempty"`

	// Nested timeout configuration for API operations
	Timeout *APITimeoutSection `json:"timeout,omitempty" toml:"timeout,omitempty" yaml:"timeout,omitempty"`

	// Nested CORS configuration for cross-origin requests
	CORS *CORSSection `json:"cors,omitempty" toml:"cors,omitempty" yaml:"cors,omitempty"`
}

// APITimeoutSection contains timeout settings for API operations.
type APITimeoutSection struct {
	// Shutdown timeout for graceful API server shutdown
	Shutdown *Duration `json:"shutdown,omitempty" toml:"shutdown,omitempty" yaml:"shutdown,omitempty"`

	// Request timeout for a single API request
	Request *Duration `json:"request,omitempty" toml:"request,omitempty" yaml:"request,omitempty"`
}

// CORSSection contains Cross-Origin Resource Sharing (CORS) configuration.
type CORSSection struct {
	// Enable CORS support
	Enable *bool `json:"enable,omitempty" toml:"enable,omitempty" yaml:"enable,omitempty"`

	// Allowed origins for CORS requests
	Origins []string `json:"allowOrigins,omitempty" toml:"allow_origins,omitempty" yaml:"allow_origins,omitempty"`

	// Allowed HTTP methods for CORS requests
	Methods []string `json:"allowMethods,omitempty" toml:"allow_methods,omitempty" yaml:"allow_methods,omitempty"`

	// Allowed headers for CORS requests
	Headers []string `json:"allowHeaders,omitempty" toml:"allow_headers,omitempty" yaml:"allow_headers,omitempty"`

	// Headers exposed to the client
	ExposeHeaders []string `json:"exposeHeaders,omitempty" toml:"expose_headers,omitempty" yaml:"expose_headers,omitempty"`

	// Allow credentials in CORS requests
	Credentials *bool `json:"allowCredentials,omitempty" toml:"allow_credentials,omitempty" yaml:"allow_credentials,omitempty"`

	// Maximum age for CORS preflight cache
	MaxAge *Duration `json:"maxAge,omitempty" toml:"max_age,omitempty" yaml:"max_age,omitempty"`
}

// RefreshSection contains settings for the daemon's periodic server list reload.
type RefreshSection struct {
	// Interval between reloads.
	Interval *Duration `json:"interval,omitempty" toml:"interval,omitempty" yaml:"interval,omitempty"`

	// Timeout bounds a single reload.
	Timeout *Duration `json:"timeout,omitempty" toml:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// HealthSection contains the thresholds used to classify server health from metrics.
// Failure rates are percentages, latencies are milliseconds.
type HealthSection struct {
	DegradedFailureRate  *float64 `json:"degradedFailureRate,omitempty"  toml:"degraded_failure_rate,omitempty"  yaml:"degraded_failure_rate,omitempty"`
	UnhealthyFailureRate *float64 `json:"unhealthyFailureRate,omitempty" toml:"unhealthy_failure_rate,omitempty" yaml:"unhealthy_failure_rate,omitempty"`
	DegradedLatencyMs    *float64 `json:"degradedLatencyMs,omitempty"    toml:"degraded_latency_ms,omitempty"    yaml:"degraded_latency_ms,omitempty"`
	UnhealthyLatencyMs   *float64 `json:"unhealthyLatencyMs,omitempty"   toml:"unhealthy_latency_ms,omitempty"   yaml:"unhealthy_latency_ms,omitempty"`
}

// MonitoringSection contains incident, uptime and notification history limits.
type MonitoringSection struct {
	// IncidentLimit is the number of incidents kept.
	IncidentLimit *int `json:"incidentLimit,omitempty" toml:"incident_limit,omitempty" yaml:"incident_limit,omitempty"`

	// UptimeDays is the uptime window per server.
	UptimeDays *int `json:"uptimeDays,omitempty" toml:"uptime_days,omitempty" yaml:"uptime_days,omitempty"`

	// NotificationLimit is the number of undrained operator notifications kept.
	NotificationLimit *int `json:"notificationLimit,omitempty" toml:"notification_limit,omitempty" yaml:"notification_limit,omitempty"`
}
