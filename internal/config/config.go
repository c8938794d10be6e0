package config

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/cloudnook/mcpgw/internal/files"
	"github.com/cloudnook/mcpgw/internal/flags"
	"github.com/cloudnook/mcpgw/internal/perms"
)

// UserConfigFileName is the name of the config file inside the user-specific config directory.
const UserConfigFileName = "config.toml"

// Duration is a custom time.Duration type that provides improved marshaling.
type Duration time.Duration

// Init creates the base skeleton configuration file for the mcpgw console.
func (d *DefaultLoader) Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := files.EnsureAtLeastRegularDir(dir); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(Skeleton()); err != nil {
		return fmt.Errorf("failed to encode skeleton config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), perms.RegularFile); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

func (d *DefaultLoader) Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: path cannot be empty", ErrConfigLoadFailed)
	}

	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %w, run: 'mcpgw init'", ErrConfigLoadFailed, ErrConfigNotFound)
		}
		return nil, fmt.Errorf("%w: failed to stat config file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	var cfg *Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode config from file (%s): %w", ErrConfigLoadFailed, path, err)
	}
	if cfg == nil {
		cfg = &Config{}
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown config key '%s' (%s)", ErrConfigLoadFailed, undecoded[0], path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: failed to validate existing config (%s): %w", ErrConfigLoadFailed, path, err)
	}

	cfg.configFilePath = path

	return cfg, nil
}

// ResolvePath returns the config file to load.
// When path is the default project file and it does not exist, the user-specific config file is used instead.
func ResolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path != flags.DefaultConfigFile {
		return path, nil
	}

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	dir, err := files.UserSpecificConfigDir()
	if err != nil {
		return "", err
	}

	userPath := filepath.Join(dir, UserConfigFileName)
	if _, err := os.Stat(userPath); err == nil {
		return userPath, nil
	}

	return path, nil
}

// Skeleton returns the configuration written by Init.
func Skeleton() *Config {
	backendURL := "http://localhost:8080"
	backendTimeout := Duration(10 * time.Second)
	addr := "0.0.0.0:8090"
	interval := Duration(30 * time.Second)
	incidentLimit := 100
	uptimeDays := 90

	return &Config{
		Backend:    &BackendSection{URL: &backendURL, Timeout: &backendTimeout},
		API:        &APISection{Addr: &addr},
		Refresh:    &RefreshSection{Interval: &interval},
		Monitoring: &MonitoringSection{IncidentLimit: &incidentLimit, UptimeDays: &uptimeDays},
	}
}

// Path returns the file this configuration was loaded from.
func (c *Config) Path() string {
	return c.configFilePath
}

// BackendURL returns the configured backend URL, or an empty string.
func (c *Config) BackendURL() string {
	if c == nil || c.Backend == nil || c.Backend.URL == nil {
		return ""
	}
	return strings.TrimSpace(*c.Backend.URL)
}

// Validate orchestrates validation of every configured section.
func (c *Config) Validate() error {
	var errs []error

	if c.Backend != nil {
		if err := c.Backend.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("backend configuration error: %w", err))
		}
	}
	if c.API != nil {
		if err := c.API.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("api configuration error: %w", err))
		}
	}
	if c.Refresh != nil {
		if err := c.Refresh.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("refresh configuration error: %w", err))
		}
	}
	if c.Health != nil {
		if err := c.Health.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("health configuration error: %w", err))
		}
	}
	if c.Monitoring != nil {
		if err := c.Monitoring.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("monitoring configuration error: %w", err))
		}
	}

	return errors.Join(errs...)
}

// Validate implements validation for BackendSection.
func (b *BackendSection) Validate() error {
	var errs []error

	if b.URL != nil {
		if err := validateBackendURL(*b.URL); err != nil {
			errs = append(errs, err)
		}
	}
	if err := validatePositive("timeout", b.Timeout); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Validate implements validation for APISection.
func (a *APISection) Validate() error {
	var errs []error

	if a.Addr != nil {
		if _, port, err := net.SplitHostPort(*a.Addr); err != nil || port == "" {
			errs = append(errs, NewErrInvalidValue("addr", *a.Addr))
		}
	}
	if a.Timeout != nil {
		if err := validatePositive("timeout.shutdown", a.Timeout.Shutdown); err != nil {
			errs = append(errs, err)
		}
		if err := validatePositive("timeout.request", a.Timeout.Request); err != nil {
			errs = append(errs, err)
		}
	}
	if a.CORS != nil {
		if err := a.CORS.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("cors: %w", err))
		}
	}

	return errors.Join(errs...)
}

// Validate implements validation for CORSSection.
func (c *CORSSection) Validate() error {
	var errs []error

	enabled := c.Enable != nil && *c.Enable
	if enabled && len(c.Origins) == 0 {
		errs = append(errs, fmt.Errorf("allow_origins must be set when CORS is enabled"))
	}

	credentials := c.Credentials != nil && *c.Credentials
	for _, origin := range c.Origins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			if credentials {
				errs = append(errs, fmt.Errorf("allow_credentials cannot be used with wildcard origin"))
			}
			continue
		}
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, NewErrInvalidValue("allow_origins", origin))
		}
	}

	if c.MaxAge != nil && *c.MaxAge < 0 {
		errs = append(errs, NewErrInvalidValue("max_age", c.MaxAge.String()))
	}

	return errors.Join(errs...)
}

// Validate implements validation for RefreshSection.
func (r *RefreshSection) Validate() error {
	return errors.Join(
		validatePositive("interval", r.Interval),
		validatePositive("timeout", r.Timeout),
	)
}

// Validate implements validation for HealthSection.
func (h *HealthSection) Validate() error {
	var errs []error

	for key, pct := range map[string]*float64{
		"degraded_failure_rate":  h.DegradedFailureRate,
		"unhealthy_failure_rate": h.UnhealthyFailureRate,
	} {
		if pct != nil && (*pct < 0 || *pct > 100) {
			errs = append(errs, NewErrInvalidValue(key, fmt.Sprint(*pct)))
		}
	}
	for key, ms := range map[string]*float64{
		"degraded_latency_ms":  h.DegradedLatencyMs,
		"unhealthy_latency_ms": h.UnhealthyLatencyMs,
	} {
		if ms != nil && *ms <= 0 {
			errs = append(errs, NewErrInvalidValue(key, fmt.Sprint(*ms)))
		}
	}

	return errors.Join(errs...)
}

// Validate implements validation for MonitoringSection.
func (m *MonitoringSection) Validate() error {
	var errs []error

	for key, n := range map[string]*int{
		"incident_limit":     m.IncidentLimit,
		"uptime_days":        m.UptimeDays,
		"notification_limit": m.NotificationLimit,
	} {
		if n != nil && *n <= 0 {
			errs = append(errs, NewErrInvalidValue(key, fmt.Sprint(*n)))
		}
	}

	return errors.Join(errs...)
}

// MarshalText implements encoding.TextMarshaler for Duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// String returns a human-readable string representation of the duration.
func (d Duration) String() string {
	duration := time.Duration(d)

	units := []struct {
		unit   time.Duration
		suffix string
	}{
		{time.Hour, "h"},
		{time.Minute, "m"},
		{time.Second, "s"},
		{time.Millisecond, "ms"},
		{time.Microsecond, "µs"},
		{time.Nanosecond, "ns"},
	}

	if duration == 0 {
		return "0s"
	}

	for _, u := range units {
		if duration%u.unit == 0 {
			return fmt.Sprintf("%d%s", duration/u.unit, u.suffix)
		}
	}

	return fmt.Sprintf("%dns", duration)
}

// UnmarshalText implements encoding.TextUnmarshaler for Duration.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func validatePositive(key string, d *Duration) error {
	if d != nil && *d <= 0 {
		return NewErrInvalidValue(key, d.String())
	}
	return nil
}

func validateBackendURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return NewErrInvalidValue("url", raw)
	}
	return nil
}
