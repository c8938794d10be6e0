package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/require"

	"github.com/cloudnook/mcpgw/internal/files"
	"github.com/cloudnook/mcpgw/internal/flags"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".mcpgw.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultLoader_Load(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
[backend]
url = "http://gateway.internal:8080"
timeout = "5s"

[api]
addr = "0.0.0.0:9000"

[api.timeout]
shutdown = "3s"
request = "20s"

[api.cors]
enable = true
allow_origins = ["http://localhost:5173"]
max_age = "10m"

[refresh]
interval = "15s"
timeout = "4s"

[health]
degraded_failure_rate = 2.5
unhealthy_latency_ms = 750.0

[monitoring]
incident_limit = 20
uptime_days = 30
notification_limit = 5
`)

	loader := &DefaultLoader{}
	cfg, err := loader.Load(path)
	require.NoError(t, err)

	require.Equal(t, path, cfg.Path())
	require.Equal(t, "http://gateway.internal:8080", cfg.BackendURL())
	require.Equal(t, 5*time.Second, cfg.Backend.Timeout.Std())
	require.Equal(t, "0.0.0.0:9000", *cfg.API.Addr)
	require.Equal(t, 3*time.Second, cfg.API.Timeout.Shutdown.Std())
	require.Equal(t, 20*time.Second, cfg.API.Timeout.Request.Std())
	require.True(t, *cfg.API.CORS.Enable)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.API.CORS.Origins)
	require.Equal(t, 10*time.Minute, cfg.API.CORS.MaxAge.Std())
	require.Equal(t, 15*time.Second, cfg.Refresh.Interval.Std())
	require.Equal(t, 2.5, *cfg.Health.DegradedFailureRate)
	require.Nil(t, cfg.Health.UnhealthyFailureRate)
	require.Equal(t, 750.0, *cfg.Health.UnhealthyLatencyMs)
	require.Equal(t, 20, *cfg.Monitoring.IncidentLimit)
	require.Equal(t, 30, *cfg.Monitoring.UptimeDays)
	require.Equal(t, 5, *cfg.Monitoring.NotificationLimit)
}

func TestDefaultLoader_Load_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		path    string
		wantErr string
	}{
		{name: "empty path", path: " ", wantErr: "path cannot be empty"},
		{name: "missing file", path: "/does/not/exist.toml", wantErr: "run: 'mcpgw init'"},
		{name: "invalid toml", content: "[backend\nurl=", wantErr: "failed to decode config"},
		{name: "unknown key", content: "[backend]\nuri = \"http://x\"", wantErr: "unknown config key 'backend.uri'"},
		{name: "invalid duration", content: "[refresh]\ninterval = \"soon\"", wantErr: "failed to decode config"},
		{name: "non positive duration", content: "[refresh]\ninterval = \"0s\"", wantErr: "refresh configuration error"},
		{name: "invalid backend url", content: "[backend]\nurl = \"ftp://x\"", wantErr: "backend configuration error"},
		{name: "invalid addr", content: "[api]\naddr = \"localhost\"", wantErr: "api configuration error"},
		{name: "failure rate out of range", content: "[health]\nunhealthy_failure_rate = 101.0", wantErr: "health configuration error"},
		{name: "zero uptime days", content: "[monitoring]\nuptime_days = 0", wantErr: "monitoring configuration error"},
		{name: "wildcard with credentials", content: "[api.cors]\nenable = true\nallow_origins = [\"*\"]\nallow_credentials = true", wantErr: "wildcard origin"},
		{name: "cors without origins", content: "[api.cors]\nenable = true", wantErr: "allow_origins must be set"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := tc.path
			if path == "" {
				path = writeConfig(t, tc.content)
			}

			_, err := (&DefaultLoader{}).Load(path)
			require.ErrorIs(t, err, ErrConfigLoadFailed)
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestDefaultLoader_Load_EmptyFile(t *testing.T) {
	t.Parallel()

	cfg, err := (&DefaultLoader{}).Load(writeConfig(t, ""))
	require.NoError(t, err)
	require.Empty(t, cfg.BackendURL())
	require.Nil(t, cfg.API)
}

func TestDefaultLoader_Init(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", ".mcpgw.toml")
	loader := &DefaultLoader{}

	require.NoError(t, loader.Init(path))
	require.ErrorContains(t, loader.Init(path), "already exists")

	cfg, err := loader.Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", cfg.BackendURL())
	require.Equal(t, "0.0.0.0:8090", *cfg.API.Addr)
	require.Equal(t, 30*time.Second, cfg.Refresh.Interval.Std())
	require.Equal(t, 90, *cfg.Monitoring.UptimeDays)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), `interval = "30s"`)
}

func TestResolvePath(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv(files.EnvVarXDGConfigHome, xdg)
	t.Chdir(t.TempDir())

	got, err := ResolvePath("/explicit/path.toml")
	require.NoError(t, err)
	require.Equal(t, "/explicit/path.toml", got)

	// Nothing exists: the default is returned so the loader can report it.
	got, err = ResolvePath(flags.DefaultConfigFile)
	require.NoError(t, err)
	require.Equal(t, flags.DefaultConfigFile, got)

	userPath := filepath.Join(xdg, files.AppDirName(), UserConfigFileName)
	require.NoError(t, (&DefaultLoader{}).Init(userPath))

	got, err = ResolvePath(flags.DefaultConfigFile)
	require.NoError(t, err)
	require.Equal(t, userPath, got)

	require.NoError(t, os.WriteFile(flags.DefaultConfigFile, nil, 0o644))
	got, err = ResolvePath(flags.DefaultConfigFile)
	require.NoError(t, err)
	require.Equal(t, flags.DefaultConfigFile, got)
}

func TestDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{90 * time.Minute, "90m"},
		{2 * time.Hour, "2h"},
		{1500 * time.Millisecond, "1500ms"},
		{30 * time.Second, "30s"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			t.Parallel()

			d := Duration(tc.in)
			require.Equal(t, tc.want, d.String())

			var parsed Duration
			require.NoError(t, parsed.UnmarshalText([]byte(d.String())))
			require.Equal(t, d, parsed)
		})
	}

	var bad Duration
	require.Error(t, bad.UnmarshalText([]byte("later")))
}

func TestConfig_EncodesOnlySetSections(t *testing.T) {
	t.Parallel()

	url := "http://gw:8080"
	var out []byte
	var err error
	out, err = toml.Marshal(&Config{Backend: &BackendSection{URL: &url}})
	require.NoError(t, err)
	require.Contains(t, string(out), "[backend]")
	require.NotContains(t, string(out), "[api]")
}

func TestDefaultLoader_Load_NotFound(t *testing.T) {
	t.Parallel()

	_, err := (&DefaultLoader{}).Load(filepath.Join(t.TempDir(), ".mcpgw.toml"))
	require.ErrorIs(t, err, ErrConfigNotFound)
}
