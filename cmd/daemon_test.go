package cmd

import (
	"io"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudnook/mcpgw/internal/cmd"
	cmdopts "github.com/cloudnook/mcpgw/internal/cmd/options"
	"github.com/cloudnook/mcpgw/internal/config"
	"github.com/cloudnook/mcpgw/internal/daemon"
)

func TestDaemon_NewDaemonCmd_Success(t *testing.T) {
	t.Parallel()

	cobraCmd, err := NewDaemonCmd(&cmd.BaseCmd{}, cmdopts.WithConfigLoader(&mockConfigLoader{}))
	require.NoError(t, err)
	require.NotNil(t, cobraCmd)

	assert.Equal(t, "daemon", cobraCmd.Name())
	assert.Contains(t, cobraCmd.Short, "daemon")
	assert.Contains(t, cobraCmd.Long, "gateway backend")
}

func TestDaemon_NewDaemonCmd_WithOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []cmdopts.CmdOption
		wantErr string
	}{
		{
			name: "valid options",
			opts: []cmdopts.CmdOption{
				cmdopts.WithConfigLoader(&mockConfigLoader{}),
				cmdopts.WithBackendFactory(fakeBackendFactory(nil)),
			},
		},
		{
			name: "no options provided",
			opts: []cmdopts.CmdOption{},
		},
		{
			name:    "nil config loader",
			opts:    []cmdopts.CmdOption{cmdopts.WithConfigLoader(nil)},
			wantErr: "config loader cannot be nil",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cobraCmd, err := NewDaemonCmd(&cmd.BaseCmd{}, tc.opts...)
			if tc.wantErr != "" {
				require.EqualError(t, err, tc.wantErr)
				require.Nil(t, cobraCmd)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cobraCmd)
		})
	}
}

func TestDaemon_DaemonCmd_Flags(t *testing.T) {
	t.Parallel()

	cobraCmd, err := NewDaemonCmd(&cmd.BaseCmd{}, cmdopts.WithConfigLoader(&mockConfigLoader{}))
	require.NoError(t, err)

	fs := cobraCmd.Flags()
	for _, name := range []string{
		"dev",
		flagAddr,
		flagCORSEnable,
		flagCORSOrigin,
		flagCORSMethod,
		flagCORSCredentials,
		flagCORSMaxAge,
		flagTimeoutAPIShutdown,
		flagTimeoutAPIRequest,
		flagTimeoutRefresh,
		flagIntervalRefresh,
	} {
		require.NotNil(t, fs.Lookup(name), name)
	}

	assert.Equal(t, "false", fs.Lookup("dev").DefValue)
	assert.Equal(t, "0.0.0.0:8090", fs.Lookup(flagAddr).DefValue)
	assert.Equal(t, "false", fs.Lookup(flagCORSEnable).DefValue)
}

func TestDaemon_DaemonCmd_FlagMutualExclusion(t *testing.T) {
	t.Parallel()

	cobraCmd, err := NewDaemonCmd(&cmd.BaseCmd{}, cmdopts.WithConfigLoader(&mockConfigLoader{}))
	require.NoError(t, err)

	cobraCmd.SetArgs([]string{"--dev", "--addr=localhost:9000"})
	cobraCmd.SetOut(io.Discard)
	cobraCmd.SetErr(io.Discard)

	err = cobraCmd.Execute()
	require.ErrorContains(t, err, "if any flags in the group [dev addr] are set none of the others can be")
}

func TestDaemon_DaemonCmd_ValidateFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		config      daemonFlagConfig
		expectError string
	}{
		{
			name: "valid configuration",
			config: daemonFlagConfig{
				cors:     corsFlagConfig{enable: true, origins: []string{"http://localhost:3000"}, maxAge: "10m"},
				timeout:  timeoutFlagConfig{apiShutdown: "5s", apiRequest: "30s", refresh: "10s"},
				interval: intervalFlagConfig{refresh: "1m"},
			},
		},
		{
			name:        "invalid CORS max age duration",
			config:      daemonFlagConfig{cors: corsFlagConfig{maxAge: "invalid-duration"}},
			expectError: "invalid --cors-max-age duration: time: invalid duration \"invalid-duration\"",
		},
		{
			name:        "invalid API shutdown timeout",
			config:      daemonFlagConfig{timeout: timeoutFlagConfig{apiShutdown: "not-a-duration"}},
			expectError: "invalid --timeout-api-shutdown duration: time: invalid duration \"not-a-duration\"",
		},
		{
			name:        "invalid API request timeout",
			config:      daemonFlagConfig{timeout: timeoutFlagConfig{apiRequest: "soon"}},
			expectError: "invalid --timeout-api-request duration: time: invalid duration \"soon\"",
		},
		{
			name:        "invalid refresh timeout",
			config:      daemonFlagConfig{timeout: timeoutFlagConfig{refresh: "bad-format"}},
			expectError: "invalid --timeout-refresh duration: time: invalid duration \"bad-format\"",
		},
		{
			name:        "invalid refresh interval",
			config:      daemonFlagConfig{interval: intervalFlagConfig{refresh: "not-valid"}},
			expectError: "invalid --interval-refresh duration: time: invalid duration \"not-valid\"",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := &DaemonCmd{BaseCmd: &cmd.BaseCmd{}, config: tc.config}

			err := c.validateFlags(nil)
			if tc.expectError != "" {
				require.EqualError(t, err, tc.expectError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDaemon_DaemonCmd_BuildAPIOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		section  *config.APISection
		config   daemonFlagConfig
		wantErr  string
		validate func(t *testing.T, opts daemon.APIOptions)
	}{
		{
			name: "defaults",
			validate: func(t *testing.T, opts daemon.APIOptions) {
				assert.False(t, opts.CORS.Enabled)
				assert.Equal(t, daemon.DefaultAPIShutdownTimeout(), opts.ShutdownTimeout)
				assert.Equal(t, daemon.DefaultAPIRequestTimeout(), opts.RequestTimeout)
			},
		},
		{
			name: "from config file",
			section: &config.APISection{
				Timeout: &config.APITimeoutSection{Shutdown: durationPtr(7 * time.Second), Request: durationPtr(time.Minute)},
				CORS: &config.CORSSection{
					Enable:      ptr(true),
					Origins:     []string{"http://console.local"},
					Headers:     []string{"Authorization"},
					Credentials: ptr(true),
					MaxAge:      durationPtr(time.Hour),
				},
			},
			validate: func(t *testing.T, opts daemon.APIOptions) {
				assert.True(t, opts.CORS.Enabled)
				assert.Equal(t, []string{"http://console.local"}, opts.CORS.AllowOrigins)
				assert.Equal(t, []string{"Authorization"}, opts.CORS.AllowHeaders)
				assert.True(t, opts.CORS.AllowCredentials)
				assert.Equal(t, time.Hour, opts.CORS.MaxAge)
				assert.Equal(t, 7*time.Second, opts.ShutdownTimeout)
				assert.Equal(t, time.Minute, opts.RequestTimeout)
			},
		},
		{
			name: "flags override config file",
			section: &config.APISection{
				CORS: &config.CORSSection{Enable: ptr(true), Origins: []string{"http://console.local"}},
			},
			config: daemonFlagConfig{
				cors:    corsFlagConfig{origins: []string{"http://localhost:3000"}, methods: []string{"GET"}, maxAge: "10m"},
				timeout: timeoutFlagConfig{apiShutdown: "30s"},
			},
			validate: func(t *testing.T, opts daemon.APIOptions) {
				assert.True(t, opts.CORS.Enabled)
				assert.Equal(t, []string{"http://localhost:3000"}, opts.CORS.AllowOrigins)
				assert.Equal(t, []string{"GET"}, opts.CORS.AllowMethods)
				assert.Equal(t, 10*time.Minute, opts.CORS.MaxAge)
				assert.Equal(t, 30*time.Second, opts.ShutdownTimeout)
			},
		},
		{
			name:    "invalid CORS max age",
			config:  daemonFlagConfig{cors: corsFlagConfig{maxAge: "invalid"}},
			wantErr: "invalid cors-max-age: time: invalid duration \"invalid\"",
		},
		{
			name:    "invalid API request timeout",
			config:  daemonFlagConfig{timeout: timeoutFlagConfig{apiRequest: "never"}},
			wantErr: "invalid timeout-api-request: time: invalid duration \"never\"",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := &DaemonCmd{BaseCmd: &cmd.BaseCmd{}, config: tc.config}

			opts, err := c.buildAPIOptions(tc.section)
			if tc.wantErr != "" {
				require.EqualError(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)

			apiOpts, err := daemon.NewAPIOptions(opts...)
			require.NoError(t, err)
			tc.validate(t, apiOpts)
		})
	}
}

func TestDaemon_DaemonCmd_BuildDaemonOptions(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Refresh:    &config.RefreshSection{Interval: durationPtr(time.Minute), Timeout: durationPtr(20 * time.Second)},
		Monitoring: &config.MonitoringSection{IncidentLimit: ptr(10), UptimeDays: ptr(30), NotificationLimit: ptr(5)},
	}

	c := &DaemonCmd{
		BaseCmd: &cmd.BaseCmd{},
		config:  daemonFlagConfig{interval: intervalFlagConfig{refresh: "2m"}},
	}

	opt, err := c.buildDaemonOptions(cfg)
	require.NoError(t, err)

	opts, err := daemon.NewOptions(opt...)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, opts.RefreshInterval)
	assert.Equal(t, 20*time.Second, opts.RefreshTimeout)
	assert.Equal(t, 10, opts.IncidentLimit)
	assert.Equal(t, 30, opts.UptimeDays)
	assert.Equal(t, 5, opts.NotificationLimit)

	opt, err = c.buildDaemonOptions(nil)
	require.NoError(t, err)
	_, err = daemon.NewOptions(opt...)
	require.NoError(t, err)
}

func TestDaemon_DaemonCmd_ResolveAddr(t *testing.T) {
	t.Parallel()

	configured := "127.0.0.1:9999"

	tests := []struct {
		name string
		args []string
		cfg  *config.Config
		want string
	}{
		{name: "default", cfg: &config.Config{}, want: defaultAddr},
		{name: "config file", cfg: &config.Config{API: &config.APISection{Addr: &configured}}, want: configured},
		{
			name: "flag wins",
			args: []string{"--addr", "localhost:7000"},
			cfg:  &config.Config{API: &config.APISection{Addr: &configured}},
			want: "localhost:7000",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			base := &cmd.BaseCmd{}
			base.SetLogger(hclog.NewNullLogger())
			cobraCmd, err := NewDaemonCmd(base)
			require.NoError(t, err)
			require.NoError(t, cobraCmd.ParseFlags(tc.args))

			c := &DaemonCmd{BaseCmd: base}
			c.Addr, err = cobraCmd.Flags().GetString(flagAddr)
			require.NoError(t, err)

			require.Equal(t, tc.want, c.resolveAddr(cobraCmd, tc.cfg))
		})
	}
}
