package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cloudnook/mcpgw/internal/cmd"
	cmdopts "github.com/cloudnook/mcpgw/internal/cmd/options"
	"github.com/cloudnook/mcpgw/internal/config"
	"github.com/cloudnook/mcpgw/internal/daemon"
	"github.com/cloudnook/mcpgw/internal/flags"
)

const (
	defaultAddr = "0.0.0.0:8090"
	devAddr     = "localhost:8090"
)

const (
	flagAddr               = "addr"
	flagCORSEnable         = "cors-enable"
	flagCORSOrigin         = "cors-origin"
	flagCORSMethod         = "cors-method"
	flagCORSCredentials    = "cors-credentials"
	flagCORSMaxAge         = "cors-max-age"
	flagTimeoutAPIShutdown = "timeout-api-shutdown"
	flagTimeoutAPIRequest  = "timeout-api-request"
	flagTimeoutRefresh     = "timeout-refresh"
	flagIntervalRefresh    = "interval-refresh"
)

// DaemonCmd should be used to represent the 'daemon' command.
type DaemonCmd struct {
	*cmd.BaseCmd
	Dev            bool
	Addr           string
	config         daemonFlagConfig
	cfgLoader      config.Loader
	backendFactory cmdopts.BackendFactory
}

// daemonFlagConfig holds the values of the flags that override the config file.
type daemonFlagConfig struct {
	cors     corsFlagConfig
	timeout  timeoutFlagConfig
	interval intervalFlagConfig
}

type corsFlagConfig struct {
	enable      bool
	origins     []string
	methods     []string
	credentials bool
	maxAge      string
}

type timeoutFlagConfig struct {
	apiShutdown string
	apiRequest  string
	refresh     string
}

type intervalFlagConfig struct {
	refresh string
}

// NewDaemonCmd creates a newly configured (Cobra) command.
func NewDaemonCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &DaemonCmd{
		BaseCmd:        baseCmd,
		cfgLoader:      opts.ConfigLoader,
		backendFactory: opts.BackendFactory,
	}

	cobraCommand := &cobra.Command{
		Use:   "daemon [--dev] [--addr]",
		Short: "Launches the console API daemon",
		Long: "Launches the console API daemon, which periodically refreshes the server list from the gateway " +
			"backend, tracks health and uptime, and serves the console views over HTTP",
		RunE: c.run,
	}

	fs := cobraCommand.Flags()
	fs.BoolVar(&c.Dev, "dev", false, "Run the daemon in development-focused mode")
	fs.StringVar(&c.Addr, flagAddr, defaultAddr, "Address for the daemon to bind (not applicable in --dev mode)")

	fs.BoolVar(&c.config.cors.enable, flagCORSEnable, false, "Enable CORS for the console API")
	fs.StringSliceVar(&c.config.cors.origins, flagCORSOrigin, nil, "Allowed CORS origin (repeatable)")
	fs.StringSliceVar(&c.config.cors.methods, flagCORSMethod, nil, "Allowed CORS method (repeatable)")
	fs.BoolVar(&c.config.cors.credentials, flagCORSCredentials, false, "Allow credentials in CORS requests")
	fs.StringVar(&c.config.cors.maxAge, flagCORSMaxAge, "", "How long browsers may cache CORS preflight responses (e.g. 5m)")

	fs.StringVar(&c.config.timeout.apiShutdown, flagTimeoutAPIShutdown, "", "Graceful shutdown timeout of the API server (e.g. 5s)")
	fs.StringVar(&c.config.timeout.apiRequest, flagTimeoutAPIRequest, "", "Timeout of a single API request (e.g. 30s)")
	fs.StringVar(&c.config.timeout.refresh, flagTimeoutRefresh, "", "Timeout of a single server list refresh (e.g. 10s)")
	fs.StringVar(&c.config.interval.refresh, flagIntervalRefresh, "", "How often the server list is refreshed (e.g. 30s)")

	cobraCommand.MarkFlagsMutuallyExclusive("dev", flagAddr)

	return cobraCommand, nil
}

// run is configured (via NewDaemonCmd) to be called by the Cobra framework when the command is executed.
func (c *DaemonCmd) run(cobraCmd *cobra.Command, _ []string) error {
	if err := c.validateFlags(cobraCmd); err != nil {
		return err
	}

	// The daemon has no command output to protect, so logs default to stderr.
	c.SetDefaultLogOutput(os.Stderr)

	session, err := c.NewSession(c.cfgLoader, c.backendFactory)
	if err != nil {
		return err
	}
	logger := session.Logger

	addr := c.resolveAddr(cobraCmd, session.Config)
	if c.Dev {
		logger.Info("Development-focused mode", "addr", addr, "override", devAddr)
		addr = devAddr
	}

	daemonOpts, err := c.buildDaemonOptions(session.Config)
	if err != nil {
		return err
	}

	deps, err := daemon.NewDependencies(logger, addr, session.Backend, session.Builder)
	if err != nil {
		return err
	}

	d, err := daemon.NewDaemon(deps, daemonOpts...)
	if err != nil {
		return fmt.Errorf("failed to create daemon instance: %w", err)
	}

	// Create the signal handling context for the application.
	daemonCtx, daemonCtxCancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM, syscall.SIGINT,
	)
	defer daemonCtxCancel()

	runErr := make(chan error, 1)
	go func() {
		if err := d.StartAndManage(daemonCtx); err != nil && !errors.Is(err, context.Canceled) {
			runErr <- err
		}
		close(runErr)
	}()

	if c.Dev {
		banner := fmt.Sprintf("%s daemon running in 'dev' mode.\n\n"+
			"  Local API:\thttp://%s/api/v1\n"+
			"  OpenAPI UI:\thttp://%s/docs\n"+
			"  Backend:\t%s\n"+
			"  Config file:\t%s\n",
			cmd.AppName, addr, addr, backendURL(session.Config), session.Config.Path())

		if flags.LogPath != "" {
			banner += fmt.Sprintf("  Log file:\t%s => (%s)\n", flags.LogPath, flags.LogLevel)
		}

		banner += "\nPress Ctrl+C to stop.\n\n"
		_, _ = fmt.Fprint(cobraCmd.OutOrStdout(), banner)
	}

	select {
	case <-daemonCtx.Done():
		logger.Info("Shutting down daemon")
		return <-runErr // Wait for cleanup.
	case err := <-runErr:
		logger.Error("Daemon exited with error", "error", err)
		return err
	}
}

// validateFlags checks the duration flags parse before anything is started.
func (c *DaemonCmd) validateFlags(_ *cobra.Command) error {
	durations := []struct {
		flag  string
		value string
	}{
		{flagCORSMaxAge, c.config.cors.maxAge},
		{flagTimeoutAPIShutdown, c.config.timeout.apiShutdown},
		{flagTimeoutAPIRequest, c.config.timeout.apiRequest},
		{flagTimeoutRefresh, c.config.timeout.refresh},
		{flagIntervalRefresh, c.config.interval.refresh},
	}

	for _, d := range durations {
		if d.value == "" {
			continue
		}
		if _, err := time.ParseDuration(d.value); err != nil {
			return fmt.Errorf("invalid --%s duration: %w", d.flag, err)
		}
	}

	return nil
}

// resolveAddr returns the --addr flag when set, then api.addr from the config file, then the default.
func (c *DaemonCmd) resolveAddr(cobraCmd *cobra.Command, cfg *config.Config) string {
	if cobraCmd.Flags().Changed(flagAddr) {
		return strings.TrimSpace(c.Addr)
	}
	if cfg != nil && cfg.API != nil && cfg.API.Addr != nil {
		return strings.TrimSpace(*cfg.API.Addr)
	}
	return strings.TrimSpace(c.Addr)
}

// buildAPIOptions converts the api section of the config file into API options, then applies flag overrides.
func (c *DaemonCmd) buildAPIOptions(section *config.APISection) ([]daemon.APIOption, error) {
	var opts []daemon.APIOption

	if section != nil {
		if t := section.Timeout; t != nil {
			if t.Shutdown != nil {
				opts = append(opts, daemon.WithShutdownTimeout(t.Shutdown.Std()))
			}
			if t.Request != nil {
				opts = append(opts, daemon.WithRequestTimeout(t.Request.Std()))
			}
		}
		if cors := section.CORS; cors != nil {
			if cors.Enable != nil {
				opts = append(opts, daemon.WithCORSEnabled(*cors.Enable))
			}
			if len(cors.Origins) > 0 {
				opts = append(opts, daemon.WithCORSAllowOrigins(cors.Origins))
			}
			if len(cors.Methods) > 0 {
				opts = append(opts, daemon.WithCORSAllowMethods(cors.Methods))
			}
			if len(cors.Headers) > 0 {
				opts = append(opts, daemon.WithCORSAllowHeaders(cors.Headers))
			}
			if len(cors.ExposeHeaders) > 0 {
				opts = append(opts, daemon.WithCORSExposeHeaders(cors.ExposeHeaders))
			}
			if cors.Credentials != nil {
				opts = append(opts, daemon.WithCORSAllowCredentials(*cors.Credentials))
			}
			if cors.MaxAge != nil {
				opts = append(opts, daemon.WithCORSMaxAge(cors.MaxAge.Std()))
			}
		}
	}

	flagCORS := c.config.cors
	if flagCORS.enable {
		opts = append(opts, daemon.WithCORSEnabled(true))
	}
	if len(flagCORS.origins) > 0 {
		opts = append(opts, daemon.WithCORSAllowOrigins(flagCORS.origins))
	}
	if len(flagCORS.methods) > 0 {
		opts = append(opts, daemon.WithCORSAllowMethods(flagCORS.methods))
	}
	if flagCORS.credentials {
		opts = append(opts, daemon.WithCORSAllowCredentials(true))
	}
	if flagCORS.maxAge != "" {
		d, err := time.ParseDuration(flagCORS.maxAge)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", flagCORSMaxAge, err)
		}
		opts = append(opts, daemon.WithCORSMaxAge(d))
	}

	if v := c.config.timeout.apiShutdown; v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", flagTimeoutAPIShutdown, err)
		}
		opts = append(opts, daemon.WithShutdownTimeout(d))
	}
	if v := c.config.timeout.apiRequest; v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", flagTimeoutAPIRequest, err)
		}
		opts = append(opts, daemon.WithRequestTimeout(d))
	}

	return opts, nil
}

// buildDaemonOptions converts the config file into daemon options, then applies flag overrides.
func (c *DaemonCmd) buildDaemonOptions(cfg *config.Config) ([]daemon.Option, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}

	apiOpts, err := c.buildAPIOptions(cfg.API)
	if err != nil {
		return nil, err
	}

	opts := []daemon.Option{daemon.WithAPIOptions(apiOpts...)}

	if r := cfg.Refresh; r != nil {
		if r.Interval != nil {
			opts = append(opts, daemon.WithRefreshInterval(r.Interval.Std()))
		}
		if r.Timeout != nil {
			opts = append(opts, daemon.WithRefreshTimeout(r.Timeout.Std()))
		}
	}

	if m := cfg.Monitoring; m != nil {
		if m.IncidentLimit != nil {
			opts = append(opts, daemon.WithIncidentLimit(*m.IncidentLimit))
		}
		if m.UptimeDays != nil {
			opts = append(opts, daemon.WithUptimeDays(*m.UptimeDays))
		}
		if m.NotificationLimit != nil {
			opts = append(opts, daemon.WithNotificationLimit(*m.NotificationLimit))
		}
	}

	if v := c.config.interval.refresh; v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", flagIntervalRefresh, err)
		}
		opts = append(opts, daemon.WithRefreshInterval(d))
	}
	if v := c.config.timeout.refresh; v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", flagTimeoutRefresh, err)
		}
		opts = append(opts, daemon.WithRefreshTimeout(d))
	}

	return opts, nil
}

func backendURL(cfg *config.Config) string {
	if u := strings.TrimSpace(flags.BackendURL); u != "" {
		return u
	}
	return cfg.BackendURL()
}
