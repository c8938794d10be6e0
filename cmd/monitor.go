package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cloudnook/mcpgw/internal/cmd"
	cmdopts "github.com/cloudnook/mcpgw/internal/cmd/options"
	"github.com/cloudnook/mcpgw/internal/cmd/output"
	"github.com/cloudnook/mcpgw/internal/config"
	"github.com/cloudnook/mcpgw/internal/console"
	"github.com/cloudnook/mcpgw/internal/daemon"
	"github.com/cloudnook/mcpgw/internal/printer"
)

const defaultWatchInterval = 30 * time.Second

// MonitorCmd should be used to represent the 'monitor' command.
type MonitorCmd struct {
	*cmd.BaseCmd
	Format         cmd.OutputFormat
	Watch          bool
	Interval       time.Duration
	cfgLoader      config.Loader
	backendFactory cmdopts.BackendFactory
	printer        *printer.MonitoringPrinter
}

func NewMonitorCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &MonitorCmd{
		BaseCmd:        baseCmd,
		Format:         cmd.FormatText,
		cfgLoader:      opts.ConfigLoader,
		backendFactory: opts.BackendFactory,
		printer:        &printer.MonitoringPrinter{},
	}

	cobraCmd := &cobra.Command{
		Use:   "monitor [--watch]",
		Short: "Shows server health, incidents and uptime",
		Long: "Loads the server list from the gateway backend and shows health counts, per-server status, " +
			"incidents and uptime. With --watch the list is reloaded on an interval and incidents and uptime " +
			"accumulate across reloads until interrupted",
		Args: cobra.NoArgs,
		RunE: c.run,
	}

	allowed := cmd.AllowedOutputFormats()
	cobraCmd.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)
	cobraCmd.Flags().BoolVar(&c.Watch, "watch", false, "Keep reloading the server list until interrupted")
	cobraCmd.Flags().DurationVar(&c.Interval, "interval", defaultWatchInterval, "Reload interval in --watch mode")

	return cobraCmd, nil
}

func (c *MonitorCmd) run(cobraCmd *cobra.Command, _ []string) error {
	handler, err := cmd.FormatHandler[console.MonitoringView](cobraCmd.OutOrStdout(), c.Format, c.printer)
	if err != nil {
		return err
	}

	if c.Watch && c.Interval <= 0 {
		return handler.HandleError(fmt.Errorf("--interval must be positive, got %s", c.Interval))
	}

	session, err := c.NewSession(c.cfgLoader, c.backendFactory)
	if err != nil {
		return handler.HandleError(err)
	}

	incidentLimit, uptimeDays := monitoringLimits(session.Config.Monitoring)
	health, err := daemon.NewHealthTracker(incidentLimit)
	if err != nil {
		return handler.HandleError(err)
	}
	uptime, err := daemon.NewUptimeTracker(uptimeDays)
	if err != nil {
		return handler.HandleError(err)
	}

	store, err := session.NewStore(console.WithObserver(health), console.WithObserver(uptime))
	if err != nil {
		return handler.HandleError(err)
	}
	defer store.Close()

	if !c.Watch {
		if err := store.Refresh(cobraCmd.Context()); err != nil {
			return handler.HandleError(err)
		}
		return handler.HandleResult(store.Monitoring(health, uptime))
	}

	ctx, cancel := signal.NotifyContext(cobraCmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c.printer.SetHeader(func(w io.Writer, _ int) {
		_, _ = fmt.Fprintf(w, "Refreshed at %s\n\n", time.Now().Format(time.TimeOnly))
	})

	return c.watch(ctx, session, store, handler, health, uptime)
}

// watch reloads and prints the monitoring view until ctx is done.
// Refresh failures are shown in the view rather than ending the loop.
func (c *MonitorCmd) watch(
	ctx context.Context,
	session *cmd.Session,
	store *console.Store,
	handler output.Handler[console.MonitoringView],
	health *daemon.HealthTracker,
	uptime *daemon.UptimeTracker,
) error {
	ticker := time.NewTicker(c.Interval)
	defer ticker.Stop()

	for {
		if err := store.Refresh(ctx); err != nil && ctx.Err() == nil {
			session.Logger.Warn("Refresh failed", "error", err)
		}
		if ctx.Err() != nil {
			return nil
		}

		if err := handler.HandleResult(store.Monitoring(health, uptime)); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// monitoringLimits returns the configured history limits, falling back to the daemon defaults.
func monitoringLimits(m *config.MonitoringSection) (incidentLimit int, uptimeDays int) {
	incidentLimit, uptimeDays = daemon.DefaultIncidentLimit(), daemon.DefaultUptimeDays()
	if m == nil {
		return incidentLimit, uptimeDays
	}
	if m.IncidentLimit != nil {
		incidentLimit = *m.IncidentLimit
	}
	if m.UptimeDays != nil {
		uptimeDays = *m.UptimeDays
	}
	return incidentLimit, uptimeDays
}
