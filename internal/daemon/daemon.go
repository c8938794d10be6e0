package daemon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/cloudnook/mcpgw/internal/api"
	"github.com/cloudnook/mcpgw/internal/console"
	"github.com/cloudnook/mcpgw/internal/inspector"
	"github.com/cloudnook/mcpgw/internal/notify"
)

// Daemon keeps the console state fresh and serves it over the API.
// NewDaemon should be used to create instances of Daemon.
type Daemon struct {
	logger        hclog.Logger
	apiServer     *APIServer
	store         *console.Store
	health        *HealthTracker
	uptime        *UptimeTracker
	notifications *notify.Buffer

	refreshInterval time.Duration
	refreshTimeout  time.Duration
}

// NewDaemon creates a new Daemon instance with proper initialization.
// Use this function instead of directly creating a Daemon struct.
func NewDaemon(deps Dependencies, opt ...Option) (*Daemon, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies: %w", err)
	}

	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	health, err := NewHealthTracker(opts.IncidentLimit)
	if err != nil {
		return nil, err
	}

	uptime, err := NewUptimeTracker(opts.UptimeDays)
	if err != nil {
		return nil, err
	}

	buf, err := notify.NewBuffer(opts.NotificationLimit)
	if err != nil {
		return nil, err
	}

	logNotifier, err := notify.NewLogNotifier(deps.Logger)
	if err != nil {
		return nil, err
	}

	store, err := console.NewStore(
		deps.Backend,
		deps.Builder,
		console.WithLogger(deps.Logger),
		console.WithNotifier(notify.Multi(buf, logNotifier)),
		console.WithObserver(health),
		console.WithObserver(uptime),
		console.WithClock(opts.Clock),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create console store: %w", err)
	}

	insp, err := inspector.NewInspector(
		deps.Backend,
		inspector.WithLogger(deps.Logger),
		inspector.WithClock(opts.Clock),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create inspector: %w", err)
	}

	apiDeps, err := NewAPIDependencies(deps.Logger, api.Services{
		Console:       store,
		Inspector:     insp,
		Health:        health,
		Incidents:     health,
		Uptime:        uptime,
		Notifications: buf,
	}, deps.APIAddr)
	if err != nil {
		return nil, err
	}

	apiServer, err := NewAPIServer(apiDeps, opts.APIOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create daemon API server: %w", err)
	}

	return &Daemon{
		logger:          deps.Logger.Named("daemon"),
		apiServer:       apiServer,
		store:           store,
		health:          health,
		uptime:          uptime,
		notifications:   buf,
		refreshInterval: opts.RefreshInterval,
		refreshTimeout:  opts.RefreshTimeout,
	}, nil
}

// StartAndManage serves the API and periodically refreshes the server list until ctx is canceled.
func (d *Daemon) StartAndManage(ctx context.Context) error {
	defer d.store.Close()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return d.apiServer.Start(gctx)
	})

	g.Go(func() error {
		d.refreshLoop(gctx)
		return gctx.Err()
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// refreshLoop reloads the server list immediately and then once per interval.
func (d *Daemon) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(d.refreshInterval)
	defer ticker.Stop()

	d.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Stopping server list refresh")
			return
		case <-ticker.C:
			d.refresh(ctx)
		}
	}
}

func (d *Daemon) refresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, d.refreshTimeout)
	defer cancel()

	// Failures are recorded in the dashboard state and already notified.
	if err := d.store.Refresh(refreshCtx); err != nil {
		d.logger.Debug("Server list refresh failed", "error", err)
		return
	}

	d.logger.Debug("Server list refreshed", "servers", len(d.health.List()))
}
