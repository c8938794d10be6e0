package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/cloudnook/mcpgw/internal/cmd/options"
	"github.com/cloudnook/mcpgw/internal/config"
	"github.com/cloudnook/mcpgw/internal/console"
	"github.com/cloudnook/mcpgw/internal/flags"
	"github.com/cloudnook/mcpgw/internal/gateway"
	"github.com/cloudnook/mcpgw/internal/notify"
	"github.com/cloudnook/mcpgw/internal/viewmodel"
)

// Session is everything a command needs to read from the gateway backend.
type Session struct {
	Config  *config.Config
	Backend gateway.Backend
	Builder *viewmodel.Builder
	Logger  hclog.Logger
}

// NewSession loads the configuration and connects to the gateway backend it names.
// The --backend-url flag takes precedence over backend.url, and makes the config file optional.
func (c *BaseCmd) NewSession(loader config.Loader, factory options.BackendFactory) (*Session, error) {
	logger, err := c.Logger()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(loader)
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimSpace(flags.BackendURL)
	if baseURL == "" {
		baseURL = cfg.BackendURL()
	}

	var timeout time.Duration
	if cfg.Backend != nil && cfg.Backend.Timeout != nil {
		timeout = cfg.Backend.Timeout.Std()
	}

	backend, err := factory(baseURL, timeout, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway backend client: %w", err)
	}

	builder, err := viewmodel.NewBuilder(BuilderOptions(cfg.Health)...)
	if err != nil {
		return nil, fmt.Errorf("invalid health thresholds: %w", err)
	}

	logger.Debug("Session ready", "backend", baseURL, "config", cfg.Path())

	return &Session{
		Config:  cfg,
		Backend: backend,
		Builder: builder,
		Logger:  logger,
	}, nil
}

// NewStore creates a console store for the session. Notifications are written to the log.
func (s *Session) NewStore(opt ...console.Option) (*console.Store, error) {
	n, err := notify.NewLogNotifier(s.Logger)
	if err != nil {
		return nil, err
	}

	opts := append([]console.Option{
		console.WithLogger(s.Logger),
		console.WithNotifier(n),
	}, opt...)

	return console.NewStore(s.Backend, s.Builder, opts...)
}

// LoadConfig loads the configuration file named by the --config-file flag.
// Without a --backend-url override the file is required and must set backend.url.
func LoadConfig(loader config.Loader) (*config.Config, error) {
	path, err := config.ResolvePath(flags.ConfigFile)
	if err != nil {
		return nil, err
	}

	override := strings.TrimSpace(flags.BackendURL) != ""
	if !override {
		loader = config.NewValidatingLoader(loader, config.RequireBackendURL)
	}

	cfg, err := loader.Load(path)
	if err != nil {
		if override && errors.Is(err, config.ErrConfigNotFound) {
			return &config.Config{}, nil
		}
		return nil, err
	}

	return cfg, nil
}

// BuilderOptions converts the configured health thresholds to view-model builder options.
func BuilderOptions(h *config.HealthSection) []viewmodel.Option {
	if h == nil {
		return nil
	}

	var opts []viewmodel.Option
	if h.DegradedFailureRate != nil {
		opts = append(opts, viewmodel.WithDegradedFailureRateThreshold(*h.DegradedFailureRate))
	}
	if h.UnhealthyFailureRate != nil {
		opts = append(opts, viewmodel.WithUnhealthyFailureRateThreshold(*h.UnhealthyFailureRate))
	}
	if h.DegradedLatencyMs != nil {
		opts = append(opts, viewmodel.WithDegradedLatencyThreshold(*h.DegradedLatencyMs))
	}
	if h.UnhealthyLatencyMs != nil {
		opts = append(opts, viewmodel.WithUnhealthyLatencyThreshold(*h.UnhealthyLatencyMs))
	}

	return opts
}
