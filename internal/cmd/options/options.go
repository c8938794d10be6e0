package options

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/cloudnook/mcpgw/internal/config"
	"github.com/cloudnook/mcpgw/internal/gateway"
)

// BackendFactory creates the gateway backend a command talks to.
type BackendFactory func(baseURL string, timeout time.Duration, logger hclog.Logger) (gateway.Backend, error)

type CmdOption func(*CmdOptions) error

type CmdOptions struct {
	ConfigLoader      config.Loader
	ConfigInitializer config.Initializer
	BackendFactory    BackendFactory
}

func defaultOptions() CmdOptions {
	configLoader := &config.DefaultLoader{}
	return CmdOptions{
		ConfigLoader:      configLoader,
		ConfigInitializer: configLoader,
		BackendFactory:    DefaultBackendFactory,
	}
}

func NewOptions(opt ...CmdOption) (CmdOptions, error) {
	opts := defaultOptions()

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return CmdOptions{}, err
		}
	}
	return opts, nil
}

func WithConfigLoader(l config.Loader) CmdOption {
	return func(o *CmdOptions) error {
		if l == nil {
			return fmt.Errorf("config loader cannot be nil")
		}
		o.ConfigLoader = l
		return nil
	}
}

func WithConfigInitializer(i config.Initializer) CmdOption {
	return func(o *CmdOptions) error {
		if i == nil {
			return fmt.Errorf("config initializer cannot be nil")
		}
		o.ConfigInitializer = i
		return nil
	}
}

func WithBackendFactory(f BackendFactory) CmdOption {
	return func(o *CmdOptions) error {
		if f == nil {
			return fmt.Errorf("backend factory cannot be nil")
		}
		o.BackendFactory = f
		return nil
	}
}

// DefaultBackendFactory connects to the gateway REST API at baseURL.
// A zero timeout uses the client default.
func DefaultBackendFactory(baseURL string, timeout time.Duration, logger hclog.Logger) (gateway.Backend, error) {
	opts := []gateway.ClientOption{gateway.WithLogger(logger)}
	if timeout > 0 {
		opts = append(opts, gateway.WithTimeout(timeout))
	}

	c, err := gateway.NewClient(baseURL, opts...)
	if err != nil {
		return nil, err
	}

	return c, nil
}
