package daemon

import (
	"fmt"
	"net"
	"reflect"
	"strconv"

	"github.com/hashicorp/go-hclog"

	"github.com/cloudnook/mcpgw/internal/api"
)

// APIDependencies contains the required external dependencies for the API server.
// NewAPIDependencies should be used to create instances of APIDependencies.
type APIDependencies struct {
	// Addr specifies the network address to bind (e.g., "0.0.0.0:8090").
	Addr string

	// Services are what the API routes read from.
	Services api.Services

	// Logger for API server operations.
	Logger hclog.Logger
}

// NewAPIDependencies creates and validates APIDependencies.
func NewAPIDependencies(logger hclog.Logger, services api.Services, addr string) (APIDependencies, error) {
	deps := APIDependencies{
		Addr:     addr,
		Services: services,
		Logger:   logger,
	}

	if err := deps.Validate(); err != nil {
		return APIDependencies{}, err
	}

	return deps, nil
}

// Validate ensures all required dependencies are provided and valid.
func (d APIDependencies) Validate() error {
	if err := IsValidAddr(d.Addr); err != nil {
		return fmt.Errorf("invalid API address '%s': %w", d.Addr, err)
	}
	if err := d.Services.Validate(); err != nil {
		return err
	}
	if d.Logger == nil || reflect.ValueOf(d.Logger).IsNil() {
		return fmt.Errorf("logger cannot be nil")
	}
	return nil
}

// IsValidAddr returns an error if the address is not a valid "host:port" string.
// An empty host is accepted and listens on all interfaces.
func IsValidAddr(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address format: %w", err)
	}

	if port == "" {
		return fmt.Errorf("address missing port")
	}

	if _, err := strconv.Atoi(port); err != nil {
		if _, err := net.LookupPort("tcp", port); err != nil {
			return fmt.Errorf("invalid address port: %s", port)
		}
	}

	return nil
}
