package daemon

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-hclog"

	"github.com/cloudnook/mcpgw/internal/gateway"
	"github.com/cloudnook/mcpgw/internal/viewmodel"
)

// Dependencies contains required dependencies for the Daemon.
// NewDependencies should be used to create instances of Dependencies.
type Dependencies struct {
	// APIAddr specifies the network address for the APIServer to bind (e.g., "0.0.0.0:8090").
	APIAddr string

	// Logger for daemon and subcomponent (API server) operations.
	Logger hclog.Logger

	// Backend is the gateway backend the console reads from.
	Backend gateway.Backend

	// Builder derives the view models served by the API.
	Builder *viewmodel.Builder
}

// NewDependencies creates and validates Dependencies.
func NewDependencies(
	logger hclog.Logger,
	apiAddr string,
	backend gateway.Backend,
	builder *viewmodel.Builder,
) (Dependencies, error) {
	deps := Dependencies{
		APIAddr: apiAddr,
		Logger:  logger,
		Backend: backend,
		Builder: builder,
	}

	if err := deps.Validate(); err != nil {
		return Dependencies{}, err
	}

	return deps, nil
}

// Validate ensures all required dependencies are provided and valid.
func (d Dependencies) Validate() error {
	if d.Logger == nil || reflect.ValueOf(d.Logger).IsNil() {
		return fmt.Errorf("logger cannot be nil")
	}

	if err := IsValidAddr(d.APIAddr); err != nil {
		return fmt.Errorf("invalid API address '%s': %w", d.APIAddr, err)
	}

	if d.Backend == nil || reflect.ValueOf(d.Backend).IsNil() {
		return fmt.Errorf("gateway backend cannot be nil")
	}

	if d.Builder == nil {
		return fmt.Errorf("view-model builder cannot be nil")
	}

	return nil
}
