package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cloudnook/mcpgw/internal/console"
	"github.com/cloudnook/mcpgw/internal/domain"
	"github.com/cloudnook/mcpgw/internal/errors"
)

// ServerDetailRequest represents the incoming request for a server detail page.
type ServerDetailRequest struct {
	ID   string `doc:"ID of the server"   example:"srv-1"  path:"id"`
	Name string `doc:"Name of the server" example:"github" query:"serverName"`
}

// ServerDetailResponse is the response for GET /servers/{id}.
type ServerDetailResponse struct {
	Body console.DetailState
}

// RegisterServerBody is the payload used to register a server.
type RegisterServerBody struct {
	Name          string `doc:"Unique server name"                         example:"github"                  json:"name"                  minLength:"1"`
	Description   string `doc:"What the server does"                       example:"GitHub repositories"     json:"description,omitempty"`
	TransportType string `doc:"Transport used to reach the server"         enum:"stdio,sse,streamable_http" json:"transportType"`
	Endpoint      string `doc:"Endpoint, required unless transport is stdio" example:"http://localhost:3000/sse" json:"endpoint,omitempty"`
	Version       string `doc:"Server version"                             example:"1.0.0"                   json:"version,omitempty"`
}

// RegisterServerRequest represents the incoming request to register a server.
type RegisterServerRequest struct {
	Body RegisterServerBody
}

// ServerRecord is a registered server as returned by the API.
type ServerRecord struct {
	ID              string     `json:"id"                     yaml:"id"`
	Name            string     `json:"name"                   yaml:"name"`
	TransportType   string     `json:"transportType"          yaml:"transportType"`
	Endpoint        string     `json:"endpoint,omitempty"     yaml:"endpoint,omitempty"`
	LifecycleStatus string     `json:"lifecycleStatus"        yaml:"lifecycleStatus"`
	HealthStatus    string     `json:"healthStatus"           yaml:"healthStatus"`
	Description     string     `json:"description,omitempty"  yaml:"description,omitempty"`
	Version         string     `json:"version,omitempty"      yaml:"version,omitempty"`
	RegisteredAt    *time.Time `json:"registeredAt,omitempty" yaml:"registeredAt,omitempty"`
}

// RegisterServerResponse is the response for POST /servers.
type RegisterServerResponse struct {
	Body ServerRecord
}

// DomainServerRecord is a wrapper that allows receivers to be declared in the API package that deal with domain types.
type DomainServerRecord domain.ServerRecord

// ToAPIType can be used to convert a wrapped domain type to an API-safe type.
func (d DomainServerRecord) ToAPIType() (ServerRecord, error) {
	health := d.HealthStatus
	if health == "" {
		health = domain.HealthUnknown
	}

	return ServerRecord{
		ID:              d.ID,
		Name:            d.Name,
		TransportType:   d.TransportType.String(),
		Endpoint:        d.Endpoint,
		LifecycleStatus: d.LifecycleStatus.String(),
		HealthStatus:    health.String(),
		Description:     d.Description,
		Version:         d.Version,
		RegisteredAt:    d.RegisteredAt,
	}, nil
}

// ToDomain converts the payload to a validated registration.
func (b RegisterServerBody) ToDomain() (domain.Registration, error) {
	transport, err := domain.ParseTransportType(b.TransportType)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("%w: %w", errors.ErrBadRequest, err)
	}

	reg := domain.Registration{
		Name:          b.Name,
		Description:   b.Description,
		TransportType: transport,
		Endpoint:      b.Endpoint,
		Version:       b.Version,
	}
	if err := reg.Validate(); err != nil {
		return domain.Registration{}, fmt.Errorf("%w: %w", errors.ErrBadRequest, err)
	}

	return reg, nil
}

// RegisterServerRoutes sets up server API endpoint routes.
func RegisterServerRoutes(routerAPI huma.API, c Console, apiPathPrefix string) {
	serversAPI := huma.NewGroup(routerAPI, apiPathPrefix)
	tags := []string{"Servers"}

	huma.Register(
		serversAPI,
		huma.Operation{
			OperationID:   "registerServer",
			Method:        http.MethodPost,
			Summary:       "Register a server with the gateway",
			Tags:          tags,
			DefaultStatus: http.StatusCreated,
		},
		func(ctx context.Context, input *RegisterServerRequest) (*RegisterServerResponse, error) {
			return handleRegisterServer(ctx, c, input.Body)
		},
	)

	huma.Register(
		serversAPI,
		huma.Operation{
			OperationID: "getServerDetail",
			Method:      http.MethodGet,
			Path:        "/{id}",
			Summary:     "Get the detail page of a server",
			Description: "A server that does not exist, or a missing serverName, is reported in the returned status.",
			Tags:        tags,
		},
		func(ctx context.Context, input *ServerDetailRequest) (*ServerDetailResponse, error) {
			return handleServerDetail(ctx, c, input.ID, input.Name)
		},
	)

	RegisterToolRoutes(serversAPI, c)
	RegisterResourceRoutes(serversAPI, c)
	RegisterPromptRoutes(serversAPI, c)
}

// handleRegisterServer forwards a registration to the gateway backend.
func handleRegisterServer(ctx context.Context, c Console, body RegisterServerBody) (*RegisterServerResponse, error) {
	reg, err := body.ToDomain()
	if err != nil {
		return nil, err
	}

	record, err := c.Register(ctx, reg)
	if err != nil {
		return nil, err
	}

	data, err := DomainServerRecord(record).ToAPIType()
	if err != nil {
		return nil, err
	}

	resp := &RegisterServerResponse{}
	resp.Body = data

	return resp, nil
}

// handleServerDetail loads the detail page of a server.
func handleServerDetail(ctx context.Context, c Console, id string, name string) (*ServerDetailResponse, error) {
	state, err := c.LoadDetail(ctx, id, name)
	if err != nil {
		return nil, err
	}

	resp := &ServerDetailResponse{}
	resp.Body = state

	return resp, nil
}
