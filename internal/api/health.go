package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cloudnook/mcpgw/internal/contracts"
	"github.com/cloudnook/mcpgw/internal/domain"
)

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
	HealthStatusUnknown   HealthStatus = "unknown"
)

// DomainServerHealth is a wrapper that allows receivers to be declared in the API package that deal with domain types.
type DomainServerHealth domain.ServerHealth

// HealthStatus represents the current health classification of a particular MCP server.
type HealthStatus string

// ServerHealth is the last observed state of a server.
type ServerHealth struct {
	ServerID    string       `json:"serverId"`
	Name        string       `json:"name"`
	Lifecycle   string       `json:"lifecycle"`
	Status      HealthStatus `json:"status"`
	LastChecked *time.Time   `json:"lastChecked,omitempty"`
	LastHealthy *time.Time   `json:"lastHealthy,omitempty"`
	IncidentID  string       `json:"incidentId,omitempty"`
}

// ServersHealthResponse is the response for GET /health/servers
type ServersHealthResponse struct {
	Body struct {
		Servers []ServerHealth `doc:"Observed MCP server health statuses" json:"servers"`
	}
}

// ServerHealthRequest represents the incoming request for obtaining ServerHealth.
type ServerHealthRequest struct {
	ID string `doc:"ID of the server to check" example:"srv-1" path:"id"`
}

// ServerHealthResponse represents the wrapped API response for a ServerHealth.
type ServerHealthResponse struct {
	Body ServerHealth
}

// ToAPIType can be used to convert a wrapped domain type to an API-safe type.
func (d DomainServerHealth) ToAPIType() (ServerHealth, error) {
	status, err := parseHealthStatus(d.Health)
	if err != nil {
		return ServerHealth{}, err
	}

	return ServerHealth{
		ServerID:    d.ServerID,
		Name:        d.Name,
		Lifecycle:   d.Lifecycle.String(),
		Status:      status,
		LastChecked: d.LastChecked,
		LastHealthy: d.LastHealthy,
		IncidentID:  d.IncidentID,
	}, nil
}

// RegisterHealthRoutes sets up health-related API endpoint routes.
func RegisterHealthRoutes(routerAPI huma.API, monitor contracts.HealthMonitor, apiPathPrefix string) {
	healthAPI := huma.NewGroup(routerAPI, apiPathPrefix)
	tags := []string{"Health"}

	huma.Register(
		healthAPI,
		huma.Operation{
			OperationID: "listServersHealth",
			Method:      http.MethodGet,
			Path:        "/servers",
			Summary:     "List the last observed health of all servers",
			Tags:        tags,
		},
		func(ctx context.Context, _ *struct{}) (*ServersHealthResponse, error) {
			return handleHealthServers(monitor)
		},
	)

	huma.Register(
		healthAPI,
		huma.Operation{
			OperationID: "getServerHealth",
			Method:      http.MethodGet,
			Path:        "/servers/{id}",
			Summary:     "Get the last observed health of a server",
			Tags:        tags,
		},
		func(ctx context.Context, input *ServerHealthRequest) (*ServerHealthResponse, error) {
			return handleHealthServer(monitor, input.ID)
		},
	)
}

// handleHealthServers is the handler for retrieving the last observed health of every server.
func handleHealthServers(monitor contracts.HealthMonitor) (*ServersHealthResponse, error) {
	servers := monitor.List()

	apiServers := make([]ServerHealth, 0, len(servers))
	for _, s := range servers {
		data, err := DomainServerHealth(s).ToAPIType()
		if err != nil {
			return nil, err
		}
		apiServers = append(apiServers, data)
	}

	resp := &ServersHealthResponse{}
	resp.Body.Servers = apiServers

	return resp, nil
}

// handleHealthServer is the handler for retrieving the last observed health of the specified server.
func handleHealthServer(monitor contracts.HealthMonitor, id string) (*ServerHealthResponse, error) {
	health, err := monitor.Status(id)
	if err != nil {
		return nil, err
	}

	data, err := DomainServerHealth(health).ToAPIType()
	if err != nil {
		return nil, err
	}

	response := ServerHealthResponse{}
	response.Body = data

	return &response, nil
}

func parseHealthStatus(status domain.HealthStatus) (HealthStatus, error) {
	switch status {
	case domain.HealthHealthy:
		return HealthStatusHealthy, nil
	case domain.HealthDegraded:
		return HealthStatusDegraded, nil
	case domain.HealthUnhealthy:
		return HealthStatusUnhealthy, nil
	case domain.HealthUnknown, "":
		return HealthStatusUnknown, nil
	default:
		return "", fmt.Errorf("unknown health status: %s", status)
	}
}
