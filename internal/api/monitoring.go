package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cloudnook/mcpgw/internal/console"
	"github.com/cloudnook/mcpgw/internal/contracts"
)

// MonitoringResponse is the response for GET /monitoring.
type MonitoringResponse struct {
	Body console.MonitoringView
}

// RegisterMonitoringRoutes sets up the monitoring overview route.
func RegisterMonitoringRoutes(
	routerAPI huma.API,
	c Console,
	incidents contracts.IncidentLog,
	uptime contracts.UptimeLog,
	apiPathPrefix string,
) {
	monitoringAPI := huma.NewGroup(routerAPI, apiPathPrefix)
	tags := []string{"Monitoring"}

	huma.Register(
		monitoringAPI,
		huma.Operation{
			OperationID: "getMonitoring",
			Method:      http.MethodGet,
			Summary:     "Get server health, incidents and daily uptime",
			Tags:        tags,
		},
		func(ctx context.Context, _ *struct{}) (*MonitoringResponse, error) {
			return handleMonitoring(c, incidents, uptime)
		},
	)
}

func handleMonitoring(c Console, incidents contracts.IncidentLog, uptime contracts.UptimeLog) (*MonitoringResponse, error) {
	resp := &MonitoringResponse{}
	resp.Body = c.Monitoring(incidents, uptime)
	return resp, nil
}
