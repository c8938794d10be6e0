package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cloudnook/mcpgw/internal/console"
)

// DashboardRequest represents the incoming request for the dashboard.
type DashboardRequest struct {
	Query string `doc:"Case-insensitive search over name, transport and description" example:"github" query:"q"`
}

// DashboardResponse is the response for GET /dashboard.
type DashboardResponse struct {
	Body console.DashboardView
}

// RegisterDashboardRoutes sets up dashboard API endpoint routes.
func RegisterDashboardRoutes(routerAPI huma.API, c Console, apiPathPrefix string) {
	dashboardAPI := huma.NewGroup(routerAPI, apiPathPrefix)
	tags := []string{"Dashboard"}

	huma.Register(
		dashboardAPI,
		huma.Operation{
			OperationID: "getDashboard",
			Method:      http.MethodGet,
			Summary:     "Get server counts and the filtered server list",
			Tags:        tags,
		},
		func(ctx context.Context, input *DashboardRequest) (*DashboardResponse, error) {
			return handleDashboard(c, input.Query)
		},
	)

	huma.Register(
		dashboardAPI,
		huma.Operation{
			OperationID: "refreshDashboard",
			Method:      http.MethodPost,
			Path:        "/refresh",
			Summary:     "Reload the server list from the gateway backend",
			Tags:        tags,
		},
		func(ctx context.Context, input *DashboardRequest) (*DashboardResponse, error) {
			return handleDashboardRefresh(ctx, c, input.Query)
		},
	)
}

// handleDashboard returns the dashboard from the last successful load.
func handleDashboard(c Console, query string) (*DashboardResponse, error) {
	resp := &DashboardResponse{}
	resp.Body = c.Dashboard(query)
	return resp, nil
}

// handleDashboardRefresh reloads the server list before returning the dashboard.
// A failed reload is reported through the dashboard load state, alongside the previous data.
func handleDashboardRefresh(ctx context.Context, c Console, query string) (*DashboardResponse, error) {
	_ = c.Refresh(ctx)
	return handleDashboard(c, query)
}
