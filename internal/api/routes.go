package api

import (
	"fmt"
	"net/url"
	"reflect"

	"github.com/danielgtaylor/huma/v2"
)

// APIVersion is the version used in the OpenAPI spec and URL paths.
const APIVersion = "v1"

// RegisterRoutes registers all API routes on the provided Huma router.
// This is the single source of truth for the API route structure.
// Returns the API path prefix (e.g., "/api/v1") under which the routes are created.
func RegisterRoutes(router huma.API, svc Services) (string, error) {
	if router == nil || reflect.ValueOf(router).IsNil() {
		return "", fmt.Errorf("router cannot be nil")
	}
	if err := svc.Validate(); err != nil {
		return "", err
	}

	// Safe way to ensure /api/{version}.
	apiPathPrefix, err := url.JoinPath("/api", APIVersion)
	if err != nil {
		return "", fmt.Errorf("failed to construct API path prefix: %w", err)
	}

	// Group all routes under the /api/{version} prefix.
	versionedGroup := huma.NewGroup(router, apiPathPrefix)
	RegisterDashboardRoutes(versionedGroup, svc.Console, "/dashboard")
	RegisterServerRoutes(versionedGroup, svc.Console, "/servers")
	RegisterMonitoringRoutes(versionedGroup, svc.Console, svc.Incidents, svc.Uptime, "/monitoring")
	RegisterHealthRoutes(versionedGroup, svc.Health, "/health")
	RegisterInspectorRoutes(versionedGroup, svc.Inspector, "/inspector")
	RegisterNotificationRoutes(versionedGroup, svc.Notifications, "/notifications")

	return apiPathPrefix, nil
}
