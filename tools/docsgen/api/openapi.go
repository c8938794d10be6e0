//go:build docsgen_api
// +build docsgen_api

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-hclog"

	"github.com/cloudnook/mcpgw/internal/api"
	"github.com/cloudnook/mcpgw/internal/console"
	"github.com/cloudnook/mcpgw/internal/daemon"
	"github.com/cloudnook/mcpgw/internal/gateway/gatewaytest"
	"github.com/cloudnook/mcpgw/internal/inspector"
	"github.com/cloudnook/mcpgw/internal/notify"
	"github.com/cloudnook/mcpgw/internal/perms"
	"github.com/cloudnook/mcpgw/internal/viewmodel"
)

// main generates the OpenAPI specification for the console API.
// It assumes it is run from the repository root.
func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "mcpgw.docsgen.api",
		Level:  hclog.Info,
		Output: os.Stderr,
	})

	// Output path for the OpenAPI spec, relative to the repository root.
	outputPath := "./docs/api/openapi.yaml"

	svc, err := services()
	if err != nil {
		logger.Error("failed to create services", "error", err)
		os.Exit(1)
	}

	// Create a chi router and Huma config (same as the daemon).
	mux := chi.NewMux()
	mux.Use(middleware.StripSlashes)
	router := humachi.New(mux, huma.DefaultConfig("mcpgw docs", api.APIVersion))

	// Route registration only needs the definitions; the services are backed by an empty in-memory gateway.
	apiPathPrefix, err := api.RegisterRoutes(router, svc)
	if err != nil {
		logger.Error("failed to register API routes", "error", err)
		os.Exit(1)
	}

	logger.Info("Routes registered", "prefix", apiPathPrefix)

	yamlBytes, err := router.OpenAPI().YAML()
	if err != nil {
		logger.Error("failed to generate OpenAPI YAML", "error", err)
		os.Exit(1)
	}

	docsDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(docsDir, perms.RegularDir); err != nil {
		logger.Error("failed to create docs directory", "path", docsDir, "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, yamlBytes, perms.RegularFile); err != nil {
		logger.Error("failed to write OpenAPI spec", "path", outputPath, "error", err)
		os.Exit(1)
	}

	logger.Info("OpenAPI spec generated", "path", outputPath, "size", fmt.Sprintf("%d bytes", len(yamlBytes)))
}

func services() (api.Services, error) {
	backend := gatewaytest.New()

	builder, err := viewmodel.NewBuilder()
	if err != nil {
		return api.Services{}, err
	}
	store, err := console.NewStore(backend, builder)
	if err != nil {
		return api.Services{}, err
	}
	insp, err := inspector.NewInspector(backend)
	if err != nil {
		return api.Services{}, err
	}
	health, err := daemon.NewHealthTracker(daemon.DefaultIncidentLimit())
	if err != nil {
		return api.Services{}, err
	}
	uptime, err := daemon.NewUptimeTracker(daemon.DefaultUptimeDays())
	if err != nil {
		return api.Services{}, err
	}
	notifications, err := notify.NewBuffer(daemon.DefaultNotificationLimit())
	if err != nil {
		return api.Services{}, err
	}

	return api.Services{
		Console:       store,
		Inspector:     insp,
		Health:        health,
		Incidents:     health,
		Uptime:        uptime,
		Notifications: notifications,
	}, nil
}
