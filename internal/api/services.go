package api

import (
	"context"
	"fmt"
	"reflect"

	"github.com/cloudnook/mcpgw/internal/console"
	"github.com/cloudnook/mcpgw/internal/contracts"
	"github.com/cloudnook/mcpgw/internal/domain"
	"github.com/cloudnook/mcpgw/internal/inspector"
	"github.com/cloudnook/mcpgw/internal/notify"
)

// Console is the view state the API serves.
type Console interface {
	Refresh(ctx context.Context) error
	Dashboard(query string) console.DashboardView
	LoadDetail(ctx context.Context, serverID string, serverName string) (console.DetailState, error)
	Capabilities(ctx context.Context, serverID string) (domain.Capabilities, error)
	Register(ctx context.Context, reg domain.Registration) (domain.ServerRecord, error)
	Monitoring(incidents contracts.IncidentLog, uptime contracts.UptimeLog) console.MonitoringView
}

// Executor runs hand-built JSON-RPC requests against a server.
type Executor interface {
	Execute(ctx context.Context, serverID string, req inspector.Request) (inspector.Result, error)
}

// NotificationSource hands over pending operator notifications.
type NotificationSource interface {
	Drain() []notify.Notification
}

// Services groups everything the API routes read from.
type Services struct {
	Console       Console
	Inspector     Executor
	Health        contracts.HealthMonitor
	Incidents     contracts.IncidentLog
	Uptime        contracts.UptimeLog
	Notifications NotificationSource
}

// Validate ensures all services are provided.
func (s Services) Validate() error {
	if isNil(s.Console) {
		return fmt.Errorf("console cannot be nil")
	}
	if isNil(s.Inspector) {
		return fmt.Errorf("inspector cannot be nil")
	}
	if isNil(s.Health) {
		return fmt.Errorf("health monitor cannot be nil")
	}
	if isNil(s.Incidents) {
		return fmt.Errorf("incident log cannot be nil")
	}
	if isNil(s.Uptime) {
		return fmt.Errorf("uptime log cannot be nil")
	}
	if isNil(s.Notifications) {
		return fmt.Errorf("notification source cannot be nil")
	}
	return nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
