package daemon

import (
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/cloudnook/mcpgw/internal/api"
	"github.com/cloudnook/mcpgw/internal/console"
	"github.com/cloudnook/mcpgw/internal/domain"
	"github.com/cloudnook/mcpgw/internal/gateway/gatewaytest"
	"github.com/cloudnook/mcpgw/internal/inspector"
	"github.com/cloudnook/mcpgw/internal/notify"
	"github.com/cloudnook/mcpgw/internal/viewmodel"
)

var testNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func testBackend() *gatewaytest.Backend {
	return gatewaytest.New().
		AddServer(domain.ServerSummary{Server: domain.ServerRecord{
			ID:              "srv-1",
			Name:            "github",
			TransportType:   domain.TransportSSE,
			Endpoint:        "http://github.internal/sse",
			LifecycleStatus: domain.LifecycleActive,
			HealthStatus:    domain.HealthHealthy,
		}}).
		AddServer(domain.ServerSummary{Server: domain.ServerRecord{
			ID:              "srv-2",
			Name:            "files",
			TransportType:   domain.TransportStdio,
			LifecycleStatus: domain.LifecycleDisconnected,
		}})
}

func testBuilder(t *testing.T) *viewmodel.Builder {
	t.Helper()

	b, err := viewmodel.NewBuilder()
	require.NoError(t, err)
	return b
}

func testServices(t *testing.T, backend *gatewaytest.Backend) api.Services {
	t.Helper()

	health, err := NewHealthTracker(DefaultIncidentLimit())
	require.NoError(t, err)
	uptime, err := NewUptimeTracker(DefaultUptimeDays())
	require.NoError(t, err)
	buf, err := notify.NewBuffer(DefaultNotificationLimit())
	require.NoError(t, err)

	store, err := console.NewStore(backend, testBuilder(t),
		console.WithLogger(hclog.NewNullLogger()),
		console.WithNotifier(buf),
		console.WithObserver(health),
		console.WithObserver(uptime),
		console.WithClock(func() time.Time { return testNow }),
	)
	require.NoError(t, err)

	insp, err := inspector.NewInspector(backend)
	require.NoError(t, err)

	return api.Services{
		Console:       store,
		Inspector:     insp,
		Health:        health,
		Incidents:     health,
		Uptime:        uptime,
		Notifications: buf,
	}
}
