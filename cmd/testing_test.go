package cmd

import (
	"time"

	"github.com/hashicorp/go-hclog"

	cmdopts "github.com/cloudnook/mcpgw/internal/cmd/options"
	"github.com/cloudnook/mcpgw/internal/config"
	"github.com/cloudnook/mcpgw/internal/domain"
	"github.com/cloudnook/mcpgw/internal/gateway"
	"github.com/cloudnook/mcpgw/internal/gateway/gatewaytest"
)

var testNow = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

// mockConfigLoader implements config.Loader for testing.
// Without a configured result it returns a config pointing at a local backend.
type mockConfigLoader struct {
	cfg *config.Config
	err error
}

func (m *mockConfigLoader) Load(string) (*config.Config, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.cfg != nil {
		return m.cfg, nil
	}
	url := "http://localhost:8080"
	return &config.Config{Backend: &config.BackendSection{URL: &url}}, nil
}

// fakeBackendFactory returns a factory that always hands out backend.
// A nil backend is replaced by one serving testBackend.
func fakeBackendFactory(backend gateway.Backend) cmdopts.BackendFactory {
	if backend == nil {
		backend = testBackend()
	}
	return func(string, time.Duration, hclog.Logger) (gateway.Backend, error) {
		return backend, nil
	}
}

func testBackend() *gatewaytest.Backend {
	heartbeat := testNow.Add(-30 * time.Second)

	return gatewaytest.New().
		AddServer(domain.ServerSummary{
			Server: domain.ServerRecord{
				ID:              "srv-1",
				Name:            "github",
				TransportType:   domain.TransportSSE,
				Endpoint:        "http://github:9000/sse",
				LifecycleStatus: domain.LifecycleActive,
				HealthStatus:    domain.HealthHealthy,
			},
			Metrics: &domain.MetricsSnapshot{
				TotalRequests:   1000,
				SuccessRequests: 999,
				FailedRequests:  1,
				AvgLatencyMs:    120,
				LastHeartbeat:   &heartbeat,
			},
		}).
		AddServer(domain.ServerSummary{
			Server: domain.ServerRecord{
				ID:              "srv-2",
				Name:            "files",
				TransportType:   domain.TransportStdio,
				LifecycleStatus: domain.LifecycleDisconnected,
			},
		})
}

func ptr[T any](v T) *T {
	return &v
}

func durationPtr(d time.Duration) *config.Duration {
	v := config.Duration(d)
	return &v
}
