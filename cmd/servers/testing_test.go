package servers

import (
	"bytes"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	internalcmd "github.com/cloudnook/mcpgw/internal/cmd"
	cmdopts "github.com/cloudnook/mcpgw/internal/cmd/options"
	"github.com/cloudnook/mcpgw/internal/config"
	"github.com/cloudnook/mcpgw/internal/domain"
	"github.com/cloudnook/mcpgw/internal/gateway"
	"github.com/cloudnook/mcpgw/internal/gateway/gatewaytest"
)

type mockConfigLoader struct{}

func (m *mockConfigLoader) Load(string) (*config.Config, error) {
	url := "http://localhost:8080"
	return &config.Config{Backend: &config.BackendSection{URL: &url}}, nil
}

func testBackend() *gatewaytest.Backend {
	return gatewaytest.New().
		AddServer(domain.ServerSummary{
			Server: domain.ServerRecord{
				ID:              "srv-1",
				Name:            "github",
				Description:     "GitHub repositories",
				TransportType:   domain.TransportSSE,
				Endpoint:        "http://github:9000/sse",
				LifecycleStatus: domain.LifecycleActive,
				HealthStatus:    domain.HealthHealthy,
			},
			Metrics: &domain.MetricsSnapshot{
				TotalRequests:      1000,
				SuccessRequests:    999,
				FailedRequests:     1,
				AvgLatencyMs:       120,
				MinLatencyMs:       80,
				MaxLatencyMs:       200,
				SuccessRatePercent: 99.9,
				FailureRatePercent: 0.1,
			},
		}).
		AddServer(domain.ServerSummary{
			Server: domain.ServerRecord{
				ID:              "srv-2",
				Name:            "files",
				Description:     "Local file system",
				TransportType:   domain.TransportStdio,
				LifecycleStatus: domain.LifecycleDisconnected,
			},
		}).
		SetCapabilities("srv-1", domain.Capabilities{
			Tools: []domain.Tool{{
				Name:        "search_repositories",
				Description: "Search for repositories",
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"query": map[string]any{"type": "string"},
						"page":  map[string]any{"type": "number"},
					},
					"required": []any{"query"},
				},
			}},
		})
}

// execute runs a command built by fn against backend, returning its output.
func execute(
	t *testing.T,
	fn func(*internalcmd.BaseCmd, ...cmdopts.CmdOption) (*cobra.Command, error),
	backend gateway.Backend,
	args ...string,
) (string, error) {
	t.Helper()

	cobraCmd, err := fn(
		&internalcmd.BaseCmd{},
		cmdopts.WithConfigLoader(&mockConfigLoader{}),
		cmdopts.WithBackendFactory(func(string, time.Duration, hclog.Logger) (gateway.Backend, error) {
			return backend, nil
		}),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	cobraCmd.SetOut(&buf)
	cobraCmd.SetErr(&buf)
	cobraCmd.SetArgs(args)

	err = cobraCmd.Execute()
	return buf.String(), err
}
