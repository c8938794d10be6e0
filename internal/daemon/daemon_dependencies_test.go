package daemon

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/cloudnook/mcpgw/internal/gateway"
	"github.com/cloudnook/mcpgw/internal/gateway/gatewaytest"
	"github.com/cloudnook/mcpgw/internal/viewmodel"
)

func TestDaemon_Dependencies_Validate(t *testing.T) {
	t.Parallel()

	builder := testBuilder(t)

	tests := []struct {
		name    string
		deps    Dependencies
		wantErr string
	}{
		{
			name: "valid dependencies",
			deps: Dependencies{
				APIAddr: "localhost:8090",
				Logger:  hclog.NewNullLogger(),
				Backend: gatewaytest.New(),
				Builder: builder,
			},
		},
		{
			name: "nil logger",
			deps: Dependencies{
				APIAddr: "localhost:8090",
				Backend: gatewaytest.New(),
				Builder: builder,
			},
			wantErr: "logger cannot be nil",
		},
		{
			name: "invalid address",
			deps: Dependencies{
				APIAddr: "nope",
				Logger:  hclog.NewNullLogger(),
				Backend: gatewaytest.New(),
				Builder: builder,
			},
			wantErr: "invalid API address 'nope'",
		},
		{
			name: "nil backend",
			deps: Dependencies{
				APIAddr: "localhost:8090",
				Logger:  hclog.NewNullLogger(),
				Builder: builder,
			},
			wantErr: "gateway backend cannot be nil",
		},
		{
			name: "typed nil backend",
			deps: Dependencies{
				APIAddr: "localhost:8090",
				Logger:  hclog.NewNullLogger(),
				Backend: gateway.Backend((*gatewaytest.Backend)(nil)),
				Builder: builder,
			},
			wantErr: "gateway backend cannot be nil",
		},
		{
			name: "nil builder",
			deps: Dependencies{
				APIAddr: "localhost:8090",
				Logger:  hclog.NewNullLogger(),
				Backend: gatewaytest.New(),
			},
			wantErr: "view-model builder cannot be nil",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.deps.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestDaemon_Dependencies_NewDependencies(t *testing.T) {
	t.Parallel()

	backend := gatewaytest.New()
	builder, err := viewmodel.NewBuilder()
	require.NoError(t, err)

	deps, err := NewDependencies(hclog.NewNullLogger(), "0.0.0.0:8090", backend, builder)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8090", deps.APIAddr)
	require.Same(t, backend, deps.Backend)
	require.Same(t, builder, deps.Builder)

	_, err = NewDependencies(nil, "0.0.0.0:8090", backend, builder)
	require.ErrorContains(t, err, "logger cannot be nil")
}
