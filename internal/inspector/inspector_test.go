package inspector

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/cloudnook/mcpgw/internal/domain"
	"github.com/cloudnook/mcpgw/internal/errors"
	"github.com/cloudnook/mcpgw/internal/gateway"
	"github.com/cloudnook/mcpgw/internal/gateway/gatewaytest"
)

func searchTool() domain.Tool {
	return domain.Tool{
		Name: "search_repositories",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{"type": "string"},
				"page":  map[string]any{"type": "integer", "minimum": 1},
			},
			"required": []any{"query"},
		},
	}
}

func newTestBackend() *gatewaytest.Backend {
	return gatewaytest.New().
		AddServer(domain.ServerSummary{Server: domain.ServerRecord{ID: "gh", Name: "github", LifecycleStatus: domain.LifecycleActive}}).
		SetCapabilities("gh", domain.Capabilities{Tools: []domain.Tool{searchTool()}}).
		SetResult(mcp.MethodToolsList, json.RawMessage(`{"tools":[{"name":"search_repositories"}]}`)).
		SetResult(mcp.MethodToolsCall, json.RawMessage(`{"content":[{"type":"text","text":"ok"}]}`))
}

func newTestInspector(t *testing.T, backend gateway.Backend) *Inspector {
	t.Helper()

	i, err := NewInspector(backend)
	require.NoError(t, err)
	return i
}

func TestNewInspector(t *testing.T) {
	t.Parallel()

	_, err := NewInspector(nil)
	require.EqualError(t, err, "backend cannot be nil")

	_, err = NewInspector(gatewaytest.New(), WithClock(nil))
	require.EqualError(t, err, "clock cannot be nil")
}

func TestInspector_Execute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		req        Request
		wantResult string
		wantCode   int
		wantMsg    string
	}{
		{
			name:       "tools/list",
			req:        NewRequest(1, "tools/list", nil),
			wantResult: `{"tools":[{"name":"search_repositories"}]}`,
		},
		{
			name:       "tools/call with valid arguments",
			req:        NewRequest(2, "tools/call", map[string]any{"name": "search_repositories", "arguments": map[string]any{"query": "mcp"}}),
			wantResult: `{"content":[{"type":"text","text":"ok"}]}`,
		},
		{
			name:     "wrong version",
			req:      Request{JSONRPC: "1.0", ID: mcp.NewRequestId(1), Method: "tools/list"},
			wantCode: mcp.INVALID_REQUEST,
			wantMsg:  `invalid JSON-RPC request: jsonrpc must be "2.0"`,
		},
		{
			name:     "missing id",
			req:      Request{JSONRPC: "2.0", Method: "tools/list"},
			wantCode: mcp.INVALID_REQUEST,
			wantMsg:  "invalid JSON-RPC request: id is required",
		},
		{
			name:     "unknown method",
			req:      NewRequest(1, "sampling/createMessage", nil),
			wantCode: mcp.METHOD_NOT_FOUND,
			wantMsg:  "method not supported by gateway: sampling/createMessage",
		},
		{
			name:     "catalog method the gateway cannot run",
			req:      NewRequest(1, "ping", nil),
			wantCode: mcp.METHOD_NOT_FOUND,
			wantMsg:  "method not supported by gateway: ping",
		},
		{
			name:     "tools/call without name",
			req:      NewRequest(1, "tools/call", map[string]any{}),
			wantCode: mcp.INVALID_PARAMS,
			wantMsg:  "invalid arguments: params.name is required",
		},
		{
			name:     "tools/call unknown tool",
			req:      NewRequest(1, "tools/call", map[string]any{"name": "rm_rf"}),
			wantCode: mcp.INVALID_PARAMS,
			wantMsg:  "tool not found: rm_rf",
		},
		{
			name:     "tools/call arguments not an object",
			req:      NewRequest(1, "tools/call", map[string]any{"name": "search_repositories", "arguments": "q"}),
			wantCode: mcp.INVALID_PARAMS,
			wantMsg:  "invalid arguments: params.arguments must be an object",
		},
		{
			name:     "resources/read without uri",
			req:      NewRequest(1, "resources/read", nil),
			wantCode: mcp.INVALID_PARAMS,
			wantMsg:  "invalid arguments: params.uri is required",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			i := newTestInspector(t, newTestBackend())
			res, err := i.Execute(context.Background(), "gh", tc.req)
			require.NoError(t, err)
			require.Equal(t, "2.0", res.Response.JSONRPC)
			require.NotEmpty(t, res.Formatted)

			if tc.wantCode == 0 {
				require.True(t, res.OK())
				require.JSONEq(t, tc.wantResult, string(res.Response.Result))
				return
			}

			require.False(t, res.OK())
			require.Nil(t, res.Response.Result)
			require.Equal(t, tc.wantCode, res.Response.Error.Code)
			require.Equal(t, tc.wantMsg, res.Response.Error.Message)
		})
	}
}

func TestInspector_Execute_SchemaViolationIsNotDispatched(t *testing.T) {
	t.Parallel()

	backend := newTestBackend()
	i := newTestInspector(t, backend)

	res, err := i.Execute(context.Background(), "gh", NewRequest(7, "tools/call", map[string]any{
		"name":      "search_repositories",
		"arguments": map[string]any{"page": 0},
	}))
	require.NoError(t, err)
	require.Equal(t, mcp.INVALID_PARAMS, res.Response.Error.Code)

	argErr, ok := res.Response.Error.Data.(*ArgumentError)
	require.True(t, ok)
	require.Equal(t, "search_repositories", argErr.Tool)
	require.Len(t, argErr.Violations, 2)
	require.Zero(t, backend.Calls(gatewaytest.OpInvoke))
}

func TestInspector_Execute_BusinessFailureIsJSONRPCError(t *testing.T) {
	t.Parallel()

	backend := newTestBackend().FailWith(gatewaytest.OpInvoke, &gateway.Failure{
		Kind:    gateway.KindBusiness,
		Code:    "500",
		Message: "MCP client not connected",
		TraceID: "t-9",
	})
	i := newTestInspector(t, backend)

	res, err := i.Execute(context.Background(), "gh", NewRequest("abc", "prompts/list", nil))
	require.NoError(t, err)
	require.Equal(t, mcp.INTERNAL_ERROR, res.Response.Error.Code)
	require.Equal(t, "MCP client not connected", res.Response.Error.Message)
	require.Equal(t, map[string]string{"traceId": "t-9"}, res.Response.Error.Data)
	require.Contains(t, res.Formatted, `"id": "abc"`)
}

func TestInspector_Execute_UnknownServerIsError(t *testing.T) {
	t.Parallel()

	i := newTestInspector(t, newTestBackend())

	_, err := i.Execute(context.Background(), "nope", NewRequest(1, "tools/list", nil))
	require.ErrorIs(t, err, errors.ErrServerNotFound)
}

func TestInspector_Execute_ForwardsInvocation(t *testing.T) {
	t.Parallel()

	backend := newTestBackend()
	i := newTestInspector(t, backend)

	_, err := i.Execute(context.Background(), "gh", NewRequest(1, "prompts/get", map[string]any{
		"name":      "review",
		"arguments": map[string]any{"pr": "42"},
	}))
	require.NoError(t, err)

	invs := backend.Invocations()
	require.Len(t, invs, 1)
	require.Equal(t, gateway.Invocation{
		Method:    mcp.MethodPromptsGet,
		Name:      "review",
		Arguments: map[string]any{"pr": "42"},
	}, invs[0])
}

func TestParseRequest(t *testing.T) {
	t.Parallel()

	req, err := ParseRequest([]byte(`{"jsonrpc":"2.0","id":3,"method":"resources/read","params":{"uri":"greeting://theway"}}`))
	require.NoError(t, err)
	require.NoError(t, req.Validate())

	inv, err := req.Invocation()
	require.NoError(t, err)
	require.Equal(t, "greeting://theway", inv.URI)

	_, err = ParseRequest([]byte(`{"jsonrpc":`))
	require.ErrorIs(t, err, errors.ErrInvalidRequest)
}
