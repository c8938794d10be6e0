package printer

import (
	"bytes"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/cloudnook/mcpgw/internal/inspector"
)

func TestMethodGroupPrinter_Item(t *testing.T) {
	t.Parallel()

	group := inspector.CategoryGroup{
		Category: "Tools",
		Methods: []inspector.Method{
			{Name: "tools/list", Category: "Tools", Description: "List available tools", Executable: true},
			{Name: "tools/call", Category: "Tools", Description: "Execute a tool", Executable: true},
		},
	}

	var buf bytes.Buffer
	p := &MethodGroupPrinter{}
	require.NoError(t, p.Item(&buf, group))

	require.Equal(t, "Tools\n   tools/list  List available tools\n   tools/call  Execute a tool\n\n", buf.String())
}

func TestMethodGroupPrinter_NotExecutable(t *testing.T) {
	t.Parallel()

	group := inspector.CategoryGroup{
		Category: "Lifecycle",
		Methods:  []inspector.Method{{Name: "ping", Category: "Lifecycle", Description: "Health check"}},
	}

	var buf bytes.Buffer
	p := &MethodGroupPrinter{}
	p.SetFooter(MethodsFooter())
	require.NoError(t, p.Item(&buf, group))
	p.Footer(&buf, 1)

	require.Contains(t, buf.String(), " - ping  Health check")
	require.Contains(t, buf.String(), "cannot be executed through the gateway")
}

func TestInspectorResultPrinter_Item(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		result   inspector.Result
		expected string
	}{
		{
			name: "success",
			result: inspector.Result{
				Response:  inspector.Response{JSONRPC: "2.0", ID: mcp.NewRequestId(1), Result: []byte(`{"tools":[]}`)},
				Formatted: "{\n  \"tools\": []\n}",
				ElapsedMs: 12,
			},
			expected: "✓ OK (12ms)\n{\n  \"tools\": []\n}\n",
		},
		{
			name: "error",
			result: inspector.Result{
				Response: inspector.Response{
					JSONRPC: "2.0",
					ID:      mcp.NewRequestId(1),
					Error:   &inspector.ResponseError{Code: mcp.METHOD_NOT_FOUND, Message: "method not supported"},
				},
				Formatted: "{}",
				ElapsedMs: 0,
			},
			expected: "✗ Error -32601 (0ms)\n{}\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			p := &InspectorResultPrinter{}
			require.NoError(t, p.Item(&buf, tc.result))
			require.Equal(t, tc.expected, buf.String())
		})
	}
}
