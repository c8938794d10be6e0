package inspect

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudnook/mcpgw/internal/inspector"
)

func TestMethodsCmd_Text(t *testing.T) {
	t.Parallel()

	out, err := execute(t, NewMethodsCmd, nil, nil)
	require.NoError(t, err)
	require.Contains(t, out, "lifecycle")
	require.Contains(t, out, "tools/call")
	require.Contains(t, out, "resources/read")
	require.Contains(t, out, " - initialize")
	require.Contains(t, out, "Methods marked '-' are listed for reference")
}

func TestMethodsCmd_Query(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		query     string
		wantNames []string
	}{
		{name: "category", query: "RESOURCES", wantNames: []string{"resources/list", "resources/read"}},
		{name: "name", query: "call", wantNames: []string{"tools/call"}},
		{name: "blank matches everything", query: "  ", wantNames: namesOf(inspector.Catalog())},
		{name: "no match", query: "sampling", wantNames: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, NewMethodsCmd, nil, nil, tc.query, "--format", "json")
			require.NoError(t, err)

			var payload struct {
				Results []inspector.CategoryGroup `json:"results"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &payload))

			var names []string
			for _, g := range payload.Results {
				names = append(names, namesOf(g.Methods)...)
			}
			require.Equal(t, tc.wantNames, names)
		})
	}
}

func TestMethodsCmd_NoMatchText(t *testing.T) {
	t.Parallel()

	out, err := execute(t, NewMethodsCmd, nil, nil, "sampling")
	require.NoError(t, err)
	require.Equal(t, "No items found\n", out)
}

func namesOf(methods []inspector.Method) []string {
	var names []string
	for _, m := range methods {
		names = append(names, m.Name)
	}
	return names
}
