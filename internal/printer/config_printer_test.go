package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudnook/mcpgw/internal/config"
)

func TestConfigPrinter_Item(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := &ConfigPrinter{}
	require.NoError(t, p.Item(&buf, config.Skeleton()))

	out := buf.String()
	require.Contains(t, out, "[backend]")
	require.Contains(t, out, `url = "http://localhost:8080"`)
	require.Contains(t, out, `timeout = "10s"`)
	require.Contains(t, out, "[refresh]")
	require.Contains(t, out, "uptime_days = 90")
}

func TestConfigPrinter_Item_Nil(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := &ConfigPrinter{}
	require.EqualError(t, p.Item(&buf, nil), "config cannot be nil")
}
