package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudnook/mcpgw/internal/domain"
)

func TestDisplay_CoversEveryHealthStatus(t *testing.T) {
	t.Parallel()

	labels := map[string]struct{}{}
	for _, h := range domain.AllHealthStatuses() {
		d := Display(h)
		require.Equal(t, string(h), d.Value)
		require.NotEmpty(t, d.Label)
		require.NotEmpty(t, d.Icon)
		require.NotEmpty(t, d.Color)
		labels[d.Label] = struct{}{}
	}
	require.Len(t, labels, len(domain.AllHealthStatuses()))
}

func TestDisplay_UnrecognizedIsUnknown(t *testing.T) {
	t.Parallel()

	require.Equal(t, Display(domain.HealthUnknown), Display(domain.HealthStatus("on-fire")))
}

func TestLifecycleDisplay_CoversEveryStatus(t *testing.T) {
	t.Parallel()

	labels := map[string]struct{}{}
	for _, l := range domain.AllLifecycleStatuses() {
		d := LifecycleDisplay(l)
		require.NotEqual(t, NotAvailable, d.Label)
		labels[d.Label] = struct{}{}
	}
	require.Len(t, labels, len(domain.AllLifecycleStatuses()))
}

func TestSeverityDisplay(t *testing.T) {
	t.Parallel()

	require.Equal(t, ColorRed, SeverityDisplay(domain.SeverityError).Color)
	require.Equal(t, ColorYellow, SeverityDisplay(domain.SeverityWarning).Color)
	require.Equal(t, ColorBlue, SeverityDisplay(domain.SeverityInfo).Color)
	require.Equal(t, SeverityDisplay(domain.SeverityInfo), SeverityDisplay("bogus"))
}
