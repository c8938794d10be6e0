package gateway

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudnook/mcpgw/internal/domain"
)

func TestParseUptime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		raw         string
		wantSeconds int64
		wantText    string
	}{
		{name: "absent", raw: "", wantSeconds: 0, wantText: ""},
		{name: "null", raw: "null", wantSeconds: 0, wantText: ""},
		{name: "seconds", raw: "5400", wantSeconds: 5400, wantText: ""},
		{name: "formatted", raw: `"1d 2h 3m"`, wantSeconds: 86400 + 7200 + 180, wantText: "1d 2h 3m"},
		{name: "zero", raw: `"0s"`, wantSeconds: 0, wantText: "0s"},
		{name: "not a duration", raw: `"N/A"`, wantSeconds: 0, wantText: "N/A"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			seconds, text := parseUptime(json.RawMessage(tc.raw))
			require.Equal(t, tc.wantSeconds, seconds)
			require.Equal(t, tc.wantText, text)
		})
	}
}

func TestParseWireTime(t *testing.T) {
	t.Parallel()

	require.Nil(t, parseWireTime(""))
	require.Nil(t, parseWireTime("N/A"))
	require.NotNil(t, parseWireTime("2024-01-15 10:30:00"))
	require.NotNil(t, parseWireTime("2024-01-15T10:30:00.123Z"))
}

func TestServerDetailDTO_DerivesRatesFromCounters(t *testing.T) {
	t.Parallel()

	total, success, failed := int64(200), int64(190), int64(10)
	d, err := serverDetailDTO{
		ServerID:        "a",
		Status:          "ACTIVE",
		TransportType:   "STDIO",
		TotalRequests:   &total,
		SuccessRequests: &success,
		FailedRequests:  &failed,
	}.ToDomain()
	require.NoError(t, err)
	require.InDelta(t, 95.0, d.Metrics.SuccessRatePercent, 0.0001)
	require.InDelta(t, 5.0, d.Metrics.FailureRatePercent, 0.0001)
}

func TestServerSummaryDTO_NoRequestsHasNoRates(t *testing.T) {
	t.Parallel()

	zero := int64(0)
	s, err := serverSummaryDTO{ServerID: "a", Status: "ACTIVE", TransportType: "SSE", TotalRequests: &zero}.ToDomain()
	require.NoError(t, err)
	require.False(t, s.Metrics.HasData())
	require.Zero(t, s.Metrics.FailureRatePercent)
}

func TestWirePrompt_ToDomain(t *testing.T) {
	t.Parallel()

	var p wirePrompt
	require.NoError(t, json.Unmarshal([]byte(`{"name":"review","description":"Review a PR","arguments":[{"name":"pr","required":true}]}`), &p))
	require.Equal(t, domain.Prompt{
		Name:        "review",
		Description: "Review a PR",
		Arguments:   []domain.PromptArgument{{Name: "pr", Required: true}},
	}, p.ToDomain())
}
