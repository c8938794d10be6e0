package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetricsSnapshot_Validate(t *testing.T) {
	t.Parallel()

	negative := int64(-1)

	tests := []struct {
		name     string
		snapshot *MetricsSnapshot
		wantErr  string
	}{
		{
			name:     "nil snapshot",
			snapshot: nil,
		},
		{
			name:     "no data yet",
			snapshot: &MetricsSnapshot{},
		},
		{
			name: "consistent snapshot",
			snapshot: &MetricsSnapshot{
				TotalRequests:      100,
				SuccessRequests:    95,
				FailedRequests:     5,
				MinLatencyMs:       10,
				AvgLatencyMs:       42.5,
				MaxLatencyMs:       120,
				SuccessRatePercent: 95,
				FailureRatePercent: 5,
			},
		},
		{
			name: "counters exceed total",
			snapshot: &MetricsSnapshot{
				TotalRequests:      10,
				SuccessRequests:    8,
				FailedRequests:     4,
				SuccessRatePercent: 80,
				FailureRatePercent: 20,
			},
			wantErr: "success (8) and failed (4) requests exceed total (10)",
		},
		{
			name: "latencies out of order",
			snapshot: &MetricsSnapshot{
				TotalRequests:      1,
				SuccessRequests:    1,
				MinLatencyMs:       50,
				AvgLatencyMs:       20,
				MaxLatencyMs:       60,
				SuccessRatePercent: 100,
			},
			wantErr: "latencies out of order: min=50 avg=20 max=60",
		},
		{
			name: "rates do not sum to 100",
			snapshot: &MetricsSnapshot{
				TotalRequests:      10,
				SuccessRequests:    10,
				SuccessRatePercent: 90,
				FailureRatePercent: 0,
			},
			wantErr: "success rate (90%) and failure rate (0%) do not sum to 100",
		},
		{
			name: "negative connections",
			snapshot: &MetricsSnapshot{
				ActiveConnections: &negative,
			},
			wantErr: "active connections must not be negative",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.snapshot.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tc.wantErr)
		})
	}
}

func TestMetricsSnapshot_FailureRate(t *testing.T) {
	t.Parallel()

	var empty *MetricsSnapshot
	require.Zero(t, empty.FailureRate())

	reported := &MetricsSnapshot{TotalRequests: 10, SuccessRatePercent: 70, FailureRatePercent: 30}
	require.InDelta(t, 30.0, reported.FailureRate(), 0.001)

	derived := &MetricsSnapshot{TotalRequests: 8, SuccessRequests: 6, FailedRequests: 2}
	require.InDelta(t, 25.0, derived.FailureRate(), 0.001)
}
