package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	cosmic "github.com/OfriRose/cosmic-canvas"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestStatus(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{err: nil, expected: "ok"},
		{err: fmt.Errorf("%w: slow down", cosmic.ErrRateLimit), expected: "rate_limited"},
		{err: cosmic.ErrInvalidKey, expected: "invalid_key"},
		{err: fmt.Errorf("%w: timeout", cosmic.ErrNetwork), expected: "network_error"},
		{err: cosmic.ErrData, expected: "data_error"},
		{err: cosmic.ErrQuery, expected: "query_error"},
		{err: errors.New("boom"), expected: "error"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, status(tt.err), "err %v", tt.err)
	}
}

func TestObserve(t *testing.T) {
	hits := counterValue(t, CacheLookupsTotal.WithLabelValues("test", "hit"))
	ObserveCache("test", true)
	ObserveCache("test", false)
	require.Equal(t, hits+1, counterValue(t, CacheLookupsTotal.WithLabelValues("test", "hit")))

	before := counterValue(t, UpstreamRequestsTotal.WithLabelValues("test", "lookup", "network_error"))
	ObserveUpstream("test", "lookup", time.Now(), cosmic.ErrNetwork)
	require.Equal(t, before+1, counterValue(t, UpstreamRequestsTotal.WithLabelValues("test", "lookup", "network_error")))
}
