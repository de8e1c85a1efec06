package metrics

import (
	"errors"
	"time"

	cosmic "github.com/OfriRose/cosmic-canvas"
)

// один вызов внешнего апи
func ObserveUpstream(upstream, operation string, start time.Time, err error) {
	UpstreamRequestDuration.WithLabelValues(upstream, operation).Observe(time.Since(start).Seconds())
	UpstreamRequestsTotal.WithLabelValues(upstream, operation, status(err)).Inc()
}

func ObserveCache(namespace string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}

	CacheLookupsTotal.WithLabelValues(namespace, result).Inc()
}

func status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, cosmic.ErrRateLimit):
		return "rate_limited"
	case errors.Is(err, cosmic.ErrInvalidKey):
		return "invalid_key"
	case errors.Is(err, cosmic.ErrNetwork):
		return "network_error"
	case errors.Is(err, cosmic.ErrData):
		return "data_error"
	case errors.Is(err, cosmic.ErrQuery):
		return "query_error"
	}

	return "error"
}
