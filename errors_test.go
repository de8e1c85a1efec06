package cosmic

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil", err: nil, expected: ""},
		{name: "rate limit", err: fmt.Errorf("%w: OVER_RATE_LIMIT", ErrRateLimit), expected: "API rate limit exceeded. Please try again later or use your own API key."},
		{name: "invalid key", err: ErrInvalidKey, expected: "Invalid NASA API key. Please check your configuration."},
		{name: "network", err: fmt.Errorf("%w: connection refused", ErrNetwork), expected: "The upstream service could not be reached. Please try again."},
		{name: "data", err: fmt.Errorf("%w: missing title", ErrData), expected: "The upstream service returned an unexpected response."},
		{name: "query keeps details", err: fmt.Errorf("%w: date must be YYYY-MM-DD", ErrQuery), expected: "query rejected: date must be YYYY-MM-DD"},
		{name: "unknown", err: errors.New("boom"), expected: "Something went wrong."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, UserMessage(tt.err))
		})
	}
}
