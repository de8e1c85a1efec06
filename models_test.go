package cosmic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTelescope(t *testing.T) {
	tests := []struct {
		payload  string
		expected Telescope
		ok       bool
	}{
		{payload: "JWST", expected: JWST, ok: true},
		{payload: " webb ", expected: JWST, ok: true},
		{payload: "James Webb", expected: JWST, ok: true},
		{payload: "hst", expected: HST, ok: true},
		{payload: "Hubble", expected: HST, ok: true},
		{payload: "spitzer"},
		{payload: ""},
	}

	for _, tt := range tests {
		actual, ok := ParseTelescope(tt.payload)
		require.Equal(t, tt.ok, ok, "payload %q", tt.payload)
		require.Equal(t, tt.expected, actual, "payload %q", tt.payload)
	}
}

func TestHasPreview(t *testing.T) {
	require.False(t, ObservationRecord{}.HasPreview())
	require.True(t, ObservationRecord{PreviewURL: "https://mast/x.jpg"}.HasPreview())
	require.Equal(t, "HST", HST.Mission())
}
