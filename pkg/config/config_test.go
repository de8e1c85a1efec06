package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResolveApiKey(t *testing.T) {
	dir := t.TempDir()

	withKey := filepath.Join(dir, "with.env")
	require.NoError(t, os.WriteFile(withKey, []byte("NASA_API_KEY=from-file\n"), 0600))

	withoutKey := filepath.Join(dir, "without.env")
	require.NoError(t, os.WriteFile(withoutKey, []byte("OTHER=1\n"), 0600))

	tests := []struct {
		name     string
		envKey   string
		secrets  string
		expected string
	}{
		{name: "nothing set", expected: "DEMO_KEY"},
		{name: "env only", envKey: "from-env", expected: "from-env"},
		{name: "missing secrets file", envKey: "from-env", secrets: filepath.Join(dir, "nope.env"), expected: "from-env"},
		{name: "secrets file wins", envKey: "from-env", secrets: withKey, expected: "from-file"},
		{name: "secrets file without key", envKey: "from-env", secrets: withoutKey, expected: "from-env"},
		{name: "secrets file only", secrets: withKey, expected: "from-file"},
		{name: "blank env", envKey: "   ", secrets: withoutKey, expected: "DEMO_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, ResolveApiKey(tt.envKey, tt.secrets))
		})
	}
}

func TestMaskKey(t *testing.T) {
	require.Equal(t, "DEMO...", MaskKey("DEMO_KEY"))
	require.Equal(t, "abcd...wxyz", MaskKey("abcdefghijklmnopqrstuvwxyz"))
	require.Equal(t, "ab...", MaskKey("ab"))
	require.Equal(t, "...", MaskKey(""))
}

func TestDurations(t *testing.T) {
	require.Equal(t, time.Hour, Config{}.CacheTTL())
	require.Equal(t, 90*time.Second, Config{CacheTTLSeconds: 90}.CacheTTL())
	require.Equal(t, 10*time.Second, Config{}.HTTPTimeout())
	require.Equal(t, 3*time.Second, Config{HTTPTimeoutSeconds: 3}.HTTPTimeout())

	require.False(t, Config{}.UsePostgresCache())
	require.True(t, Config{DBHost: "db"}.UsePostgresCache())
}
