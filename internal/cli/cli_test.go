package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := Parse(nil, &out)
	require.NoError(t, err)
	require.False(t, exit)

	require.Equal(t, "127.0.0.1", cfg.Host)
	require.Equal(t, 8765, cfg.Port)
	require.Equal(t, 100, cfg.QueueSize)
	require.Equal(t, 100*time.Millisecond, cfg.TickInterval)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, "text", cfg.LogFormat)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"modules"}, cfg.ManifestPaths)
}

func TestParseFlagsOverrideDefaults(t *testing.T) {
	var out bytes.Buffer
	cfg, _, err := Parse([]string{
		"--port", "9001",
		"--log-level", "debug",
		"--log-format", "json",
		"--manifests", "/opt/manifests",
		"--tick-interval", "50ms",
	}, &out)
	require.NoError(t, err)

	require.Equal(t, 9001, cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, []string{"/opt/manifests"}, cfg.ManifestPaths)
	require.Equal(t, 50*time.Millisecond, cfg.TickInterval)
}

func TestParsePositionalManifestPath(t *testing.T) {
	var out bytes.Buffer
	cfg, _, err := Parse([]string{"./my-manifests"}, &out)
	require.NoError(t, err)
	require.Equal(t, []string{"./my-manifests"}, cfg.ManifestPaths)
}

func TestParseEnvironmentDefaults(t *testing.T) {
	t.Setenv("UEBRIDGE_PORT", "9100")
	t.Setenv("UEBRIDGE_LOG_LEVEL", "warn")

	var out bytes.Buffer
	cfg, _, err := Parse(nil, &out)
	require.NoError(t, err)
	require.Equal(t, 9100, cfg.Port)
	require.Equal(t, "warn", cfg.LogLevel)

	cfg, _, err = Parse([]string{"--port", "9200"}, &out)
	require.NoError(t, err)
	require.Equal(t, 9200, cfg.Port, "flags beat environment")
}

func TestParseInvalidValues(t *testing.T) {
	var out bytes.Buffer

	_, _, err := Parse([]string{"--log-format", "xml"}, &out)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)

	_, _, err = Parse([]string{"--log-level", "loud"}, &out)
	require.ErrorAs(t, err, &exitErr)

	_, _, err = Parse([]string{"--port", "99999"}, &out)
	require.ErrorAs(t, err, &exitErr)
	require.Contains(t, exitErr.Message, "invalid port")
}

func TestParseHelpExitsCleanly(t *testing.T) {
	var out bytes.Buffer
	_, exit, err := Parse([]string{"--help"}, &out)
	require.NoError(t, err)
	require.True(t, exit)
	require.Contains(t, out.String(), "uebridge")
}
