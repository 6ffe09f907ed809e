package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	var buf bytes.Buffer

	log, err := New(Options{Output: &buf})
	require.NoError(t, err)

	log.Info("hello")
	log.Debug("hidden at default level")
	require.NoError(t, log.Sync())

	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.NotContains(t, out, "hidden at default level")
}

func TestNew_DebugLevel(t *testing.T) {
	var buf bytes.Buffer

	log, err := New(Options{Level: "debug", Output: &buf})
	require.NoError(t, err)

	log.Debug("visible now")
	require.NoError(t, log.Sync())

	assert.Contains(t, buf.String(), "visible now")
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer

	log, err := New(Options{Format: FormatJSON, Output: &buf})
	require.NoError(t, err)

	log.Info("structured")
	require.NoError(t, log.Sync())

	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(line, "{"), "expected JSON output, got %q", line)
	assert.Contains(t, line, `"structured"`)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "shouty"})
	require.Error(t, err)
}

func TestNew_InvalidFormat(t *testing.T) {
	_, err := New(Options{Format: Format("yaml")})
	require.Error(t, err)
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().Info("discarded")
	})
}
