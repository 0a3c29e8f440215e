package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug":   log.DebugLevel,
		"INFO":    log.InfoLevel,
		"warn":    log.WarnLevel,
		"warning": log.WarnLevel,
		" error ": log.ErrorLevel,
		"fatal":   log.FatalLevel,
		"":        log.InfoLevel,
		"chatty":  log.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown", "id", "abc")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "todobox")
}

func TestOpenAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "todobox.log")

	logger, err := Open(path, "debug")
	require.NoError(t, err)
	logger.Debug("added todo", "id", "01ABC")
	require.NoError(t, logger.Close())

	logger, err = Open(path, "debug")
	require.NoError(t, err)
	logger.Info("second run")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "added todo")
	assert.Contains(t, out, "id=01ABC")
	assert.Contains(t, out, "second run")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestOpenEmptyPathDiscards(t *testing.T) {
	logger, err := Open("", "debug")
	require.NoError(t, err)
	logger.Info("nowhere")
	assert.NoError(t, logger.Close())
}
