package pane

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

func TestNewLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, slog.LevelWarn)
	l.Info("quiet")
	l.Warn("loud", "id", "page/body/a")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "loud")
	assert.Contains(t, out, "page/body/a")
}

func TestLoggerFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pane.log")
	t.Setenv("PANE_LOG", path)
	t.Setenv("PANE_LOG_LEVEL", "debug")

	l := LoggerFromEnv()
	bm := NewBufferManager(3, WithBufferLogger(l))
	_, err := bm.AllocateSpace("a", FixedLines(1))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "allocate")
}
