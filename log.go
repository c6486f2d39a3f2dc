package pane

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// NewLogger returns a slog logger backed by charmbracelet/log. Pass the
// output explicitly: anything written to the terminal the UI is drawing on
// will corrupt the display, so a file or os.Stderr redirected elsewhere is
// the usual choice.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	h := log.NewWithOptions(w, log.Options{
		Level:           log.Level(level),
		Prefix:          "pane",
		ReportTimestamp: true,
	})
	return slog.New(h)
}

// ParseLevel maps a config string onto a slog level. Unknown strings map to
// info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoggerFromEnv builds a logger writing to the file named by PANE_LOG, or a
// discarding logger when it is unset.
func LoggerFromEnv() *slog.Logger {
	path := os.Getenv("PANE_LOG")
	if path == "" {
		return discardLogger()
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return discardLogger()
	}
	return NewLogger(f, ParseLevel(os.Getenv("PANE_LOG_LEVEL")))
}

func discardLogger() *slog.Logger {
	return NewLogger(io.Discard, slog.LevelError)
}
