package xmap

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger creates a logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "xmap",
	})
}

// defaultLogger is used by views created without WithLogger.
func defaultLogger() *log.Logger {
	return NewLogger(os.Stderr, log.InfoLevel)
}
