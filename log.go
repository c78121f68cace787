package qverify

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger builds the operator-facing logger. Trace output goes through
// errnie; this one carries run progress and the verdict.
func NewLogger(w io.Writer, debug bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "qverify",
		ReportTimestamp: true,
		Level:           log.InfoLevel,
	})

	if debug {
		logger.SetLevel(log.DebugLevel)
	}

	return logger
}
