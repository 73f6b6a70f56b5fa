package core

import (
	"io"
	"os"
	"strings"
)

// IsLoggingDisabled checks if logging should be disabled
func IsLoggingDisabled() bool {
	val := os.Getenv("DISABLE_LOGGING")
	return strings.ToLower(val) == "true" || val == "1"
}

// GetLogWriter returns the appropriate writer for logging based on configuration.
// Logs never go to stdout so the stdio MCP transport stays clean.
func GetLogWriter() io.Writer {
	if IsLoggingDisabled() {
		return io.Discard
	}
	return os.Stderr
}
