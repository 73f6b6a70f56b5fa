package dbtools

import (
	"regexp"
	"strings"
	"time"

	"github.com/FreePeak/db-view-server/pkg/logger"
)

// DefaultSlowThreshold is the duration above which a statement is reported as slow
const DefaultSlowThreshold = 500 * time.Millisecond

var (
	singleQuoted = regexp.MustCompile(`'[^']*'`)
	doubleQuoted = regexp.MustCompile(`"[^"]*"`)
	numberLit    = regexp.MustCompile(`\b\d+\b`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// StatementTimer measures single statement executions. It keeps no state
// between calls.
type StatementTimer struct {
	slowThreshold time.Duration
}

// NewStatementTimer creates a timer; a non-positive threshold selects DefaultSlowThreshold
func NewStatementTimer(slowThreshold time.Duration) *StatementTimer {
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowThreshold
	}
	return &StatementTimer{slowThreshold: slowThreshold}
}

// SlowThreshold returns the configured threshold
func (st *StatementTimer) SlowThreshold() time.Duration {
	return st.slowThreshold
}

// Track runs fn and logs its duration. Slow statements are logged at warn
// level with literals masked, so bound parameter values stay out of the log.
func (st *StatementTimer) Track(statement string, fn func() error) error {
	start := time.Now()
	err := fn()
	duration := time.Since(start)

	if duration >= st.slowThreshold {
		logger.Warn("Slow statement (%.2fms): %s", float64(duration.Microseconds())/1000, NormalizeStatement(statement))
	} else {
		logger.Debug("Statement finished in %.2fms", float64(duration.Microseconds())/1000)
	}
	return err
}

// NormalizeStatement replaces quoted strings and numbers with placeholders
// and collapses whitespace
func NormalizeStatement(statement string) string {
	normalized := singleQuoted.ReplaceAllString(statement, "'?'")
	normalized = doubleQuoted.ReplaceAllString(normalized, `"?"`)
	normalized = numberLit.ReplaceAllString(normalized, "?")
	normalized = whitespace.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}
