package logger

import (
	"fmt"
	"io"
	"runtime/debug"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/FreePeak/db-view-server/pkg/core"
)

// Level represents the severity of a log message
type Level int

const (
	// LevelDebug for detailed troubleshooting
	LevelDebug Level = iota
	// LevelInfo for general operational entries
	LevelInfo
	// LevelWarn for non-critical issues
	LevelWarn
	// LevelError for errors that should be addressed
	LevelError
)

var (
	// Default logger
	logger   = newLogger(core.GetLogWriter(), "text")
	logLevel = LevelInfo
)

// Fields is an alias so callers do not need to import logrus
type Fields = logrus.Fields

func newLogger(out io.Writer, format string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	if strings.ToLower(format) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006/01/02 15:04:05",
		})
	}
	l.SetLevel(logrus.DebugLevel)
	return l
}

// Initialize sets up the logger with the specified level and format ("text" or "json")
func Initialize(level string, format ...string) {
	f := "text"
	if len(format) > 0 {
		f = format[0]
	}
	logger = newLogger(core.GetLogWriter(), f)
	setLogLevel(level)
}

// SetOutput redirects log output
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Writer returns a writer that logs each line at info level
func Writer() io.Writer {
	return logger.WriterLevel(logrus.InfoLevel)
}

// setLogLevel sets the log level from a string
func setLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		logLevel = LevelDebug
	case "info":
		logLevel = LevelInfo
	case "warn":
		logLevel = LevelWarn
	case "error":
		logLevel = LevelError
	default:
		logLevel = LevelInfo
	}
}

func (l Level) logrusLevel() logrus.Level {
	switch l {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// logMessage logs a message with the given level
func logMessage(entry *logrus.Entry, level Level, format string, v ...interface{}) {
	if level < logLevel {
		return
	}
	entry.Log(level.logrusLevel(), fmt.Sprintf(format, v...))
}

// Debug logs a debug message
func Debug(format string, v ...interface{}) {
	logMessage(logrus.NewEntry(logger), LevelDebug, format, v...)
}

// Info logs an info message
func Info(format string, v ...interface{}) {
	logMessage(logrus.NewEntry(logger), LevelInfo, format, v...)
}

// Warn logs a warning message
func Warn(format string, v ...interface{}) {
	logMessage(logrus.NewEntry(logger), LevelWarn, format, v...)
}

// Error logs an error message
func Error(format string, v ...interface{}) {
	logMessage(logrus.NewEntry(logger), LevelError, format, v...)
}

// ErrorWithStack logs an error with a stack trace
func ErrorWithStack(err error) {
	if err == nil {
		return
	}
	logMessage(logrus.NewEntry(logger), LevelError, "%v\n%s", err, debug.Stack())
}

// Entry is a logger bound to a set of structured fields
type Entry struct {
	entry *logrus.Entry
}

// WithFields returns a logger that attaches fields to every message
func WithFields(fields Fields) *Entry {
	return &Entry{entry: logger.WithFields(fields)}
}

// Debug logs a debug message with the bound fields
func (e *Entry) Debug(format string, v ...interface{}) {
	logMessage(e.entry, LevelDebug, format, v...)
}

// Info logs an info message with the bound fields
func (e *Entry) Info(format string, v ...interface{}) {
	logMessage(e.entry, LevelInfo, format, v...)
}

// Warn logs a warning message with the bound fields
func (e *Entry) Warn(format string, v ...interface{}) {
	logMessage(e.entry, LevelWarn, format, v...)
}

// Error logs an error message with the bound fields
func (e *Entry) Error(format string, v ...interface{}) {
	logMessage(e.entry, LevelError, format, v...)
}

// RequestLog logs details of an HTTP request
func RequestLog(method, url, identifier, body string) {
	Debug("HTTP Request: %s %s", method, url)
	if identifier != "" {
		Debug("Identifier: %s", identifier)
	}
	if body != "" {
		Debug("Request Body: %s", body)
	}
}

// ResponseLog logs details of an HTTP response
func ResponseLog(statusCode int, identifier, view string) {
	Debug("HTTP Response: Status %d", statusCode)
	if identifier != "" {
		Debug("Identifier: %s", identifier)
	}
	if view != "" {
		Debug("View: %s", view)
	}
}
