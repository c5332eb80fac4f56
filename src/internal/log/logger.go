package log

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	charmlog "github.com/charmbracelet/log"
)

const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

const (
	FormatText   = "text"
	FormatLogfmt = "logfmt"
	FormatJSON   = "json"
)

var (
	verbose     atomic.Bool
	disableLogs atomic.Bool
	forceStdErr atomic.Bool

	outLogger = newLogger(os.Stdout)
	errLogger = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           charmlog.InfoLevel,
	})
}

// SetVerbose sets the logging verbosity. If true, debug messages are displayed.
func SetVerbose(v bool) {
	verbose.Store(v)

	level := charmlog.InfoLevel
	if v {
		level = charmlog.DebugLevel
	}
	outLogger.SetLevel(level)
	errLogger.SetLevel(level)
}

// IsVerbose returns true if verbose logging is enabled.
func IsVerbose() bool {
	return verbose.Load()
}

// DisableLogs disables all logging.
func DisableLogs() {
	disableLogs.Store(true)
}

// EnableLogs turns logging back on after DisableLogs.
func EnableLogs() {
	disableLogs.Store(false)
}

// IsDisabled returns true if logging is disabled.
func IsDisabled() bool {
	return disableLogs.Load()
}

// SetForceStdErr sends every level to stderr.
func SetForceStdErr(v bool) {
	forceStdErr.Store(v)
}

// SetFormat selects the output format: text (default), logfmt or json.
func SetFormat(format string) error {
	var f charmlog.Formatter
	switch format {
	case "", FormatText:
		f = charmlog.TextFormatter
	case FormatLogfmt:
		f = charmlog.LogfmtFormatter
	case FormatJSON:
		f = charmlog.JSONFormatter
	default:
		return fmt.Errorf("unknown log format %q (expected %s, %s or %s)", format, FormatText, FormatLogfmt, FormatJSON)
	}

	outLogger.SetFormatter(f)
	errLogger.SetFormatter(f)
	return nil
}

// SetOutput redirects all levels to w. Mostly useful in tests.
func SetOutput(w io.Writer) {
	outLogger.SetOutput(w)
	errLogger.SetOutput(w)
}

// ResetOutput restores stdout/stderr outputs.
func ResetOutput() {
	outLogger.SetOutput(os.Stdout)
	errLogger.SetOutput(os.Stderr)
}

// Debugf logs a debug message if verbose is true.
func Debugf(format string, args ...interface{}) {
	logf(levelDebug, format, args...)
}

// Infof logs an info message.
func Infof(format string, args ...interface{}) {
	logf(levelInfo, format, args...)
}

// Warnf logs a warning message.
func Warnf(format string, args ...interface{}) {
	logf(levelWarn, format, args...)
}

// Errorf logs an error message.
func Errorf(format string, args ...interface{}) {
	logf(levelError, format, args...)
}

// Fatalf logs an error message and exits the program.
func Fatalf(format string, args ...interface{}) {
	logf(levelError, format, args...)
	os.Exit(1)
}

// Debug logs a debug message with key/value pairs.
func Debug(msg string, keyvals ...interface{}) {
	logKV(levelDebug, msg, keyvals...)
}

// Info logs an info message with key/value pairs.
func Info(msg string, keyvals ...interface{}) {
	logKV(levelInfo, msg, keyvals...)
}

// Warn logs a warning message with key/value pairs.
func Warn(msg string, keyvals ...interface{}) {
	logKV(levelWarn, msg, keyvals...)
}

// Error logs an error message with key/value pairs.
func Error(msg string, keyvals ...interface{}) {
	logKV(levelError, msg, keyvals...)
}

func logf(level int, format string, args ...interface{}) {
	logKV(level, fmt.Sprintf(format, args...))
}

// logKV dispatches a message to the logger matching its level.
func logKV(level int, msg string, keyvals ...interface{}) {
	if disableLogs.Load() {
		return
	}

	l := outLogger
	if forceStdErr.Load() || level == levelError {
		l = errLogger
	}

	switch level {
	case levelDebug:
		l.Debug(msg, keyvals...)
	case levelInfo:
		l.Info(msg, keyvals...)
	case levelWarn:
		l.Warn(msg, keyvals...)
	default:
		l.Error(msg, keyvals...)
	}
}
