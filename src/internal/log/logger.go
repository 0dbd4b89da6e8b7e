package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	charmlog "github.com/charmbracelet/log"
)

const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

// sink receives fully formatted messages. Level filtering happens before a
// message reaches the sink.
type sink interface {
	write(level int, message string)
	close() error
}

var (
	verbose     atomic.Bool
	disableLogs atomic.Bool

	sinkMu  sync.RWMutex
	current sink = newConsoleSink(os.Stderr)
)

// SetVerbose sets the logging verbosity. If true, debug messages are displayed.
func SetVerbose(v bool) {
	verbose.Store(v)
}

// IsVerbose returns true if verbose logging is enabled.
func IsVerbose() bool {
	return verbose.Load()
}

// DisableLogs disables all logging.
func DisableLogs() {
	disableLogs.Store(true)
}

// EnableLogs re-enables logging after DisableLogs.
func EnableLogs() {
	disableLogs.Store(false)
}

// IsDisabled returns true if logging is disabled.
func IsDisabled() bool {
	return disableLogs.Load()
}

// SetOutput switches to the console sink writing to w.
func SetOutput(w io.Writer) {
	setSink(newConsoleSink(w))
}

// Close releases the active sink (the syslog connection, if any) and falls
// back to the console sink on stderr.
func Close() error {
	return setSink(newConsoleSink(os.Stderr))
}

func setSink(s sink) error {
	sinkMu.Lock()
	previous := current
	current = s
	sinkMu.Unlock()

	if previous != nil {
		return previous.close()
	}
	return nil
}

// Debugf logs a debug message if verbose is true.
func Debugf(format string, args ...interface{}) {
	if verbose.Load() {
		logMessage(levelDebug, format, args...)
	}
}

// Infof logs an info message.
func Infof(format string, args ...interface{}) {
	logMessage(levelInfo, format, args...)
}

// Warnf logs a warning message.
func Warnf(format string, args ...interface{}) {
	logMessage(levelWarn, format, args...)
}

// Errorf logs an error message.
func Errorf(format string, args ...interface{}) {
	logMessage(levelError, format, args...)
}

// Fatalf logs an error message and exits the program with status 1.
func Fatalf(format string, args ...interface{}) {
	logMessage(levelError, format, args...)
	_ = Close()
	os.Exit(1)
}

func logMessage(level int, format string, args ...interface{}) {
	if disableLogs.Load() {
		return
	}
	message := fmt.Sprintf(format, args...)

	sinkMu.RLock()
	defer sinkMu.RUnlock()
	current.write(level, message)
}

type consoleSink struct {
	logger *charmlog.Logger
}

func newConsoleSink(w io.Writer) *consoleSink {
	return &consoleSink{
		logger: charmlog.NewWithOptions(w, charmlog.Options{
			ReportTimestamp: true,
			TimeFormat:      "2006-01-02 15:04:05",
			Level:           charmlog.DebugLevel,
		}),
	}
}

func (s *consoleSink) write(level int, message string) {
	switch level {
	case levelDebug:
		s.logger.Debug(message)
	case levelInfo:
		s.logger.Info(message)
	case levelWarn:
		s.logger.Warn(message)
	default:
		s.logger.Error(message)
	}
}

func (s *consoleSink) close() error {
	return nil
}
