// Package logger provides the application-wide structured logger.
// All packages log through this facade so output format and level are
// controlled in one place.
package logger

import (
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"
)

var (
	mu  sync.RWMutex
	log = hclog.New(&hclog.LoggerOptions{
		Name:   "catalogd",
		Level:  hclog.Info,
		Output: os.Stderr,
	})
)

// Init reconfigures the logger. level is one of trace, debug, info, warn,
// error; format is "json" or "console".
func Init(level, format string) {
	mu.Lock()
	defer mu.Unlock()

	log = hclog.New(&hclog.LoggerOptions{
		Name:       "catalogd",
		Level:      hclog.LevelFromString(level),
		JSONFormat: format == "json",
		Output:     os.Stderr,
	})
}

// Named returns a sub-logger for a component, e.g. logger.Named("catalog").
func Named(name string) hclog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log.Named(name)
}

// Info logs an informational message with optional key/value pairs.
func Info(msg string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	log.Info(msg, args...)
}

// Warn logs a warning message with optional key/value pairs.
func Warn(msg string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	log.Warn(msg, args...)
}

// Error logs an error message with optional key/value pairs.
func Error(msg string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	log.Error(msg, args...)
}

// Debug logs a debug message with optional key/value pairs.
func Debug(msg string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	log.Debug(msg, args...)
}
