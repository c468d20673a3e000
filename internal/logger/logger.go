// Package logger provides file-backed structured logging. The TUI owns
// the terminal, so log output always goes to a file.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
)

var (
	mu       sync.Mutex
	slogger  *slog.Logger
	logFile  *os.File
	levelVar = new(slog.LevelVar)
)

// Init opens the log file and installs the text handler. Calling Init
// again replaces the previous file.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", path, err)
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	slogger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	return nil
}

// SetDebug toggles debug-level output.
func SetDebug(enabled bool) {
	if enabled {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
}

// Logger returns the shared logger. Before Init it discards nothing and
// writes to stderr via slog's default, which is acceptable only outside
// the TUI loop.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if slogger == nil {
		return slog.Default()
	}
	return slogger
}

// ComponentLogger returns the shared logger with a component attribute
// attached.
func ComponentLogger(component string) *slog.Logger {
	return Logger().With(slog.String("component", component))
}

// Close flushes and closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	slogger = nil
}
