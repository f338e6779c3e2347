// Package logger writes structured logs to a file. Stdout and stderr belong
// to the terminal UI, so nothing is ever logged there.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	// DefaultLogPath is where the TUI and CLI log unless PathEnv is set.
	DefaultLogPath = "/tmp/msgboard-debug.log"

	// PathEnv overrides the log file location.
	PathEnv = "MSGBOARD_LOG"
)

var (
	mu     sync.Mutex
	level  = new(slog.LevelVar)
	file   *os.File
	path   string
	root   *slog.Logger
	opened bool // an open was attempted; failures are not retried

	discard = slog.New(slog.DiscardHandler)
)

// SetLevel sets the minimum level written. Loggers already handed out
// follow the change.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// SetDebug switches between debug and info level.
func SetDebug(enabled bool) {
	if enabled {
		SetLevel(slog.LevelDebug)
	} else {
		SetLevel(slog.LevelInfo)
	}
}

// Init opens path as the log file. It is a no-op once a file is open;
// without it the first logger opens DefaultLogPath (or PathEnv).
func Init(p string) error {
	mu.Lock()
	defer mu.Unlock()

	if root != nil {
		return nil
	}
	return open(p)
}

// open installs the handler. Callers hold mu.
func open(p string) error {
	opened = true
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", p, err)
	}
	file, path = f, p
	root = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	root.Debug("log opened", "path", p, "pid", os.Getpid())
	return nil
}

func defaultPath() string {
	if p := strings.TrimSpace(os.Getenv(PathEnv)); p != "" {
		return p
	}
	return DefaultLogPath
}

// get returns the root logger, opening the default file on first use.
// If the file cannot be opened, or after Close, logs are discarded.
func get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if root == nil && !opened {
		if err := open(defaultPath()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
	if root == nil {
		return discard
	}
	return root
}

// Path returns the open log file, or "" if none is open.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return path
}

// Close closes the log file. Later log calls are discarded.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	root = nil
	path = ""
}

// Reset closes the log file and forgets it so the next call opens a file
// again. Used by tests.
func Reset() {
	Close()

	mu.Lock()
	defer mu.Unlock()
	opened = false
	level.Set(slog.LevelInfo)
}

// ClearLogs removes msgboard log files and returns how many were removed.
func ClearLogs() (int, error) {
	return clearLogsMatching(defaultPath(), filepath.Join(os.TempDir(), "msgboard-*.log"))
}

func clearLogsMatching(primary, pattern string) (int, error) {
	count := 0

	if err := os.Remove(primary); err == nil {
		count++
	} else if !os.IsNotExist(err) {
		return count, err
	}

	extra, err := filepath.Glob(pattern)
	if err != nil {
		return count, err
	}
	for _, p := range extra {
		if p == primary {
			continue
		}
		if err := os.Remove(p); err == nil {
			count++
		} else if !os.IsNotExist(err) {
			return count, err
		}
	}

	return count, nil
}

// WithComponent returns a logger tagged with the subsystem writing to it.
//
//	log := logger.WithComponent("backend")
//	log.Info("request sent", "path", path, "status", status)
func WithComponent(component string) *slog.Logger {
	return get().With(slog.String("component", component))
}

// WithUser returns a logger tagged with the signed-in user's ID.
func WithUser(userID string) *slog.Logger {
	return get().With(slog.String("userID", userID))
}
