// Package logging provides file-based logging for teamtasks.
// Entries go to a global log file (.teamtasks/logs/teamtasks.log) and,
// when they concern a project, to that project's log file
// (.teamtasks/logs/project-N.log).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/runoshun/teamtasks/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger appends formatted entries to log files under a data directory.
// Fields are ordered to minimize memory padding.
type Logger struct {
	clock        domain.Clock
	globalFile   *os.File
	projectFiles map[int]*os.File
	dataDir      string
	mu           sync.Mutex
	level        slog.Level
}

// New creates a new Logger that writes below dataDir/logs.
// If dataDir is empty, logging is disabled.
func New(dataDir string, level slog.Level) *Logger {
	return NewWithClock(dataDir, level, domain.RealClock{})
}

// NewWithClock creates a Logger that timestamps entries with clock.
func NewWithClock(dataDir string, level slog.Level, clock domain.Clock) *Logger {
	return &Logger{
		clock:        clock,
		dataDir:      dataDir,
		level:        level,
		projectFiles: make(map[int]*os.File),
	}
}

// ParseLevel parses a log level string into slog.Level.
// Unknown values fall back to info.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// open opens path for appending, creating its directory first.
func (l *Logger) open(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func (l *Logger) globalWriter() (io.Writer, error) {
	if l.globalFile == nil {
		f, err := l.open(domain.GlobalLogPath(l.dataDir))
		if err != nil {
			return nil, err
		}
		l.globalFile = f
	}
	return l.globalFile, nil
}

func (l *Logger) projectWriter(projectID int) (io.Writer, error) {
	if f, ok := l.projectFiles[projectID]; ok {
		return f, nil
	}
	f, err := l.open(domain.ProjectLogPath(l.dataDir, projectID))
	if err != nil {
		return nil, err
	}
	l.projectFiles[projectID] = f
	return f, nil
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	if l.globalFile != nil {
		if err := l.globalFile.Close(); err != nil {
			lastErr = err
		}
		l.globalFile = nil
	}
	for id, f := range l.projectFiles {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.projectFiles, id)
	}
	return lastErr
}

// formatLog formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [project-1] [category] message
func formatLog(t time.Time, level slog.Level, projectID int, category, msg string) string {
	scope := "global"
	if projectID > 0 {
		scope = fmt.Sprintf("project-%d", projectID)
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		scope,
		category,
		strings.ReplaceAll(msg, "\n", " "),
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// log writes an entry to the global log and, for projectID > 0, to the
// project's log as well. Write failures are dropped.
func (l *Logger) log(level slog.Level, projectID int, category, msg string) {
	if l.dataDir == "" || level < l.level {
		return
	}
	entry := formatLog(l.clock.Now(), level, projectID, category, msg)

	l.mu.Lock()
	defer l.mu.Unlock()

	if w, err := l.globalWriter(); err == nil {
		_, _ = io.WriteString(w, entry)
	}
	if projectID > 0 {
		if w, err := l.projectWriter(projectID); err == nil {
			_, _ = io.WriteString(w, entry)
		}
	}
}

// Info logs an info message.
func (l *Logger) Info(projectID int, category, msg string) {
	l.log(slog.LevelInfo, projectID, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(projectID int, category, msg string) {
	l.log(slog.LevelDebug, projectID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(projectID int, category, msg string) {
	l.log(slog.LevelWarn, projectID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(projectID int, category, msg string) {
	l.log(slog.LevelError, projectID, category, msg)
}
