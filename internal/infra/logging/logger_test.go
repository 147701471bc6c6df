package logging

import (
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/testutil"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"unknown", slog.LevelInfo}, // default
		{"", slog.LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLevel(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLogger_ProjectEntry(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	clock := &testutil.MockClock{NowTime: time.Date(2025, 12, 30, 9, 32, 51, 0, time.UTC)}
	logger := NewWithClock(dataDir, slog.LevelInfo, clock)
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Info(1, "task", "created #4")

	// Verify global log
	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	assert.Equal(t, "[2025-12-30 09:32:51] [INFO] [project-1] [task] created #4\n", string(content))

	// Verify project log
	projectContent, err := os.ReadFile(domain.ProjectLogPath(dataDir, 1))
	require.NoError(t, err)
	assert.Equal(t, string(content), string(projectContent))
}

func TestLogger_GlobalLogOnly(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	// Execute with projectID = 0 (global only)
	logger.Info(0, "import", "global message")

	// Verify global log
	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[global]")
	assert.Contains(t, string(content), "global message")

	// Verify no project-0 log file was created
	_, err = os.Stat(domain.ProjectLogPath(dataDir, 0))
	assert.True(t, os.IsNotExist(err))
}

func TestLogger_LevelFiltering(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelWarn)
	defer func() { _ = logger.Close() }()

	logger.Debug(0, "hierarchy", "debug message")
	logger.Info(0, "hierarchy", "info message")
	logger.Warn(0, "hierarchy", "warn message")
	logger.Error(0, "hierarchy", "error message")

	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	s := string(content)
	assert.NotContains(t, s, "debug message")
	assert.NotContains(t, s, "info message")
	assert.Contains(t, s, "[WARN]")
	assert.Contains(t, s, "[ERROR]")
}

func TestLogger_Disabled(t *testing.T) {
	logger := New("", slog.LevelDebug)
	logger.Info(1, "task", "dropped")
	assert.NoError(t, logger.Close())
}

func TestLogger_MultilineMessageStaysOnOneLine(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Warn(2, "hierarchy", "first\nsecond")

	content, err := os.ReadFile(domain.ProjectLogPath(dataDir, 2))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(content), "\n"))
	assert.Contains(t, string(content), "first second")
}

func TestLogger_ConcurrentWrites(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info(id%3+1, "task", "concurrent")
		}(i)
	}
	wg.Wait()

	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	assert.Equal(t, 20, strings.Count(string(content), "concurrent"))
}

func TestLogger_CloseReopens(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)

	logger.Info(1, "task", "before")
	require.NoError(t, logger.Close())
	logger.Info(1, "task", "after")
	require.NoError(t, logger.Close())

	content, err := os.ReadFile(domain.ProjectLogPath(dataDir, 1))
	require.NoError(t, err)
	assert.Contains(t, string(content), "before")
	assert.Contains(t, string(content), "after")
}
