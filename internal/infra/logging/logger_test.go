package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
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

func TestLogger_LogFormat(t *testing.T) {
	dataDir := t.TempDir()
	clock := &testutil.MockClock{NowTime: time.Date(2025, 12, 30, 9, 32, 51, 0, time.Local)}
	logger := New(dataDir, slog.LevelInfo, WithClock(clock))
	defer func() { _ = logger.Close() }()

	logger.Info(1704164645000, "store", `task created: "my task"`)

	content, err := os.ReadFile(domain.LogPath(dataDir))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, `[2025-12-30 09:32:51] [INFO] [task-1704164645000] [store] task created: "my task"`, lines[0])
}

func TestLogger_GlobalEntry(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info(0, "store", "loaded")

	content, err := os.ReadFile(logger.Path())
	require.NoError(t, err)
	assert.Contains(t, string(content), "[global] [store] loaded")
}

func TestLogger_LevelFiltering(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelWarn) // Only warn and above
	defer func() { _ = logger.Close() }()

	logger.Debug(1, "store", "debug message")
	logger.Info(1, "store", "info message")
	logger.Warn(1, "store", "warn message")
	logger.Error(1, "store", "error message")

	content, err := os.ReadFile(logger.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(content), "debug message")
	assert.NotContains(t, string(content), "info message")
	assert.Contains(t, string(content), "[WARN]")
	assert.Contains(t, string(content), "[ERROR]")
}

func TestLogger_DisabledWhenEmptyDataDir(t *testing.T) {
	logger := New("", slog.LevelDebug)
	defer func() { _ = logger.Close() }()

	// Should not panic or create files
	logger.Info(1, "store", "test message")
	logger.Error(1, "store", "error message")
	assert.Empty(t, logger.Path())
}

func TestLogger_Mirror(t *testing.T) {
	var buf bytes.Buffer
	mirror := slog.New(slog.NewTextHandler(&buf, nil))
	logger := New("", slog.LevelDebug, WithMirror(mirror))

	logger.Info(1, "store", "quiet")
	logger.Warn(7, "store", "snapshot unreadable")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, `msg="snapshot unreadable"`)
	assert.Contains(t, out, "category=store")
	assert.Contains(t, out, "task=7")
}

func TestLogger_CreateLogsDir(t *testing.T) {
	dataDir := t.TempDir()
	logsDir := filepath.Join(dataDir, "logs")

	_, err := os.Stat(logsDir)
	assert.True(t, os.IsNotExist(err))

	logger := New(dataDir, slog.LevelInfo)
	logger.Info(1, "store", "test message")
	require.NoError(t, logger.Close())

	stat, err := os.Stat(logsDir)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
	assert.FileExists(t, domain.LogPath(dataDir))
}

func TestLogger_CloseIsIdempotent(t *testing.T) {
	logger := New(t.TempDir(), slog.LevelInfo)
	logger.Info(0, "store", "x")

	assert.NoError(t, logger.Close())
	assert.NoError(t, logger.Close())
}
