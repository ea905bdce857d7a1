package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInit_NoOutputPath_DiscardsLogs(t *testing.T) {
	logger, err := Init(Config{Level: "debug"})

	require.NoError(t, err)
	assert.Same(t, logger, L())
	assert.False(t, logger.Core().Enabled(zap.ErrorLevel))
}

func TestInit_JSONFile_WritesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dircount.log")

	logger, err := Init(Config{Level: "info", Format: "json", OutputPath: path})
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = Init(Config{}) })

	logger.Debug("hidden")
	logger.Info("scan done", zap.String("path", "/r/x"), zap.Int("files", 3))
	require.NoError(t, Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "scan done", entry["msg"])
	assert.Equal(t, "/r/x", entry["path"])
	assert.Equal(t, float64(3), entry["files"])
}

func TestInit_LevelFiltersEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dircount.log")
	logger, err := Init(Config{Level: "warn", Format: "console", OutputPath: path})
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = Init(Config{}) })

	assert.Same(t, logger, L())
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))
}

func TestInit_BadLevel_FallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dircount.log")
	logger, err := Init(Config{Level: "nonsense", OutputPath: path})
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = Init(Config{}) })

	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
}
