package config

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockFileSystem implements FileSystem for testing.
type MockFileSystem struct {
	HomeDir     string
	HomeDirErr  error
	Files       map[string][]byte
	ReadFileErr error
}

func (m *MockFileSystem) UserHomeDir() (string, error) {
	return m.HomeDir, m.HomeDirErr
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

const dotfile = "/home/user/.config/dircount/config.json"

func TestLoad_NoConfigFile_ReturnsDefaults(t *testing.T) {
	loader := NewLoaderWithFS(&MockFileSystem{HomeDir: "/home/user", Files: map[string][]byte{}})

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_NoHomeDir_ReturnsDefaults(t *testing.T) {
	loader := NewLoaderWithFS(&MockFileSystem{HomeDirErr: errors.New("no home")})

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, 120, cfg.SpinnerIntervalMs)
}

func TestLoad_PartialOverride_KeepsOtherDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			dotfile: []byte(`{"workers": 4, "log": {"file": "/tmp/dircount.log"}}`),
		},
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "/tmp/dircount.log", cfg.Log.File)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "count", cfg.Sort)
	assert.True(t, cfg.Mouse)
}

func TestLoad_ExplicitZeroValues_OverrideDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{dotfile: []byte(`{"mouse": false, "sort": "name"}`)},
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	require.NoError(t, err)
	assert.False(t, cfg.Mouse)
	assert.Equal(t, "name", cfg.Sort)
}

func TestLoad_MalformedJSON_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{dotfile: []byte(`{"workers": `)},
	}

	_, err := NewLoaderWithFS(fs).Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_PermissionError_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{HomeDir: "/home/user", ReadFileErr: os.ErrPermission}

	_, err := NewLoaderWithFS(fs).Load()

	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestLoad_InvalidValues_ReturnsValidationError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{dotfile: []byte(`{"workers": -1, "sort": "size", "log": {"level": "loud"}}`)},
	}

	_, err := NewLoaderWithFS(fs).Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "workers must be between")
	assert.Contains(t, err.Error(), "sort must be")
	assert.Contains(t, err.Error(), "log.level")
}

func TestLoadFrom_MissingFile_ReturnsError(t *testing.T) {
	loader := NewLoaderWithFS(&MockFileSystem{Files: map[string][]byte{}})

	_, err := loader.LoadFrom("/etc/dircount.json")

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFrom_ExplicitFile_Loaded(t *testing.T) {
	fs := &MockFileSystem{Files: map[string][]byte{"/etc/dircount.json": []byte(`{"spinner_interval_ms": 80}`)}}

	cfg, err := NewLoaderWithFS(fs).LoadFrom("/etc/dircount.json")

	require.NoError(t, err)
	assert.Equal(t, 80, cfg.SpinnerIntervalMs)
}

func TestValidate_Defaults_Valid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestValidate_SpinnerTooFast_Invalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpinnerIntervalMs = 1
	cfg.Log.Format = "xml"

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "spinner_interval_ms")
	assert.Contains(t, err.Error(), "log.format")
}
