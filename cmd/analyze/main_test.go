package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tw93/dircount/internal/count"
)

func env(values map[string]string) func(string) string {
	return func(k string) string { return values[k] }
}

func TestResolveRoot_ArgumentWins(t *testing.T) {
	arg := t.TempDir()
	other := t.TempDir()

	got, err := resolveRoot([]string{arg}, env(map[string]string{envPath: other}))
	require.NoError(t, err)
	want, err := count.Canonical(arg)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolveRoot_Environment(t *testing.T) {
	dir := t.TempDir()
	got, err := resolveRoot(nil, env(map[string]string{envPath: dir}))
	require.NoError(t, err)
	want, err := count.Canonical(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolveRoot_WorkingDirectory(t *testing.T) {
	got, err := resolveRoot(nil, env(nil))
	require.NoError(t, err)
	wd, err := os.Getwd()
	require.NoError(t, err)
	want, err := count.Canonical(wd)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolveRoot_Invalid(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	_, err := resolveRoot([]string{missing}, env(nil))
	require.Error(t, err)
	var rootErr *count.RootError
	assert.True(t, errors.As(err, &rootErr))

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = resolveRoot([]string{file}, env(nil))
	assert.Error(t, err)
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"workers": 4, "sort": "name", "mouse": true}`), 0o644))

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--workers", "9", "--no-mouse"}))
	f := flags{configPath: path, workers: 9, noMouse: true, sort: "count", logLevel: "info"}

	cfg, err := loadConfig(cmd, f)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Workers)
	assert.Equal(t, "name", cfg.Sort, "unset flags keep the file value")
	assert.False(t, cfg.Mouse)
}

func TestLoadConfig_DefaultsSortByCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path}))
	sort, err := cmd.Flags().GetString("sort")
	require.NoError(t, err)
	assert.Equal(t, "count", sort)

	cfg, err := loadConfig(cmd, flags{configPath: path, sort: sort})
	require.NoError(t, err)
	assert.Equal(t, "count", cfg.Sort)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	cmd := newRootCmd()
	missing := filepath.Join(t.TempDir(), "nope.json")
	require.NoError(t, cmd.ParseFlags([]string{"--config", missing}))

	_, err := loadConfig(cmd, flags{configPath: missing})
	assert.Error(t, err)
}

func TestLoadConfig_InvalidFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--sort", "size"}))
	_, err := loadConfig(cmd, flags{configPath: path, sort: "size"})
	assert.Error(t, err)
}

func TestRootCmd_RejectsExtraArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"a", "b"})
	cmd.SetOut(new(nopWriter))
	cmd.SetErr(new(nopWriter))
	assert.Error(t, cmd.Execute())
}

type nopWriter struct{}

func (*nopWriter) Write(p []byte) (int, error) { return len(p), nil }
