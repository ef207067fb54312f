package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ".yml", cfg.DefaultExtension)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.SearchPaths)
}

func TestLoadExplicitFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
default_extension: .yaml
log_level: debug
search_paths:
  - ./catalogs
  - /etc/optable
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ".yaml", cfg.DefaultExtension)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"./catalogs", "/etc/optable"}, cfg.SearchPaths)
}

func TestLoadFindsFileInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "log_level: warn\n")
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, ".yml", cfg.DefaultExtension)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "log_level: warn\n")
	t.Setenv("OPTABLE_LOG_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadRejectsEmptyExtension(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "default_extension: \"\"\n")

	_, err := Load(path)
	assert.Error(t, err)
}
