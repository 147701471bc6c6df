package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/teamtasks/internal/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0o600))
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir())

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}

func TestLoader_Load_RepoConfigOnly(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	writeConfig(t, dataDir, `
[store]
backend = "json"
path = "/tmp/tasks.json"

[server]
addr = ":9000"

[log]
level = "debug"

[display]
indent_width = 2
`)

	// Execute
	cfg, err := NewLoaderWithGlobalDir(dataDir, t.TempDir()).Load()

	// Verify
	require.NoError(t, err)
	assert.Equal(t, domain.StoreJSON, cfg.Store.Backend)
	assert.Equal(t, "/tmp/tasks.json", cfg.Store.Path)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, domain.DefaultServerMode, cfg.Server.Mode, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 2, cfg.Display.IndentWidth)
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_Load_RepoOverridesGlobal(t *testing.T) {
	dataDir := t.TempDir()
	globalDir := t.TempDir()
	writeConfig(t, globalDir, `
[log]
level = "warn"

[server]
addr = ":7000"
mode = "debug"
`)
	writeConfig(t, dataDir, `
[server]
addr = ":8000"
`)

	cfg, err := NewLoaderWithGlobalDir(dataDir, globalDir).Load()

	require.NoError(t, err)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoader_Load_UnknownKeysWarn(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, `
top = 1

[store]
engine = "postgres"

[colors]
accent = "red"
`)

	cfg, err := NewLoaderWithGlobalDir(dataDir, "").Load()

	require.NoError(t, err)
	assert.Equal(t, []string{
		"unknown key in [store]: engine",
		"unknown section: colors",
		"unknown section: top",
	}, cfg.Warnings)
}

func TestLoader_Load_Errors(t *testing.T) {
	t.Run("invalid toml", func(t *testing.T) {
		dataDir := t.TempDir()
		writeConfig(t, dataDir, "[store\n")

		_, err := NewLoaderWithGlobalDir(dataDir, "").Load()

		assert.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		dataDir := t.TempDir()
		writeConfig(t, dataDir, "[store]\nbackend = \"redis\"\n")

		_, err := NewLoaderWithGlobalDir(dataDir, "").Load()

		assert.ErrorIs(t, err, domain.ErrUnknownStoreBackend)
	})
}

func TestLoader_LoadGlobal_NoDir(t *testing.T) {
	_, err := NewLoaderWithGlobalDir(t.TempDir(), "").LoadGlobal()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRenderTemplate_LoadsBackToDefaults(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, RenderTemplate(domain.NewDefaultConfig()))

	cfg, err := NewLoaderWithGlobalDir(dataDir, "").Load()

	require.NoError(t, err)
	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}

func TestInitGlobalConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "teamtasks")

	path, err := InitGlobalConfig(dir)
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = InitGlobalConfig(dir)
	assert.ErrorIs(t, err, domain.ErrConfigExists)

	_, err = InitGlobalConfig("")
	assert.Error(t, err)
}

func TestMergeConfigs_Warnings(t *testing.T) {
	clean := mergeConfigs(domain.NewDefaultConfig(), &domain.Config{})
	assert.Nil(t, clean.Warnings, "no warnings stays nil")

	merged := mergeConfigs(
		&domain.Config{Warnings: []string{"unknown section: a"}},
		&domain.Config{Warnings: []string{"unknown section: b"}},
	)
	assert.Equal(t, []string{"unknown section: a", "unknown section: b"}, merged.Warnings)
}
