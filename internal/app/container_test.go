package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/infra/jsonstore"
	"github.com/runoshun/teamtasks/internal/infra/sqlstore"
	"github.com/runoshun/teamtasks/internal/usecase"
)

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(domain.DataDir(root), 0o750))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	assert.Equal(t, root, FindRoot(nested))
	assert.Equal(t, root, FindRoot(root))

	bare := t.TempDir()
	assert.Equal(t, bare, FindRoot(bare), "falls back to the directory itself")
}

func TestNew_DefaultsToSQLite(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()

	c, err := New(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.IsType(t, &sqlstore.Store{}, c.Store)
	assert.Equal(t, filepath.Join(dir, ".teamtasks", domain.SQLiteFileName), c.Config.StorePath)
	assert.Equal(t, domain.DefaultIndentWidth, c.IndentWidth())
}

func TestNew_JSONBackend(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	dataDir := domain.DataDir(dir)
	require.NoError(t, os.MkdirAll(dataDir, 0o750))
	require.NoError(t, os.WriteFile(domain.ConfigPath(dataDir), []byte(`
[store]
backend = "json"

[display]
indent_width = 2

[colors]
`), 0o600))

	c, err := New(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.IsType(t, &jsonstore.Store{}, c.Store)
	assert.Equal(t, filepath.Join(dataDir, domain.JSONStoreFileName), c.Config.StorePath)
	assert.Equal(t, 2, c.IndentWidth())
	assert.Equal(t, []string{"unknown section: colors"}, c.AppConfig.Warnings)

	// The whole chain works end to end on the chosen backend.
	_, err = c.InitStoreUseCase().Execute(context.Background(), c.InitStoreInput())
	require.NoError(t, err)
	p, err := c.NewProjectUseCase().Execute(context.Background(), usecase.NewProjectInput{Name: "Website", Code: "WEB"})
	require.NoError(t, err)
	task, err := c.NewTaskUseCase().Execute(context.Background(), usecase.NewTaskInput{ProjectID: p.Project.ID, Name: "Design"})
	require.NoError(t, err)
	entries, err := c.IndentedTasksUseCase().Execute(context.Background(), usecase.IndentedTasksInput{})
	require.NoError(t, err)
	require.Len(t, entries.Entries, 1)
	assert.Equal(t, task.Task.ID, entries.Entries[0].ID)
	assert.FileExists(t, domain.GlobalLogPath(dataDir))
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	dataDir := domain.DataDir(dir)
	require.NoError(t, os.MkdirAll(dataDir, 0o750))
	require.NoError(t, os.WriteFile(domain.ConfigPath(dataDir), []byte("[store]\nbackend = \"mongo\"\n"), 0o600))

	_, err := New(dir)

	assert.ErrorIs(t, err, domain.ErrUnknownStoreBackend)
}

func TestNewWithDeps(t *testing.T) {
	c := NewWithDeps(Config{}, nil, domain.RealClock{}, nil)

	require.NotNil(t, c.Logger)
	assert.Equal(t, domain.NewDefaultConfig(), c.AppConfig)
	assert.NoError(t, c.Close())
}
