package sqlstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/infra/storetest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := New(filepath.Join(t.TempDir(), domain.SQLiteFileName))
	require.NoError(t, store.Initialize())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_Contract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) domain.Store {
		return newTestStore(t)
	})
}

func TestStore_Initialize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "teamtasks.db")
	store := New(path)
	defer func() { _ = store.Close() }()
	assert.False(t, store.IsInitialized())

	require.NoError(t, store.Initialize())
	assert.True(t, store.IsInitialized())

	require.NoError(t, store.CreateProject(&domain.Project{Name: "Website", Code: "WEB"}))
	require.NoError(t, store.Initialize(), "migrations are idempotent")

	var version int
	require.NoError(t, store.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, len(migrations), version)

	projects, err := store.ListProjects()
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestStore_NotInitialized(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "missing.db"))

	_, err := store.List(domain.TaskFilter{})
	assert.ErrorIs(t, err, domain.ErrNotInitialized)
	assert.False(t, store.IsInitialized(), "reads do not create the file")
}

func TestStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teamtasks.db")
	first := New(path)
	require.NoError(t, first.Initialize())
	storetest.Seed(t, first)
	require.NoError(t, first.Close())

	second := New(path)
	defer func() { _ = second.Close() }()
	draft, err := second.Get(4)
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, "Draft", draft.Name)
	assert.Equal(t, 2, *draft.ParentID)
}

func TestStore_ForeignKeys(t *testing.T) {
	store := newTestStore(t)
	storetest.Seed(t, store)

	// The parent column refers to an existing row.
	err := store.Create(&domain.Task{ProjectID: 1, Name: "x", ParentID: domain.IntPtr(99)}, nil)
	assert.Error(t, err)

	err = store.Update(&domain.Task{ID: 1, Name: "Design", AssignedTo: domain.IntPtr(7)})
	assert.ErrorIs(t, err, domain.ErrPersonNotFound)
}

func TestStore_ProgressCheck(t *testing.T) {
	store := newTestStore(t)
	storetest.Seed(t, store)

	task, err := store.Get(1)
	require.NoError(t, err)
	task.Progress = 150

	assert.Error(t, store.Update(task))
}
