package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/teamtasks/internal/testutil"
)

const importDocument = `
people:
  - name: Grace
projects:
  - name: Website
    code: WEB
    tasks:
      - name: Publish
        assignee: Grace
        subtasks:
          - name: Announce
  - name: Archive
    code: ARC
`

func TestImportCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(importDocument), 0o600))

	t.Run("dry run", func(t *testing.T) {
		c, store := newTestContainer()

		out, _, err := execute(t, newImportCommand(c), path, "--dry-run")

		require.NoError(t, err)
		assert.Equal(t, "Would import 1 project(s), 1 person(s), 2 task(s)\n", out)
		assert.Len(t, store.Tasks, 5)
	})

	t.Run("import", func(t *testing.T) {
		c, store := newTestContainer()

		out, _, err := execute(t, newImportCommand(c), path)

		require.NoError(t, err)
		assert.Equal(t, "Imported 1 project(s), 1 person(s), 2 task(s)\n", out)
		assert.Len(t, store.Tasks, 7)
		announce := store.Tasks[7]
		require.NotNil(t, announce.ParentID)
		assert.Equal(t, 6, *announce.ParentID)
		assert.Equal(t, 1, announce.ProjectID, "existing project matched by code")
	})

	t.Run("bad yaml", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("projects: [unclosed"), 0o600))
		c, _ := newTestContainer()

		_, _, err := execute(t, newImportCommand(c), bad)

		assert.ErrorContains(t, err, "parse "+bad)
	})

	t.Run("missing file", func(t *testing.T) {
		c, _ := newTestContainer()

		_, _, err := execute(t, newImportCommand(c), filepath.Join(t.TempDir(), "nope.yaml"))

		assert.ErrorContains(t, err, "read file")
	})
}

func TestExportCommand(t *testing.T) {
	c, _ := newTestContainer()

	out, _, err := execute(t, newExportCommand(c), "--project", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "code: LCH")
	assert.Contains(t, out, "name: Kickoff")
	assert.NotContains(t, out, "WEB")

	path := filepath.Join(t.TempDir(), "backup.yaml")
	out, _, err = execute(t, newExportCommand(c), "-o", path)
	require.NoError(t, err)
	assert.Equal(t, "Exported to "+path+"\n", out)

	// What export writes, import reads back into an empty store.
	dst := testutil.NewMockStore()
	c2, _ := newTestContainer()
	c2.Store = dst
	out, _, err = execute(t, newImportCommand(c2), path)
	require.NoError(t, err)
	assert.Equal(t, "Imported 2 project(s), 1 person(s), 5 task(s)\n", out)
}
