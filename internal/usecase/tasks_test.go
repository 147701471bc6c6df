package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/hierarchy"
	"github.com/runoshun/teamtasks/internal/testutil"
)

func TestShowTask_Execute(t *testing.T) {
	store := testutil.NewMockStore()
	seedScenario(store)
	uc := NewShowTask(store, store, store, nil)

	out, err := uc.Execute(context.Background(), ShowTaskInput{TaskID: 2})

	require.NoError(t, err)
	assert.Equal(t, "Spec", out.Task.Name)
	require.NotNil(t, out.Parent)
	assert.Equal(t, 1, out.Parent.ID)
	assert.Equal(t, "Website", out.Detail.ProjectName)
	require.NotNil(t, out.Detail.AssignedToName)
	assert.Equal(t, "Ada", *out.Detail.AssignedToName)
	require.Len(t, out.Detail.Subtasks, 1)
	assert.Equal(t, "Draft", out.Detail.Subtasks[0].Name)

	draft, err := uc.Execute(context.Background(), ShowTaskInput{TaskID: 4})
	require.NoError(t, err)
	require.Len(t, draft.Path, 2)
	assert.Equal(t, []int{1, 2}, []int{draft.Path[0].ID, draft.Path[1].ID})

	root, err := uc.Execute(context.Background(), ShowTaskInput{TaskID: 1})
	require.NoError(t, err)
	assert.Nil(t, root.Parent)
	assert.Empty(t, root.Path)

	_, err = uc.Execute(context.Background(), ShowTaskInput{TaskID: 404})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestShowTask_Execute_OrphanHasNoParent(t *testing.T) {
	store := testutil.NewMockStore()
	seedScenario(store)
	store.AddTask(&domain.Task{ID: 9, ProjectID: 1, Name: "Stray", ParentID: domain.IntPtr(404)})
	uc := NewShowTask(store, store, store, nil)

	out, err := uc.Execute(context.Background(), ShowTaskInput{TaskID: 9})

	require.NoError(t, err)
	assert.Nil(t, out.Parent)
	assert.Equal(t, 404, *out.Detail.Parent, "stored link is still reported")
	require.Len(t, out.Anomalies, 1)
}

func TestListTasks_Execute(t *testing.T) {
	store := testutil.NewMockStore()
	seedScenario(store)
	uc := NewListTasks(store, store, store, nil)

	t.Run("roots only", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), ListTasksInput{RootsOnly: true})
		require.NoError(t, err)
		// Launch sorts before Website.
		require.Len(t, out.Tasks, 2)
		assert.Equal(t, 5, out.Tasks[0].ID)
		assert.Equal(t, 1, out.Tasks[1].ID)
		assert.Len(t, out.Tasks[1].Subtasks, 2)
	})

	t.Run("every task", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), ListTasksInput{})
		require.NoError(t, err)
		var ids []int
		for _, dto := range out.Tasks {
			ids = append(ids, dto.ID)
		}
		// Launch first, then Website by (priority, name).
		assert.Equal(t, []int{5, 1, 4, 2, 3}, ids)
		assert.Len(t, out.Tasks[3].Subtasks, 1, "Spec carries Draft")
	})

	t.Run("one project", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), ListTasksInput{ProjectID: domain.IntPtr(2)})
		require.NoError(t, err)
		require.Len(t, out.Tasks, 1)
		assert.Equal(t, "Launch", out.Tasks[0].ProjectName)
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), ListTasksInput{ProjectID: domain.IntPtr(8)})
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})

	t.Run("by assignee", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), ListTasksInput{AssignedTo: domain.IntPtr(1)})
		require.NoError(t, err)
		require.Len(t, out.Tasks, 1)
		assert.Equal(t, 2, out.Tasks[0].ID)
		require.Len(t, out.Tasks[0].Subtasks, 1, "subtree stays complete")
		assert.Equal(t, 4, out.Tasks[0].Subtasks[0].ID)
		assert.Empty(t, out.Anomalies)
	})

	t.Run("by name", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), ListTasksInput{NameContains: "RE"})
		require.NoError(t, err)
		require.Len(t, out.Tasks, 1)
		assert.Equal(t, "Review", out.Tasks[0].Name)

		roots, err := uc.Execute(context.Background(), ListTasksInput{NameContains: "kick", RootsOnly: true})
		require.NoError(t, err)
		require.Len(t, roots.Tasks, 1)
		assert.Equal(t, 5, roots.Tasks[0].ID)
	})
}

func TestDeleteTask_Execute(t *testing.T) {
	store := testutil.NewMockStore()
	seedScenario(store)
	logger := &testutil.MockLogger{}
	uc := NewDeleteTask(store, logger)

	out, err := uc.Execute(context.Background(), DeleteTaskInput{TaskID: 2})

	require.NoError(t, err)
	assert.Equal(t, []int{4, 2}, out.Deleted)
	assert.NotContains(t, store.Tasks, 2)
	assert.NotContains(t, store.Tasks, 4)
	assert.Contains(t, store.Tasks, 3)
	assert.Contains(t, logger.Entries[0].Msg, "with 1 subtask(s)")

	_, err = uc.Execute(context.Background(), DeleteTaskInput{TaskID: 2})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestIndentedTasks_Execute(t *testing.T) {
	store := testutil.NewMockStore()
	seedScenario(store)
	uc := NewIndentedTasks(store, store, nil, 2)

	all, err := uc.Execute(context.Background(), IndentedTasksInput{})
	require.NoError(t, err)
	assert.Equal(t, []hierarchy.Entry{
		{ID: 5, Label: "Kickoff", Depth: 0},
		{ID: 1, Label: "Design", Depth: 0},
		{ID: 2, Label: "  Spec", Depth: 1},
		{ID: 4, Label: "    Draft", Depth: 2},
		{ID: 3, Label: "  Review", Depth: 1},
	}, all.Entries)

	one, err := uc.Execute(context.Background(), IndentedTasksInput{ProjectID: domain.IntPtr(2)})
	require.NoError(t, err)
	assert.Len(t, one.Entries, 1)

	assigned, err := uc.Execute(context.Background(), IndentedTasksInput{AssignedTo: domain.IntPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, []hierarchy.Entry{{ID: 2, Label: "  Spec", Depth: 1}}, assigned.Entries)

	named, err := uc.Execute(context.Background(), IndentedTasksInput{ProjectID: domain.IntPtr(1), NameContains: "d"})
	require.NoError(t, err)
	assert.Equal(t, []hierarchy.Entry{
		{ID: 1, Label: "Design", Depth: 0},
		{ID: 4, Label: "    Draft", Depth: 2},
	}, named.Entries)
	assert.Empty(t, named.Anomalies)

	none, err := uc.Execute(context.Background(), IndentedTasksInput{NameContains: "zzz"})
	require.NoError(t, err)
	assert.NotNil(t, none.Entries)
	assert.Empty(t, none.Entries)
}

func TestTaskPicker_Execute(t *testing.T) {
	store := testutil.NewMockStore()
	seedScenario(store)
	uc := NewTaskPicker(store, store, nil)

	out, err := uc.Execute(context.Background(), TaskPickerInput{})
	require.NoError(t, err)
	require.Len(t, out.Picker.Data, 2)
	assert.Equal(t, "project-2", out.Picker.Data[0].ID)
	assert.Equal(t, "project-1", out.Picker.Data[1].ID)

	excl, err := uc.Execute(context.Background(), TaskPickerInput{ExcludeTaskID: 2})
	require.NoError(t, err)
	require.Len(t, excl.Picker.Data, 1, "only the task's own project")
	design := excl.Picker.Data[0].Tasks[0]
	require.Len(t, design.Children, 1)
	assert.Equal(t, 3, design.Children[0].ID)
}

func TestParentChoices_Execute(t *testing.T) {
	store := testutil.NewMockStore()
	seedScenario(store)
	uc := NewParentChoices(store, nil, 4)

	out, err := uc.Execute(context.Background(), ParentChoicesInput{TaskID: 2})

	require.NoError(t, err)
	assert.Equal(t, []hierarchy.Entry{
		{ID: 1, Label: "Design", Depth: 0},
		{ID: 3, Label: "    Review", Depth: 1},
	}, out.Choices)

	_, err = uc.Execute(context.Background(), ParentChoicesInput{TaskID: 99})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}
