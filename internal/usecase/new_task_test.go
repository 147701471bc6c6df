package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/testutil"
)

func TestNewTask_Execute_Root(t *testing.T) {
	// Setup
	store := testutil.NewMockStore()
	seedScenario(store)
	logger := &testutil.MockLogger{}
	uc := NewNewTask(store, store, store, newClock(), logger)

	// Execute
	out, err := uc.Execute(context.Background(), NewTaskInput{
		ProjectID: 1,
		Name:      "  Launch page  ",
		Priority:  3,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 6, out.Task.ID)
	assert.Equal(t, "Launch page", out.Task.Name)
	assert.Nil(t, out.Task.ParentID)
	assert.Equal(t, "2025-03-14", out.Task.StartDate.String())
	assert.Equal(t, "2025-03-14", out.Task.Deadline.String())
	assert.Nil(t, out.Task.ActualEndDate)

	saved := store.Tasks[6]
	require.NotNil(t, saved)
	assert.Equal(t, 3, saved.Priority)

	require.Len(t, logger.Entries, 1)
	assert.Equal(t, 1, logger.Entries[0].ProjectID)
	assert.Contains(t, logger.Entries[0].Msg, `created #6: "Launch page"`)
}

func TestNewTask_Execute_WithParent(t *testing.T) {
	store := testutil.NewMockStore()
	seedScenario(store)
	uc := NewNewTask(store, store, store, newClock(), nil)

	out, err := uc.Execute(context.Background(), NewTaskInput{
		ProjectID:  1,
		ParentID:   domain.IntPtr(4),
		AssignedTo: domain.IntPtr(1),
		Name:       "Outline",
		StartDate:  domain.NewDate(2025, 4, 1),
		Deadline:   domain.NewDate(2025, 4, 3),
		Progress:   100,
	})

	require.NoError(t, err)
	assert.Equal(t, 4, *store.Tasks[out.Task.ID].ParentID)
	require.NotNil(t, out.Task.ActualEndDate)
	assert.Equal(t, "2025-03-14", out.Task.ActualEndDate.String())

	// The guard saw project 1 only.
	require.Len(t, store.Snapshots, 1)
	for _, task := range store.Snapshots[0] {
		assert.Equal(t, 1, task.ProjectID)
	}
}

func TestNewTask_Execute_RejectedPlacement(t *testing.T) {
	tests := []struct {
		name     string
		parentID int
		reason   domain.RejectReason
	}{
		{"missing parent", 99, domain.RejectParentNotFound},
		{"parent in other project", 5, domain.RejectCrossProject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewMockStore()
			seedScenario(store)
			uc := NewNewTask(store, store, store, newClock(), nil)

			_, err := uc.Execute(context.Background(), NewTaskInput{
				ProjectID: 1,
				ParentID:  domain.IntPtr(tt.parentID),
				Name:      "Child",
			})

			require.ErrorIs(t, err, domain.ErrReparentRejected)
			reason, ok := domain.RejectionReason(err)
			require.True(t, ok)
			assert.Equal(t, tt.reason, reason)
			assert.Len(t, store.Tasks, 5)
		})
	}
}

func TestNewTask_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		in   NewTaskInput
		want error
	}{
		{"empty name", NewTaskInput{ProjectID: 1, Name: "   "}, domain.ErrEmptyName},
		{"progress too high", NewTaskInput{ProjectID: 1, Name: "x", Progress: 101}, domain.ErrInvalidProgress},
		{"progress negative", NewTaskInput{ProjectID: 1, Name: "x", Progress: -1}, domain.ErrInvalidProgress},
		{"deadline before start", NewTaskInput{
			ProjectID: 1, Name: "x",
			StartDate: domain.NewDate(2025, 5, 2),
			Deadline:  domain.NewDate(2025, 5, 1),
		}, domain.ErrDeadlineBeforeStart},
		{"unknown project", NewTaskInput{ProjectID: 9, Name: "x"}, domain.ErrProjectNotFound},
		{"unknown person", NewTaskInput{ProjectID: 1, Name: "x", AssignedTo: domain.IntPtr(9)}, domain.ErrPersonNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewMockStore()
			seedScenario(store)
			uc := NewNewTask(store, store, store, newClock(), nil)

			_, err := uc.Execute(context.Background(), tt.in)

			assert.ErrorIs(t, err, tt.want)
			assert.Len(t, store.Tasks, 5)
		})
	}
}

func TestNewTask_Execute_StoreError(t *testing.T) {
	store := testutil.NewMockStore()
	seedScenario(store)
	store.CreateErr = errors.New("disk full")
	uc := NewNewTask(store, store, store, newClock(), nil)

	_, err := uc.Execute(context.Background(), NewTaskInput{ProjectID: 1, Name: "x"})

	assert.ErrorContains(t, err, "create task: disk full")
}
