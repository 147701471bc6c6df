package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/usecase/shared"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	TaskID int // Task ID to delete (required)
}

// DeleteTaskOutput contains the result of deleting a task.
type DeleteTaskOutput struct {
	Deleted []int // Removed task IDs, subtasks before their parents
}

// DeleteTask is the use case for deleting a task and its subtasks.
type DeleteTask struct {
	tasks  domain.TaskRepository
	logger domain.Logger
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(tasks domain.TaskRepository, logger domain.Logger) *DeleteTask {
	return &DeleteTask{tasks: tasks, logger: logger}
}

// Execute deletes the task. Subtasks are deleted with it, never orphaned.
func (uc *DeleteTask) Execute(_ context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	task, err := shared.GetTask(uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}

	deleted, err := uc.tasks.Delete(task.ID)
	if err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info(task.ProjectID, "task", fmt.Sprintf("deleted #%d %q with %d subtask(s)", task.ID, task.Name, len(deleted)-1))
	}
	return &DeleteTaskOutput{Deleted: deleted}, nil
}
