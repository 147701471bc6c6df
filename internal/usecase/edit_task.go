package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/hierarchy"
	"github.com/runoshun/teamtasks/internal/usecase/shared"
)

// EditTaskInput contains the parameters for editing a task.
// All fields except TaskID are optional. Only non-nil fields are updated.
// Fields are ordered to minimize memory padding.
type EditTaskInput struct {
	Name       *string      // New name
	StartDate  *domain.Date // New planned start
	Deadline   *domain.Date // New planned end
	AssignedTo *int         // New assignee
	Priority   *int         // New priority
	Progress   *int         // New progress
	ParentID   *int         // New parent task
	TaskID     int          // Task ID to edit (required)
	MakeRoot   bool         // Detach the task from its parent
	Unassign   bool         // Clear the assignee
}

func (in EditTaskInput) changesParent() bool {
	return in.ParentID != nil || in.MakeRoot
}

func (in EditTaskInput) changesFields() bool {
	return in.Name != nil || in.StartDate != nil || in.Deadline != nil ||
		in.AssignedTo != nil || in.Unassign || in.Priority != nil || in.Progress != nil
}

// EditTaskOutput contains the result of editing a task.
type EditTaskOutput struct {
	Task          *domain.Task // The updated task
	ParentChanged bool         // True if the parent link was rewritten
}

// EditTask is the use case for editing an existing task.
type EditTask struct {
	tasks  domain.TaskRepository
	people domain.PersonRepository
	clock  domain.Clock
	logger domain.Logger
}

// NewEditTask creates a new EditTask use case.
func NewEditTask(tasks domain.TaskRepository, people domain.PersonRepository, clock domain.Clock, logger domain.Logger) *EditTask {
	return &EditTask{tasks: tasks, people: people, clock: clock, logger: logger}
}

// Execute edits a task with the given input.
//
// A parent change is validated by the store inside its write lock. When
// fields change too, both land in one write, so a refused parent or a
// failed save leaves the task untouched. Refusals are returned as
// *domain.ReparentError.
func (uc *EditTask) Execute(_ context.Context, in EditTaskInput) (*EditTaskOutput, error) {
	if !in.changesParent() && !in.changesFields() {
		return nil, domain.ErrNoFieldsToUpdate
	}
	if in.ParentID != nil && in.MakeRoot {
		return nil, domain.ErrParentConflict
	}
	if in.AssignedTo != nil && in.Unassign {
		return nil, domain.ErrAssigneeConflict
	}

	task, err := shared.GetTask(uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}

	if err := uc.applyFields(task, in); err != nil {
		return nil, err
	}

	out := &EditTaskOutput{Task: task}
	target := in.ParentID
	switch {
	case in.changesParent() && in.changesFields():
		if err := uc.tasks.UpdateAndReparent(task, target, hierarchy.ReparentGuard(task.ID, target)); err != nil {
			uc.logRejection(task, err)
			return nil, fmt.Errorf("save task: %w", err)
		}
	case in.changesParent():
		if err := uc.tasks.Reparent(task.ID, target, hierarchy.ReparentGuard(task.ID, target)); err != nil {
			uc.logRejection(task, err)
			return nil, fmt.Errorf("set parent: %w", err)
		}
	default:
		if err := uc.tasks.Update(task); err != nil {
			return nil, fmt.Errorf("save task: %w", err)
		}
	}

	if in.changesParent() {
		task.ParentID = target
		out.ParentChanged = true
		if uc.logger != nil {
			uc.logger.Info(task.ProjectID, "hierarchy", fmt.Sprintf("task #%d moved%s", task.ID, rootOrParent(target)))
		}
	}
	if in.changesFields() && uc.logger != nil {
		uc.logger.Debug(task.ProjectID, "task", fmt.Sprintf("updated #%d", task.ID))
	}
	return out, nil
}

// applyFields copies the requested changes onto task and validates the
// result. Nothing is written.
func (uc *EditTask) applyFields(task *domain.Task, in EditTaskInput) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return domain.ErrEmptyName
		}
		task.Name = name
	}
	if in.StartDate != nil {
		task.StartDate = *in.StartDate
	}
	if in.Deadline != nil {
		task.Deadline = *in.Deadline
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.Progress != nil {
		task.Progress = *in.Progress
	}
	if err := checkSchedule(task.StartDate, task.Deadline, task.Progress); err != nil {
		return err
	}
	if in.Progress != nil {
		markCompletion(task, dateOf(uc.clock))
	}

	switch {
	case in.Unassign:
		task.AssignedTo = nil
	case in.AssignedTo != nil:
		if _, err := shared.GetPerson(uc.people, *in.AssignedTo); err != nil {
			return err
		}
		task.AssignedTo = domain.IntPtr(*in.AssignedTo)
	}
	return nil
}

func (uc *EditTask) logRejection(task *domain.Task, err error) {
	if uc.logger == nil {
		return
	}
	if reason, ok := domain.RejectionReason(err); ok {
		level := uc.logger.Info
		if reason == domain.RejectCorruptHierarchy {
			level = uc.logger.Error
		}
		level(task.ProjectID, "hierarchy", err.Error())
		return
	}
	if errors.Is(err, domain.ErrDataIntegrity) {
		uc.logger.Error(task.ProjectID, "hierarchy", err.Error())
	}
}

func rootOrParent(parentID *int) string {
	if parentID == nil {
		return " to root"
	}
	return fmt.Sprintf(" under #%d", *parentID)
}
