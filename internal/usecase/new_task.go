package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/hierarchy"
	"github.com/runoshun/teamtasks/internal/usecase/shared"
)

// NewTaskInput contains the parameters for creating a new task.
// Fields are ordered to minimize memory padding.
type NewTaskInput struct {
	ParentID   *int        // Parent task ID (optional, nil = root task)
	AssignedTo *int        // Assigned person ID (optional)
	Name       string      // Task name (required)
	StartDate  domain.Date // Planned start (zero = today)
	Deadline   domain.Date // Planned end (zero = same as start)
	ProjectID  int         // Owning project (required)
	Priority   int         // Lower value = higher precedence
	Progress   int         // Percentage complete
}

// NewTaskOutput contains the result of creating a new task.
type NewTaskOutput struct {
	Task *domain.Task // The created task
}

// NewTask is the use case for creating a new task.
type NewTask struct {
	tasks    domain.TaskRepository
	projects domain.ProjectRepository
	people   domain.PersonRepository
	clock    domain.Clock
	logger   domain.Logger
}

// NewNewTask creates a new NewTask use case.
func NewNewTask(
	tasks domain.TaskRepository,
	projects domain.ProjectRepository,
	people domain.PersonRepository,
	clock domain.Clock,
	logger domain.Logger,
) *NewTask {
	return &NewTask{
		tasks:    tasks,
		projects: projects,
		people:   people,
		clock:    clock,
		logger:   logger,
	}
}

// Execute creates a new task with the given input. The parent, if any, is
// checked by the store under its write lock.
func (uc *NewTask) Execute(_ context.Context, in NewTaskInput) (*NewTaskOutput, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrEmptyName
	}

	today := dateOf(uc.clock)
	start := in.StartDate
	if start.IsZero() {
		start = today
	}
	deadline := in.Deadline
	if deadline.IsZero() {
		deadline = start
	}
	if err := checkSchedule(start, deadline, in.Progress); err != nil {
		return nil, err
	}

	if _, err := shared.GetProject(uc.projects, in.ProjectID); err != nil {
		return nil, err
	}
	if in.AssignedTo != nil {
		if _, err := shared.GetPerson(uc.people, *in.AssignedTo); err != nil {
			return nil, err
		}
	}

	task := &domain.Task{
		ProjectID:  in.ProjectID,
		ParentID:   in.ParentID,
		AssignedTo: in.AssignedTo,
		Name:       name,
		StartDate:  start,
		Deadline:   deadline,
		Priority:   in.Priority,
		Progress:   in.Progress,
	}
	markCompletion(task, today)

	if err := uc.tasks.Create(task, hierarchy.PlacementGuard(in.ProjectID, in.ParentID)); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info(task.ProjectID, "task", fmt.Sprintf("created #%d: %q%s", task.ID, name, parentSuffix(task.ParentID)))
	}
	return &NewTaskOutput{Task: task}, nil
}

// checkSchedule validates the date range and progress of a task.
func checkSchedule(start, deadline domain.Date, progress int) error {
	if progress < 0 || progress > 100 {
		return domain.ErrInvalidProgress
	}
	if !start.IsZero() && !deadline.IsZero() && deadline.Before(start) {
		return fmt.Errorf("%w: %s < %s", domain.ErrDeadlineBeforeStart, deadline, start)
	}
	return nil
}

// markCompletion stamps ActualEndDate when a task reaches 100% and clears it
// when the task is reopened.
func markCompletion(task *domain.Task, today domain.Date) {
	switch {
	case task.Progress >= 100 && task.ActualEndDate == nil:
		task.ActualEndDate = &today
	case task.Progress < 100:
		task.ActualEndDate = nil
	}
}

func dateOf(clock domain.Clock) domain.Date {
	now := clock.Now()
	return domain.NewDate(now.Year(), now.Month(), now.Day())
}

func parentSuffix(parentID *int) string {
	if parentID == nil {
		return ""
	}
	return fmt.Sprintf(" under #%d", *parentID)
}
