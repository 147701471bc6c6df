package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/hierarchy"
	"github.com/runoshun/teamtasks/internal/usecase/shared"
)

// TaskPickerInput contains the parameters for building picker data.
type TaskPickerInput struct {
	ExcludeTaskID int // Leave this task and its subtree out (0 = none)
}

// TaskPickerOutput contains the nested picker data.
type TaskPickerOutput struct {
	Picker    hierarchy.Picker
	Anomalies []hierarchy.Anomaly
}

// TaskPicker is the use case behind the hierarchical parent picker.
type TaskPicker struct {
	tasks    domain.TaskRepository
	projects domain.ProjectRepository
	logger   domain.Logger
}

// NewTaskPicker creates a new TaskPicker use case.
func NewTaskPicker(tasks domain.TaskRepository, projects domain.ProjectRepository, logger domain.Logger) *TaskPicker {
	return &TaskPicker{tasks: tasks, projects: projects, logger: logger}
}

// Execute groups every project's task tree for the picker. When a task is
// excluded only its own project is offered, since parents cannot come from
// another project.
func (uc *TaskPicker) Execute(_ context.Context, in TaskPickerInput) (*TaskPickerOutput, error) {
	projects, err := uc.projects.ListProjects()
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	filter := domain.TaskFilter{}
	if in.ExcludeTaskID != 0 {
		task, err := shared.GetTask(uc.tasks, in.ExcludeTaskID)
		if err != nil {
			return nil, err
		}
		filter.ProjectID = &task.ProjectID
		projects = onlyProject(projects, task.ProjectID)
	}
	forest, err := shared.LoadForest(uc.tasks, uc.logger, filter)
	if err != nil {
		return nil, err
	}
	return &TaskPickerOutput{
		Picker:    hierarchy.Nested(projects, forest, in.ExcludeTaskID),
		Anomalies: forest.Anomalies,
	}, nil
}

func onlyProject(projects []*domain.Project, id int) []*domain.Project {
	for _, p := range projects {
		if p.ID == id {
			return []*domain.Project{p}
		}
	}
	return nil
}

// ParentChoicesInput contains the parameters for listing parent choices.
type ParentChoicesInput struct {
	TaskID int // Task about to be moved (required)
}

// ParentChoicesOutput lists the tasks the task may be moved under.
type ParentChoicesOutput struct {
	Task      *domain.Task
	Choices   []hierarchy.Entry
	Anomalies []hierarchy.Anomaly
}

// ParentChoices is the use case behind the indented parent-assignment list.
type ParentChoices struct {
	tasks       domain.TaskRepository
	logger      domain.Logger
	indentWidth int
}

// NewParentChoices creates a new ParentChoices use case.
func NewParentChoices(tasks domain.TaskRepository, logger domain.Logger, indentWidth int) *ParentChoices {
	return &ParentChoices{tasks: tasks, logger: logger, indentWidth: indentWidth}
}

// Execute lists the indented tasks of the task's project minus the task
// and its descendants. The list is advisory; the store still validates
// the chosen parent when it is written.
func (uc *ParentChoices) Execute(_ context.Context, in ParentChoicesInput) (*ParentChoicesOutput, error) {
	task, err := shared.GetTask(uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}
	forest, err := shared.LoadProjectForest(uc.tasks, uc.logger, task.ProjectID)
	if err != nil {
		return nil, err
	}
	choices := hierarchy.ParentChoices(forest, task.ID, hierarchy.Indent(uc.indentWidth))
	if choices == nil {
		choices = []hierarchy.Entry{}
	}
	return &ParentChoicesOutput{
		Task:      task,
		Choices:   choices,
		Anomalies: forest.Anomalies,
	}, nil
}
