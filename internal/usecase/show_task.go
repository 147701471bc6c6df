package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/hierarchy"
	"github.com/runoshun/teamtasks/internal/usecase/shared"
)

// ShowTaskInput contains the parameters for showing a task.
type ShowTaskInput struct {
	TaskID int // Task ID (required)
}

// ShowTaskOutput contains the result of showing a task.
type ShowTaskOutput struct {
	Task      *domain.Task      // The stored task
	Parent    *domain.Task      // Its parent, nil for root tasks
	Detail    hierarchy.TaskDTO // The task with its subtasks nested
	Path      []*domain.Task    // Ancestors from the root down, excluding the task
	Anomalies []hierarchy.Anomaly
}

// ShowTask is the use case for displaying task details.
type ShowTask struct {
	tasks    domain.TaskRepository
	projects domain.ProjectRepository
	people   domain.PersonRepository
	logger   domain.Logger
}

// NewShowTask creates a new ShowTask use case.
func NewShowTask(
	tasks domain.TaskRepository,
	projects domain.ProjectRepository,
	people domain.PersonRepository,
	logger domain.Logger,
) *ShowTask {
	return &ShowTask{tasks: tasks, projects: projects, people: people, logger: logger}
}

// Execute retrieves the task together with its subtree and ancestors.
func (uc *ShowTask) Execute(_ context.Context, in ShowTaskInput) (*ShowTaskOutput, error) {
	task, err := shared.GetTask(uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}
	forest, err := shared.LoadProjectForest(uc.tasks, uc.logger, task.ProjectID)
	if err != nil {
		return nil, err
	}
	node := forest.Node(task.ID)
	if node == nil {
		return nil, fmt.Errorf("task #%d missing from project %d: %w", task.ID, task.ProjectID, domain.ErrTaskNotFound)
	}
	names, _, err := shared.LoadNames(uc.projects, uc.people)
	if err != nil {
		return nil, err
	}

	out := &ShowTaskOutput{
		Task:      task,
		Detail:    hierarchy.SerializeTasks([]*hierarchy.Node{node}, names)[0],
		Path:      ancestors(forest, task),
		Anomalies: forest.AnomaliesFor(task.ProjectID),
	}
	if len(out.Path) > 0 {
		out.Parent = out.Path[len(out.Path)-1]
	}
	return out, nil
}

// ancestors walks up the forest from task. The forest is acyclic, so the
// walk ends at a root.
func ancestors(forest *hierarchy.Forest, task *domain.Task) []*domain.Task {
	var path []*domain.Task
	cur := task
	for cur.ParentID != nil {
		parent := forest.Node(*cur.ParentID)
		if parent == nil || !isChild(parent, cur.ID) {
			break
		}
		path = append(path, parent.Task)
		cur = parent.Task
	}
	slices.Reverse(path)
	return path
}

func isChild(parent *hierarchy.Node, id int) bool {
	for _, c := range parent.Children {
		if c.Task.ID == id {
			return true
		}
	}
	return false
}
