package usecase

import (
	"context"
	"slices"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/hierarchy"
	"github.com/runoshun/teamtasks/internal/usecase/shared"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	ProjectID    *int   // Filter by project (nil = all projects)
	AssignedTo   *int   // Only tasks assigned to this person
	NameContains string // Only tasks whose name contains this, ignoring case
	RootsOnly    bool   // Only list root tasks; subtasks stay nested below them
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Tasks     []hierarchy.TaskDTO // Tasks, each carrying its nested subtasks
	Anomalies []hierarchy.Anomaly
}

// ListTasks is the use case for listing tasks in their rich form.
type ListTasks struct {
	tasks    domain.TaskRepository
	projects domain.ProjectRepository
	people   domain.PersonRepository
	logger   domain.Logger
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(
	tasks domain.TaskRepository,
	projects domain.ProjectRepository,
	people domain.PersonRepository,
	logger domain.Logger,
) *ListTasks {
	return &ListTasks{tasks: tasks, projects: projects, people: people, logger: logger}
}

// Execute lists tasks ordered by (project name, priority, name). Without
// RootsOnly every task is listed with its subtree nested, so a subtask
// appears both on its own and below its parent. The assignee and name
// criteria pick which tasks are listed; nested subtrees stay complete.
func (uc *ListTasks) Execute(_ context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	if in.ProjectID != nil {
		if _, err := shared.GetProject(uc.projects, *in.ProjectID); err != nil {
			return nil, err
		}
	}
	match := domain.TaskFilter{AssignedTo: in.AssignedTo, NameContains: in.NameContains}
	forest, err := shared.LoadForest(uc.tasks, uc.logger, domain.TaskFilter{ProjectID: in.ProjectID})
	if err != nil {
		return nil, err
	}
	names, _, err := shared.LoadNames(uc.projects, uc.people)
	if err != nil {
		return nil, err
	}

	var nodes []*hierarchy.Node
	for _, projectID := range forest.Projects() {
		if in.RootsOnly {
			for _, root := range forest.Roots(projectID) {
				if match.Matches(root.Task) {
					nodes = append(nodes, root)
				}
			}
			continue
		}
		for _, e := range hierarchy.Flatten(forest.Roots(projectID), nil) {
			if n := forest.Node(e.ID); match.Matches(n.Task) {
				nodes = append(nodes, n)
			}
		}
	}
	slices.SortStableFunc(nodes, func(a, b *hierarchy.Node) int {
		return domain.CompareTasksAcross(names.Projects[a.Task.ProjectID], a.Task, names.Projects[b.Task.ProjectID], b.Task)
	})

	return &ListTasksOutput{
		Tasks:     hierarchy.SerializeTasks(nodes, names),
		Anomalies: forest.Anomalies,
	}, nil
}
