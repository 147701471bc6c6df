package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/hierarchy"
	"github.com/runoshun/teamtasks/internal/usecase/shared"
)

// IndentedTasksInput contains the parameters for the indented task list.
type IndentedTasksInput struct {
	ProjectID    *int   // Limit to one project (nil = all, ordered by project name)
	AssignedTo   *int   // Only tasks assigned to this person
	NameContains string // Only tasks whose name contains this, ignoring case
}

// IndentedTasksOutput contains the flattened, depth-annotated task list.
type IndentedTasksOutput struct {
	Entries   []hierarchy.Entry
	Anomalies []hierarchy.Anomaly
}

// IndentedTasks is the use case behind the admin-style indented task list.
type IndentedTasks struct {
	tasks       domain.TaskRepository
	projects    domain.ProjectRepository
	logger      domain.Logger
	indentWidth int
}

// NewIndentedTasks creates a new IndentedTasks use case. indentWidth is the
// number of spaces per depth level in labels.
func NewIndentedTasks(tasks domain.TaskRepository, projects domain.ProjectRepository, logger domain.Logger, indentWidth int) *IndentedTasks {
	return &IndentedTasks{tasks: tasks, projects: projects, logger: logger, indentWidth: indentWidth}
}

// Execute flattens the forest in pre-order, one project after another.
// Tasks left out by the assignee or name criteria drop out of the list
// while the remaining rows keep their depth in the full tree.
func (uc *IndentedTasks) Execute(_ context.Context, in IndentedTasksInput) (*IndentedTasksOutput, error) {
	var projectIDs []int
	if in.ProjectID != nil {
		project, err := shared.GetProject(uc.projects, *in.ProjectID)
		if err != nil {
			return nil, err
		}
		projectIDs = []int{project.ID}
	} else {
		projects, err := uc.projects.ListProjects()
		if err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		projectIDs = make([]int, 0, len(projects))
		for _, p := range projects {
			projectIDs = append(projectIDs, p.ID)
		}
	}

	forest, err := shared.LoadForest(uc.tasks, uc.logger, domain.TaskFilter{ProjectID: in.ProjectID})
	if err != nil {
		return nil, err
	}
	entries := hierarchy.FlattenForest(forest, projectIDs, hierarchy.Indent(uc.indentWidth))
	match := domain.TaskFilter{AssignedTo: in.AssignedTo, NameContains: in.NameContains}
	entries = slices.DeleteFunc(entries, func(e hierarchy.Entry) bool {
		return !match.Matches(forest.Node(e.ID).Task)
	})
	return &IndentedTasksOutput{
		Entries:   entries,
		Anomalies: forest.Anomalies,
	}, nil
}
