package usecase

import (
	"context"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/hierarchy"
	"github.com/runoshun/teamtasks/internal/usecase/shared"
)

// ShowProjectTreeInput contains the parameters for showing a project tree.
type ShowProjectTreeInput struct {
	ProjectID int // Project ID (required)
}

// ShowProjectTreeOutput contains a project with its nested tasks.
type ShowProjectTreeOutput struct {
	Tree      hierarchy.ProjectTree
	Anomalies []hierarchy.Anomaly
}

// ShowProjectTree is the use case for showing one project's task tree.
type ShowProjectTree struct {
	projects domain.ProjectRepository
	tasks    domain.TaskRepository
	logger   domain.Logger
}

// NewShowProjectTree creates a new ShowProjectTree use case.
func NewShowProjectTree(projects domain.ProjectRepository, tasks domain.TaskRepository, logger domain.Logger) *ShowProjectTree {
	return &ShowProjectTree{projects: projects, tasks: tasks, logger: logger}
}

// Execute builds the project's forest and serializes it.
func (uc *ShowProjectTree) Execute(_ context.Context, in ShowProjectTreeInput) (*ShowProjectTreeOutput, error) {
	project, err := shared.GetProject(uc.projects, in.ProjectID)
	if err != nil {
		return nil, err
	}
	forest, err := shared.LoadProjectForest(uc.tasks, uc.logger, project.ID)
	if err != nil {
		return nil, err
	}
	return &ShowProjectTreeOutput{
		Tree:      hierarchy.ProjectTrees([]*domain.Project{project}, forest)[0],
		Anomalies: forest.Anomalies,
	}, nil
}
