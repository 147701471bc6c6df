package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/hierarchy"
	"github.com/runoshun/teamtasks/internal/usecase/shared"
)

// ListProjectsInput contains the parameters for listing projects.
type ListProjectsInput struct{}

// ListProjectsOutput contains every project with its root tasks nested.
type ListProjectsOutput struct {
	Projects  []hierarchy.ProjectTree
	Anomalies []hierarchy.Anomaly
}

// ListProjects is the use case for listing projects with their task trees.
type ListProjects struct {
	projects domain.ProjectRepository
	tasks    domain.TaskRepository
	logger   domain.Logger
}

// NewListProjects creates a new ListProjects use case.
func NewListProjects(projects domain.ProjectRepository, tasks domain.TaskRepository, logger domain.Logger) *ListProjects {
	return &ListProjects{projects: projects, tasks: tasks, logger: logger}
}

// Execute lists projects by name, each with its task forest.
func (uc *ListProjects) Execute(_ context.Context, _ ListProjectsInput) (*ListProjectsOutput, error) {
	projects, err := uc.projects.ListProjects()
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	forest, err := shared.LoadForest(uc.tasks, uc.logger, domain.TaskFilter{})
	if err != nil {
		return nil, err
	}
	return &ListProjectsOutput{
		Projects:  hierarchy.ProjectTrees(projects, forest),
		Anomalies: forest.Anomalies,
	}, nil
}
