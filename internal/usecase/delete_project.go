package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/usecase/shared"
)

// DeleteProjectInput contains the parameters for deleting a project.
type DeleteProjectInput struct {
	ProjectID int // Project ID (required)
}

// DeleteProjectOutput contains the result of deleting a project.
type DeleteProjectOutput struct {
	Project *domain.Project // The removed project
}

// DeleteProject is the use case for deleting a project and all its tasks.
type DeleteProject struct {
	projects domain.ProjectRepository
	logger   domain.Logger
}

// NewDeleteProject creates a new DeleteProject use case.
func NewDeleteProject(projects domain.ProjectRepository, logger domain.Logger) *DeleteProject {
	return &DeleteProject{projects: projects, logger: logger}
}

// Execute deletes the project. Its tasks go with it.
func (uc *DeleteProject) Execute(_ context.Context, in DeleteProjectInput) (*DeleteProjectOutput, error) {
	project, err := shared.GetProject(uc.projects, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := uc.projects.DeleteProject(project.ID); err != nil {
		return nil, fmt.Errorf("delete project: %w", err)
	}
	if uc.logger != nil {
		uc.logger.Info(project.ID, "project", fmt.Sprintf("deleted: %q", project.Name))
	}
	return &DeleteProjectOutput{Project: project}, nil
}
