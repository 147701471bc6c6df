package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/teamtasks/internal/domain"
)

// NewProjectInput contains the parameters for creating a project.
type NewProjectInput struct {
	Name string // Project name (required, unique)
	Code string // Short code (required, unique)
}

// NewProjectOutput contains the result of creating a project.
type NewProjectOutput struct {
	Project *domain.Project
}

// NewProject is the use case for creating a project.
type NewProject struct {
	projects domain.ProjectRepository
	logger   domain.Logger
}

// NewNewProject creates a new NewProject use case.
func NewNewProject(projects domain.ProjectRepository, logger domain.Logger) *NewProject {
	return &NewProject{projects: projects, logger: logger}
}

// Execute creates the project.
func (uc *NewProject) Execute(_ context.Context, in NewProjectInput) (*NewProjectOutput, error) {
	name := strings.TrimSpace(in.Name)
	code := strings.TrimSpace(in.Code)
	if name == "" {
		return nil, domain.ErrEmptyName
	}
	if code == "" {
		return nil, domain.ErrEmptyCode
	}

	project := &domain.Project{Name: name, Code: code}
	if err := uc.projects.CreateProject(project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info(project.ID, "project", fmt.Sprintf("created: %q (%s)", name, code))
	}
	return &NewProjectOutput{Project: project}, nil
}
