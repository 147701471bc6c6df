// Package shared provides shared utilities for use cases.
package shared

import (
	"fmt"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/hierarchy"
)

// GetTask retrieves a task by ID and returns domain.ErrTaskNotFound if not found.
// This centralizes the common pattern of:
//
//	task, err := repo.Get(taskID)
//	if err != nil { return nil, fmt.Errorf("get task: %w", err) }
//	if task == nil { return nil, domain.ErrTaskNotFound }
func GetTask(repo domain.TaskRepository, taskID int) (*domain.Task, error) {
	task, err := repo.Get(taskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

// GetProject retrieves a project by ID and returns domain.ErrProjectNotFound
// if not found.
func GetProject(repo domain.ProjectRepository, projectID int) (*domain.Project, error) {
	project, err := repo.GetProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	if project == nil {
		return nil, domain.ErrProjectNotFound
	}
	return project, nil
}

// GetPerson retrieves a person by ID and returns domain.ErrPersonNotFound
// if not found.
func GetPerson(repo domain.PersonRepository, personID int) (*domain.Person, error) {
	person, err := repo.GetPerson(personID)
	if err != nil {
		return nil, fmt.Errorf("get person: %w", err)
	}
	if person == nil {
		return nil, domain.ErrPersonNotFound
	}
	return person, nil
}

// LoadNames resolves the project and person names task DTOs display.
func LoadNames(projects domain.ProjectRepository, people domain.PersonRepository) (hierarchy.Names, []*domain.Project, error) {
	ps, err := projects.ListProjects()
	if err != nil {
		return hierarchy.Names{}, nil, fmt.Errorf("list projects: %w", err)
	}
	folks, err := people.ListPeople()
	if err != nil {
		return hierarchy.Names{}, nil, fmt.Errorf("list people: %w", err)
	}
	return hierarchy.NamesFrom(ps, folks), ps, nil
}
