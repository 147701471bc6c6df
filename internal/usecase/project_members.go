package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/usecase/shared"
)

// NoResponsible is shown when a project has no members.
const NoResponsible = "N/A"

// ProjectDetail is a project with its members resolved. Responsible is the
// name of the first member to join.
type ProjectDetail struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Code        string           `json:"code"`
	Members     []*domain.Person `json:"members"`
	Responsible string           `json:"responsible"`
}

func projectDetail(people domain.PersonRepository, project *domain.Project) (*ProjectDetail, error) {
	detail := &ProjectDetail{
		ID:          project.ID,
		Name:        project.Name,
		Code:        project.Code,
		Members:     make([]*domain.Person, 0, len(project.Members)),
		Responsible: NoResponsible,
	}
	for _, id := range project.Members {
		person, err := people.GetPerson(id)
		if err != nil {
			return nil, fmt.Errorf("get member %d: %w", id, err)
		}
		if person == nil {
			continue
		}
		detail.Members = append(detail.Members, person)
	}
	if len(detail.Members) > 0 {
		detail.Responsible = detail.Members[0].Name
	}
	return detail, nil
}

// ShowProjectInput contains the parameters for showing a project.
type ShowProjectInput struct {
	ProjectID int // Project ID (required)
}

// ShowProjectOutput contains the project with its members.
type ShowProjectOutput struct {
	Project *ProjectDetail
}

// ShowProject is the use case for showing one project and its members.
type ShowProject struct {
	projects domain.ProjectRepository
	people   domain.PersonRepository
}

// NewShowProject creates a new ShowProject use case.
func NewShowProject(projects domain.ProjectRepository, people domain.PersonRepository) *ShowProject {
	return &ShowProject{projects: projects, people: people}
}

// Execute loads the project and resolves its members.
func (uc *ShowProject) Execute(_ context.Context, in ShowProjectInput) (*ShowProjectOutput, error) {
	project, err := shared.GetProject(uc.projects, in.ProjectID)
	if err != nil {
		return nil, err
	}
	detail, err := projectDetail(uc.people, project)
	if err != nil {
		return nil, err
	}
	return &ShowProjectOutput{Project: detail}, nil
}

// AddProjectMemberInput contains the parameters for adding a member.
type AddProjectMemberInput struct {
	ProjectID int // Project ID (required)
	PersonID  int // Person ID (required)
}

// AddProjectMemberOutput contains the project after the change.
type AddProjectMemberOutput struct {
	Project *ProjectDetail
	Added   bool // False when the person already was a member
}

// AddProjectMember is the use case for adding a person to a project.
type AddProjectMember struct {
	projects domain.ProjectRepository
	people   domain.PersonRepository
	logger   domain.Logger
}

// NewAddProjectMember creates a new AddProjectMember use case.
func NewAddProjectMember(projects domain.ProjectRepository, people domain.PersonRepository, logger domain.Logger) *AddProjectMember {
	return &AddProjectMember{projects: projects, people: people, logger: logger}
}

// Execute adds the person to the project's members.
func (uc *AddProjectMember) Execute(_ context.Context, in AddProjectMemberInput) (*AddProjectMemberOutput, error) {
	project, err := shared.GetProject(uc.projects, in.ProjectID)
	if err != nil {
		return nil, err
	}
	person, err := shared.GetPerson(uc.people, in.PersonID)
	if err != nil {
		return nil, err
	}

	added := !project.HasMember(person.ID)
	if added {
		if err := uc.projects.AddMember(project.ID, person.ID); err != nil {
			return nil, fmt.Errorf("add member: %w", err)
		}
		project.Members = append(project.Members, person.ID)
		if uc.logger != nil {
			uc.logger.Info(project.ID, "project", fmt.Sprintf("member added: %s", person))
		}
	}

	detail, err := projectDetail(uc.people, project)
	if err != nil {
		return nil, err
	}
	return &AddProjectMemberOutput{Project: detail, Added: added}, nil
}
