package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/hierarchy"
	"github.com/runoshun/teamtasks/internal/usecase/shared"
)

// ExportTasksInput contains the parameters for exporting a document.
type ExportTasksInput struct {
	ProjectID *int // Export one project (nil = all)
}

// ExportTasksOutput contains the exported document.
type ExportTasksOutput struct {
	Document  Document
	Anomalies []hierarchy.Anomaly
}

// ExportTasks is the use case for writing projects and their task trees
// out as a Document that ImportTasks can read back.
type ExportTasks struct {
	tasks    domain.TaskRepository
	projects domain.ProjectRepository
	people   domain.PersonRepository
	logger   domain.Logger
}

// NewExportTasks creates a new ExportTasks use case.
func NewExportTasks(
	tasks domain.TaskRepository,
	projects domain.ProjectRepository,
	people domain.PersonRepository,
	logger domain.Logger,
) *ExportTasks {
	return &ExportTasks{tasks: tasks, projects: projects, people: people, logger: logger}
}

// Execute exports people and projects in name order with tasks nested in
// forest order.
func (uc *ExportTasks) Execute(_ context.Context, in ExportTasksInput) (*ExportTasksOutput, error) {
	var projects []*domain.Project
	if in.ProjectID != nil {
		project, err := shared.GetProject(uc.projects, *in.ProjectID)
		if err != nil {
			return nil, err
		}
		projects = []*domain.Project{project}
	} else {
		all, err := uc.projects.ListProjects()
		if err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		projects = all
	}
	people, err := uc.people.ListPeople()
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	names := hierarchy.NamesFrom(projects, people)

	forest, err := shared.LoadForest(uc.tasks, uc.logger, domain.TaskFilter{ProjectID: in.ProjectID})
	if err != nil {
		return nil, err
	}

	doc := Document{Projects: make([]ProjectDoc, 0, len(projects))}
	for _, p := range people {
		doc.People = append(doc.People, PersonDoc{Name: p.Name, Email: p.Email, Position: p.Position, Company: p.Company})
	}
	for _, p := range projects {
		var members []string
		for _, id := range p.Members {
			if name, ok := names.People[id]; ok {
				members = append(members, name)
			}
		}
		doc.Projects = append(doc.Projects, ProjectDoc{
			Name:    p.Name,
			Code:    p.Code,
			Members: members,
			Tasks: hierarchy.Map(forest.Roots(p.ID), func(n *hierarchy.Node, children []TaskDoc) TaskDoc {
				t := n.Task
				d := TaskDoc{
					Name:      t.Name,
					StartDate: t.StartDate,
					Deadline:  t.Deadline,
					Priority:  t.Priority,
					Progress:  t.Progress,
				}
				if t.AssignedTo != nil {
					d.Assignee = names.People[*t.AssignedTo]
				}
				if len(children) > 0 {
					d.Subtasks = children
				}
				return d
			}),
		})
	}
	return &ExportTasksOutput{Document: doc, Anomalies: forest.Anomalies}, nil
}
