package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/teamtasks/internal/domain"
)

// ImportTasksInput contains the parameters for importing a document.
type ImportTasksInput struct {
	Document Document
	DryRun   bool // Validate without writing anything
}

// ImportTasksOutput contains the result of an import.
// Fields are ordered to minimize memory padding.
type ImportTasksOutput struct {
	Tasks           []*domain.Task // Created tasks, parents before children (empty on dry run)
	PeopleCreated   int
	ProjectsCreated int
	TasksCreated    int
}

// ImportTasks is the use case for loading projects, people and task trees
// from a Document. Existing projects are matched by code and existing
// people by name; everything else is created.
type ImportTasks struct {
	projects domain.ProjectRepository
	people   domain.PersonRepository
	newTask  *NewTask
	logger   domain.Logger
}

// NewImportTasks creates a new ImportTasks use case.
func NewImportTasks(
	tasks domain.TaskRepository,
	projects domain.ProjectRepository,
	people domain.PersonRepository,
	clock domain.Clock,
	logger domain.Logger,
) *ImportTasks {
	return &ImportTasks{
		projects: projects,
		people:   people,
		newTask:  NewNewTask(tasks, projects, people, clock, logger),
		logger:   logger,
	}
}

type pendingTask struct {
	doc      *TaskDoc
	parentID *int
	path     string
}

// Execute validates the whole document first and only then writes it.
func (uc *ImportTasks) Execute(ctx context.Context, in ImportTasksInput) (*ImportTasksOutput, error) {
	existingPeople, err := uc.people.ListPeople()
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	personIDs := make(map[string]int, len(existingPeople))
	for _, p := range existingPeople {
		if _, seen := personIDs[p.Name]; !seen {
			personIDs[p.Name] = p.ID
		}
	}
	existingProjects, err := uc.projects.ListProjects()
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	projectIDs := make(map[string]int, len(existingProjects))
	for _, p := range existingProjects {
		projectIDs[p.Code] = p.ID
	}

	if err := validateDocument(in.Document, personIDs, existingProjects); err != nil {
		return nil, err
	}

	out := &ImportTasksOutput{Tasks: []*domain.Task{}}
	for _, pd := range in.Document.People {
		if _, ok := personIDs[pd.Name]; ok {
			continue
		}
		out.PeopleCreated++
		if in.DryRun {
			personIDs[pd.Name] = 0
			continue
		}
		person := &domain.Person{Name: pd.Name, Email: pd.Email, Position: pd.Position, Company: pd.Company}
		if err := uc.people.CreatePerson(person); err != nil {
			return nil, fmt.Errorf("create person %q: %w", pd.Name, err)
		}
		personIDs[pd.Name] = person.ID
	}

	for i := range in.Document.Projects {
		pd := &in.Document.Projects[i]
		projectID, ok := projectIDs[pd.Code]
		if !ok {
			out.ProjectsCreated++
			if !in.DryRun {
				project := &domain.Project{Name: pd.Name, Code: pd.Code}
				if err := uc.projects.CreateProject(project); err != nil {
					return nil, fmt.Errorf("create project %q: %w", pd.Code, err)
				}
				projectID = project.ID
				projectIDs[pd.Code] = projectID
			}
		}
		if in.DryRun {
			out.TasksCreated += countTasks(pd.Tasks)
			continue
		}
		for _, name := range pd.Members {
			if err := uc.projects.AddMember(projectID, personIDs[name]); err != nil {
				return out, fmt.Errorf("add member %q to %q: %w", name, pd.Code, err)
			}
		}
		created, err := uc.importTree(ctx, projectID, pd.Tasks, personIDs)
		out.Tasks = append(out.Tasks, created...)
		out.TasksCreated += len(created)
		if err != nil {
			return out, err
		}
	}

	if uc.logger != nil && !in.DryRun {
		uc.logger.Info(0, "import", fmt.Sprintf("imported %d project(s), %d person(s), %d task(s)",
			out.ProjectsCreated, out.PeopleCreated, out.TasksCreated))
	}
	return out, nil
}

// importTree creates tasks parents first, walking the document with an
// explicit stack so sibling order is kept.
func (uc *ImportTasks) importTree(ctx context.Context, projectID int, docs []TaskDoc, personIDs map[string]int) ([]*domain.Task, error) {
	var created []*domain.Task
	stack := make([]pendingTask, 0, len(docs))
	for i := len(docs) - 1; i >= 0; i-- {
		stack = append(stack, pendingTask{doc: &docs[i]})
	}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		in := NewTaskInput{
			ProjectID: projectID,
			ParentID:  p.parentID,
			Name:      p.doc.Name,
			StartDate: p.doc.StartDate,
			Deadline:  p.doc.Deadline,
			Priority:  p.doc.Priority,
			Progress:  p.doc.Progress,
		}
		if p.doc.Assignee != "" {
			in.AssignedTo = domain.IntPtr(personIDs[p.doc.Assignee])
		}
		res, err := uc.newTask.Execute(ctx, in)
		if err != nil {
			return created, fmt.Errorf("import task %q: %w", p.doc.Name, err)
		}
		created = append(created, res.Task)

		kids := p.doc.Subtasks
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, pendingTask{doc: &kids[i], parentID: domain.IntPtr(res.Task.ID)})
		}
	}
	return created, nil
}

// validateDocument checks every entry before anything is written.
// Projects whose code is already stored are reused; every other project
// is created, so its name must be free both in the store and in doc.
func validateDocument(doc Document, knownPeople map[string]int, existing []*domain.Project) error {
	people := make(map[string]bool, len(knownPeople)+len(doc.People))
	for name := range knownPeople {
		people[name] = true
	}
	for i, p := range doc.People {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("people[%d]: %w", i, domain.ErrEmptyName)
		}
		people[p.Name] = true
	}

	storedCodes := make(map[string]bool, len(existing))
	names := make(map[string]string, len(existing)+len(doc.Projects)) // name -> code owning it
	for _, p := range existing {
		storedCodes[p.Code] = true
		names[p.Name] = p.Code
	}

	codes := make(map[string]bool, len(doc.Projects))
	for i, p := range doc.Projects {
		where := fmt.Sprintf("projects[%d]", i)
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%s: %w", where, domain.ErrEmptyName)
		}
		if strings.TrimSpace(p.Code) == "" {
			return fmt.Errorf("%s: %w", where, domain.ErrEmptyCode)
		}
		if codes[p.Code] {
			return fmt.Errorf("%s: %w: code %q repeated", where, domain.ErrDuplicateProject, p.Code)
		}
		codes[p.Code] = true
		if !storedCodes[p.Code] {
			if owner, taken := names[p.Name]; taken {
				return fmt.Errorf("%s: %w: name %q already used by %s", where, domain.ErrDuplicateProject, p.Name, owner)
			}
			names[p.Name] = p.Code
		}
		for j, name := range p.Members {
			if !people[name] {
				return fmt.Errorf("%s.members[%d]: %w: %q", where, j, domain.ErrPersonNotFound, name)
			}
		}

		stack := make([]pendingTask, 0, len(p.Tasks))
		for j := range p.Tasks {
			stack = append(stack, pendingTask{doc: &p.Tasks[j], path: fmt.Sprintf("%s.tasks[%d]", where, j)})
		}
		for len(stack) > 0 {
			t := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if strings.TrimSpace(t.doc.Name) == "" {
				return fmt.Errorf("%s: %w", t.path, domain.ErrEmptyName)
			}
			if err := checkSchedule(t.doc.StartDate, t.doc.Deadline, t.doc.Progress); err != nil {
				return fmt.Errorf("%s: %w", t.path, err)
			}
			if t.doc.Assignee != "" && !people[t.doc.Assignee] {
				return fmt.Errorf("%s: %w: %q", t.path, domain.ErrPersonNotFound, t.doc.Assignee)
			}
			for j := range t.doc.Subtasks {
				stack = append(stack, pendingTask{doc: &t.doc.Subtasks[j], path: fmt.Sprintf("%s.subtasks[%d]", t.path, j)})
			}
		}
	}
	return nil
}

func countTasks(docs []TaskDoc) int {
	n := 0
	stack := make([]*TaskDoc, 0, len(docs))
	for i := range docs {
		stack = append(stack, &docs[i])
	}
	for len(stack) > 0 {
		d := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n++
		for i := range d.Subtasks {
			stack = append(stack, &d.Subtasks[i])
		}
	}
	return n
}
