package domain

import (
	"strings"
	"time"
)

// StoreInitializer initializes the data store.
type StoreInitializer interface {
	// Initialize creates the store if it doesn't exist.
	Initialize() error

	// IsInitialized reports whether the store exists.
	IsInitialized() bool
}

// SnapshotGuard approves a pending write. The store calls it inside its
// write transaction with the current tasks of the affected project (plus
// the referenced parent when it lives in another project). A non-nil
// result aborts the write and is returned to the caller unchanged.
type SnapshotGuard func(snapshot []*Task) error

// TaskRepository manages task persistence.
type TaskRepository interface {
	// Get retrieves a task by ID. Returns nil if not found.
	Get(id int) (*Task, error)

	// List retrieves tasks matching the filter, ordered by ID.
	List(filter TaskFilter) ([]*Task, error)

	// Create assigns an ID to task and stores it once guard approves.
	Create(task *Task, guard SnapshotGuard) error

	// Update stores every field except ID, ProjectID and ParentID.
	Update(task *Task) error

	// Reparent changes the parent of a task once guard approves.
	// A nil parentID turns the task into a root task.
	Reparent(taskID int, parentID *int, guard SnapshotGuard) error

	// UpdateAndReparent stores task like Update and moves it under
	// parentID like Reparent, as a single write. Nothing is stored
	// unless both steps succeed.
	UpdateAndReparent(task *Task, parentID *int, guard SnapshotGuard) error

	// Delete removes a task and its whole subtask subtree.
	// It returns the removed IDs, children before parents.
	Delete(id int) ([]int, error)
}

// TaskFilter specifies criteria for listing tasks.
// Fields are ordered to minimize memory padding.
type TaskFilter struct {
	ProjectID    *int   // nil = all projects
	ParentID     *int   // nil = any parent, set = only children of this parent
	AssignedTo   *int   // nil = any assignee, set = only tasks of this person
	NameContains string // case-insensitive substring of the name ("" = any)
	RootsOnly    bool   // only tasks without a parent
}

// Matches reports whether t satisfies every criterion of f.
func (f TaskFilter) Matches(t *Task) bool {
	switch {
	case f.ProjectID != nil && t.ProjectID != *f.ProjectID:
		return false
	case f.ParentID != nil && !t.HasParent(*f.ParentID):
		return false
	case f.AssignedTo != nil && (t.AssignedTo == nil || *t.AssignedTo != *f.AssignedTo):
		return false
	case f.RootsOnly && !t.IsRoot():
		return false
	}
	return f.NameContains == "" || strings.Contains(strings.ToLower(t.Name), strings.ToLower(f.NameContains))
}

// ProjectRepository manages project persistence.
type ProjectRepository interface {
	// GetProject retrieves a project by ID. Returns nil if not found.
	GetProject(id int) (*Project, error)

	// ListProjects returns all projects ordered by name.
	ListProjects() ([]*Project, error)

	// CreateProject assigns an ID and stores the project.
	// Returns ErrDuplicateProject when the name or code is taken.
	CreateProject(project *Project) error

	// DeleteProject removes a project together with all its tasks.
	DeleteProject(id int) error

	// AddMember appends a person to the project's members. Adding an
	// existing member changes nothing. Returns ErrProjectNotFound or
	// ErrPersonNotFound when either side is missing.
	AddMember(projectID, personID int) error
}

// PersonRepository manages people tasks can be assigned to.
type PersonRepository interface {
	// GetPerson retrieves a person by ID. Returns nil if not found.
	GetPerson(id int) (*Person, error)

	// ListPeople returns all people ordered by name.
	ListPeople() ([]*Person, error)

	// CreatePerson assigns an ID and stores the person.
	CreatePerson(person *Person) error
}

// Store bundles every repository a backend provides.
type Store interface {
	StoreInitializer
	TaskRepository
	ProjectRepository
	PersonRepository
}

// Logger records application events. projectID 0 means global.
type Logger interface {
	Info(projectID int, category, msg string)
	Debug(projectID int, category, msg string)
	Warn(projectID int, category, msg string)
	Error(projectID int, category, msg string)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Info(int, string, string)  {}
func (NopLogger) Debug(int, string, string) {}
func (NopLogger) Warn(int, string, string)  {}
func (NopLogger) Error(int, string, string) {}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (repo + global).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
