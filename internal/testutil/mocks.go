// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/hierarchy"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockStore is an in-memory test double for domain.Store.
// It keeps its own copies of stored entities and runs write guards the way
// the real backends do. Fields are ordered to minimize memory padding.
type MockStore struct {
	Tasks    map[int]*domain.Task
	Projects map[int]*domain.Project
	People   map[int]*domain.Person

	InitErr     error
	GetErr      error
	ListErr     error
	CreateErr   error
	UpdateErr   error
	ReparentErr error
	DeleteErr   error
	ProjectErr  error
	PersonErr   error

	// Snapshots records every snapshot handed to a guard.
	Snapshots [][]*domain.Task

	NextTaskID    int
	NextProjectID int
	NextPersonID  int
	Initialized   bool
}

// Ensure MockStore implements domain.Store interface.
var _ domain.Store = (*MockStore)(nil)

// NewMockStore creates an initialized, empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		Tasks:         make(map[int]*domain.Task),
		Projects:      make(map[int]*domain.Project),
		People:        make(map[int]*domain.Person),
		NextTaskID:    1,
		NextProjectID: 1,
		NextPersonID:  1,
		Initialized:   true,
	}
}

// AddProject stores a project directly, bypassing validation.
func (m *MockStore) AddProject(p *domain.Project) *domain.Project {
	if p.ID == 0 {
		p.ID = m.NextProjectID
	}
	m.NextProjectID = max(m.NextProjectID, p.ID+1)
	m.Projects[p.ID] = p
	return p
}

// AddPerson stores a person directly, bypassing validation.
func (m *MockStore) AddPerson(p *domain.Person) *domain.Person {
	if p.ID == 0 {
		p.ID = m.NextPersonID
	}
	m.NextPersonID = max(m.NextPersonID, p.ID+1)
	m.People[p.ID] = p
	return p
}

// AddTask stores a task directly, bypassing guards. Use it to seed
// corrupt hierarchies.
func (m *MockStore) AddTask(t *domain.Task) *domain.Task {
	if t.ID == 0 {
		t.ID = m.NextTaskID
	}
	m.NextTaskID = max(m.NextTaskID, t.ID+1)
	m.Tasks[t.ID] = t
	return t
}

// Initialize marks the store as initialized.
func (m *MockStore) Initialize() error {
	if m.InitErr != nil {
		return m.InitErr
	}
	m.Initialized = true
	return nil
}

// IsInitialized returns the configured value.
func (m *MockStore) IsInitialized() bool {
	return m.Initialized
}

// Get retrieves a copy of a task by ID.
func (m *MockStore) Get(id int) (*domain.Task, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	t, ok := m.Tasks[id]
	if !ok {
		return nil, nil
	}
	return t.Clone(), nil
}

// List returns copies of the tasks matching filter, ordered by ID.
func (m *MockStore) List(filter domain.TaskFilter) ([]*domain.Task, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	tasks := make([]*domain.Task, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		if filter.Matches(t) {
			tasks = append(tasks, t.Clone())
		}
	}
	slices.SortFunc(tasks, func(a, b *domain.Task) int { return a.ID - b.ID })
	return tasks, nil
}

// snapshot returns the tasks of projectID plus parentID when it lives in
// another project, mirroring what the backends hand to guards.
func (m *MockStore) snapshot(projectID int, parentID *int) []*domain.Task {
	var out []*domain.Task
	for _, t := range m.Tasks {
		if t.ProjectID == projectID {
			out = append(out, t.Clone())
		}
	}
	if parentID != nil {
		if p, ok := m.Tasks[*parentID]; ok && p.ProjectID != projectID {
			out = append(out, p.Clone())
		}
	}
	slices.SortFunc(out, func(a, b *domain.Task) int { return a.ID - b.ID })
	m.Snapshots = append(m.Snapshots, out)
	return out
}

// Create runs guard and stores a copy of task with a fresh ID.
func (m *MockStore) Create(task *domain.Task, guard domain.SnapshotGuard) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if _, ok := m.Projects[task.ProjectID]; !ok {
		return fmt.Errorf("create task: %w", domain.ErrProjectNotFound)
	}
	if guard != nil {
		if err := guard(m.snapshot(task.ProjectID, task.ParentID)); err != nil {
			return err
		}
	}
	task.ID = m.NextTaskID
	m.NextTaskID++
	m.Tasks[task.ID] = task.Clone()
	return nil
}

// Update stores every field of task except its project and parent.
func (m *MockStore) Update(task *domain.Task) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	cur, ok := m.Tasks[task.ID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	c := task.Clone()
	c.ProjectID = cur.ProjectID
	c.ParentID = cur.ParentID
	m.Tasks[task.ID] = c
	return nil
}

// Reparent runs guard and changes the stored parent.
func (m *MockStore) Reparent(taskID int, parentID *int, guard domain.SnapshotGuard) error {
	if m.ReparentErr != nil {
		return m.ReparentErr
	}
	cur, ok := m.Tasks[taskID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	if guard != nil {
		if err := guard(m.snapshot(cur.ProjectID, parentID)); err != nil {
			return err
		}
	}
	if parentID != nil {
		parentID = domain.IntPtr(*parentID)
	}
	cur.ParentID = parentID
	return nil
}

// UpdateAndReparent applies Reparent then Update. Either error knob
// aborts it before anything changes.
func (m *MockStore) UpdateAndReparent(task *domain.Task, parentID *int, guard domain.SnapshotGuard) error {
	if m.ReparentErr != nil {
		return m.ReparentErr
	}
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	cur, ok := m.Tasks[task.ID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	if guard != nil {
		if err := guard(m.snapshot(cur.ProjectID, parentID)); err != nil {
			return err
		}
	}
	c := task.Clone()
	c.ProjectID = cur.ProjectID
	c.ParentID = nil
	if parentID != nil {
		c.ParentID = domain.IntPtr(*parentID)
	}
	m.Tasks[task.ID] = c
	return nil
}

// Delete removes a task and its subtree.
func (m *MockStore) Delete(id int) ([]int, error) {
	if m.DeleteErr != nil {
		return nil, m.DeleteErr
	}
	all := make([]*domain.Task, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		all = append(all, t)
	}
	idx, err := hierarchy.NewIndex(all)
	if err != nil {
		return nil, err
	}
	ids := hierarchy.Subtree(idx, id)
	if ids == nil {
		return nil, domain.ErrTaskNotFound
	}
	for _, d := range ids {
		delete(m.Tasks, d)
	}
	return ids, nil
}

// GetProject retrieves a project by ID.
func (m *MockStore) GetProject(id int) (*domain.Project, error) {
	if m.ProjectErr != nil {
		return nil, m.ProjectErr
	}
	p, ok := m.Projects[id]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

// ListProjects returns all projects ordered by name.
func (m *MockStore) ListProjects() ([]*domain.Project, error) {
	if m.ProjectErr != nil {
		return nil, m.ProjectErr
	}
	out := make([]*domain.Project, 0, len(m.Projects))
	for _, p := range m.Projects {
		out = append(out, p.Clone())
	}
	slices.SortFunc(out, func(a, b *domain.Project) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return a.ID - b.ID
	})
	return out, nil
}

// CreateProject stores a project, rejecting duplicate names and codes.
func (m *MockStore) CreateProject(project *domain.Project) error {
	if m.ProjectErr != nil {
		return m.ProjectErr
	}
	for _, p := range m.Projects {
		if p.Name == project.Name || p.Code == project.Code {
			return domain.ErrDuplicateProject
		}
	}
	project.ID = m.NextProjectID
	m.NextProjectID++
	m.Projects[project.ID] = project.Clone()
	return nil
}

// AddMember appends personID to the project's members.
func (m *MockStore) AddMember(projectID, personID int) error {
	if m.ProjectErr != nil {
		return m.ProjectErr
	}
	p, ok := m.Projects[projectID]
	if !ok {
		return domain.ErrProjectNotFound
	}
	if _, ok := m.People[personID]; !ok {
		return domain.ErrPersonNotFound
	}
	if !p.HasMember(personID) {
		p.Members = append(p.Members, personID)
	}
	return nil
}

// DeleteProject removes a project and its tasks.
func (m *MockStore) DeleteProject(id int) error {
	if m.ProjectErr != nil {
		return m.ProjectErr
	}
	if _, ok := m.Projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(m.Projects, id)
	for tid, t := range m.Tasks {
		if t.ProjectID == id {
			delete(m.Tasks, tid)
		}
	}
	return nil
}

// GetPerson retrieves a person by ID.
func (m *MockStore) GetPerson(id int) (*domain.Person, error) {
	if m.PersonErr != nil {
		return nil, m.PersonErr
	}
	p, ok := m.People[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

// ListPeople returns all people ordered by name.
func (m *MockStore) ListPeople() ([]*domain.Person, error) {
	if m.PersonErr != nil {
		return nil, m.PersonErr
	}
	out := make([]*domain.Person, 0, len(m.People))
	for _, p := range m.People {
		c := *p
		out = append(out, &c)
	}
	slices.SortFunc(out, func(a, b *domain.Person) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return a.ID - b.ID
	})
	return out, nil
}

// CreatePerson stores a person.
func (m *MockStore) CreatePerson(person *domain.Person) error {
	if m.PersonErr != nil {
		return m.PersonErr
	}
	person.ID = m.NextPersonID
	m.NextPersonID++
	c := *person
	m.People[c.ID] = &c
	return nil
}

// LogEntry is one call recorded by MockLogger.
type LogEntry struct {
	Level     string
	Category  string
	Msg       string
	ProjectID int
}

// MockLogger records log calls.
type MockLogger struct {
	Entries []LogEntry
}

// Ensure MockLogger implements domain.Logger interface.
var _ domain.Logger = (*MockLogger)(nil)

func (m *MockLogger) record(level string, projectID int, category, msg string) {
	m.Entries = append(m.Entries, LogEntry{Level: level, ProjectID: projectID, Category: category, Msg: msg})
}

// Info records an info entry.
func (m *MockLogger) Info(projectID int, category, msg string) {
	m.record("INFO", projectID, category, msg)
}

// Debug records a debug entry.
func (m *MockLogger) Debug(projectID int, category, msg string) {
	m.record("DEBUG", projectID, category, msg)
}

// Warn records a warn entry.
func (m *MockLogger) Warn(projectID int, category, msg string) {
	m.record("WARN", projectID, category, msg)
}

// Error records an error entry.
func (m *MockLogger) Error(projectID int, category, msg string) {
	m.record("ERROR", projectID, category, msg)
}

// Level returns the entries recorded at level.
func (m *MockLogger) Level(level string) []LogEntry {
	var out []LogEntry
	for _, e := range m.Entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config *domain.Config
	Err    error
}

// Load returns the configured config or a default one.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Config == nil {
		return domain.NewDefaultConfig(), nil
	}
	return m.Config, nil
}

// LoadGlobal behaves like Load.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	return m.Load()
}

// SeedScenario stores project 1 (Website) with the tasks
// Design(1) > [Spec(2) > [Draft(4)], Review(3)], project 2 (Launch) with
// Kickoff(5), and Ada(1) assigned to Spec.
func SeedScenario(store *MockStore) {
	store.AddProject(&domain.Project{ID: 1, Name: "Website", Code: "WEB"})
	store.AddProject(&domain.Project{ID: 2, Name: "Launch", Code: "LCH"})
	store.AddPerson(&domain.Person{ID: 1, Name: "Ada", Company: "Analytical"})
	store.AddTask(&domain.Task{ID: 1, ProjectID: 1, Name: "Design", Priority: 1})
	store.AddTask(&domain.Task{ID: 2, ProjectID: 1, Name: "Spec", Priority: 1, ParentID: domain.IntPtr(1), AssignedTo: domain.IntPtr(1)})
	store.AddTask(&domain.Task{ID: 3, ProjectID: 1, Name: "Review", Priority: 2, ParentID: domain.IntPtr(1)})
	store.AddTask(&domain.Task{ID: 4, ProjectID: 1, Name: "Draft", Priority: 1, ParentID: domain.IntPtr(2)})
	store.AddTask(&domain.Task{ID: 5, ProjectID: 2, Name: "Kickoff"})
}
