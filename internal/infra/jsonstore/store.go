// Package jsonstore provides a JSON file-based implementation of domain.Store.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"syscall"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/hierarchy"
)

// Ensure Store implements domain.Store.
var _ domain.Store = (*Store)(nil)

// storeData represents the JSON file structure.
// Fields are ordered to minimize memory padding.
type storeData struct {
	Tasks    map[string]*domain.Task    `json:"tasks"`
	Projects map[string]*domain.Project `json:"projects"`
	People   map[string]*domain.Person  `json:"people"`
	Meta     meta                       `json:"meta"`
}

// meta contains store metadata.
type meta struct {
	NextTaskID    int `json:"nextTaskID"`
	NextProjectID int `json:"nextProjectID"`
	NextPersonID  int `json:"nextPersonID"`
}

// Store implements domain.Store using a single JSON file.
// Every write happens under an exclusive flock on a sibling lock file, so
// the guard of a write sees exactly the data the write is applied to.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file is created by Initialize.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

func key(id int) string {
	return strconv.Itoa(id)
}

// === Tasks ===

// Get retrieves a task by ID. Returns nil if not found.
func (s *Store) Get(id int) (*domain.Task, error) {
	var task *domain.Task
	err := s.withLock(func(data *storeData) error {
		if t, ok := data.Tasks[key(id)]; ok {
			task = t
			task.ID = id
		}
		return nil
	})
	return task, err
}

// List retrieves tasks matching the filter, ordered by ID.
func (s *Store) List(filter domain.TaskFilter) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := s.withLock(func(data *storeData) error {
		for k, t := range data.Tasks {
			id, _ := strconv.Atoi(k)
			t.ID = id
			if filter.Matches(t) {
				tasks = append(tasks, t)
			}
		}
		return nil
	})

	// Sort by ID for consistent ordering
	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		return a.ID - b.ID
	})

	return tasks, err
}

// snapshot collects the tasks of projectID plus the task parentID refers
// to when it lives in another project.
func snapshot(data *storeData, projectID int, parentID *int) []*domain.Task {
	var out []*domain.Task
	for k, t := range data.Tasks {
		id, _ := strconv.Atoi(k)
		t.ID = id
		if t.ProjectID == projectID {
			out = append(out, t.Clone())
		}
	}
	if parentID != nil {
		if p, ok := data.Tasks[key(*parentID)]; ok && p.ProjectID != projectID {
			c := p.Clone()
			c.ID = *parentID
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b *domain.Task) int { return a.ID - b.ID })
	return out
}

// Create assigns an ID to task and stores it once guard approves.
func (s *Store) Create(task *domain.Task, guard domain.SnapshotGuard) error {
	return s.withLockWrite(func(data *storeData) error {
		if _, ok := data.Projects[key(task.ProjectID)]; !ok {
			return fmt.Errorf("create task: %w", domain.ErrProjectNotFound)
		}
		if task.AssignedTo != nil {
			if _, ok := data.People[key(*task.AssignedTo)]; !ok {
				return fmt.Errorf("create task: %w", domain.ErrPersonNotFound)
			}
		}
		if guard != nil {
			if err := guard(snapshot(data, task.ProjectID, task.ParentID)); err != nil {
				return err
			}
		}
		task.ID = data.Meta.NextTaskID
		data.Meta.NextTaskID++
		data.Tasks[key(task.ID)] = task.Clone()
		return nil
	})
}

// Update stores every field except ID, ProjectID and ParentID.
func (s *Store) Update(task *domain.Task) error {
	return s.withLockWrite(func(data *storeData) error {
		return updateTask(data, task)
	})
}

// Reparent changes the parent of a task once guard approves.
func (s *Store) Reparent(taskID int, parentID *int, guard domain.SnapshotGuard) error {
	return s.withLockWrite(func(data *storeData) error {
		return reparentTask(data, taskID, parentID, guard)
	})
}

// UpdateAndReparent runs Update and Reparent under one lock and one write.
func (s *Store) UpdateAndReparent(task *domain.Task, parentID *int, guard domain.SnapshotGuard) error {
	return s.withLockWrite(func(data *storeData) error {
		if err := reparentTask(data, task.ID, parentID, guard); err != nil {
			return err
		}
		return updateTask(data, task)
	})
}

func updateTask(data *storeData, task *domain.Task) error {
	cur, ok := data.Tasks[key(task.ID)]
	if !ok {
		return domain.ErrTaskNotFound
	}
	if task.AssignedTo != nil {
		if _, ok := data.People[key(*task.AssignedTo)]; !ok {
			return fmt.Errorf("update task: %w", domain.ErrPersonNotFound)
		}
	}
	c := task.Clone()
	c.ProjectID = cur.ProjectID
	c.ParentID = cur.ParentID
	data.Tasks[key(task.ID)] = c
	return nil
}

func reparentTask(data *storeData, taskID int, parentID *int, guard domain.SnapshotGuard) error {
	cur, ok := data.Tasks[key(taskID)]
	if !ok {
		return domain.ErrTaskNotFound
	}
	if guard != nil {
		if err := guard(snapshot(data, cur.ProjectID, parentID)); err != nil {
			return err
		}
	}
	if parentID != nil {
		parentID = domain.IntPtr(*parentID)
	}
	cur.ParentID = parentID
	return nil
}

// Delete removes a task and its whole subtask subtree.
func (s *Store) Delete(id int) ([]int, error) {
	var removed []int
	err := s.withLockWrite(func(data *storeData) error {
		idx, err := indexAll(data)
		if err != nil {
			return err
		}
		removed = hierarchy.Subtree(idx, id)
		if removed == nil {
			return domain.ErrTaskNotFound
		}
		for _, d := range removed {
			delete(data.Tasks, key(d))
		}
		return nil
	})
	return removed, err
}

func indexAll(data *storeData) (*hierarchy.Index, error) {
	all := make([]*domain.Task, 0, len(data.Tasks))
	for k, t := range data.Tasks {
		id, _ := strconv.Atoi(k)
		t.ID = id
		all = append(all, t)
	}
	return hierarchy.NewIndex(all)
}

// === Projects ===

// GetProject retrieves a project by ID. Returns nil if not found.
func (s *Store) GetProject(id int) (*domain.Project, error) {
	var project *domain.Project
	err := s.withLock(func(data *storeData) error {
		if p, ok := data.Projects[key(id)]; ok {
			project = p
			project.ID = id
		}
		return nil
	})
	return project, err
}

// ListProjects returns all projects ordered by name.
func (s *Store) ListProjects() ([]*domain.Project, error) {
	var projects []*domain.Project
	err := s.withLock(func(data *storeData) error {
		for k, p := range data.Projects {
			p.ID, _ = strconv.Atoi(k)
			projects = append(projects, p)
		}
		return nil
	})
	slices.SortFunc(projects, func(a, b *domain.Project) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return a.ID - b.ID
	})
	return projects, err
}

// CreateProject assigns an ID and stores the project.
func (s *Store) CreateProject(project *domain.Project) error {
	return s.withLockWrite(func(data *storeData) error {
		for _, p := range data.Projects {
			if p.Name == project.Name || p.Code == project.Code {
				return domain.ErrDuplicateProject
			}
		}
		project.ID = data.Meta.NextProjectID
		data.Meta.NextProjectID++
		data.Projects[key(project.ID)] = project.Clone()
		return nil
	})
}

// AddMember appends a person to the project's members.
func (s *Store) AddMember(projectID, personID int) error {
	return s.withLockWrite(func(data *storeData) error {
		p, ok := data.Projects[key(projectID)]
		if !ok {
			return domain.ErrProjectNotFound
		}
		if _, ok := data.People[key(personID)]; !ok {
			return domain.ErrPersonNotFound
		}
		if !p.HasMember(personID) {
			p.Members = append(p.Members, personID)
		}
		return nil
	})
}

// DeleteProject removes a project together with all its tasks. Tasks of
// other projects that still point into the deleted tasks go with them.
func (s *Store) DeleteProject(id int) error {
	return s.withLockWrite(func(data *storeData) error {
		if _, ok := data.Projects[key(id)]; !ok {
			return domain.ErrProjectNotFound
		}
		idx, err := indexAll(data)
		if err != nil {
			return err
		}
		for _, tid := range idx.IDs() {
			if idx.Get(tid).ProjectID != id {
				continue
			}
			for _, d := range hierarchy.Subtree(idx, tid) {
				delete(data.Tasks, key(d))
			}
		}
		delete(data.Projects, key(id))
		return nil
	})
}

// === People ===

// GetPerson retrieves a person by ID. Returns nil if not found.
func (s *Store) GetPerson(id int) (*domain.Person, error) {
	var person *domain.Person
	err := s.withLock(func(data *storeData) error {
		if p, ok := data.People[key(id)]; ok {
			person = p
			person.ID = id
		}
		return nil
	})
	return person, err
}

// ListPeople returns all people ordered by name.
func (s *Store) ListPeople() ([]*domain.Person, error) {
	var people []*domain.Person
	err := s.withLock(func(data *storeData) error {
		for k, p := range data.People {
			p.ID, _ = strconv.Atoi(k)
			people = append(people, p)
		}
		return nil
	})
	slices.SortFunc(people, func(a, b *domain.Person) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return a.ID - b.ID
	})
	return people, err
}

// CreatePerson assigns an ID and stores the person.
func (s *Store) CreatePerson(person *domain.Person) error {
	return s.withLockWrite(func(data *storeData) error {
		person.ID = data.Meta.NextPersonID
		data.Meta.NextPersonID++
		c := *person
		data.People[key(c.ID)] = &c
		return nil
	})
}

// === Initialization ===

// IsInitialized checks if the store file exists.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Initialize creates an empty store file if it doesn't exist.
func (s *Store) Initialize() error {
	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return nil // Already exists
	}

	data := &storeData{
		Meta:     meta{NextTaskID: 1, NextProjectID: 1, NextPersonID: 1},
		Tasks:    make(map[string]*domain.Task),
		Projects: make(map[string]*domain.Project),
		People:   make(map[string]*domain.Person),
	}

	return s.write(data)
}

// === File access ===

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the
// result. Nothing is written when fn fails.
func (s *Store) withLockWrite(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(data); err != nil {
		return err
	}

	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) read() (*storeData, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotInitialized
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var data storeData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}

	// Ensure maps are initialized
	if data.Tasks == nil {
		data.Tasks = make(map[string]*domain.Task)
	}
	if data.Projects == nil {
		data.Projects = make(map[string]*domain.Project)
	}
	if data.People == nil {
		data.People = make(map[string]*domain.Person)
	}

	return &data, nil
}

func (s *Store) write(data *storeData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
