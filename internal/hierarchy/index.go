package hierarchy

import (
	"slices"

	"github.com/runoshun/teamtasks/internal/domain"
)

// Index resolves task IDs to tasks and parents to children.
type Index struct {
	tasks    map[int]*domain.Task
	children map[int][]int // parent ID -> child IDs in ascending ID order
	counts   map[int]int   // project ID -> number of tasks
}

// NewIndex indexes tasks by ID. The same ID appearing twice is a
// *domain.DataIntegrityError; nil entries are skipped.
func NewIndex(tasks []*domain.Task) (*Index, error) {
	idx := &Index{
		tasks:    make(map[int]*domain.Task, len(tasks)),
		children: make(map[int][]int),
		counts:   make(map[int]int),
	}
	for _, t := range tasks {
		if t == nil {
			continue
		}
		if _, dup := idx.tasks[t.ID]; dup {
			return nil, &domain.DataIntegrityError{TaskID: t.ID, Msg: "duplicate task id"}
		}
		idx.tasks[t.ID] = t
		idx.counts[t.ProjectID]++
		if t.ParentID != nil {
			idx.children[*t.ParentID] = append(idx.children[*t.ParentID], t.ID)
		}
	}
	for _, ids := range idx.children {
		slices.Sort(ids)
	}
	return idx, nil
}

// Get returns the task with the given ID, or nil.
func (x *Index) Get(id int) *domain.Task {
	return x.tasks[id]
}

// Len returns the number of indexed tasks.
func (x *Index) Len() int {
	return len(x.tasks)
}

// ProjectSize returns the number of tasks indexed for a project.
func (x *Index) ProjectSize(projectID int) int {
	return x.counts[projectID]
}

// ChildIDs returns the IDs of tasks whose stored parent is id, in ascending
// ID order. The slice must not be modified.
func (x *Index) ChildIDs(id int) []int {
	return x.children[id]
}

// IDs returns all task IDs in ascending order.
func (x *Index) IDs() []int {
	ids := make([]int, 0, len(x.tasks))
	for id := range x.tasks {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Subtree returns rootID and all of its descendants in post-order: every
// task comes after its own descendants, which is a safe order for deleting
// rows with parent foreign keys in place. Returns nil when rootID is not
// indexed.
func Subtree(idx *Index, rootID int) []int {
	if idx.Get(rootID) == nil {
		return nil
	}
	type frame struct {
		id   int
		next int
	}
	visited := map[int]bool{rootID: true}
	stack := []frame{{id: rootID}}
	var out []int
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		kids := idx.ChildIDs(top.id)
		if top.next < len(kids) {
			child := kids[top.next]
			top.next++
			if visited[child] {
				continue
			}
			visited[child] = true
			stack = append(stack, frame{id: child})
			continue
		}
		out = append(out, top.id)
		stack = stack[:len(stack)-1]
	}
	return out
}
