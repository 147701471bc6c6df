package hierarchy

import (
	"fmt"
	"slices"

	"github.com/runoshun/teamtasks/internal/domain"
)

// AnomalyKind classifies a non-fatal inconsistency found while building.
type AnomalyKind string

// Anomaly kinds. In every case the task is kept and shown as a root.
const (
	AnomalyOrphanReference AnomalyKind = "orphan_reference" // parent ID does not resolve
	AnomalyCrossProject    AnomalyKind = "cross_project"    // parent lives in another project
	AnomalyCycle           AnomalyKind = "cycle"            // stored parent links loop back
)

// Anomaly reports a task whose stored parent link could not be honoured.
type Anomaly struct {
	Kind      AnomalyKind `json:"kind"`
	TaskID    int         `json:"task_id"`
	ParentID  int         `json:"parent_id"`
	ProjectID int         `json:"project_id"`
}

func (a Anomaly) String() string {
	switch a.Kind {
	case AnomalyOrphanReference:
		return fmt.Sprintf("task #%d: parent #%d not found, shown as root", a.TaskID, a.ParentID)
	case AnomalyCrossProject:
		return fmt.Sprintf("task #%d: parent #%d belongs to another project, shown as root", a.TaskID, a.ParentID)
	case AnomalyCycle:
		return fmt.Sprintf("task #%d: parent links loop back through #%d, shown as root", a.TaskID, a.ParentID)
	default:
		return fmt.Sprintf("task #%d: %s", a.TaskID, a.Kind)
	}
}

// Node wraps a task and its ordered children.
type Node struct {
	Task     *domain.Task
	Children []*Node
}

// Forest holds the ordered root nodes of every project found in a task list.
type Forest struct {
	roots     map[int][]*Node
	nodes     map[int]*Node
	Anomalies []Anomaly
}

// Build indexes tasks and arranges them into a forest.
// Duplicate IDs fail with *domain.DataIntegrityError.
func Build(tasks []*domain.Task) (*Forest, error) {
	idx, err := NewIndex(tasks)
	if err != nil {
		return nil, err
	}
	return BuildIndex(idx), nil
}

// BuildIndex arranges already indexed tasks into a forest. Tasks are never
// dropped: a task whose parent cannot be used is placed among the roots and
// recorded in Forest.Anomalies. Siblings are ordered by domain.CompareTasks.
func BuildIndex(idx *Index) *Forest {
	ids := idx.IDs()
	f := &Forest{
		roots: make(map[int][]*Node),
		nodes: make(map[int]*Node, len(ids)),
	}
	for _, id := range ids {
		f.nodes[id] = &Node{Task: idx.Get(id), Children: []*Node{}}
	}

	for _, id := range ids {
		n := f.nodes[id]
		t := n.Task
		if t.ParentID == nil {
			f.addRoot(n)
			continue
		}
		parent, ok := f.nodes[*t.ParentID]
		switch {
		case !ok:
			f.addRoot(n)
			f.report(AnomalyOrphanReference, t)
		case parent.Task.ProjectID != t.ProjectID:
			f.addRoot(n)
			f.report(AnomalyCrossProject, t)
		default:
			parent.Children = append(parent.Children, n)
		}
	}

	f.breakCycles(ids)

	for _, n := range f.nodes {
		sortNodes(n.Children)
	}
	for _, roots := range f.roots {
		sortNodes(roots)
	}
	return f
}

// breakCycles finds tasks that no root reaches. Each of them hangs below a
// loop of parent links; the first loop member met walking up is promoted
// to root, which also brings everything below it back into the forest.
func (f *Forest) breakCycles(ids []int) {
	reached := make(map[int]bool, len(ids))
	mark := func(start *Node) {
		stack := []*Node{start}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if reached[n.Task.ID] {
				continue
			}
			reached[n.Task.ID] = true
			stack = append(stack, n.Children...)
		}
	}
	for _, roots := range f.roots {
		for _, r := range roots {
			mark(r)
		}
	}
	if len(reached) == len(ids) {
		return
	}

	for _, id := range ids {
		if reached[id] {
			continue
		}
		// Unreached tasks always have an attached, equally unreached parent.
		seen := make(map[int]bool)
		cur := f.nodes[id]
		for !seen[cur.Task.ID] {
			seen[cur.Task.ID] = true
			cur = f.nodes[*cur.Task.ParentID]
		}
		parent := f.nodes[*cur.Task.ParentID]
		parent.Children = slices.DeleteFunc(parent.Children, func(c *Node) bool { return c == cur })
		f.addRoot(cur)
		f.report(AnomalyCycle, cur.Task)
		mark(cur)
	}
}

func (f *Forest) addRoot(n *Node) {
	f.roots[n.Task.ProjectID] = append(f.roots[n.Task.ProjectID], n)
}

func (f *Forest) report(kind AnomalyKind, t *domain.Task) {
	f.Anomalies = append(f.Anomalies, Anomaly{
		Kind:      kind,
		TaskID:    t.ID,
		ParentID:  *t.ParentID,
		ProjectID: t.ProjectID,
	})
}

func sortNodes(nodes []*Node) {
	slices.SortStableFunc(nodes, func(a, b *Node) int {
		return domain.CompareTasks(a.Task, b.Task)
	})
}

// Roots returns the ordered root nodes of a project. The slice must not be
// modified.
func (f *Forest) Roots(projectID int) []*Node {
	return f.roots[projectID]
}

// Projects returns the IDs of projects that have tasks, ascending.
func (f *Forest) Projects() []int {
	ids := make([]int, 0, len(f.roots))
	for id := range f.roots {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Node returns the node for a task ID, or nil.
func (f *Forest) Node(id int) *Node {
	return f.nodes[id]
}

// Len returns the number of tasks in the forest.
func (f *Forest) Len() int {
	return len(f.nodes)
}

// AnomaliesFor returns the anomalies recorded for one project.
func (f *Forest) AnomaliesFor(projectID int) []Anomaly {
	var out []Anomaly
	for _, a := range f.Anomalies {
		if a.ProjectID == projectID {
			out = append(out, a)
		}
	}
	return out
}
