package hierarchy

import "github.com/runoshun/teamtasks/internal/domain"

// TreeNode is the minimal nested task shape: {id, name, subtasks}.
type TreeNode struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Subtasks []TreeNode `json:"subtasks"`
}

// TaskDTO is the full task shape used by the task list and detail APIs.
// Subtasks carry the same shape recursively, in forest order.
// Field order follows the wire format.
type TaskDTO struct {
	ID             int         `json:"id"`
	Name           string      `json:"name"`
	StartDate      domain.Date `json:"start_date"`
	Deadline       domain.Date `json:"deadline"`
	Project        int         `json:"project"`
	ProjectName    string      `json:"project_name"`
	AssignedTo     *int        `json:"assigned_to"`
	AssignedToName *string     `json:"assigned_to_name"`
	Priority       int         `json:"priority"`
	Progress       int         `json:"progress"`
	Parent         *int        `json:"parent"`
	Subtasks       []TaskDTO   `json:"subtasks"`
}

// ProjectTree is a project with its root tasks nested: {id, name, tasks}.
type ProjectTree struct {
	ID    int        `json:"id"`
	Name  string     `json:"name"`
	Tasks []TreeNode `json:"tasks"`
}

// Names resolves the display names TaskDTO needs.
type Names struct {
	Projects map[int]string // project ID -> name
	People   map[int]string // person ID -> name
}

// NamesFrom builds a Names lookup from entity lists.
func NamesFrom(projects []*domain.Project, people []*domain.Person) Names {
	n := Names{
		Projects: make(map[int]string, len(projects)),
		People:   make(map[int]string, len(people)),
	}
	for _, p := range projects {
		n.Projects[p.ID] = p.Name
	}
	for _, p := range people {
		n.People[p.ID] = p.Name
	}
	return n
}

// Serialize converts one node and its subtree into a TreeNode.
func Serialize(node *Node) TreeNode {
	return SerializeForest([]*Node{node})[0]
}

// SerializeForest converts root nodes into TreeNodes, keeping forest order.
func SerializeForest(roots []*Node) []TreeNode {
	return transform(roots, nil, func(n *Node, children []TreeNode) TreeNode {
		return TreeNode{ID: n.Task.ID, Name: n.Task.Name, Subtasks: children}
	})
}

// SerializeTasks converts root nodes into TaskDTOs, keeping forest order.
func SerializeTasks(roots []*Node, names Names) []TaskDTO {
	return transform(roots, nil, func(n *Node, children []TaskDTO) TaskDTO {
		return newTaskDTO(n.Task, names, children)
	})
}

// ProjectTrees pairs each project with its serialized root tasks.
// Projects without tasks get an empty task list.
func ProjectTrees(projects []*domain.Project, forest *Forest) []ProjectTree {
	out := make([]ProjectTree, 0, len(projects))
	for _, p := range projects {
		out = append(out, ProjectTree{
			ID:    p.ID,
			Name:  p.Name,
			Tasks: SerializeForest(forest.Roots(p.ID)),
		})
	}
	return out
}

func newTaskDTO(t *domain.Task, names Names, children []TaskDTO) TaskDTO {
	dto := TaskDTO{
		ID:          t.ID,
		Name:        t.Name,
		StartDate:   t.StartDate,
		Deadline:    t.Deadline,
		Project:     t.ProjectID,
		ProjectName: names.Projects[t.ProjectID],
		AssignedTo:  t.AssignedTo,
		Priority:    t.Priority,
		Progress:    t.Progress,
		Parent:      t.ParentID,
		Subtasks:    children,
	}
	if t.AssignedTo != nil {
		if name, ok := names.People[*t.AssignedTo]; ok {
			dto.AssignedToName = &name
		}
	}
	return dto
}

// Map rebuilds the trees below roots into values of another type, bottom-up
// and without recursion. build receives each node with its converted
// children in forest order.
func Map[T any](roots []*Node, build func(n *Node, children []T) T) []T {
	return transform(roots, nil, build)
}

// transform rebuilds trees bottom-up with an explicit stack. build receives
// a node together with its already converted children, in order. Nodes for
// which skip returns true are left out together with their subtrees; skip
// may be nil. Children slices are never nil so empty lists encode as [].
func transform[T any](roots []*Node, skip func(*Node) bool, build func(n *Node, children []T) T) []T {
	type frame struct {
		node *Node
		done []T
		next int
	}
	out := make([]T, 0, len(roots))
	for _, root := range roots {
		if skip != nil && skip(root) {
			continue
		}
		stack := []*frame{{node: root, done: make([]T, 0, len(root.Children))}}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if top.next < len(top.node.Children) {
				child := top.node.Children[top.next]
				top.next++
				if skip != nil && skip(child) {
					continue
				}
				stack = append(stack, &frame{node: child, done: make([]T, 0, len(child.Children))})
				continue
			}
			stack = stack[:len(stack)-1]
			v := build(top.node, top.done)
			if len(stack) == 0 {
				out = append(out, v)
			} else {
				parent := stack[len(stack)-1]
				parent.done = append(parent.done, v)
			}
		}
	}
	return out
}
