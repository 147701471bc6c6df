package hierarchy

import (
	"strconv"
	"strings"

	"github.com/runoshun/teamtasks/internal/domain"
)

// Entry is one row of an indented task list.
type Entry struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	Depth int    `json:"depth"`
}

// LabelFunc renders the label of a task shown at the given depth.
// It must depend on nothing but its arguments.
type LabelFunc func(name string, depth int) string

// Indent returns a LabelFunc that prefixes names with width spaces per
// depth level.
func Indent(width int) LabelFunc {
	if width < 0 {
		width = 0
	}
	return func(name string, depth int) string {
		return strings.Repeat(" ", width*depth) + name
	}
}

// IndentLabel indents by four spaces per depth level.
func IndentLabel(name string, depth int) string {
	return Indent(domain.DefaultIndentWidth)(name, depth)
}

// Flatten lists the nodes below roots in pre-order: each task directly
// follows its parent and precedes its later siblings. Roots have depth 0.
// A nil label uses IndentLabel.
func Flatten(roots []*Node, label LabelFunc) []Entry {
	return flatten(roots, label, nil)
}

// FlattenForest flattens the roots of each listed project in turn. A nil
// projectIDs flattens every project of the forest in ascending ID order.
func FlattenForest(forest *Forest, projectIDs []int, label LabelFunc) []Entry {
	if projectIDs == nil {
		projectIDs = forest.Projects()
	}
	var out []Entry
	for _, id := range projectIDs {
		out = append(out, flatten(forest.Roots(id), label, nil)...)
	}
	if out == nil {
		out = []Entry{}
	}
	return out
}

// ParentChoices lists the tasks taskID may be moved under: the indented
// tasks of its own project minus the task itself and its descendants.
// Returns nil when the task is not in the forest.
func ParentChoices(forest *Forest, taskID int, label LabelFunc) []Entry {
	node := forest.Node(taskID)
	if node == nil {
		return nil
	}
	return flatten(forest.Roots(node.Task.ProjectID), label, func(n *Node) bool {
		return n.Task.ID == taskID
	})
}

func flatten(roots []*Node, label LabelFunc, skip func(*Node) bool) []Entry {
	if label == nil {
		label = IndentLabel
	}
	type item struct {
		node  *Node
		depth int
	}
	out := make([]Entry, 0, len(roots))
	stack := make([]item, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, item{node: roots[i]})
	}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if skip != nil && skip(it.node) {
			continue
		}
		out = append(out, Entry{
			ID:    it.node.Task.ID,
			Label: label(it.node.Task.Name, it.depth),
			Depth: it.depth,
		})
		kids := it.node.Children
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, item{node: kids[i], depth: it.depth + 1})
		}
	}
	return out
}

// PickerNode is a task in the hierarchical picker: {id, name, children}.
type PickerNode struct {
	ID       int          `json:"id"`
	Name     string       `json:"name"`
	Children []PickerNode `json:"children"`
}

// PickerProject groups picker nodes under a project. Its ID is
// "project-<id>" so it cannot be mistaken for a task ID.
type PickerProject struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Tasks []PickerNode `json:"tasks"`
}

// Picker is the data behind the hierarchical parent-selection control.
type Picker struct {
	Data []PickerProject `json:"data"`
}

// PickerProjectID returns the picker ID of a project.
func PickerProjectID(projectID int) string {
	return "project-" + strconv.Itoa(projectID)
}

// Nested builds picker data for projects, in the given order. When
// excludeTaskID is non-zero only the project holding that task is kept
// and the task's subtree is left out, so every remaining task is a legal
// parent for it. An excluded task missing from forest yields no projects.
func Nested(projects []*domain.Project, forest *Forest, excludeTaskID int) Picker {
	var skip func(*Node) bool
	ownProject := 0
	if excludeTaskID != 0 {
		skip = func(n *Node) bool { return n.Task.ID == excludeTaskID }
		if n := forest.Node(excludeTaskID); n != nil {
			ownProject = n.Task.ProjectID
		}
	}
	data := make([]PickerProject, 0, len(projects))
	for _, p := range projects {
		if excludeTaskID != 0 && p.ID != ownProject {
			continue
		}
		data = append(data, PickerProject{
			ID:   PickerProjectID(p.ID),
			Name: p.Name,
			Tasks: transform(forest.Roots(p.ID), skip, func(n *Node, children []PickerNode) PickerNode {
				return PickerNode{ID: n.Task.ID, Name: n.Task.Name, Children: children}
			}),
		})
	}
	return Picker{Data: data}
}
