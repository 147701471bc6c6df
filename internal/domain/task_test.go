package domain

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_IsRoot(t *testing.T) {
	assert.True(t, (&Task{ID: 1}).IsRoot())
	assert.False(t, (&Task{ID: 2, ParentID: IntPtr(1)}).IsRoot())
}

func TestTask_HasParent(t *testing.T) {
	task := &Task{ID: 2, ParentID: IntPtr(1)}
	assert.True(t, task.HasParent(1))
	assert.False(t, task.HasParent(3))
	assert.False(t, (&Task{ID: 1}).HasParent(0))
}

func TestTask_Clone(t *testing.T) {
	end := NewDate(2025, 3, 1)
	orig := &Task{
		ID:            4,
		ProjectID:     1,
		ParentID:      IntPtr(2),
		AssignedTo:    IntPtr(7),
		ActualEndDate: &end,
		Name:          "Draft",
	}

	c := orig.Clone()
	require.Equal(t, orig, c)

	*c.ParentID = 99
	*c.AssignedTo = 99
	c.ActualEndDate.Time = c.ActualEndDate.AddDate(1, 0, 0)
	assert.Equal(t, 2, *orig.ParentID)
	assert.Equal(t, 7, *orig.AssignedTo)
	assert.Equal(t, "2025-03-01", orig.ActualEndDate.String())
}

func TestCompareTasks(t *testing.T) {
	tests := []struct {
		name string
		a, b *Task
		want int
	}{
		{"priority first", &Task{ID: 1, Name: "z", Priority: 1}, &Task{ID: 2, Name: "a", Priority: 2}, -1},
		{"then name", &Task{ID: 9, Name: "Review", Priority: 1}, &Task{ID: 1, Name: "Spec", Priority: 1}, -1},
		{"then id", &Task{ID: 3, Name: "Same", Priority: 1}, &Task{ID: 2, Name: "Same", Priority: 1}, 1},
		{"equal", &Task{ID: 3, Name: "Same"}, &Task{ID: 3, Name: "Same"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareTasks(tt.a, tt.b))
			assert.Equal(t, -tt.want, CompareTasks(tt.b, tt.a))
		})
	}
}

func TestCompareTasksAcross(t *testing.T) {
	a := &Task{ID: 1, Name: "b", Priority: 9}
	b := &Task{ID: 2, Name: "a", Priority: 1}

	assert.Equal(t, -1, CompareTasksAcross("Alpha", a, "Beta", b), "project name dominates")
	assert.Equal(t, 1, CompareTasksAcross("Alpha", a, "Alpha", b), "same project falls back to priority")
}

func TestCompareTasks_SortsSiblings(t *testing.T) {
	tasks := []*Task{
		{ID: 3, Name: "Review", Priority: 2},
		{ID: 2, Name: "Spec", Priority: 1},
		{ID: 5, Name: "Archive", Priority: 2},
	}
	slices.SortFunc(tasks, CompareTasks)

	var ids []int
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []int{2, 5, 3}, ids)
}

func TestPerson_String(t *testing.T) {
	assert.Equal(t, "Ada (Analytical)", (&Person{Name: "Ada", Company: "Analytical"}).String())
	assert.Equal(t, "Ada", (&Person{Name: "Ada"}).String())
}

func TestProject_Members(t *testing.T) {
	p := &Project{ID: 1, Name: "Website", Code: "WEB", Members: []int{3, 1}}
	assert.True(t, p.HasMember(1))
	assert.False(t, p.HasMember(2))

	c := p.Clone()
	c.Members[0] = 9
	assert.Equal(t, []int{3, 1}, p.Members, "clone owns its members")
	assert.Nil(t, (&Project{ID: 2}).Clone().Members)
}

func TestTaskFilter_Matches(t *testing.T) {
	task := &Task{ID: 4, ProjectID: 1, ParentID: IntPtr(2), AssignedTo: IntPtr(7), Name: "Draft Review"}
	tests := []struct {
		name   string
		filter TaskFilter
		want   bool
	}{
		{"empty", TaskFilter{}, true},
		{"project", TaskFilter{ProjectID: IntPtr(1)}, true},
		{"other project", TaskFilter{ProjectID: IntPtr(2)}, false},
		{"parent", TaskFilter{ParentID: IntPtr(2)}, true},
		{"roots only", TaskFilter{RootsOnly: true}, false},
		{"assignee", TaskFilter{AssignedTo: IntPtr(7)}, true},
		{"other assignee", TaskFilter{AssignedTo: IntPtr(8)}, false},
		{"name ignores case", TaskFilter{NameContains: "t rEV"}, true},
		{"name miss", TaskFilter{NameContains: "spec"}, false},
		{"all criteria", TaskFilter{ProjectID: IntPtr(1), AssignedTo: IntPtr(7), NameContains: "draft"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(task))
		})
	}

	assert.False(t, TaskFilter{AssignedTo: IntPtr(7)}.Matches(&Task{ID: 1}), "unassigned never matches an assignee")
}
