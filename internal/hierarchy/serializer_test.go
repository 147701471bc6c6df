package hierarchy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/teamtasks/internal/domain"
)

func TestSerializeForest_Scenario(t *testing.T) {
	forest, err := Build(scenario())
	require.NoError(t, err)

	got := SerializeForest(forest.Roots(1))

	want := []TreeNode{{
		ID:   1,
		Name: "Design",
		Subtasks: []TreeNode{
			{ID: 2, Name: "Spec", Subtasks: []TreeNode{
				{ID: 4, Name: "Draft", Subtasks: []TreeNode{}},
			}},
			{ID: 3, Name: "Review", Subtasks: []TreeNode{}},
		},
	}}
	assert.Equal(t, want, got)
}

func TestSerialize_EmptySubtasksEncodeAsArray(t *testing.T) {
	forest, err := Build([]*domain.Task{task(1, 0, "solo", 0)})
	require.NoError(t, err)

	data, err := json.Marshal(Serialize(forest.Node(1)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"solo","subtasks":[]}`, string(data))
}

func TestSerializeForest_NoRoots(t *testing.T) {
	data, err := json.Marshal(SerializeForest(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestSerializeTasks(t *testing.T) {
	// Setup
	tasks := scenario()
	tasks[1].AssignedTo = domain.IntPtr(7)
	tasks[1].Progress = 40
	tasks[1].StartDate = domain.NewDate(2025, 1, 6)
	tasks[1].Deadline = domain.NewDate(2025, 1, 31)
	tasks[2].AssignedTo = domain.IntPtr(8) // unknown person
	forest, err := Build(tasks)
	require.NoError(t, err)
	names := NamesFrom(
		[]*domain.Project{{ID: 1, Name: "Website"}},
		[]*domain.Person{{ID: 7, Name: "Ada"}},
	)

	// Execute
	got := SerializeTasks(forest.Roots(1), names)

	// Assert
	require.Len(t, got, 1)
	design := got[0]
	assert.Equal(t, "Website", design.ProjectName)
	assert.Nil(t, design.Parent)
	require.Len(t, design.Subtasks, 2)

	spec := design.Subtasks[0]
	assert.Equal(t, 2, spec.ID)
	require.NotNil(t, spec.AssignedToName)
	assert.Equal(t, "Ada", *spec.AssignedToName)
	assert.Equal(t, 1, *spec.Parent)
	assert.Equal(t, []int{4}, []int{spec.Subtasks[0].ID})

	review := design.Subtasks[1]
	assert.Equal(t, 8, *review.AssignedTo)
	assert.Nil(t, review.AssignedToName)

	data, err := json.Marshal(spec)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 2,
		"name": "Spec",
		"start_date": "2025-01-06",
		"deadline": "2025-01-31",
		"project": 1,
		"project_name": "Website",
		"assigned_to": 7,
		"assigned_to_name": "Ada",
		"priority": 1,
		"progress": 40,
		"parent": 1,
		"subtasks": [{
			"id": 4,
			"name": "Draft",
			"start_date": null,
			"deadline": null,
			"project": 1,
			"project_name": "Website",
			"assigned_to": null,
			"assigned_to_name": null,
			"priority": 1,
			"progress": 0,
			"parent": 2,
			"subtasks": []
		}]
	}`, string(data))
}

// Both DTO shapes must list children in the same order.
func TestSerializeTasks_MatchesTreeOrder(t *testing.T) {
	tasks := []*domain.Task{
		task(1, 0, "r", 0),
		task(2, 1, "m", 2),
		task(3, 1, "a", 2),
		task(4, 1, "z", 1),
		task(5, 3, "k", 0),
		task(6, 3, "b", 0),
	}
	forest, err := Build(tasks)
	require.NoError(t, err)

	tree := SerializeForest(forest.Roots(1))
	flat := SerializeTasks(forest.Roots(1), Names{})

	var walk func(a []TreeNode, b []TaskDTO)
	walk = func(a []TreeNode, b []TaskDTO) {
		require.Len(t, b, len(a))
		for i := range a {
			assert.Equal(t, a[i].ID, b[i].ID)
			walk(a[i].Subtasks, b[i].Subtasks)
		}
	}
	walk(tree, flat)
	assert.Equal(t, []int{4, 3, 2}, []int{tree[0].Subtasks[0].ID, tree[0].Subtasks[1].ID, tree[0].Subtasks[2].ID})
}

func TestProjectTrees(t *testing.T) {
	tasks := append(scenario(), inProject(2, task(9, 0, "Kickoff", 0)))
	forest, err := Build(tasks)
	require.NoError(t, err)
	projects := []*domain.Project{
		{ID: 1, Name: "Website"},
		{ID: 2, Name: "Launch"},
		{ID: 3, Name: "Empty"},
	}

	got := ProjectTrees(projects, forest)

	require.Len(t, got, 3)
	assert.Equal(t, "Website", got[0].Name)
	require.Len(t, got[0].Tasks, 1)
	assert.Equal(t, 1, got[0].Tasks[0].ID)
	assert.Equal(t, []TreeNode{{ID: 9, Name: "Kickoff", Subtasks: []TreeNode{}}}, got[1].Tasks)

	data, err := json.Marshal(got[2])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"name":"Empty","tasks":[]}`, string(data))
}
