package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/hierarchy"
	"github.com/runoshun/teamtasks/internal/testutil"
)

func TestNewProject_Execute(t *testing.T) {
	store := testutil.NewMockStore()
	logger := &testutil.MockLogger{}
	uc := NewNewProject(store, logger)

	out, err := uc.Execute(context.Background(), NewProjectInput{Name: " Website ", Code: "WEB"})

	require.NoError(t, err)
	assert.Equal(t, 1, out.Project.ID)
	assert.Equal(t, "Website", store.Projects[1].Name)
	require.Len(t, logger.Entries, 1)
	assert.Equal(t, "project", logger.Entries[0].Category)
}

func TestNewProject_Execute_Errors(t *testing.T) {
	store := testutil.NewMockStore()
	seedScenario(store)
	uc := NewNewProject(store, nil)

	_, err := uc.Execute(context.Background(), NewProjectInput{Code: "X"})
	assert.ErrorIs(t, err, domain.ErrEmptyName)

	_, err = uc.Execute(context.Background(), NewProjectInput{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrEmptyCode)

	_, err = uc.Execute(context.Background(), NewProjectInput{Name: "Website", Code: "NEW"})
	assert.ErrorIs(t, err, domain.ErrDuplicateProject)
}

func TestListProjects_Execute(t *testing.T) {
	// Setup
	store := testutil.NewMockStore()
	seedScenario(store)
	store.AddProject(&domain.Project{ID: 3, Name: "Archive", Code: "ARC"})
	uc := NewListProjects(store, store, nil)

	// Execute
	out, err := uc.Execute(context.Background(), ListProjectsInput{})

	// Assert
	require.NoError(t, err)
	require.Len(t, out.Projects, 3)
	assert.Equal(t, []string{"Archive", "Launch", "Website"},
		[]string{out.Projects[0].Name, out.Projects[1].Name, out.Projects[2].Name})
	assert.Empty(t, out.Projects[0].Tasks)
	assert.Equal(t, []hierarchy.TreeNode{{ID: 5, Name: "Kickoff", Subtasks: []hierarchy.TreeNode{}}}, out.Projects[1].Tasks)

	website := out.Projects[2]
	require.Len(t, website.Tasks, 1, "only root tasks at the top level")
	assert.Equal(t, "Design", website.Tasks[0].Name)
	assert.Equal(t, 2, website.Tasks[0].Subtasks[0].ID)
	assert.Equal(t, 3, website.Tasks[0].Subtasks[1].ID)
	assert.Empty(t, out.Anomalies)
}

func TestShowProjectTree_Execute(t *testing.T) {
	store := testutil.NewMockStore()
	seedScenario(store)
	store.AddTask(&domain.Task{ID: 9, ProjectID: 1, Name: "Stray", ParentID: domain.IntPtr(404)})
	logger := &testutil.MockLogger{}
	uc := NewShowProjectTree(store, store, logger)

	out, err := uc.Execute(context.Background(), ShowProjectTreeInput{ProjectID: 1})

	require.NoError(t, err)
	assert.Equal(t, "Website", out.Tree.Name)
	// Stray has the lower priority value, so it sorts first.
	assert.Equal(t, []int{9, 1}, []int{out.Tree.Tasks[0].ID, out.Tree.Tasks[1].ID})
	require.Len(t, out.Anomalies, 1)
	assert.Equal(t, hierarchy.AnomalyOrphanReference, out.Anomalies[0].Kind)
	assert.Len(t, logger.Level("WARN"), 1)

	_, err = uc.Execute(context.Background(), ShowProjectTreeInput{ProjectID: 42})
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestShowProjectTree_Execute_DuplicateIDs(t *testing.T) {
	store := testutil.NewMockStore()
	seedScenario(store)
	dup := &dupStore{MockStore: store}
	uc := NewShowProjectTree(dup, dup, nil)

	_, err := uc.Execute(context.Background(), ShowProjectTreeInput{ProjectID: 1})

	assert.ErrorIs(t, err, domain.ErrDataIntegrity)
}

// dupStore lists every task twice.
type dupStore struct {
	*testutil.MockStore
}

func (d *dupStore) List(f domain.TaskFilter) ([]*domain.Task, error) {
	tasks, err := d.MockStore.List(f)
	if err != nil {
		return nil, err
	}
	return append(tasks, tasks...), nil
}

func TestDeleteProject_Execute(t *testing.T) {
	store := testutil.NewMockStore()
	seedScenario(store)
	uc := NewDeleteProject(store, nil)

	out, err := uc.Execute(context.Background(), DeleteProjectInput{ProjectID: 1})

	require.NoError(t, err)
	assert.Equal(t, "Website", out.Project.Name)
	assert.NotContains(t, store.Projects, 1)
	assert.Len(t, store.Tasks, 1, "only the Launch task remains")

	_, err = uc.Execute(context.Background(), DeleteProjectInput{ProjectID: 1})
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestPeople(t *testing.T) {
	store := testutil.NewMockStore()
	create := NewNewPerson(store, nil)
	list := NewListPeople(store)

	_, err := create.Execute(context.Background(), NewPersonInput{Name: "Grace", Company: "Navy"})
	require.NoError(t, err)
	_, err = create.Execute(context.Background(), NewPersonInput{Name: "Ada"})
	require.NoError(t, err)
	_, err = create.Execute(context.Background(), NewPersonInput{Name: ""})
	assert.ErrorIs(t, err, domain.ErrEmptyName)

	out, err := list.Execute(context.Background(), ListPeopleInput{})
	require.NoError(t, err)
	require.Len(t, out.People, 2)
	assert.Equal(t, "Ada", out.People[0].Name)
	assert.Equal(t, "Grace (Navy)", out.People[1].String())

	store.PersonErr = errors.New("gone")
	_, err = list.Execute(context.Background(), ListPeopleInput{})
	assert.ErrorContains(t, err, "list people: gone")
}

func TestAddProjectMember_Execute(t *testing.T) {
	store := testutil.NewMockStore()
	seedScenario(store)
	store.AddPerson(&domain.Person{ID: 2, Name: "Grace"})
	logger := &testutil.MockLogger{}
	uc := NewAddProjectMember(store, store, logger)

	out, err := uc.Execute(context.Background(), AddProjectMemberInput{ProjectID: 1, PersonID: 2})
	require.NoError(t, err)
	assert.True(t, out.Added)
	assert.Equal(t, "Grace", out.Project.Responsible)

	out, err = uc.Execute(context.Background(), AddProjectMemberInput{ProjectID: 1, PersonID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Grace", out.Project.Responsible, "first member stays responsible")
	require.Len(t, out.Project.Members, 2)
	assert.Equal(t, "Ada", out.Project.Members[1].Name)

	out, err = uc.Execute(context.Background(), AddProjectMemberInput{ProjectID: 1, PersonID: 2})
	require.NoError(t, err)
	assert.False(t, out.Added)
	assert.Equal(t, []int{2, 1}, store.Projects[1].Members)
	assert.Len(t, logger.Level("INFO"), 2)

	_, err = uc.Execute(context.Background(), AddProjectMemberInput{ProjectID: 9, PersonID: 1})
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	_, err = uc.Execute(context.Background(), AddProjectMemberInput{ProjectID: 1, PersonID: 9})
	assert.ErrorIs(t, err, domain.ErrPersonNotFound)
}

func TestShowProject_Execute(t *testing.T) {
	store := testutil.NewMockStore()
	seedScenario(store)
	uc := NewShowProject(store, store)

	out, err := uc.Execute(context.Background(), ShowProjectInput{ProjectID: 2})
	require.NoError(t, err)
	assert.Equal(t, "LCH", out.Project.Code)
	assert.Equal(t, NoResponsible, out.Project.Responsible)
	assert.NotNil(t, out.Project.Members)
	assert.Empty(t, out.Project.Members)

	require.NoError(t, store.AddMember(2, 1))
	out, err = uc.Execute(context.Background(), ShowProjectInput{ProjectID: 2})
	require.NoError(t, err)
	assert.Equal(t, "Ada", out.Project.Responsible)

	_, err = uc.Execute(context.Background(), ShowProjectInput{ProjectID: 7})
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}
