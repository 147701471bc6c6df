package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/teamtasks/internal/domain"
)

func TestProjectNewCommand(t *testing.T) {
	c, store := newTestContainer()

	out, _, err := execute(t, newProjectCommand(c), "new", "--name", "Archive", "--code", "ARC")
	require.NoError(t, err)
	assert.Equal(t, "Created project #3 Archive (ARC)\n", out)
	assert.Len(t, store.Projects, 3)

	_, _, err = execute(t, newProjectCommand(c), "new", "--name", "Other", "--code", "WEB")
	assert.ErrorIs(t, err, domain.ErrDuplicateProject)
}

func TestProjectListCommand(t *testing.T) {
	c, _ := newTestContainer()

	out, _, err := execute(t, newProjectCommand(c), "list")

	require.NoError(t, err)
	assert.Equal(t, "Launch (#2)\n"+
		"  #5 Kickoff\n"+
		"\n"+
		"Website (#1)\n"+
		"  #1 Design\n"+
		"    #2 Spec\n"+
		"      #4 Draft\n"+
		"    #3 Review\n", out)
}

func TestProjectTreeCommand(t *testing.T) {
	c, _ := newTestContainer()

	out, _, err := execute(t, newProjectCommand(c), "tree", "2")
	require.NoError(t, err)
	assert.Equal(t, "Launch (#2)\n  #5 Kickoff\n", out)

	_, _, err = execute(t, newProjectCommand(c), "tree", "9")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestProjectRmCommand(t *testing.T) {
	c, store := newTestContainer()

	out, _, err := execute(t, newProjectCommand(c), "rm", "1")

	require.NoError(t, err)
	assert.Equal(t, "Deleted project #1 Website\n", out)
	assert.Len(t, store.Tasks, 1)
}

func TestPersonCommands(t *testing.T) {
	c, store := newTestContainer()

	out, _, err := execute(t, newPersonCommand(c), "new", "--name", "Grace", "--company", "Navy")
	require.NoError(t, err)
	assert.Equal(t, "Added person #2 Grace (Navy)\n", out)
	assert.Len(t, store.People, 2)

	out, _, err = execute(t, newPersonCommand(c), "list")
	require.NoError(t, err)
	assert.Equal(t, "ID   NAME    EMAIL   POSITION   COMPANY\n"+
		"1    Ada     -       -          Analytical\n"+
		"2    Grace   -       -          Navy\n", out)
}

func TestProjectMemberAddCommand(t *testing.T) {
	c, store := newTestContainer()
	store.AddPerson(&domain.Person{ID: 2, Name: "Grace"})

	out, _, err := execute(t, newProjectCommand(c), "member", "add", "1", "2")
	require.NoError(t, err)
	assert.Equal(t, "Added person #2 to project #1 Website\nResponsible: Grace\n", out)

	_, _, err = execute(t, newProjectCommand(c), "member", "add", "1", "1")
	require.NoError(t, err)
	out, _, err = execute(t, newProjectCommand(c), "member", "add", "1", "2")
	require.NoError(t, err)
	assert.Equal(t, "Person #2 is already a member of project #1 Website\nResponsible: Grace\n", out)
	assert.Equal(t, []int{2, 1}, store.Projects[1].Members)

	_, _, err = execute(t, newProjectCommand(c), "member", "add", "1", "8")
	assert.ErrorIs(t, err, domain.ErrPersonNotFound)
	_, _, err = execute(t, newProjectCommand(c), "member", "add", "1", "x")
	assert.ErrorContains(t, err, "invalid person ID")
}

func TestProjectShowCommand(t *testing.T) {
	c, store := newTestContainer()

	out, _, err := execute(t, newProjectCommand(c), "show", "2")
	require.NoError(t, err)
	assert.Equal(t, "Launch (#2)\n"+
		"Code:        LCH\n"+
		"Responsible: N/A\n"+
		"Members:\n"+
		"  (none)\n", out)

	require.NoError(t, store.AddMember(1, 1))
	out, _, err = execute(t, newProjectCommand(c), "show", "1", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 1, "name": "Website", "code": "WEB", "responsible": "Ada",
		"members": [{"id": 1, "name": "Ada", "email": "", "position": "", "company": "Analytical"}]}`, out)
}
