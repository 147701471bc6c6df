// Package storetest holds the behaviour every domain.Store backend must
// share. Backend packages run it from their own tests.
package storetest

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/hierarchy"
)

// Factory returns a fresh, initialized store.
type Factory func(t *testing.T) domain.Store

// Run executes the store contract against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("projects", func(t *testing.T) { testProjects(t, newStore(t)) })
	t.Run("people", func(t *testing.T) { testPeople(t, newStore(t)) })
	t.Run("members", func(t *testing.T) { testMembers(t, newStore(t)) })
	t.Run("create and get", func(t *testing.T) { testCreateAndGet(t, newStore(t)) })
	t.Run("list filters", func(t *testing.T) { testListFilters(t, newStore(t)) })
	t.Run("update keeps hierarchy", func(t *testing.T) { testUpdate(t, newStore(t)) })
	t.Run("reparent guard", func(t *testing.T) { testReparent(t, newStore(t)) })
	t.Run("update and reparent together", func(t *testing.T) { testUpdateAndReparent(t, newStore(t)) })
	t.Run("delete cascades", func(t *testing.T) { testDelete(t, newStore(t)) })
	t.Run("delete project", func(t *testing.T) { testDeleteProject(t, newStore(t)) })
	t.Run("concurrent reparents stay acyclic", func(t *testing.T) { testConcurrentReparent(t, newStore(t)) })
}

// Seed creates projects Website(1) and Launch(2), person Ada(1), and the
// tasks Design(1) > {Spec(2) > Draft(4), Review(3)} in Website plus
// Kickoff(5) in Launch.
func Seed(t *testing.T, s domain.Store) {
	t.Helper()
	require.NoError(t, s.CreateProject(&domain.Project{Name: "Website", Code: "WEB"}))
	require.NoError(t, s.CreateProject(&domain.Project{Name: "Launch", Code: "LCH"}))
	require.NoError(t, s.CreatePerson(&domain.Person{Name: "Ada", Email: "ada@example.com"}))

	add := func(project int, parent *int, name string, priority int) {
		t.Helper()
		task := &domain.Task{
			ProjectID: project,
			ParentID:  parent,
			Name:      name,
			Priority:  priority,
			StartDate: domain.NewDate(2025, 1, 6),
			Deadline:  domain.NewDate(2025, 2, 28),
		}
		require.NoError(t, s.Create(task, hierarchy.PlacementGuard(project, parent)))
	}
	add(1, nil, "Design", 1)
	add(1, domain.IntPtr(1), "Spec", 1)
	add(1, domain.IntPtr(1), "Review", 2)
	add(1, domain.IntPtr(2), "Draft", 1)
	add(2, nil, "Kickoff", 1)
}

func ids(tasks []*domain.Task) []int {
	out := make([]int, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func testProjects(t *testing.T, s domain.Store) {
	web := &domain.Project{Name: "Website", Code: "WEB"}
	require.NoError(t, s.CreateProject(web))
	assert.Equal(t, 1, web.ID)
	require.NoError(t, s.CreateProject(&domain.Project{Name: "Archive", Code: "ARC"}))

	assert.ErrorIs(t, s.CreateProject(&domain.Project{Name: "Website", Code: "NEW"}), domain.ErrDuplicateProject)
	assert.ErrorIs(t, s.CreateProject(&domain.Project{Name: "Other", Code: "WEB"}), domain.ErrDuplicateProject)

	got, err := s.GetProject(1)
	require.NoError(t, err)
	assert.Equal(t, &domain.Project{ID: 1, Name: "Website", Code: "WEB"}, got)

	missing, err := s.GetProject(99)
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := s.ListProjects()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Archive", all[0].Name)
	assert.Equal(t, "Website", all[1].Name)
}

func testMembers(t *testing.T, s domain.Store) {
	Seed(t, s)
	require.NoError(t, s.CreatePerson(&domain.Person{Name: "Grace"}))

	require.NoError(t, s.AddMember(1, 2))
	require.NoError(t, s.AddMember(1, 1))
	require.NoError(t, s.AddMember(1, 2), "adding twice is allowed")

	web, err := s.GetProject(1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, web.Members, "joining order")

	all, err := s.ListProjects()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Empty(t, all[0].Members, "Launch has no members")
	assert.Equal(t, []int{2, 1}, all[1].Members)

	assert.ErrorIs(t, s.AddMember(9, 1), domain.ErrProjectNotFound)
	assert.ErrorIs(t, s.AddMember(1, 9), domain.ErrPersonNotFound)
}

func testPeople(t *testing.T, s domain.Store) {
	require.NoError(t, s.CreatePerson(&domain.Person{Name: "Grace", Company: "Navy"}))
	ada := &domain.Person{Name: "Ada", Email: "ada@example.com", Position: "Analyst"}
	require.NoError(t, s.CreatePerson(ada))
	assert.Equal(t, 2, ada.ID)

	got, err := s.GetPerson(2)
	require.NoError(t, err)
	assert.Equal(t, ada, got)

	missing, err := s.GetPerson(42)
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := s.ListPeople()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ada", all[0].Name)
	assert.Equal(t, "Grace (Navy)", all[1].String())
}

func testCreateAndGet(t *testing.T, s domain.Store) {
	Seed(t, s)

	spec, err := s.Get(2)
	require.NoError(t, err)
	require.NotNil(t, spec)
	assert.Equal(t, "Spec", spec.Name)
	assert.Equal(t, 1, spec.ProjectID)
	require.NotNil(t, spec.ParentID)
	assert.Equal(t, 1, *spec.ParentID)
	assert.Equal(t, "2025-01-06", spec.StartDate.String())
	assert.Equal(t, "2025-02-28", spec.Deadline.String())
	assert.Nil(t, spec.ActualEndDate)

	missing, err := s.Get(404)
	require.NoError(t, err)
	assert.Nil(t, missing)

	// Unknown project
	err = s.Create(&domain.Task{ProjectID: 9, Name: "x"}, nil)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)

	// Guard rejection leaves the store untouched.
	err = s.Create(&domain.Task{ProjectID: 2, Name: "x", ParentID: domain.IntPtr(1)}, hierarchy.PlacementGuard(2, domain.IntPtr(1)))
	var rej *domain.ReparentError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, domain.RejectCrossProject, rej.Reason)

	all, err := s.List(domain.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 5)

	// The guard sees the project's tasks.
	var seen []int
	err = s.Create(&domain.Task{ProjectID: 2, Name: "y"}, func(snapshot []*domain.Task) error {
		seen = ids(snapshot)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{5}, seen)
}

func testListFilters(t *testing.T, s domain.Store) {
	Seed(t, s)

	all, err := s.List(domain.TaskFilter{})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(all))

	web, err := s.List(domain.TaskFilter{ProjectID: domain.IntPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, ids(web))

	roots, err := s.List(domain.TaskFilter{RootsOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 5}, ids(roots))

	children, err := s.List(domain.TaskFilter{ParentID: domain.IntPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, ids(children))

	for _, id := range []int{2, 4} {
		task, err := s.Get(id)
		require.NoError(t, err)
		task.AssignedTo = domain.IntPtr(1)
		require.NoError(t, s.Update(task))
	}
	assigned, err := s.List(domain.TaskFilter{AssignedTo: domain.IntPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, ids(assigned))

	named, err := s.List(domain.TaskFilter{NameContains: "DR"})
	require.NoError(t, err)
	assert.Equal(t, []int{4}, ids(named), "name search ignores case")

	both, err := s.List(domain.TaskFilter{AssignedTo: domain.IntPtr(1), NameContains: "e"})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ids(both))
}

func testUpdate(t *testing.T, s domain.Store) {
	Seed(t, s)

	spec, err := s.Get(2)
	require.NoError(t, err)
	end := domain.NewDate(2025, 2, 1)
	spec.Name = "Specification"
	spec.Progress = 100
	spec.ActualEndDate = &end
	spec.AssignedTo = domain.IntPtr(1)
	spec.ParentID = nil
	spec.ProjectID = 2
	require.NoError(t, s.Update(spec))

	got, err := s.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "Specification", got.Name)
	assert.Equal(t, 100, got.Progress)
	require.NotNil(t, got.ActualEndDate)
	assert.Equal(t, "2025-02-01", got.ActualEndDate.String())
	require.NotNil(t, got.AssignedTo)
	assert.Equal(t, 1, *got.AssignedTo)
	assert.Equal(t, 1, got.ProjectID, "project is immutable")
	require.NotNil(t, got.ParentID, "parent only changes through Reparent")
	assert.Equal(t, 1, *got.ParentID)

	assert.ErrorIs(t, s.Update(&domain.Task{ID: 404, Name: "x"}), domain.ErrTaskNotFound)
}

func testReparent(t *testing.T, s domain.Store) {
	Seed(t, s)

	// Moving Design under its grandchild would close a loop.
	err := s.Reparent(1, domain.IntPtr(4), hierarchy.ReparentGuard(1, domain.IntPtr(4)))
	var rej *domain.ReparentError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, domain.RejectCycleDetected, rej.Reason)
	design, err := s.Get(1)
	require.NoError(t, err)
	assert.True(t, design.IsRoot(), "rejected write changes nothing")

	// Cross-project candidate reaches the guard.
	var seen []int
	err = s.Reparent(2, domain.IntPtr(5), func(snapshot []*domain.Task) error {
		seen = ids(snapshot)
		return hierarchy.ReparentGuard(2, domain.IntPtr(5))(snapshot)
	})
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, domain.RejectCrossProject, rej.Reason)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, seen)

	// Legal moves.
	require.NoError(t, s.Reparent(4, domain.IntPtr(3), hierarchy.ReparentGuard(4, domain.IntPtr(3))))
	draft, err := s.Get(4)
	require.NoError(t, err)
	assert.Equal(t, 3, *draft.ParentID)

	require.NoError(t, s.Reparent(2, nil, hierarchy.ReparentGuard(2, nil)))
	spec, err := s.Get(2)
	require.NoError(t, err)
	assert.True(t, spec.IsRoot())

	assert.ErrorIs(t, s.Reparent(404, nil, nil), domain.ErrTaskNotFound)

	guardErr := errors.New("stop")
	assert.ErrorIs(t, s.Reparent(3, nil, func([]*domain.Task) error { return guardErr }), guardErr)
}

func testUpdateAndReparent(t *testing.T, s domain.Store) {
	Seed(t, s)

	// A refused move keeps the new name out too.
	design, err := s.Get(1)
	require.NoError(t, err)
	design.Name = "Redesign"
	err = s.UpdateAndReparent(design, domain.IntPtr(4), hierarchy.ReparentGuard(1, domain.IntPtr(4)))
	assert.ErrorIs(t, err, domain.ErrReparentRejected)
	got, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Design", got.Name)
	assert.True(t, got.IsRoot())

	// A failed save keeps the old parent.
	review, err := s.Get(3)
	require.NoError(t, err)
	review.AssignedTo = domain.IntPtr(99)
	err = s.UpdateAndReparent(review, domain.IntPtr(2), hierarchy.ReparentGuard(3, domain.IntPtr(2)))
	assert.ErrorIs(t, err, domain.ErrPersonNotFound)
	got, err = s.Get(3)
	require.NoError(t, err)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, 1, *got.ParentID)
	assert.Nil(t, got.AssignedTo)

	review.AssignedTo = domain.IntPtr(1)
	review.Name = "Peer review"
	require.NoError(t, s.UpdateAndReparent(review, domain.IntPtr(2), hierarchy.ReparentGuard(3, domain.IntPtr(2))))
	got, err = s.Get(3)
	require.NoError(t, err)
	assert.Equal(t, "Peer review", got.Name)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, 2, *got.ParentID)
	require.NotNil(t, got.AssignedTo)
	assert.Equal(t, 1, *got.AssignedTo)
}

func testDelete(t *testing.T, s domain.Store) {
	Seed(t, s)

	removed, err := s.Delete(2)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2}, removed)

	rest, err := s.List(domain.TaskFilter{})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5}, ids(rest))

	_, err = s.Delete(2)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func testDeleteProject(t *testing.T, s domain.Store) {
	Seed(t, s)

	require.NoError(t, s.DeleteProject(1))

	p, err := s.GetProject(1)
	require.NoError(t, err)
	assert.Nil(t, p)
	rest, err := s.List(domain.TaskFilter{})
	require.NoError(t, err)
	assert.Equal(t, []int{5}, ids(rest))

	assert.ErrorIs(t, s.DeleteProject(1), domain.ErrProjectNotFound)
}

// testConcurrentReparent races two opposite moves, Review under Draft and
// Draft under Review. Each is legal alone; together they would form a
// loop. The store must let at most one of them through.
func testConcurrentReparent(t *testing.T, s domain.Store) {
	Seed(t, s)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	moves := [][2]int{{3, 4}, {4, 3}}
	for i, mv := range moves {
		wg.Add(1)
		go func(i, task, parent int) {
			defer wg.Done()
			errs[i] = s.Reparent(task, domain.IntPtr(parent), hierarchy.ReparentGuard(task, domain.IntPtr(parent)))
		}(i, mv[0], mv[1])
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrReparentRejected)
	}
	assert.Equal(t, 1, succeeded)

	all, err := s.List(domain.TaskFilter{})
	require.NoError(t, err)
	forest, err := hierarchy.Build(all)
	require.NoError(t, err)
	assert.Empty(t, forest.Anomalies, "stored links stay acyclic")
	assert.Equal(t, 5, forest.Len())
}
