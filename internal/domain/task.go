// Package domain contains core business entities and interfaces.
package domain

import (
	"cmp"
	"slices"
	"strings"
)

// Task represents a unit of work inside a project.
// Fields are ordered to minimize memory padding.
type Task struct {
	ParentID      *int   `json:"parent"`                    // Parent task ID (nil = root task)
	AssignedTo    *int   `json:"assigned_to"`               // Assigned person ID (nil = unassigned)
	ActualEndDate *Date  `json:"actual_end_date,omitempty"` // When the work actually finished
	Name          string `json:"name"`                      // Name (required)
	StartDate     Date   `json:"start_date"`                // Planned start
	Deadline      Date   `json:"deadline"`                  // Planned end
	ID            int    `json:"id"`                        // Task ID
	ProjectID     int    `json:"project"`                   // Owning project (immutable)
	Priority      int    `json:"priority"`                  // Lower value = higher precedence
	Progress      int    `json:"progress"`                  // Progress as a percentage (0-100)
}

// IsRoot returns true if this is a root task (no parent).
func (t *Task) IsRoot() bool {
	return t.ParentID == nil
}

// HasParent reports whether the task's parent is id.
func (t *Task) HasParent(id int) bool {
	return t.ParentID != nil && *t.ParentID == id
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	if t.ParentID != nil {
		p := *t.ParentID
		c.ParentID = &p
	}
	if t.AssignedTo != nil {
		a := *t.AssignedTo
		c.AssignedTo = &a
	}
	if t.ActualEndDate != nil {
		d := *t.ActualEndDate
		c.ActualEndDate = &d
	}
	return &c
}

// CompareTasks orders sibling tasks by (priority, name) with the ID as a
// final tie-breaker so the order is total.
func CompareTasks(a, b *Task) int {
	if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
		return c
	}
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// CompareTasksAcross orders tasks from different projects by
// (projectName, priority, name, id). It is used for flat lists spanning
// several projects.
func CompareTasksAcross(aProject string, a *Task, bProject string, b *Task) int {
	if c := strings.Compare(aProject, bProject); c != 0 {
		return c
	}
	return CompareTasks(a, b)
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// Project groups tasks. Name and Code are unique; Code never changes after
// creation.
type Project struct {
	Members []int  `json:"members,omitempty"` // Person IDs in the order they joined
	Name    string `json:"name"`
	Code    string `json:"code"`
	ID      int    `json:"id"`
}

// HasMember reports whether personID belongs to the project.
func (p *Project) HasMember(personID int) bool {
	return slices.Contains(p.Members, personID)
}

// Clone returns a deep copy of the project.
func (p *Project) Clone() *Project {
	c := *p
	c.Members = slices.Clone(p.Members)
	return &c
}

// Person is someone tasks can be assigned to.
type Person struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Position string `json:"position"`
	Company  string `json:"company,omitempty"`
	ID       int    `json:"id"`
}

// String returns "Name (Company)", or just the name when no company is set.
func (p *Person) String() string {
	if p.Company == "" {
		return p.Name
	}
	return p.Name + " (" + p.Company + ")"
}
