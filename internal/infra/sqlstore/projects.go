package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/runoshun/teamtasks/internal/domain"
)

// GetProject retrieves a project by ID. Returns nil if not found.
func (s *Store) GetProject(id int) (*domain.Project, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	var p domain.Project
	err = db.QueryRow("SELECT id, name, code FROM projects WHERE id = ?", id).Scan(&p.ID, &p.Name, &p.Code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project %d: %w", id, err)
	}
	members, err := queryMembers(db, "WHERE project_id = ?", id)
	if err != nil {
		return nil, err
	}
	p.Members = members[p.ID]
	return &p, nil
}

// ListProjects returns all projects ordered by name.
func (s *Store) ListProjects() ([]*domain.Project, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query("SELECT id, name, code FROM projects ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var projects []*domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Code); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	members, err := queryMembers(db, "")
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		p.Members = members[p.ID]
	}
	return projects, nil
}

// queryMembers maps project IDs to member IDs in joining order.
func queryMembers(q querier, where string, args ...any) (map[int][]int, error) {
	rows, err := q.Query("SELECT project_id, person_id FROM project_members "+where+" ORDER BY id", args...)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer func() { _ = rows.Close() }()

	members := make(map[int][]int)
	for rows.Next() {
		var projectID, personID int
		if err := rows.Scan(&projectID, &personID); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members[projectID] = append(members[projectID], personID)
	}
	return members, rows.Err()
}

// AddMember appends a person to the project's members.
func (s *Store) AddMember(projectID, personID int) error {
	return s.withTx(func(tx *sql.Tx) error {
		ok, err := exists(tx, "projects", projectID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrProjectNotFound
		}
		if ok, err = exists(tx, "people", personID); err != nil {
			return err
		}
		if !ok {
			return domain.ErrPersonNotFound
		}
		_, err = tx.Exec("INSERT OR IGNORE INTO project_members (project_id, person_id) VALUES (?, ?)", projectID, personID)
		if err != nil {
			return fmt.Errorf("add member: %w", err)
		}
		return nil
	})
}

// CreateProject assigns an ID and stores the project.
func (s *Store) CreateProject(project *domain.Project) error {
	return s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec("INSERT INTO projects (name, code) VALUES (?, ?)", project.Name, project.Code)
		if isUniqueViolation(err) {
			return domain.ErrDuplicateProject
		}
		if err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
		project.ID = int(id)
		return nil
	})
}

// DeleteProject removes a project. Its tasks, and any subtasks hanging
// off them, go with it through ON DELETE CASCADE.
func (s *Store) DeleteProject(id int) error {
	return s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM projects WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("delete project %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete project %d: %w", id, err)
		}
		if n == 0 {
			return domain.ErrProjectNotFound
		}
		return nil
	})
}

// GetPerson retrieves a person by ID. Returns nil if not found.
func (s *Store) GetPerson(id int) (*domain.Person, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	var p domain.Person
	err = db.QueryRow("SELECT id, name, email, position, company FROM people WHERE id = ?", id).
		Scan(&p.ID, &p.Name, &p.Email, &p.Position, &p.Company)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get person %d: %w", id, err)
	}
	return &p, nil
}

// ListPeople returns all people ordered by name.
func (s *Store) ListPeople() ([]*domain.Person, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query("SELECT id, name, email, position, company FROM people ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("query people: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var people []*domain.Person
	for rows.Next() {
		var p domain.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Position, &p.Company); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		people = append(people, &p)
	}
	return people, rows.Err()
}

// CreatePerson assigns an ID and stores the person.
func (s *Store) CreatePerson(person *domain.Person) error {
	return s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec("INSERT INTO people (name, email, position, company) VALUES (?, ?, ?, ?)",
			person.Name, person.Email, person.Position, person.Company)
		if err != nil {
			return fmt.Errorf("insert person: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert person: %w", err)
		}
		person.ID = int(id)
		return nil
	})
}
