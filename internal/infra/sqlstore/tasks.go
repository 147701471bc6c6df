package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/hierarchy"
)

const taskColumns = `id, project_id, parent_id, assigned_to, name,
	start_date, deadline, actual_end_date, priority, progress`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t                     domain.Task
		parent, assignee      sql.NullInt64
		start, deadline, done sql.NullString
	)
	if err := row.Scan(&t.ID, &t.ProjectID, &parent, &assignee, &t.Name,
		&start, &deadline, &done, &t.Priority, &t.Progress); err != nil {
		return nil, err
	}
	if parent.Valid {
		t.ParentID = domain.IntPtr(int(parent.Int64))
	}
	if assignee.Valid {
		t.AssignedTo = domain.IntPtr(int(assignee.Int64))
	}
	var err error
	if t.StartDate, err = domain.ParseDate(start.String); err != nil {
		return nil, fmt.Errorf("task %d start_date: %w", t.ID, err)
	}
	if t.Deadline, err = domain.ParseDate(deadline.String); err != nil {
		return nil, fmt.Errorf("task %d deadline: %w", t.ID, err)
	}
	if done.Valid && done.String != "" {
		d, err := domain.ParseDate(done.String)
		if err != nil {
			return nil, fmt.Errorf("task %d actual_end_date: %w", t.ID, err)
		}
		t.ActualEndDate = &d
	}
	return &t, nil
}

func queryTasks(q querier, where string, args ...any) ([]*domain.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks"
	if where != "" {
		query += " WHERE " + where
	}
	rows, err := q.Query(query+" ORDER BY id", args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func nullDate(d domain.Date) sql.NullString {
	if d.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func nullDatePtr(d *domain.Date) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return nullDate(*d)
}

// Get retrieves a task by ID. Returns nil if not found.
func (s *Store) Get(id int) (*domain.Task, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	t, err := scanTask(db.QueryRow("SELECT "+taskColumns+" FROM tasks WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return t, nil
}

// List retrieves tasks matching the filter, ordered by ID.
func (s *Store) List(filter domain.TaskFilter) ([]*domain.Task, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	var (
		conds []string
		args  []any
	)
	if filter.ProjectID != nil {
		conds = append(conds, "project_id = ?")
		args = append(args, *filter.ProjectID)
	}
	if filter.ParentID != nil {
		conds = append(conds, "parent_id = ?")
		args = append(args, *filter.ParentID)
	}
	if filter.AssignedTo != nil {
		conds = append(conds, "assigned_to = ?")
		args = append(args, *filter.AssignedTo)
	}
	if filter.NameContains != "" {
		// lower() folds ASCII only.
		conds = append(conds, "instr(lower(name), lower(?)) > 0")
		args = append(args, filter.NameContains)
	}
	if filter.RootsOnly {
		conds = append(conds, "parent_id IS NULL")
	}
	return queryTasks(db, strings.Join(conds, " AND "), args...)
}

// snapshot reads the tasks of projectID plus the row parentID refers to
// when it lives in another project.
func snapshot(q querier, projectID int, parentID *int) ([]*domain.Task, error) {
	return queryTasks(q, "project_id = ? OR id = ?", projectID, nullInt(parentID))
}

// Create assigns an ID to task and stores it once guard approves.
func (s *Store) Create(task *domain.Task, guard domain.SnapshotGuard) error {
	return s.withTx(func(tx *sql.Tx) error {
		ok, err := exists(tx, "projects", task.ProjectID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("create task: %w", domain.ErrProjectNotFound)
		}
		if err := checkAssignee(tx, task.AssignedTo); err != nil {
			return fmt.Errorf("create task: %w", err)
		}
		if guard != nil {
			snap, err := snapshot(tx, task.ProjectID, task.ParentID)
			if err != nil {
				return err
			}
			if err := guard(snap); err != nil {
				return err
			}
		}
		res, err := tx.Exec(`INSERT INTO tasks (project_id, parent_id, assigned_to, name,
			start_date, deadline, actual_end_date, priority, progress)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			task.ProjectID, nullInt(task.ParentID), nullInt(task.AssignedTo), task.Name,
			nullDate(task.StartDate), nullDate(task.Deadline), nullDatePtr(task.ActualEndDate),
			task.Priority, task.Progress)
		if err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
		task.ID = int(id)
		return nil
	})
}

func checkAssignee(q querier, assignee *int) error {
	if assignee == nil {
		return nil
	}
	ok, err := exists(q, "people", *assignee)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrPersonNotFound
	}
	return nil
}

// Update stores every field except ID, ProjectID and ParentID.
func (s *Store) Update(task *domain.Task) error {
	return s.withTx(func(tx *sql.Tx) error {
		return updateTask(tx, task)
	})
}

// Reparent changes the parent of a task once guard approves.
func (s *Store) Reparent(taskID int, parentID *int, guard domain.SnapshotGuard) error {
	return s.withTx(func(tx *sql.Tx) error {
		return reparentTask(tx, taskID, parentID, guard)
	})
}

// UpdateAndReparent runs Update and Reparent in one transaction.
func (s *Store) UpdateAndReparent(task *domain.Task, parentID *int, guard domain.SnapshotGuard) error {
	return s.withTx(func(tx *sql.Tx) error {
		if err := reparentTask(tx, task.ID, parentID, guard); err != nil {
			return err
		}
		return updateTask(tx, task)
	})
}

func updateTask(tx *sql.Tx, task *domain.Task) error {
	if err := checkAssignee(tx, task.AssignedTo); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	res, err := tx.Exec(`UPDATE tasks SET assigned_to = ?, name = ?, start_date = ?,
		deadline = ?, actual_end_date = ?, priority = ?, progress = ?
		WHERE id = ?`,
		nullInt(task.AssignedTo), task.Name, nullDate(task.StartDate),
		nullDate(task.Deadline), nullDatePtr(task.ActualEndDate), task.Priority, task.Progress,
		task.ID)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if n == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func reparentTask(tx *sql.Tx, taskID int, parentID *int, guard domain.SnapshotGuard) error {
	var projectID int
	err := tx.QueryRow("SELECT project_id FROM tasks WHERE id = ?", taskID).Scan(&projectID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrTaskNotFound
	}
	if err != nil {
		return fmt.Errorf("get task %d: %w", taskID, err)
	}
	if guard != nil {
		snap, err := snapshot(tx, projectID, parentID)
		if err != nil {
			return err
		}
		if err := guard(snap); err != nil {
			return err
		}
	}
	if _, err := tx.Exec("UPDATE tasks SET parent_id = ? WHERE id = ?", nullInt(parentID), taskID); err != nil {
		return fmt.Errorf("reparent task: %w", err)
	}
	return nil
}

// Delete removes a task and its whole subtask subtree.
func (s *Store) Delete(id int) ([]int, error) {
	var removed []int
	err := s.withTx(func(tx *sql.Tx) error {
		all, err := queryTasks(tx, "")
		if err != nil {
			return err
		}
		idx, err := hierarchy.NewIndex(all)
		if err != nil {
			return err
		}
		removed = hierarchy.Subtree(idx, id)
		if removed == nil {
			return domain.ErrTaskNotFound
		}
		for _, d := range removed {
			if _, err := tx.Exec("DELETE FROM tasks WHERE id = ?", d); err != nil {
				return fmt.Errorf("delete task %d: %w", d, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}
