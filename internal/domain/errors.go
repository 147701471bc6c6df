package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrProjectNotFound     = errors.New("project not found")
	ErrPersonNotFound      = errors.New("person not found")
	ErrNotInitialized      = errors.New("store not initialized (run 'teamtasks init' first)")
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrEmptyCode           = errors.New("code cannot be empty")
	ErrDuplicateProject    = errors.New("project name or code already exists")
	ErrInvalidProgress     = errors.New("progress must be between 0 and 100")
	ErrInvalidDate         = errors.New("invalid date (want YYYY-MM-DD)")
	ErrDeadlineBeforeStart = errors.New("deadline is before start date")
	ErrNoFieldsToUpdate    = errors.New("no fields to update")
	ErrParentConflict      = errors.New("cannot set a parent and make the task a root at once")
	ErrAssigneeConflict    = errors.New("cannot assign and unassign a task at once")
	ErrUnknownStoreBackend = errors.New("unknown store backend")
	ErrConfigExists        = errors.New("config file already exists")

	// ErrReparentRejected is matched by every *ReparentError.
	ErrReparentRejected = errors.New("parent assignment rejected")
	// ErrDataIntegrity is matched by every *DataIntegrityError.
	ErrDataIntegrity = errors.New("data integrity violation")
)

// RejectReason names why a parent assignment was refused.
type RejectReason string

// Reasons a parent assignment can be refused.
const (
	RejectSelfParent       RejectReason = "self_parent"
	RejectParentNotFound   RejectReason = "parent_not_found"
	RejectCrossProject     RejectReason = "cross_project"
	RejectCycleDetected    RejectReason = "cycle_detected"
	RejectCorruptHierarchy RejectReason = "corrupt_hierarchy"
)

// Message returns a human readable description of the reason.
func (r RejectReason) Message() string {
	switch r {
	case RejectSelfParent:
		return "a task cannot be its own parent"
	case RejectParentNotFound:
		return "parent task does not exist"
	case RejectCrossProject:
		return "parent task belongs to a different project"
	case RejectCycleDetected:
		return "parent is a descendant of the task"
	case RejectCorruptHierarchy:
		return "stored parent links already contain a cycle"
	default:
		return string(r)
	}
}

// ReparentError is the outcome of a refused parent assignment. It is an
// expected result of user input, not a fault.
type ReparentError struct {
	ParentID *int
	Reason   RejectReason
	TaskID   int
}

func (e *ReparentError) Error() string {
	parent := "none"
	if e.ParentID != nil {
		parent = fmt.Sprintf("#%d", *e.ParentID)
	}
	task := "new task"
	if e.TaskID != 0 {
		task = fmt.Sprintf("task #%d", e.TaskID)
	}
	return fmt.Sprintf("cannot set parent of %s to %s: %s", task, parent, e.Reason.Message())
}

// Unwrap lets errors.Is match ErrReparentRejected.
func (e *ReparentError) Unwrap() error { return ErrReparentRejected }

// RejectionReason extracts the reason from err, if it is a *ReparentError.
func RejectionReason(err error) (RejectReason, bool) {
	var re *ReparentError
	if errors.As(err, &re) {
		return re.Reason, true
	}
	return "", false
}

// DataIntegrityError reports input that cannot be turned into a hierarchy
// without losing data, such as the same task ID appearing twice.
type DataIntegrityError struct {
	Msg    string
	TaskID int
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("%s: task #%d: %s", ErrDataIntegrity, e.TaskID, e.Msg)
}

// Unwrap lets errors.Is match ErrDataIntegrity.
func (e *DataIntegrityError) Unwrap() error { return ErrDataIntegrity }
