package hierarchy

import "github.com/runoshun/teamtasks/internal/domain"

// ValidateReparent decides whether task taskID may take parentID as its new
// parent. A nil parentID (make the task a root) is always allowed for an
// existing task.
//
// Refusals are returned as *domain.ReparentError. The only other error is
// domain.ErrTaskNotFound when taskID is not indexed. The function has no
// side effects; callers must pass an index that reflects the current store
// and hold the store's write lock until they have written the result.
func ValidateReparent(idx *Index, taskID int, parentID *int) error {
	task := idx.Get(taskID)
	if task == nil {
		return domain.ErrTaskNotFound
	}
	if parentID == nil {
		return nil
	}
	reject := func(reason domain.RejectReason) error {
		return &domain.ReparentError{TaskID: taskID, ParentID: parentID, Reason: reason}
	}

	if *parentID == taskID {
		return reject(domain.RejectSelfParent)
	}
	parent := idx.Get(*parentID)
	if parent == nil {
		return reject(domain.RejectParentNotFound)
	}
	if parent.ProjectID != task.ProjectID {
		return reject(domain.RejectCrossProject)
	}

	// Walk up from the candidate. Meeting the task means the candidate is
	// one of its descendants. A healthy chain visits at most every task of
	// the project once.
	limit := idx.ProjectSize(task.ProjectID) + 1
	cur := parent
	for steps := 0; ; steps++ {
		if steps > limit {
			return reject(domain.RejectCorruptHierarchy)
		}
		if cur.ID == taskID {
			return reject(domain.RejectCycleDetected)
		}
		if cur.ParentID == nil {
			return nil
		}
		next := idx.Get(*cur.ParentID)
		if next == nil || next.ProjectID != task.ProjectID {
			// Dangling links end the chain the same way Build treats them.
			return nil
		}
		cur = next
	}
}

// ValidatePlacement checks the parent of a task that is about to be created
// in projectID. A new task has no descendants, so only existence and
// project containment can fail.
func ValidatePlacement(idx *Index, projectID int, parentID *int) error {
	if parentID == nil {
		return nil
	}
	parent := idx.Get(*parentID)
	if parent == nil {
		return &domain.ReparentError{ParentID: parentID, Reason: domain.RejectParentNotFound}
	}
	if parent.ProjectID != projectID {
		return &domain.ReparentError{ParentID: parentID, Reason: domain.RejectCrossProject}
	}
	return nil
}

// ReparentGuard returns a domain.SnapshotGuard that runs ValidateReparent
// against the snapshot a store hands it.
func ReparentGuard(taskID int, parentID *int) domain.SnapshotGuard {
	return func(snapshot []*domain.Task) error {
		idx, err := NewIndex(snapshot)
		if err != nil {
			return err
		}
		return ValidateReparent(idx, taskID, parentID)
	}
}

// PlacementGuard returns a domain.SnapshotGuard that runs ValidatePlacement
// against the snapshot a store hands it.
func PlacementGuard(projectID int, parentID *int) domain.SnapshotGuard {
	return func(snapshot []*domain.Task) error {
		idx, err := NewIndex(snapshot)
		if err != nil {
			return err
		}
		return ValidatePlacement(idx, projectID, parentID)
	}
}
