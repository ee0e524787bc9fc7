package domain

import "time"

// TaskPatch describes a partial update to a task. Nil fields keep the stored
// value and never appear in the computed change set. Priority is carried so
// the immutability rule can be enforced against the stored value.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *Status
	Priority    Priority
}

// Diff computes the field-level change set between the stored task and this
// patch. Only fields the patch supplies are compared; a supplied value equal
// to the stored one is not recorded.
func (p TaskPatch) Diff(stored TaskItem) ChangeSet {
	changes := ChangeSet{}
	if p.Title != nil && *p.Title != stored.Title {
		changes[FieldTitle] = FieldChange{Before: stored.Title, After: *p.Title}
	}
	if p.Description != nil && *p.Description != stored.Description {
		changes[FieldDescription] = FieldChange{Before: stored.Description, After: *p.Description}
	}
	if p.DueDate != nil && !sameDueDate(p.DueDate, stored.DueDate) {
		changes[FieldDueDate] = FieldChange{Before: formatDueDate(stored.DueDate), After: formatDueDate(p.DueDate)}
	}
	if p.Status != nil && *p.Status != stored.Status {
		changes[FieldStatus] = FieldChange{Before: string(stored.Status), After: string(*p.Status)}
	}
	return changes
}

// Apply returns the stored task with the patch's non-nil fields applied and
// UpdatedAt advanced to now.
func (p TaskPatch) Apply(stored TaskItem, now time.Time) TaskItem {
	updated := stored
	if p.Title != nil {
		updated.Title = *p.Title
	}
	if p.Description != nil {
		updated.Description = *p.Description
	}
	if p.DueDate != nil {
		due := p.DueDate.UTC()
		updated.DueDate = &due
	}
	if p.Status != nil {
		updated.Status = *p.Status
	}
	updated.UpdatedAt = now.UTC()
	return updated
}

func sameDueDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func formatDueDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}
