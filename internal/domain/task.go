// Package domain contains core business entities and interfaces.
package domain

import (
	"strings"
	"time"
)

// Task represents a single entry of the task list.
// Fields are ordered to minimize memory padding.
type Task struct {
	CreatedAt time.Time `json:"createdAt"` // Creation time (immutable)
	Text      string    `json:"text"`      // Display text (never blank)
	Priority  Priority  `json:"priority"`  // low, medium or high
	Category  string    `json:"category"`  // Free-form label
	DueDate   Date      `json:"dueDate"`   // Calendar date (zero = no due date)
	ID        int64     `json:"id"`        // Unique within the store
	Completed bool      `json:"completed"` // Completion flag
}

// TaskInput holds the user-editable fields of a task.
// It is the payload of create and update operations.
type TaskInput struct {
	Text     string
	Priority Priority
	Category string
	DueDate  Date
}

// Normalize trims the text and fills in a missing priority.
// It returns ErrEmptyText if nothing is left of the text.
func (in TaskInput) Normalize() (TaskInput, error) {
	in.Text = strings.TrimSpace(in.Text)
	if in.Text == "" {
		return in, ErrEmptyText
	}
	in.Category = strings.TrimSpace(in.Category)
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if !in.Priority.IsValid() {
		return in, ErrInvalidPriority
	}
	return in, nil
}

// Input returns the editable fields of the task.
func (t *Task) Input() TaskInput {
	return TaskInput{
		Text:     t.Text,
		Priority: t.Priority,
		Category: t.Category,
		DueDate:  t.DueDate,
	}
}

// Apply overwrites the editable fields. ID, CreatedAt and Completed are untouched.
func (t *Task) Apply(in TaskInput) {
	t.Text = in.Text
	t.Priority = in.Priority
	t.Category = in.Category
	t.DueDate = in.DueDate
}

// HasDueDate reports whether a due date is set.
func (t *Task) HasDueDate() bool {
	return !t.DueDate.IsZero()
}

// IsOverdue reports whether the due date lies strictly before now
// and the task is still pending. The due date counts from local midnight.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Completed || t.DueDate.IsZero() {
		return false
	}
	return t.DueDate.Time(now.Location()).Before(now)
}

// Matches reports whether the task text or category contains the query,
// ignoring case. An empty query matches every task.
func (t *Task) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := FoldCase(query)
	return strings.Contains(FoldCase(t.Text), q) ||
		strings.Contains(FoldCase(t.Category), q)
}
