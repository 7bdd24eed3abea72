package taskstore

import (
	"fmt"

	"github.com/runoshun/tasklist/internal/domain"
)

// StartEditing marks the task as the target of the next Submit and returns
// it so a form can be pre-filled. Unknown ids leave the target unchanged.
func (s *Store) StartEditing(id int64) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Task{}, false
	}
	s.editing = id
	s.isEditing = true
	return s.tasks[i], true
}

// CancelEditing clears the editing target.
func (s *Store) CancelEditing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isEditing = false
}

// Editing returns the current editing target.
func (s *Store) Editing() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editing, s.isEditing
}

// Submit updates the editing target when one is set, otherwise creates a task.
// Invalid input keeps the editing target so the form can be corrected.
func (s *Store) Submit(in domain.TaskInput) (domain.Task, error) {
	in, err := in.Normalize()
	if err != nil {
		return domain.Task{}, err
	}

	id, editing := s.Editing()
	if !editing {
		return s.Create(in)
	}

	s.CancelEditing()
	found, err := s.Update(id, in)
	if !found {
		return domain.Task{}, fmt.Errorf("task %d: %w", id, domain.ErrTaskNotFound)
	}
	t, _ := s.Get(id)
	return t, err
}
