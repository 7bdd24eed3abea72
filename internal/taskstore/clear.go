package taskstore

import (
	"sync"

	"github.com/runoshun/tasklist/internal/domain"
)

// ClearRequest is a pending "clear completed tasks" operation.
// Nothing is removed until Confirm is called. A request resolves once.
type ClearRequest struct {
	store    *Store
	Prompt   string // Question to show the user
	Count    int    // Completed tasks at request time
	mu       sync.Mutex
	resolved bool
}

// RequestClearCompleted starts the clear-completed protocol without mutating anything.
func (s *Store) RequestClearCompleted() *ClearRequest {
	return &ClearRequest{
		store:  s,
		Prompt: ClearPrompt,
		Count:  s.Stats().Completed,
	}
}

// Confirm removes every task that is completed now, persists and returns the
// number removed.
func (r *ClearRequest) Confirm() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.resolved {
		return 0, domain.ErrRequestResolved
	}
	r.resolved = true
	return r.store.clearCompleted()
}

// Decline resolves the request without changing anything.
func (r *ClearRequest) Decline() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolved = true
}

// Resolved reports whether Confirm or Decline was called.
func (r *ClearRequest) Resolved() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolved
}

// ClearCompleted asks c and clears completed tasks when the answer is yes.
// It returns the number of tasks removed.
func (s *Store) ClearCompleted(c domain.Confirmer) (int, error) {
	req := s.RequestClearCompleted()
	ok, err := c.Confirm(req.Prompt)
	if err != nil || !ok {
		req.Decline()
		return 0, err
	}
	return req.Confirm()
}
