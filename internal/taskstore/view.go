package taskstore

import (
	"iter"
	"slices"

	"github.com/runoshun/tasklist/internal/domain"
)

// Query returns the tasks matching search and filter, in store order.
// The search is applied first: a case-insensitive substring match on text
// or category, skipped when empty. The sequence works on a snapshot taken
// at call time and can be ranged over any number of times.
func (s *Store) Query(filter domain.Filter, search string) iter.Seq[domain.Task] {
	s.mu.Lock()
	snapshot := slices.Clone(s.tasks)
	s.mu.Unlock()

	return func(yield func(domain.Task) bool) {
		for i := range snapshot {
			t := &snapshot[i]
			if !t.Matches(search) || !filter.Keep(t) {
				continue
			}
			if !yield(*t) {
				return
			}
		}
	}
}

// View is Query with the store's current filter and search.
func (s *Store) View() iter.Seq[domain.Task] {
	s.mu.Lock()
	filter, search := s.filter, s.search
	s.mu.Unlock()
	return s.Query(filter, search)
}

// Filter returns the current view filter.
func (s *Store) Filter() domain.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// SetFilter changes the current view filter.
func (s *Store) SetFilter(f domain.Filter) error {
	if !f.IsValid() {
		return domain.ErrInvalidFilter
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
	return nil
}

// Search returns the current search query.
func (s *Store) Search() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search
}

// SetSearch changes the current search query.
func (s *Store) SetSearch(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = q
}
