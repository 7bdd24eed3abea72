package domain

import "strings"

// Filter selects which tasks appear in the view.
type Filter string

const (
	FilterAll       Filter = "all"       // No restriction
	FilterPending   Filter = "pending"   // Not completed
	FilterCompleted Filter = "completed" // Completed
	FilterHigh      Filter = "high"      // High priority, regardless of completion
)

// AllFilters returns the filter selectors in display order.
func AllFilters() []Filter {
	return []Filter{FilterAll, FilterPending, FilterCompleted, FilterHigh}
}

// ParseFilter parses a filter name (case-insensitive). Empty means all.
func ParseFilter(s string) (Filter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FilterAll, nil
	}
	f := Filter(s)
	if !f.IsValid() {
		return "", ErrInvalidFilter
	}
	return f, nil
}

// IsValid returns true if the filter is a known selector.
func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterPending, FilterCompleted, FilterHigh:
		return true
	}
	return false
}

// Keep reports whether the task satisfies the selector.
// Unknown selectors behave like FilterAll.
func (f Filter) Keep(t *Task) bool {
	switch f {
	case FilterPending:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	case FilterHigh:
		return t.Priority == PriorityHigh
	case FilterAll:
		return true
	}
	return true
}

// Next returns the following selector in display order, wrapping around.
func (f Filter) Next() Filter {
	all := AllFilters()
	for i, candidate := range all {
		if candidate == f {
			return all[(i+1)%len(all)]
		}
	}
	return FilterAll
}

// Display returns a human-readable label.
func (f Filter) Display() string {
	switch f {
	case FilterAll:
		return "All"
	case FilterPending:
		return "Pending"
	case FilterCompleted:
		return "Completed"
	case FilterHigh:
		return "High Priority"
	default:
		return string(f)
	}
}

// Messages shown when a view has no tasks.
const (
	EmptyStateTitle      = "No tasks found"
	EmptyStateHintAdd    = "Add your first task to get started!"
	EmptyStateHintSearch = "Try a different search term"
)

// EmptyStateHint returns the hint shown under EmptyStateTitle.
func EmptyStateHint(search string) string {
	if search != "" {
		return EmptyStateHintSearch
	}
	return EmptyStateHintAdd
}
