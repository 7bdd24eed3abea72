package usecase

import (
	"context"
	"slices"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/taskstore"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Filter string // all, pending, completed or high ("" = all)
	Search string // Case-insensitive substring of text or category
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Tasks []domain.Task // Matching tasks, newest first
	Total int           // Size of the whole list
}

// ListTasks is the use case for listing tasks.
type ListTasks struct {
	store *taskstore.Store
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(store *taskstore.Store) *ListTasks {
	return &ListTasks{store: store}
}

// Execute returns the tasks matching the filter and search.
func (uc *ListTasks) Execute(_ context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	filter, err := domain.ParseFilter(in.Filter)
	if err != nil {
		return nil, err
	}
	return &ListTasksOutput{
		Tasks: slices.Collect(uc.store.Query(filter, in.Search)),
		Total: uc.store.Len(),
	}, nil
}
