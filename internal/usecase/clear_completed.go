package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/taskstore"
)

// ClearCompletedInput contains the parameters for clearing completed tasks.
type ClearCompletedInput struct {
	Confirmer domain.Confirmer // Asked before anything is removed
	Yes       bool             // Skip the question
}

// ClearCompletedOutput contains the result of clearing completed tasks.
type ClearCompletedOutput struct {
	Removed  int  // Number of tasks removed
	Declined bool // The user answered no
}

// ClearCompleted is the use case for removing every completed task.
type ClearCompleted struct {
	store *taskstore.Store
}

// NewClearCompleted creates a new ClearCompleted use case.
func NewClearCompleted(store *taskstore.Store) *ClearCompleted {
	return &ClearCompleted{store: store}
}

// Execute asks for confirmation and removes completed tasks on yes.
func (uc *ClearCompleted) Execute(_ context.Context, in ClearCompletedInput) (*ClearCompletedOutput, error) {
	req := uc.store.RequestClearCompleted()

	if !in.Yes {
		if in.Confirmer == nil {
			req.Decline()
			return nil, fmt.Errorf("clear completed: no confirmer")
		}
		ok, err := in.Confirmer.Confirm(req.Prompt)
		if err != nil {
			req.Decline()
			return nil, err
		}
		if !ok {
			req.Decline()
			return &ClearCompletedOutput{Declined: true}, nil
		}
	}

	removed, err := req.Confirm()
	return &ClearCompletedOutput{Removed: removed}, err
}
