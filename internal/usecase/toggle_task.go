package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/taskstore"
)

// ToggleTaskInput contains the parameters for toggling a task.
type ToggleTaskInput struct {
	TaskID int64
}

// ToggleTaskOutput contains the task after the toggle.
type ToggleTaskOutput struct {
	Task domain.Task
}

// ToggleTask is the use case for flipping the completed flag of a task.
type ToggleTask struct {
	store *taskstore.Store
}

// NewToggleTask creates a new ToggleTask use case.
func NewToggleTask(store *taskstore.Store) *ToggleTask {
	return &ToggleTask{store: store}
}

// Execute toggles the task.
func (uc *ToggleTask) Execute(_ context.Context, in ToggleTaskInput) (*ToggleTaskOutput, error) {
	found, err := uc.store.ToggleComplete(in.TaskID)
	if !found {
		return nil, fmt.Errorf("task %d: %w", in.TaskID, domain.ErrTaskNotFound)
	}
	task, _ := uc.store.Get(in.TaskID)
	return &ToggleTaskOutput{Task: task}, err
}
