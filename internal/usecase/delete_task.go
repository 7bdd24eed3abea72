package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/taskstore"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	TaskID int64 // Task ID to delete
}

// DeleteTaskOutput contains the deleted task.
type DeleteTaskOutput struct {
	Task domain.Task
}

// DeleteTask is the use case for deleting a task.
type DeleteTask struct {
	store *taskstore.Store
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(store *taskstore.Store) *DeleteTask {
	return &DeleteTask{store: store}
}

// Execute deletes the task with the given ID.
// Unlike the store, it reports an unknown id as domain.ErrTaskNotFound.
func (uc *DeleteTask) Execute(_ context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	task, ok := uc.store.Get(in.TaskID)
	if !ok {
		return nil, fmt.Errorf("task %d: %w", in.TaskID, domain.ErrTaskNotFound)
	}

	if _, err := uc.store.Delete(in.TaskID); err != nil {
		return &DeleteTaskOutput{Task: task}, fmt.Errorf("delete task: %w", err)
	}

	return &DeleteTaskOutput{Task: task}, nil
}
