package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/taskstore"
)

// EditTaskInput contains the parameters for editing a task.
// Nil fields keep their current value.
type EditTaskInput struct {
	Text     *string
	Priority *domain.Priority
	Category *string
	DueDate  *domain.Date
	TaskID   int64
	ClearDue bool // Remove the due date
}

// EditTaskOutput contains the result of editing a task.
type EditTaskOutput struct {
	Task domain.Task
}

// EditTask is the use case for editing a task.
type EditTask struct {
	store *taskstore.Store
}

// NewEditTask creates a new EditTask use case.
func NewEditTask(store *taskstore.Store) *EditTask {
	return &EditTask{store: store}
}

// Execute updates the given fields of the task.
func (uc *EditTask) Execute(_ context.Context, in EditTaskInput) (*EditTaskOutput, error) {
	task, ok := uc.store.Get(in.TaskID)
	if !ok {
		return nil, fmt.Errorf("task %d: %w", in.TaskID, domain.ErrTaskNotFound)
	}

	edit := task.Input()
	if in.Text != nil {
		edit.Text = *in.Text
	}
	if in.Priority != nil {
		edit.Priority = *in.Priority
	}
	if in.Category != nil {
		edit.Category = *in.Category
	}
	if in.DueDate != nil {
		edit.DueDate = *in.DueDate
	}
	if in.ClearDue {
		edit.DueDate = domain.Date{}
	}

	found, err := uc.store.Update(in.TaskID, edit)
	if !found {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("task %d: %w", in.TaskID, domain.ErrTaskNotFound)
	}
	updated, _ := uc.store.Get(in.TaskID)
	return &EditTaskOutput{Task: updated}, err
}
