// Package usecase contains the application use cases.
package usecase

import (
	"context"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/taskstore"
)

// AddTaskInput contains the parameters for adding a task.
type AddTaskInput struct {
	Text     string          // Task text (required)
	Priority domain.Priority // Empty means medium
	Category string          // Free-form label
	DueDate  domain.Date     // Zero means no due date
}

// AddTaskOutput contains the result of adding a task.
type AddTaskOutput struct {
	Task domain.Task
}

// AddTask is the use case for adding a task.
type AddTask struct {
	store *taskstore.Store
}

// NewAddTask creates a new AddTask use case.
func NewAddTask(store *taskstore.Store) *AddTask {
	return &AddTask{store: store}
}

// Execute creates the task at the top of the list.
func (uc *AddTask) Execute(_ context.Context, in AddTaskInput) (*AddTaskOutput, error) {
	task, err := uc.store.Create(domain.TaskInput{
		Text:     in.Text,
		Priority: in.Priority,
		Category: in.Category,
		DueDate:  in.DueDate,
	})
	if err != nil {
		if task.ID == 0 {
			return nil, err
		}
		// Created in memory but not saved.
		return &AddTaskOutput{Task: task}, err
	}
	return &AddTaskOutput{Task: task}, nil
}
