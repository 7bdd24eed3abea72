package usecase

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/infra/export"
	"github.com/runoshun/tasklist/internal/taskstore"
)

// ExportTasksInput contains the parameters for exporting tasks.
type ExportTasksInput struct {
	Writer io.Writer // Destination
	Format string    // json, yaml, csv or pdf ("" = json)
	Filter string    // Same as ListTasksInput.Filter
	Search string    // Same as ListTasksInput.Search
}

// ExportTasksOutput contains the result of an export.
type ExportTasksOutput struct {
	Format export.Format
	Count  int // Tasks written
}

// ExportTasks writes the matching tasks in a file format.
type ExportTasks struct {
	store *taskstore.Store
	clock domain.Clock
}

// NewExportTasks creates a new ExportTasks use case.
func NewExportTasks(store *taskstore.Store, clock domain.Clock) *ExportTasks {
	return &ExportTasks{store: store, clock: clock}
}

// Execute renders the matching tasks to in.Writer.
func (uc *ExportTasks) Execute(_ context.Context, in ExportTasksInput) (*ExportTasksOutput, error) {
	format, err := export.ParseFormat(in.Format)
	if err != nil {
		return nil, err
	}
	filter, err := domain.ParseFilter(in.Filter)
	if err != nil {
		return nil, err
	}

	tasks := slices.Collect(uc.store.Query(filter, in.Search))
	if err := export.New(format, uc.clock).Export(in.Writer, tasks); err != nil {
		return nil, fmt.Errorf("export %s: %w", format, err)
	}
	return &ExportTasksOutput{Format: format, Count: len(tasks)}, nil
}
