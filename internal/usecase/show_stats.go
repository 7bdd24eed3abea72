package usecase

import (
	"context"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/taskstore"
)

// ShowStatsInput contains the input for the ShowStats use case.
type ShowStatsInput struct{}

// ShowStatsOutput contains the summary counts of the task list.
type ShowStatsOutput struct {
	Stats domain.Stats
}

// ShowStats summarizes the task list.
type ShowStats struct {
	store *taskstore.Store
}

// NewShowStats creates a new ShowStats use case.
func NewShowStats(store *taskstore.Store) *ShowStats {
	return &ShowStats{store: store}
}

// Execute computes the statistics.
func (uc *ShowStats) Execute(_ context.Context, _ ShowStatsInput) (*ShowStatsOutput, error) {
	return &ShowStatsOutput{Stats: uc.store.Stats()}, nil
}
