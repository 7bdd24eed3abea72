package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Keep(t *testing.T) {
	pendingLow := &Task{Priority: PriorityLow}
	doneLow := &Task{Priority: PriorityLow, Completed: true}
	pendingHigh := &Task{Priority: PriorityHigh}
	doneHigh := &Task{Priority: PriorityHigh, Completed: true}

	tests := []struct {
		filter Filter
		want   []bool // pendingLow, doneLow, pendingHigh, doneHigh
	}{
		{FilterAll, []bool{true, true, true, true}},
		{FilterPending, []bool{true, false, true, false}},
		{FilterCompleted, []bool{false, true, false, true}},
		{FilterHigh, []bool{false, false, true, true}},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			for i, task := range []*Task{pendingLow, doneLow, pendingHigh, doneHigh} {
				assert.Equal(t, tt.want[i], tt.filter.Keep(task), "task %d", i)
			}
		})
	}
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("")
	assert.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	f, err = ParseFilter("Completed")
	assert.NoError(t, err)
	assert.Equal(t, FilterCompleted, f)

	_, err = ParseFilter("overdue")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestFilter_Next(t *testing.T) {
	assert.Equal(t, FilterPending, FilterAll.Next())
	assert.Equal(t, FilterAll, FilterHigh.Next())
	assert.Equal(t, FilterAll, Filter("bogus").Next())
}

func TestPriority(t *testing.T) {
	p, err := ParsePriority(" HIGH ")
	assert.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	_, err = ParsePriority("urgent")
	assert.ErrorIs(t, err, ErrInvalidPriority)

	assert.Equal(t, "MEDIUM", PriorityMedium.Badge())
	assert.Equal(t, PriorityLow, PriorityHigh.Next())
}

func TestEmptyStateHint(t *testing.T) {
	assert.Equal(t, EmptyStateHintAdd, EmptyStateHint(""))
	assert.Equal(t, EmptyStateHintSearch, EmptyStateHint("milk"))
}
