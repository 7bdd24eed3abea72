package taskstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/testutil"
)

func seedCompleted(t *testing.T, f *fixture) []domain.Task {
	t.Helper()
	tasks := seed(t, f,
		domain.TaskInput{Text: "a"},
		domain.TaskInput{Text: "b"},
		domain.TaskInput{Text: "c"},
	)
	for _, task := range tasks[:2] {
		_, err := f.store.ToggleComplete(task.ID)
		require.NoError(t, err)
	}
	return tasks
}

func TestRequestClearCompleted_NoMutation(t *testing.T) {
	f := newFixture(t)
	seedCompleted(t, f)
	writes := f.slot.Writes

	req := f.store.RequestClearCompleted()

	assert.Equal(t, ClearPrompt, req.Prompt)
	assert.Equal(t, 2, req.Count)
	assert.False(t, req.Resolved())
	assert.Equal(t, 3, f.store.Len())
	assert.Equal(t, writes, f.slot.Writes)
}

func TestClearRequest_Confirm(t *testing.T) {
	f := newFixture(t)
	seedCompleted(t, f)

	req := f.store.RequestClearCompleted()
	removed, err := req.Confirm()
	require.NoError(t, err)

	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"c"}, texts(f.store.Query(domain.FilterAll, "")))
	assert.Equal(t, []string{"c"}, texts(f.open().Query(domain.FilterAll, "")))

	_, err = req.Confirm()
	assert.ErrorIs(t, err, domain.ErrRequestResolved)
}

func TestClearRequest_Decline(t *testing.T) {
	f := newFixture(t)
	seedCompleted(t, f)
	writes := f.slot.Writes

	req := f.store.RequestClearCompleted()
	req.Decline()

	assert.True(t, req.Resolved())
	assert.Equal(t, 3, f.store.Len())
	assert.Equal(t, writes, f.slot.Writes)

	_, err := req.Confirm()
	assert.ErrorIs(t, err, domain.ErrRequestResolved)
	assert.Equal(t, 3, f.store.Len())
}

func TestClearRequest_ClearsEditingTarget(t *testing.T) {
	f := newFixture(t)
	tasks := seedCompleted(t, f)
	_, ok := f.store.StartEditing(tasks[0].ID)
	require.True(t, ok)

	_, err := f.store.RequestClearCompleted().Confirm()
	require.NoError(t, err)

	_, editing := f.store.Editing()
	assert.False(t, editing)
}

func TestClearCompleted_WithConfirmer(t *testing.T) {
	tests := []struct {
		name        string
		confirmer   *testutil.StaticConfirmer
		wantRemoved int
		wantLen     int
		wantErr     bool
	}{
		{"yes", &testutil.StaticConfirmer{Answer: true}, 2, 1, false},
		{"no", &testutil.StaticConfirmer{Answer: false}, 0, 3, false},
		{"error", &testutil.StaticConfirmer{Err: errors.New("eof")}, 0, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			seedCompleted(t, f)

			removed, err := f.store.ClearCompleted(tt.confirmer)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantRemoved, removed)
			assert.Equal(t, tt.wantLen, f.store.Len())
			assert.Equal(t, []string{ClearPrompt}, tt.confirmer.Prompts)
		})
	}
}
