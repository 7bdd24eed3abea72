package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/taskstore"
	"github.com/runoshun/tasklist/internal/testutil"
)

var testNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*taskstore.Store, *testutil.MemorySlot) {
	t.Helper()
	slot := testutil.NewMemorySlot()
	store := taskstore.New(slot, taskstore.WithClock(&testutil.MockClock{NowTime: testNow}))
	return store, slot
}

func mustCreate(t *testing.T, store *taskstore.Store, in domain.TaskInput) domain.Task {
	t.Helper()
	task, err := store.Create(in)
	require.NoError(t, err)
	return task
}
