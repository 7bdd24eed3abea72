package tui

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tasklist/internal/app"
	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/taskstore"
	"github.com/runoshun/tasklist/internal/testutil"
)

var testNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

// newTestModel creates a sized Model over an in-memory store.
func newTestModel(t *testing.T, inputs ...domain.TaskInput) (*Model, *taskstore.Store) {
	t.Helper()
	clock := &testutil.MockClock{NowTime: testNow}
	store := taskstore.New(testutil.NewMemorySlot(), taskstore.WithClock(clock))
	for _, in := range inputs {
		_, err := store.Create(in)
		require.NoError(t, err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	c := app.NewWithDeps(domain.NewDefaultConfig(), store, clock, &testutil.MockConfigManager{}, logger)

	m := New(c)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, store
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// run executes a mutation command and feeds its message back to the model.
func run(t *testing.T, m *Model, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	m.Update(msg)
	return msg
}

// =============================================================================
// Navigation Tests
// =============================================================================

func TestModel_Navigation(t *testing.T) {
	m, _ := newTestModel(t,
		domain.TaskInput{Text: "alpha"},
		domain.TaskInput{Text: "bravo"},
		domain.TaskInput{Text: "charlie"},
	)
	require.Len(t, m.tasks, 3)
	assert.Equal(t, 0, m.cursor)

	m.Update(runes("j"))
	m.Update(runes("j"))
	assert.Equal(t, 2, m.cursor)

	m.Update(runes("j"))
	assert.Equal(t, 2, m.cursor, "cursor stops at the last task")

	m.Update(runes("k"))
	assert.Equal(t, 1, m.cursor)

	m.Update(runes("g"))
	assert.Equal(t, 0, m.cursor)

	m.Update(runes("G"))
	assert.Equal(t, 2, m.cursor)
	assert.Equal(t, "alpha", m.SelectedTask().Text)
}

func TestModel_SelectedTask_Empty(t *testing.T) {
	m, _ := newTestModel(t)

	assert.Nil(t, m.SelectedTask())

	_, cmd := m.Update(runes("e"))
	assert.Nil(t, cmd)
	assert.Equal(t, ModeNormal, m.mode)

	_, cmd = m.Update(runes("d"))
	assert.Nil(t, cmd)

	_, cmd = m.Update(keyType(tea.KeySpace))
	assert.Nil(t, cmd)
}

// =============================================================================
// Form Tests
// =============================================================================

func TestModel_NewTask(t *testing.T) {
	m, store := newTestModel(t)

	m.Update(runes("n"))
	require.Equal(t, ModeForm, m.mode)
	assert.Equal(t, FieldText, m.field)
	assert.Equal(t, domain.PriorityMedium, m.formPriority)
	assert.Equal(t, domain.DefaultCategory, m.categoryInput.Value())

	m.textInput.SetValue("Buy milk")
	m.dueInput.SetValue("2024-03-11")
	_, cmd := m.Update(keyType(tea.KeyEnter))
	msg := run(t, m, cmd)

	saved, ok := msg.(MsgTaskSaved)
	require.True(t, ok)
	assert.True(t, saved.Created)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, "Task added", m.notice)

	tasks := store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Text)
	assert.Equal(t, domain.NewDate(2024, time.March, 11), tasks[0].DueDate)
	assert.Empty(t, m.textInput.Value(), "form is reset after save")
}

func TestModel_EditTask(t *testing.T) {
	m, store := newTestModel(t, domain.TaskInput{
		Text:     "Send report",
		Priority: domain.PriorityHigh,
		Category: "work",
	})
	task := store.Tasks()[0]

	m.Update(runes("e"))
	require.Equal(t, ModeForm, m.mode)
	assert.Equal(t, "Send report", m.textInput.Value())
	assert.Equal(t, domain.PriorityHigh, m.formPriority)
	assert.Equal(t, "work", m.categoryInput.Value())
	id, editing := store.Editing()
	assert.True(t, editing)
	assert.Equal(t, task.ID, id)

	m.textInput.SetValue("Send final report")
	_, cmd := m.Update(keyType(tea.KeyEnter))
	msg := run(t, m, cmd)

	saved, ok := msg.(MsgTaskSaved)
	require.True(t, ok)
	assert.False(t, saved.Created)
	assert.Equal(t, "Task updated", m.notice)
	assert.Equal(t, 1, store.Len())

	got, found := store.Get(task.ID)
	require.True(t, found)
	assert.Equal(t, "Send final report", got.Text)
	_, editing = store.Editing()
	assert.False(t, editing)
}

func TestModel_FormCancel(t *testing.T) {
	m, store := newTestModel(t, domain.TaskInput{Text: "Buy milk"})

	m.Update(runes("e"))
	m.textInput.SetValue("changed")
	m.Update(keyType(tea.KeyEsc))

	assert.Equal(t, ModeNormal, m.mode)
	_, editing := store.Editing()
	assert.False(t, editing)
	assert.Equal(t, "Buy milk", store.Tasks()[0].Text)
}

func TestModel_FormBlankTextIgnored(t *testing.T) {
	m, store := newTestModel(t)

	m.Update(runes("n"))
	m.textInput.SetValue("   ")
	_, cmd := m.Update(keyType(tea.KeyEnter))

	assert.Nil(t, cmd)
	assert.Equal(t, ModeForm, m.mode)
	assert.Equal(t, 0, store.Len())
}

func TestModel_FormInvalidDate(t *testing.T) {
	m, store := newTestModel(t)

	m.Update(runes("n"))
	m.textInput.SetValue("Buy milk")
	m.dueInput.SetValue("2024-13-01")
	m.Update(keyType(tea.KeyEnter))

	assert.ErrorIs(t, m.err, domain.ErrInvalidDate)
	assert.Equal(t, ModeForm, m.mode)
	assert.Equal(t, FieldDue, m.field)
	assert.Equal(t, 0, store.Len())
}

func TestModel_FormFieldsAndPriority(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(runes("n"))
	m.Update(keyType(tea.KeyTab))
	require.Equal(t, FieldPriority, m.field)

	m.Update(keyType(tea.KeyRight))
	assert.Equal(t, domain.PriorityHigh, m.formPriority)

	m.Update(keyType(tea.KeyRight))
	assert.Equal(t, domain.PriorityLow, m.formPriority)

	m.Update(keyType(tea.KeyLeft))
	assert.Equal(t, domain.PriorityHigh, m.formPriority)

	m.Update(keyType(tea.KeyTab))
	assert.Equal(t, FieldCategory, m.field)

	m.Update(keyType(tea.KeyShiftTab))
	m.Update(keyType(tea.KeyShiftTab))
	assert.Equal(t, FieldText, m.field)
}

func TestModel_ErrorLeavesForm(t *testing.T) {
	m, store := newTestModel(t, domain.TaskInput{Text: "Buy milk"})

	m.Update(runes("e"))
	m.textInput.SetValue("Buy oat milk")
	m.Update(MsgError{Err: domain.ErrTaskNotFound})

	assert.ErrorIs(t, m.err, domain.ErrTaskNotFound)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Empty(t, m.textInput.Value())
	assert.Equal(t, "Buy milk", store.Tasks()[0].Text)
}

func TestModel_SaveAfterTargetDeleted(t *testing.T) {
	m, store := newTestModel(t, domain.TaskInput{Text: "Buy milk"})
	task := store.Tasks()[0]

	m.Update(runes("e"))
	m.textInput.SetValue("Buy oat milk")
	_, cmd := m.Update(keyType(tea.KeyEnter))

	// The task disappears before the save runs.
	_, err := store.Delete(task.ID)
	require.NoError(t, err)
	msg := run(t, m, cmd)

	_, ok := msg.(MsgError)
	require.True(t, ok)
	assert.ErrorIs(t, m.err, domain.ErrTaskNotFound)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 0, store.Len(), "an edit never turns into a create")
}

func TestModel_EditSubmitIgnoresKeysWhileSaving(t *testing.T) {
	m, store := newTestModel(t, domain.TaskInput{Text: "alpha"})
	task := store.Tasks()[0]

	m.Update(runes("e"))
	m.textInput.SetValue("alpha edited")
	_, first := m.Update(keyType(tea.KeyEnter))
	require.NotNil(t, first)
	assert.True(t, m.saving)

	_, second := m.Update(keyType(tea.KeyEnter))
	assert.Nil(t, second)
	_, esc := m.Update(keyType(tea.KeyEsc))
	assert.Nil(t, esc)
	assert.Equal(t, ModeForm, m.mode)

	run(t, m, first)

	tasks := store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
	assert.Equal(t, "alpha edited", tasks[0].Text)
	assert.Equal(t, ModeNormal, m.mode)
	assert.False(t, m.saving)
	assert.Equal(t, "Task updated", m.notice)
}

func TestModel_NewSubmitIgnoresSecondEnter(t *testing.T) {
	m, store := newTestModel(t)

	m.Update(runes("n"))
	m.textInput.SetValue("Buy milk")
	_, first := m.Update(keyType(tea.KeyEnter))
	_, second := m.Update(keyType(tea.KeyEnter))

	assert.Nil(t, second)
	run(t, m, first)
	assert.Equal(t, 1, store.Len())
}

// =============================================================================
// Toggle / Delete Tests
// =============================================================================

func TestModel_Toggle(t *testing.T) {
	m, store := newTestModel(t, domain.TaskInput{Text: "Buy milk"})

	_, cmd := m.Update(keyType(tea.KeySpace))
	run(t, m, cmd)

	assert.True(t, store.Tasks()[0].Completed)
	assert.Equal(t, 1, m.stats.Completed)

	_, cmd = m.Update(runes("x"))
	run(t, m, cmd)

	assert.False(t, store.Tasks()[0].Completed)
}

func TestModel_Delete(t *testing.T) {
	m, store := newTestModel(t,
		domain.TaskInput{Text: "Buy milk"},
		domain.TaskInput{Text: "Call mom"},
	)
	m.Update(runes("G"))

	_, cmd := m.Update(runes("d"))
	run(t, m, cmd)

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "Call mom", store.Tasks()[0].Text)
	assert.Equal(t, `Deleted "Buy milk"`, m.notice)
	assert.Equal(t, 0, m.cursor, "cursor is clamped to the shorter list")
}

// =============================================================================
// Clear Completed Tests
// =============================================================================

func newModelWithCompleted(t *testing.T) (*Model, *taskstore.Store) {
	t.Helper()
	m, store := newTestModel(t,
		domain.TaskInput{Text: "Buy milk"},
		domain.TaskInput{Text: "Call mom"},
		domain.TaskInput{Text: "Pay rent"},
	)
	for _, task := range store.Tasks()[:2] {
		_, err := store.ToggleComplete(task.ID)
		require.NoError(t, err)
	}
	m.reload()
	return m, store
}

func TestModel_ClearCompleted_Confirm(t *testing.T) {
	m, store := newModelWithCompleted(t)

	m.Update(runes("C"))
	require.Equal(t, ModeConfirm, m.mode)
	require.NotNil(t, m.clearReq)
	assert.Equal(t, 2, m.clearReq.Count)
	assert.Equal(t, 3, store.Len(), "nothing is removed before confirmation")

	_, cmd := m.Update(runes("y"))
	msg := run(t, m, cmd)

	cleared, ok := msg.(MsgCompletedCleared)
	require.True(t, ok)
	assert.Equal(t, 2, cleared.Removed)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Nil(t, m.clearReq)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "Cleared 2 completed task(s)", m.notice)
}

func TestModel_ClearCompleted_Decline(t *testing.T) {
	m, store := newModelWithCompleted(t)

	m.Update(runes("C"))
	req := m.clearReq
	_, cmd := m.Update(runes("n"))

	assert.Nil(t, cmd)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Nil(t, m.clearReq)
	assert.True(t, req.Resolved())
	assert.Equal(t, 3, store.Len())
}

func TestModel_ClearCompleted_NothingToClear(t *testing.T) {
	m, store := newTestModel(t, domain.TaskInput{Text: "Buy milk"})

	m.Update(runes("C"))

	assert.Equal(t, ModeNormal, m.mode)
	assert.Nil(t, m.clearReq)
	assert.Equal(t, "No completed tasks to clear", m.notice)
	assert.Equal(t, 1, store.Len())
}

func TestModel_CtrlCDeclinesPendingClear(t *testing.T) {
	m, store := newModelWithCompleted(t)

	m.Update(runes("C"))
	req := m.clearReq
	_, cmd := m.Update(keyType(tea.KeyCtrlC))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, req.Resolved())
	assert.Equal(t, 3, store.Len())
}

// =============================================================================
// Filter / Search Tests
// =============================================================================

func TestModel_Filter(t *testing.T) {
	m, store := newTestModel(t,
		domain.TaskInput{Text: "Buy milk", Priority: domain.PriorityHigh},
		domain.TaskInput{Text: "Call mom"},
	)
	_, err := store.ToggleComplete(store.Tasks()[0].ID)
	require.NoError(t, err)
	m.reload()

	m.Update(runes("f"))
	assert.Equal(t, domain.FilterPending, store.Filter())
	require.Len(t, m.tasks, 1)
	assert.Equal(t, "Buy milk", m.tasks[0].Text)

	m.Update(runes("3"))
	assert.Equal(t, domain.FilterCompleted, store.Filter())
	require.Len(t, m.tasks, 1)
	assert.Equal(t, "Call mom", m.tasks[0].Text)

	m.Update(runes("4"))
	assert.Equal(t, domain.FilterHigh, store.Filter())
	require.Len(t, m.tasks, 1)
	assert.Equal(t, "Buy milk", m.tasks[0].Text)

	m.Update(runes("1"))
	assert.Equal(t, domain.FilterAll, store.Filter())
	assert.Len(t, m.tasks, 2)
}

func TestModel_Search(t *testing.T) {
	m, store := newTestModel(t,
		domain.TaskInput{Text: "Buy milk"},
		domain.TaskInput{Text: "Call mom"},
	)

	m.Update(runes("/"))
	require.Equal(t, ModeSearch, m.mode)

	m.Update(runes("M"))
	m.Update(runes("I"))
	m.Update(runes("L"))
	assert.Equal(t, "MIL", store.Search())
	require.Len(t, m.tasks, 1)
	assert.Equal(t, "Buy milk", m.tasks[0].Text)

	m.Update(keyType(tea.KeyEnter))
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, "MIL", store.Search(), "enter keeps the query")

	m.Update(keyType(tea.KeyEsc))
	assert.Empty(t, store.Search())
	assert.Len(t, m.tasks, 2)
}

func TestModel_SearchEscapeClears(t *testing.T) {
	m, store := newTestModel(t, domain.TaskInput{Text: "Buy milk"})

	m.Update(runes("/"))
	m.Update(runes("zzz"))
	assert.Empty(t, m.tasks)

	m.Update(keyType(tea.KeyEsc))
	assert.Equal(t, ModeNormal, m.mode)
	assert.Empty(t, store.Search())
	assert.Len(t, m.tasks, 1)
}

// =============================================================================
// Misc Tests
// =============================================================================

func TestModel_HelpToggle(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(runes("?"))
	assert.Equal(t, ModeHelp, m.mode)

	m.Update(runes("?"))
	assert.Equal(t, ModeNormal, m.mode)

	m.Update(runes("?"))
	m.Update(keyType(tea.KeyEsc))
	assert.Equal(t, ModeNormal, m.mode)
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(runes("q"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_QuitIgnoredWhileTyping(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(runes("n"))
	m.Update(runes("q"))

	assert.Equal(t, ModeForm, m.mode)
	assert.Equal(t, "q", m.textInput.Value())
}

func TestModel_KeyClearsMessages(t *testing.T) {
	m, _ := newTestModel(t)
	m.err = errors.New("boom")
	m.notice = "hello"

	m.Update(runes("j"))

	assert.NoError(t, m.err)
	assert.Empty(t, m.notice)
}

func TestModel_Tick(t *testing.T) {
	m, store := newTestModel(t)
	_, err := store.Create(domain.TaskInput{Text: "Buy milk"})
	require.NoError(t, err)

	_, cmd := m.Update(MsgTick{})

	assert.NotNil(t, cmd)
	assert.Len(t, m.tasks, 1)
}

func TestModel_WindowSize(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 50, m.height)
	assert.Equal(t, 120, m.help.Width)
}

func TestNew_RestoresSearch(t *testing.T) {
	clock := &testutil.MockClock{NowTime: testNow}
	store := taskstore.New(testutil.NewMemorySlot(), taskstore.WithClock(clock))
	store.SetSearch("milk")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	c := app.NewWithDeps(domain.NewDefaultConfig(), store, clock, &testutil.MockConfigManager{}, logger)

	m := New(c)

	assert.Equal(t, "milk", m.searchInput.Value())
	assert.NotNil(t, m.Init())
}
