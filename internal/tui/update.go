package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/taskstore"
	"github.com/runoshun/tasklist/internal/usecase"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case MsgTaskSaved:
		m.mode = ModeNormal
		m.resetForm()
		m.reload()
		m.selectTask(msg.Task.ID)
		if msg.Created {
			m.notice = "Task added"
		} else {
			m.notice = "Task updated"
		}
		return m, nil

	case MsgTaskToggled:
		m.reload()
		return m, nil

	case MsgTaskDeleted:
		m.reload()
		m.notice = fmt.Sprintf("Deleted %q", msg.Task.Text)
		return m, nil

	case MsgCompletedCleared:
		m.mode = ModeNormal
		m.reload()
		m.notice = fmt.Sprintf("Cleared %d completed task(s)", msg.Removed)
		return m, nil

	case MsgError:
		m.err = msg.Err
		m.saving = false
		if m.mode == ModeForm || m.mode == ModeConfirm {
			m.store.CancelEditing()
			m.mode = ModeNormal
			m.resetForm()
		}
		m.reload()
		return m, nil

	case MsgTick:
		m.reload()
		return m, m.tick()
	}

	return m, nil
}

// handleKeyMsg dispatches a key press to the handler of the current mode.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear messages on any key press
	m.err = nil
	m.notice = ""

	if msg.Type == tea.KeyCtrlC {
		m.declineClear()
		return m, tea.Quit
	}

	switch m.mode {
	case ModeNormal:
		return m.handleNormalMode(msg)
	case ModeSearch:
		return m.handleSearchMode(msg)
	case ModeForm:
		return m.handleFormMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	}

	return m, nil
}

// handleNormalMode handles keys in normal mode.
func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.End):
		if len(m.tasks) > 0 {
			m.cursor = len(m.tasks) - 1
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		return m, m.openForm(nil)

	case key.Matches(msg, m.keys.Edit):
		task := m.SelectedTask()
		if task == nil {
			return m, nil
		}
		return m, m.openForm(task)

	case key.Matches(msg, m.keys.Toggle):
		task := m.SelectedTask()
		if task == nil {
			return m, nil
		}
		return m, m.toggleTask(task.ID)

	case key.Matches(msg, m.keys.Delete):
		task := m.SelectedTask()
		if task == nil {
			return m, nil
		}
		return m, m.deleteTask(task.ID)

	case key.Matches(msg, m.keys.Clear):
		req := m.store.RequestClearCompleted()
		if req.Count == 0 {
			req.Decline()
			m.notice = "No completed tasks to clear"
			return m, nil
		}
		m.clearReq = req
		m.mode = ModeConfirm
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.setFilter(m.store.Filter().Next())
		return m, nil

	case key.Matches(msg, m.keys.FilterAll):
		m.setFilter(domain.FilterAll)
		return m, nil

	case key.Matches(msg, m.keys.FilterPend):
		m.setFilter(domain.FilterPending)
		return m, nil

	case key.Matches(msg, m.keys.FilterDone):
		m.setFilter(domain.FilterCompleted)
		return m, nil

	case key.Matches(msg, m.keys.FilterHigh):
		m.setFilter(domain.FilterHigh)
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.mode = ModeSearch
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.ClearSearch):
		if m.store.Search() != "" {
			m.setSearch("")
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil
	}

	return m, nil
}

// handleSearchMode handles keys in search mode.
// The view follows the query as it is typed.
func (m *Model) handleSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.searchInput.Blur()
		m.setSearch("")
		return m, nil

	case msg.Type == tea.KeyEnter:
		m.mode = ModeNormal
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.store.SetSearch(m.searchInput.Value())
	m.cursor = 0
	m.reload()
	return m, cmd
}

// handleFormMode handles keys in the new/edit task form.
func (m *Model) handleFormMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The form is locked until the pending save reports back.
	if m.saving {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.store.CancelEditing()
		m.mode = ModeNormal
		m.resetForm()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submitForm()

	case key.Matches(msg, m.keys.NextField):
		m.field = m.field.Next()
		return m, m.focusField()

	case key.Matches(msg, m.keys.PrevField):
		m.field = m.field.Prev()
		return m, m.focusField()
	}

	var cmd tea.Cmd
	switch m.field {
	case FieldText:
		m.textInput, cmd = m.textInput.Update(msg)
	case FieldPriority:
		if key.Matches(msg, m.keys.Cycle) {
			if msg.Type == tea.KeyLeft {
				// Two steps forward is one step back in a cycle of three.
				m.formPriority = m.formPriority.Next().Next()
			} else {
				m.formPriority = m.formPriority.Next()
			}
		}
	case FieldCategory:
		m.categoryInput, cmd = m.categoryInput.Update(msg)
	case FieldDue:
		m.dueInput, cmd = m.dueInput.Update(msg)
	case fieldCount:
	}
	return m, cmd
}

// handleConfirmMode handles keys in the clear-completed confirmation dialog.
func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		req := m.clearReq
		m.clearReq = nil
		if req == nil {
			m.mode = ModeNormal
			return m, nil
		}
		return m, m.confirmClear(req)

	case key.Matches(msg, m.keys.Deny):
		m.declineClear()
		m.mode = ModeNormal
		return m, nil
	}

	return m, nil
}

// handleHelpMode handles keys in help mode.
func (m *Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
	}
	return m, nil
}

// openForm shows the task form. A nil task starts a new task with the
// configured defaults; otherwise the task becomes the editing target and
// pre-fills the form.
func (m *Model) openForm(task *domain.Task) tea.Cmd {
	m.resetForm()
	if task == nil {
		cfg := m.config()
		m.store.CancelEditing()
		m.formPriority = cfg.DefaultPriority()
		m.categoryInput.SetValue(cfg.Defaults.Category)
	} else {
		t, ok := m.store.StartEditing(task.ID)
		if !ok {
			return nil
		}
		m.textInput.SetValue(t.Text)
		m.formPriority = t.Priority
		m.categoryInput.SetValue(t.Category)
		m.dueInput.SetValue(t.DueDate.String())
	}
	m.mode = ModeForm
	return m.focusField()
}

// submitForm validates the form and saves it.
// Blank text is ignored; a malformed due date keeps the form open.
func (m *Model) submitForm() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.textInput.Value())
	if text == "" {
		return m, nil
	}
	due, err := domain.ParseDate(m.dueInput.Value())
	if err != nil {
		m.err = err
		m.field = FieldDue
		return m, m.focusField()
	}

	// The target is fixed here so a later key press cannot turn the
	// update into a create.
	id, editing := m.store.Editing()
	m.store.CancelEditing()
	m.saving = true
	return m, m.saveTask(domain.TaskInput{
		Text:     text,
		Priority: m.formPriority,
		Category: m.categoryInput.Value(),
		DueDate:  due,
	}, id, editing)
}

// focusField focuses the input of the current form field.
func (m *Model) focusField() tea.Cmd {
	m.textInput.Blur()
	m.categoryInput.Blur()
	m.dueInput.Blur()

	switch m.field {
	case FieldText:
		return m.textInput.Focus()
	case FieldCategory:
		return m.categoryInput.Focus()
	case FieldDue:
		return m.dueInput.Focus()
	case FieldPriority, fieldCount:
	}
	return nil
}

// resetForm clears the form inputs.
func (m *Model) resetForm() {
	m.textInput.Reset()
	m.categoryInput.Reset()
	m.dueInput.Reset()
	m.textInput.Blur()
	m.categoryInput.Blur()
	m.dueInput.Blur()
	m.formPriority = domain.PriorityMedium
	m.field = FieldText
	m.saving = false
}

func (m *Model) setFilter(f domain.Filter) {
	if err := m.store.SetFilter(f); err != nil {
		m.err = err
		return
	}
	m.cursor = 0
	m.reload()
}

func (m *Model) setSearch(q string) {
	m.searchInput.SetValue(q)
	m.store.SetSearch(q)
	m.cursor = 0
	m.reload()
}

// declineClear resolves a pending clear request without removing anything.
func (m *Model) declineClear() {
	if m.clearReq != nil {
		m.clearReq.Decline()
		m.clearReq = nil
	}
}

// saveTask returns a command that saves the form. With editing set it
// updates the task id, otherwise it creates a new task.
func (m *Model) saveTask(in domain.TaskInput, id int64, editing bool) tea.Cmd {
	return func() tea.Msg {
		if !editing {
			task, err := m.store.Submit(in)
			if err != nil {
				return MsgError{Err: err}
			}
			return MsgTaskSaved{Task: task, Created: true}
		}

		found, err := m.store.Update(id, in)
		if !found && err == nil {
			err = fmt.Errorf("task %d: %w", id, domain.ErrTaskNotFound)
		}
		if err != nil {
			return MsgError{Err: err}
		}
		task, _ := m.store.Get(id)
		return MsgTaskSaved{Task: task}
	}
}

// toggleTask returns a command that flips the completed flag of a task.
func (m *Model) toggleTask(id int64) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ToggleTaskUseCase().Execute(context.Background(), usecase.ToggleTaskInput{TaskID: id})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskToggled{Task: out.Task}
	}
}

// deleteTask returns a command that deletes a task.
func (m *Model) deleteTask(id int64) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.DeleteTaskUseCase().Execute(context.Background(), usecase.DeleteTaskInput{TaskID: id})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskDeleted{Task: out.Task}
	}
}

// confirmClear returns a command that resolves the clear request with yes.
func (m *Model) confirmClear(req *taskstore.ClearRequest) tea.Cmd {
	return func() tea.Msg {
		removed, err := req.Confirm()
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgCompletedCleared{Removed: removed}
	}
}
