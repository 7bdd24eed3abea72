package tui

import (
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/tasklist/internal/app"
	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/taskstore"
)

// tickInterval is how often the view is refreshed so "Today" and overdue
// markers follow the clock.
const tickInterval = time.Minute

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	store     *taskstore.Store
	clearReq  *taskstore.ClearRequest
	err       error

	// State
	tasks  []domain.Task // Current view of the store
	notice string
	stats  domain.Stats

	// Components
	keys   KeyMap
	styles Styles
	help   help.Model

	// Input state
	textInput     textinput.Model
	categoryInput textinput.Model
	dueInput      textinput.Model
	searchInput   textinput.Model

	// Numeric state (smaller types last)
	formPriority domain.Priority
	mode         Mode
	field        FormField
	width        int
	height       int
	cursor       int
	saving       bool // A form submission is in flight
}

// New creates a new TUI Model with the given container.
func New(c *app.Container) *Model {
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 200

	ci := textinput.New()
	ci.Placeholder = "personal"
	ci.CharLimit = 50

	di := textinput.New()
	di.Placeholder = domain.DateLayout
	di.CharLimit = len(domain.DateLayout)

	si := textinput.New()
	si.Placeholder = "Search tasks..."
	si.CharLimit = 100

	m := &Model{
		container:     c,
		store:         c.Store,
		keys:          DefaultKeyMap(),
		styles:        DefaultStyles(),
		help:          help.New(),
		textInput:     ti,
		categoryInput: ci,
		dueInput:      di,
		searchInput:   si,
		formPriority:  domain.PriorityMedium,
		mode:          ModeNormal,
	}
	m.searchInput.SetValue(m.store.Search())
	m.reload()
	return m
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

// tick schedules the next MsgTick.
func (m *Model) tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return MsgTick{}
	})
}

// reload refreshes the visible tasks and statistics from the store.
func (m *Model) reload() {
	m.tasks = slices.Collect(m.store.View())
	m.stats = m.store.Stats()
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// SelectedTask returns the currently selected task, or nil if none.
func (m *Model) SelectedTask() *domain.Task {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return nil
	}
	return &m.tasks[m.cursor]
}

// selectTask moves the cursor to the task with id, if it is visible.
func (m *Model) selectTask(id int64) {
	if i := slices.IndexFunc(m.tasks, func(t domain.Task) bool { return t.ID == id }); i >= 0 {
		m.cursor = i
	}
}

// config returns the loaded configuration, or the defaults.
func (m *Model) config() *domain.Config {
	if m.container == nil || m.container.AppConfig == nil {
		return domain.NewDefaultConfig()
	}
	return m.container.AppConfig
}

// now returns the current time from the container's clock.
func (m *Model) now() time.Time {
	if m.container == nil || m.container.Clock == nil {
		return time.Now()
	}
	return m.container.Clock.Now()
}
