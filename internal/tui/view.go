package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/runoshun/tasklist/internal/domain"
)

// Layout constants.
const (
	appPaddingX    = 6  // Horizontal padding of the App style (both sides)
	rowPrefixWidth = 14 // Indicator, checkbox and priority badge
	rowHeight      = 2  // Lines per task
	chromeHeight   = 14 // Header, tabs, messages, footer and padding
	minTextWidth   = 10
)

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.mode {
	case ModeHelp:
		content = m.viewHelp()
	case ModeNormal, ModeSearch, ModeForm, ModeConfirm:
		content = m.viewMain()
	}

	return m.styles.App.Render(content)
}

// viewMain renders the main task list view.
func (m *Model) viewMain() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(m.viewFilterTabs())
	b.WriteString("\n")

	// Search input or the active query
	if m.mode == ModeSearch {
		b.WriteString(m.styles.InputPrompt.Render("Search: "))
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	} else if q := m.store.Search(); q != "" {
		b.WriteString(m.styles.Footer.Render("Search: "+q+"  (esc to clear)") + "\n")
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.ErrorMsg.Render("Error: "+m.err.Error()) + "\n\n")
	} else if m.notice != "" {
		b.WriteString(m.styles.NoticeMsg.Render(m.notice) + "\n\n")
	}

	b.WriteString(m.viewTaskList())

	switch m.mode {
	case ModeNormal, ModeSearch, ModeHelp:
		// No overlay for these modes
	case ModeForm:
		b.WriteString("\n")
		b.WriteString(m.viewForm())
	case ModeConfirm:
		b.WriteString("\n")
		b.WriteString(m.viewConfirmDialog())
	}

	b.WriteString("\n")
	b.WriteString(m.viewFooter())

	return b.String()
}

// viewHeader renders the title and the statistics of the whole list.
func (m *Model) viewHeader() string {
	title := m.styles.HeaderText.Render("Tasks")
	stats := m.viewStats()

	headerWidth := m.width - appPaddingX
	if headerWidth < 40 {
		headerWidth = 40
	}
	spacing := headerWidth - lipgloss.Width(title) - lipgloss.Width(stats)
	if spacing < 1 {
		spacing = 1
	}

	return m.styles.Header.Render(title) + strings.Repeat(" ", spacing) + stats
}

// viewStats renders "3 total  2 pending  1 completed  33% done".
func (m *Model) viewStats() string {
	stat := func(value, label string) string {
		return m.styles.StatValue.Render(value) + " " + m.styles.StatLabel.Render(label)
	}
	return strings.Join([]string{
		stat(fmt.Sprintf("%d", m.stats.Total), "total"),
		stat(fmt.Sprintf("%d", m.stats.Pending), "pending"),
		stat(fmt.Sprintf("%d", m.stats.Completed), "completed"),
		stat(fmt.Sprintf("%d%%", m.stats.CompletionRate), "done"),
	}, "  ")
}

// viewFilterTabs renders the filter selectors with the active one highlighted.
func (m *Model) viewFilterTabs() string {
	current := m.store.Filter()
	tabs := make([]string, 0, len(domain.AllFilters()))
	for _, f := range domain.AllFilters() {
		if f == current {
			tabs = append(tabs, m.styles.TabActive.Render(f.Display()))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(f.Display()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// viewTaskList renders the visible window of the task list.
func (m *Model) viewTaskList() string {
	if len(m.tasks) == 0 {
		return m.viewEmptyState()
	}

	start, end := m.visibleRange()
	now := m.now()

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(m.renderTaskItem(&m.tasks[i], i == m.cursor, now))
		b.WriteString("\n")
	}
	if start > 0 || end < len(m.tasks) {
		b.WriteString(m.styles.Footer.Render(fmt.Sprintf("%d-%d of %d", start+1, end, len(m.tasks))))
		b.WriteString("\n")
	}

	return m.styles.TaskList.Render(b.String())
}

// visibleRange returns the [start, end) window of tasks that fits the
// terminal height and contains the cursor.
func (m *Model) visibleRange() (int, int) {
	n := len(m.tasks)
	if m.height <= 0 {
		return 0, n
	}
	perPage := (m.height - chromeHeight) / rowHeight
	if perPage < 1 {
		perPage = 1
	}
	if n <= perPage {
		return 0, n
	}
	start := 0
	if m.cursor >= perPage {
		start = m.cursor - perPage + 1
	}
	return start, min(n, start+perPage)
}

// viewEmptyState renders the empty state message.
func (m *Model) viewEmptyState() string {
	search := m.store.Search()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + m.styles.EmptyTitle.Render(domain.EmptyStateTitle) + "\n")
	b.WriteString("  " + m.styles.EmptyHint.Render(domain.EmptyStateHint(search)) + "\n")
	if search == "" {
		b.WriteString("\n  " + m.styles.Footer.Render("Press ") +
			m.styles.FooterKey.Render("n") +
			m.styles.Footer.Render(" to create a task") + "\n")
	}
	return b.String()
}

// renderTaskItem renders a task as two lines.
// Format: "> ✓ HIGH   Buy milk" then "      #shopping · Tomorrow".
func (m *Model) renderTaskItem(task *domain.Task, selected bool, now time.Time) string {
	indicator := " "
	if selected {
		indicator = m.styles.CursorSelected.Render(">")
	}

	check := m.styles.Checkbox.Render(CheckboxIcon(false))
	if task.Completed {
		check = m.styles.CheckboxDone.Render(CheckboxIcon(true))
	}

	badge := m.styles.PriorityStyle(task.Priority).Render(fmt.Sprintf("%-6s", task.Priority.Badge()))

	maxText := m.width - appPaddingX - rowPrefixWidth
	if maxText < minTextWidth {
		maxText = minTextWidth
	}
	text := task.Text
	if runewidth.StringWidth(text) > maxText {
		text = runewidth.Truncate(text, maxText, "...")
	}

	var titlePart string
	switch {
	case task.Completed:
		titlePart = m.styles.TaskTitleDone.Render(text)
	case selected:
		titlePart = m.styles.TaskTitleSelected.Render(text)
	default:
		titlePart = m.styles.TaskTitle.Render(text)
	}

	var meta []string
	if task.Category != "" {
		meta = append(meta, m.styles.TaskMeta.Render("#"+task.Category))
	}
	due := domain.FormatDue(task.DueDate, now)
	if task.IsOverdue(now) {
		meta = append(meta, m.styles.Overdue.Render(due+" (overdue)"))
	} else {
		meta = append(meta, m.styles.TaskMeta.Render(due))
	}

	line := fmt.Sprintf("%s %s %s %s", indicator, check, badge, titlePart)
	return line + "\n" + "      " + strings.Join(meta, m.styles.TaskMeta.Render(" · "))
}

// viewForm renders the new/edit task form.
func (m *Model) viewForm() string {
	heading := "◆ New Task"
	if _, editing := m.store.Editing(); editing {
		heading = "◆ Edit Task"
	}
	title := m.styles.DialogTitle.Render(heading)

	label := func(f FormField) string {
		if f == m.field {
			return m.styles.InputLabelFocused.Render(f.String())
		}
		return m.styles.InputLabel.Render(f.String())
	}

	priority := m.styles.PriorityStyle(m.formPriority).Render(m.formPriority.Badge())
	if m.field == FieldPriority {
		priority = m.styles.FooterKey.Render("◀ ") + priority + m.styles.FooterKey.Render(" ▶")
	}

	rows := []string{
		label(FieldText) + m.textInput.View(),
		label(FieldPriority) + priority,
		label(FieldCategory) + m.categoryInput.View(),
		label(FieldDue) + m.dueInput.View(),
	}

	hint := m.styles.FooterKey.Render("tab") + m.styles.Footer.Render(" next field  ") +
		m.styles.FooterKey.Render("←/→") + m.styles.Footer.Render(" priority  ") +
		m.styles.FooterKey.Render("enter") + m.styles.Footer.Render(" save  ") +
		m.styles.FooterKey.Render("esc") + m.styles.Footer.Render(" cancel")

	content := lipgloss.JoinVertical(lipgloss.Left,
		append(append([]string{title, ""}, rows...), "", hint)...,
	)
	return m.styles.Dialog.Render(content)
}

// viewConfirmDialog renders the clear-completed confirmation dialog.
func (m *Model) viewConfirmDialog() string {
	if m.clearReq == nil {
		return ""
	}

	title := m.styles.DialogTitle.Foreground(Colors.Error).Render(m.clearReq.Prompt)
	prompt := m.styles.DialogPrompt.Render(
		fmt.Sprintf("%d completed task(s) will be removed. This action cannot be undone.", m.clearReq.Count))

	yesBtn := m.styles.FooterKey.Render("[ y ] Confirm")
	noBtn := m.styles.Footer.Render("[ n ] Cancel")
	buttons := lipgloss.JoinHorizontal(lipgloss.Left, yesBtn, "  ", noBtn)

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", prompt, "", buttons)
	return m.styles.Dialog.BorderForeground(Colors.Error).Render(content)
}

// viewFooter renders the key hints of the current mode.
func (m *Model) viewFooter() string {
	switch m.mode {
	case ModeNormal:
		return m.help.ShortHelpView(m.keys.ShortHelp())
	case ModeSearch:
		return m.styles.Footer.Render("enter apply · esc clear")
	case ModeForm, ModeConfirm, ModeHelp:
		// Hints are shown in the dialogs/views themselves
		return ""
	}
	return ""
}

// viewHelp renders the help view.
func (m *Model) viewHelp() string {
	title := m.styles.HeaderText.Render("KEYBOARD SHORTCUTS")
	body := m.help.FullHelpView(m.keys.FullHelp())
	hint := m.styles.Footer.Render("press ? or esc to close")
	return m.styles.Help.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", hint))
}
