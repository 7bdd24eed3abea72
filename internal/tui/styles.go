package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/tasklist/internal/domain"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	// Base colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color

	// Title colors
	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color
	TitleDone     lipgloss.Color

	// Priority colors
	High   lipgloss.Color
	Medium lipgloss.Color
	Low    lipgloss.Color
}{
	Primary:   lipgloss.Color("#6C5CE7"), // Purple
	Secondary: lipgloss.Color("#A29BFE"), // Lavender
	Muted:     lipgloss.Color("#636E72"), // Gray
	Error:     lipgloss.Color("#D63031"), // Red
	Success:   lipgloss.Color("#00B894"), // Green
	Warning:   lipgloss.Color("#FDCB6E"), // Yellow

	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow (selected)
	TitleDone:     lipgloss.Color("#636E72"), // Gray

	High:   lipgloss.Color("#D63031"), // Red
	Medium: lipgloss.Color("#FDCB6E"), // Yellow
	Low:    lipgloss.Color("#00B894"), // Green
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	// App
	App lipgloss.Style

	// Header
	Header     lipgloss.Style
	HeaderText lipgloss.Style
	StatValue  lipgloss.Style
	StatLabel  lipgloss.Style

	// Filter tabs
	Tab       lipgloss.Style
	TabActive lipgloss.Style

	// Task list
	TaskList          lipgloss.Style
	TaskSelected      lipgloss.Style
	TaskTitle         lipgloss.Style
	TaskTitleSelected lipgloss.Style
	TaskTitleDone     lipgloss.Style
	TaskMeta          lipgloss.Style
	CursorSelected    lipgloss.Style
	Checkbox          lipgloss.Style
	CheckboxDone      lipgloss.Style
	Overdue           lipgloss.Style

	// Priority badges
	PriorityHigh   lipgloss.Style
	PriorityMedium lipgloss.Style
	PriorityLow    lipgloss.Style

	// Empty state
	EmptyTitle lipgloss.Style
	EmptyHint  lipgloss.Style

	// Footer
	Footer    lipgloss.Style
	FooterKey lipgloss.Style

	// Dialog
	Dialog       lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogPrompt lipgloss.Style

	// Input
	InputLabel        lipgloss.Style
	InputLabelFocused lipgloss.Style
	InputPrompt       lipgloss.Style

	// Messages
	ErrorMsg  lipgloss.Style
	NoticeMsg lipgloss.Style

	// Help
	Help lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		HeaderText: lipgloss.NewStyle().
			Bold(true),

		StatValue: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal).
			Bold(true),

		StatLabel: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Tab: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Background(Colors.Primary).
			Bold(true).
			Padding(0, 1),

		TaskList: lipgloss.NewStyle().
			MarginBottom(1),

		TaskSelected: lipgloss.NewStyle().
			Bold(true),

		TaskTitle: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),

		TaskTitleSelected: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true),

		TaskTitleDone: lipgloss.NewStyle().
			Foreground(Colors.TitleDone).
			Strikethrough(true),

		TaskMeta: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		CursorSelected: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true),

		Checkbox: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		CheckboxDone: lipgloss.NewStyle().
			Foreground(Colors.Success).
			Bold(true),

		Overdue: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),

		PriorityHigh: lipgloss.NewStyle().
			Foreground(Colors.High).
			Bold(true),

		PriorityMedium: lipgloss.NewStyle().
			Foreground(Colors.Medium),

		PriorityLow: lipgloss.NewStyle().
			Foreground(Colors.Low),

		EmptyTitle: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal).
			Bold(true),

		EmptyHint: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		FooterKey: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		Dialog: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary),

		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		DialogPrompt: lipgloss.NewStyle(),

		InputLabel: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Width(10),

		InputLabelFocused: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true).
			Width(10),

		InputPrompt: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),

		NoticeMsg: lipgloss.NewStyle().
			Foreground(Colors.Success),

		Help: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Muted),
	}
}

// PriorityStyle returns the badge style for a given priority.
func (s Styles) PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return s.PriorityHigh
	case domain.PriorityLow:
		return s.PriorityLow
	case domain.PriorityMedium:
		return s.PriorityMedium
	default:
		return s.PriorityMedium
	}
}

// CheckboxIcon returns the completion marker of a task.
func CheckboxIcon(completed bool) string {
	if completed {
		return "✓"
	}
	return "○"
}
