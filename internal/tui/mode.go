// Package tui provides the terminal user interface for tasklist.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal  Mode = iota // Default navigation mode
	ModeSearch              // Search text input mode
	ModeForm                // New/edit task form mode
	ModeConfirm             // Confirmation dialog mode
	ModeHelp                // Help overlay mode
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeSearch:
		return "search"
	case ModeForm:
		return "form"
	case ModeConfirm:
		return "confirm"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	switch m {
	case ModeSearch, ModeForm:
		return true
	case ModeNormal, ModeConfirm, ModeHelp:
		return false
	}
	return false
}

// FormField identifies the focused field of the task form.
type FormField int

const (
	FieldText FormField = iota
	FieldPriority
	FieldCategory
	FieldDue
	fieldCount
)

// Next returns the following field, wrapping around.
func (f FormField) Next() FormField {
	return (f + 1) % fieldCount
}

// Prev returns the preceding field, wrapping around.
func (f FormField) Prev() FormField {
	return (f + fieldCount - 1) % fieldCount
}

// String returns the field label.
func (f FormField) String() string {
	switch f {
	case FieldText:
		return "Task"
	case FieldPriority:
		return "Priority"
	case FieldCategory:
		return "Category"
	case FieldDue:
		return "Due date"
	case fieldCount:
	}
	return ""
}
