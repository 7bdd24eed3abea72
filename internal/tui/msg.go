package tui

import "github.com/runoshun/tasklist/internal/domain"

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgTaskSaved is sent when the form was submitted.
type MsgTaskSaved struct {
	Task    domain.Task
	Created bool // false when an existing task was updated
}

func (MsgTaskSaved) sealed() {}

// MsgTaskToggled is sent when a task's completed flag was flipped.
type MsgTaskToggled struct {
	Task domain.Task
}

func (MsgTaskToggled) sealed() {}

// MsgTaskDeleted is sent when a task was deleted.
type MsgTaskDeleted struct {
	Task domain.Task
}

func (MsgTaskDeleted) sealed() {}

// MsgCompletedCleared is sent when completed tasks were removed.
type MsgCompletedCleared struct {
	Removed int
}

func (MsgCompletedCleared) sealed() {}

// MsgError is sent when an error occurs.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}

// MsgTick is sent periodically so relative due dates stay current.
type MsgTick struct{}

func (MsgTick) sealed() {}
