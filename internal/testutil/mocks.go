// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"fmt"
	"sync"
	"time"

	"github.com/runoshun/tasklist/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.NowTime = m.NowTime.Add(d)
}

// MemorySlot is an in-memory domain.Slot.
// Fields are ordered to minimize memory padding.
type MemorySlot struct {
	Values   map[string][]byte
	Options  map[string]domain.SlotOptions
	ReadErr  error
	WriteErr error
	Writes   int
}

// NewMemorySlot creates an empty MemorySlot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{
		Values:  make(map[string][]byte),
		Options: make(map[string]domain.SlotOptions),
	}
}

// Read returns the stored value.
func (m *MemorySlot) Read(key string) ([]byte, bool, error) {
	if m.ReadErr != nil {
		return nil, false, m.ReadErr
	}
	v, ok := m.Values[key]
	return v, ok, nil
}

// Write stores the value and counts the write.
func (m *MemorySlot) Write(key string, value []byte, opts domain.SlotOptions) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Values[key] = append([]byte(nil), value...)
	m.Options[key] = opts
	m.Writes++
	return nil
}

// LogEntry is a single entry recorded by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
	TaskID   int64
}

// MockLogger records log entries.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) add(level string, taskID int64, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, TaskID: taskID, Category: category, Msg: msg})
}

// Debug records a debug entry.
func (m *MockLogger) Debug(taskID int64, category, msg string) { m.add("DEBUG", taskID, category, msg) }

// Info records an info entry.
func (m *MockLogger) Info(taskID int64, category, msg string) { m.add("INFO", taskID, category, msg) }

// Warn records a warning entry.
func (m *MockLogger) Warn(taskID int64, category, msg string) { m.add("WARN", taskID, category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(taskID int64, category, msg string) { m.add("ERROR", taskID, category, msg) }

// HasLevel reports whether any entry was logged at level.
func (m *MockLogger) HasLevel(level string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Entries {
		if e.Level == level {
			return true
		}
	}
	return false
}

// StaticConfirmer answers every prompt with Answer.
type StaticConfirmer struct {
	Err     error
	Prompts []string
	Answer  bool
}

// Confirm records the prompt and returns the configured answer.
func (s *StaticConfirmer) Confirm(prompt string) (bool, error) {
	s.Prompts = append(s.Prompts, prompt)
	if s.Err != nil {
		return false, fmt.Errorf("confirm: %w", s.Err)
	}
	return s.Answer, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitErr      error
	InitPath     string
	GlobalInfo   domain.ConfigInfo
	OverrideInfo domain.ConfigInfo
	InitForce    bool
	InitCalled   bool
}

// GlobalConfigInfo returns GlobalInfo.
func (m *MockConfigManager) GlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalInfo
}

// OverrideConfigInfo returns OverrideInfo.
func (m *MockConfigManager) OverrideConfigInfo() domain.ConfigInfo {
	return m.OverrideInfo
}

// InitGlobalConfig records the call and returns InitPath and InitErr.
func (m *MockConfigManager) InitGlobalConfig(force bool) (string, error) {
	m.InitCalled = true
	m.InitForce = force
	if m.InitErr != nil {
		return "", m.InitErr
	}
	return m.InitPath, nil
}

// Ensure mocks implement their ports.
var (
	_ domain.Clock         = (*MockClock)(nil)
	_ domain.Slot          = (*MemorySlot)(nil)
	_ domain.Logger        = (*MockLogger)(nil)
	_ domain.Confirmer     = (*StaticConfirmer)(nil)
	_ domain.ConfigManager = (*MockConfigManager)(nil)
)
