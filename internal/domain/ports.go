package domain

import "time"

// SlotOptions carries the retention hint and visibility scope of a slot write.
type SlotOptions struct {
	Path   string        // Visibility scope ("/" = whole application)
	MaxAge time.Duration // Retention hint (<= 0 = no expiry)
}

// Slot is a durable key/value cell holding one serialized value per key.
type Slot interface {
	// Read returns the value stored under key.
	// ok is false when the key is missing or its retention has expired.
	Read(key string) (value []byte, ok bool, err error)

	// Write replaces the value stored under key.
	Write(key string, value []byte, opts SlotOptions) error
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Logger writes operational logs.
// taskID 0 means the entry is not tied to a task.
type Logger interface {
	Debug(taskID int64, category, msg string)
	Info(taskID int64, category, msg string)
	Warn(taskID int64, category, msg string)
	Error(taskID int64, category, msg string)
}

// NopLogger discards all entries.
type NopLogger struct{}

func (NopLogger) Debug(int64, string, string) {}
func (NopLogger) Info(int64, string, string)  {}
func (NopLogger) Warn(int64, string, string)  {}
func (NopLogger) Error(int64, string, string) {}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfigLoader loads configuration.
type ConfigLoader interface {
	// Load returns the merged configuration (default <- global <- override).
	Load() (*Config, error)
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// GlobalConfigInfo returns information about the global config file.
	GlobalConfigInfo() ConfigInfo
	// OverrideConfigInfo returns information about the --config file, if any.
	OverrideConfigInfo() ConfigInfo
	// InitGlobalConfig writes the default template to the global config file.
	InitGlobalConfig(force bool) (string, error)
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}
