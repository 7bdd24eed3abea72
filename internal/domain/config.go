package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	"golang.org/x/net/http/httpguts"
)

//go:embed config_template.toml
var configTemplateContent string

// ConfigFileName is the name of the configuration file.
const ConfigFileName = "config.toml"

// Default configuration values.
const (
	DefaultBackend   = "cookie"
	DefaultSlotKey   = "todos"
	DefaultSlotPath  = "/"
	DefaultMaxAge    = 31536000 // seconds (one year)
	DefaultLogLevel  = "info"
	DefaultCategory  = "personal"
	DefaultGitRepo   = "."
	DefaultGitPrefix = "refs/tasklist"
)

// MaxSlotMaxAge is the largest store.max_age, in seconds, that fits a time.Duration.
var MaxSlotMaxAge = math.MaxInt64 / int64(time.Second)

// Store backend names.
const (
	BackendCookie = "cookie"
	BackendSQLite = "sqlite"
	BackendGit    = "git"
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string       `toml:"-"`
	Store    StoreConfig    `toml:"store"`
	Defaults DefaultsConfig `toml:"defaults"`
	Log      LogConfig      `toml:"log"`
}

// StoreConfig holds persistence settings from the [store] section.
type StoreConfig struct {
	Backend string `toml:"backend,omitempty"`  // cookie (default), sqlite or git
	DataDir string `toml:"data_dir,omitempty"` // Directory for cookie jar, database and logs
	Key     string `toml:"key,omitempty"`      // Slot key (default: "todos")
	Path    string `toml:"path,omitempty"`     // Slot scope (default: "/")
	GitRepo string `toml:"git_repo,omitempty"` // Repository for the git backend
	MaxAge  int    `toml:"max_age,omitempty"`  // Retention hint in seconds
}

// DefaultsConfig holds the initial values of the task form from [defaults].
type DefaultsConfig struct {
	Priority string `toml:"priority,omitempty"`
	Category string `toml:"category,omitempty"`
	Filter   string `toml:"filter,omitempty"`
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// NewDefaultConfig returns a Config populated with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: DefaultBackend,
			Key:     DefaultSlotKey,
			Path:    DefaultSlotPath,
			GitRepo: DefaultGitRepo,
			MaxAge:  DefaultMaxAge,
		},
		Defaults: DefaultsConfig{
			Priority: string(PriorityMedium),
			Category: DefaultCategory,
			Filter:   string(FilterAll),
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// SlotOptions returns the slot write options derived from the store settings.
func (c *Config) SlotOptions() SlotOptions {
	return SlotOptions{
		Path:   c.Store.Path,
		MaxAge: time.Duration(c.Store.MaxAge) * time.Second,
	}
}

// DefaultPriority returns the configured default priority, or medium if invalid.
func (c *Config) DefaultPriority() Priority {
	p, err := ParsePriority(c.Defaults.Priority)
	if err != nil {
		return PriorityMedium
	}
	return p
}

// DefaultFilter returns the configured initial filter, or all if invalid.
func (c *Config) DefaultFilter() Filter {
	f, err := ParseFilter(c.Defaults.Filter)
	if err != nil {
		return FilterAll
	}
	return f
}

// Validate checks enumerated settings and records a warning for each bad value.
// Bad values are replaced by their defaults.
func (c *Config) Validate() {
	def := NewDefaultConfig()
	switch c.Store.Backend {
	case BackendCookie, BackendSQLite, BackendGit:
	default:
		c.Warnings = append(c.Warnings, fmt.Sprintf("unknown store.backend %q, using %q", c.Store.Backend, def.Store.Backend))
		c.Store.Backend = def.Store.Backend
	}
	if c.Store.Key == "" {
		c.Store.Key = def.Store.Key
	}
	if c.Store.Path == "" {
		c.Store.Path = def.Store.Path
	}
	if c.Store.Backend == BackendCookie {
		if !httpguts.ValidHeaderFieldName(c.Store.Key) {
			c.Warnings = append(c.Warnings, fmt.Sprintf("store.key %q is not a valid cookie name, using %q", c.Store.Key, def.Store.Key))
			c.Store.Key = def.Store.Key
		}
		if !validCookiePath(c.Store.Path) {
			c.Warnings = append(c.Warnings, fmt.Sprintf("store.path %q is not a valid cookie path, using %q", c.Store.Path, def.Store.Path))
			c.Store.Path = def.Store.Path
		}
	}
	if c.Store.MaxAge < 0 {
		c.Warnings = append(c.Warnings, fmt.Sprintf("negative store.max_age %d, using %d", c.Store.MaxAge, def.Store.MaxAge))
		c.Store.MaxAge = def.Store.MaxAge
	}
	if int64(c.Store.MaxAge) > MaxSlotMaxAge {
		c.Warnings = append(c.Warnings, fmt.Sprintf("store.max_age %d is too large, using %d", c.Store.MaxAge, MaxSlotMaxAge))
		c.Store.MaxAge = int(MaxSlotMaxAge)
	}
	if _, err := ParsePriority(c.Defaults.Priority); err != nil {
		c.Warnings = append(c.Warnings, fmt.Sprintf("unknown defaults.priority %q, using %q", c.Defaults.Priority, def.Defaults.Priority))
		c.Defaults.Priority = def.Defaults.Priority
	}
	if _, err := ParseFilter(c.Defaults.Filter); err != nil {
		c.Warnings = append(c.Warnings, fmt.Sprintf("unknown defaults.filter %q, using %q", c.Defaults.Filter, def.Defaults.Filter))
		c.Defaults.Filter = def.Defaults.Filter
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		c.Warnings = append(c.Warnings, fmt.Sprintf("unknown log.level %q, using %q", c.Log.Level, def.Log.Level))
		c.Log.Level = def.Log.Level
	}
}

// validCookiePath reports whether a cookie Path attribute can carry p.
func validCookiePath(p string) bool {
	return strings.IndexFunc(p, func(r rune) bool {
		return r < 0x20 || r == 0x7f || r == ';'
	}) < 0
}

// RenderConfigTemplate renders the commented default config file.
func RenderConfigTemplate(cfg *Config) (string, error) {
	tmpl, err := template.New("config").Parse(configTemplateContent)
	if err != nil {
		return "", fmt.Errorf("parse config template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		return "", fmt.Errorf("render config template: %w", err)
	}
	return buf.String(), nil
}
