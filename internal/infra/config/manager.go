package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/tasklist/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct {
	overridePath  string // Path given by --config (optional)
	globalConfDir string // Path to global config directory (e.g., ~/.config/tasklist)
}

// NewManager creates a new Manager.
func NewManager(overridePath string) *Manager {
	return &Manager{
		overridePath:  overridePath,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
// This is useful for testing.
func NewManagerWithGlobalDir(overridePath, globalConfDir string) *Manager {
	return &Manager{
		overridePath:  overridePath,
		globalConfDir: globalConfDir,
	}
}

// GlobalConfigInfo returns information about the global config file.
func (m *Manager) GlobalConfigInfo() domain.ConfigInfo {
	if m.globalConfDir == "" {
		return domain.ConfigInfo{}
	}
	return m.configInfo(filepath.Join(m.globalConfDir, domain.ConfigFileName))
}

// OverrideConfigInfo returns information about the --config file.
func (m *Manager) OverrideConfigInfo() domain.ConfigInfo {
	if m.overridePath == "" {
		return domain.ConfigInfo{}
	}
	return m.configInfo(m.overridePath)
}

// configInfo reads a config file and returns its info.
func (m *Manager) configInfo(path string) domain.ConfigInfo {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.ConfigInfo{
			Path:   path,
			Exists: false,
		}
	}
	return domain.ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}

// InitGlobalConfig creates a global config file with the default template
// and returns its path. An existing file is only replaced when force is set.
func (m *Manager) InitGlobalConfig(force bool) (string, error) {
	if m.globalConfDir == "" {
		return "", errors.New("global config directory not available")
	}
	path := filepath.Join(m.globalConfDir, domain.ConfigFileName)

	if _, err := os.Stat(path); err == nil && !force {
		return path, domain.ErrConfigExists
	}

	if err := os.MkdirAll(m.globalConfDir, 0o700); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	content, err := domain.RenderConfigTemplate(domain.NewDefaultConfig())
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
