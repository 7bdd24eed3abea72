// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/tasklist/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	overridePath  string // Path given by --config (optional)
	globalConfDir string // Path to global config directory (e.g., ~/.config/tasklist)
	dataHome      string // XDG data home used to default store.data_dir
}

// NewLoader creates a new Loader.
// overridePath may be empty.
func NewLoader(overridePath string) *Loader {
	return &Loader{
		overridePath:  overridePath,
		globalConfDir: defaultGlobalConfigDir(),
		dataHome:      defaultDataHome(),
	}
}

// NewLoaderWithDirs creates a new Loader with custom directories.
// This is useful for testing.
func NewLoaderWithDirs(overridePath, globalConfDir, dataHome string) *Loader {
	return &Loader{
		overridePath:  overridePath,
		globalConfDir: globalConfDir,
		dataHome:      dataHome,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// defaultDataHome returns $XDG_DATA_HOME or ~/.local/share.
func defaultDataHome() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return dataHome
}

// Load returns the merged configuration (global + override).
// The override file takes precedence over the global config.
// A missing global file is not an error; a missing override file is.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load global config: %w", err)
	}

	var override *domain.Config
	if l.overridePath != "" {
		override, err = l.loadFile(l.overridePath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", l.overridePath, err)
		}
	}

	// Merge: default <- global <- override (later takes precedence)
	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if override != nil {
		base = mergeConfigs(base, override)
	}

	if base.Store.DataDir == "" && l.dataHome != "" {
		base.Store.DataDir = domain.DefaultDataDir(l.dataHome)
	}
	base.Validate()

	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	globalPath := filepath.Join(l.globalConfDir, domain.ConfigFileName)
	return l.loadFile(globalPath)
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
// Keys that are absent stay at their zero value so that merging keeps lower layers.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown key: %s", section))
			continue
		}
		switch section {
		case "store":
			for k, v := range m {
				switch k {
				case "backend":
					setString(&res.Store.Backend, v)
				case "data_dir":
					setString(&res.Store.DataDir, v)
				case "key":
					setString(&res.Store.Key, v)
				case "path":
					setString(&res.Store.Path, v)
				case "git_repo":
					setString(&res.Store.GitRepo, v)
				case "max_age":
					if n, ok := v.(int64); ok {
						res.Store.MaxAge = int(n)
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [store]: %s", k))
				}
			}
		case "defaults":
			for k, v := range m {
				switch k {
				case "priority":
					setString(&res.Defaults.Priority, v)
				case "category":
					setString(&res.Defaults.Category, v)
				case "filter":
					setString(&res.Defaults.Filter, v)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [defaults]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					setString(&res.Log.Level, v)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

func setString(dst *string, v any) {
	if s, ok := v.(string); ok {
		*dst = s
	}
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Store:    base.Store,
		Defaults: base.Defaults,
		Log:      base.Log,
		Warnings: append([]string{}, base.Warnings...),
	}

	result.Warnings = append(result.Warnings, override.Warnings...)

	if override.Store.Backend != "" {
		result.Store.Backend = override.Store.Backend
	}
	if override.Store.DataDir != "" {
		result.Store.DataDir = override.Store.DataDir
	}
	if override.Store.Key != "" {
		result.Store.Key = override.Store.Key
	}
	if override.Store.Path != "" {
		result.Store.Path = override.Store.Path
	}
	if override.Store.GitRepo != "" {
		result.Store.GitRepo = override.Store.GitRepo
	}
	if override.Store.MaxAge != 0 {
		result.Store.MaxAge = override.Store.MaxAge
	}
	if override.Defaults.Priority != "" {
		result.Defaults.Priority = override.Defaults.Priority
	}
	if override.Defaults.Category != "" {
		result.Defaults.Category = override.Defaults.Category
	}
	if override.Defaults.Filter != "" {
		result.Defaults.Filter = override.Defaults.Filter
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}

	return result
}
