// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/teamtasks/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	dataDir       string // Path to .teamtasks directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/teamtasks)
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: DefaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// DefaultGlobalConfigDir returns the default global config directory,
// or "" when no home directory can be determined.
func DefaultGlobalConfigDir() string {
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

// Load returns the merged configuration.
// Merge order is default <- global <- repo, later files win.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	repo, err := l.LoadRepo()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if repo != nil {
		base = mergeConfigs(base, repo)
	}

	if err := base.Validate(); err != nil {
		return nil, err
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// LoadRepo returns only the repository configuration.
func (l *Loader) LoadRepo() (*domain.Config, error) {
	return loadFile(domain.ConfigPath(l.dataDir))
}

// loadFile loads a configuration from a file.
func loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string
	unknown := func(section, key string) {
		warnings = append(warnings, fmt.Sprintf("unknown key in [%s]: %s", section, key))
	}

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		switch section {
		case "store":
			for k, v := range m {
				switch k {
				case "backend":
					if s, ok := v.(string); ok {
						res.Store.Backend = s
					}
				case "path":
					if s, ok := v.(string); ok {
						res.Store.Path = s
					}
				default:
					unknown(section, k)
				}
			}
		case "server":
			for k, v := range m {
				switch k {
				case "addr":
					if s, ok := v.(string); ok {
						res.Server.Addr = s
					}
				case "mode":
					if s, ok := v.(string); ok {
						res.Server.Mode = s
					}
				default:
					unknown(section, k)
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						res.Log.Level = s
					}
				default:
					unknown(section, k)
				}
			}
		case "display":
			for k, v := range m {
				switch k {
				case "indent_width":
					// go-toml decodes integers into int64
					if n, ok := v.(int64); ok {
						res.Display.IndentWidth = int(n)
					}
				default:
					unknown(section, k)
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

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Store:    base.Store,
		Server:   base.Server,
		Log:      base.Log,
		Display:  base.Display,
	}
	if n := len(base.Warnings) + len(override.Warnings); n > 0 {
		result.Warnings = make([]string, 0, n)
		result.Warnings = append(result.Warnings, base.Warnings...)
		result.Warnings = append(result.Warnings, override.Warnings...)
	}

	if override.Store.Backend != "" {
		result.Store.Backend = override.Store.Backend
	}
	if override.Store.Path != "" {
		result.Store.Path = override.Store.Path
	}
	if override.Server.Addr != "" {
		result.Server.Addr = override.Server.Addr
	}
	if override.Server.Mode != "" {
		result.Server.Mode = override.Server.Mode
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Display.IndentWidth != 0 {
		result.Display.IndentWidth = override.Display.IndentWidth
	}

	return result
}
