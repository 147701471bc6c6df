package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string      `toml:"-"`
	Store    StoreConfig   `toml:"store"`
	Server   ServerConfig  `toml:"server"`
	Log      LogConfig     `toml:"log"`
	Display  DisplayConfig `toml:"display"`
}

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreJSON   = "json"
)

// StoreConfig holds settings for the entity store from [store] section.
type StoreConfig struct {
	Backend string `toml:"backend,omitempty"` // "sqlite" (default) or "json"
	Path    string `toml:"path,omitempty"`    // Store file path (default: inside .teamtasks)
}

// ServerConfig holds HTTP API settings from [server] section.
type ServerConfig struct {
	Addr string `toml:"addr,omitempty"` // Listen address
	Mode string `toml:"mode,omitempty"` // gin mode: debug, release, test
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// DisplayConfig holds presentation settings from [display] section.
type DisplayConfig struct {
	IndentWidth int `toml:"indent_width,omitempty"` // Spaces per depth level in indented lists
}

// Default configuration values.
const (
	DefaultLogLevel    = "info"
	DefaultServerAddr  = "127.0.0.1:8080"
	DefaultServerMode  = "release"
	DefaultIndentWidth = 4
)

// Directory and file names for teamtasks.
const (
	DataDirName       = ".teamtasks"     // Per-project data directory
	AppDirName        = "teamtasks"      // Global config directory name
	ConfigFileName    = "config.toml"    // Config file name
	SQLiteFileName    = "teamtasks.db"   // SQLite store file
	JSONStoreFileName = "teamtasks.json" // JSON store file
	LogsDirName       = "logs"           // Log directory inside the data directory
)

// DataDir returns the data directory for a working directory.
func DataDir(root string) string {
	return filepath.Join(root, DataDirName)
}

// GlobalConfigDir returns the global config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// ConfigPath returns the config file path inside a data directory.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, ConfigFileName)
}

// GlobalConfigPath returns the global config file path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// GlobalLogPath returns the global log file path.
func GlobalLogPath(dataDir string) string {
	return filepath.Join(dataDir, LogsDirName, "teamtasks.log")
}

// ProjectLogPath returns the log file path for a project.
func ProjectLogPath(dataDir string, projectID int) string {
	return filepath.Join(dataDir, LogsDirName, fmt.Sprintf("project-%d.log", projectID))
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: StoreSQLite,
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
			Mode: DefaultServerMode,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Display: DisplayConfig{
			IndentWidth: DefaultIndentWidth,
		},
	}
}

// StorePath returns the configured store path, or the backend's default
// file inside dataDir.
func (c *Config) StorePath(dataDir string) string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	if c.Store.Backend == StoreJSON {
		return filepath.Join(dataDir, JSONStoreFileName)
	}
	return filepath.Join(dataDir, SQLiteFileName)
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Store.Backend) {
	case StoreSQLite, StoreJSON:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStoreBackend, c.Store.Backend)
	}
	if c.Display.IndentWidth < 0 {
		return fmt.Errorf("display.indent_width must not be negative: %d", c.Display.IndentWidth)
	}
	return nil
}
