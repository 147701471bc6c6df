package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestDataDir(t *testing.T) {
	got := DataDir("/home/user/project")
	want := "/home/user/project/.teamtasks"
	if got != want {
		t.Errorf("DataDir() = %q, want %q", got, want)
	}
}

func TestConfigPath(t *testing.T) {
	got := ConfigPath("/home/user/project/.teamtasks")
	want := "/home/user/project/.teamtasks/config.toml"
	if got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}
}

func TestGlobalConfigPath(t *testing.T) {
	got := GlobalConfigPath("/home/user/.config")
	want := "/home/user/.config/teamtasks/config.toml"
	if got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}
}

func TestLogPaths(t *testing.T) {
	if got := GlobalLogPath("/d"); got != "/d/logs/teamtasks.log" {
		t.Errorf("GlobalLogPath() = %q", got)
	}
	if got := ProjectLogPath("/d", 3); got != "/d/logs/project-3.log" {
		t.Errorf("ProjectLogPath() = %q", got)
	}
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Store.Backend != StoreSQLite {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, StoreSQLite)
	}
	if cfg.Server.Addr != DefaultServerAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultServerAddr)
	}
	if cfg.Server.Mode != DefaultServerMode {
		t.Errorf("Server.Mode = %q, want %q", cfg.Server.Mode, DefaultServerMode)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Display.IndentWidth != DefaultIndentWidth {
		t.Errorf("Display.IndentWidth = %d, want %d", cfg.Display.IndentWidth, DefaultIndentWidth)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestConfig_StorePath(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		path    string
		want    string
	}{
		{"sqlite default", StoreSQLite, "", "/d/teamtasks.db"},
		{"json default", StoreJSON, "", "/d/teamtasks.json"},
		{"explicit path", StoreJSON, "/elsewhere/tasks.json", "/elsewhere/tasks.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			cfg.Store.Backend = tt.backend
			cfg.Store.Path = tt.path
			if got := cfg.StorePath("/d"); got != tt.want {
				t.Errorf("StorePath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Store.Backend = "postgres"
	err := cfg.Validate()
	if !errors.Is(err, ErrUnknownStoreBackend) {
		t.Fatalf("Validate() = %v, want ErrUnknownStoreBackend", err)
	}
	if !strings.Contains(err.Error(), "postgres") {
		t.Errorf("error should name the backend: %v", err)
	}

	cfg = NewDefaultConfig()
	cfg.Display.IndentWidth = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative indent width should be rejected")
	}
}
