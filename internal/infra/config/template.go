package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/runoshun/teamtasks/internal/domain"
)

// RenderTemplate renders a commented config file holding the values of cfg.
func RenderTemplate(cfg *domain.Config) string {
	var b strings.Builder
	b.WriteString("# teamtasks configuration\n")
	b.WriteString("# Global settings live in ~/.config/teamtasks/config.toml; this file wins.\n\n")

	b.WriteString("[store]\n")
	b.WriteString("# Entity store backend: \"sqlite\" or \"json\"\n")
	fmt.Fprintf(&b, "backend = %q\n", cfg.Store.Backend)
	if cfg.Store.Path != "" {
		fmt.Fprintf(&b, "path = %q\n", cfg.Store.Path)
	} else {
		b.WriteString("# path = \"/custom/location/teamtasks.db\"\n")
	}

	b.WriteString("\n[server]\n")
	fmt.Fprintf(&b, "addr = %q\n", cfg.Server.Addr)
	b.WriteString("# gin mode: debug, release or test\n")
	fmt.Fprintf(&b, "mode = %q\n", cfg.Server.Mode)

	b.WriteString("\n[log]\n")
	b.WriteString("# debug, info, warn or error\n")
	fmt.Fprintf(&b, "level = %q\n", cfg.Log.Level)

	b.WriteString("\n[display]\n")
	b.WriteString("# Spaces per depth level in indented task lists\n")
	fmt.Fprintf(&b, "indent_width = %d\n", cfg.Display.IndentWidth)
	return b.String()
}

// InitGlobalConfig writes the default template to the global config file.
// It returns domain.ErrConfigExists when the file is already there.
func InitGlobalConfig(globalConfDir string) (string, error) {
	if globalConfDir == "" {
		return "", errors.New("global config directory not available")
	}
	path := filepath.Join(globalConfDir, domain.ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, domain.ErrConfigExists
	}
	if err := os.MkdirAll(globalConfDir, 0o700); err != nil {
		return path, err
	}
	return path, os.WriteFile(path, []byte(RenderTemplate(domain.NewDefaultConfig())), 0o600)
}
