package cli

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/testutil"
)

func TestConfigShowCommand(t *testing.T) {
	c, _ := newTestContainer()
	cfg := domain.NewDefaultConfig()
	cfg.Store.Backend = domain.StoreJSON
	cfg.Warnings = []string{"unknown section: colors"}
	c.ConfigLoader = &testutil.MockConfigLoader{Config: cfg}

	out, _, err := execute(t, newConfigCommand(c), "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[store]")
	assert.Regexp(t, `backend = ['"]json['"]`, out)
	assert.Contains(t, out, "indent_width = 4")
	assert.NotContains(t, out, "colors", "warnings are not part of the file")
}

func TestConfigShowCommand_LoadError(t *testing.T) {
	c, _ := newTestContainer()
	c.ConfigLoader = &testutil.MockConfigLoader{Err: errors.New("parse config.toml: boom")}

	_, _, err := execute(t, newConfigCommand(c), "show", "--global")

	assert.ErrorContains(t, err, "boom")
}

func TestConfigInitCommand(t *testing.T) {
	original := globalConfigDirFunc
	defer func() { globalConfigDirFunc = original }()
	dir := filepath.Join(t.TempDir(), "teamtasks")
	globalConfigDirFunc = func() string { return dir }

	out, _, err := execute(t, newConfigCommand(nil), "init")
	require.NoError(t, err)
	assert.Equal(t, "Created "+filepath.Join(dir, "config.toml")+"\n", out)

	_, _, err = execute(t, newConfigCommand(nil), "init")
	assert.ErrorIs(t, err, domain.ErrConfigExists)
}
