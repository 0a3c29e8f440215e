package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todobox/internal/todo"
)

func TestLoadOrCreate_WritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = os.Stat(path)
	require.NoError(t, err, "config file should be created on first launch")

	again, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadOrCreate_OverridesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	data := `
page_size = 10
default_filter = "active"

[behavior]
commit_edit_on_blur = false
select_all_unchecks = false

[keys]
quit = "x"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, todo.FilterActive, cfg.Filter())
	assert.False(t, cfg.Behavior.CommitEditOnBlur)
	assert.False(t, cfg.Behavior.SelectAllUnchecks)
	assert.Equal(t, "x", cfg.Keys.Quit)
	// Unset keys keep their defaults.
	assert.Equal(t, "a", cfg.Keys.Add)
	assert.Equal(t, DefaultAddr, cfg.Web.Addr)
}

func TestLoadOrCreate_NormalizesBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	data := `
page_size = 0
default_filter = "someday"
log_level = ""

[web]
addr = ""
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, todo.DefaultPageSize, cfg.PageSize)
	assert.Equal(t, "all", cfg.DefaultFilter)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultAddr, cfg.Web.Addr)
}

func TestLoadOrCreate_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("page_size = [oops"), 0o600))

	_, err := LoadOrCreate(path)
	assert.Error(t, err)
}

func TestResolveConfigPath_Env(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom.toml")
	assert.Equal(t, "/tmp/custom.toml", ResolveConfigPath())
}

func TestStoreOptions(t *testing.T) {
	cfg := Default()
	cfg.PageSize = 3
	cfg.DefaultFilter = "completed"
	cfg.Behavior.SelectAllUnchecks = false

	s := todo.NewStore(cfg.StoreOptions()...)
	assert.Equal(t, 3, s.PageSize())
	assert.Equal(t, todo.FilterCompleted, s.Filter())

	s.Add("a")
	s.SetAll(true)
	assert.False(t, s.SetAll(false))
}
