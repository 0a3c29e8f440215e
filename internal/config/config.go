package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"todobox/internal/todo"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultAppDir         = "todobox"
	DefaultAddr           = "127.0.0.1:8765"
	EnvConfigPath         = "TODOBOX_CONFIG"
)

type Keymap struct {
	Quit           string `toml:"quit"`
	Add            string `toml:"add"`
	Up             string `toml:"up"`
	Down           string `toml:"down"`
	Toggle         string `toml:"toggle"`
	Delete         string `toml:"delete"`
	Confirm        string `toml:"confirm"`
	Cancel         string `toml:"cancel"`
	Edit           string `toml:"edit"`
	Filter         string `toml:"filter"`
	PrevPage       string `toml:"prev_page"`
	NextPage       string `toml:"next_page"`
	ToggleAll      string `toml:"toggle_all"`
	ClearCompleted string `toml:"clear_completed"`
}

type Behavior struct {
	CommitEditOnBlur  bool `toml:"commit_edit_on_blur"`
	SelectAllUnchecks bool `toml:"select_all_unchecks"`
	ConfirmDelete     bool `toml:"confirm_delete"`
}

type Web struct {
	Addr string `toml:"addr"`
}

type Config struct {
	PageSize      int      `toml:"page_size"`
	DefaultFilter string   `toml:"default_filter"`
	LogLevel      string   `toml:"log_level"`
	LogFile       string   `toml:"log_file"`
	Web           Web      `toml:"web"`
	Behavior      Behavior `toml:"behavior"`
	Keys          Keymap   `toml:"keys"`
}

// ResolveConfigPath picks the config file: $TODOBOX_CONFIG, then the user
// config dir, then the working directory.
func ResolveConfigPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, DefaultAppDir, DefaultConfigFileName)
	}
	return DefaultConfigFileName
}

func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// Filter returns the configured default filter, falling back to all.
func (c Config) Filter() todo.Filter {
	f, err := todo.ParseFilter(c.DefaultFilter)
	if err != nil {
		return todo.FilterAll
	}
	return f
}

// StoreOptions maps the config onto todo.Store options.
func (c Config) StoreOptions() []todo.Option {
	return []todo.Option{
		todo.WithPageSize(c.PageSize),
		todo.WithFilter(c.Filter()),
		todo.WithSelectAllUnchecks(c.Behavior.SelectAllUnchecks),
	}
}

func (c *Config) normalize() {
	def := Default()
	if c.PageSize < 1 {
		c.PageSize = def.PageSize
	}
	if _, err := todo.ParseFilter(c.DefaultFilter); err != nil {
		c.DefaultFilter = def.DefaultFilter
	}
	if strings.TrimSpace(c.Web.Addr) == "" {
		c.Web.Addr = def.Web.Addr
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = def.LogLevel
	}
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func Default() Config {
	return Config{
		PageSize:      todo.DefaultPageSize,
		DefaultFilter: "all",
		LogLevel:      "info",
		Web:           Web{Addr: DefaultAddr},
		Behavior: Behavior{
			CommitEditOnBlur:  true,
			SelectAllUnchecks: true,
			ConfirmDelete:     false,
		},
		Keys: Keymap{
			Quit:           "q",
			Add:            "a",
			Up:             "k",
			Down:           "j",
			Toggle:         " ",
			Delete:         "d",
			Confirm:        "enter",
			Cancel:         "esc",
			Edit:           "e",
			Filter:         "f",
			PrevPage:       "[",
			NextPage:       "]",
			ToggleAll:      "A",
			ClearCompleted: "C",
		},
	}
}
