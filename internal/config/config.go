package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "porch.db"
	DefaultStorageKey     = "todos"
	DefaultHeaderOffset   = 2
	DefaultLogName        = "porch.log"
)

type Keymap struct {
	Quit           string `toml:"quit"`
	NextFocus      string `toml:"next_focus"`
	PrevFocus      string `toml:"prev_focus"`
	Up             string `toml:"up"`
	Down           string `toml:"down"`
	Toggle         string `toml:"toggle"`
	Delete         string `toml:"delete"`
	ClearCompleted string `toml:"clear_completed"`
	FilterAll      string `toml:"filter_all"`
	FilterActive   string `toml:"filter_active"`
	FilterDone     string `toml:"filter_completed"`
	Confirm        string `toml:"confirm"`
	Submit         string `toml:"submit"`
	GotoHome       string `toml:"goto_home"`
	GotoTodo       string `toml:"goto_todo"`
	GotoContact    string `toml:"goto_contact"`
}

type Config struct {
	DBPath        string `toml:"db_path"`
	StorageKey    string `toml:"storage_key"`
	DefaultFilter string `toml:"default_filter"`
	HeaderOffset  int    `toml:"header_offset"`
	LogPath       string `toml:"log_path"`
	LogLevel      string `toml:"log_level"`
	PagePath      string `toml:"page_path"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath picks the config file location: $PORCH_CONFIG, then the
// XDG config dir, then ~/.config, falling back to the working directory.
func ResolveConfigPath() string {
	if p := os.Getenv("PORCH_CONFIG"); p != "" {
		return p
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "porch", DefaultConfigFileName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "porch", DefaultConfigFileName)
	}
	return DefaultConfigFileName
}

// LoadOrCreate reads the TOML config at path, writing defaults first when the
// file does not exist. Relative db/log paths resolve against the config dir.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default(filepath.Dir(path))
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
	cfg.fillDefaults(filepath.Dir(path))
	return cfg, nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) fillDefaults(dir string) {
	d := Default(dir)
	if c.DBPath == "" {
		c.DBPath = d.DBPath
	} else if !filepath.IsAbs(c.DBPath) {
		c.DBPath = filepath.Join(dir, c.DBPath)
	}
	if c.LogPath == "" {
		c.LogPath = d.LogPath
	} else if !filepath.IsAbs(c.LogPath) {
		c.LogPath = filepath.Join(dir, c.LogPath)
	}
	if c.StorageKey == "" {
		c.StorageKey = d.StorageKey
	}
	if c.DefaultFilter == "" {
		c.DefaultFilter = d.DefaultFilter
	}
	if c.HeaderOffset < 0 {
		c.HeaderOffset = 0
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	k, dk := &c.Keys, d.Keys
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&k.Quit, dk.Quit)
	fill(&k.NextFocus, dk.NextFocus)
	fill(&k.PrevFocus, dk.PrevFocus)
	fill(&k.Up, dk.Up)
	fill(&k.Down, dk.Down)
	fill(&k.Toggle, dk.Toggle)
	fill(&k.Delete, dk.Delete)
	fill(&k.ClearCompleted, dk.ClearCompleted)
	fill(&k.FilterAll, dk.FilterAll)
	fill(&k.FilterActive, dk.FilterActive)
	fill(&k.FilterDone, dk.FilterDone)
	fill(&k.Confirm, dk.Confirm)
	fill(&k.Submit, dk.Submit)
	fill(&k.GotoHome, dk.GotoHome)
	fill(&k.GotoTodo, dk.GotoTodo)
	fill(&k.GotoContact, dk.GotoContact)
}

// Default returns the built-in configuration with files placed in dir.
func Default(dir string) Config {
	return Config{
		DBPath:        filepath.Join(dir, DefaultDBName),
		StorageKey:    DefaultStorageKey,
		DefaultFilter: "all",
		HeaderOffset:  DefaultHeaderOffset,
		LogPath:       filepath.Join(dir, DefaultLogName),
		LogLevel:      "info",
		Keys: Keymap{
			Quit:           "ctrl+c",
			NextFocus:      "tab",
			PrevFocus:      "shift+tab",
			Up:             "up",
			Down:           "down",
			Toggle:         " ",
			Delete:         "d",
			ClearCompleted: "c",
			FilterAll:      "a",
			FilterActive:   "v",
			FilterDone:     "x",
			Confirm:        "enter",
			Submit:         "ctrl+s",
			GotoHome:       "f1",
			GotoTodo:       "f2",
			GotoContact:    "f3",
		},
	}
}
