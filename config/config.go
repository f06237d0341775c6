package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"todo-screen/app"
	"todo-screen/model"
)

const (
	DefaultTitle       = "To-Do List"
	DefaultPlaceholder = "Add a new task"
)

type Config struct {
	Title         string `yaml:"title,omitempty"`
	Placeholder   string `yaml:"placeholder,omitempty"`
	InitialFilter string `yaml:"initial_filter,omitempty"`
	// ActiveFilter is "legacy" (active shows completed tasks) or "open".
	ActiveFilter string `yaml:"active_filter,omitempty"`
	ExportDir    string `yaml:"export_dir,omitempty"`
	// CharLimit caps the input length. Zero, the default, means no limit.
	CharLimit int `yaml:"char_limit,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Title:         DefaultTitle,
		Placeholder:   DefaultPlaceholder,
		InitialFilter: string(model.FilterAll),
		ActiveFilter:  app.ActiveLegacy.String(),
		ExportDir:     ".",
	}
}

// DefaultPath is $HOME/.config/todo-screen/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "todo-screen.yaml")
	}
	return filepath.Join(home, ".config", "todo-screen", "config.yaml")
}

// Load reads the YAML file at path. A missing file yields Default().
// Keys left out of the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, err := c.Filter(); err != nil {
		return fmt.Errorf("invalid initial_filter: %w", err)
	}
	if _, err := c.ActiveMode(); err != nil {
		return fmt.Errorf("invalid active_filter: %w", err)
	}
	if c.CharLimit < 0 {
		return fmt.Errorf("invalid char_limit: %d", c.CharLimit)
	}
	return nil
}

// Filter parses InitialFilter; empty means "all".
func (c *Config) Filter() (model.Filter, error) {
	if c.InitialFilter == "" {
		return model.FilterAll, nil
	}
	return model.ParseFilter(c.InitialFilter)
}

func (c *Config) ActiveMode() (app.ActiveMode, error) {
	return app.ParseActiveMode(c.ActiveFilter)
}

// StoreOptions turns the config into options for app.NewStore.
func (c *Config) StoreOptions() ([]app.Option, error) {
	filter, err := c.Filter()
	if err != nil {
		return nil, err
	}
	mode, err := c.ActiveMode()
	if err != nil {
		return nil, err
	}
	return []app.Option{app.WithFilter(filter), app.WithActiveMode(mode)}, nil
}
