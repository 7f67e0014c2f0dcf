package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Database DatabaseConfig `toml:"database"`
	Theme    ThemeConfig    `toml:"theme"`
	UI       UIConfig       `toml:"ui"`
	Keys     KeyConfig      `toml:"keys"`
	Logging  LoggingConfig  `toml:"logging"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type ThemeConfig struct {
	Key         string `toml:"key"`
	DefaultDark bool   `toml:"default_dark"` // used only when nothing is stored yet
}

type UIConfig struct {
	Title         string `toml:"title"`
	ShowHelp      bool   `toml:"show_help"`
	CharLimit     int    `toml:"char_limit"`
	DefaultFilter string `toml:"default_filter"` // all | completed | pending
}

type KeyConfig struct {
	AddTask     string `toml:"add_task"`
	EditTask    string `toml:"edit_task"`
	ToggleTask  string `toml:"toggle_task"`
	ToggleTheme string `toml:"toggle_theme"`
	CycleFilter string `toml:"cycle_filter"`
	CopyTask    string `toml:"copy_task"`
}

type LoggingConfig struct {
	Level   string               `toml:"level"`
	DevFile DevFileLoggingConfig `toml:"dev_file"`
}

type DevFileLoggingConfig struct {
	Enabled    bool   `toml:"enabled"`
	Dir        string `toml:"dir"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

var (
	validFilters   = []string{"all", "completed", "pending"}
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	// fixedKeys are bound by the TUI and cannot be reassigned.
	fixedKeys = []string{"q", "ctrl+c", "?", "k", "up", "j", "down", "1", "2", "3", "enter", "esc"}
)

func Default(dbPath string) Config {
	return Config{
		Database: DatabaseConfig{
			Path: dbPath,
		},
		Theme: ThemeConfig{
			Key:         "darkMode",
			DefaultDark: false,
		},
		UI: UIConfig{
			Title:         "Enhanced To-Do List",
			ShowHelp:      true,
			CharLimit:     200,
			DefaultFilter: "all",
		},
		Keys: KeyConfig{
			AddTask:     "a",
			EditTask:    "e",
			ToggleTask:  "x",
			ToggleTheme: "t",
			CycleFilter: "f",
			CopyTask:    "y",
		},
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileLoggingConfig{
				Enabled:    true,
				Dir:        "",
				MaxSizeMB:  5,
				MaxBackups: 3,
			},
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database path is required")
	}
	if strings.TrimSpace(c.Theme.Key) == "" {
		return errors.New("theme.key is required")
	}
	if c.UI.CharLimit < 0 {
		return errors.New("ui.char_limit must be >= 0")
	}
	switch f := strings.TrimSpace(strings.ToLower(c.UI.DefaultFilter)); {
	case f == "", slices.Contains(validFilters, f):
	default:
		return fmt.Errorf("invalid ui.default_filter: %q", c.UI.DefaultFilter)
	}
	if !slices.Contains(validLogLevels, strings.TrimSpace(strings.ToLower(c.Logging.Level))) {
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}
	if c.Logging.DevFile.MaxSizeMB < 0 {
		return errors.New("logging.dev_file.max_size_mb must be >= 0")
	}
	if c.Logging.DevFile.MaxBackups < 0 {
		return errors.New("logging.dev_file.max_backups must be >= 0")
	}

	bindings := []struct {
		name    string
		value   string
		primary string
		aliases []string
	}{
		{"keys.add_task", c.Keys.AddTask, "a", []string{"n", "i"}},
		{"keys.edit_task", c.Keys.EditTask, "e", nil},
		{"keys.toggle_task", c.Keys.ToggleTask, "x", []string{"space"}},
		{"keys.toggle_theme", c.Keys.ToggleTheme, "t", nil},
		{"keys.cycle_filter", c.Keys.CycleFilter, "f", []string{"tab"}},
		{"keys.copy_task", c.Keys.CopyTask, "y", nil},
	}
	// An action left on its primary key keeps its aliases bound.
	claimed := map[string]string{}
	for _, binding := range bindings {
		if normalizeKey(binding.value) == binding.primary {
			for _, alias := range binding.aliases {
				claimed[alias] = binding.name
			}
		}
	}
	seenKey := map[string]string{}
	for _, binding := range bindings {
		v := normalizeKey(binding.value)
		if v == "" {
			return fmt.Errorf("%s is required", binding.name)
		}
		if slices.Contains(fixedKeys, v) {
			return fmt.Errorf("%s uses reserved key %q", binding.name, v)
		}
		if prev, ok := seenKey[v]; ok {
			return fmt.Errorf("%s duplicates %s: %q", binding.name, prev, v)
		}
		if owner, ok := claimed[v]; ok && owner != binding.name {
			return fmt.Errorf("%s duplicates %s: %q", binding.name, owner, v)
		}
		seenKey[v] = binding.name
	}

	return nil
}

// normalizeKey maps a configured key to the form the TUI matches on.
func normalizeKey(raw string) string {
	if raw == " " {
		return "space"
	}
	v := strings.TrimSpace(raw)
	if utf8.RuneCountInString(v) > 1 {
		return strings.ToLower(v)
	}
	return v
}

// UpsertThemeDefault rewrites theme.default_dark in the TOML file at path,
// preserving every other key.
func UpsertThemeDefault(path string, dark bool) error {
	doc := map[string]any{}
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if len(strings.TrimSpace(string(content))) > 0 {
			if err := toml.Unmarshal(content, &doc); err != nil {
				return fmt.Errorf("decode toml: %w", err)
			}
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return fmt.Errorf("read config: %w", err)
	}

	theme, _ := doc["theme"].(map[string]any)
	if theme == nil {
		theme = map[string]any{}
	}
	theme["default_dark"] = dark
	doc["theme"] = theme

	encoded, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
