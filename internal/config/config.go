// Package config handles application configuration.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration.
type Config struct {
	// DataDir is the directory for persistent data (presets, snapshots, logs)
	DataDir string `yaml:"-"`

	// Shell is the command spawned into new panes
	Shell string `yaml:"shell"`

	// MaxPanes caps how many panes a split can hold
	MaxPanes int `yaml:"max_panes"`

	// TitleRefresh is how often pane titles are re-inspected (in seconds)
	TitleRefresh int `yaml:"title_refresh"`

	// NoRestore disables reopening the last layout on startup
	NoRestore bool `yaml:"no_restore"`

	// ScrollLines is how many history lines one scroll step moves
	ScrollLines int `yaml:"scroll_lines"`

	// Keys contains keybinding configuration
	Keys KeyBindings `yaml:"keys"`

	// Theme contains theme/appearance configuration
	Theme Theme `yaml:"theme"`
}

// KeyBindings holds all configurable keybindings for normal mode.
type KeyBindings struct {
	Quit         string `yaml:"quit"`
	Help         string `yaml:"help"`
	SplitRight   string `yaml:"split_right"`
	SplitDown    string `yaml:"split_down"`
	ClosePane    string `yaml:"close_pane"`
	Collapse     string `yaml:"collapse"`
	NavUp        string `yaml:"nav_up"`
	NavDown      string `yaml:"nav_down"`
	NavLeft      string `yaml:"nav_left"`
	NavRight     string `yaml:"nav_right"`
	NewSession   string `yaml:"new_session"`
	AssignActive string `yaml:"assign_active"`
	PresetPicker string `yaml:"preset_picker"`
	GridBuilder  string `yaml:"grid_builder"`
	Inspector    string `yaml:"inspector"`
	GrowRatio    string `yaml:"grow_ratio"`
	ShrinkRatio  string `yaml:"shrink_ratio"`
	ScrollUp     string `yaml:"scroll_up"`
	ScrollDown   string `yaml:"scroll_down"`
	SaveLayout   string `yaml:"save_layout"`
	EnterPane    string `yaml:"enter_pane"`
}

// Theme holds theme configuration.
type Theme struct {
	Colors ThemeColors            `yaml:"colors"`
	Status map[string]StatusStyle `yaml:"status"`
}

// ThemeColors holds color configuration.
type ThemeColors struct {
	FocusBorder string `yaml:"focus_border"`
	Border      string `yaml:"border"`
	StatusBarBg string `yaml:"statusbar_bg"`
	StatusBarFg string `yaml:"statusbar_fg"`
}

// StatusStyle holds style configuration for a session status.
type StatusStyle struct {
	Icon  string `yaml:"icon"`
	Color string `yaml:"color"`
	Label string `yaml:"label"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		DataDir:      defaultDataDir(),
		Shell:        getDefaultShell(),
		MaxPanes:     12,
		TitleRefresh: 2,
		ScrollLines:  5,
		Keys:         DefaultKeyBindings(),
		Theme:        DefaultTheme(),
	}
}

// DefaultKeyBindings returns the default keybindings.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Quit:         "q",
		Help:         "?",
		SplitRight:   "v",
		SplitDown:    "s",
		ClosePane:    "x",
		Collapse:     "o",
		NavUp:        "k",
		NavDown:      "j",
		NavLeft:      "h",
		NavRight:     "l",
		NewSession:   "n",
		AssignActive: "a",
		PresetPicker: "p",
		GridBuilder:  "g",
		Inspector:    "i",
		GrowRatio:    "]",
		ShrinkRatio:  "[",
		ScrollUp:     "pgup",
		ScrollDown:   "pgdn",
		SaveLayout:   "w",
		EnterPane:    "enter",
	}
}

// DefaultTheme returns the default theme configuration.
func DefaultTheme() Theme {
	return Theme{
		Colors: ThemeColors{
			FocusBorder: "green",
			Border:      "white",
			StatusBarBg: "blue",
			StatusBarFg: "white",
		},
		Status: map[string]StatusStyle{
			"running": {
				Icon:  "●", // ●
				Color: "green",
				Label: "RUNNING",
			},
			"exited": {
				Icon:  "✓", // ✓
				Color: "white",
				Label: "EXITED",
			},
			"empty": {
				Icon:  "○", // ○
				Color: "white",
				Label: "EMPTY",
			},
		},
	}
}

// Load loads configuration from the config file, falling back to defaults.
func Load() (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(cfg.ConfigFile())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	// Parse into a temporary struct so file values override defaults
	// without wiping the ones the file omits.
	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, err
	}
	mergeConfig(cfg, &fileCfg)

	if err := ValidateKeys(&cfg.Keys); err != nil {
		return nil, err
	}
	if cfg.MaxPanes < 1 {
		cfg.MaxPanes = 1
	}

	return cfg, nil
}

// mergeConfig merges file configuration into the default configuration.
// Only non-zero values from file are applied.
func mergeConfig(dst, src *Config) {
	if src.Shell != "" {
		dst.Shell = src.Shell
	}
	if src.MaxPanes != 0 {
		dst.MaxPanes = src.MaxPanes
	}
	if src.TitleRefresh != 0 {
		dst.TitleRefresh = src.TitleRefresh
	}
	if src.ScrollLines != 0 {
		dst.ScrollLines = src.ScrollLines
	}
	if src.NoRestore {
		dst.NoRestore = true
	}

	mergeKeyBindings(&dst.Keys, &src.Keys)
	mergeTheme(&dst.Theme, &src.Theme)
}

// mergeTheme merges theme configuration from src into dst.
func mergeTheme(dst, src *Theme) {
	if src.Colors.FocusBorder != "" {
		dst.Colors.FocusBorder = src.Colors.FocusBorder
	}
	if src.Colors.Border != "" {
		dst.Colors.Border = src.Colors.Border
	}
	if src.Colors.StatusBarBg != "" {
		dst.Colors.StatusBarBg = src.Colors.StatusBarBg
	}
	if src.Colors.StatusBarFg != "" {
		dst.Colors.StatusBarFg = src.Colors.StatusBarFg
	}

	for key, style := range src.Status {
		if existing, ok := dst.Status[key]; ok {
			if style.Icon != "" {
				existing.Icon = style.Icon
			}
			if style.Color != "" {
				existing.Color = style.Color
			}
			if style.Label != "" {
				existing.Label = style.Label
			}
			dst.Status[key] = existing
		} else {
			dst.Status[key] = style
		}
	}
}

// defaultDataDir returns the default data directory.
func defaultDataDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "splitmux")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".splitmux"
	}
	return filepath.Join(home, ".config", "splitmux")
}

// getDefaultShell returns the user's default shell.
func getDefaultShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/bash"
}

// ConfigFile returns the path to the config file.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "config.yaml")
}

// PresetsFile returns the path to the user presets file.
func (c *Config) PresetsFile() string {
	return filepath.Join(c.DataDir, "presets.yaml")
}

// SnapshotDB returns the path to the layout snapshot database.
func (c *Config) SnapshotDB() string {
	return filepath.Join(c.DataDir, "splitmux.db")
}

// LogFile returns the path to the log file.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "splitmux.log")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0755)
}
