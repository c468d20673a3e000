package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.MaxPanes != 12 {
		t.Errorf("MaxPanes = %d, want 12", cfg.MaxPanes)
	}
	if cfg.Shell == "" {
		t.Error("Shell is empty")
	}
	if err := ValidateKeys(&cfg.Keys); err != nil {
		t.Errorf("default keybindings invalid: %v", err)
	}
	if !ValidateColor(cfg.Theme.Colors.FocusBorder) {
		t.Errorf("default focus border color %q invalid", cfg.Theme.Colors.FocusBorder)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Keys.SplitRight != "v" {
		t.Errorf("SplitRight = %q, want default v", cfg.Keys.SplitRight)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfgDir := filepath.Join(dir, "splitmux")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatal(err)
	}
	content := `
shell: /bin/fish
max_panes: 6
keys:
  split_right: "%"
theme:
  colors:
    focus_border: cyan
  status:
    running:
      icon: ">"
`
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Shell != "/bin/fish" {
		t.Errorf("Shell = %q", cfg.Shell)
	}
	if cfg.MaxPanes != 6 {
		t.Errorf("MaxPanes = %d, want 6", cfg.MaxPanes)
	}
	if cfg.Keys.SplitRight != "%" {
		t.Errorf("SplitRight = %q, want %%", cfg.Keys.SplitRight)
	}
	// Untouched values keep their defaults.
	if cfg.Keys.SplitDown != "s" {
		t.Errorf("SplitDown = %q, want default s", cfg.Keys.SplitDown)
	}
	if cfg.Theme.Colors.FocusBorder != "cyan" {
		t.Errorf("FocusBorder = %q", cfg.Theme.Colors.FocusBorder)
	}
	if cfg.Theme.Colors.StatusBarBg != "blue" {
		t.Errorf("StatusBarBg = %q, want default blue", cfg.Theme.Colors.StatusBarBg)
	}
	if cfg.Theme.Status["running"].Icon != ">" {
		t.Errorf("running icon = %q", cfg.Theme.Status["running"].Icon)
	}
	if cfg.Theme.Status["running"].Label != "RUNNING" {
		t.Error("partial status style wiped the default label")
	}
}

func TestLoadRejectsDuplicateKeys(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfgDir := filepath.Join(dir, "splitmux")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatal(err)
	}
	content := `
keys:
  split_right: q
`
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load() accepted a key bound twice")
	}
}

func TestPaths(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/tmp/sm"

	if cfg.ConfigFile() != "/tmp/sm/config.yaml" {
		t.Errorf("ConfigFile() = %q", cfg.ConfigFile())
	}
	if cfg.PresetsFile() != "/tmp/sm/presets.yaml" {
		t.Errorf("PresetsFile() = %q", cfg.PresetsFile())
	}
	if cfg.SnapshotDB() != "/tmp/sm/splitmux.db" {
		t.Errorf("SnapshotDB() = %q", cfg.SnapshotDB())
	}
}
