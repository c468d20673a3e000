package preset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abdullathedruid/splitmux/internal/layout"
)

func writePresets(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "presets.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCatalogMissingFile(t *testing.T) {
	c, err := NewCatalog(filepath.Join(t.TempDir(), "presets.yaml"))
	if err != nil {
		t.Fatalf("NewCatalog() error: %v", err)
	}

	if len(c.Templates()) != len(Builtins()) {
		t.Errorf("missing file should leave only builtins")
	}
	if _, ok := c.Find("quad"); !ok {
		t.Error("builtin quad not found")
	}
}

func TestCatalogUserShadowsBuiltin(t *testing.T) {
	dir := t.TempDir()
	path := writePresets(t, dir, `
presets:
  - name: quad
    layout: {first: {}, second: {}}
  - name: mine
    layout: {first: {}, second: {}}
`)

	c, err := NewCatalog(path)
	if err != nil {
		t.Fatalf("NewCatalog() error: %v", err)
	}

	all := c.Templates()
	if all[0].Name != "quad" || all[0].ID != "user:quad" {
		t.Errorf("user presets should come first, got %q (%s)", all[0].Name, all[0].ID)
	}
	count := 0
	for _, tpl := range all {
		if tpl.Name == "quad" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("quad appears %d times, want 1", count)
	}
	if _, ok := c.Find("mine"); !ok {
		t.Error("user preset mine not found")
	}
}

func TestCatalogReloadKeepsLastGood(t *testing.T) {
	dir := t.TempDir()
	path := writePresets(t, dir, `
presets:
  - name: good
    layout: {first: {}, second: {}}
`)

	c, err := NewCatalog(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Find("good"); !ok {
		t.Fatal("preset good not loaded")
	}

	writePresets(t, dir, "presets: [{name: broken, layout: {first: {}}}]")
	if err := c.Reload(); err == nil {
		t.Error("Reload() of broken file should error")
	}
	if _, ok := c.Find("good"); !ok {
		t.Error("broken reload wiped previous templates")
	}
}

func TestCatalogSearch(t *testing.T) {
	c, err := NewCatalog("")
	if err != nil {
		t.Fatal(err)
	}

	if got := c.Search(""); len(got) != len(Builtins()) {
		t.Errorf("empty query returned %d results", len(got))
	}

	got := c.Search("main")
	if len(got) < 2 {
		t.Fatalf("Search(main) = %d results, want at least 2", len(got))
	}
	for _, tpl := range got[:2] {
		if tpl.Name != "main-left" && tpl.Name != "main-top" {
			t.Errorf("prefix matches should rank first, got %q", tpl.Name)
		}
	}

	// Typo still finds the intended preset via edit distance.
	got = c.Search("qaad")
	found := false
	for _, tpl := range got {
		if tpl.Name == "quad" {
			found = true
		}
	}
	if !found {
		t.Errorf("Search(qaad) missed quad: %v", names(got))
	}

	if got := c.Search("zzzzzzzz"); len(got) != 0 {
		t.Errorf("nonsense query returned %v", names(got))
	}
}

func names(templates []layout.Template) []string {
	out := make([]string, len(templates))
	for i, tpl := range templates {
		out[i] = tpl.Name
	}
	return out
}
