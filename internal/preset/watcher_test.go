package preset

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := writePresets(t, dir, "presets: []")

	c, err := NewCatalog(path)
	if err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(c)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	var reloads atomic.Int32
	var lastErr atomic.Value
	w.OnReload(func(err error) {
		reloads.Add(1)
		if err != nil {
			lastErr.Store(err)
		}
	})
	w.Start()

	writePresets(t, dir, `
presets:
  - name: fresh
    layout: {first: {}, second: {}}
`)

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := c.Find("fresh"); ok {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}

	if _, ok := c.Find("fresh"); !ok {
		t.Fatal("catalog did not pick up new preset")
	}
	if reloads.Load() == 0 {
		t.Error("reload callback never fired")
	}
	if lastErr.Load() != nil {
		t.Errorf("reload reported error: %v", lastErr.Load())
	}
}
