package process

import (
	"sync"
	"time"
)

// DefaultTitleTTL bounds how often ps runs per session during rendering.
const DefaultTitleTTL = 2 * time.Second

type titleEntry struct {
	name    string
	fetched time.Time
}

// Titler caches foreground command names per shell PID. The render
// loop asks for titles every frame; forking ps each time would swamp
// small machines.
type Titler struct {
	mu    sync.Mutex
	ttl   time.Duration
	cache map[int]titleEntry
	now   func() time.Time
}

// NewTitler creates a Titler with the given cache lifetime.
func NewTitler(ttl time.Duration) *Titler {
	if ttl <= 0 {
		ttl = DefaultTitleTTL
	}
	return &Titler{
		ttl:   ttl,
		cache: make(map[int]titleEntry),
		now:   time.Now,
	}
}

// Title returns the foreground command name for a shell PID, or the
// empty string when inspection fails. Results are cached for the TTL.
func (t *Titler) Title(shellPID int) string {
	if shellPID <= 0 {
		return ""
	}

	t.mu.Lock()
	entry, ok := t.cache[shellPID]
	if ok && t.now().Sub(entry.fetched) < t.ttl {
		t.mu.Unlock()
		return entry.name
	}
	t.mu.Unlock()

	name, _, err := Foreground(shellPID)
	if err != nil {
		name = ""
	}

	t.mu.Lock()
	t.cache[shellPID] = titleEntry{name: name, fetched: t.now()}
	t.mu.Unlock()
	return name
}

// Forget drops the cached title for a shell PID.
func (t *Titler) Forget(shellPID int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.cache, shellPID)
}
