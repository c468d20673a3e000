package session

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry is the authoritative set of live sessions. It emits created,
// removed, and active-changed events to subscribers; the layout
// synchronizer consumes them to keep panes and sessions consistent.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	order    []string // ids in creation order
	active   string
	shellCmd string
	seq      int
	factory  RunnerFactory

	onCreated       []func(id string)
	onRemoved       []func(id string)
	onActiveChanged []func(id string)
}

// NewRegistry creates an empty registry whose sessions run the given shell
// command. factory may be nil, in which case real pty shells are spawned.
func NewRegistry(shellCmd string, factory RunnerFactory) *Registry {
	if factory == nil {
		factory = NewShellRunner
	}
	return &Registry{
		sessions: make(map[string]*Session),
		shellCmd: shellCmd,
		factory:  factory,
	}
}

// OnCreated subscribes to session-created events.
func (r *Registry) OnCreated(fn func(id string)) {
	r.mu.Lock()
	r.onCreated = append(r.onCreated, fn)
	r.mu.Unlock()
}

// OnRemoved subscribes to session-removed events.
func (r *Registry) OnRemoved(fn func(id string)) {
	r.mu.Lock()
	r.onRemoved = append(r.onRemoved, fn)
	r.mu.Unlock()
}

// OnActiveChanged subscribes to active-session-changed events.
func (r *Registry) OnActiveChanged(fn func(id string)) {
	r.mu.Lock()
	r.onActiveChanged = append(r.onActiveChanged, fn)
	r.mu.Unlock()
}

// Create starts a new shell session and announces it. The first session
// becomes active automatically.
func (r *Registry) Create(width, height int) (*Session, error) {
	runner := r.factory(r.shellCmd)

	r.mu.Lock()
	r.seq++
	sess := &Session{
		ID:      uuid.NewString(),
		Name:    fmt.Sprintf("shell %d", r.seq),
		Command: r.shellCmd,
		Status:  StatusRunning,
		Created: time.Now(),
		runner:  runner,
	}
	// Register before starting the shell so an exit callback firing
	// immediately still finds the id and cleans up.
	r.sessions[sess.ID] = sess
	r.order = append(r.order, sess.ID)
	r.mu.Unlock()

	if shell, ok := runner.(*Shell); ok {
		shell.OnExit(func() { r.Remove(sess.ID) })
	}
	if err := runner.Start(width, height); err != nil {
		r.discard(sess.ID)
		return nil, fmt.Errorf("starting session shell: %w", err)
	}

	r.mu.Lock()
	_, alive := r.sessions[sess.ID]
	created := append([]func(string){}, r.onCreated...)
	makeActive := alive && r.active == ""
	r.mu.Unlock()

	// The shell may have died between Start and here; its exit callback
	// already removed it, so the session is never announced.
	if !alive {
		return nil, fmt.Errorf("session shell exited during startup")
	}

	for _, fn := range created {
		fn(sess.ID)
	}
	if makeActive {
		r.SetActive(sess.ID)
	}
	return sess, nil
}

// discard drops a never-announced session without firing removal events.
func (r *Registry) discard(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Remove closes a session's shell, drops it from the registry and
// announces the removal. Removing an unknown id is a no-op. When the
// active session is removed, the most recently created survivor becomes
// active.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	sess, ok := r.sessions[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(r.sessions, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	sess.Status = StatusExited
	wasActive := r.active == id
	if wasActive {
		r.active = ""
	}
	var nextActive string
	if wasActive && len(r.order) > 0 {
		nextActive = r.order[len(r.order)-1]
	}
	removed := append([]func(string){}, r.onRemoved...)
	r.mu.Unlock()

	sess.runner.Close()
	for _, fn := range removed {
		fn(id)
	}
	if nextActive != "" {
		r.SetActive(nextActive)
	}
}

// SetActive marks a session as the globally active one (input routing).
// Idempotent: setting the already-active session emits nothing, which is
// what breaks the focus/active notification cycle with the layout engine.
func (r *Registry) SetActive(id string) {
	r.mu.Lock()
	if r.active == id {
		r.mu.Unlock()
		return
	}
	if _, ok := r.sessions[id]; !ok {
		r.mu.Unlock()
		return
	}
	r.active = id
	changed := append([]func(string){}, r.onActiveChanged...)
	r.mu.Unlock()

	for _, fn := range changed {
		fn(id)
	}
}

// ActiveSession returns the id of the active session, or "".
func (r *Registry) ActiveSession() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// SessionIDs returns all live session ids in creation order.
func (r *Registry) SessionIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Get returns the session with the given id, or nil.
func (r *Registry) Get(id string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}

// Sessions returns all live sessions in creation order.
func (r *Registry) Sessions() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Session, 0, len(r.sessions))
	for _, id := range r.order {
		out = append(out, r.sessions[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Created.Before(out[j].Created)
	})
	return out
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// CloseAll terminates every session without emitting events; used during
// application shutdown when the layout no longer needs correcting.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.sessions = make(map[string]*Session)
	r.order = nil
	r.active = ""
	r.mu.Unlock()

	for _, s := range sessions {
		s.runner.Close()
	}
}
