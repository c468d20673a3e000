// Package app provides application lifecycle and orchestration.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/splitmux/internal/config"
	"github.com/abdullathedruid/splitmux/internal/controller"
	"github.com/abdullathedruid/splitmux/internal/input"
	"github.com/abdullathedruid/splitmux/internal/layout"
	"github.com/abdullathedruid/splitmux/internal/pane"
	"github.com/abdullathedruid/splitmux/internal/preset"
	"github.com/abdullathedruid/splitmux/internal/process"
	"github.com/abdullathedruid/splitmux/internal/session"
	"github.com/abdullathedruid/splitmux/internal/store"
)

// App ties the layout engine, the session registry and the gocui
// presentation layer together. The engine and registry never see each
// other directly; the synchronizer mediates registry events into layout
// corrections and the engine's focus listener feeds back into the
// registry's active session.
type App struct {
	gui      *gocui.Gui
	config   *config.Config
	log      *slog.Logger
	engine   *layout.Engine
	registry *session.Registry
	displays *pane.Manager
	syncer   *layout.Synchronizer
	catalog  *preset.Catalog
	watcher  *preset.Watcher
	store    *store.Store
	titler   *process.Titler
	input    *input.Handler
	ctx      *controller.Context

	statusBar *controller.StatusBarController
	help      *controller.HelpController
	picker    *controller.PickerController
	grid      *controller.GridController
	inspector *controller.InspectorController

	// lastRects is the previous frame's pane geometry, used to detect
	// resizes without re-measuring every frame.
	lastRects map[string]pane.Rect

	// knownViews tracks pane views created so stale ones can be deleted
	// when their pane leaves the tree.
	knownViews map[string]bool

	// pids remembers each session's shell pid; the registry forgets the
	// session before removal callbacks fire.
	pids map[string]int

	saveMu    sync.Mutex
	saveTimer *time.Timer

	firstCall bool
}

// Options carries the pre-built collaborators main wires in.
type Options struct {
	Config  *config.Config
	Log     *slog.Logger
	Store   *store.Store
	Catalog *preset.Catalog
	Watcher *preset.Watcher
}

// New creates the application and wires the engine, registry and
// synchronizer together.
func New(opts Options) (*App, error) {
	g, err := gocui.NewGui(gocui.NewGuiOpts{
		OutputMode: gocui.OutputTrue,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing GUI: %w", err)
	}

	cfg := opts.Config
	engine := layout.NewEngine(cfg.MaxPanes)
	registry := session.NewRegistry(cfg.Shell, nil)

	a := &App{
		gui:        g,
		config:     cfg,
		log:        opts.Log,
		engine:     engine,
		registry:   registry,
		displays:   pane.NewManager(),
		syncer:     layout.NewSynchronizer(engine, registry),
		catalog:    opts.Catalog,
		watcher:    opts.Watcher,
		store:      opts.Store,
		titler:     process.NewTitler(time.Duration(cfg.TitleRefresh) * time.Second),
		input:      input.NewHandler(),
		lastRects:  make(map[string]pane.Rect),
		knownViews: make(map[string]bool),
		pids:       make(map[string]int),
		firstCall:  true,
	}

	a.displays.SetNotify(a.redraw)

	a.ctx = controller.NewContext(engine, registry, cfg)
	a.ctx.Displays = a.displays
	a.ctx.Catalog = a.catalog
	a.ctx.Input = a.input
	a.ctx.Log = a.log
	a.ctx.OnApplyTemplate = a.applyTemplate
	a.ctx.OnApplyGrid = a.applyGrid
	a.ctx.OnSaveLayout = a.saveLayout
	a.ctx.OnQuit = func() error { return gocui.ErrQuit }

	a.statusBar = controller.NewStatusBarController(a.ctx)
	a.help = controller.NewHelpController(a.ctx)
	a.picker = controller.NewPickerController(a.ctx)
	a.grid = controller.NewGridController(a.ctx)
	a.inspector = controller.NewInspectorController(a.ctx)

	engine.SetMutationListener(func(prev, next layout.State) {
		a.inspector.RecordMutation(prev, next)
		a.scheduleSave()
		a.redraw()
	})
	engine.SetFocusListener(registry.SetActive)

	// Registry events arrive from arbitrary goroutines (a shell exiting,
	// for example). Corrections run on the gui loop so they interleave
	// cleanly with key handlers.
	registry.OnCreated(func(id string) {
		a.gui.Update(func(g *gocui.Gui) error {
			a.syncer.SessionCreated(id)
			return nil
		})
	})
	registry.OnRemoved(func(id string) {
		a.gui.Update(func(g *gocui.Gui) error {
			a.detachSession(id)
			a.syncer.SessionRemoved(id)
			return nil
		})
	})
	registry.OnActiveChanged(func(id string) {
		a.gui.Update(func(g *gocui.Gui) error {
			a.syncer.ActiveChanged(id)
			return nil
		})
	})

	if a.watcher != nil {
		a.watcher.OnReload(func(err error) {
			if err != nil {
				a.log.Warn("preset reload failed", "error", err)
				return
			}
			a.log.Info("presets reloaded", "path", a.catalog.Path())
			a.redraw()
		})
	}

	return a, nil
}

// Init seeds the workspace: restore the last layout unless disabled,
// then make sure at least one session is running.
func (a *App) Init(ctx context.Context) error {
	if !a.config.NoRestore && a.store != nil {
		if err := a.restoreLast(ctx); err != nil {
			a.log.Warn("could not restore last layout", "error", err)
		}
	}

	if a.registry.Count() == 0 {
		if _, err := a.spawnSession(); err != nil {
			return fmt.Errorf("starting initial session: %w", err)
		}
	}
	return nil
}

// Run starts the main event loop and blocks until quit.
func (a *App) Run() error {
	defer a.Close()

	a.gui.SetManagerFunc(a.layoutViews)

	if err := a.setupKeybindings(); err != nil {
		return fmt.Errorf("setting up keybindings: %w", err)
	}
	for _, c := range a.controllers() {
		if err := c.Keybindings(a.gui); err != nil {
			return fmt.Errorf("keybindings for %s: %w", c.Name(), err)
		}
	}

	if a.watcher != nil {
		a.watcher.Start()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		a.gui.Update(func(g *gocui.Gui) error {
			return gocui.ErrQuit
		})
	}()

	if err := a.gui.MainLoop(); err != nil && !errors.Is(err, gocui.ErrQuit) && err.Error() != "quit" {
		return fmt.Errorf("main loop: %w", err)
	}
	return nil
}

// Close persists the final layout and releases everything.
func (a *App) Close() {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	a.saveMu.Lock()
	if a.saveTimer != nil {
		a.saveTimer.Stop()
	}
	a.saveMu.Unlock()
	if a.store != nil {
		if err := a.saveLayout(); err != nil {
			a.log.Warn("could not save layout on exit", "error", err)
		}
	}
	a.displays.CloseAll()
	a.registry.CloseAll()
	a.gui.Close()
}

func (a *App) controllers() []controller.Controller {
	return []controller.Controller{
		a.statusBar, a.help, a.picker, a.grid, a.inspector,
	}
}

// redraw schedules a no-op update so the manager func reruns.
func (a *App) redraw() {
	a.gui.Update(func(g *gocui.Gui) error { return nil })
}

// spawnSession starts a shell sized to the focused pane, attaches its
// display and starts the output pump. The synchronizer assigns it to an
// empty pane if one exists.
func (a *App) spawnSession() (*session.Session, error) {
	w, h := a.focusedPaneSize()

	sess, err := a.registry.Create(w, h)
	if err != nil {
		return nil, err
	}

	a.displays.Attach(sess.ID, sess.Runner(), w, h)
	a.pids[sess.ID] = sess.Runner().PID()

	a.log.Info("session started", "session", sess.Name, "pid", sess.Runner().PID())
	return sess, nil
}

// detachSession tears down a removed session's display and title cache.
func (a *App) detachSession(id string) {
	if pid, ok := a.pids[id]; ok {
		a.titler.Forget(pid)
		delete(a.pids, id)
	}
	a.displays.Detach(id)
}

// focusedPaneSize returns the focused pane's interior size, or a sane
// default before the first layout pass.
func (a *App) focusedPaneSize() (int, int) {
	maxX, maxY := a.gui.Size()
	rects := pane.CellRects(a.engine.State().Root, maxX, maxY-pane.StatusBarHeight)
	if r, ok := rects[a.engine.FocusedPane()]; ok {
		return r.Width(), r.Height()
	}
	if maxX > 2 && maxY > pane.StatusBarHeight+2 {
		return maxX - 2, maxY - pane.StatusBarHeight - 2
	}
	return 80, 24
}

// applyTemplate replaces the layout with an instantiated preset. Live
// sessions fill the panes in creation order; panes beyond the session
// count get fresh shells, sessions beyond the pane count stay running
// but undisplayed.
func (a *App) applyTemplate(tpl layout.Template) error {
	sessions := a.registry.SessionIDs()
	a.engine.ApplyTemplate(tpl, sessions)
	a.log.Info("preset applied", "preset", tpl.Name, "panes", a.engine.PaneCount())
	return a.fillEmptyPanes()
}

// applyGrid replaces the layout with a rows x cols grid.
func (a *App) applyGrid(rows, cols int) error {
	if rows*cols > a.engine.MaxPanes() {
		return fmt.Errorf("%dx%d grid exceeds the %d pane limit", rows, cols, a.engine.MaxPanes())
	}
	sessions := a.registry.SessionIDs()
	a.engine.ApplyGrid(rows, cols)
	st := a.engine.State()
	for i, l := range layout.Leaves(st.Root) {
		if i >= len(sessions) {
			break
		}
		if err := a.engine.Assign(l.PaneID, sessions[i]); err != nil {
			return err
		}
	}
	a.log.Info("grid applied", "rows", rows, "cols", cols)
	return a.fillEmptyPanes()
}

// fillEmptyPanes spawns a shell per empty pane left after a wholesale
// layout replacement. Each spawn lands in the first empty pane via the
// synchronizer's created handler; spawning them here directly keeps the
// ordering deterministic.
func (a *App) fillEmptyPanes() error {
	for {
		st := a.engine.State()
		empty := layout.FirstEmptyLeaf(st.Root)
		if empty == nil {
			return nil
		}
		sess, err := a.spawnSession()
		if err != nil {
			return err
		}
		if err := a.engine.Assign(empty.PaneID, sess.ID); err != nil {
			return err
		}
	}
}

// scheduleSave persists the layout shortly after the last mutation in a
// burst. Splitting three times writes one snapshot, not three.
func (a *App) scheduleSave() {
	if a.store == nil {
		return
	}
	a.saveMu.Lock()
	defer a.saveMu.Unlock()
	if a.saveTimer != nil {
		a.saveTimer.Stop()
	}
	a.saveTimer = time.AfterFunc(time.Second, func() {
		if err := a.saveLayout(); err != nil {
			a.log.Warn("autosave failed", "error", err)
		}
	})
}

// saveLayout snapshots the current layout shape under the "last" label.
func (a *App) saveLayout() error {
	if a.store == nil {
		return nil
	}
	snap, err := store.Capture(store.LastLabel, a.engine.State())
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.store.SaveSnapshot(ctx, snap); err != nil {
		return err
	}
	a.log.Info("layout saved", "label", snap.Label, "panes", a.engine.PaneCount())
	return nil
}

// restoreLast reopens the last saved layout shape and spawns fresh
// shells into the panes that were occupied when it was saved. Shells do
// not survive restarts, so only the shape and occupancy are restored.
func (a *App) restoreLast(ctx context.Context) error {
	snap, err := a.store.LoadSnapshot(ctx, store.LastLabel)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}

	st, occupied, err := store.Restore(snap)
	if err != nil {
		return err
	}
	a.engine.Restore(st)

	leaves := layout.Leaves(a.engine.State().Root)
	for _, idx := range occupied {
		if idx >= len(leaves) {
			continue
		}
		sess, err := a.spawnSession()
		if err != nil {
			return err
		}
		if err := a.engine.Assign(leaves[idx].PaneID, sess.ID); err != nil {
			return err
		}
	}
	a.log.Info("layout restored", "label", snap.Label, "panes", len(leaves), "sessions", len(occupied))
	return nil
}
