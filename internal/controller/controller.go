// Package controller provides view controllers for the splitmux TUI.
package controller

import (
	"log/slog"

	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/splitmux/internal/config"
	"github.com/abdullathedruid/splitmux/internal/input"
	"github.com/abdullathedruid/splitmux/internal/layout"
	"github.com/abdullathedruid/splitmux/internal/pane"
	"github.com/abdullathedruid/splitmux/internal/preset"
	"github.com/abdullathedruid/splitmux/internal/session"
)

// Controller is the interface for view controllers.
type Controller interface {
	// Name returns the view name for this controller.
	Name() string
	// Layout sets up the view dimensions.
	Layout(g *gocui.Gui) error
	// Keybindings sets up view-specific keybindings.
	Keybindings(g *gocui.Gui) error
	// Render renders the view content.
	Render(g *gocui.Gui) error
}

// Context provides shared context for all controllers.
type Context struct {
	Engine   *layout.Engine
	Registry *session.Registry
	Displays *pane.Manager
	Catalog  *preset.Catalog
	Input    *input.Handler
	Config   *config.Config
	Log      *slog.Logger

	// OnApplyTemplate replaces the layout with a preset and fills it
	// with sessions.
	OnApplyTemplate func(tpl layout.Template) error
	// OnApplyGrid replaces the layout with a rows x cols grid.
	OnApplyGrid func(rows, cols int) error
	// OnSaveLayout snapshots the current layout.
	OnSaveLayout func() error
	// OnQuit shuts the application down.
	OnQuit func() error
}

// NewContext creates a new controller context.
func NewContext(eng *layout.Engine, reg *session.Registry, cfg *config.Config) *Context {
	return &Context{
		Engine:   eng,
		Registry: reg,
		Config:   cfg,
	}
}
