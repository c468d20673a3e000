package controller

import (
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/go-errors/errors"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/jesseduffield/gocui"
	"gopkg.in/yaml.v3"

	"github.com/abdullathedruid/splitmux/internal/layout"
	"github.com/abdullathedruid/splitmux/internal/preset"
	"github.com/abdullathedruid/splitmux/internal/ui"
)

const inspectorViewName = "inspector"

// InspectorController shows the current layout tree as highlighted
// yaml plus a diff of the most recent mutation. Mainly a debugging
// aid, but also how users learn the preset format.
type InspectorController struct {
	ctx     *Context
	visible bool

	mu         sync.Mutex
	prevYAML   string
	latestYAML string
}

// NewInspectorController creates a new inspector controller.
func NewInspectorController(ctx *Context) *InspectorController {
	return &InspectorController{ctx: ctx}
}

// Name returns the view name.
func (c *InspectorController) Name() string {
	return inspectorViewName
}

// IsVisible returns whether the inspector is visible.
func (c *InspectorController) IsVisible() bool {
	return c.visible
}

// RecordMutation captures the before/after trees of a layout change.
// Wired to the engine's mutation listener.
func (c *InspectorController) RecordMutation(prev, next layout.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prevYAML = layoutYAML(prev.Root)
	c.latestYAML = layoutYAML(next.Root)
}

// Show opens the inspector.
func (c *InspectorController) Show(g *gocui.Gui) error {
	c.visible = true
	return c.Layout(g)
}

// Hide closes the inspector.
func (c *InspectorController) Hide(g *gocui.Gui) error {
	c.visible = false
	return g.DeleteView(inspectorViewName)
}

// Toggle toggles the inspector visibility.
func (c *InspectorController) Toggle(g *gocui.Gui) error {
	if c.visible {
		return c.Hide(g)
	}
	return c.Show(g)
}

// Layout sets up the inspector view.
func (c *InspectorController) Layout(g *gocui.Gui) error {
	if !c.visible {
		return nil
	}

	maxX, maxY := g.Size()
	x0, y0, x1, y1 := ui.ModalDimensions(maxX, maxY, 64, 32)

	v, err := g.SetView(inspectorViewName, x0, y0, x1, y1, 0)
	if err != nil && !errors.Is(err, gocui.ErrUnknownView) {
		return err
	}

	ui.ConfigureOverlay(v, "Layout Inspector")
	v.Wrap = false

	if _, err := g.SetCurrentView(inspectorViewName); err != nil {
		return err
	}

	return c.Render(g)
}

// Keybindings sets up inspector keybindings.
func (c *InspectorController) Keybindings(g *gocui.Gui) error {
	for _, key := range []any{gocui.KeyEsc, 'q', 'i'} {
		if err := g.SetKeybinding(inspectorViewName, key, gocui.ModNone, c.close); err != nil {
			return err
		}
	}
	return nil
}

// Render renders the inspector content.
func (c *InspectorController) Render(g *gocui.Gui) error {
	v, err := g.View(inspectorViewName)
	if err != nil {
		return err
	}

	v.Clear()

	current := c.ctx.Engine.State()
	currentYAML := layoutYAML(current.Root)

	fmt.Fprintf(v, " focused: %s\n\n", current.Focused)
	fmt.Fprint(v, HighlightYAML(currentYAML))

	if diff := c.lastChangeDiff(); diff != "" {
		fmt.Fprintln(v, "\n last change:")
		fmt.Fprint(v, indent(diff, " "))
	}

	fmt.Fprintln(v, "\n Esc: Close")
	return nil
}

func (c *InspectorController) close(g *gocui.Gui, v *gocui.View) error {
	return c.Hide(g)
}

func (c *InspectorController) lastChangeDiff() string {
	c.mu.Lock()
	before, after := c.prevYAML, c.latestYAML
	c.mu.Unlock()

	if before == "" || before == after {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath("layout.yaml"), before, after)
	return fmt.Sprint(gotextdiff.ToUnified("previous", "current", before, edits))
}

// HighlightYAML renders yaml with terminal colors, falling back to the
// plain source when highlighting fails.
func HighlightYAML(source string) string {
	var sb strings.Builder
	if err := quick.Highlight(&sb, source, "yaml", "terminal256", "monokai"); err != nil {
		return source
	}
	return sb.String()
}

func layoutYAML(node layout.Node) string {
	if node == nil {
		return ""
	}
	spec := preset.SpecOf(node)
	data, err := yaml.Marshal(&spec)
	if err != nil {
		return ""
	}
	return string(data)
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n") + "\n"
}
