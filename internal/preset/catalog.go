package preset

import (
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/abdullathedruid/splitmux/internal/layout"
)

// Catalog holds the merged set of builtin and user templates. User
// templates shadow builtins with the same name.
type Catalog struct {
	mu   sync.RWMutex
	path string
	user []layout.Template
}

// NewCatalog creates a catalog backed by the given presets.yaml path.
// A missing file is not an error; the catalog starts with builtins only.
func NewCatalog(path string) (*Catalog, error) {
	c := &Catalog{path: path}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Path returns the user presets file location.
func (c *Catalog) Path() string {
	return c.path
}

// Reload re-reads the user presets file. On parse errors the previous
// user templates are kept so a half-saved file never wipes the picker.
func (c *Catalog) Reload() error {
	if c.path == "" {
		return nil
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			c.mu.Lock()
			c.user = nil
			c.mu.Unlock()
			return nil
		}
		return err
	}

	templates, err := Parse(data)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.user = templates
	c.mu.Unlock()
	return nil
}

// Templates returns all templates, user presets first in file order,
// then the builtins they do not shadow.
func (c *Catalog) Templates() []layout.Template {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool, len(c.user))
	out := make([]layout.Template, 0, len(c.user)+8)
	for _, tpl := range c.user {
		if seen[tpl.Name] {
			continue
		}
		seen[tpl.Name] = true
		out = append(out, tpl)
	}
	for _, tpl := range Builtins() {
		if seen[tpl.Name] {
			continue
		}
		seen[tpl.Name] = true
		out = append(out, tpl)
	}
	return out
}

// Find returns the template with the given name.
func (c *Catalog) Find(name string) (layout.Template, bool) {
	for _, tpl := range c.Templates() {
		if tpl.Name == name {
			return tpl, true
		}
	}
	return layout.Template{}, false
}

// Search ranks templates against a query for the preset picker.
// Substring matches come first, then close names by edit distance.
// An empty query returns everything in catalog order.
func (c *Catalog) Search(query string) []layout.Template {
	all := c.Templates()
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return all
	}

	type scored struct {
		tpl  layout.Template
		rank int
		dist int
		pos  int
	}

	var matches []scored
	for i, tpl := range all {
		name := strings.ToLower(tpl.Name)
		dist := levenshtein.ComputeDistance(query, name)
		switch {
		case strings.HasPrefix(name, query):
			matches = append(matches, scored{tpl, 0, dist, i})
		case strings.Contains(name, query):
			matches = append(matches, scored{tpl, 1, dist, i})
		case dist <= len(query)/2+1:
			matches = append(matches, scored{tpl, 2, dist, i})
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		if matches[a].rank != matches[b].rank {
			return matches[a].rank < matches[b].rank
		}
		if matches[a].dist != matches[b].dist {
			return matches[a].dist < matches[b].dist
		}
		return matches[a].pos < matches[b].pos
	})

	out := make([]layout.Template, len(matches))
	for i, m := range matches {
		out[i] = m.tpl
	}
	return out
}
