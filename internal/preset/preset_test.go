package preset

import (
	"strings"
	"testing"

	"github.com/abdullathedruid/splitmux/internal/layout"
)

const samplePresets = `
presets:
  - name: dev
    layout:
      split: horizontal
      ratio: 0.6
      first: {}
      second:
        split: vertical
        first: {}
        second: {}
  - name: triple
    layout:
      grid: horizontal
      sizes: [50, 30, 20]
      children: [{}, {}, {}]
`

func TestParsePresets(t *testing.T) {
	templates, err := Parse([]byte(samplePresets))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(templates) != 2 {
		t.Fatalf("len(templates) = %d, want 2", len(templates))
	}

	dev := templates[0]
	if dev.Name != "dev" {
		t.Errorf("Name = %q, want dev", dev.Name)
	}
	branch, ok := dev.Shape.(*layout.Branch)
	if !ok {
		t.Fatalf("dev shape is %T, want *Branch", dev.Shape)
	}
	if branch.Axis != layout.Horizontal || branch.Ratio != 0.6 {
		t.Errorf("branch = %v %v, want horizontal 0.6", branch.Axis, branch.Ratio)
	}
	if _, ok := branch.Second.(*layout.Branch); !ok {
		t.Errorf("nested second is %T, want *Branch", branch.Second)
	}

	grid, ok := templates[1].Shape.(*layout.Grid)
	if !ok {
		t.Fatalf("triple shape is %T, want *Grid", templates[1].Shape)
	}
	if len(grid.Children) != 3 {
		t.Errorf("len(grid.Children) = %d, want 3", len(grid.Children))
	}
	if grid.Sizes[0] != 50 || grid.Sizes[2] != 20 {
		t.Errorf("Sizes = %v", grid.Sizes)
	}
}

func TestParseDefaultsMissingFields(t *testing.T) {
	templates, err := Parse([]byte(`
presets:
  - name: bare
    layout:
      first: {}
      second: {}
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	branch := templates[0].Shape.(*layout.Branch)
	if branch.Axis != layout.Horizontal {
		t.Errorf("default axis = %v, want horizontal", branch.Axis)
	}
	if branch.Ratio != layout.DefaultRatio {
		t.Errorf("default ratio = %v, want %v", branch.Ratio, layout.DefaultRatio)
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"unnamed": `
presets:
  - layout: {first: {}, second: {}}
`,
		"half-branch": `
presets:
  - name: broken
    layout: {first: {}}
`,
		"bad-axis": `
presets:
  - name: broken
    layout: {split: diagonal, first: {}, second: {}}
`,
	}

	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("%s: Parse() succeeded, want error", name)
		}
	}
}

func TestParseRepairsSizes(t *testing.T) {
	templates, err := Parse([]byte(`
presets:
  - name: lopsided
    layout:
      grid: vertical
      sizes: [1, 3]
      children: [{}, {}]
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	grid := templates[0].Shape.(*layout.Grid)
	if grid.Sizes[0] != 25 || grid.Sizes[1] != 75 {
		t.Errorf("Sizes = %v, want [25 75]", grid.Sizes)
	}
}

func TestParseFlattensSingleChildGrid(t *testing.T) {
	templates, err := Parse([]byte(`
presets:
  - name: degenerate
    layout:
      grid: horizontal
      children: [{}]
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if _, ok := templates[0].Shape.(*layout.Leaf); !ok {
		t.Errorf("Shape = %T, want the sole child as a leaf", templates[0].Shape)
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	original, err := Parse([]byte(samplePresets))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	data, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	reparsed, err := Parse(data)
	if err != nil {
		t.Fatalf("reparse error: %v\n%s", err, data)
	}
	if len(reparsed) != len(original) {
		t.Fatalf("round trip lost presets: %d != %d", len(reparsed), len(original))
	}
	for i := range original {
		a := SpecOf(original[i].Shape)
		b := SpecOf(reparsed[i].Shape)
		if !specEqual(a, b) {
			t.Errorf("preset %q changed across round trip", original[i].Name)
		}
	}
}

func specEqual(a, b NodeSpec) bool {
	if a.Split != b.Split || a.Grid != b.Grid || a.Ratio != b.Ratio {
		return false
	}
	if (a.First == nil) != (b.First == nil) || (a.Second == nil) != (b.Second == nil) {
		return false
	}
	if a.First != nil && (!specEqual(*a.First, *b.First) || !specEqual(*a.Second, *b.Second)) {
		return false
	}
	if len(a.Children) != len(b.Children) || len(a.Sizes) != len(b.Sizes) {
		return false
	}
	for i := range a.Children {
		if !specEqual(a.Children[i], b.Children[i]) {
			return false
		}
	}
	for i := range a.Sizes {
		if a.Sizes[i] != b.Sizes[i] {
			return false
		}
	}
	return true
}

func TestSpecOfLeaf(t *testing.T) {
	spec := SpecOf(&layout.Leaf{PaneID: "p", SessionID: "s"})
	if spec.First != nil || len(spec.Children) != 0 {
		t.Errorf("leaf spec not empty: %+v", spec)
	}

	data, err := Encode([]layout.Template{{Name: "x", Shape: &layout.Leaf{PaneID: "p"}}})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !strings.Contains(string(data), "layout: {}") {
		t.Errorf("leaf should encode as empty mapping, got:\n%s", data)
	}
}
