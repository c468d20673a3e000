package store

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/abdullathedruid/splitmux/internal/layout"
	"github.com/abdullathedruid/splitmux/internal/preset"
)

// Capture converts a live layout state into a storable snapshot.
// Session identity is not portable across runs, so only the positions
// of occupied leaves are recorded.
func Capture(label string, st layout.State) (Snapshot, error) {
	spec := preset.SpecOf(st.Root)
	data, err := yaml.Marshal(&spec)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode layout: %w", err)
	}

	snap := Snapshot{
		Label:      label,
		LayoutYAML: string(data),
	}
	for i, leaf := range layout.Leaves(st.Root) {
		if leaf.PaneID == st.Focused {
			snap.FocusIndex = i
		}
		if leaf.SessionID != "" {
			snap.Occupied = append(snap.Occupied, i)
		}
	}
	return snap, nil
}

// Restore rebuilds a layout state from a snapshot with fresh pane IDs.
// The returned occupied slice names the pre-order leaf positions that
// need a session respawned into them.
func Restore(snap Snapshot) (layout.State, []int, error) {
	var spec preset.NodeSpec
	if err := yaml.Unmarshal([]byte(snap.LayoutYAML), &spec); err != nil {
		return layout.State{}, nil, fmt.Errorf("decode layout: %w", err)
	}

	name := snap.Label
	if name == "" {
		name = LastLabel
	}
	tpl, err := preset.Spec{Name: name, Layout: spec}.Template()
	if err != nil {
		return layout.State{}, nil, fmt.Errorf("rebuild layout: %w", err)
	}
	root := tpl.Instantiate(nil)

	leaves := layout.Leaves(root)
	focus := snap.FocusIndex
	if focus < 0 || focus >= len(leaves) {
		focus = 0
	}

	occupied := make([]int, 0, len(snap.Occupied))
	for _, idx := range snap.Occupied {
		if idx >= 0 && idx < len(leaves) {
			occupied = append(occupied, idx)
		}
	}

	return layout.State{Root: root, Focused: leaves[focus].PaneID}, occupied, nil
}
