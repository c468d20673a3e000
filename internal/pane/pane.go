package pane

import "strings"

// ViewName returns the gocui view name for a layout pane ID.
// Pane IDs are UUIDs; the first segment is unique enough for view names
// and keeps gocui logs readable.
func ViewName(paneID string) string {
	if i := strings.IndexByte(paneID, '-'); i > 0 {
		return "pane-" + paneID[:i]
	}
	return "pane-" + paneID
}
