package state

import "github.com/five82/herotail/internal/parser"

// Stats summarises the view for the header line.
type Stats struct {
	Total         int
	Filtered      int
	Capacity      int
	ActiveFilters int
}

// Snapshot is the read-only projection handed to the render layer.
type Snapshot struct {
	Visible       []parser.Record
	WindowStart   int // filtered position of Visible[0]
	Selected      *parser.Record
	SelectedIndex int
	Stats         Stats
	Filters       []string
	FilterMode    string
	ScrollOffset  int
	Paused        bool
	InputMode     InputMode
	ViewMode      ViewMode
	SearchBuffer  string
	Status        string
}

// Visible returns the window of filtered records for a viewport of height
// rows. Offset 0 shows the newest records at the bottom.
func (v *View) Visible(height int) []parser.Record {
	if len(v.filtered) == 0 || height <= 0 {
		return nil
	}
	start, end := v.window(height)
	return v.resolve(v.filtered[start:end])
}

// window returns the filtered positions [start, end) shown at height rows.
func (v *View) window(height int) (int, int) {
	end := max(len(v.filtered)-v.scrollOffset, 0)
	return max(end-height, 0), end
}

// AllFiltered returns every record that currently passes the filters.
func (v *View) AllFiltered() []parser.Record {
	return v.resolve(v.filtered)
}

// Selected returns the record at the selection cursor.
func (v *View) Selected() (parser.Record, bool) {
	if v.selectedIndex < 0 || v.selectedIndex >= len(v.filtered) {
		return parser.Record{}, false
	}
	return v.buf.Get(v.filtered[v.selectedIndex])
}

// resolve maps buffer positions to records, skipping positions that are no
// longer held.
func (v *View) resolve(indices []int) []parser.Record {
	out := make([]parser.Record, 0, len(indices))
	for _, idx := range indices {
		if rec, ok := v.buf.Get(idx); ok {
			out = append(out, rec)
		}
	}
	return out
}

// Stats reports buffer and filter counts.
func (v *View) Stats() Stats {
	return Stats{
		Total:         v.buf.Len(),
		Filtered:      len(v.filtered),
		Capacity:      v.buf.Cap(),
		ActiveFilters: v.filters.Len(),
	}
}

// Snapshot bundles everything the render layer needs for one frame.
func (v *View) Snapshot(height int) Snapshot {
	start, _ := v.window(height)
	snap := Snapshot{
		Visible:       v.Visible(height),
		WindowStart:   start,
		SelectedIndex: v.selectedIndex,
		Stats:         v.Stats(),
		Filters:       v.filters.Describe(),
		FilterMode:    v.filters.Mode().String(),
		ScrollOffset:  v.scrollOffset,
		Paused:        v.paused,
		InputMode:     v.inputMode,
		ViewMode:      v.viewMode,
		SearchBuffer:  v.searchBuffer,
		Status:        v.status,
	}
	if rec, ok := v.Selected(); ok {
		snap.Selected = &rec
	}
	return snap
}

// FilteredIndices returns a copy of the filtered buffer positions.
func (v *View) FilteredIndices() []int {
	return append([]int(nil), v.filtered...)
}

func (v *View) ScrollOffset() int { return v.scrollOffset }
func (v *View) SelectedIndex() int { return v.selectedIndex }
func (v *View) Paused() bool { return v.paused }
func (v *View) InputMode() InputMode { return v.inputMode }
func (v *View) ViewMode() ViewMode { return v.viewMode }
func (v *View) SearchBuffer() string { return v.searchBuffer }
func (v *View) Status() string { return v.status }
func (v *View) Quitting() bool { return v.quitting }
func (v *View) FilterCount() int { return v.filters.Len() }
func (v *View) FilterMode() string { return v.filters.Mode().String() }
