// Package state holds the log viewer's view state and the reducer that
// mutates it.
//
// # Overview
//
// View owns the retention buffer, the active filter set, the scroll offset,
// the selection cursor, the pause flag and the search prompt. It is mutated
// only through Update, one Message at a time:
//
//	producers (stdin, file, stream, keys, ticker)
//	        │
//	        ▼
//	   Message channel ──► View.Update(msg) ──► View.Snapshot(height)
//	                                                 │
//	                                                 ▼
//	                                           render layer
//
// Because a single consumer applies messages in order, View has no locks.
//
// # Scrolling
//
// The scroll offset counts filtered records back from the newest one, so
// offset 0 always shows the newest records. ScrollUp and PageUp move toward
// older history and saturate at filtered-1; ScrollDown and PageDown saturate
// at 0.
//
// When a new record arrives and the view is "at the bottom" the offset is
// pinned back to 0. At the bottom means the filtered list is empty, the
// offset is 0, or the offset is within BottomThreshold of the end of the
// filtered list.
//
// # Visible Window
//
// For a viewport of h rows:
//
//	end   = filtered - offset
//	start = max(0, end - h)
//
// and the records at filtered positions [start, end) are resolved through
// the buffer. Positions no longer held are skipped.
//
// # Search Prompt
//
// EnterSearch switches to InputSearch with an empty buffer. ExitSearch
// returns to InputNormal and, when the buffer is non-empty, adds it as a
// filter using the filter mini-language. CancelSearch returns to
// InputNormal without adding anything.
//
// # Collaborators
//
// Clipboard and file export are injected as Copier and Exporter. The reducer
// hands them the full filtered slice and stores whatever status string or
// error they report.
package state
