// Package ui provides the Bubble Tea terminal interface for herotail.
//
// # Architecture Overview
//
// Model wraps a *state.View and is the only code that mutates it. Keys,
// ticks and producer messages all arrive through Update, which runs on the
// Bubble Tea event loop, so the view needs no locking:
//
//	stdin/file reader ──┐
//	stream supervisor ──┼── program.Send(LineMsg / RecordMsg / StatusMsg) ──► Model.Update ──► state.View
//	keyboard, ticker ───┘
//
// Producers build the program with NewProgram and call Send from their own
// goroutines. View renders a state.Snapshot each frame.
//
// # Layout
//
// From top to bottom: a header with the source, counters and a
// LIVE/PAUSED/SEARCH badge; the command bar (bubbles/help short view); the
// filter bar or search prompt; the content box for the List, Detail or Split
// view; and the status line.
//
// # Key Bindings
//
//   - j/k, arrows: scroll one line; pgup/pgdown: scroll a page
//   - g/G, home/end: oldest/newest record
//   - n/N: move the selection used by Detail and Split
//   - 1/2/3: List, Detail, Split
//   - /: add a filter (text, /regex/, dyno:, source:, level:), enter applies, esc cancels
//   - f: toggle AND/OR; c: clear filters; x: clear logs
//   - p or Space: pause ingestion
//   - y: copy filtered records; s: export them to a file
//   - r: reconnect the Heroku stream
//   - T: cycle theme (saved to prefs); ?: help; q or ctrl+c: quit
package ui
