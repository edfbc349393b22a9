package state

import "github.com/five82/herotail/internal/parser"

// Message is an input to View.Update. Every mutation of a View goes through
// one of these values.
type Message interface{ isMessage() }

// NewLine carries one raw line from stdin or a file.
type NewLine struct{ Text string }

// NewRecord carries a record already parsed by a producer. The stream
// supervisor parses on its reader goroutine and forwards records.
type NewRecord struct{ Record parser.Record }

type (
	ScrollUp         struct{}
	ScrollDown       struct{}
	ScrollToTop      struct{}
	ScrollToBottom   struct{}
	PageUp           struct{}
	PageDown         struct{}
	SelectNext       struct{}
	SelectPrev       struct{}
	TogglePause      struct{}
	ClearFilters     struct{}
	ToggleFilterMode struct{}
	ClearLogs        struct{}
	EnterSearch      struct{}
	ExitSearch       struct{}
	CancelSearch     struct{}
	CopyToClipboard  struct{}
	ExportToFile     struct{}
	Quit             struct{}
	Tick             struct{}
)

// AddFilter parses Text with the filter mini-language and appends it.
type AddFilter struct{ Text string }

// SearchInput replaces the search buffer while in SearchEntry mode.
type SearchInput struct{ Text string }

// SetViewMode switches the presentation layout.
type SetViewMode struct{ Mode ViewMode }

// SetStatus records a status line produced outside the reducer, such as
// stream supervisor events.
type SetStatus struct{ Text string }

func (NewLine) isMessage()          {}
func (NewRecord) isMessage()        {}
func (ScrollUp) isMessage()         {}
func (ScrollDown) isMessage()       {}
func (ScrollToTop) isMessage()      {}
func (ScrollToBottom) isMessage()   {}
func (PageUp) isMessage()           {}
func (PageDown) isMessage()         {}
func (SelectNext) isMessage()       {}
func (SelectPrev) isMessage()       {}
func (TogglePause) isMessage()      {}
func (AddFilter) isMessage()        {}
func (ClearFilters) isMessage()     {}
func (ToggleFilterMode) isMessage() {}
func (ClearLogs) isMessage()        {}
func (SetViewMode) isMessage()      {}
func (EnterSearch) isMessage()      {}
func (ExitSearch) isMessage()       {}
func (CancelSearch) isMessage()     {}
func (SearchInput) isMessage()      {}
func (CopyToClipboard) isMessage()  {}
func (ExportToFile) isMessage()     {}
func (SetStatus) isMessage()        {}
func (Quit) isMessage()             {}
func (Tick) isMessage()             {}
