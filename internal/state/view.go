package state

import (
	"fmt"

	"github.com/five82/herotail/internal/buffer"
	"github.com/five82/herotail/internal/filter"
	"github.com/five82/herotail/internal/parser"
)

// ViewMode selects the presentation layout.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewSplit
)

func (m ViewMode) String() string {
	switch m {
	case ViewDetail:
		return "Detail"
	case ViewSplit:
		return "Split"
	default:
		return "List"
	}
}

// InputMode is Normal or SearchEntry.
type InputMode int

const (
	InputNormal InputMode = iota
	InputSearch
)

const (
	// DefaultCapacity is the retention window used when none is configured.
	DefaultCapacity = 10_000

	// PageSize is the offset step for PageUp/PageDown.
	PageSize = 20

	// BottomThreshold is how close to the end of the filtered list the
	// offset may be and still count as pinned to the bottom. Tunable.
	BottomThreshold = 5
)

// Copier puts records on a clipboard and describes the outcome.
type Copier interface {
	Copy(records []parser.Record) (string, error)
}

// Exporter writes records somewhere durable and describes the outcome.
type Exporter interface {
	Export(records []parser.Record) (string, error)
}

// Options configure a View.
type Options struct {
	Capacity int // zero uses DefaultCapacity
	Copier   Copier
	Exporter Exporter
}

// View is the message-driven state behind the log viewer. It is not safe for
// concurrent use; a single consumer applies messages one at a time.
type View struct {
	buf      *buffer.Ring
	filters  filter.Set
	filtered []int // buffer positions that pass filters, oldest first

	scrollOffset  int
	selectedIndex int
	paused        bool
	inputMode     InputMode
	viewMode      ViewMode
	searchBuffer  string
	status        string
	quitting      bool

	copier   Copier
	exporter Exporter
}

// New builds an empty View.
func New(opts Options) *View {
	capacity := opts.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &View{
		buf:      buffer.New(capacity),
		copier:   opts.Copier,
		exporter: opts.Exporter,
	}
}

// Update applies msg.
func (v *View) Update(msg Message) {
	switch msg := msg.(type) {
	case NewLine:
		if v.paused {
			return
		}
		if rec, ok := parser.Parse(msg.Text); ok {
			v.ingest(rec)
		}
	case NewRecord:
		if v.paused {
			return
		}
		v.ingest(msg.Record)
	case ScrollUp:
		v.scrollOffset++
		v.clampScroll()
	case ScrollDown:
		v.scrollOffset = max(v.scrollOffset-1, 0)
	case ScrollToTop:
		v.scrollOffset = v.maxOffset()
		v.selectedIndex = 0
	case ScrollToBottom:
		v.scrollOffset = 0
	case PageUp:
		v.scrollOffset += PageSize
		v.clampScroll()
	case PageDown:
		v.scrollOffset = max(v.scrollOffset-PageSize, 0)
	case SelectNext:
		if v.selectedIndex < len(v.filtered)-1 {
			v.selectedIndex++
		}
	case SelectPrev:
		v.selectedIndex = max(v.selectedIndex-1, 0)
	case TogglePause:
		v.paused = !v.paused
		if v.paused {
			v.status = "Paused"
		} else {
			v.status = "Resumed"
		}
	case AddFilter:
		if f, ok := filter.Parse(msg.Text); ok {
			v.filters.Add(f)
			v.status = "Added filter: " + f.String()
		}
		v.recompute()
	case ClearFilters:
		v.filters.Clear()
		v.recompute()
		v.status = "Filters cleared"
	case ToggleFilterMode:
		v.filters.ToggleMode()
		v.recompute()
		v.status = "Filter mode: " + v.filters.Mode().String()
	case ClearLogs:
		v.buf.Clear()
		v.recompute()
		v.scrollOffset = 0
		v.status = "Logs cleared"
	case SetViewMode:
		v.viewMode = msg.Mode
	case EnterSearch:
		v.inputMode = InputSearch
		v.searchBuffer = ""
		v.status = "SEARCH MODE - Type your query and press Enter"
	case SearchInput:
		if v.inputMode == InputSearch {
			v.searchBuffer = msg.Text
		}
	case ExitSearch:
		v.inputMode = InputNormal
		if v.searchBuffer != "" {
			v.Update(AddFilter{Text: v.searchBuffer})
		}
		v.searchBuffer = ""
	case CancelSearch:
		v.inputMode = InputNormal
		v.searchBuffer = ""
		v.status = ""
	case CopyToClipboard:
		var do func([]parser.Record) (string, error)
		if v.copier != nil {
			do = v.copier.Copy
		}
		v.status = report("Copy", do, v.AllFiltered())
	case ExportToFile:
		var do func([]parser.Record) (string, error)
		if v.exporter != nil {
			do = v.exporter.Export
		}
		v.status = report("Export", do, v.AllFiltered())
	case SetStatus:
		v.status = msg.Text
	case Quit:
		v.quitting = true
	case Tick:
	}
}

func report(verb string, do func([]parser.Record) (string, error), records []parser.Record) string {
	if do == nil {
		return verb + " unavailable"
	}
	text, err := do(records)
	if err != nil {
		return fmt.Sprintf("%s failed: %v", verb, err)
	}
	return text
}

func (v *View) ingest(rec parser.Record) {
	v.buf.Push(rec)
	v.recompute()
	if v.atBottom() {
		v.scrollOffset = 0
	}
}

func (v *View) recompute() {
	v.filtered = v.filters.FilteredIndices(v.buf.All())
	v.clampScroll()
	if v.selectedIndex >= len(v.filtered) {
		v.selectedIndex = max(len(v.filtered)-1, 0)
	}
}

func (v *View) atBottom() bool {
	if len(v.filtered) == 0 {
		return true
	}
	return v.scrollOffset == 0 || v.scrollOffset+BottomThreshold >= len(v.filtered)
}

func (v *View) maxOffset() int {
	return max(len(v.filtered)-1, 0)
}

func (v *View) clampScroll() {
	v.scrollOffset = min(v.scrollOffset, v.maxOffset())
}
