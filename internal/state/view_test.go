package state

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/five82/herotail/internal/parser"
)

func line(i int, dyno, message string) string {
	return fmt.Sprintf("2010-09-16T15:13:%02d.000000+00:00 app[%s]: %s", i%60, dyno, message)
}

func feed(v *View, n int) {
	for i := 0; i < n; i++ {
		v.Update(NewLine{Text: line(i, "web.1", fmt.Sprintf("message %d", i))})
	}
}

type fakeCopier struct {
	got []parser.Record
	err error
}

func (f *fakeCopier) Copy(records []parser.Record) (string, error) {
	f.got = records
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("Copied %d log entries to clipboard", len(records)), nil
}

type fakeExporter struct {
	got []parser.Record
}

func (f *fakeExporter) Export(records []parser.Record) (string, error) {
	f.got = records
	return fmt.Sprintf("Exported %d log entries", len(records)), nil
}

func TestUpdate_FilterNarrowsView(t *testing.T) {
	v := New(Options{})
	v.Update(NewLine{Text: "2010-09-16T15:13:46.677020+00:00 app[web.1]: ERROR boom"})
	v.Update(NewLine{Text: "2010-09-16T15:13:47.677020+00:00 app[web.1]: all good"})
	v.Update(NewLine{Text: "garbage that does not parse"})

	if got := v.Stats().Total; got != 2 {
		t.Fatalf("Total = %d, want 2", got)
	}

	v.Update(AddFilter{Text: "error"})
	stats := v.Stats()
	if stats.Filtered != 1 || stats.ActiveFilters != 1 {
		t.Fatalf("stats = %+v, want 1 filtered, 1 active", stats)
	}
	if v.Status() != `Added filter: Text: "error"` {
		t.Fatalf("status = %q", v.Status())
	}
	if got := v.AllFiltered(); len(got) != 1 || got[0].Message != "ERROR boom" {
		t.Fatalf("AllFiltered = %+v", got)
	}

	v.Update(ClearFilters{})
	if v.Stats().Filtered != 2 || v.Status() != "Filters cleared" {
		t.Fatalf("after clear: %+v %q", v.Stats(), v.Status())
	}
}

func TestUpdate_ScrollSaturates(t *testing.T) {
	v := New(Options{})

	v.Update(ScrollUp{})
	if v.ScrollOffset() != 0 {
		t.Fatalf("ScrollUp on empty = %d, want 0", v.ScrollOffset())
	}

	feed(v, 30)
	v.Update(ScrollDown{})
	if v.ScrollOffset() != 0 {
		t.Fatalf("ScrollDown at bottom = %d, want 0", v.ScrollOffset())
	}

	for i := 0; i < 100; i++ {
		v.Update(ScrollUp{})
	}
	if v.ScrollOffset() != 29 {
		t.Fatalf("ScrollUp saturated at %d, want 29", v.ScrollOffset())
	}

	v.Update(ScrollToBottom{})
	v.Update(PageUp{})
	if v.ScrollOffset() != PageSize {
		t.Fatalf("PageUp = %d, want %d", v.ScrollOffset(), PageSize)
	}
	v.Update(PageUp{})
	if v.ScrollOffset() != 29 {
		t.Fatalf("second PageUp = %d, want 29", v.ScrollOffset())
	}
	v.Update(PageDown{})
	v.Update(PageDown{})
	if v.ScrollOffset() != 0 {
		t.Fatalf("PageDown = %d, want 0", v.ScrollOffset())
	}

	v.Update(ScrollToTop{})
	if v.ScrollOffset() != 29 || v.SelectedIndex() != 0 {
		t.Fatalf("ScrollToTop: offset %d selected %d", v.ScrollOffset(), v.SelectedIndex())
	}
}

func TestUpdate_BottomPinning(t *testing.T) {
	v := New(Options{})
	feed(v, 50)

	// Far from the end: new records keep the offset.
	for i := 0; i < 10; i++ {
		v.Update(ScrollUp{})
	}
	v.Update(NewLine{Text: line(0, "web.1", "late")})
	if v.ScrollOffset() != 10 {
		t.Fatalf("offset = %d, want 10 to be kept", v.ScrollOffset())
	}

	// Within BottomThreshold of the end counts as at the bottom.
	v.Update(ScrollToTop{})
	v.Update(NewLine{Text: line(1, "web.1", "later")})
	if v.ScrollOffset() != 0 {
		t.Fatalf("offset = %d, want re-pinned to 0", v.ScrollOffset())
	}
}

func TestUpdate_PauseDropsLines(t *testing.T) {
	v := New(Options{})
	feed(v, 3)

	v.Update(TogglePause{})
	if !v.Paused() || v.Status() != "Paused" {
		t.Fatalf("paused=%v status=%q", v.Paused(), v.Status())
	}
	feed(v, 5)
	v.Update(NewRecord{Record: parser.Record{Message: "dropped"}})
	if v.Stats().Total != 3 {
		t.Fatalf("Total while paused = %d, want 3", v.Stats().Total)
	}

	v.Update(TogglePause{})
	if v.Paused() || v.Status() != "Resumed" {
		t.Fatalf("paused=%v status=%q", v.Paused(), v.Status())
	}
	feed(v, 1)
	if v.Stats().Total != 4 {
		t.Fatalf("Total after resume = %d, want 4", v.Stats().Total)
	}
}

func TestUpdate_SearchPrompt(t *testing.T) {
	v := New(Options{})
	v.Update(NewLine{Text: line(0, "web.1", "timeout reached")})
	v.Update(NewLine{Text: line(1, "worker.1", "ok")})

	v.Update(SearchInput{Text: "ignored outside search mode"})
	if v.SearchBuffer() != "" {
		t.Fatalf("SearchBuffer = %q, want empty", v.SearchBuffer())
	}

	v.Update(EnterSearch{})
	if v.InputMode() != InputSearch {
		t.Fatal("EnterSearch did not switch input mode")
	}
	v.Update(SearchInput{Text: "dyno:worker.1"})
	v.Update(ExitSearch{})
	if v.InputMode() != InputNormal || v.SearchBuffer() != "" {
		t.Fatalf("after ExitSearch: mode=%v buffer=%q", v.InputMode(), v.SearchBuffer())
	}
	if v.FilterCount() != 1 || v.Stats().Filtered != 1 {
		t.Fatalf("ExitSearch filters=%d filtered=%d", v.FilterCount(), v.Stats().Filtered)
	}

	v.Update(EnterSearch{})
	v.Update(SearchInput{Text: "timeout"})
	v.Update(CancelSearch{})
	if v.FilterCount() != 1 {
		t.Fatalf("CancelSearch added a filter: %d", v.FilterCount())
	}

	v.Update(EnterSearch{})
	v.Update(ExitSearch{})
	if v.FilterCount() != 1 {
		t.Fatalf("empty ExitSearch added a filter: %d", v.FilterCount())
	}
}

func TestUpdate_ToggleFilterMode(t *testing.T) {
	v := New(Options{})
	v.Update(NewLine{Text: line(0, "web.1", "error a")})
	v.Update(NewLine{Text: line(1, "worker.1", "error b")})
	v.Update(NewLine{Text: line(2, "web.1", "fine")})
	v.Update(AddFilter{Text: "error"})
	v.Update(AddFilter{Text: "dyno:web.1"})

	if got := v.Stats().Filtered; got != 1 {
		t.Fatalf("AND filtered = %d, want 1", got)
	}
	v.Update(ToggleFilterMode{})
	if got := v.Stats().Filtered; got != 3 || v.Status() != "Filter mode: OR" {
		t.Fatalf("OR filtered = %d status %q", got, v.Status())
	}
	v.Update(ToggleFilterMode{})
	if v.FilterMode() != "AND" || v.Stats().Filtered != 1 {
		t.Fatalf("toggle twice: mode %s filtered %d", v.FilterMode(), v.Stats().Filtered)
	}
}

func TestVisible_Window(t *testing.T) {
	v := New(Options{})
	feed(v, 30)

	tests := []struct {
		name      string
		offset    int
		height    int
		wantFirst string
		wantLen   int
	}{
		{"bottom", 0, 10, "message 20", 10},
		{"scrolled", 5, 10, "message 15", 10},
		{"near top", 25, 10, "message 0", 5},
		{"taller than list", 0, 100, "message 0", 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v.Update(ScrollToBottom{})
			for i := 0; i < tt.offset; i++ {
				v.Update(ScrollUp{})
			}
			got := v.Visible(tt.height)
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
			if got[0].Message != tt.wantFirst {
				t.Fatalf("first = %q, want %q", got[0].Message, tt.wantFirst)
			}
		})
	}

	if got := v.Visible(0); got != nil {
		t.Fatalf("Visible(0) = %v, want nil", got)
	}
}

func TestVisible_AfterEviction(t *testing.T) {
	v := New(Options{Capacity: 5})
	feed(v, 12)

	got := v.Visible(10)
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	if got[0].Message != "message 7" || got[4].Message != "message 11" {
		t.Fatalf("window = %q..%q", got[0].Message, got[4].Message)
	}
	if v.Stats().Capacity != 5 {
		t.Fatalf("Capacity = %d", v.Stats().Capacity)
	}
}

func TestUpdate_Selection(t *testing.T) {
	v := New(Options{})
	if _, ok := v.Selected(); ok {
		t.Fatal("Selected on empty view = ok")
	}
	feed(v, 3)

	v.Update(SelectPrev{})
	if v.SelectedIndex() != 0 {
		t.Fatalf("SelectPrev at 0 = %d", v.SelectedIndex())
	}
	for i := 0; i < 5; i++ {
		v.Update(SelectNext{})
	}
	if v.SelectedIndex() != 2 {
		t.Fatalf("SelectNext saturated at %d, want 2", v.SelectedIndex())
	}
	rec, ok := v.Selected()
	if !ok || rec.Message != "message 2" {
		t.Fatalf("Selected = %q, %v", rec.Message, ok)
	}

	v.Update(AddFilter{Text: "message 0"})
	if v.SelectedIndex() != 0 {
		t.Fatalf("selection not clamped after filter: %d", v.SelectedIndex())
	}
}

func TestUpdate_ClearLogs(t *testing.T) {
	v := New(Options{})
	feed(v, 10)
	v.Update(ScrollUp{})
	v.Update(ClearLogs{})

	if v.Stats().Total != 0 || v.ScrollOffset() != 0 || v.Status() != "Logs cleared" {
		t.Fatalf("after ClearLogs: %+v offset %d status %q", v.Stats(), v.ScrollOffset(), v.Status())
	}
}

func TestUpdate_CopyAndExport(t *testing.T) {
	t.Run("unavailable", func(t *testing.T) {
		v := New(Options{})
		v.Update(CopyToClipboard{})
		if v.Status() != "Copy unavailable" {
			t.Fatalf("status = %q", v.Status())
		}
		v.Update(ExportToFile{})
		if v.Status() != "Export unavailable" {
			t.Fatalf("status = %q", v.Status())
		}
	})

	t.Run("filtered slice", func(t *testing.T) {
		copier := &fakeCopier{}
		exporter := &fakeExporter{}
		v := New(Options{Copier: copier, Exporter: exporter})
		feed(v, 4)
		v.Update(AddFilter{Text: "/message [02]/"})

		v.Update(CopyToClipboard{})
		if v.Status() != "Copied 2 log entries to clipboard" || len(copier.got) != 2 {
			t.Fatalf("copy status %q got %d", v.Status(), len(copier.got))
		}
		v.Update(ExportToFile{})
		if v.Status() != "Exported 2 log entries" || len(exporter.got) != 2 {
			t.Fatalf("export status %q got %d", v.Status(), len(exporter.got))
		}
	})

	t.Run("error", func(t *testing.T) {
		v := New(Options{Copier: &fakeCopier{err: errors.New("no display")}})
		v.Update(CopyToClipboard{})
		if !strings.Contains(v.Status(), "Copy failed: no display") {
			t.Fatalf("status = %q", v.Status())
		}
	})
}

func TestSnapshot(t *testing.T) {
	v := New(Options{})
	feed(v, 3)
	v.Update(NewLine{Text: line(3, "web.1", "info: ready")})
	v.Update(AddFilter{Text: "level:info"})
	v.Update(SetViewMode{Mode: ViewSplit})
	v.Update(SetStatus{Text: "Connected"})

	snap := v.Snapshot(10)
	if snap.ViewMode != ViewSplit || snap.Status != "Connected" {
		t.Fatalf("snapshot = %+v", snap)
	}
	if len(snap.Filters) != 1 || snap.Filters[0] != "Level: INFO" {
		t.Fatalf("Filters = %v", snap.Filters)
	}
	if snap.FilterMode != "AND" {
		t.Fatalf("FilterMode = %q", snap.FilterMode)
	}
	if len(snap.Visible) != 1 || snap.Selected == nil || snap.Selected.Message != "info: ready" {
		t.Fatalf("Visible = %+v Selected = %+v", snap.Visible, snap.Selected)
	}

	v.Update(Quit{})
	if !v.Quitting() {
		t.Fatal("Quit did not set Quitting")
	}
}
