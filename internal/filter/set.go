package filter

import (
	"slices"

	"github.com/five82/herotail/internal/parser"
)

// Mode controls how the filters of a Set combine.
type Mode int

const (
	ModeAnd Mode = iota
	ModeOr
)

func (m Mode) String() string {
	if m == ModeOr {
		return "OR"
	}
	return "AND"
}

// Set is an ordered list of filters plus a combination mode. The zero value
// is an empty AND set that matches everything.
type Set struct {
	filters []Filter
	mode    Mode
}

// Add appends f.
func (s *Set) Add(f Filter) {
	s.filters = append(s.filters, f)
}

// Remove deletes the filter at index and returns it.
func (s *Set) Remove(index int) (Filter, bool) {
	if index < 0 || index >= len(s.filters) {
		return nil, false
	}
	f := s.filters[index]
	s.filters = slices.Delete(s.filters, index, index+1)
	return f, true
}

// Clear removes every filter. The mode is kept.
func (s *Set) Clear() { s.filters = nil }

// Len reports the number of filters.
func (s *Set) Len() int { return len(s.filters) }

// Filters returns a copy of the filter list.
func (s *Set) Filters() []Filter { return slices.Clone(s.filters) }

// Mode returns the combination mode.
func (s *Set) Mode() Mode { return s.mode }

// SetMode replaces the combination mode.
func (s *Set) SetMode(m Mode) { s.mode = m }

// ToggleMode flips between AND and OR.
func (s *Set) ToggleMode() {
	if s.mode == ModeAnd {
		s.mode = ModeOr
	} else {
		s.mode = ModeAnd
	}
}

// Matches reports whether rec passes the set. An empty set passes every
// record regardless of mode.
func (s *Set) Matches(rec parser.Record) bool {
	if len(s.filters) == 0 {
		return true
	}
	if s.mode == ModeOr {
		for _, f := range s.filters {
			if f.Matches(rec) {
				return true
			}
		}
		return false
	}
	for _, f := range s.filters {
		if !f.Matches(rec) {
			return false
		}
	}
	return true
}

// FilteredIndices returns the positions of matching records in input order.
func (s *Set) FilteredIndices(records []parser.Record) []int {
	out := make([]int, 0, len(records))
	for i, rec := range records {
		if s.Matches(rec) {
			out = append(out, i)
		}
	}
	return out
}

// Describe lists each active filter for status display.
func (s *Set) Describe() []string {
	out := make([]string, 0, len(s.filters))
	for _, f := range s.filters {
		out = append(out, f.String())
	}
	return out
}
