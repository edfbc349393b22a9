// Package filter implements record predicates, their AND/OR composition and
// the free-text filter mini-language typed into the search prompt.
package filter

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/five82/herotail/internal/parser"
)

// Filter is a predicate over a record.
type Filter interface {
	Matches(rec parser.Record) bool
	// Equal reports whether other is the same variant with the same value.
	Equal(other Filter) bool
	String() string
}

// TextSearch matches a case-insensitive substring of the message.
type TextSearch struct{ Text string }

func (f TextSearch) Matches(rec parser.Record) bool {
	return strings.Contains(strings.ToLower(rec.Message), strings.ToLower(f.Text))
}

func (f TextSearch) Equal(other Filter) bool {
	o, ok := other.(TextSearch)
	return ok && o.Text == f.Text
}

func (f TextSearch) String() string { return fmt.Sprintf("Text: %q", f.Text) }

// RegexMatch applies a compiled pattern to the message.
type RegexMatch struct{ Pattern *regexp.Regexp }

// NewRegexMatch compiles pattern into a RegexMatch.
func NewRegexMatch(pattern string) (RegexMatch, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return RegexMatch{}, fmt.Errorf("compile pattern: %w", err)
	}
	return RegexMatch{Pattern: re}, nil
}

func (f RegexMatch) Matches(rec parser.Record) bool {
	return f.Pattern != nil && f.Pattern.MatchString(rec.Message)
}

// Equal compares pattern source text, not compiled programs.
func (f RegexMatch) Equal(other Filter) bool {
	o, ok := other.(RegexMatch)
	return ok && o.source() == f.source()
}

func (f RegexMatch) String() string { return "Regex: /" + f.source() + "/" }

func (f RegexMatch) source() string {
	if f.Pattern == nil {
		return ""
	}
	return f.Pattern.String()
}

// DynoEquals matches the dyno name, ignoring case.
type DynoEquals struct{ Dyno string }

func (f DynoEquals) Matches(rec parser.Record) bool { return strings.EqualFold(rec.Dyno, f.Dyno) }

func (f DynoEquals) Equal(other Filter) bool {
	o, ok := other.(DynoEquals)
	return ok && o.Dyno == f.Dyno
}

func (f DynoEquals) String() string { return "Dyno: " + f.Dyno }

// SourceEquals matches the source name, ignoring case.
type SourceEquals struct{ Source string }

func (f SourceEquals) Matches(rec parser.Record) bool {
	return strings.EqualFold(rec.Source, f.Source)
}

func (f SourceEquals) Equal(other Filter) bool {
	o, ok := other.(SourceEquals)
	return ok && o.Source == f.Source
}

func (f SourceEquals) String() string { return "Source: " + f.Source }

// LevelEquals matches records with exactly this inferred level.
type LevelEquals struct{ Level parser.Level }

func (f LevelEquals) Matches(rec parser.Record) bool { return rec.Level == f.Level }

func (f LevelEquals) Equal(other Filter) bool {
	o, ok := other.(LevelEquals)
	return ok && o.Level == f.Level
}

func (f LevelEquals) String() string { return "Level: " + f.Level.String() }

// TimeRange matches timestamps within optional inclusive bounds. A nil bound
// is open.
type TimeRange struct {
	Start *time.Time
	End   *time.Time
}

func (f TimeRange) Matches(rec parser.Record) bool {
	if f.Start != nil && rec.Timestamp.Before(*f.Start) {
		return false
	}
	if f.End != nil && rec.Timestamp.After(*f.End) {
		return false
	}
	return true
}

func (f TimeRange) Equal(other Filter) bool {
	o, ok := other.(TimeRange)
	return ok && sameBound(f.Start, o.Start) && sameBound(f.End, o.End)
}

func (f TimeRange) String() string {
	const layout = "2006-01-02 15:04:05"
	start, end := "start", "end"
	if f.Start != nil {
		start = f.Start.Format(layout)
	}
	if f.End != nil {
		end = f.End.Format(layout)
	}
	return fmt.Sprintf("Time: %s to %s", start, end)
}

func sameBound(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// Parse maps raw search input to a Filter. Prefixes are checked in a fixed
// order: dyno:, source:, level:, then /regex/, then free text. A pattern that
// fails to compile becomes a TextSearch of the whole input. Blank input
// yields false.
func Parse(input string) (Filter, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, false
	}
	if v, ok := strings.CutPrefix(trimmed, "dyno:"); ok {
		return DynoEquals{Dyno: v}, true
	}
	if v, ok := strings.CutPrefix(trimmed, "source:"); ok {
		return SourceEquals{Source: v}, true
	}
	if v, ok := strings.CutPrefix(trimmed, "level:"); ok {
		return LevelEquals{Level: parser.ParseLevel(v)}, true
	}
	if len(trimmed) > 2 && strings.HasPrefix(trimmed, "/") && strings.HasSuffix(trimmed, "/") {
		if f, err := NewRegexMatch(trimmed[1 : len(trimmed)-1]); err == nil {
			return f, true
		}
	}
	return TextSearch{Text: trimmed}, true
}
