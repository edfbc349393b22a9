package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Level is the severity inferred from a record's message.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelUnknown
)

// String returns the upper-case label used by the UI and exports.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a user supplied level name to a Level. Unrecognised names
// yield LevelUnknown.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "error":
		return LevelError
	case "warn", "warning":
		return LevelWarn
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelUnknown
	}
}

// InferLevel scans message for severity keywords. Precedence is fixed:
// error/fatal/panic, then warn, then debug/trace, then info.
func InferLevel(message string) Level {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "error"), strings.Contains(lower, "fatal"), strings.Contains(lower, "panic"):
		return LevelError
	case strings.Contains(lower, "warn"):
		return LevelWarn
	case strings.Contains(lower, "debug"), strings.Contains(lower, "trace"):
		return LevelDebug
	case strings.Contains(lower, "info"):
		return LevelInfo
	default:
		return LevelUnknown
	}
}

// Record is one parsed log line. Records are never mutated after Parse
// returns them.
type Record struct {
	Timestamp time.Time
	Source    string
	Dyno      string
	Message   string
	Level     Level
	Raw       string
}

// DisplayTime formats the timestamp for list rendering.
func (r Record) DisplayTime() string {
	return r.Timestamp.Format("15:04:05.000")
}

// Display renders the record on a single line without the date.
func (r Record) Display() string {
	return fmt.Sprintf("%s %s [%s] %s", r.DisplayTime(), r.Source, r.Dyno, r.Message)
}

var lineRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d+[+-]\d{2}:\d{2})\s+(\w+)\[([^\]]+)\]:\s*(.*)$`)

// Parse turns one raw line into a Record. It reports false when the line does
// not match the expected format or the timestamp is not valid RFC3339.
func Parse(line string) (Record, bool) {
	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return Record{}, false
	}
	ts, err := time.Parse(time.RFC3339Nano, m[1])
	if err != nil {
		return Record{}, false
	}
	return Record{
		Timestamp: ts,
		Source:    m[2],
		Dyno:      m[3],
		Message:   m[4],
		Level:     InferLevel(m[4]),
		Raw:       line,
	}, true
}
