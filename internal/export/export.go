package export

import (
	"strings"

	"github.com/five82/herotail/internal/parser"
)

// FormatRaw joins the original lines of records with newlines.
func FormatRaw(records []parser.Record) string {
	lines := make([]string, len(records))
	for i, rec := range records {
		lines[i] = rec.Raw
	}
	return strings.Join(lines, "\n")
}
