package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"

	"github.com/five82/herotail/internal/parser"
)

// osc52Limit caps the escape-sequence payload.
const osc52Limit = 100 * 1024

// Clipboard copies records to the system clipboard. When no system clipboard
// is reachable (SSH sessions, headless hosts) it emits an OSC52 sequence on
// Terminal instead.
type Clipboard struct {
	Write    func(string) error  // nil uses the system clipboard
	Terminal io.Writer           // nil uses os.Stdout
	Getenv   func(string) string // nil uses os.Getenv
}

// Copy implements the view's copy action.
func (c Clipboard) Copy(records []parser.Record) (string, error) {
	if len(records) == 0 {
		return "No logs to copy", nil
	}
	text := FormatRaw(records)

	write := c.Write
	if write == nil {
		write = systemWrite
	}
	if err := write(text); err != nil {
		if ferr := c.writeOSC52(text); ferr != nil {
			return "", fmt.Errorf("copy to clipboard: %w", err)
		}
	}
	return fmt.Sprintf("Copied %d log entries to clipboard", len(records)), nil
}

func systemWrite(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no system clipboard")
	}
	return clipboard.WriteAll(text)
}

func (c Clipboard) writeOSC52(text string) error {
	getenv := c.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	out := c.Terminal
	if out == nil {
		out = os.Stdout
	}

	seq := osc52.New(text).Limit(osc52Limit)
	term := strings.ToLower(getenv("TERM"))
	if getenv("TMUX") != "" || strings.HasPrefix(term, "tmux") {
		seq = seq.Tmux()
	} else if strings.HasPrefix(term, "screen") {
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(out)
	return err
}
