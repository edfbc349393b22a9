package export

import (
	"bytes"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/five82/herotail/internal/parser"
)

func records(t *testing.T, lines ...string) []parser.Record {
	t.Helper()
	out := make([]parser.Record, 0, len(lines))
	for _, line := range lines {
		rec, ok := parser.Parse(line)
		if !ok {
			t.Fatalf("parse %q failed", line)
		}
		out = append(out, rec)
	}
	return out
}

var sample = []string{
	"2010-09-16T15:13:46.677020+00:00 app[web.1]: first",
	"2010-09-16T15:13:47.000000+00:00 heroku[router]:   spaced",
}

func TestFormatRaw(t *testing.T) {
	got := FormatRaw(records(t, sample...))
	if got != strings.Join(sample, "\n") {
		t.Fatalf("FormatRaw = %q", got)
	}
	if FormatRaw(nil) != "" {
		t.Fatal("FormatRaw(nil) not empty")
	}
}

func TestClipboard_Copy(t *testing.T) {
	var copied string
	c := Clipboard{Write: func(s string) error { copied = s; return nil }}

	msg, err := c.Copy(nil)
	if err != nil || msg != "No logs to copy" {
		t.Fatalf("Copy(nil) = %q, %v", msg, err)
	}

	msg, err = c.Copy(records(t, sample...))
	if err != nil {
		t.Fatalf("Copy returned error: %v", err)
	}
	if msg != "Copied 2 log entries to clipboard" {
		t.Fatalf("msg = %q", msg)
	}
	if copied != strings.Join(sample, "\n") {
		t.Fatalf("copied = %q", copied)
	}
}

func TestClipboard_OSC52Fallback(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		prefix string
	}{
		{"plain", map[string]string{"TERM": "xterm-256color"}, "\x1b]52;c;"},
		{"tmux", map[string]string{"TMUX": "/tmp/tmux-1000/default,1,0"}, "\x1bPtmux;"},
		{"screen", map[string]string{"TERM": "screen"}, "\x1bP"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var term bytes.Buffer
			c := Clipboard{
				Write:    func(string) error { return errors.New("no display") },
				Terminal: &term,
				Getenv:   func(k string) string { return tt.env[k] },
			}
			msg, err := c.Copy(records(t, sample[0]))
			if err != nil {
				t.Fatalf("Copy returned error: %v", err)
			}
			if msg != "Copied 1 log entries to clipboard" {
				t.Fatalf("msg = %q", msg)
			}
			out := term.String()
			if !strings.HasPrefix(out, tt.prefix) {
				t.Fatalf("sequence = %q, want prefix %q", out, tt.prefix)
			}
			if !strings.Contains(out, base64.StdEncoding.EncodeToString([]byte(sample[0]))) {
				t.Fatalf("sequence %q missing payload", out)
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestClipboard_BothPathsFail(t *testing.T) {
	c := Clipboard{
		Write:    func(string) error { return errors.New("no display") },
		Terminal: failingWriter{},
		Getenv:   func(string) string { return "" },
	}
	if _, err := c.Copy(records(t, sample[0])); err == nil || !strings.Contains(err.Error(), "no display") {
		t.Fatalf("err = %v", err)
	}
}

func TestFile_Export(t *testing.T) {
	fixed := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	t.Run("empty", func(t *testing.T) {
		msg, err := File{Dir: t.TempDir()}.Export(nil)
		if err != nil || msg != "No logs to export" {
			t.Fatalf("Export(nil) = %q, %v", msg, err)
		}
	})

	t.Run("plain", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "exports")
		f := File{Dir: dir, Now: func() time.Time { return fixed }}
		msg, err := f.Export(records(t, sample...))
		if err != nil {
			t.Fatalf("Export returned error: %v", err)
		}
		path := filepath.Join(dir, "heroku_logs_20240309_140507.log")
		if msg != "Exported 2 log entries to "+path {
			t.Fatalf("msg = %q", msg)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read export: %v", err)
		}
		if string(data) != strings.Join(sample, "\n") {
			t.Fatalf("contents = %q", data)
		}
	})

	t.Run("compressed", func(t *testing.T) {
		dir := t.TempDir()
		f := File{Dir: dir, Compress: true, Now: func() time.Time { return fixed }}
		if _, err := f.Export(records(t, sample...)); err != nil {
			t.Fatalf("Export returned error: %v", err)
		}
		data, err := os.ReadFile(filepath.Join(dir, "heroku_logs_20240309_140507.log.zst"))
		if err != nil {
			t.Fatalf("read export: %v", err)
		}
		dec, err := zstd.NewReader(nil)
		if err != nil {
			t.Fatalf("zstd reader: %v", err)
		}
		defer dec.Close()
		plain, err := dec.DecodeAll(data, nil)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if string(plain) != strings.Join(sample, "\n") {
			t.Fatalf("contents = %q", plain)
		}
	})
}
