package parser

import (
	"strings"
	"testing"
)

func TestParse_Fields(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		source  string
		dyno    string
		message string
		level   Level
	}{
		{"basic", "2010-09-16T15:13:46.677020+00:00 app[web.1]: Starting process", "app", "web.1", "Starting process", LevelUnknown},
		{"error", "2010-09-16T15:13:46.677020+00:00 app[web.1]: Error: Connection failed", "app", "web.1", "Error: Connection failed", LevelError},
		{"warning", "2010-09-16T15:13:46.677020+00:00 app[web.1]: Warning: Low memory", "app", "web.1", "Warning: Low memory", LevelWarn},
		{"router", "2010-09-16T15:13:46.677020+00:00 heroku[router]: at=info method=GET path=/", "heroku", "router", "at=info method=GET path=/", LevelInfo},
		{"worker", "2010-09-16T15:13:46.677020+00:00 app[worker.3]: Processing job 12345", "app", "worker.3", "Processing job 12345", LevelUnknown},
		{"debug", "2010-09-16T15:13:46.677020+00:00 app[web.1]: Debug: Checking configuration", "app", "web.1", "Debug: Checking configuration", LevelDebug},
		{"empty message", "2010-09-16T15:13:46.677020-07:00 app[web.1]:", "app", "web.1", "", LevelUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := Parse(tt.line)
			if !ok {
				t.Fatalf("Parse(%q) = false, want true", tt.line)
			}
			if rec.Source != tt.source || rec.Dyno != tt.dyno || rec.Message != tt.message {
				t.Fatalf("Parse = {%q %q %q}, want {%q %q %q}", rec.Source, rec.Dyno, rec.Message, tt.source, tt.dyno, tt.message)
			}
			if rec.Level != tt.level {
				t.Fatalf("Level = %v, want %v", rec.Level, tt.level)
			}
			if rec.Raw != tt.line {
				t.Fatalf("Raw = %q, want %q", rec.Raw, tt.line)
			}
		})
	}
}

func TestParse_Timestamp(t *testing.T) {
	rec, ok := Parse("2024-02-17T10:30:45.123456+02:00 app[web.1]: Test")
	if !ok {
		t.Fatal("Parse returned false")
	}
	if h, m, s := rec.Timestamp.Clock(); h != 10 || m != 30 || s != 45 {
		t.Fatalf("clock = %02d:%02d:%02d, want 10:30:45", h, m, s)
	}
	if _, offset := rec.Timestamp.Zone(); offset != 2*60*60 {
		t.Fatalf("offset = %d, want %d", offset, 2*60*60)
	}
	if got := rec.DisplayTime(); got != "10:30:45.123" {
		t.Fatalf("DisplayTime = %q, want 10:30:45.123", got)
	}
}

func TestParse_Rejects(t *testing.T) {
	lines := []string{
		"",
		"This is not a valid Heroku log line",
		"2010-09-16 15:13:46 app[web.1]: missing T",
		"2010-09-16T15:13:46+00:00 app[web.1]: no fractional seconds",
		"2010-09-16T15:13:46.1Z app[web.1]: zulu offset",
		"2010-13-45T15:13:46.677020+00:00 app[web.1]: impossible date",
		"2010-09-16T15:13:46.677020+00:00 app-x[web.1]: non-word source",
		"2010-09-16T15:13:46.677020+00:00 app[]: empty dyno",
		"2010-09-16T15:13:46.677020+00:00 app[web.1] missing colon",
		"\x00\xff\xfe",
	}
	for _, line := range lines {
		if rec, ok := Parse(line); ok {
			t.Errorf("Parse(%q) = %+v, want rejection", line, rec)
		}
	}
}

func TestInferLevel_Precedence(t *testing.T) {
	tests := []struct {
		message string
		want    Level
	}{
		{"warn: retrying after error", LevelError},
		{"FATAL crash", LevelError},
		{"goroutine panic", LevelError},
		{"deprecation WARNING", LevelWarn},
		{"trace id=1 info", LevelDebug},
		{"INFO ready", LevelInfo},
		{"nothing to see", LevelUnknown},
	}
	for _, tt := range tests {
		if got := InferLevel(tt.message); got != tt.want {
			t.Errorf("InferLevel(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"error":   LevelError,
		"WARN":    LevelWarn,
		"warning": LevelWarn,
		"info":    LevelInfo,
		" debug ": LevelDebug,
		"verbose": LevelUnknown,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRecordDisplay(t *testing.T) {
	rec, ok := Parse("2010-09-16T15:13:46.677020+00:00 app[web.1]: Test message")
	if !ok {
		t.Fatal("Parse returned false")
	}
	got := rec.Display()
	for _, want := range []string{"15:13:46", "app", "[web.1]", "Test message"} {
		if !strings.Contains(got, want) {
			t.Errorf("Display() = %q, want it to contain %q", got, want)
		}
	}
}
