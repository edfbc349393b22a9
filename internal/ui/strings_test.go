package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 3, "hel"},
		{"hello", 0, ""},
		{"héllo wörld", 7, "héll..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestFit(t *testing.T) {
	if got := fit("web.1", 8); got != "web.1   " {
		t.Fatalf("fit pad = %q", got)
	}
	if got := fit("worker.12345", 8); got != "worke..." {
		t.Fatalf("fit truncate = %q", got)
	}
}

func TestSanitize(t *testing.T) {
	if got := sanitize("a\tb\x1b[31mc\r"); got != "a b[31mc" {
		t.Fatalf("sanitize = %q", got)
	}
}
