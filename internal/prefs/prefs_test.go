package prefs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePrefs(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		body      *string
		wantTheme string
		wantErr   string
	}{
		{name: "missing file", body: nil, wantTheme: DefaultTheme},
		{name: "explicit theme", body: ptr("theme = \"Kanagawa\"\n"), wantTheme: "Kanagawa"},
		{name: "padded theme", body: ptr("theme = \"  Slate  \"\n"), wantTheme: "Slate"},
		{name: "empty theme", body: ptr("theme = \"\"\n"), wantTheme: DefaultTheme},
		{name: "unknown keys", body: ptr("colour = \"red\"\n"), wantTheme: DefaultTheme},
		{name: "invalid toml", body: ptr("not valid toml {{{\n"), wantTheme: DefaultTheme, wantErr: "parse prefs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prefs.toml")
			if tt.body != nil {
				writePrefs(t, path, *tt.body)
			}
			p, err := Load(path)
			switch {
			case tt.wantErr == "" && err != nil:
				t.Fatalf("Load returned error: %v", err)
			case tt.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tt.wantErr)):
				t.Fatalf("Load error = %v, want %q", err, tt.wantErr)
			}
			if p.Theme != tt.wantTheme {
				t.Fatalf("Theme = %q, want %q", p.Theme, tt.wantTheme)
			}
		})
	}
}

func TestLoad_DefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	writePrefs(t, filepath.Join(home, ".config", "herotail", "prefs.toml"), "theme = \"Slate\"\n")

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want Slate", p.Theme)
	}
}

func TestSave_RoundTripsAndCreatesDirs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := "~/nested/dir/prefs.toml"
	if err := Save(path, Prefs{Theme: "Kanagawa"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, "nested", "dir", "prefs.toml")); err != nil {
		t.Fatalf("prefs file not created: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Theme != "Kanagawa" {
		t.Fatalf("Theme = %q, want Kanagawa", loaded.Theme)
	}
}

func TestSave_FailsWhenParentIsFile(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "blocker")
	writePrefs(t, blocker, "")

	err := Save(filepath.Join(blocker, "prefs.toml"), Prefs{Theme: "Slate"})
	if err == nil || !strings.Contains(err.Error(), "create prefs dir") {
		t.Fatalf("Save error = %v, want create prefs dir failure", err)
	}
}

func ptr(s string) *string { return &s }
