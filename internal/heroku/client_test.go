package heroku

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

type call struct {
	name string
	args []string
}

type fakeRunner struct {
	calls   []call
	outputs map[string]fakeResult
}

type fakeResult struct {
	stdout string
	stderr string
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	res, ok := f.outputs[strings.Join(args, " ")]
	if !ok {
		return nil, nil, errors.New("exit status 127")
	}
	return []byte(res.stdout), []byte(res.stderr), res.err
}

func TestClient_Apps(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{outputs: map[string]fakeResult{
		"apps --all --json": {stdout: `[{"name":"zeta","id":"2","region":{"name":"us"}},{"name":"Alpha","id":"1"}]`},
	}}
	client := NewClient("/usr/bin/heroku", runner)

	apps, err := client.Apps(context.Background())
	if err != nil {
		t.Fatalf("Apps returned error: %v", err)
	}
	want := []App{{Name: "Alpha", ID: "1"}, {Name: "zeta", ID: "2"}}
	if !reflect.DeepEqual(apps, want) {
		t.Fatalf("apps = %+v, want %+v", apps, want)
	}
	if runner.calls[0].name != "/usr/bin/heroku" {
		t.Fatalf("binary = %q", runner.calls[0].name)
	}
}

func TestClient_AppsErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		result  fakeResult
		wantSub string
	}{
		{"cli failure uses stderr", fakeResult{stderr: "  Invalid credentials  ", err: errors.New("exit status 1")}, "Invalid credentials"},
		{"cli failure without stderr", fakeResult{err: errors.New("exit status 2")}, "exit status 2"},
		{"bad json", fakeResult{stdout: "not json"}, "decode apps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient("heroku", &fakeRunner{outputs: map[string]fakeResult{"apps --all --json": tt.result}})
			_, err := client.Apps(context.Background())
			if err == nil || !strings.Contains(err.Error(), tt.wantSub) {
				t.Fatalf("err = %v, want substring %q", err, tt.wantSub)
			}
		})
	}
}

func TestClient_WhoAmI(t *testing.T) {
	t.Parallel()

	client := NewClient("heroku", &fakeRunner{outputs: map[string]fakeResult{
		"auth:whoami": {stdout: "dev@example.com\n"},
	}})
	email, err := client.WhoAmI(context.Background())
	if err != nil || email != "dev@example.com" {
		t.Fatalf("WhoAmI = %q, %v", email, err)
	}

	client = NewClient("heroku", &fakeRunner{outputs: map[string]fakeResult{
		"auth:whoami": {stderr: "not logged in", err: errors.New("exit status 100")},
	}})
	_, err = client.WhoAmI(context.Background())
	if !errors.Is(err, ErrNotAuthenticated) || !strings.Contains(err.Error(), "not logged in") {
		t.Fatalf("err = %v", err)
	}
}

func TestClient_Installed(t *testing.T) {
	t.Parallel()

	bin := filepath.Join(t.TempDir(), "heroku")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write bin: %v", err)
	}
	runner := &fakeRunner{}
	if !NewClient(bin, runner).Installed(context.Background()) {
		t.Fatal("Installed = false for existing binary")
	}
	if len(runner.calls) != 0 {
		t.Fatalf("existing binary should not be probed: %+v", runner.calls)
	}

	if NewClient("heroku", &fakeRunner{}).Installed(context.Background()) {
		t.Fatal("Installed = true when version fails")
	}
	ok := NewClient("heroku", &fakeRunner{outputs: map[string]fakeResult{"version": {stdout: "heroku/8.0.0"}}})
	if !ok.Installed(context.Background()) {
		t.Fatal("Installed = false when version succeeds")
	}

	var nilClient *Client
	if nilClient.Installed(context.Background()) {
		t.Fatal("nil client reported installed")
	}
}

func TestFindIn(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "heroku")
	if err := os.WriteFile(present, nil, 0o755); err != nil {
		t.Fatalf("write: %v", err)
	}

	if got := findIn([]string{filepath.Join(dir, "missing"), dir, present}); got != present {
		t.Fatalf("findIn = %q, want %q", got, present)
	}
	if got := findIn([]string{filepath.Join(dir, "missing")}); got != "heroku" {
		t.Fatalf("findIn fallback = %q", got)
	}
}

func TestSearchPath(t *testing.T) {
	t.Setenv("PATH", "/custom/bin")
	got := SearchPath()
	if !strings.HasPrefix(got, "/opt/homebrew/bin") || !strings.HasSuffix(got, "/custom/bin") {
		t.Fatalf("SearchPath = %q", got)
	}
}
