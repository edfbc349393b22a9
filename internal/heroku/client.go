package heroku

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// AppLister is the subset of Client the CLI needs. It is implemented by
// *Client and can be faked in tests.
type AppLister interface {
	WhoAmI(ctx context.Context) (string, error)
	Apps(ctx context.Context) ([]App, error)
}

// Ensure Client implements AppLister at compile time.
var _ AppLister = (*Client)(nil)

// Runner executes a command and returns its captured output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs commands with os/exec and the augmented PATH.
type ExecRunner struct{}

// Run executes name with args.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), "PATH="+SearchPath())
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Client wraps the Heroku CLI.
type Client struct {
	bin     string
	runner  Runner
	timeout time.Duration
}

const defaultTimeout = 30 * time.Second

// NewClient builds a Client for bin. An empty bin uses FindBinary and a nil
// runner uses ExecRunner.
func NewClient(bin string, runner Runner) *Client {
	if strings.TrimSpace(bin) == "" {
		bin = FindBinary()
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Client{bin: bin, runner: runner, timeout: defaultTimeout}
}

// Binary returns the CLI path the client invokes.
func (c *Client) Binary() string { return c.bin }

// Installed reports whether the CLI is present at a known path or answers
// `heroku version`.
func (c *Client) Installed(ctx context.Context) bool {
	if c == nil {
		return false
	}
	if c.bin != fallbackBinary {
		if _, err := os.Stat(c.bin); err == nil {
			return true
		}
	}
	_, _, err := c.run(ctx, "version")
	return err == nil
}

// WhoAmI returns the authenticated user's email.
func (c *Client) WhoAmI(ctx context.Context) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	stdout, stderr, err := c.run(ctx, "auth:whoami")
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotAuthenticated, cliMessage(stderr, err))
	}
	return strings.TrimSpace(string(stdout)), nil
}

// Apps lists every app visible to the authenticated user.
func (c *Client) Apps(ctx context.Context) ([]App, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	stdout, stderr, err := c.run(ctx, "apps", "--all", "--json")
	if err != nil {
		return nil, fmt.Errorf("fetch apps: %s", cliMessage(stderr, err))
	}
	var apps []App
	if err := json.Unmarshal(stdout, &apps); err != nil {
		return nil, fmt.Errorf("decode apps: %w", err)
	}
	SortApps(apps)
	return apps, nil
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.runner.Run(ctx, c.bin, args...)
}

func cliMessage(stderr []byte, err error) string {
	if msg := strings.TrimSpace(string(stderr)); msg != "" {
		return msg
	}
	return err.Error()
}
