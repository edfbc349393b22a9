package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Process is a running log source. Lines yields its standard output; it
// reaches EOF once the process exits or is killed.
type Process interface {
	Lines() io.Reader
	Alive() bool
	Kill() error
}

// Launcher starts a log source for target.
type Launcher interface {
	Launch(ctx context.Context, target string) (Process, error)
}

// ExecLauncher runs `<Binary> logs --tail --app <target>`.
type ExecLauncher struct {
	Binary string // empty uses "heroku" from PATH
}

// Launch starts the CLI. Its stderr is discarded.
func (l ExecLauncher) Launch(ctx context.Context, target string) (Process, error) {
	bin := l.Binary
	if bin == "" {
		bin = "heroku"
	}
	if target == "" {
		return nil, fmt.Errorf("launch %s logs: %w", bin, ErrNoTarget)
	}

	pr, pw := io.Pipe()
	cmd := exec.CommandContext(ctx, bin, "logs", "--tail", "--app", target)
	cmd.Stdout = pw
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		_ = pw.Close()
		_ = pr.Close()
		return nil, fmt.Errorf("launch %s logs: %w", bin, err)
	}

	p := &execProcess{cmd: cmd, pr: pr, done: make(chan struct{})}
	go func() {
		err := cmd.Wait()
		_ = pw.CloseWithError(err)
		close(p.done)
	}()
	return p, nil
}

type execProcess struct {
	cmd  *exec.Cmd
	pr   *io.PipeReader
	done chan struct{}
}

func (p *execProcess) Lines() io.Reader { return p.pr }

func (p *execProcess) Alive() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// Kill stops the process. Closing the read side first unblocks the copy
// goroutine exec runs for Stdout.
func (p *execProcess) Kill() error {
	_ = p.pr.Close()
	if p.cmd.Process == nil {
		return ErrNoProcess
	}
	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill log process: %w", err)
	}
	return nil
}
