package stream

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/five82/herotail/internal/parser"
)

// DefaultMaxAttempts bounds consecutive reconnects before the session fails.
const DefaultMaxAttempts = 5

const maxLineBytes = 1 << 20

var (
	// ErrMaxAttempts is returned by Reconnect once the attempt budget is spent.
	ErrMaxAttempts = errors.New("max reconnection attempts reached")
	// ErrNoProcess reports an operation on a process that never started.
	ErrNoProcess = errors.New("no log process")
	// ErrNoTarget reports a launch without an app name.
	ErrNoTarget = errors.New("no app name")
)

// Options configure a Supervisor.
type Options struct {
	Target      string
	Launcher    Launcher
	Out         chan<- parser.Record // nil drops records
	Logger      logrus.FieldLogger   // nil uses the logrus standard logger
	MaxAttempts int                  // zero uses DefaultMaxAttempts
	Sleep       func(time.Duration)  // nil uses time.Sleep
}

// Supervisor owns at most one running log process for Target and restarts it
// with exponential backoff. All methods are safe for concurrent use; each one
// holds the supervisor lock for its whole duration, including backoff sleeps.
type Supervisor struct {
	mu sync.Mutex

	target      string
	launcher    Launcher
	out         chan<- parser.Record
	log         logrus.FieldLogger
	maxAttempts int
	sleep       func(time.Duration)

	proc     Process
	stop     context.CancelFunc
	session  string
	attempts int
}

// New builds a disconnected Supervisor.
func New(opts Options) *Supervisor {
	s := &Supervisor{
		target:      opts.Target,
		launcher:    opts.Launcher,
		out:         opts.Out,
		log:         opts.Logger,
		maxAttempts: opts.MaxAttempts,
		sleep:       opts.Sleep,
	}
	if s.launcher == nil {
		s.launcher = ExecLauncher{}
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	if s.maxAttempts <= 0 {
		s.maxAttempts = DefaultMaxAttempts
	}
	if s.sleep == nil {
		s.sleep = time.Sleep
	}
	return s
}

// Backoff returns the delay before the given reconnect attempt: 1s, 2s, 4s...
func Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return time.Duration(1<<(attempt-1)) * time.Second
}

// Target returns the app name being streamed.
func (s *Supervisor) Target() string { return s.target }

// MaxAttempts returns the reconnect budget.
func (s *Supervisor) MaxAttempts() int { return s.maxAttempts }

// Connect kills any running process and starts a new one. A successful
// connect resets the attempt counter.
func (s *Supervisor) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connectLocked(ctx)
}

// Disconnect kills the running process and resets the attempt counter.
func (s *Supervisor) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.killLocked()
	s.attempts = 0
}

// Reconnect waits Backoff(n) for the n-th consecutive attempt and connects
// again. Once MaxAttempts attempts have been spent it returns ErrMaxAttempts
// without sleeping and without advancing the counter.
func (s *Supervisor) Reconnect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attempts >= s.maxAttempts {
		return fmt.Errorf("reconnect %s: %w (%d)", s.target, ErrMaxAttempts, s.maxAttempts)
	}
	s.attempts++
	delay := Backoff(s.attempts)
	s.log.WithFields(logrus.Fields{
		"app":     s.target,
		"attempt": s.attempts,
		"delay":   delay,
	}).Info("reconnecting log stream")
	s.sleep(delay)
	return s.connectLocked(ctx)
}

// IsRunning reports whether a process is attached and has not exited.
func (s *Supervisor) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proc != nil && s.proc.Alive()
}

// Attempts returns the consecutive reconnect attempts since the last
// successful connect.
func (s *Supervisor) Attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

// Session returns the ID of the current connection, or "" when none has
// succeeded yet.
func (s *Supervisor) Session() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Close kills any running process. The Supervisor may be reused afterwards.
func (s *Supervisor) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.killLocked()
}

func (s *Supervisor) connectLocked(ctx context.Context) error {
	s.killLocked()

	proc, err := s.launcher.Launch(ctx, s.target)
	if err != nil {
		s.log.WithFields(logrus.Fields{"app": s.target, "attempt": s.attempts}).
			WithError(err).Warn("log stream launch failed")
		return fmt.Errorf("connect %s: %w", s.target, err)
	}

	readCtx, stop := context.WithCancel(ctx)
	s.proc = proc
	s.stop = stop
	s.session = uuid.NewString()
	s.attempts = 0

	log := s.log.WithFields(logrus.Fields{"app": s.target, "session": s.session})
	log.Info("log stream connected")
	go s.pump(readCtx, proc.Lines(), log)
	return nil
}

func (s *Supervisor) killLocked() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
	if s.proc == nil {
		return
	}
	if err := s.proc.Kill(); err != nil {
		s.log.WithField("app", s.target).WithError(err).Debug("kill log process")
	}
	s.proc = nil
}

// pump parses r line by line and forwards records until the pipe closes or
// ctx is cancelled.
func (s *Supervisor) pump(ctx context.Context, r io.Reader, log logrus.FieldLogger) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		rec, ok := parser.Parse(scanner.Text())
		if !ok || s.out == nil {
			continue
		}
		select {
		case s.out <- rec:
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		log.WithError(err).Debug("log stream reader stopped")
	}
}
