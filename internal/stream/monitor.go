package stream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultMonitorInterval is how often Monitor checks the process.
const DefaultMonitorInterval = 2 * time.Second

// EventKind classifies a supervisor lifecycle change.
type EventKind int

const (
	EventConnected EventKind = iota
	EventReconnecting
	EventFailed
	EventStopped
)

func (k EventKind) String() string {
	switch k {
	case EventConnected:
		return "connected"
	case EventReconnecting:
		return "reconnecting"
	case EventFailed:
		return "failed"
	default:
		return "stopped"
	}
}

// Event is published by Monitor.
type Event struct {
	Kind    EventKind
	Target  string
	Session string
	Attempt int
	Max     int
	Err     error
}

// Status renders the event for the status line.
func (e Event) Status() string {
	switch e.Kind {
	case EventConnected:
		return "Connected to " + e.Target
	case EventReconnecting:
		return fmt.Sprintf("Connection lost, reconnecting (%d/%d)...", e.Attempt, e.Max)
	case EventFailed:
		if e.Err != nil {
			return fmt.Sprintf("Stream failed: %v (press r to reconnect)", e.Err)
		}
		return "Stream failed (press r to reconnect)"
	default:
		return "Stream stopped"
	}
}

// MonitorOptions configure Monitor.
type MonitorOptions struct {
	Interval time.Duration // zero uses DefaultMonitorInterval
	OnEvent  func(Event)
	Logger   logrus.FieldLogger
}

// Monitor watches sup until ctx is done, reconnecting whenever the process
// has exited. ctx is checked once per interval; a backoff sleep already in
// progress is not interrupted. Monitor returns nil when ctx is done and the
// Reconnect error once the attempt budget is spent.
func Monitor(ctx context.Context, sup *Supervisor, opts MonitorOptions) error {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultMonitorInterval
	}
	emit := opts.OnEvent
	if emit == nil {
		emit = func(Event) {}
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("app", sup.Target())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			emit(Event{Kind: EventStopped, Target: sup.Target(), Session: sup.Session()})
			return nil
		case <-ticker.C:
		}

		if sup.IsRunning() {
			continue
		}

		attempt := sup.Attempts() + 1
		if attempt <= sup.MaxAttempts() {
			emit(Event{Kind: EventReconnecting, Target: sup.Target(), Attempt: attempt, Max: sup.MaxAttempts()})
		}

		err := sup.Reconnect(ctx)
		switch {
		case err == nil:
			emit(Event{Kind: EventConnected, Target: sup.Target(), Session: sup.Session()})
		case errors.Is(err, ErrMaxAttempts):
			log.WithError(err).Error("log stream gave up")
			emit(Event{Kind: EventFailed, Target: sup.Target(), Attempt: sup.Attempts(), Err: err})
			return err
		default:
			log.WithError(err).WithField("attempt", attempt).Warn("reconnect failed")
		}
	}
}
