package app

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/herotail/internal/logtail"
	"github.com/five82/herotail/internal/parser"
	"github.com/five82/herotail/internal/state"
	"github.com/five82/herotail/internal/stream"
	"github.com/five82/herotail/internal/ui"
)

// recordBuffer sizes the channel between the stream reader and the program.
const recordBuffer = 256

// Sender delivers messages to the running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// pumpStdin forwards every line of r, then reports that the input ended.
func pumpStdin(ctx context.Context, r io.Reader, s Sender) {
	err := logtail.Stream(ctx, r, func(line string) {
		s.Send(ui.LineMsg{Text: line})
	})
	s.Send(ui.SourceDoneMsg{Err: err})
}

// preload feeds the last capacity lines of path straight into view. It must
// run before the program starts. The returned offset is where following
// should resume.
func preload(view *state.View, path string, capacity int) (int64, error) {
	lines, offset, err := logtail.Tail(path, capacity)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	for _, line := range lines {
		view.Update(state.NewLine{Text: line})
	}
	return offset, nil
}

// followFile forwards lines appended to path until ctx is done.
func followFile(ctx context.Context, path string, offset int64, s Sender, log logrus.FieldLogger) {
	err := logtail.Follow(ctx, path, offset, func(line string) {
		s.Send(ui.LineMsg{Text: line})
	})
	if err != nil {
		log.WithError(err).WithField("file", path).Error("follow stopped")
		s.Send(ui.SourceDoneMsg{Err: err})
	}
}

// forwardRecords moves parsed records from the supervisor to the program.
func forwardRecords(ctx context.Context, in <-chan parser.Record, s Sender) {
	for {
		select {
		case <-ctx.Done():
			return
		case rec := <-in:
			s.Send(ui.RecordMsg{Record: rec})
		}
	}
}

// liveStream ties a supervisor to the program: stream events become status
// messages and a manual reconnect revives monitoring after it gave up.
type liveStream struct {
	sup      *stream.Supervisor
	records  chan parser.Record
	interval time.Duration
	restart  chan struct{}
	log      logrus.FieldLogger
}

// newLiveStream connects the first session and returns the stream ready to
// run. opts.Out is replaced by the stream's own channel.
func newLiveStream(ctx context.Context, opts stream.Options, interval time.Duration) (*liveStream, error) {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	records := make(chan parser.Record, recordBuffer)
	opts.Out = records
	sup := stream.New(opts)
	if err := sup.Connect(ctx); err != nil {
		return nil, err
	}
	return &liveStream{
		sup:      sup,
		records:  records,
		interval: interval,
		restart:  make(chan struct{}, 1),
		log:      log,
	}, nil
}

// reconnect returns the UI's manual reconnect action. A fresh connect starts
// a new session and wakes the monitor if it had given up.
func (l *liveStream) reconnect(ctx context.Context) func() error {
	return func() error {
		if err := l.sup.Connect(ctx); err != nil {
			return err
		}
		select {
		case l.restart <- struct{}{}:
		default:
		}
		return nil
	}
}

// run forwards records and supervises the process until ctx is done.
func (l *liveStream) run(ctx context.Context, s Sender) {
	go forwardRecords(ctx, l.records, s)

	for {
		err := stream.Monitor(ctx, l.sup, stream.MonitorOptions{
			Interval: l.interval,
			OnEvent: func(e stream.Event) {
				s.Send(ui.StatusMsg{Text: e.Status()})
			},
			Logger: l.log,
		})
		if err == nil {
			return
		}
		l.log.WithError(err).Error("stream monitor gave up")

		// A wakeup left by a reconnect made while monitoring only costs one
		// extra pass that fails straight away.
		select {
		case <-ctx.Done():
			return
		case <-l.restart:
			l.log.Info("stream monitor restarted")
		}
	}
}

// Close kills the log process.
func (l *liveStream) Close() {
	l.sup.Close()
}
