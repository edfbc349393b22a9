package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/herotail/internal/parser"
	"github.com/five82/herotail/internal/prefs"
	"github.com/five82/herotail/internal/state"
)

// Options configures the UI.
type Options struct {
	Context      context.Context
	View         *state.View
	ThemeName    string
	PrefsPath    string
	TickInterval time.Duration

	// Source labels the header, e.g. "stdin", a file path or an app name.
	Source string

	// Reconnect restarts the live stream. Nil when the source is not a
	// Heroku app.
	Reconnect func() error

	Logger logrus.FieldLogger
}

// Model is the root application state for Bubble Tea. Every state mutation
// goes through the wrapped state.View on the Update goroutine.
type Model struct {
	// Configuration
	ctx       context.Context
	view      *state.View
	prefsPath string
	tick      time.Duration
	source    string
	reconnect func() error
	log       logrus.FieldLogger

	// UI state
	keys     keyMap
	help     help.Model
	search   textinput.Model
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	view := opts.View
	if view == nil {
		view = state.New(state.Options{})
	}

	tick := opts.TickInterval
	if tick <= 0 {
		tick = DefaultTickInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "text, /regex/, dyno:web.1, source:app, level:error"
	ti.CharLimit = 256

	return Model{
		ctx:       ctx,
		view:      view,
		prefsPath: opts.PrefsPath,
		tick:      tick,
		source:    opts.Source,
		reconnect: opts.Reconnect,
		log:       logger,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		search:    ti,
		theme:     GetTheme(themeName),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.tick), waitDone(m.ctx))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.search.Width = max(msg.Width-12, 10)
		m.ready = true
		return m, nil

	case tickMsg:
		m.view.Update(state.Tick{})
		if m.view.Quitting() {
			return m, tea.Quit
		}
		return m, tickCmd(m.tick)

	case LineMsg:
		m.view.Update(state.NewLine{Text: msg.Text})
		return m, nil

	case RecordMsg:
		m.view.Update(state.NewRecord{Record: msg.Record})
		return m, nil

	case StatusMsg:
		m.view.Update(state.SetStatus{Text: msg.Text})
		return m, nil

	case SourceDoneMsg:
		text := "End of input"
		if msg.Err != nil {
			text = "Input failed: " + msg.Err.Error()
		}
		m.view.Update(state.SetStatus{Text: text})
		return m, nil

	case reconnectMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("manual reconnect failed")
			m.view.Update(state.SetStatus{Text: "Reconnect failed: " + msg.err.Error()})
			return m, nil
		}
		m.view.Update(state.SetStatus{Text: "Connected to " + m.source})
		return m, nil

	case doneMsg:
		m.view.Update(state.Quit{})
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.view.InputMode() == state.InputSearch {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.view.Update(state.Quit{})
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
				m.log.WithError(err).Warn("save prefs")
			}
		}
		m.view.Update(state.SetStatus{Text: "Theme: " + m.theme.Name})

	case key.Matches(msg, m.keys.Reconnect):
		if m.reconnect == nil {
			m.view.Update(state.SetStatus{Text: "Reconnect needs --app"})
			return m, nil
		}
		m.view.Update(state.SetStatus{Text: "Reconnecting to " + m.source + "..."})
		return m, reconnectCmd(m.reconnect)

	case key.Matches(msg, m.keys.Search):
		m.view.Update(state.EnterSearch{})
		m.search.SetValue("")
		return m, m.search.Focus()

	default:
		if next, ok := m.keys.message(msg); ok {
			m.view.Update(next)
		}
	}

	return m, nil
}

// handleSearchKey feeds the search prompt until Enter or Esc.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.view.Update(state.ExitSearch{})
		m.search.Blur()
		m.search.SetValue("")
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.view.Update(state.CancelSearch{})
		m.search.Blur()
		m.search.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.view.Update(state.SearchInput{Text: m.search.Value()})
	return m, cmd
}

// Messages

// LineMsg carries one raw line from a producer goroutine.
type LineMsg struct{ Text string }

// RecordMsg carries a record the producer has already parsed.
type RecordMsg struct{ Record parser.Record }

// StatusMsg replaces the status line.
type StatusMsg struct{ Text string }

// SourceDoneMsg reports that a finite source such as stdin has ended.
type SourceDoneMsg struct{ Err error }

type tickMsg time.Time

type reconnectMsg struct{ err error }

type doneMsg struct{}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func reconnectCmd(reconnect func() error) tea.Cmd {
	return func() tea.Msg {
		return reconnectMsg{err: reconnect()}
	}
}

// waitDone quits the program once ctx is cancelled, e.g. by SIGTERM.
func waitDone(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return doneMsg{}
	}
}

// NewProgram builds the Bubble Tea program so callers can Send producer
// messages before and while it runs.
func NewProgram(opts Options, progOpts ...tea.ProgramOption) *tea.Program {
	progOpts = append([]tea.ProgramOption{tea.WithAltScreen()}, progOpts...)
	return tea.NewProgram(New(opts), progOpts...)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	_, err := NewProgram(opts).Run()
	return err
}
