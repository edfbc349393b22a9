package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/five82/herotail/internal/config"
	"github.com/five82/herotail/internal/export"
	"github.com/five82/herotail/internal/heroku"
	"github.com/five82/herotail/internal/prefs"
	"github.com/five82/herotail/internal/state"
	"github.com/five82/herotail/internal/stream"
	"github.com/five82/herotail/internal/ui"
)

// ErrNoInput reports that there is nothing to read: stdin is a terminal and
// neither a file nor an app was given.
var ErrNoInput = errors.New("no input: pipe logs to stdin or use --file or --app")

// Options configure a herotail session. Zero values defer to the config file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/herotail/prefs.toml

	File   string
	Follow bool
	App    string

	Capacity int
	Theme    string
	LogFile  string
	Verbose  bool

	// Stdin overrides os.Stdin as the piped source.
	Stdin io.Reader

	ProgramOptions []tea.ProgramOption
}

// Run boots the herotail TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyOverrides(&cfg, opts); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.LogFile, cfg.LogLevel, opts.Verbose)
	if err != nil {
		return err
	}
	defer closeLog()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		logger.WithError(err).Warn("load prefs, using defaults")
	}
	theme := userPrefs.Theme
	if opts.Theme != "" {
		theme = opts.Theme
	}

	view := state.New(state.Options{
		Capacity: cfg.BufferCapacity,
		Copier:   export.Clipboard{},
		Exporter: export.File{Dir: cfg.ExportDir, Compress: cfg.ExportCompress},
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	uiOpts := ui.Options{
		Context:      ctx,
		View:         view,
		ThemeName:    theme,
		PrefsPath:    prefsPath,
		TickInterval: cfg.TickInterval,
		Logger:       logger,
	}
	progOpts := append([]tea.ProgramOption(nil), opts.ProgramOptions...)

	var start func(Sender)
	switch {
	case opts.App != "":
		live, err := startLive(ctx, cfg, opts.App, logger)
		if err != nil {
			return err
		}
		defer live.Close()
		uiOpts.Source = opts.App
		uiOpts.Reconnect = live.reconnect(ctx)
		start = func(s Sender) { go live.run(ctx, s) }

	case opts.File != "":
		offset, err := preload(view, opts.File, cfg.BufferCapacity)
		if err != nil {
			return err
		}
		uiOpts.Source = opts.File
		if opts.Follow {
			start = func(s Sender) { go followFile(ctx, opts.File, offset, s, logger) }
		}

	default:
		stdin := opts.Stdin
		if stdin == nil {
			if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
				return ErrNoInput
			}
			stdin = os.Stdin
			// Keys come from the controlling terminal while logs arrive on stdin.
			progOpts = append(progOpts, tea.WithInputTTY())
		}
		uiOpts.Source = "stdin"
		start = func(s Sender) { go pumpStdin(ctx, stdin, s) }
	}

	p := ui.NewProgram(uiOpts, progOpts...)
	if start != nil {
		start(p)
	}

	logger.WithFields(logrus.Fields{
		"source":   uiOpts.Source,
		"capacity": cfg.BufferCapacity,
	}).Info("herotail started")

	_, err = p.Run()
	cancel()
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info("herotail stopped")
	return nil
}

// applyOverrides lets command-line flags win over the config file.
func applyOverrides(cfg *config.Config, opts Options) error {
	if opts.Capacity < 0 {
		return fmt.Errorf("capacity must be positive, got %d", opts.Capacity)
	}
	if opts.Capacity > 0 {
		cfg.BufferCapacity = opts.Capacity
	}
	if opts.LogFile != "" {
		path, err := config.ExpandPath(opts.LogFile)
		if err != nil {
			return fmt.Errorf("resolve log file: %w", err)
		}
		cfg.LogFile = path
	}
	return nil
}

// startLive checks the Heroku CLI and connects the first session.
func startLive(ctx context.Context, cfg config.Config, target string, log logrus.FieldLogger) (*liveStream, error) {
	client := heroku.NewClient(cfg.HerokuBin, nil)
	if err := preflight(ctx, client); err != nil {
		return nil, err
	}
	log.WithField("bin", client.Binary()).Debug("heroku CLI ready")

	live, err := newLiveStream(ctx, stream.Options{
		Target:   target,
		Launcher: stream.ExecLauncher{Binary: client.Binary()},
		Logger:   log,
	}, cfg.MonitorInterval)
	if err != nil {
		return nil, fmt.Errorf("start stream: %w", err)
	}
	return live, nil
}

// preflight fails fast when the CLI is missing or logged out, before the UI
// takes over the terminal.
func preflight(ctx context.Context, client *heroku.Client) error {
	if !client.Installed(ctx) {
		return fmt.Errorf("heroku CLI not found at %s; install it or set heroku_bin", client.Binary())
	}
	if _, err := client.WhoAmI(ctx); err != nil {
		return fmt.Errorf("%w (run `heroku login`)", err)
	}
	return nil
}
