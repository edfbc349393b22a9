package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/five82/herotail/internal/app"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "herotail",
		Short: "Browse and filter Heroku logs in the terminal",
		Long: `herotail shows Heroku-format log lines in a scrollable, filterable view.

Logs come from one of three places:
  herotail                     read lines piped on stdin
  herotail --file app.log      load a file, optionally --follow it
  herotail --app my-app        stream "heroku logs --tail" with reconnects`,
		Example: `  heroku logs -n 1500 --app my-app | herotail
  herotail --file production.log --follow
  herotail --app my-app --capacity 50000`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validate(opts); err != nil {
				return err
			}
			opts.Stdin = stdinOverride(cmd)
			return app.Run(cmd.Context(), opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/herotail/config.toml)")

	flags := root.Flags()
	flags.StringVarP(&opts.File, "file", "f", "", "read logs from a file")
	flags.BoolVar(&opts.Follow, "follow", false, "keep reading lines appended to --file")
	flags.StringVarP(&opts.App, "app", "a", "", "stream logs for a Heroku app")
	flags.IntVar(&opts.Capacity, "capacity", 0, "records kept in memory (default from config, 10000)")
	flags.StringVar(&opts.Theme, "theme", "", "color theme: Nightfox, Kanagawa or Slate")
	flags.StringVar(&opts.LogFile, "log-file", "", "write diagnostic logs here")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "debug-level diagnostic logs")

	root.AddCommand(newAppsCmd(&opts.ConfigPath), newVersionCmd())
	return root
}

func validate(opts app.Options) error {
	switch {
	case opts.File != "" && opts.App != "":
		return errors.New("--file and --app cannot be combined")
	case opts.Follow && opts.File == "":
		return errors.New("--follow needs --file")
	}
	return nil
}

// stdinOverride returns a reader set with cmd.SetIn, or nil for the real
// stdin.
func stdinOverride(cmd *cobra.Command) io.Reader {
	if in := cmd.InOrStdin(); in != os.Stdin {
		return in
	}
	return nil
}
