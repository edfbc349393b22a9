package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/five82/herotail/internal/config"
	"github.com/five82/herotail/internal/heroku"
)

// newAppLister is swapped in tests.
var newAppLister = func(bin string) heroku.AppLister {
	return heroku.NewClient(bin, nil)
}

func newAppsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "apps",
		Short: "List Heroku apps you can stream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			client := newAppLister(cfg.HerokuBin)

			user, err := client.WhoAmI(cmd.Context())
			if err != nil {
				return err
			}
			apps, err := client.Apps(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(apps) == 0 {
				fmt.Fprintf(out, "No apps found for %s\n", user)
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tID")
			for _, a := range apps {
				fmt.Fprintf(w, "%s\t%s\n", a.Name, a.ID)
			}
			return w.Flush()
		},
	}
}
