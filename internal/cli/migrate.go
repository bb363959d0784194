package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"talent-match/internal/database/migration"

	"github.com/spf13/cobra"
)

func newMigrateCommand(st *state) *cobra.Command {
	var (
		status bool
		dir    string
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := st.config()
			if err != nil {
				return err
			}
			db, err := st.openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			runner := migration.Runner{Dir: dir, Log: st.log}
			if !status {
				if err := runner.Run(cmd.Context(), db.SQLDB()); err != nil {
					return err
				}
			}

			states, err := runner.Status(cmd.Context(), db.SQLDB())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(st.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "VERSION\tNAME\tAPPLIED")
			for _, s := range states {
				applied := "pending"
				if s.Applied {
					applied = s.AppliedAt.UTC().Format(time.RFC3339)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\n", s.Version, s.Name, applied)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&status, "status", false, "only list migrations and their state")
	cmd.Flags().StringVar(&dir, "dir", "", "read migrations from this directory instead of the embedded set")
	return cmd
}
