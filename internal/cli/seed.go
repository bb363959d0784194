package cli

import (
	"fmt"

	"talent-match/internal/database/seeder"

	"github.com/spf13/cobra"
)

func newSeedCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo jobs and candidates; existing rows are left alone",
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

			r := seeder.Runner{Seeders: seeder.Defaults(), Log: st.log}
			if err := r.Run(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintln(st.out, "seed complete")
			return nil
		},
	}
}
