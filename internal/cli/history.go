package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"talent-match/internal/repository"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newHistoryCommand(st *state) *cobra.Command {
	var (
		jobArg, candArg string
		limit           int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show stored match records, newest first",
		Long: `With --candidate, lists every record of that job/candidate pair.
Without it, lists the latest record per candidate for the job, best score first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jobID, err := uuid.Parse(jobArg)
			if err != nil {
				return fmt.Errorf("--job: %w", err)
			}
			var candID uuid.UUID
			if candArg != "" {
				if candID, err = uuid.Parse(candArg); err != nil {
					return fmt.Errorf("--candidate: %w", err)
				}
			}

			cfg, err := st.config()
			if err != nil {
				return err
			}
			db, err := st.openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			records := repository.NewPostgresMatchRecordRepository(db)
			var items []repository.StoredMatch
			if candID == uuid.Nil {
				items, err = records.LatestByJob(cmd.Context(), jobID, limit)
			} else {
				items, err = records.ListHistory(cmd.Context(), jobID, candID, limit)
			}
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(st.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RECORD\tCANDIDATE\tCREATED\tOVERALL\tTIER\tMETHOD")
			for _, it := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%s\t%s\n",
					it.ID, it.Record.CandidateID, it.CreatedAt.UTC().Format(time.RFC3339),
					it.Record.OverallScore, it.Record.Recommendation, it.Record.Method)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&jobArg, "job", "", "job id")
	cmd.Flags().StringVar(&candArg, "candidate", "", "candidate id (optional)")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum records")
	_ = cmd.MarkFlagRequired("job")
	return cmd
}
