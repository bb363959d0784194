package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"talent-match/internal/domain/matching"
	"talent-match/internal/export"
	"talent-match/internal/repository"
	"talent-match/internal/usecase"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRankCommand(st *state) *cobra.Command {
	var (
		jobArg   string
		minScore float64
		limit    int
		xlsxPath string
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank active candidates for a job and optionally export an xlsx report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			jobID, err := uuid.Parse(strings.TrimSpace(jobArg))
			if err != nil {
				return fmt.Errorf("--job: %w", err)
			}

			cfg, err := st.config()
			if err != nil {
				return err
			}
			policy, err := cfg.Matching.Policy()
			if err != nil {
				return err
			}
			engine, err := matching.NewEngine(policy)
			if err != nil {
				return err
			}

			db, err := st.openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			jobs := repository.NewPostgresJobRepository(db)
			ranking := usecase.NewRankingUsecase(
				matching.NewRanker(engine),
				cfg.Matching.RankOptions(),
				jobs,
				repository.NewPostgresCandidateRepository(db),
				nil, 0, nil,
				st.log,
			)

			params := usecase.RankParams{Limit: limit}
			if cmd.Flags().Changed("min-score") {
				params.MinScore = &minScore
			}
			recs, err := ranking.RankCandidates(cmd.Context(), jobID, params)
			if err != nil {
				return err
			}

			if xlsxPath == "" {
				return printRanking(st, recs)
			}

			job, err := jobs.FindByID(cmd.Context(), jobID)
			if err != nil {
				return err
			}
			f, err := os.Create(xlsxPath)
			if err != nil {
				return err
			}
			if err := export.WriteRanking(f, job, recs); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			st.log.Info("ranking exported", zap.String("path", xlsxPath), zap.Int("rows", len(recs)))
			fmt.Fprintf(st.out, "wrote %d candidates to %s\n", len(recs), xlsxPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&jobArg, "job", "", "job id")
	cmd.Flags().Float64Var(&minScore, "min-score", 0, "minimum overall score (default from config)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum results (default from config)")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write an xlsx report to this path")
	_ = cmd.MarkFlagRequired("job")
	return cmd
}

func printRanking(st *state, recs []matching.MatchRecord) error {
	tw := tabwriter.NewWriter(st.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tCANDIDATE\tOVERALL\tSKILL\tEXPERIENCE\tSALARY\tTIER")
	for i, r := range recs {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%s\t%.2f\t%s\t%s\n",
			i+1, r.CandidateID, r.OverallScore,
			component(r, matching.ComponentSkill, r.Components.Skill),
			r.Components.Experience,
			component(r, matching.ComponentSalary, r.Components.Salary),
			r.Recommendation,
		)
	}
	return tw.Flush()
}

func component(r matching.MatchRecord, c matching.Component, v float64) string {
	if r.IsExcluded(c) {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}
