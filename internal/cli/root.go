package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"talent-match/internal/config"
	"talent-match/internal/database/sqldb"
	"talent-match/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const app = "matchctl"

// state is shared by every subcommand of one invocation.
type state struct {
	cfgFile string
	flags   *viper.Viper

	out io.Writer
	log *zap.Logger
}

// NewRootCommand builds the matchctl command tree.
func NewRootCommand() *cobra.Command {
	st := &state{flags: viper.New()}

	root := &cobra.Command{
		Use:           app,
		Short:         "matchctl scores candidates against jobs and manages the matching database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			st.out = cmd.OutOrStdout()

			level := "warn"
			if st.flags.GetBool("debug") {
				level = "debug"
			}
			format := "console"
			if st.flags.GetBool("json") {
				format = "json"
			}
			log, err := logger.New(level, format)
			if err != nil {
				return fmt.Errorf("creating a logger: %w", err)
			}
			st.log = log
			return nil
		},
	}

	root.PersistentFlags().StringVar(&st.cfgFile, "config", "", "config file (default is configs/config.yaml)")
	root.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	root.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	_ = st.flags.BindPFlag("debug", root.PersistentFlags().Lookup("debug"))
	_ = st.flags.BindPFlag("json", root.PersistentFlags().Lookup("json"))

	root.AddCommand(
		newScoreCommand(st),
		newRankCommand(st),
		newHistoryCommand(st),
		newMigrateCommand(st),
		newSeedCommand(st),
		newTokenCommand(st),
	)
	return root
}

// Execute runs matchctl with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (s *state) config() (config.Config, error) {
	v, err := config.ReadFiles(s.cfgFile)
	if err != nil {
		return config.Config{}, err
	}
	return config.FromViper(v)
}

func (s *state) matchingConfig() (config.MatchingConfig, error) {
	v, err := config.ReadFiles(s.cfgFile)
	if err != nil {
		return config.MatchingConfig{}, err
	}
	return config.MatchingFromViper(v)
}

func (s *state) openDB(ctx context.Context, cfg config.Config) (*sqldb.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := sqldb.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	s.log.Debug("database connected", zap.String("host", cfg.Database.Host), zap.String("name", cfg.Database.Name))
	return db, nil
}
