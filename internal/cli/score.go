package cli

import (
	"encoding/json"
	"fmt"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/domain/matching"
	"talent-match/internal/usecase"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newScoreCommand(st *state) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a candidate/job snapshot file without touching the database",
		Example: `  matchctl score -f pair.yaml
  matchctl score -f pair.json --config configs/config.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := readScoreRequest(file)
			if err != nil {
				return err
			}

			mc, err := st.matchingConfig()
			if err != nil {
				return err
			}
			policy, err := mc.Policy()
			if err != nil {
				return err
			}
			engine, err := matching.NewEngine(policy)
			if err != nil {
				return err
			}
			scoring, err := usecase.NewScoringUsecase(engine, nil, st.log)
			if err != nil {
				return err
			}

			rec, err := scoring.ScoreRequest(cmd.Context(), req)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(st.out)
			enc.SetIndent("", "  ")
			return enc.Encode(dto.FromMatchRecord(rec))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "snapshot file (yaml, json or toml)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// readScoreRequest loads a pair file through viper so any format it knows
// works, then decodes it onto the request type.
func readScoreRequest(path string) (usecase.ScoreRequest, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return usecase.ScoreRequest{}, fmt.Errorf("read %s: %w", path, err)
	}
	return decodeScoreRequest(v.AllSettings())
}

func decodeScoreRequest(raw map[string]any) (usecase.ScoreRequest, error) {
	var req usecase.ScoreRequest
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &req,
	})
	if err != nil {
		return req, err
	}
	if err := dec.Decode(raw); err != nil {
		return req, fmt.Errorf("decode snapshot file: %w", err)
	}
	return req, nil
}
