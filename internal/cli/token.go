package cli

import (
	"fmt"
	"time"

	"talent-match/internal/pkg/jwt"

	"github.com/spf13/cobra"
)

func newTokenCommand(st *state) *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := st.config()
			if err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = cfg.JWT.ExpiresIn
			}

			tok, err := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.Issuer, ttl).GenerateToken(subject, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(st.out, tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "token subject, e.g. a service or user name")
	cmd.Flags().StringVar(&role, "role", jwt.RoleRecruiter, "recruiter or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default jwt.expires_in)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
