package main

import (
	"fmt"

	"kuponbot/cmd/bootstrap"
	"kuponbot/internal/domain/session"
	"kuponbot/internal/pkg/config"

	"github.com/spf13/cobra"
)

func newTokenCommand() *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin API bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jwtCfg, err := config.LoadJWTConfig()
			if err != nil {
				return err
			}
			svc, err := bootstrap.NewJWTService(config.Config{JWT: jwtCfg})
			if err != nil {
				return err
			}
			token, err := svc.GenerateToken(subject, session.RoleAdmin)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "operator", "name recorded in the token and request logs")

	return cmd
}
