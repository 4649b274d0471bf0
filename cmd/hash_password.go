package main

import (
	"bufio"
	"fmt"
	"strings"

	"kuponbot/internal/pkg/password"

	"github.com/spf13/cobra"
)

func newHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Short: "Print the bcrypt hash for OPERATOR_PASSWORD_HASH",
		Long: `Reads the operator password from the first line of stdin and prints
its bcrypt hash. Set the output as OPERATOR_PASSWORD_HASH to enable
POST /api/auth/login.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc := bufio.NewScanner(cmd.InOrStdin())
			if !sc.Scan() {
				if err := sc.Err(); err != nil {
					return err
				}
				return password.ErrInvalidPassword
			}
			hashed, err := password.Hash(strings.TrimRight(sc.Text(), "\r"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hashed)
			return nil
		},
	}
}
