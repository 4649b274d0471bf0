package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kuponbot",
		Short: "Telegram voucher and cashback bot",
		Long: `kuponbot runs the customer bot, its scheduled sweeps and the
operator admin API. Configuration comes from environment variables.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newSweepCommand())
	cmd.AddCommand(newTokenCommand())
	cmd.AddCommand(newHashPasswordCommand())

	return cmd
}
