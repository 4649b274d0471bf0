package main

import (
	"fmt"
	"strings"

	"kuponbot/cmd/bootstrap"
	"kuponbot/internal/usecase/scheduler"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func newSweepCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep <name>",
		Short: "Run one scheduled sweep now and exit",
		Long: "Run one scheduled sweep immediately. Known sweeps: " +
			strings.Join(scheduler.Names(), ", "),
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: scheduler.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			var runner scheduler.SweepRunner
			app := fx.New(
				bootstrap.CoreModule,
				fx.Populate(&runner),
				fx.NopLogger,
			)
			if err := app.Start(cmd.Context()); err != nil {
				return err
			}
			defer func() { _ = app.Stop(cmd.Context()) }()

			rep, err := runner.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: matched %d, notified %d, skipped %d, expired %d\n",
				rep.Sweep, rep.Matched, rep.Notified, rep.Skipped, rep.Expired)
			return nil
		},
	}
}
