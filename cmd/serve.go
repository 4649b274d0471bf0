package main

import (
	"context"
	"log/slog"

	"kuponbot/cmd/bootstrap"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot, the scheduler and the admin API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := fx.New(bootstrap.ServeModule)

			if err := app.Start(cmd.Context()); err != nil {
				slog.Error("failed to start application", "error", err)
				return err
			}

			<-app.Done()

			if err := app.Stop(context.Background()); err != nil {
				slog.Error("failed to stop application", "error", err)
				return err
			}

			slog.Info("application stopped")
			return nil
		},
	}
}
