package components

import (
	"kuponbot/internal/pkg/clock"
	"kuponbot/internal/pkg/i18n"
	"kuponbot/internal/usecase/broadcast"
	"kuponbot/internal/usecase/commands"
	"kuponbot/internal/usecase/conversation"
	"kuponbot/internal/usecase/queries"
	"kuponbot/internal/usecase/scheduler"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
	usecaseServicesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	i18n.New,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewVoucherUseCase,
		commands.NewCashbackUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewProfileQueries,
	),
)

var usecaseServicesModule = fx.Module("usecase/services",
	fx.Provide(
		fx.Annotate(
			broadcast.NewEngine,
			fx.As(new(broadcast.Broadcaster)),
		),
		scheduler.NewService,
		func(s *scheduler.Service) scheduler.SweepRunner { return s },
		conversation.NewEngine,
	),
)
