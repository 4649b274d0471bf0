package bootstrap

import (
	"kuponbot/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// CoreModule is everything needed to run sweeps and send messages.
var CoreModule = fx.Options(
	ConfigModule,
	LoggerModule,
	StorageModule,
	components.TelegramModule,
	components.UseCaseModule,
)

// ServeModule adds the long-running parts: the update poller, the cron
// runner and the admin API.
var ServeModule = fx.Options(
	CoreModule,
	JWTModule,
	components.HandlerModule,
	components.LifecycleModule,
)
