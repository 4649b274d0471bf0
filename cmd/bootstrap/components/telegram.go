package components

import (
	"kuponbot/internal/domain/session"
	"kuponbot/internal/infra/telegram"
	"kuponbot/internal/pkg/config"
	"kuponbot/internal/pkg/errs"
	"kuponbot/internal/usecase/broadcast"
	"kuponbot/internal/usecase/commands"
	"kuponbot/internal/usecase/conversation"
	"kuponbot/internal/usecase/notify"
	"kuponbot/internal/usecase/scheduler"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"
)

var TelegramModule = fx.Module("telegram",
	fx.Provide(
		fx.Annotate(
			NewBotAPI,
			fx.As(new(telegram.BotAPI)),
			fx.As(new(telegram.UpdateSource)),
		),
		fx.Annotate(
			telegram.NewClient,
			fx.As(new(notify.Sender)),
			fx.As(new(notify.MembershipChecker)),
		),
		fx.Annotate(
			NewRoles,
			fx.As(new(notify.AdminDirectory)),
			fx.As(new(session.RoleResolver)),
		),
		fx.Annotate(
			notify.NewDispatcher,
			fx.As(new(conversation.Outlet)),
			fx.As(new(broadcast.Deliverer)),
			fx.As(new(scheduler.Notifier)),
			fx.As(new(commands.UserNotifier)),
		),
	),
)

// NewBotAPI authenticates with getMe, so a bad token fails startup.
func NewBotAPI(cfg config.Config) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, errs.Wrap(err, "failed to connect to telegram")
	}
	return bot, nil
}

func NewRoles(cfg config.Config) *session.StaticRoles {
	return session.NewStaticRoles(cfg.Telegram.AdminIDs)
}
