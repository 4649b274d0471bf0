package components

import (
	"kuponbot/internal/handler"
	"kuponbot/internal/handler/api"
	"kuponbot/internal/handler/middleware"
	"kuponbot/internal/pkg/jwt"
	"kuponbot/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		gin.New,
		func(svc *jwt.Service) commands.TokenIssuer { return svc },
		commands.NewOperatorAuth,
		api.NewAuthHandler,
		api.NewBroadcastHandler,
		api.NewSweepHandler,
		api.NewUserHandler,
		api.NewVoucherHandler,
		api.NewCashbackHandler,
		NewHandlers,
		func(svc *jwt.Service) middleware.TokenValidator { return svc },
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

type handlerParams struct {
	fx.In

	Auth      *api.AuthHandler
	Broadcast *api.BroadcastHandler
	Sweep     *api.SweepHandler
	User      *api.UserHandler
	Voucher   *api.VoucherHandler
	Cashback  *api.CashbackHandler
}

func NewHandlers(p handlerParams) handler.Handlers {
	return handler.Handlers{
		Auth:      p.Auth,
		Broadcast: p.Broadcast,
		Sweep:     p.Sweep,
		User:      p.User,
		Voucher:   p.Voucher,
		Cashback:  p.Cashback,
	}
}
