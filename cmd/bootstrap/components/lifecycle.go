package components

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"kuponbot/internal/infra/telegram"
	"kuponbot/internal/pkg/config"
	"kuponbot/internal/usecase/conversation"
	"kuponbot/internal/usecase/scheduler"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var LifecycleModule = fx.Module("lifecycle",
	fx.Provide(
		func(e *conversation.Engine) telegram.UpdateHandler { return e },
		telegram.NewPoller,
	),
	fx.Invoke(
		startBot,
		startScheduler,
		startServer,
	),
)

// Hooks run in reverse on stop: the server stops first, then the scheduler,
// then the poller drains and background operator tasks finish.
func startBot(lc fx.Lifecycle, poller *telegram.Poller, engine *conversation.Engine, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: poller.Start,
		OnStop: func(ctx context.Context) error {
			err := poller.Stop(ctx)
			engine.Wait()
			logger.Info("bot stopped")
			return err
		},
	})
}

func startScheduler(lc fx.Lifecycle, cfg config.Config, service *scheduler.Service, logger *slog.Logger) error {
	if !cfg.Scheduler.Enabled {
		logger.Info("scheduler disabled")
		return nil
	}
	runner, err := scheduler.NewRunner(service, cfg, logger)
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStart: runner.Start,
		OnStop:  runner.Stop,
	})
	return nil
}

func startServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			gin.EnableJsonDecoderDisallowUnknownFields()
			logger.Info("starting admin api", "address", srv.Addr, "mode", gin.Mode())
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("admin api failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping admin api")
			return srv.Shutdown(ctx)
		},
	})
}
