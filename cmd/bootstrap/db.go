package bootstrap

import (
	"context"
	"log/slog"

	"kuponbot/internal/infra/db"
	"kuponbot/internal/infra/memstore"
	sqlc "kuponbot/internal/infra/sqlc/generated"
	"kuponbot/internal/infra/uow"
	"kuponbot/internal/pkg/config"
	"kuponbot/internal/pkg/errs"
	"kuponbot/internal/usecase/shared"

	"go.uber.org/fx"
)

const (
	driverPostgres = "postgres"
	driverMemory   = "memory"
)

var StorageModule = fx.Module("storage",
	fx.Provide(
		NewUnitOfWork,
	),
)

// NewUnitOfWork opens the configured storage driver. The memory driver keeps
// nothing across restarts and is meant for local runs.
func NewUnitOfWork(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.UnitOfWork, error) {
	switch cfg.Storage.Driver {
	case driverMemory:
		logger.Warn("using in-memory storage; data is lost on restart")
		return memstore.New(), nil
	case driverPostgres, "":
		pool, cleanup, err := db.Connect(context.Background(), cfg.DB)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				cleanup()
				return nil
			},
		})
		return uow.NewPostgresUoW(pool, sqlc.New()), nil
	default:
		return nil, errs.Newf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
