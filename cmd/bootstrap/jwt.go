package bootstrap

import (
	"time"

	"kuponbot/internal/pkg/config"
	"kuponbot/internal/pkg/errs"
	"kuponbot/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) (*jwt.Service, error) {
	d, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		return nil, errs.Wrapf(err, "invalid JWT_DURATION %q", cfg.JWT.Duration)
	}
	return jwt.NewService(cfg.JWT.Secret, d), nil
}
