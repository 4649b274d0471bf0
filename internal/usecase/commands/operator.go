package commands

import (
	"context"
	"log/slog"

	"kuponbot/internal/domain/session"
	"kuponbot/internal/pkg/config"
	"kuponbot/internal/pkg/errs"
	"kuponbot/internal/pkg/password"
)

var (
	ErrInvalidCredentials = errs.New("invalid operator credentials")
	ErrLoginDisabled      = errs.Mark(errs.New("operator login is disabled"), errs.ErrForbidden)
)

type TokenIssuer interface {
	GenerateToken(subject string, role session.Role) (string, error)
}

// OperatorAuth exchanges the shared operator password for an admin API token.
type OperatorAuth interface {
	Login(ctx context.Context, subject, secret string) (string, error)
}

type operatorAuthImpl struct {
	issuer TokenIssuer
	hash   string
	logger *slog.Logger
}

func NewOperatorAuth(issuer TokenIssuer, cfg config.Config, logger *slog.Logger) OperatorAuth {
	return &operatorAuthImpl{
		issuer: issuer,
		hash:   cfg.JWT.OperatorPasswordHash,
		logger: logger,
	}
}

func (uc *operatorAuthImpl) Login(ctx context.Context, subject, secret string) (string, error) {
	if uc.hash == "" {
		return "", ErrLoginDisabled
	}

	if err := password.Compare(uc.hash, secret); err != nil {
		if errs.Is(err, password.ErrMismatch) || errs.Is(err, password.ErrInvalidPassword) {
			uc.logger.WarnContext(ctx, "operator login rejected", "subject", subject)
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	token, err := uc.issuer.GenerateToken(subject, session.RoleAdmin)
	if err != nil {
		return "", errs.Wrap(err, "failed to issue operator token")
	}
	uc.logger.InfoContext(ctx, "operator logged in", "subject", subject)
	return token, nil
}
