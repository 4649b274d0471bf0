package commands

import (
	"context"
	"log/slog"

	"kuponbot/internal/domain/cashback"
	"kuponbot/internal/domain/session"
	"kuponbot/internal/pkg/clock"
	"kuponbot/internal/pkg/config"
	"kuponbot/internal/pkg/errs"
	"kuponbot/internal/pkg/i18n"
	"kuponbot/internal/usecase/shared"
)

var (
	ErrSessionNotFound     = errs.Mark(errs.New("session not found"), errs.ErrNotFound)
	ErrInsufficientBalance = errs.Mark(cashback.ErrInsufficientBalance, errs.ErrStateConflict)
)

// UserNotifier reports delivery as a bool; failures are already logged.
type UserNotifier interface {
	ToUser(ctx context.Context, chatID int64, text string) bool
}

type CashbackResult struct {
	Entry   *cashback.Entry
	Balance int64
}

type CashbackCommands interface {
	AddPurchase(ctx context.Context, ownerID, amount int64, description string) (*CashbackResult, error)
	Use(ctx context.Context, ownerID, amount int64, description string) (*CashbackResult, error)
	Refund(ctx context.Context, ownerID, amount int64, description string) (*CashbackResult, error)
	History(ctx context.Context, ownerID int64) ([]*cashback.Entry, error)
	Stats(ctx context.Context, ownerID int64) (cashback.Stats, error)
}

type cashbackUseCaseImpl struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	percent  cashback.Percentage
	notifier UserNotifier
	texts    *i18n.Bundle
	logger   *slog.Logger
}

func NewCashbackUseCase(
	uow shared.UnitOfWork,
	clk clock.Clock,
	cfg config.Config,
	notifier UserNotifier,
	texts *i18n.Bundle,
	logger *slog.Logger,
) (CashbackCommands, error) {
	pct, err := cashback.NewPercentage(cfg.Cashback.Percent)
	if err != nil {
		return nil, errs.Wrapf(err, "invalid cashback percent %q", cfg.Cashback.Percent)
	}
	return &cashbackUseCaseImpl{
		uow:      uow,
		clock:    clk,
		percent:  pct,
		notifier: notifier,
		texts:    texts,
		logger:   logger,
	}, nil
}

type entryFactory func(owner *session.Session) (*cashback.Entry, error)

// apply appends the entry and moves the stored balance in one transaction.
// The session row is locked first so concurrent mutations serialize on it.
func (uc *cashbackUseCaseImpl) apply(ctx context.Context, ownerID int64, build entryFactory) (*CashbackResult, *session.Session, error) {
	var (
		result *CashbackResult
		owner  *session.Session
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Sessions().LockForUpdate(ctx, ownerID)
		if err != nil {
			if errs.Is(err, errs.ErrNotFound) {
				return ErrSessionNotFound
			}
			return err
		}

		entry, err := build(s)
		if err != nil {
			return err
		}
		if err := tx.Cashback().Append(ctx, entry); err != nil {
			return err
		}
		balance, err := tx.Sessions().AddCashbackBalance(ctx, ownerID, entry.Delta(), entry.CreatedAt())
		if err != nil {
			return err
		}
		result = &CashbackResult{Entry: entry, Balance: balance}
		owner = s
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return result, owner, nil
}

func (uc *cashbackUseCaseImpl) AddPurchase(ctx context.Context, ownerID, amount int64, description string) (*CashbackResult, error) {
	now := uc.clock.Now()
	result, owner, err := uc.apply(ctx, ownerID, func(*session.Session) (*cashback.Entry, error) {
		e, err := cashback.NewEarned(ownerID, amount, uc.percent, description, now)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrValidation)
		}
		return e, nil
	})
	if err != nil {
		return nil, err
	}

	lang := owner.Language().String()
	text := uc.texts.Text(lang, i18n.CashbackEarned, amount, result.Entry.CashbackAmount(), result.Balance)
	if !uc.notifier.ToUser(ctx, ownerID, text) {
		uc.logger.WarnContext(ctx, "cashback notification not delivered", "telegram_id", ownerID)
	}
	return result, nil
}

func (uc *cashbackUseCaseImpl) Use(ctx context.Context, ownerID, amount int64, description string) (*CashbackResult, error) {
	now := uc.clock.Now()
	result, _, err := uc.apply(ctx, ownerID, func(owner *session.Session) (*cashback.Entry, error) {
		e, err := cashback.NewUsed(ownerID, amount, owner.CashbackBalance(), description, now)
		switch {
		case errs.Is(err, cashback.ErrInsufficientBalance):
			return nil, ErrInsufficientBalance
		case err != nil:
			return nil, errs.Mark(err, errs.ErrValidation)
		}
		return e, nil
	})
	return result, err
}

func (uc *cashbackUseCaseImpl) Refund(ctx context.Context, ownerID, amount int64, description string) (*CashbackResult, error) {
	now := uc.clock.Now()
	result, _, err := uc.apply(ctx, ownerID, func(*session.Session) (*cashback.Entry, error) {
		e, err := cashback.NewRefund(ownerID, amount, description, now)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrValidation)
		}
		return e, nil
	})
	return result, err
}

func (uc *cashbackUseCaseImpl) History(ctx context.Context, ownerID int64) ([]*cashback.Entry, error) {
	var entries []*cashback.Entry
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Sessions().FindByTelegramID(ctx, ownerID); err != nil {
			if errs.Is(err, errs.ErrNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		var err error
		entries, err = tx.Cashback().ListByOwner(ctx, ownerID)
		return err
	})
	return entries, err
}

func (uc *cashbackUseCaseImpl) Stats(ctx context.Context, ownerID int64) (cashback.Stats, error) {
	entries, err := uc.History(ctx, ownerID)
	if err != nil {
		return cashback.Stats{}, err
	}
	return cashback.Replay(entries), nil
}
