package commands

import (
	"context"
	"errors"

	"kuponbot/internal/domain/voucher"
	"kuponbot/internal/pkg/clock"
	"kuponbot/internal/pkg/config"
	"kuponbot/internal/pkg/errs"
	"kuponbot/internal/usecase/shared"

	"github.com/google/uuid"
)

const maxCodeAttempts = 16

var (
	ErrVoucherNotFound    = errs.Mark(errs.New("voucher not found"), errs.ErrNotFound)
	ErrVoucherNotActive   = errs.Mark(voucher.ErrNotActive, errs.ErrStateConflict)
	ErrVoucherExpired     = errs.Mark(voucher.ErrExpired, errs.ErrStateConflict)
	ErrCodeSpaceExhausted = errs.New("could not generate a unique voucher code")
)

type CreateVoucherRequest struct {
	OwnerID   int64
	Amount    int64
	Type      voucher.Type
	ValidDays int
}

type VoucherCommands interface {
	Create(ctx context.Context, req CreateVoucherRequest) (*voucher.Voucher, error)
	// Issue creates a voucher inside a caller's transaction.
	Issue(ctx context.Context, tx shared.Tx, req CreateVoucherRequest) (*voucher.Voucher, error)
	IssueWelcome(ctx context.Context, tx shared.Tx, ownerID int64) (*voucher.Voucher, error)
	Redeem(ctx context.Context, rawCode string) (*voucher.Voucher, error)
	SweepExpired(ctx context.Context) (int64, error)
	FindReminderCandidates(ctx context.Context) ([]*voucher.Voucher, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID int64) ([]*voucher.Voucher, error)
}

// CodeGenerator draws a candidate code; uniqueness is checked by the caller.
type CodeGenerator func() (voucher.Code, error)

type voucherUseCaseImpl struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	policy   config.VoucherConfig
	generate CodeGenerator
}

func NewVoucherUseCase(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config) VoucherCommands {
	return NewVoucherUseCaseWithGenerator(uow, clk, cfg.Voucher, voucher.GenerateCode)
}

func NewVoucherUseCaseWithGenerator(uow shared.UnitOfWork, clk clock.Clock, policy config.VoucherConfig, gen CodeGenerator) VoucherCommands {
	return &voucherUseCaseImpl{uow: uow, clock: clk, policy: policy, generate: gen}
}

func (uc *voucherUseCaseImpl) Create(ctx context.Context, req CreateVoucherRequest) (*voucher.Voucher, error) {
	var created *voucher.Voucher
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Sessions().FindByTelegramID(ctx, req.OwnerID); err != nil {
			if errs.Is(err, errs.ErrNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		v, err := uc.Issue(ctx, tx, req)
		if err != nil {
			return err
		}
		created = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (uc *voucherUseCaseImpl) Issue(ctx context.Context, tx shared.Tx, req CreateVoucherRequest) (*voucher.Voucher, error) {
	code, err := uc.uniqueCode(ctx, tx)
	if err != nil {
		return nil, err
	}
	v, err := voucher.New(code, req.OwnerID, req.Amount, req.Type, req.ValidDays, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	if err := tx.Vouchers().Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (uc *voucherUseCaseImpl) IssueWelcome(ctx context.Context, tx shared.Tx, ownerID int64) (*voucher.Voucher, error) {
	return uc.Issue(ctx, tx, CreateVoucherRequest{
		OwnerID:   ownerID,
		Amount:    uc.policy.WelcomeAmount,
		Type:      voucher.TypeSpecial,
		ValidDays: uc.policy.WelcomeValidDays,
	})
}

// uniqueCode rejects candidates already present in the ledger.
func (uc *voucherUseCaseImpl) uniqueCode(ctx context.Context, tx shared.Tx) (voucher.Code, error) {
	for range maxCodeAttempts {
		code, err := uc.generate()
		if err != nil {
			return "", errs.Wrap(err, "failed to generate voucher code")
		}
		taken, err := tx.Vouchers().ExistsByCode(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}

func (uc *voucherUseCaseImpl) Redeem(ctx context.Context, rawCode string) (*voucher.Voucher, error) {
	code, err := voucher.NewCode(rawCode)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	now := uc.clock.Now()
	var redeemed *voucher.Voucher
	expired := false
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		expired = false
		v, err := tx.Vouchers().FindByCode(ctx, code)
		if err != nil {
			if errs.Is(err, errs.ErrNotFound) {
				return ErrVoucherNotFound
			}
			return err
		}

		switch rerr := v.Redeem(now); {
		case errors.Is(rerr, voucher.ErrExpired):
			// committed before reporting so the flip is not lost
			expired = true
			return tx.Vouchers().MarkExpired(ctx, v.ID())
		case rerr != nil:
			return ErrVoucherNotActive
		}

		won, err := tx.Vouchers().RedeemIfActive(ctx, code, now)
		if err != nil {
			return err
		}
		if !won {
			return ErrVoucherNotActive
		}
		redeemed = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, ErrVoucherExpired
	}
	return redeemed, nil
}

func (uc *voucherUseCaseImpl) SweepExpired(ctx context.Context) (int64, error) {
	return uc.uow.Reads().Vouchers().ExpireBefore(ctx, uc.clock.Now())
}

func (uc *voucherUseCaseImpl) FindReminderCandidates(ctx context.Context) ([]*voucher.Voucher, error) {
	return uc.uow.Reads().Vouchers().FindReminderCandidates(ctx, shared.ReminderQuery{
		Now:       uc.clock.Now(),
		Lookahead: uc.policy.ReminderLookahead,
		Cooldown:  uc.policy.ReminderCooldown,
	})
}

func (uc *voucherUseCaseImpl) MarkReminderSent(ctx context.Context, id uuid.UUID) error {
	return uc.uow.Reads().Vouchers().MarkReminderSent(ctx, id, uc.clock.Now())
}

func (uc *voucherUseCaseImpl) ListByOwner(ctx context.Context, ownerID int64) ([]*voucher.Voucher, error) {
	return uc.uow.Reads().Vouchers().ListByOwner(ctx, ownerID)
}
