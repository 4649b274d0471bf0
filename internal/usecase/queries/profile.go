package queries

import (
	"context"

	"kuponbot/internal/domain/cashback"
	"kuponbot/internal/domain/session"
	"kuponbot/internal/domain/voucher"
	"kuponbot/internal/pkg/errs"
	"kuponbot/internal/usecase/shared"
)

var ErrSessionNotFound = errs.Mark(errs.New("session not found"), errs.ErrNotFound)

type ProfileView struct {
	Session  *session.Session
	Vouchers []*voucher.Voucher
	Cashback cashback.Stats
}

// Active returns vouchers still redeemable, in storage order.
func (p *ProfileView) Active() []*voucher.Voucher {
	var out []*voucher.Voucher
	for _, v := range p.Vouchers {
		if v.Status() == voucher.StatusActive {
			out = append(out, v)
		}
	}
	return out
}

type OverviewView struct {
	Sessions map[session.State]int64
	Vouchers map[voucher.Status]int64
}

func (o *OverviewView) Registered() int64 {
	return o.Sessions[session.StateRegistered]
}

// Onboarding counts every identity that has not finished registration.
func (o *OverviewView) Onboarding() int64 {
	var n int64
	for st, c := range o.Sessions {
		if st != session.StateRegistered {
			n += c
		}
	}
	return n
}

type ProfileQueries interface {
	Profile(ctx context.Context, telegramID int64) (*ProfileView, error)
	Overview(ctx context.Context) (*OverviewView, error)
}

type profileQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewProfileQueries(uow shared.UnitOfWork) ProfileQueries {
	return &profileQueriesImpl{uow: uow}
}

func (q *profileQueriesImpl) Profile(ctx context.Context, telegramID int64) (*ProfileView, error) {
	view := &ProfileView{}
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Sessions().FindByTelegramID(ctx, telegramID)
		if err != nil {
			if errs.Is(err, errs.ErrNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		vouchers, err := tx.Vouchers().ListByOwner(ctx, telegramID)
		if err != nil {
			return err
		}
		entries, err := tx.Cashback().ListByOwner(ctx, telegramID)
		if err != nil {
			return err
		}
		view.Session = s
		view.Vouchers = vouchers
		view.Cashback = cashback.Replay(entries)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *profileQueriesImpl) Overview(ctx context.Context) (*OverviewView, error) {
	view := &OverviewView{}
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if view.Sessions, err = tx.Sessions().CountByState(ctx); err != nil {
			return err
		}
		view.Vouchers, err = tx.Vouchers().CountByStatus(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
