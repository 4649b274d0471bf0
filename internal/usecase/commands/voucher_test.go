//go:build unit

package commands_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"kuponbot/internal/domain/voucher"
	"kuponbot/internal/infra/memstore"
	"kuponbot/internal/pkg/clock"
	"kuponbot/internal/pkg/config"
	"kuponbot/internal/pkg/errs"
	"kuponbot/internal/usecase/commands"
	"kuponbot/internal/usecase/shared"
	"kuponbot/tests/common/builder"

	"github.com/stretchr/testify/suite"
)

type VoucherCommandsSuite struct {
	suite.Suite
	ctx   context.Context
	store *memstore.Store
	clock *clock.MockClock
	uc    commands.VoucherCommands
}

func TestVoucherCommandsSuite(t *testing.T) {
	suite.Run(t, new(VoucherCommandsSuite))
}

func (s *VoucherCommandsSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New()
	s.clock = clock.NewMockClock(builder.FixedNow)
	s.uc = commands.NewVoucherUseCase(s.store, s.clock, config.NewTestConfig())

	_, err := s.store.Reads().Sessions().CreateIfAbsent(s.ctx, builder.NewSessionBuilder().MustBuild())
	s.Require().NoError(err)
}

func (s *VoucherCommandsSuite) create(days int) *voucher.Voucher {
	v, err := s.uc.Create(s.ctx, commands.CreateVoucherRequest{
		OwnerID: 5001, Amount: 50000, Type: voucher.TypeSpecial, ValidDays: days,
	})
	s.Require().NoError(err)
	return v
}

func (s *VoucherCommandsSuite) TestCreate() {
	s.Run("success", func() {
		v := s.create(30)
		s.Equal(voucher.StatusActive, v.Status())
		s.Equal(builder.FixedNow.AddDate(0, 0, 30), v.ExpiresAt())
	})

	s.Run("unknown owner", func() {
		_, err := s.uc.Create(s.ctx, commands.CreateVoucherRequest{OwnerID: 1, Amount: 1, Type: voucher.TypeSpecial, ValidDays: 1})
		s.True(errs.Is(err, errs.ErrNotFound))
	})

	s.Run("invalid amount", func() {
		_, err := s.uc.Create(s.ctx, commands.CreateVoucherRequest{OwnerID: 5001, Amount: 0, Type: voucher.TypeSpecial, ValidDays: 1})
		s.True(errs.Is(err, errs.ErrValidation))
	})
}

func (s *VoucherCommandsSuite) TestCodeCollisionsAreRejected() {
	codes := []voucher.Code{"aaaaaaaa", "aaaaaaaa", "bbbbbbbb"}
	var calls int32
	gen := func() (voucher.Code, error) {
		i := atomic.AddInt32(&calls, 1) - 1
		return codes[i], nil
	}
	uc := commands.NewVoucherUseCaseWithGenerator(s.store, s.clock, config.NewTestConfig().Voucher, gen)

	first, err := uc.Create(s.ctx, commands.CreateVoucherRequest{OwnerID: 5001, Amount: 1, Type: voucher.TypeSpecial, ValidDays: 1})
	s.Require().NoError(err)
	second, err := uc.Create(s.ctx, commands.CreateVoucherRequest{OwnerID: 5001, Amount: 1, Type: voucher.TypeSpecial, ValidDays: 1})
	s.Require().NoError(err)

	s.Equal(voucher.Code("aaaaaaaa"), first.Code())
	s.Equal(voucher.Code("bbbbbbbb"), second.Code())
	s.Equal(int32(3), calls)
}

func (s *VoucherCommandsSuite) TestCodeSpaceExhausted() {
	uc := commands.NewVoucherUseCaseWithGenerator(s.store, s.clock, config.NewTestConfig().Voucher, func() (voucher.Code, error) {
		return "cccccccc", nil
	})
	_, err := uc.Create(s.ctx, commands.CreateVoucherRequest{OwnerID: 5001, Amount: 1, Type: voucher.TypeSpecial, ValidDays: 1})
	s.Require().NoError(err)

	_, err = uc.Create(s.ctx, commands.CreateVoucherRequest{OwnerID: 5001, Amount: 1, Type: voucher.TypeSpecial, ValidDays: 1})
	s.True(errors.Is(err, commands.ErrCodeSpaceExhausted))
}

func (s *VoucherCommandsSuite) TestRedeem() {
	s.Run("success is case insensitive", func() {
		v := s.create(3)
		got, err := s.uc.Redeem(s.ctx, "  "+strings.ToUpper(string(v.Code())))
		s.Require().NoError(err)
		s.Equal(voucher.StatusUsed, got.Status())
	})

	s.Run("second redemption is not active", func() {
		v := s.create(3)
		_, err := s.uc.Redeem(s.ctx, string(v.Code()))
		s.Require().NoError(err)

		_, err = s.uc.Redeem(s.ctx, string(v.Code()))
		s.True(errs.Is(err, errs.ErrStateConflict))
		s.True(errs.Is(err, voucher.ErrNotActive))
	})

	s.Run("unknown code", func() {
		_, err := s.uc.Redeem(s.ctx, "zzzzzzzz")
		s.True(errs.Is(err, errs.ErrNotFound))
	})

	s.Run("malformed code", func() {
		_, err := s.uc.Redeem(s.ctx, "abc")
		s.True(errs.Is(err, errs.ErrValidation))
	})

	s.Run("expired voucher is flipped and persisted", func() {
		v := s.create(1)
		s.clock.Add(48 * time.Hour)
		defer s.clock.Set(builder.FixedNow)

		_, err := s.uc.Redeem(s.ctx, string(v.Code()))
		s.True(errs.Is(err, voucher.ErrExpired))

		stored, err := s.store.Reads().Vouchers().FindByCode(s.ctx, v.Code())
		s.Require().NoError(err)
		s.Equal(voucher.StatusExpired, stored.Status())
	})
}

func (s *VoucherCommandsSuite) TestConcurrentRedeemHasOneWinner() {
	v := s.create(3)

	var wins, conflicts int32
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.uc.Redeem(s.ctx, string(v.Code()))
			switch {
			case err == nil:
				atomic.AddInt32(&wins, 1)
			case errs.Is(err, errs.ErrStateConflict):
				atomic.AddInt32(&conflicts, 1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), wins)
	s.Equal(int32(15), conflicts)
}

func (s *VoucherCommandsSuite) TestSweepAndReminders() {
	s.create(1)
	later := s.create(10)
	s.create(1)

	s.clock.Add(36 * time.Hour)
	defer s.clock.Set(builder.FixedNow)

	n, err := s.uc.SweepExpired(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), n)

	n, err = s.uc.SweepExpired(s.ctx)
	s.Require().NoError(err)
	s.Zero(n)

	s.clock.Set(builder.FixedNow.Add(9 * 24 * time.Hour))
	candidates, err := s.uc.FindReminderCandidates(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(candidates, 1)
	s.Equal(later.ID(), candidates[0].ID())

	s.Require().NoError(s.uc.MarkReminderSent(s.ctx, later.ID()))
	candidates, err = s.uc.FindReminderCandidates(s.ctx)
	s.Require().NoError(err)
	s.Empty(candidates)
}

func (s *VoucherCommandsSuite) TestIssueWelcomeUsesPolicy() {
	var v *voucher.Voucher
	err := s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		v, err = s.uc.IssueWelcome(ctx, tx, 5001)
		return err
	})
	s.Require().NoError(err)
	s.Equal(voucher.TypeSpecial, v.Type())
	s.Equal(int64(50000), v.Amount())
	s.Equal(builder.FixedNow.AddDate(0, 0, 30), v.ExpiresAt())
}
