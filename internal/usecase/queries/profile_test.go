//go:build unit

package queries_test

import (
	"context"
	"testing"

	"kuponbot/internal/domain/session"
	"kuponbot/internal/domain/voucher"
	"kuponbot/internal/infra/memstore"
	"kuponbot/internal/pkg/errs"
	"kuponbot/internal/usecase/queries"
	"kuponbot/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileQueries(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	q := queries.NewProfileQueries(store)

	registered := builder.NewSessionBuilder().MustBuild()
	onboarding := builder.NewSessionBuilder().WithTelegramID(5002).WithState(session.StateWaitingContact).MustBuild()
	for _, s := range []*session.Session{registered, onboarding} {
		_, err := store.Reads().Sessions().CreateIfAbsent(ctx, s)
		require.NoError(t, err)
		require.NoError(t, store.Reads().Sessions().Save(ctx, s))
	}

	active, err := voucher.New("abcd1234", 5001, 50000, voucher.TypeSpecial, 30, builder.FixedNow)
	require.NoError(t, err)
	used, err := voucher.New("abcd5678", 5001, 50000, voucher.TypeBirthday, 3, builder.FixedNow)
	require.NoError(t, err)
	require.NoError(t, used.Redeem(builder.FixedNow))
	require.NoError(t, store.Reads().Vouchers().Create(ctx, active))
	require.NoError(t, store.Reads().Vouchers().Create(ctx, used))

	t.Run("profile", func(t *testing.T) {
		view, err := q.Profile(ctx, 5001)
		require.NoError(t, err)
		assert.Len(t, view.Vouchers, 2)
		require.Len(t, view.Active(), 1)
		assert.Equal(t, active.ID(), view.Active()[0].ID())
		assert.Zero(t, view.Cashback.Balance)
	})

	t.Run("unknown identity", func(t *testing.T) {
		_, err := q.Profile(ctx, 42)
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("overview", func(t *testing.T) {
		view, err := q.Overview(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), view.Registered())
		assert.Equal(t, int64(1), view.Onboarding())
		assert.Equal(t, int64(1), view.Vouchers[voucher.StatusActive])
		assert.Equal(t, int64(1), view.Vouchers[voucher.StatusUsed])
	})
}
