//go:build unit

package cashback_test

import (
	"testing"
	"time"

	"kuponbot/internal/domain/cashback"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func fivePercent(t *testing.T) cashback.Percentage {
	t.Helper()
	p, err := cashback.NewPercentage("5")
	require.NoError(t, err)
	return p
}

func TestPercentageOf(t *testing.T) {
	p := fivePercent(t)
	tests := []struct {
		purchase int64
		want     int64
	}{
		{purchase: 100000, want: 5000},
		{purchase: 10, want: 1},
		{purchase: 9, want: 0},
		{purchase: 30, want: 2},
		{purchase: 199, want: 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Of(tt.purchase), "purchase=%d", tt.purchase)
	}

	_, err := cashback.NewPercentage("101")
	require.ErrorIs(t, err, cashback.ErrInvalidPercentage)
	_, err = cashback.NewPercentage("abc")
	require.ErrorIs(t, err, cashback.ErrInvalidPercentage)
}

func TestEntries(t *testing.T) {
	p := fivePercent(t)

	earned, err := cashback.NewEarned(1, 200000, p, "order #1", now)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), earned.CashbackAmount())
	assert.Equal(t, cashback.StatusActive, earned.Status())

	used, err := cashback.NewUsed(1, 4000, 10000, "checkout", now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), used.PurchaseAmount())
	assert.Equal(t, cashback.StatusUsed, used.Status())
	require.NotNil(t, used.UsedAt())

	_, err = cashback.NewUsed(1, 10001, 10000, "too much", now)
	require.ErrorIs(t, err, cashback.ErrInsufficientBalance)

	_, err = cashback.NewRefund(1, 0, "nothing", now)
	require.ErrorIs(t, err, cashback.ErrInvalidAmount)
}

func TestReplay(t *testing.T) {
	p := fivePercent(t)
	earned, err := cashback.NewEarned(1, 200000, p, "", now)
	require.NoError(t, err)
	used, err := cashback.NewUsed(1, 4000, earned.CashbackAmount(), "", now)
	require.NoError(t, err)
	refund, err := cashback.NewRefund(1, 1500, "", now)
	require.NoError(t, err)

	stats := cashback.Replay([]*cashback.Entry{earned, used, refund})
	assert.Equal(t, cashback.Stats{Balance: 7500, TotalEarned: 10000, TotalUsed: 4000, Refunded: 1500}, stats)
	assert.Zero(t, cashback.Replay(nil))
}
