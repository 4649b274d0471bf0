//go:build unit

package broadcast_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"kuponbot/internal/domain/session"
	"kuponbot/internal/infra/memstore"
	"kuponbot/internal/pkg/config"
	"kuponbot/internal/usecase/broadcast"
	"kuponbot/internal/usecase/notify"
	"kuponbot/internal/usecase/shared"
	"kuponbot/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDeliverer struct {
	fail     map[int64]bool
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
	mu       sync.Mutex
	got      []int64
}

func (f *fakeDeliverer) attempt(ctx context.Context, id int64) bool {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return false
		}
	}
	f.mu.Lock()
	f.got = append(f.got, id)
	f.mu.Unlock()
	return !f.fail[id]
}

func (f *fakeDeliverer) Send(ctx context.Context, msg notify.OutboundMessage) bool {
	return f.attempt(ctx, msg.ChatID)
}

func (f *fakeDeliverer) Copy(ctx context.Context, to, _ int64, _ int) bool {
	return f.attempt(ctx, to)
}

type brokenUoW struct{ shared.UnitOfWork }

func (brokenUoW) Reads() shared.Tx { return brokenTx{} }

type brokenTx struct{ shared.Tx }

func (brokenTx) Sessions() shared.SessionRepository { return brokenSessions{} }

type brokenSessions struct{ shared.SessionRepository }

func (brokenSessions) ListRegistered(context.Context) ([]*session.Session, error) {
	return nil, errors.New("connection refused")
}

func seed(t *testing.T, store *memstore.Store, registered []int64, pending []int64) {
	t.Helper()
	ctx := context.Background()
	for _, id := range registered {
		_, err := store.Reads().Sessions().CreateIfAbsent(ctx, builder.NewSessionBuilder().WithTelegramID(id).MustBuild())
		require.NoError(t, err)
	}
	for _, id := range pending {
		s := builder.NewSessionBuilder().WithTelegramID(id).WithState(session.StateWaitingFullName).MustBuild()
		_, err := store.Reads().Sessions().CreateIfAbsent(ctx, s)
		require.NoError(t, err)
	}
}

func newEngine(store shared.UnitOfWork, d broadcast.Deliverer, mutate func(*config.BroadcastConfig)) *broadcast.Engine {
	cfg := config.NewTestConfig()
	if mutate != nil {
		mutate(&cfg.Broadcast)
	}
	return broadcast.NewEngine(store, d, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBroadcast(t *testing.T) {
	ctx := context.Background()

	t.Run("partial failures are counted not raised", func(t *testing.T) {
		store := memstore.New()
		seed(t, store, []int64{1, 2, 3, 4, 5}, []int64{6})
		d := &fakeDeliverer{fail: map[int64]bool{2: true, 4: true}}

		res, err := newEngine(store, d, nil).Broadcast(ctx, "sale")
		require.NoError(t, err)
		assert.Equal(t, broadcast.Result{Total: 5, Success: 3, Failure: 2}, res)
		assert.InDelta(t, 60.0, res.SuccessRate(), 0.001)
		assert.ElementsMatch(t, []int64{1, 2, 3, 4, 5}, d.got)
	})

	t.Run("registered operators are part of the roster", func(t *testing.T) {
		store := memstore.New()
		seed(t, store, []int64{1, 2, 1001}, []int64{1002})
		d := &fakeDeliverer{}

		res, err := newEngine(store, d, nil).BroadcastMedia(ctx, broadcast.MediaRef{FromChatID: 1001, MessageID: 9})
		require.NoError(t, err)
		assert.Equal(t, broadcast.Result{Total: 3, Success: 3}, res)
		assert.ElementsMatch(t, []int64{1, 2, 1001}, d.got)
	})

	t.Run("empty roster", func(t *testing.T) {
		res, err := newEngine(memstore.New(), &fakeDeliverer{}, nil).Broadcast(ctx, "x")
		require.NoError(t, err)
		assert.Zero(t, res.Total)
		assert.Zero(t, res.SuccessRate())
	})

	t.Run("roster failure is the only error", func(t *testing.T) {
		_, err := newEngine(brokenUoW{}, &fakeDeliverer{}, nil).Broadcast(ctx, "x")
		assert.Error(t, err)
	})

	t.Run("sends run concurrently", func(t *testing.T) {
		store := memstore.New()
		seed(t, store, []int64{1, 2, 3, 4, 5, 6, 7, 8}, nil)
		d := &fakeDeliverer{delay: 20 * time.Millisecond}

		_, err := newEngine(store, d, nil).Broadcast(ctx, "x")
		require.NoError(t, err)
		assert.Greater(t, d.peak.Load(), int32(1))
	})

	t.Run("in-flight cap is respected", func(t *testing.T) {
		store := memstore.New()
		seed(t, store, []int64{1, 2, 3, 4, 5, 6, 7, 8}, nil)
		d := &fakeDeliverer{delay: 5 * time.Millisecond}

		res, err := newEngine(store, d, func(c *config.BroadcastConfig) { c.MaxInFlight = 3 }).Broadcast(ctx, "x")
		require.NoError(t, err)
		assert.Equal(t, 8, res.Success)
		assert.LessOrEqual(t, d.peak.Load(), int32(3))
	})

	t.Run("attempts cut off by the batch timeout count as failures", func(t *testing.T) {
		store := memstore.New()
		seed(t, store, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, nil)
		d := &fakeDeliverer{delay: 30 * time.Millisecond}

		res, err := newEngine(store, d, func(c *config.BroadcastConfig) {
			c.MaxInFlight = 1
			c.Timeout = 50 * time.Millisecond
		}).Broadcast(ctx, "x")
		require.NoError(t, err)
		assert.Equal(t, 10, res.Total)
		assert.Equal(t, res.Total, res.Success+res.Failure)
		assert.Positive(t, res.Failure)
	})
}

func TestSendSingle(t *testing.T) {
	d := &fakeDeliverer{fail: map[int64]bool{7: true}}
	e := newEngine(memstore.New(), d, nil)

	assert.True(t, e.SendSingle(context.Background(), 6, "hi"))
	assert.False(t, e.SendSingle(context.Background(), 7, "hi"))
}
