// Package broadcast fans one message out to every registered customer.
// Each recipient is an independent attempt; failures are counted, never raised.
package broadcast

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"kuponbot/internal/infra/metrics"
	"kuponbot/internal/pkg/config"
	"kuponbot/internal/pkg/errs"
	"kuponbot/internal/usecase/notify"
	"kuponbot/internal/usecase/shared"

	"golang.org/x/sync/errgroup"
)

type Result struct {
	Total   int
	Success int
	Failure int
}

// SuccessRate is a percentage; an empty roster reports 0.
func (r Result) SuccessRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Success) * 100 / float64(r.Total)
}

// MediaRef points at an already posted message to be copied to each recipient.
type MediaRef struct {
	FromChatID int64
	MessageID  int
}

type Deliverer interface {
	Send(ctx context.Context, msg notify.OutboundMessage) bool
	Copy(ctx context.Context, to, fromChat int64, messageID int) bool
}

// Broadcaster is what the bot and the admin API use to reach customers.
type Broadcaster interface {
	Broadcast(ctx context.Context, text string) (Result, error)
	BroadcastMedia(ctx context.Context, ref MediaRef) (Result, error)
	SendSingle(ctx context.Context, telegramID int64, text string) bool
}

var _ Broadcaster = (*Engine)(nil)

type Engine struct {
	uow       shared.UnitOfWork
	deliverer Deliverer
	cfg       config.BroadcastConfig
	logger    *slog.Logger
}

func NewEngine(uow shared.UnitOfWork, deliverer Deliverer, cfg config.Config, logger *slog.Logger) *Engine {
	return &Engine{uow: uow, deliverer: deliverer, cfg: cfg.Broadcast, logger: logger}
}

func (e *Engine) Broadcast(ctx context.Context, text string) (Result, error) {
	return e.fanOut(ctx, "text", func(ctx context.Context, id int64) bool {
		return e.deliverer.Send(ctx, notify.OutboundMessage{ChatID: id, Text: text})
	})
}

func (e *Engine) BroadcastMedia(ctx context.Context, ref MediaRef) (Result, error) {
	return e.fanOut(ctx, "media", func(ctx context.Context, id int64) bool {
		return e.deliverer.Copy(ctx, id, ref.FromChatID, ref.MessageID)
	})
}

func (e *Engine) SendSingle(ctx context.Context, telegramID int64, text string) bool {
	ok := e.deliverer.Send(ctx, notify.OutboundMessage{ChatID: telegramID, Text: text})
	metrics.BroadcastRecipients.WithLabelValues("single", metrics.ResultLabel(ok)).Inc()
	return ok
}

// roster lists every registered identity, operators included.
func (e *Engine) roster(ctx context.Context) ([]int64, error) {
	sessions, err := e.uow.Reads().Sessions().ListRegistered(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.TelegramID())
	}
	return ids, nil
}

func (e *Engine) fanOut(ctx context.Context, kind string, send func(ctx context.Context, id int64) bool) (Result, error) {
	recipients, err := e.roster(ctx)
	if err != nil {
		return Result{}, errs.Wrap(err, "failed to load broadcast roster")
	}

	started := time.Now()
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	var success, failure atomic.Int64
	// a plain Group: one failed attempt must not cancel the others
	var g errgroup.Group
	if e.cfg.MaxInFlight > 0 {
		g.SetLimit(e.cfg.MaxInFlight)
	}
	for _, id := range recipients {
		g.Go(func() error {
			if ctx.Err() != nil {
				failure.Add(1)
				return nil
			}
			if send(ctx, id) {
				success.Add(1)
			} else {
				failure.Add(1)
			}
			e.pause(ctx)
			return nil
		})
	}
	_ = g.Wait()

	res := Result{Total: len(recipients), Success: int(success.Load()), Failure: int(failure.Load())}
	metrics.BroadcastRecipients.WithLabelValues(kind, "success").Add(float64(res.Success))
	metrics.BroadcastRecipients.WithLabelValues(kind, "failure").Add(float64(res.Failure))
	metrics.BroadcastDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
	e.logger.InfoContext(ctx, "broadcast finished",
		"kind", kind,
		"total", res.Total,
		"success", res.Success,
		"failure", res.Failure,
		"duration", time.Since(started),
	)
	return res, nil
}

// pause is the per-worker spacing between sends.
func (e *Engine) pause(ctx context.Context) {
	if e.cfg.SendDelay <= 0 {
		return
	}
	t := time.NewTimer(e.cfg.SendDelay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
