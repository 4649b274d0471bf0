package telegram

import (
	"context"
	"log/slog"
	"sync"

	"kuponbot/internal/pkg/config"
	"kuponbot/internal/usecase/conversation"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// UpdateSource is the long-poll side of *tgbotapi.BotAPI.
type UpdateSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type UpdateHandler interface {
	Handle(ctx context.Context, upd conversation.Update) error
}

// Poller fans updates out to a fixed set of workers. An identity always maps
// to the same worker so its updates are handled in arrival order.
type Poller struct {
	source  UpdateSource
	handler UpdateHandler
	timeout int
	workers int
	logger  *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewPoller(source UpdateSource, handler UpdateHandler, cfg config.Config, logger *slog.Logger) *Poller {
	return &Poller{
		source:  source,
		handler: handler,
		timeout: cfg.Telegram.PollTimeout,
		workers: max(cfg.Telegram.Workers, 1),
		logger:  logger,
	}
}

func (p *Poller) Start(ctx context.Context) error {
	base := context.WithoutCancel(ctx)
	ctx, p.cancel = context.WithCancel(base)

	uc := tgbotapi.NewUpdate(0)
	uc.Timeout = p.timeout
	uc.AllowedUpdates = []string{"message", "callback_query"}
	updates := p.source.GetUpdatesChan(uc)

	queues := make([]chan conversation.Update, p.workers)
	for i := range queues {
		queues[i] = make(chan conversation.Update, 64)
		p.wg.Add(1)
		go p.work(base, queues[i])
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			for _, q := range queues {
				close(q)
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case raw, ok := <-updates:
				if !ok {
					return
				}
				upd, keep := ToUpdate(raw)
				if !keep {
					continue
				}
				q := queues[shard(upd.SenderID, len(queues))]
				select {
				case q <- upd:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	p.logger.Info("telegram poller started", "workers", p.workers, "timeout", p.timeout)
	return nil
}

// Stop ends polling and waits for in-flight updates, bounded by ctx.
func (p *Poller) Stop(ctx context.Context) error {
	if p.cancel == nil {
		return nil
	}
	p.source.StopReceivingUpdates()
	p.cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		p.logger.Info("telegram poller stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// work drains its queue even after Stop so accepted updates are not lost.
func (p *Poller) work(ctx context.Context, queue <-chan conversation.Update) {
	defer p.wg.Done()
	for upd := range queue {
		if err := p.handler.Handle(ctx, upd); err != nil {
			p.logger.Warn("update not handled", "update_id", upd.ID, "telegram_id", upd.SenderID, "error", err)
		}
	}
}

func shard(id int64, n int) int {
	if id < 0 {
		id = -id
	}
	return int(id % int64(n))
}
