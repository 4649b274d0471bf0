// Package telegram adapts the Bot API to the notify ports. Every call passes
// a shared rate limiter and a circuit breaker; the long-poll loop feeds the
// conversation engine.
package telegram

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"kuponbot/internal/infra/metrics"
	"kuponbot/internal/pkg/config"
	"kuponbot/internal/pkg/errs"
	"kuponbot/internal/usecase/notify"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

const (
	breakerName = "telegram-bot-api"
	// longer flood-wait hints are surfaced as failures instead of blocking a worker
	maxRetryAfter = 30 * time.Second
)

// BotAPI is the part of *tgbotapi.BotAPI the client uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetChatMember(config tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error)
}

type Client struct {
	api     BotAPI
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[any]
	sleep   func(ctx context.Context, d time.Duration) error
	logger  *slog.Logger
}

func NewClient(api BotAPI, cfg config.Config, logger *slog.Logger) *Client {
	tg := cfg.Telegram
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     tg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= 0.6
		},
		IsSuccessful: healthyResponse,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(metrics.BreakerStateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &Client{
		api:     api,
		limiter: rate.NewLimiter(rate.Limit(tg.RatePerSecond), max(tg.RateBurst, 1)),
		breaker: breaker,
		sleep:   sleepCtx,
		logger:  logger,
	}
}

func (c *Client) Send(ctx context.Context, msg notify.OutboundMessage) error {
	cfg := tgbotapi.NewMessage(msg.ChatID, msg.Text)
	cfg.ParseMode = msg.ParseMode
	if markup := replyMarkup(msg); markup != nil {
		cfg.ReplyMarkup = markup
	}
	return c.call(ctx, "sendMessage", func() (any, error) {
		return c.api.Send(cfg)
	})
}

func (c *Client) Copy(ctx context.Context, to, fromChat int64, messageID int) error {
	cfg := tgbotapi.NewCopyMessage(to, fromChat, messageID)
	return c.call(ctx, "copyMessage", func() (any, error) {
		return c.api.Request(cfg)
	})
}

func (c *Client) AnswerCallback(ctx context.Context, callbackID, text string) error {
	cfg := tgbotapi.NewCallback(callbackID, text)
	return c.call(ctx, "answerCallbackQuery", func() (any, error) {
		return c.api.Request(cfg)
	})
}

// MemberStatus returns the raw chat member status of userID in channel,
// which may be a numeric chat id or an @username.
func (c *Client) MemberStatus(ctx context.Context, channel string, userID int64) (string, error) {
	var status string
	err := c.call(ctx, "getChatMember", func() (any, error) {
		member, err := c.api.GetChatMember(tgbotapi.GetChatMemberConfig{ChatConfigWithUser: chatWithUser(channel, userID)})
		status = member.Status
		return member, err
	})
	return status, err
}

func (c *Client) call(ctx context.Context, method string, fn func() (any, error)) error {
	waitStarted := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		metrics.TelegramRequests.WithLabelValues(method, "rejected").Inc()
		return errs.Mark(errs.Wrapf(err, "telegram %s: rate limiter", method), errs.ErrExternalCall)
	}
	metrics.TelegramRateLimitWait.Observe(time.Since(waitStarted).Seconds())

	started := time.Now()
	_, err := c.breaker.Execute(fn)
	if wait := retryAfter(err); wait > 0 && wait <= maxRetryAfter {
		c.logger.WarnContext(ctx, "telegram flood wait", "method", method, "retry_after", wait)
		if err = c.sleep(ctx, wait); err == nil {
			_, err = c.breaker.Execute(fn)
		}
	}
	metrics.TelegramRequestDuration.WithLabelValues(method).Observe(time.Since(started).Seconds())
	metrics.TelegramRequests.WithLabelValues(method, resultLabel(err)).Inc()

	if err != nil {
		return errs.Mark(errs.Wrapf(err, "telegram %s", method), errs.ErrExternalCall)
	}
	return nil
}

func (c *Client) BreakerState() gobreaker.State {
	return c.breaker.State()
}

// healthyResponse keeps per-chat rejections (blocked bot, unknown chat) from
// tripping the breaker; only transport failures, 429 and 5xx count.
func healthyResponse(err error) bool {
	if err == nil {
		return true
	}
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code >= 400 && apiErr.Code < 500 && apiErr.Code != 429
	}
	return false
}

func retryAfter(err error) time.Duration {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return time.Duration(apiErr.RetryAfter) * time.Second
	}
	return 0
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "rejected"
	default:
		return "failure"
	}
}

func chatWithUser(channel string, userID int64) tgbotapi.ChatConfigWithUser {
	cfg := tgbotapi.ChatConfigWithUser{UserID: userID}
	if id, err := strconv.ParseInt(channel, 10, 64); err == nil {
		cfg.ChatID = id
		return cfg
	}
	cfg.SuperGroupUsername = "@" + strings.TrimPrefix(channel, "@")
	return cfg
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
