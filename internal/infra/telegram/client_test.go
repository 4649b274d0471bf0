//go:build unit

package telegram

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"kuponbot/internal/pkg/config"
	"kuponbot/internal/pkg/errs"
	"kuponbot/internal/usecase/notify"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu     sync.Mutex
	calls  []tgbotapi.Chattable
	member []tgbotapi.GetChatMemberConfig
	errs   []error
	status string
}

func (f *fakeAPI) next() error {
	if len(f.errs) == 0 {
		return nil
	}
	err := f.errs[0]
	f.errs = f.errs[1:]
	return err
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	return tgbotapi.Message{}, f.next()
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	return &tgbotapi.APIResponse{Ok: true}, f.next()
}

func (f *fakeAPI) GetChatMember(cfg tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.member = append(f.member, cfg)
	return tgbotapi.ChatMember{Status: f.status}, f.next()
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestClient(api BotAPI) *Client {
	cfg := config.NewTestConfig()
	cfg.Telegram.BreakerTimeout = time.Hour
	return NewClient(api, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSendBuildsMarkup(t *testing.T) {
	api := &fakeAPI{}
	c := newTestClient(api)
	ctx := context.Background()

	require.NoError(t, c.Send(ctx, notify.OutboundMessage{
		ChatID: 5,
		Text:   "pick",
		Inline: [][]notify.InlineButton{{{Text: "Shop", URL: "https://example.test"}, {Text: "Check", Data: "check_subscription"}}},
	}))
	require.NoError(t, c.Send(ctx, notify.OutboundMessage{
		ChatID: 5,
		Text:   "contact",
		Reply:  &notify.ReplyKeyboard{Rows: [][]string{{"Share"}, {"Other"}}, RequestContact: true, OneTime: true},
	}))
	require.NoError(t, c.Send(ctx, notify.OutboundMessage{ChatID: 5, Text: "ok", RemoveKeyboard: true}))

	require.Len(t, api.calls, 3)

	inline := api.calls[0].(tgbotapi.MessageConfig).ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.Len(t, inline.InlineKeyboard, 1)
	require.Len(t, inline.InlineKeyboard[0], 2)
	assert.Equal(t, "https://example.test", *inline.InlineKeyboard[0][0].URL)
	assert.Equal(t, "check_subscription", *inline.InlineKeyboard[0][1].CallbackData)

	reply := api.calls[1].(tgbotapi.MessageConfig).ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	assert.True(t, reply.OneTimeKeyboard)
	assert.True(t, reply.Keyboard[0][0].RequestContact)
	assert.False(t, reply.Keyboard[1][0].RequestContact)

	remove := api.calls[2].(tgbotapi.MessageConfig).ReplyMarkup.(tgbotapi.ReplyKeyboardRemove)
	assert.True(t, remove.RemoveKeyboard)
}

func TestMemberStatusResolvesChannel(t *testing.T) {
	api := &fakeAPI{status: "member"}
	c := newTestClient(api)

	status, err := c.MemberStatus(context.Background(), "@aysi_test", 42)
	require.NoError(t, err)
	assert.Equal(t, "member", status)

	_, err = c.MemberStatus(context.Background(), "-1001234", 42)
	require.NoError(t, err)

	require.Len(t, api.member, 2)
	assert.Equal(t, "@aysi_test", api.member[0].SuperGroupUsername)
	assert.Equal(t, int64(42), api.member[0].UserID)
	assert.Equal(t, int64(-1001234), api.member[1].ChatID)
}

func TestErrorsAreExternalCallFailures(t *testing.T) {
	api := &fakeAPI{errs: []error{errors.New("connection reset")}}
	c := newTestClient(api)

	err := c.Copy(context.Background(), 1, 2, 3)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrExternalCall))
}

func TestFloodWaitRetriesOnce(t *testing.T) {
	api := &fakeAPI{errs: []error{&tgbotapi.Error{Code: 429, ResponseParameters: tgbotapi.ResponseParameters{RetryAfter: 2}}}}
	c := newTestClient(api)
	var slept []time.Duration
	c.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	require.NoError(t, c.AnswerCallback(context.Background(), "cb", ""))
	assert.Equal(t, []time.Duration{2 * time.Second}, slept)
	assert.Equal(t, 2, api.count())
}

func TestLongFloodWaitIsNotRetried(t *testing.T) {
	api := &fakeAPI{errs: []error{&tgbotapi.Error{Code: 429, ResponseParameters: tgbotapi.ResponseParameters{RetryAfter: 3600}}}}
	c := newTestClient(api)

	require.Error(t, c.AnswerCallback(context.Background(), "cb", ""))
	assert.Equal(t, 1, api.count())
}

func TestBreakerOpensOnServerErrors(t *testing.T) {
	api := &fakeAPI{}
	for range 10 {
		api.errs = append(api.errs, &tgbotapi.Error{Code: 502, Message: "Bad Gateway"})
	}
	c := newTestClient(api)
	ctx := context.Background()

	for range 10 {
		require.Error(t, c.Send(ctx, notify.OutboundMessage{ChatID: 1, Text: "x"}))
	}
	assert.Equal(t, gobreaker.StateOpen, c.BreakerState())

	err := c.Send(ctx, notify.OutboundMessage{ChatID: 1, Text: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 10, api.count())
}

func TestBlockedChatsDoNotTripBreaker(t *testing.T) {
	api := &fakeAPI{}
	for range 12 {
		api.errs = append(api.errs, &tgbotapi.Error{Code: 403, Message: "Forbidden: bot was blocked by the user"})
	}
	c := newTestClient(api)

	for range 12 {
		require.Error(t, c.Send(context.Background(), notify.OutboundMessage{ChatID: 1, Text: "x"}))
	}
	assert.Equal(t, gobreaker.StateClosed, c.BreakerState())
}
