//go:build unit

package telegram

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"kuponbot/internal/pkg/config"
	"kuponbot/internal/usecase/conversation"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	ch      chan tgbotapi.Update
	mu      sync.Mutex
	stopped bool
}

func (f *fakeSource) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.ch
}

func (f *fakeSource) StopReceivingUpdates() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

type recordingHandler struct {
	mu   sync.Mutex
	seen map[int64][]int64
}

func (h *recordingHandler) Handle(_ context.Context, upd conversation.Update) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen[upd.SenderID] = append(h.seen[upd.SenderID], upd.ID)
	return nil
}

func (h *recordingHandler) total() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, ids := range h.seen {
		n += len(ids)
	}
	return n
}

func TestPollerKeepsPerSenderOrder(t *testing.T) {
	source := &fakeSource{ch: make(chan tgbotapi.Update, 100)}
	handler := &recordingHandler{seen: make(map[int64][]int64)}
	cfg := config.NewTestConfig()
	cfg.Telegram.Workers = 4
	p := NewPoller(source, handler, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, p.Start(context.Background()))

	var id int
	for range 10 {
		for _, sender := range []int64{1, 2, 3} {
			id++
			source.ch <- tgbotapi.Update{UpdateID: id, Message: &tgbotapi.Message{
				From: &tgbotapi.User{ID: sender},
				Chat: &tgbotapi.Chat{ID: sender, Type: "private"},
				Text: "hi",
			}}
		}
	}
	source.ch <- tgbotapi.Update{UpdateID: 999, Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: 9},
		Chat: &tgbotapi.Chat{ID: -9, Type: "supergroup"},
	}}

	require.Eventually(t, func() bool { return handler.total() == 30 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, p.Stop(ctx))
	assert.True(t, source.stopped)

	for sender, ids := range handler.seen {
		assert.IsIncreasing(t, ids, "sender %d", sender)
		assert.Len(t, ids, 10)
	}
	assert.NotContains(t, handler.seen, int64(9))
}

func TestStopWithoutStart(t *testing.T) {
	p := NewPoller(&fakeSource{}, &recordingHandler{}, config.NewTestConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.NoError(t, p.Stop(context.Background()))
}
