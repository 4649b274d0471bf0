//go:build unit

package notify_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"kuponbot/internal/usecase/notify"
	notifymock "kuponbot/tests/mock/notify"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestDispatcher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	t.Run("send failure is reported as false", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sender := notifymock.NewMockSender(ctrl)
		d := notify.NewDispatcher(sender, notifymock.NewMockAdminDirectory(ctrl), logger)

		sender.EXPECT().Send(gomock.Any(), notify.OutboundMessage{ChatID: 5, Text: "hi"}).Return(errors.New("blocked"))

		assert.False(t, d.ToUser(ctx, 5, "hi"))
	})

	t.Run("admins are counted individually", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sender := notifymock.NewMockSender(ctrl)
		admins := notifymock.NewMockAdminDirectory(ctrl)
		d := notify.NewDispatcher(sender, admins, logger)

		admins.EXPECT().Admins().Return([]int64{1, 2, 3})
		sender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m notify.OutboundMessage) error {
			if m.ChatID == 2 {
				return errors.New("chat not found")
			}
			return nil
		}).Times(3)

		assert.Equal(t, 2, d.ToAdmins(ctx, "alert"))
	})

	t.Run("empty callback id is not answered", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sender := notifymock.NewMockSender(ctrl)
		d := notify.NewDispatcher(sender, notifymock.NewMockAdminDirectory(ctrl), logger)

		d.AnswerCallback(ctx, "", "ignored")
	})
}
