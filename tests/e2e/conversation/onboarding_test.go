//go:build e2e

package conversation_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"kuponbot/internal/domain/session"
	"kuponbot/internal/usecase/conversation"
	"kuponbot/tests/common/dbtest"
	"kuponbot/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type OnboardingSuite struct {
	e2e.SharedSuite
	updateID atomic.Int64
}

func (s *OnboardingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestOnboardingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(OnboardingSuite))
}

func (s *OnboardingSuite) send(t *testing.T, upd conversation.Update) {
	t.Helper()
	if upd.ID == 0 {
		upd.ID = s.updateID.Add(1)
	}
	if upd.ChatID == 0 {
		upd.ChatID = upd.SenderID
	}
	require.NoError(t, s.Engine.Handle(context.Background(), upd))
	s.Engine.Wait()
}

func (s *OnboardingSuite) state(t *testing.T, id int64) string {
	t.Helper()
	var st string
	err := s.Pool.QueryRow(context.Background(), "SELECT state FROM sessions WHERE telegram_id = $1", id).Scan(&st)
	require.NoError(t, err)
	return st
}

func (s *OnboardingSuite) TestRegistration() {
	s.Run("Normal case: full onboarding issues one welcome voucher", func() {
		t := s.T()
		const id int64 = 8001

		s.send(t, conversation.Update{SenderID: id, Text: "/start"})
		require.Equal(t, string(session.StateWaitingLanguage), s.state(t, id))

		s.send(t, conversation.Update{SenderID: id, Text: "🇺🇿 O'zbek (lotin)"})
		require.Equal(t, string(session.StateWaitingContact), s.state(t, id))

		s.send(t, conversation.Update{SenderID: id, Contact: &conversation.Contact{Phone: "+998901234567", UserID: id}})
		s.send(t, conversation.Update{SenderID: id, Text: "Ism Familiya"})
		s.send(t, conversation.Update{SenderID: id, Text: "15.03.1995"})
		require.Equal(t, string(session.StateWaitingChannelSubscription), s.state(t, id))

		s.Telegram.SetStatus(id, "member")
		cb := &conversation.Callback{ID: "cb-1", Data: conversation.CallbackCheckSubscription}
		s.send(t, conversation.Update{SenderID: id, Callback: cb})
		require.Equal(t, string(session.StateRegistered), s.state(t, id))

		// a repeated tap must not issue a second voucher
		s.send(t, conversation.Update{SenderID: id, Callback: cb})

		var phone, name string
		err := s.Pool.QueryRow(context.Background(),
			"SELECT phone, full_name FROM sessions WHERE telegram_id = $1", id).Scan(&phone, &name)
		require.NoError(t, err)
		require.Equal(t, "+998901234567", phone)
		require.Equal(t, "Ism Familiya", name)

		require.Equal(t, int64(1), dbtest.CountRows(t, s.Pool, "vouchers"))
		var typ, status string
		var amount int64
		var createdAt, expiresAt time.Time
		err = s.Pool.QueryRow(context.Background(),
			"SELECT type, status, amount, created_at, expires_at FROM vouchers WHERE owner_id = $1", id).
			Scan(&typ, &status, &amount, &createdAt, &expiresAt)
		require.NoError(t, err)
		require.Equal(t, "SPECIAL", typ)
		require.Equal(t, "ACTIVE", status)
		require.Equal(t, s.Config.Voucher.WelcomeAmount, amount)
		require.WithinDuration(t, createdAt.AddDate(0, 0, s.Config.Voucher.WelcomeValidDays), expiresAt, time.Hour)

		for _, admin := range s.Config.Telegram.AdminIDs {
			require.NotEmpty(t, s.Telegram.SentTo(admin), "operators are told about the new customer")
		}
	})

	s.Run("Error case: unsubscribed user stays at the subscription step", func() {
		t := s.T()
		const id int64 = 8002
		dbtest.CreateSessionInState(t, s.Pool, id, session.StateWaitingChannelSubscription, time.Now())

		s.send(t, conversation.Update{SenderID: id, Callback: &conversation.Callback{ID: "cb-2", Data: conversation.CallbackCheckSubscription}})
		require.Equal(t, string(session.StateWaitingChannelSubscription), s.state(t, id))
		require.Zero(t, dbtest.CountRows(t, s.Pool, "vouchers"))
	})

	s.Run("Normal case: registered customer free text reaches operators", func() {
		t := s.T()
		const id int64 = 8003
		dbtest.CreateRegisteredSession(t, s.Pool, id, time.Now().Add(-time.Hour))

		s.send(t, conversation.Update{SenderID: id, Text: "Ko'zoynak qachon tayyor bo'ladi?"})
		for _, admin := range s.Config.Telegram.AdminIDs {
			require.NotEmpty(t, s.Telegram.SentTo(admin))
		}
		require.NotEmpty(t, s.Telegram.SentTo(id))
	})
}
