//go:build unit

package conversation_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"kuponbot/internal/domain/session"
	"kuponbot/internal/domain/voucher"
	"kuponbot/internal/infra/memstore"
	"kuponbot/internal/pkg/clock"
	"kuponbot/internal/pkg/config"
	"kuponbot/internal/pkg/i18n"
	"kuponbot/internal/usecase/broadcast"
	"kuponbot/internal/usecase/commands"
	"kuponbot/internal/usecase/conversation"
	"kuponbot/internal/usecase/notify"
	"kuponbot/internal/usecase/scheduler"
	"kuponbot/tests/common/builder"
	notifymock "kuponbot/tests/mock/notify"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type copied struct {
	to, fromChat int64
	messageID    int
}

// recordingOutlet stands in for the dispatcher and the broadcast deliverer.
type recordingOutlet struct {
	mu        sync.Mutex
	admins    []int64
	messages  []notify.OutboundMessage
	adminText []string
	copies    []copied
	answers   map[string]string
}

func (o *recordingOutlet) Send(_ context.Context, msg notify.OutboundMessage) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, msg)
	return true
}

func (o *recordingOutlet) ToUser(ctx context.Context, chatID int64, text string) bool {
	return o.Send(ctx, notify.OutboundMessage{ChatID: chatID, Text: text})
}

func (o *recordingOutlet) Copy(_ context.Context, to, fromChat int64, messageID int) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.copies = append(o.copies, copied{to: to, fromChat: fromChat, messageID: messageID})
	return true
}

func (o *recordingOutlet) ToAdmins(_ context.Context, text string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.adminText = append(o.adminText, text)
	return len(o.admins)
}

func (o *recordingOutlet) AnswerCallback(_ context.Context, callbackID, text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.answers == nil {
		o.answers = make(map[string]string)
	}
	o.answers[callbackID] = text
}

func (o *recordingOutlet) Admins() []int64 {
	return o.admins
}

func (o *recordingOutlet) to(chatID int64) []notify.OutboundMessage {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []notify.OutboundMessage
	for _, m := range o.messages {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out
}

func (o *recordingOutlet) last(chatID int64) notify.OutboundMessage {
	msgs := o.to(chatID)
	if len(msgs) == 0 {
		return notify.OutboundMessage{}
	}
	return msgs[len(msgs)-1]
}

func (o *recordingOutlet) reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = nil
	o.adminText = nil
	o.copies = nil
	o.answers = nil
}

type fakeSweeps struct {
	mu   sync.Mutex
	runs []string
	err  error
}

func (f *fakeSweeps) Run(_ context.Context, name string) (scheduler.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, name)
	return scheduler.Report{Sweep: name, Matched: 2, Notified: 2}, f.err
}

type EngineSuite struct {
	suite.Suite
	ctx        context.Context
	ctrl       *gomock.Controller
	store      *memstore.Store
	clock      *clock.MockClock
	cfg        config.Config
	texts      *i18n.Bundle
	outlet     *recordingOutlet
	membership *notifymock.MockMembershipChecker
	sweeps     *fakeSweeps
	vouchers   commands.VoucherCommands
	engine     *conversation.Engine
	nextID     int64
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.store = memstore.New()
	s.clock = clock.NewMockClock(builder.FixedNow)
	s.cfg = config.NewTestConfig()
	s.texts = i18n.New()
	s.outlet = &recordingOutlet{admins: s.cfg.Telegram.AdminIDs}
	s.membership = notifymock.NewMockMembershipChecker(s.ctrl)
	s.sweeps = &fakeSweeps{}
	s.nextID = 100

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.vouchers = commands.NewVoucherUseCase(s.store, s.clock, s.cfg)
	broadcaster := broadcast.NewEngine(s.store, s.outlet, s.cfg, logger)
	s.engine = conversation.NewEngine(
		s.store, s.vouchers, s.outlet, s.membership, broadcaster, s.sweeps,
		session.NewStaticRoles(s.cfg.Telegram.AdminIDs), s.texts, s.clock, s.cfg, logger,
	)
}

func (s *EngineSuite) send(upd conversation.Update) {
	s.nextID++
	if upd.ID == 0 {
		upd.ID = s.nextID
	}
	if upd.ChatID == 0 {
		upd.ChatID = upd.SenderID
	}
	s.Require().NoError(s.engine.Handle(s.ctx, upd))
	s.engine.Wait()
}

func (s *EngineSuite) say(id int64, text string) {
	s.send(conversation.Update{SenderID: id, Text: text})
}

func (s *EngineSuite) tap(id int64, data string) {
	s.send(conversation.Update{SenderID: id, Callback: &conversation.Callback{ID: "cb-" + data, Data: data}})
}

func (s *EngineSuite) stored(id int64) *session.Session {
	u, err := s.store.Reads().Sessions().FindByTelegramID(s.ctx, id)
	s.Require().NoError(err)
	return u
}

func (s *EngineSuite) seed(b *builder.SessionBuilder) *session.Session {
	u := b.MustBuild()
	_, err := s.store.Reads().Sessions().CreateIfAbsent(s.ctx, u)
	s.Require().NoError(err)
	return u
}

func (s *EngineSuite) ru(key i18n.Key, args ...any) string {
	return s.texts.Text(i18n.Russian, key, args...)
}

func (s *EngineSuite) TestOnboardingToRegistration() {
	const id int64 = 7001

	s.say(id, "/start")
	s.Equal(session.StateWaitingLanguage, s.stored(id).State())
	welcome := s.outlet.last(id)
	s.Equal(s.texts.Text(i18n.UzLatin, i18n.Welcome, s.cfg.Telegram.BrandName), welcome.Text)
	s.Require().NotNil(welcome.Reply)
	s.Equal(i18n.LanguageRows(), welcome.Reply.Rows)

	s.say(id, "English please")
	s.Equal(session.StateWaitingLanguage, s.stored(id).State())

	s.say(id, "🇷🇺 Русский язык")
	s.Equal(session.StateWaitingContact, s.stored(id).State())
	prompt := s.outlet.last(id)
	s.Equal(s.ru(i18n.ContactRequest), prompt.Text)
	s.Require().NotNil(prompt.Reply)
	s.True(prompt.Reply.RequestContact)

	s.say(id, "+998901112233")
	s.Equal(s.ru(i18n.ContactRequired), s.outlet.last(id).Text)
	s.Equal(session.StateWaitingContact, s.stored(id).State())

	s.send(conversation.Update{SenderID: id, Contact: &conversation.Contact{Phone: "998901112233", UserID: id}})
	s.Equal(session.StateWaitingFullName, s.stored(id).State())
	s.True(s.outlet.last(id).RemoveKeyboard)

	s.say(id, "Ali")
	s.Equal(s.ru(i18n.FullNameInvalid), s.outlet.last(id).Text)

	s.say(id, "Ali Valiyev")
	s.Equal(session.StateWaitingBirthDate, s.stored(id).State())

	s.say(id, "31.02.1990")
	s.Equal(s.ru(i18n.BirthDateInvalid), s.outlet.last(id).Text)
	s.say(id, "01.01.2020")
	s.Equal(session.StateWaitingBirthDate, s.stored(id).State())

	s.say(id, "15.03.1995")
	s.Equal(session.StateWaitingChannelSubscription, s.stored(id).State())
	subscribe := s.outlet.last(id)
	s.Require().Len(subscribe.Inline, 2)
	s.Equal("https://t.me/aysi_test", subscribe.Inline[0][0].URL)
	s.Equal(conversation.CallbackCheckSubscription, subscribe.Inline[1][0].Data)

	s.say(id, "done")
	s.Equal(s.ru(i18n.SubscribeFirst), s.outlet.last(id).Text)

	s.membership.EXPECT().MemberStatus(gomock.Any(), s.cfg.Telegram.ChannelID, id).Return("left", nil)
	s.tap(id, conversation.CallbackCheckSubscription)
	s.Equal(s.ru(i18n.NotSubscribed), s.outlet.last(id).Text)
	s.Equal(session.StateWaitingChannelSubscription, s.stored(id).State())

	s.outlet.reset()
	s.membership.EXPECT().MemberStatus(gomock.Any(), s.cfg.Telegram.ChannelID, id).Return("member", nil)
	s.tap(id, conversation.CallbackCheckSubscription)

	u := s.stored(id)
	s.Equal(session.StateRegistered, u.State())
	s.Equal(session.Language(i18n.Russian), u.Language())
	s.Equal("+998901112233", u.Phone().Value())
	s.Equal(s.ru(i18n.CheckingSubscription), s.outlet.answers["cb-"+conversation.CallbackCheckSubscription])

	vouchers, err := s.store.Reads().Vouchers().ListByOwner(s.ctx, id)
	s.Require().NoError(err)
	s.Require().Len(vouchers, 1)
	v := vouchers[0]
	s.Equal(voucher.TypeSpecial, v.Type())
	s.Equal(voucher.StatusActive, v.Status())
	s.Equal(s.cfg.Voucher.WelcomeAmount, v.Amount())

	done := s.outlet.last(id)
	s.Equal(s.ru(i18n.RegistrationComplete, "Ali", v.Code().String(), v.Amount(), s.cfg.Voucher.WelcomeValidDays), done.Text)
	s.Require().NotNil(done.Reply)
	s.Equal(s.texts.MenuLabels(i18n.Russian), done.Reply.Rows)
	s.Require().Len(s.outlet.adminText, 1)
	s.Contains(s.outlet.adminText[0], v.Code().String())
}

func (s *EngineSuite) TestDuplicateUpdateIsDropped() {
	const id int64 = 7002
	upd := conversation.Update{ID: 50, SenderID: id, ChatID: id, Text: "/start"}
	s.Require().NoError(s.engine.Handle(s.ctx, upd))
	s.Require().NoError(s.engine.Handle(s.ctx, upd))
	s.Len(s.outlet.to(id), 1)

	lang := conversation.Update{ID: 51, SenderID: id, ChatID: id, Text: "🇺🇿 O'zbek (lotin)"}
	s.Require().NoError(s.engine.Handle(s.ctx, lang))
	s.Require().NoError(s.engine.Handle(s.ctx, lang))
	s.Len(s.outlet.to(id), 2)
	s.Equal(int64(51), s.stored(id).LastUpdateID())

	stale := conversation.Update{ID: 49, SenderID: id, ChatID: id, Text: "hello"}
	s.Require().NoError(s.engine.Handle(s.ctx, stale))
	s.Len(s.outlet.to(id), 2)
	s.Equal(session.StateWaitingContact, s.stored(id).State())
}

func (s *EngineSuite) TestConcurrentFirstDeliveryCreatesOneSession() {
	const id int64 = 7003
	upd := conversation.Update{ID: 10, SenderID: id, ChatID: id, Text: "/start"}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.engine.Handle(s.ctx, upd)
		}()
	}
	wg.Wait()

	s.Len(s.outlet.to(id), 1)
	counts, err := s.store.Reads().Sessions().CountByState(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), counts[session.StateWaitingLanguage])
}

func (s *EngineSuite) TestMembershipFailureKeepsState() {
	u := s.seed(builder.NewSessionBuilder().WithTelegramID(7004).WithState(session.StateWaitingChannelSubscription))

	s.membership.EXPECT().MemberStatus(gomock.Any(), gomock.Any(), u.TelegramID()).Return("", errors.New("telegram down"))
	s.tap(u.TelegramID(), conversation.CallbackCheckSubscription)

	s.Equal(s.texts.Text(i18n.UzLatin, i18n.GenericError), s.outlet.last(u.TelegramID()).Text)
	s.Equal(session.StateWaitingChannelSubscription, s.stored(u.TelegramID()).State())

	vouchers, err := s.store.Reads().Vouchers().ListByOwner(s.ctx, u.TelegramID())
	s.Require().NoError(err)
	s.Empty(vouchers)
}

func (s *EngineSuite) TestSubscriptionStatuses() {
	for _, status := range []string{"administrator", "creator", "owner"} {
		s.True(conversation.IsSubscribed(status), status)
	}
	for _, status := range []string{"left", "kicked", "restricted", ""} {
		s.False(conversation.IsSubscribed(status), status)
	}
}

func (s *EngineSuite) TestForeignContactRejected() {
	u := s.seed(builder.NewSessionBuilder().WithTelegramID(7005).WithState(session.StateWaitingContact))

	s.send(conversation.Update{SenderID: u.TelegramID(), Contact: &conversation.Contact{Phone: "998907777777", UserID: 42}})

	s.Equal(session.StateWaitingContact, s.stored(u.TelegramID()).State())
	s.Equal(s.texts.Text(i18n.UzLatin, i18n.ContactRequired), s.outlet.last(u.TelegramID()).Text)
}

func (s *EngineSuite) TestStartStateRestartsOnboarding() {
	u := session.Reconstruct(session.Snapshot{
		TelegramID: 7006,
		State:      "LEGACY_STEP",
		CreatedAt:  builder.FixedNow,
		UpdatedAt:  builder.FixedNow,
	})
	_, err := s.store.Reads().Sessions().CreateIfAbsent(s.ctx, u)
	s.Require().NoError(err)

	s.say(7006, "anything")

	s.Equal(session.StateWaitingLanguage, s.stored(7006).State())
	s.Equal(s.texts.Text(i18n.UzLatin, i18n.Welcome, s.cfg.Telegram.BrandName), s.outlet.last(7006).Text)
}

func (s *EngineSuite) TestRegisteredMenu() {
	u := s.seed(builder.NewSessionBuilder().WithTelegramID(7007))
	id := u.TelegramID()
	v, err := s.vouchers.Create(s.ctx, commands.CreateVoucherRequest{OwnerID: id, Amount: 30000, Type: voucher.TypeBirthday, ValidDays: 3})
	s.Require().NoError(err)

	s.say(id, s.texts.Text(i18n.UzLatin, i18n.MenuProfile))
	profile := s.outlet.last(id).Text
	s.Contains(profile, "Ism Familiya")
	s.Contains(profile, "+998901234567")
	s.Contains(profile, "15.03.1995")
	s.Contains(profile, v.Code().String())

	s.say(id, s.texts.Text(i18n.UzLatin, i18n.MenuShop))
	shop := s.outlet.last(id)
	s.Require().Len(shop.Inline, 1)
	s.Equal(s.cfg.Telegram.ShopURL, shop.Inline[0][0].URL)

	s.say(id, s.texts.Text(i18n.UzLatin, i18n.MenuFeedback))
	s.Contains(s.outlet.last(id).Text, s.cfg.Telegram.ReviewURL)

	s.say(id, s.texts.Text(i18n.UzLatin, i18n.MenuSurvey))
	s.Contains(s.outlet.last(id).Text, s.cfg.Telegram.SurveyURL)

	s.outlet.reset()
	s.say(id, s.texts.Text(i18n.UzLatin, i18n.MenuHelp))
	s.Contains(s.outlet.last(id).Text, s.cfg.Telegram.SupportContact)
	s.Require().Len(s.outlet.adminText, 1)
	s.Contains(s.outlet.adminText[0], "7007")

	s.say(id, "/myid")
	s.Equal(s.texts.Text(i18n.UzLatin, i18n.MyID, "7007"), s.outlet.last(id).Text)

	s.say(id, "/start")
	s.True(strings.HasPrefix(s.outlet.last(id).Text, s.texts.Text(i18n.UzLatin, i18n.WelcomeBack, "Ism")))

	s.say(id, "/nope")
	s.Equal(s.texts.Text(i18n.UzLatin, i18n.UnknownCommand), s.outlet.last(id).Text)
}

func (s *EngineSuite) TestFreeTextBecomesSupportTicket() {
	u := s.seed(builder.NewSessionBuilder().WithTelegramID(7008))

	s.say(u.TelegramID(), "Ko'zoynak narxi qancha?")

	s.Equal(s.texts.Text(i18n.UzLatin, i18n.SupportTicketAccepted), s.outlet.last(u.TelegramID()).Text)
	s.Require().Len(s.outlet.adminText, 1)
	s.Contains(s.outlet.adminText[0], "Ko'zoynak narxi qancha?")
	s.Contains(s.outlet.adminText[0], "tester")
}

func (s *EngineSuite) TestCustomerCannotRunOperatorCommands() {
	u := s.seed(builder.NewSessionBuilder().WithTelegramID(7009))
	for _, cmd := range []string{"/admin", "/broadcast hi", "/senduser 1 hi", "/testnotify", "/testvouchers"} {
		s.say(u.TelegramID(), cmd)
		s.Equal(s.texts.Admin(i18n.NoAdminRights), s.outlet.last(u.TelegramID()).Text, cmd)
	}
	s.Empty(s.sweeps.runs)
}

func (s *EngineSuite) TestOperatorBroadcast() {
	s.seed(builder.NewSessionBuilder().WithTelegramID(1001))
	s.seed(builder.NewSessionBuilder().WithTelegramID(7010))
	s.seed(builder.NewSessionBuilder().WithTelegramID(7011))
	s.seed(builder.NewSessionBuilder().WithTelegramID(7012).WithState(session.StateWaitingFullName))

	s.say(1001, "/broadcast")
	s.Equal(s.texts.Admin(i18n.BroadcastUsage), s.outlet.last(1001).Text)

	s.say(1001, "/broadcast Yangi kolleksiya!")
	s.Equal("Yangi kolleksiya!", s.outlet.last(7010).Text)
	s.Equal("Yangi kolleksiya!", s.outlet.last(7011).Text)
	s.Empty(s.outlet.to(7012))

	got := s.outlet.to(1001)
	s.Require().GreaterOrEqual(len(got), 3)
	s.Equal(s.texts.Admin(i18n.BroadcastSending), got[len(got)-3].Text)
	s.Equal("Yangi kolleksiya!", got[len(got)-2].Text)
	s.Equal(s.texts.Admin(i18n.BroadcastResult, 3, 3, 0, 100.0), got[len(got)-1].Text)
}

func (s *EngineSuite) TestOperatorMediaBroadcastNeedsConfirmation() {
	s.seed(builder.NewSessionBuilder().WithTelegramID(1001))
	s.seed(builder.NewSessionBuilder().WithTelegramID(1002))
	s.seed(builder.NewSessionBuilder().WithTelegramID(7013))

	s.send(conversation.Update{SenderID: 1001, Media: &conversation.Media{ChatID: 1001, MessageID: 77}})
	confirm := s.outlet.last(1001)
	s.Equal(s.texts.Admin(i18n.BroadcastConfirm), confirm.Text)
	s.Require().Len(confirm.Inline, 1)
	s.Empty(s.outlet.copies)

	s.tap(1002, conversation.CallbackConfirmBroadcast)
	s.Equal(s.texts.Admin(i18n.BroadcastNothing), s.outlet.last(1002).Text)
	s.Empty(s.outlet.copies)

	s.tap(1001, conversation.CallbackConfirmBroadcast)
	s.ElementsMatch([]copied{
		{to: 1001, fromChat: 1001, messageID: 77},
		{to: 1002, fromChat: 1001, messageID: 77},
		{to: 7013, fromChat: 1001, messageID: 77},
	}, s.outlet.copies)

	s.tap(1001, conversation.CallbackConfirmBroadcast)
	s.Equal(s.texts.Admin(i18n.BroadcastNothing), s.outlet.last(1001).Text)
	s.Len(s.outlet.copies, 3)
}

func (s *EngineSuite) TestOperatorCancelsMediaBroadcast() {
	s.seed(builder.NewSessionBuilder().WithTelegramID(1001))
	s.seed(builder.NewSessionBuilder().WithTelegramID(7014))

	s.send(conversation.Update{SenderID: 1001, Media: &conversation.Media{ChatID: 1001, MessageID: 5}})
	s.tap(1001, conversation.CallbackCancelBroadcast)
	s.Equal(s.texts.Admin(i18n.BroadcastCancelled), s.outlet.last(1001).Text)

	s.tap(1001, conversation.CallbackConfirmBroadcast)
	s.Equal(s.texts.Admin(i18n.BroadcastNothing), s.outlet.last(1001).Text)
	s.Empty(s.outlet.copies)
}

func (s *EngineSuite) TestPendingBroadcastExpires() {
	s.seed(builder.NewSessionBuilder().WithTelegramID(1001))
	s.seed(builder.NewSessionBuilder().WithTelegramID(7015))

	s.send(conversation.Update{SenderID: 1001, Media: &conversation.Media{ChatID: 1001, MessageID: 9}})
	s.clock.Add(s.cfg.Telegram.PendingTTL + 1)
	s.tap(1001, conversation.CallbackConfirmBroadcast)

	s.Equal(s.texts.Admin(i18n.BroadcastNothing), s.outlet.last(1001).Text)
	s.Empty(s.outlet.copies)
}

func (s *EngineSuite) TestCustomerMediaForwardedToOperators() {
	u := s.seed(builder.NewSessionBuilder().WithTelegramID(7016))

	s.send(conversation.Update{SenderID: u.TelegramID(), Text: "singan oyna", Media: &conversation.Media{ChatID: 7016, MessageID: 3}})

	s.Equal([]copied{{to: 1001, fromChat: 7016, messageID: 3}, {to: 1002, fromChat: 7016, messageID: 3}}, s.outlet.copies)
	s.Require().Len(s.outlet.adminText, 1)
	s.Contains(s.outlet.adminText[0], "singan oyna")
	s.Equal(s.texts.Text(i18n.UzLatin, i18n.SupportTicketAccepted), s.outlet.last(7016).Text)
}

func (s *EngineSuite) TestOperatorTestCommands() {
	s.seed(builder.NewSessionBuilder().WithTelegramID(1001))

	s.say(1001, "/testvouchers")
	s.Equal([]string{scheduler.SweepVoucherReminders}, s.sweeps.runs)
	s.Equal(s.texts.Admin(i18n.SweepDone, "voucher-reminders 2/2"), s.outlet.last(1001).Text)

	s.sweeps.err = errors.New("boom")
	s.say(1001, "/test3day")
	s.Equal(s.texts.Admin(i18n.SweepFailed, scheduler.SweepFollowup), s.outlet.last(1001).Text)

	s.say(1001, "/testnotify")
	s.Equal(s.texts.Admin(i18n.AdminTestNotifySummary, 2), s.outlet.last(1001).Text)
}

func (s *EngineSuite) TestOperatorSendUser() {
	s.seed(builder.NewSessionBuilder().WithTelegramID(1001))

	s.say(1001, "/senduser abc hi")
	s.Equal(s.texts.Admin(i18n.SendUserUsage), s.outlet.last(1001).Text)

	s.say(1001, "/senduser 7020 Buyurtmangiz tayyor")
	s.Equal("Buyurtmangiz tayyor", s.outlet.last(7020).Text)
	s.Equal(s.texts.Admin(i18n.SendUserDone), s.outlet.last(1001).Text)
}

func (s *EngineSuite) TestAdminPanel() {
	s.seed(builder.NewSessionBuilder().WithTelegramID(1001))
	s.seed(builder.NewSessionBuilder().WithTelegramID(7021).WithState(session.StateWaitingContact))
	_, err := s.vouchers.Create(s.ctx, commands.CreateVoucherRequest{OwnerID: 1001, Amount: 1000, Type: voucher.TypeSpecial, ValidDays: 5})
	s.Require().NoError(err)

	s.say(1001, "/admin")

	s.Equal(s.texts.Admin(i18n.AdminPanel, 1, 1, 1, 0, 0), s.outlet.last(1001).Text)
}

func (s *EngineSuite) TestMissingSenderRejected() {
	err := s.engine.Handle(s.ctx, conversation.Update{ID: 1, Text: "hi"})
	s.ErrorIs(err, conversation.ErrNoSender)
}
