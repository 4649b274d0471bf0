package conversation

import (
	"context"
	"strings"

	"kuponbot/internal/domain/session"
	"kuponbot/internal/pkg/i18n"
	"kuponbot/internal/usecase/notify"
	"kuponbot/internal/usecase/shared"
)

func (e *Engine) promptLanguage(upd Update, out *outbox) {
	out.send(notify.OutboundMessage{
		ChatID: upd.replyTo(),
		Text:   e.texts.Text(i18n.UzLatin, i18n.Welcome, e.tg.BrandName),
		Reply:  &notify.ReplyKeyboard{Rows: i18n.LanguageRows(), OneTime: true},
	})
}

func (e *Engine) onLanguage(s *session.Session, upd Update, out *outbox) error {
	code, ok := i18n.LanguageButtons[strings.TrimSpace(upd.Text)]
	if !ok {
		e.promptLanguage(upd, out)
		return nil
	}
	lang, err := session.NewLanguage(code)
	if err != nil {
		return err
	}
	if err := s.ChooseLanguage(lang, e.clock.Now()); err != nil {
		return err
	}
	e.promptContact(s, upd, i18n.ContactRequest, out)
	return nil
}

func (e *Engine) promptContact(s *session.Session, upd Update, key i18n.Key, out *outbox) {
	out.send(notify.OutboundMessage{
		ChatID: upd.replyTo(),
		Text:   e.text(s, key),
		Reply: &notify.ReplyKeyboard{
			Rows:           [][]string{{e.text(s, i18n.ContactButton)}},
			RequestContact: true,
			OneTime:        true,
		},
	})
}

// onContact accepts only a contact card shared by its own owner.
func (e *Engine) onContact(s *session.Session, upd Update, out *outbox) error {
	if !upd.IsContact() || (upd.Contact.UserID != 0 && upd.Contact.UserID != s.TelegramID()) {
		e.promptContact(s, upd, i18n.ContactRequired, out)
		return nil
	}
	phone, err := session.NewPhone(upd.Contact.Phone)
	if err != nil {
		e.promptContact(s, upd, i18n.ContactRequired, out)
		return nil
	}
	if err := s.ShareContact(phone, e.clock.Now()); err != nil {
		return err
	}
	out.send(notify.OutboundMessage{
		ChatID:         upd.replyTo(),
		Text:           e.text(s, i18n.ContactAccepted),
		RemoveKeyboard: true,
	})
	return nil
}

func (e *Engine) onFullName(s *session.Session, upd Update, out *outbox) error {
	if !upd.HasText() {
		out.text(upd.replyTo(), e.text(s, i18n.TextRequired))
		return nil
	}
	text := strings.TrimSpace(upd.Text)
	if strings.HasPrefix(text, "/") {
		out.text(upd.replyTo(), e.text(s, i18n.FullNameInvalid))
		return nil
	}
	name, err := session.NewFullName(text)
	if err != nil {
		out.text(upd.replyTo(), e.text(s, i18n.FullNameInvalid))
		return nil
	}
	if err := s.SetFullName(name, e.clock.Now()); err != nil {
		return err
	}
	out.text(upd.replyTo(), e.text(s, i18n.FullNameAccepted))
	return nil
}

func (e *Engine) onBirthDate(s *session.Session, upd Update, out *outbox) error {
	if !upd.HasText() {
		out.text(upd.replyTo(), e.text(s, i18n.TextRequired))
		return nil
	}
	now := e.clock.Now()
	bd, err := session.ParseBirthDate(upd.Text, now.In(e.loc))
	if err != nil {
		out.text(upd.replyTo(), e.text(s, i18n.BirthDateInvalid))
		return nil
	}
	if err := s.SetBirthDate(bd, now); err != nil {
		return err
	}
	e.promptSubscribe(s, upd, e.text(s, i18n.SubscribePrompt, e.tg.ChannelUsername), out)
	return nil
}

func (e *Engine) promptSubscribe(s *session.Session, upd Update, text string, out *outbox) {
	out.send(notify.OutboundMessage{
		ChatID: upd.replyTo(),
		Text:   text,
		Inline: [][]notify.InlineButton{
			{{Text: e.text(s, i18n.SubscribeButton), URL: channelURL(e.tg.ChannelUsername)}},
			{{Text: e.text(s, i18n.CheckSubscription), Data: CallbackCheckSubscription}},
		},
	})
}

// onSubscription completes registration once the verify trigger confirms
// channel membership. The welcome voucher is issued in the same transaction.
func (e *Engine) onSubscription(
	ctx context.Context,
	tx shared.Tx,
	s *session.Session,
	upd Update,
	check membership,
	out *outbox,
) error {
	if !upd.IsCallback(CallbackCheckSubscription) {
		e.promptSubscribe(s, upd, e.text(s, i18n.SubscribeFirst), out)
		return nil
	}
	out.answer(upd.Callback.ID, e.text(s, i18n.CheckingSubscription))

	if !check.checked || check.err != nil {
		out.text(upd.replyTo(), e.text(s, i18n.GenericError))
		return nil
	}
	if !IsSubscribed(check.status) {
		e.promptSubscribe(s, upd, e.text(s, i18n.NotSubscribed), out)
		return nil
	}

	if err := s.CompleteRegistration(e.clock.Now()); err != nil {
		return err
	}
	v, err := e.vouchers.IssueWelcome(ctx, tx, s.TelegramID())
	if err != nil {
		return err
	}

	out.send(notify.OutboundMessage{
		ChatID: upd.replyTo(),
		Text: e.text(s, i18n.RegistrationComplete,
			s.FullName().FirstName(), v.Code().String(), v.Amount(), e.policy.WelcomeValidDays),
		Reply: e.menu(s),
	})
	c := notify.CardOf(s)
	out.toAdmins(e.texts.Admin(i18n.AdminNewRegistration, c.Name, c.Handle, c.ID, c.Phone, v.Code().String()))
	out.registered = true
	return nil
}
