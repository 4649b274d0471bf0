package conversation

import (
	"context"
	"strconv"
	"strings"

	"kuponbot/internal/domain/session"
	"kuponbot/internal/domain/voucher"
	"kuponbot/internal/pkg/i18n"
	"kuponbot/internal/usecase/broadcast"
	"kuponbot/internal/usecase/notify"
	"kuponbot/internal/usecase/queries"
	"kuponbot/internal/usecase/scheduler"
	"kuponbot/internal/usecase/shared"
)

// testSweeps maps operator test commands to the sweep they trigger.
var testSweeps = map[string]string{
	"/test3day":        scheduler.SweepFollowup,
	"/testanniversary": scheduler.SweepAnniversary,
	"/testbirthday":    scheduler.SweepBirthdayVouchers,
	"/testreminder":    scheduler.SweepBirthdayReminder,
	"/testvouchers":    scheduler.SweepVoucherReminders,
}

func (e *Engine) onRegistered(ctx context.Context, tx shared.Tx, s *session.Session, upd Update, out *outbox) error {
	switch {
	case upd.Callback != nil:
		e.onRegisteredCallback(s, upd, out)
		return nil
	case upd.Media != nil:
		e.onMedia(s, upd, out)
		return nil
	}

	if name, args := upd.command(); name != "" {
		return e.onCommand(ctx, tx, s, upd, name, args, out)
	}
	if key, ok := e.texts.MenuAction(strings.TrimSpace(upd.Text)); ok {
		return e.onMenu(ctx, tx, s, upd, key, out)
	}
	if !upd.HasText() || s.Can(session.PermReceiveAlerts) {
		out.text(upd.replyTo(), e.text(s, i18n.UnknownCommand))
		return nil
	}

	c := notify.CardOf(s)
	out.toAdmins(e.texts.Admin(i18n.AdminSupportTicket, c.Name, c.Handle, c.ID, c.Phone, strings.TrimSpace(upd.Text)))
	out.text(upd.replyTo(), e.text(s, i18n.SupportTicketAccepted))
	return nil
}

func (e *Engine) onMenu(ctx context.Context, tx shared.Tx, s *session.Session, upd Update, key i18n.Key, out *outbox) error {
	chatID := upd.replyTo()
	switch key {
	case i18n.MenuShop:
		out.send(notify.OutboundMessage{
			ChatID: chatID,
			Text:   e.text(s, i18n.ShopPrompt),
			Inline: [][]notify.InlineButton{{{Text: e.text(s, i18n.ShopButton, e.tg.BrandName), URL: e.tg.ShopURL}}},
		})
	case i18n.MenuProfile:
		text, err := e.profile(ctx, tx, s)
		if err != nil {
			return err
		}
		out.send(notify.OutboundMessage{ChatID: chatID, Text: text, Reply: e.menu(s)})
	case i18n.MenuFeedback:
		out.text(chatID, e.text(s, i18n.Feedback, e.tg.ReviewURL))
	case i18n.MenuSurvey:
		out.text(chatID, e.text(s, i18n.Survey, e.tg.SurveyURL))
	case i18n.MenuHelp:
		out.text(chatID, e.text(s, i18n.Help, e.tg.SupportContact))
		c := notify.CardOf(s)
		out.toAdmins(e.texts.Admin(i18n.AdminHelpRequested, c.Name, c.Handle, c.ID, c.Phone))
	}
	return nil
}

func (e *Engine) profile(ctx context.Context, tx shared.Tx, s *session.Session) (string, error) {
	vouchers, err := tx.Vouchers().ListByOwner(ctx, s.TelegramID())
	if err != nil {
		return "", err
	}
	view := queries.ProfileView{Session: s, Vouchers: vouchers}

	birth := e.text(s, i18n.NotProvided)
	if !s.BirthDate().IsZero() {
		birth = s.BirthDate().String()
	}
	var b strings.Builder
	b.WriteString(e.text(s, i18n.Profile, s.FullName().Value(), s.Phone().Value(), birth, s.CashbackBalance()))

	active := view.Active()
	if len(active) == 0 {
		b.WriteString(e.text(s, i18n.ProfileNoVouchers))
		return b.String(), nil
	}
	b.WriteString(e.text(s, i18n.ProfileVouchers))
	now := e.clock.Now()
	for _, v := range active {
		left := e.text(s, i18n.ExpiresToday)
		if days := v.DaysUntilExpiry(now); days > 0 {
			left = e.text(s, i18n.DaysLeft, days)
		}
		b.WriteString(e.text(s, i18n.ProfileVoucherLine, e.text(s, voucherLabel(v.Type())), v.Code().String(), v.Amount(), left))
	}
	return b.String(), nil
}

func voucherLabel(t voucher.Type) i18n.Key {
	switch t {
	case voucher.TypeBirthday:
		return i18n.VoucherBirthday
	case voucher.TypeAnniversary:
		return i18n.VoucherAnniversary
	default:
		return i18n.VoucherSpecial
	}
}

func (e *Engine) onCommand(
	ctx context.Context,
	tx shared.Tx,
	s *session.Session,
	upd Update,
	name, args string,
	out *outbox,
) error {
	chatID := upd.replyTo()
	switch name {
	case "/start":
		out.send(notify.OutboundMessage{
			ChatID: chatID,
			Text:   e.text(s, i18n.WelcomeBack, s.FullName().FirstName()) + "\n\n" + e.text(s, i18n.MainMenuPrompt),
			Reply:  e.menu(s),
		})
		return nil
	case "/myid":
		out.text(chatID, e.text(s, i18n.MyID, strconv.FormatInt(s.TelegramID(), 10)))
		return nil
	case "/admin":
		if !e.allowed(s, upd, session.PermManageVouchers, out) {
			return nil
		}
		return e.adminPanel(ctx, tx, chatID, out)
	case "/broadcast":
		if !e.allowed(s, upd, session.PermBroadcast, out) {
			return nil
		}
		if args == "" {
			out.text(chatID, e.texts.Admin(i18n.BroadcastUsage))
			return nil
		}
		out.later(func(ctx context.Context) {
			e.runBroadcast(ctx, chatID, func(ctx context.Context) (broadcast.Result, error) {
				return e.broadcaster.Broadcast(ctx, args)
			})
		})
		return nil
	case "/senduser":
		if !e.allowed(s, upd, session.PermSendDirect, out) {
			return nil
		}
		e.sendUser(chatID, args, out)
		return nil
	case "/testnotify":
		if !e.allowed(s, upd, session.PermReceiveAlerts, out) {
			return nil
		}
		out.later(func(ctx context.Context) {
			n := e.outlet.ToAdmins(ctx, e.texts.Admin(i18n.AdminTestNotification))
			e.outlet.ToUser(ctx, chatID, e.texts.Admin(i18n.AdminTestNotifySummary, n))
		})
		return nil
	}

	if sweep, ok := testSweeps[name]; ok {
		if !e.allowed(s, upd, session.PermRunSweeps, out) {
			return nil
		}
		out.later(func(ctx context.Context) {
			rep, err := e.sweeps.Run(ctx, sweep)
			if err != nil {
				e.outlet.ToUser(ctx, chatID, e.texts.Admin(i18n.SweepFailed, sweep))
				return
			}
			e.outlet.ToUser(ctx, chatID, e.texts.Admin(i18n.SweepDone, reportLine(rep)))
		})
		return nil
	}

	out.text(chatID, e.text(s, i18n.UnknownCommand))
	return nil
}

func (e *Engine) allowed(s *session.Session, upd Update, p session.Permission, out *outbox) bool {
	if s.Can(p) {
		return true
	}
	out.text(upd.replyTo(), e.texts.Admin(i18n.NoAdminRights))
	return false
}

func (e *Engine) adminPanel(ctx context.Context, tx shared.Tx, chatID int64, out *outbox) error {
	sessions, err := tx.Sessions().CountByState(ctx)
	if err != nil {
		return err
	}
	vouchers, err := tx.Vouchers().CountByStatus(ctx)
	if err != nil {
		return err
	}
	view := queries.OverviewView{Sessions: sessions, Vouchers: vouchers}

	text := e.texts.Admin(i18n.AdminPanel,
		view.Registered(), view.Onboarding(),
		vouchers[voucher.StatusActive], vouchers[voucher.StatusUsed], vouchers[voucher.StatusExpired])
	if e.tg.AdminPanelURL != "" {
		text += e.texts.Admin(i18n.AdminPanelLink, e.tg.AdminPanelURL)
	}
	out.text(chatID, text)
	return nil
}

// sendUser parses "<telegram_id> <text>".
func (e *Engine) sendUser(chatID int64, args string, out *outbox) {
	rawID, text, _ := strings.Cut(args, " ")
	target, err := strconv.ParseInt(rawID, 10, 64)
	text = strings.TrimSpace(text)
	if err != nil || target <= 0 || text == "" {
		out.text(chatID, e.texts.Admin(i18n.SendUserUsage))
		return
	}
	out.later(func(ctx context.Context) {
		if e.broadcaster.SendSingle(ctx, target, text) {
			e.outlet.ToUser(ctx, chatID, e.texts.Admin(i18n.SendUserDone))
			return
		}
		e.outlet.ToUser(ctx, chatID, e.texts.Admin(i18n.SendUserFailed))
	})
}

func (e *Engine) runBroadcast(ctx context.Context, chatID int64, run func(ctx context.Context) (broadcast.Result, error)) {
	e.outlet.ToUser(ctx, chatID, e.texts.Admin(i18n.BroadcastSending))

	res, err := run(ctx)
	if err != nil {
		e.logger.ErrorContext(ctx, "broadcast failed", "error", err)
		e.outlet.ToUser(ctx, chatID, e.texts.Text(i18n.UzLatin, i18n.GenericError))
		return
	}
	e.outlet.ToUser(ctx, chatID, e.texts.Admin(i18n.BroadcastResult, res.Total, res.Success, res.Failure, res.SuccessRate()))
}

// onMedia stages an operator post for confirmation; customer media is
// forwarded to operators as a support ticket.
func (e *Engine) onMedia(s *session.Session, upd Update, out *outbox) {
	chatID := upd.replyTo()
	if s.Can(session.PermBroadcast) {
		e.pending.stage(s.TelegramID(), broadcast.MediaRef{FromChatID: upd.Media.ChatID, MessageID: upd.Media.MessageID}, e.clock.Now())
		out.send(notify.OutboundMessage{
			ChatID: chatID,
			Text:   e.texts.Admin(i18n.BroadcastConfirm),
			Inline: [][]notify.InlineButton{{
				{Text: e.texts.Admin(i18n.BroadcastYes), Data: CallbackConfirmBroadcast},
				{Text: e.texts.Admin(i18n.BroadcastNo), Data: CallbackCancelBroadcast},
			}},
		})
		return
	}

	caption := strings.TrimSpace(upd.Text)
	if caption == "" {
		caption = "-"
	}
	c := notify.CardOf(s)
	out.toAdmins(e.texts.Admin(i18n.AdminSupportTicket, c.Name, c.Handle, c.ID, c.Phone, caption))
	out.copyToAdmins(upd.Media.ChatID, upd.Media.MessageID)
	out.text(chatID, e.text(s, i18n.SupportTicketAccepted))
}

func (e *Engine) onRegisteredCallback(s *session.Session, upd Update, out *outbox) {
	chatID := upd.replyTo()
	operator := s.TelegramID()
	switch upd.Callback.Data {
	case CallbackConfirmBroadcast:
		if !e.allowed(s, upd, session.PermBroadcast, out) {
			return
		}
		out.later(func(ctx context.Context) {
			ref, ok := e.pending.take(operator, e.clock.Now())
			if !ok {
				e.outlet.ToUser(ctx, chatID, e.texts.Admin(i18n.BroadcastNothing))
				return
			}
			e.runBroadcast(ctx, chatID, func(ctx context.Context) (broadcast.Result, error) {
				return e.broadcaster.BroadcastMedia(ctx, ref)
			})
		})
	case CallbackCancelBroadcast:
		if !e.allowed(s, upd, session.PermBroadcast, out) {
			return
		}
		out.later(func(ctx context.Context) {
			if e.pending.drop(operator) {
				e.outlet.ToUser(ctx, chatID, e.texts.Admin(i18n.BroadcastCancelled))
				return
			}
			e.outlet.ToUser(ctx, chatID, e.texts.Admin(i18n.BroadcastNothing))
		})
	case CallbackCheckSubscription:
		out.send(notify.OutboundMessage{ChatID: chatID, Text: e.text(s, i18n.MainMenuPrompt), Reply: e.menu(s)})
	}
}

func reportLine(r scheduler.Report) string {
	line := r.Sweep + " " + strconv.Itoa(r.Notified) + "/" + strconv.Itoa(r.Matched)
	if r.Skipped > 0 {
		line += ", skipped " + strconv.Itoa(r.Skipped)
	}
	if r.Expired > 0 {
		line += ", expired " + strconv.FormatInt(r.Expired, 10)
	}
	return line
}
