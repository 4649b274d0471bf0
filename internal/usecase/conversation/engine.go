// Package conversation drives the onboarding state machine and the
// registered-user menu. Each update is processed under a per-identity lock
// inside one unit of work; replies are collected and sent only after commit.
package conversation

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"kuponbot/internal/domain/session"
	"kuponbot/internal/infra/metrics"
	"kuponbot/internal/pkg/clock"
	"kuponbot/internal/pkg/config"
	"kuponbot/internal/pkg/errs"
	"kuponbot/internal/pkg/i18n"
	"kuponbot/internal/pkg/keylock"
	"kuponbot/internal/usecase/broadcast"
	"kuponbot/internal/usecase/commands"
	"kuponbot/internal/usecase/notify"
	"kuponbot/internal/usecase/scheduler"
	"kuponbot/internal/usecase/shared"
)

var ErrNoSender = errs.Mark(errs.New("update has no sender"), errs.ErrValidation)

const (
	outcomeHandled   = "handled"
	outcomeDuplicate = "duplicate"
	outcomeFailed    = "failed"
)

// Outlet delivers replies; *notify.Dispatcher satisfies it.
type Outlet interface {
	Send(ctx context.Context, msg notify.OutboundMessage) bool
	ToUser(ctx context.Context, chatID int64, text string) bool
	Copy(ctx context.Context, to, fromChat int64, messageID int) bool
	ToAdmins(ctx context.Context, text string) int
	AnswerCallback(ctx context.Context, callbackID, text string)
	Admins() []int64
}

type Engine struct {
	uow         shared.UnitOfWork
	vouchers    commands.VoucherCommands
	outlet      Outlet
	membership  notify.MembershipChecker
	broadcaster broadcast.Broadcaster
	sweeps      scheduler.SweepRunner
	roles       session.RoleResolver
	texts       *i18n.Bundle
	clock       clock.Clock
	tg          config.TelegramConfig
	policy      config.VoucherConfig
	loc         *time.Location
	locks       *keylock.Locker[int64]
	pending     *pendingSlots
	tasks       sync.WaitGroup
	logger      *slog.Logger
}

func NewEngine(
	uow shared.UnitOfWork,
	vouchers commands.VoucherCommands,
	outlet Outlet,
	membership notify.MembershipChecker,
	broadcaster broadcast.Broadcaster,
	sweeps scheduler.SweepRunner,
	roles session.RoleResolver,
	texts *i18n.Bundle,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		uow:         uow,
		vouchers:    vouchers,
		outlet:      outlet,
		membership:  membership,
		broadcaster: broadcaster,
		sweeps:      sweeps,
		roles:       roles,
		texts:       texts,
		clock:       clk,
		tg:          cfg.Telegram,
		policy:      cfg.Voucher,
		loc:         cfg.Scheduler.Location(),
		locks:       keylock.New[int64](),
		pending:     newPendingSlots(cfg.Telegram.PendingTTL),
		logger:      logger,
	}
}

// Handle processes one update. Replies go out after the session is
// persisted and the identity lock is released.
func (e *Engine) Handle(ctx context.Context, upd Update) error {
	if upd.SenderID == 0 {
		return ErrNoSender
	}

	unlock := e.locks.Lock(upd.SenderID)
	out, lang, outcome, err := e.process(ctx, upd)
	unlock()

	metrics.UpdatesProcessed.WithLabelValues(outcome).Inc()
	if err != nil {
		e.logger.ErrorContext(ctx, "failed to process update",
			"telegram_id", upd.SenderID, "update_id", upd.ID, "error", err)
		if upd.Callback != nil {
			e.outlet.AnswerCallback(ctx, upd.Callback.ID, "")
		}
		e.outlet.ToUser(ctx, upd.replyTo(), e.texts.Text(lang, i18n.GenericError))
		return err
	}

	e.flush(ctx, out)
	return nil
}

// Wait blocks until background operator tasks finish.
func (e *Engine) Wait() {
	e.tasks.Wait()
}

func (e *Engine) process(ctx context.Context, upd Update) (*outbox, string, string, error) {
	check, err := e.precheck(ctx, upd)
	if err != nil {
		return nil, "", outcomeFailed, err
	}

	out := &outbox{}
	lang := ""
	outcome := outcomeHandled
	err = e.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		out.reset()
		outcome = outcomeHandled
		if upd.Callback != nil {
			out.answer(upd.Callback.ID, "")
		}

		s, fresh, err := e.loadOrCreate(ctx, tx, upd)
		if err != nil {
			return err
		}
		lang = s.Language().String()
		if !s.AcceptUpdate(upd.ID) {
			outcome = outcomeDuplicate
			return nil
		}

		now := e.clock.Now()
		s.ApplyRole(e.roles.RoleFor(s.TelegramID()))
		s.UpdateUsername(upd.Username, now)
		if err := e.dispatch(ctx, tx, s, upd, fresh, check, out); err != nil {
			return err
		}
		lang = s.Language().String()
		return tx.Sessions().Save(ctx, s)
	})
	if err != nil {
		return nil, lang, outcomeFailed, err
	}
	return out, lang, outcome, nil
}

func (e *Engine) loadOrCreate(ctx context.Context, tx shared.Tx, upd Update) (*session.Session, bool, error) {
	s, err := tx.Sessions().LockForUpdate(ctx, upd.SenderID)
	if err == nil {
		return s, false, nil
	}
	if !errs.Is(err, errs.ErrNotFound) {
		return nil, false, err
	}

	fresh := session.New(upd.SenderID, upd.Username, e.roles.RoleFor(upd.SenderID), e.clock.Now())
	created, err := tx.Sessions().CreateIfAbsent(ctx, fresh)
	if err != nil {
		return nil, false, err
	}
	s, err = tx.Sessions().LockForUpdate(ctx, upd.SenderID)
	if err != nil {
		return nil, false, errs.Wrap(err, "reload created session")
	}
	return s, created, nil
}

type membership struct {
	checked bool
	status  string
	err     error
}

// precheck calls the membership collaborator before the transaction opens,
// only for a verify callback from an identity waiting on its subscription.
func (e *Engine) precheck(ctx context.Context, upd Update) (membership, error) {
	if !upd.IsCallback(CallbackCheckSubscription) {
		return membership{}, nil
	}
	s, err := e.uow.Reads().Sessions().FindByTelegramID(ctx, upd.SenderID)
	if errs.Is(err, errs.ErrNotFound) {
		return membership{}, nil
	}
	if err != nil {
		return membership{}, err
	}
	if s.State() != session.StateWaitingChannelSubscription || (upd.ID != 0 && upd.ID <= s.LastUpdateID()) {
		return membership{}, nil
	}

	status, err := e.membership.MemberStatus(ctx, e.tg.ChannelID, upd.SenderID)
	if err != nil {
		e.logger.WarnContext(ctx, "membership check failed", "telegram_id", upd.SenderID, "error", err)
		return membership{checked: true, err: err}, nil
	}
	return membership{checked: true, status: status}, nil
}

func (e *Engine) dispatch(
	ctx context.Context,
	tx shared.Tx,
	s *session.Session,
	upd Update,
	fresh bool,
	check membership,
	out *outbox,
) error {
	now := e.clock.Now()
	if s.Recovered() {
		e.logger.WarnContext(ctx, "resetting session with unknown state", "telegram_id", s.TelegramID())
		s.ResetToStart(now)
	}
	if s.State() == session.StateStart {
		if err := s.BeginOnboarding(now); err != nil {
			return err
		}
		e.promptLanguage(upd, out)
		return nil
	}
	if fresh {
		e.promptLanguage(upd, out)
		return nil
	}

	switch s.State() {
	case session.StateWaitingLanguage:
		return e.onLanguage(s, upd, out)
	case session.StateWaitingContact:
		return e.onContact(s, upd, out)
	case session.StateWaitingFullName:
		return e.onFullName(s, upd, out)
	case session.StateWaitingBirthDate:
		return e.onBirthDate(s, upd, out)
	case session.StateWaitingChannelSubscription:
		return e.onSubscription(ctx, tx, s, upd, check, out)
	case session.StateRegistered:
		return e.onRegistered(ctx, tx, s, upd, out)
	}
	return nil
}

func (e *Engine) flush(ctx context.Context, out *outbox) {
	if out.answerPending {
		e.outlet.AnswerCallback(ctx, out.callbackID, out.callbackText)
	}
	for _, msg := range out.messages {
		e.outlet.Send(ctx, msg)
	}
	for _, text := range out.adminTexts {
		e.outlet.ToAdmins(ctx, text)
	}
	for _, c := range out.adminCopies {
		for _, admin := range e.outlet.Admins() {
			e.outlet.Copy(ctx, admin, c.fromChat, c.messageID)
		}
	}
	if out.registered {
		metrics.Registrations.Inc()
	}
	for _, task := range out.tasks {
		e.spawn(ctx, task)
	}
}

// spawn runs an operator task detached from the update's cancellation.
func (e *Engine) spawn(ctx context.Context, task func(ctx context.Context)) {
	ctx = context.WithoutCancel(ctx)
	e.tasks.Add(1)
	go func() {
		defer e.tasks.Done()
		task(ctx)
	}()
}

func (e *Engine) text(s *session.Session, key i18n.Key, args ...any) string {
	return e.texts.Text(s.Language().String(), key, args...)
}

func (e *Engine) menu(s *session.Session) *notify.ReplyKeyboard {
	return &notify.ReplyKeyboard{Rows: e.texts.MenuLabels(s.Language().String())}
}

func channelURL(username string) string {
	return "https://t.me/" + strings.TrimPrefix(username, "@")
}
