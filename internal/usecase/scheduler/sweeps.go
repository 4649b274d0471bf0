// Package scheduler runs the time-driven sweeps. Every per-user trigger is
// deduplicated through a persisted marker written only after the message
// was delivered, so overlapping or repeated runs notify at most once.
package scheduler

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"kuponbot/internal/domain/session"
	"kuponbot/internal/domain/voucher"
	"kuponbot/internal/infra/metrics"
	"kuponbot/internal/pkg/clock"
	"kuponbot/internal/pkg/config"
	"kuponbot/internal/pkg/errs"
	"kuponbot/internal/pkg/i18n"
	"kuponbot/internal/usecase/commands"
	"kuponbot/internal/usecase/notify"
	"kuponbot/internal/usecase/shared"
)

const (
	SweepFollowup         = "registration-followup"
	SweepAnniversary      = "anniversary"
	SweepBirthdayReminder = "birthday-reminder"
	SweepBirthdayVouchers = "birthday-vouchers"
	SweepVoucherReminders = "voucher-reminders"
)

var ErrUnknownSweep = errs.Mark(errs.New("unknown sweep"), errs.ErrValidation)

// SweepRunner runs one named sweep on demand.
type SweepRunner interface {
	Run(ctx context.Context, name string) (Report, error)
}

var _ SweepRunner = (*Service)(nil)

type Notifier interface {
	ToUser(ctx context.Context, chatID int64, text string) bool
	ToAdmins(ctx context.Context, text string) int
}

// Report summarizes one sweep run.
type Report struct {
	Sweep    string
	Matched  int
	Notified int
	Skipped  int
	// Expired is set by the voucher sweep only.
	Expired int64
}

type Service struct {
	uow      shared.UnitOfWork
	vouchers commands.VoucherCommands
	notifier Notifier
	texts    *i18n.Bundle
	clock    clock.Clock
	cfg      config.SchedulerConfig
	policy   config.VoucherConfig
	loc      *time.Location
	logger   *slog.Logger
}

func NewService(
	uow shared.UnitOfWork,
	vouchers commands.VoucherCommands,
	notifier Notifier,
	texts *i18n.Bundle,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:      uow,
		vouchers: vouchers,
		notifier: notifier,
		texts:    texts,
		clock:    clk,
		cfg:      cfg.Scheduler,
		policy:   cfg.Voucher,
		loc:      cfg.Scheduler.Location(),
		logger:   logger,
	}
}

func Names() []string {
	return []string{SweepFollowup, SweepAnniversary, SweepBirthdayReminder, SweepBirthdayVouchers, SweepVoucherReminders}
}

// Run executes one sweep by name; used by the cron runner and on demand.
func (s *Service) Run(ctx context.Context, name string) (Report, error) {
	var sweep func(context.Context) (Report, error)
	switch name {
	case SweepFollowup:
		sweep = s.RegistrationFollowup
	case SweepAnniversary:
		sweep = s.Anniversary
	case SweepBirthdayReminder:
		sweep = s.BirthdayReminders
	case SweepBirthdayVouchers:
		sweep = s.BirthdayVouchers
	case SweepVoucherReminders:
		sweep = s.VoucherReminders
	default:
		return Report{}, errs.Wrapf(ErrUnknownSweep, "sweep %q", name)
	}

	started := time.Now()
	rep, err := sweep(ctx)
	rep.Sweep = name
	metrics.SweepDuration.WithLabelValues(name).Observe(time.Since(started).Seconds())
	metrics.SweepRuns.WithLabelValues(name, metrics.ResultLabel(err == nil)).Inc()
	metrics.SweepNotifications.WithLabelValues(name).Add(float64(rep.Notified))
	metrics.SweepSkippedRecords.WithLabelValues(name).Add(float64(rep.Skipped))
	if err != nil {
		s.logger.ErrorContext(ctx, "sweep failed", "sweep", name, "error", err)
		return rep, err
	}
	s.logger.InfoContext(ctx, "sweep finished",
		"sweep", name,
		"matched", rep.Matched,
		"notified", rep.Notified,
		"skipped", rep.Skipped,
		"expired", rep.Expired,
	)
	return rep, nil
}

func (s *Service) now() time.Time {
	return s.clock.Now().In(s.loc)
}

func (s *Service) seen(ctx context.Context, m shared.Marker) (bool, error) {
	return s.uow.Reads().Markers().Exists(ctx, m)
}

func (s *Service) mark(ctx context.Context, m shared.Marker) {
	if err := s.uow.Reads().Markers().Mark(ctx, m, s.clock.Now()); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist notification marker", "marker", m.String(), "error", err)
	}
}

// RegistrationFollowup alerts operators once per customer who crossed the
// follow-up age within the lookback. The bracket overlaps previous runs so a
// late or skipped tick leaves no gap; the marker keeps the alert single.
func (s *Service) RegistrationFollowup(ctx context.Context) (Report, error) {
	w := Trailing(s.now(), s.cfg.FollowupAfter, max(s.cfg.FollowupLookback, s.cfg.FollowupInterval))
	users, err := s.uow.Reads().Sessions().ListRegisteredCreatedBetween(ctx, w.After, w.UpTo)
	if err != nil {
		return Report{}, err
	}

	rep := Report{Matched: len(users)}
	days := int(s.cfg.FollowupAfter / (24 * time.Hour))
	for _, u := range users {
		m := shared.Marker{Kind: shared.MarkerRegistrationFollowup, TelegramID: u.TelegramID(), WindowKey: "once"}
		done, err := s.seen(ctx, m)
		if err != nil {
			return rep, err
		}
		if done {
			continue
		}
		c := notify.CardOf(u)
		text := s.texts.Admin(i18n.AdminFollowup, days, c.Name, c.Handle, c.ID, c.Phone)
		if s.notifier.ToAdmins(ctx, text) == 0 {
			continue
		}
		s.mark(ctx, m)
		rep.Notified++
	}
	return rep, nil
}

// Anniversary sends operators one digest of customers registered exactly
// AnniversaryMonths ago and, when configured, gifts each of them a voucher.
func (s *Service) Anniversary(ctx context.Context) (Report, error) {
	now := s.now()
	w := MonthsAgo(now, s.cfg.AnniversaryMonths)
	users, err := s.uow.Reads().Sessions().ListRegisteredCreatedBetween(ctx, w.After, w.UpTo)
	if err != nil {
		return Report{}, err
	}

	rep := Report{Matched: len(users)}
	windowKey := strconv.Itoa(s.cfg.AnniversaryMonths) + "m"
	var due []*session.Session
	for _, u := range users {
		m := shared.Marker{Kind: shared.MarkerAnniversary, TelegramID: u.TelegramID(), WindowKey: windowKey}
		done, err := s.seen(ctx, m)
		if err != nil {
			return rep, err
		}
		if !done {
			due = append(due, u)
		}
	}
	if len(due) == 0 {
		return rep, nil
	}

	if s.policy.AnniversaryAmount > 0 {
		for _, u := range due {
			s.giftAnniversary(ctx, u)
		}
	}

	var b strings.Builder
	b.WriteString(s.texts.Admin(i18n.AdminAnniversary, s.cfg.AnniversaryMonths, len(due)))
	for _, u := range due {
		c := notify.CardOf(u)
		b.WriteString(s.texts.Admin(i18n.AdminAnniversaryLine, c.Name, c.Phone, c.ID))
	}
	if s.notifier.ToAdmins(ctx, b.String()) == 0 {
		return rep, nil
	}
	for _, u := range due {
		s.mark(ctx, shared.Marker{Kind: shared.MarkerAnniversary, TelegramID: u.TelegramID(), WindowKey: windowKey})
		rep.Notified++
	}
	return rep, nil
}

func (s *Service) giftAnniversary(ctx context.Context, u *session.Session) {
	since := clock.StartOfDay(s.now())
	v, err := s.uow.Reads().Vouchers().FindLatestByOwnerAndType(ctx, u.TelegramID(), voucher.TypeAnniversary, since)
	if err != nil && !errs.Is(err, errs.ErrNotFound) {
		s.logger.ErrorContext(ctx, "failed to look up anniversary voucher", "telegram_id", u.TelegramID(), "error", err)
		return
	}
	if v == nil {
		v, err = s.vouchers.Create(ctx, commands.CreateVoucherRequest{
			OwnerID:   u.TelegramID(),
			Amount:    s.policy.AnniversaryAmount,
			Type:      voucher.TypeAnniversary,
			ValidDays: s.policy.AnniversaryValidDays,
		})
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to issue anniversary voucher", "telegram_id", u.TelegramID(), "error", err)
			return
		}
	}
	lang := u.Language().String()
	s.notifier.ToUser(ctx, u.TelegramID(), s.texts.Text(lang, i18n.AnniversaryGift,
		s.cfg.AnniversaryMonths, v.Code().String(), v.Amount(), s.policy.AnniversaryValidDays))
}

type birthdayMatch struct {
	session   *session.Session
	birthDate session.BirthDate
}

// birthdaysOn lists customers whose birthday falls on day. Rows with an
// unparseable birth date are logged and counted as skipped.
func (s *Service) birthdaysOn(ctx context.Context, day time.Time, rep *Report) ([]birthdayMatch, error) {
	candidates, err := s.uow.Reads().Sessions().ListBirthdayCandidates(ctx)
	if err != nil {
		return nil, err
	}
	var out []birthdayMatch
	for _, c := range candidates {
		bd, err := session.ReconstructBirthDate(c.RawBirthDate)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping unparseable birth date",
				"telegram_id", c.Session.TelegramID(), "birth_date", c.RawBirthDate, "error", err)
			rep.Skipped++
			continue
		}
		if bd.FallsOn(day) {
			out = append(out, birthdayMatch{session: c.Session, birthDate: bd})
		}
	}
	rep.Matched = len(out)
	return out, nil
}

func (s *Service) BirthdayReminders(ctx context.Context) (Report, error) {
	tomorrow := s.now().AddDate(0, 0, 1)
	var rep Report
	matches, err := s.birthdaysOn(ctx, tomorrow, &rep)
	if err != nil {
		return rep, err
	}
	for _, bm := range matches {
		u := bm.session
		m := shared.Marker{Kind: shared.MarkerBirthdayReminder, TelegramID: u.TelegramID(), WindowKey: YearKey(tomorrow)}
		done, err := s.seen(ctx, m)
		if err != nil {
			return rep, err
		}
		if done {
			continue
		}
		text := s.texts.Text(u.Language().String(), i18n.BirthdayReminder, u.FullName().FirstName())
		if !s.notifier.ToUser(ctx, u.TelegramID(), text) {
			continue
		}
		s.mark(ctx, m)
		rep.Notified++
	}
	return rep, nil
}

// BirthdayVouchers issues one BIRTHDAY voucher per customer per year. A voucher
// already issued today is reused, so a re-run after a failed send never issues twice.
func (s *Service) BirthdayVouchers(ctx context.Context) (Report, error) {
	today := s.now()
	var rep Report
	matches, err := s.birthdaysOn(ctx, today, &rep)
	if err != nil {
		return rep, err
	}
	for _, bm := range matches {
		u := bm.session
		m := shared.Marker{Kind: shared.MarkerBirthdayVoucher, TelegramID: u.TelegramID(), WindowKey: YearKey(today)}
		done, err := s.seen(ctx, m)
		if err != nil {
			return rep, err
		}
		if done {
			continue
		}

		v, err := s.birthdayVoucher(ctx, u.TelegramID(), clock.StartOfDay(today))
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to issue birthday voucher", "telegram_id", u.TelegramID(), "error", err)
			continue
		}

		text := s.texts.Text(u.Language().String(), i18n.BirthdayVoucher,
			u.FullName().FirstName(), v.Code().String(), v.Amount(), s.policy.BirthdayValidDays)
		if !s.notifier.ToUser(ctx, u.TelegramID(), text) {
			continue
		}
		s.mark(ctx, m)
		rep.Notified++

		c := notify.CardOf(u)
		s.notifier.ToAdmins(ctx, s.texts.Admin(i18n.AdminBirthdayVoucher, c.Name, c.Phone, v.Code().String(), v.Amount()))
	}
	return rep, nil
}

func (s *Service) birthdayVoucher(ctx context.Context, ownerID int64, since time.Time) (*voucher.Voucher, error) {
	v, err := s.uow.Reads().Vouchers().FindLatestByOwnerAndType(ctx, ownerID, voucher.TypeBirthday, since)
	if err == nil {
		return v, nil
	}
	if !errs.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	return s.vouchers.Create(ctx, commands.CreateVoucherRequest{
		OwnerID:   ownerID,
		Amount:    s.policy.BirthdayAmount,
		Type:      voucher.TypeBirthday,
		ValidDays: s.policy.BirthdayValidDays,
	})
}

// VoucherReminders expires stale vouchers, then reminds owners of vouchers
// about to expire. The reminder timestamp moves only after a delivered send.
func (s *Service) VoucherReminders(ctx context.Context) (Report, error) {
	var rep Report
	expired, err := s.vouchers.SweepExpired(ctx)
	if err != nil {
		return rep, err
	}
	rep.Expired = expired

	candidates, err := s.vouchers.FindReminderCandidates(ctx)
	if err != nil {
		return rep, err
	}
	rep.Matched = len(candidates)
	now := s.clock.Now()
	for _, v := range candidates {
		lang := ""
		if owner, err := s.uow.Reads().Sessions().FindByTelegramID(ctx, v.OwnerID()); err == nil {
			lang = owner.Language().String()
		}
		text := s.texts.Text(lang, i18n.VoucherReminder, v.Code().String(), v.Amount(), v.DaysUntilExpiry(now))
		if !s.notifier.ToUser(ctx, v.OwnerID(), text) {
			continue
		}
		if err := s.vouchers.MarkReminderSent(ctx, v.ID()); err != nil {
			s.logger.ErrorContext(ctx, "failed to mark reminder sent", "voucher_id", v.ID(), "error", err)
			continue
		}
		rep.Notified++
	}
	return rep, nil
}
