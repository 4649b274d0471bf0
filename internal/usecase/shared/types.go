package shared

import (
	"strconv"
	"time"

	"kuponbot/internal/domain/session"
)

// BirthdayCandidate keeps the stored birth date text so a sweep can log and
// skip rows that no longer parse.
type BirthdayCandidate struct {
	Session      *session.Session
	RawBirthDate string
}

type ReminderQuery struct {
	Now       time.Time
	Lookahead time.Duration
	Cooldown  time.Duration
}

func (q ReminderQuery) Horizon() time.Time {
	return q.Now.Add(q.Lookahead)
}

func (q ReminderQuery) CooldownBefore() time.Time {
	return q.Now.Add(-q.Cooldown)
}

type MarkerKind string

const (
	MarkerRegistrationFollowup MarkerKind = "registration_followup"
	MarkerAnniversary          MarkerKind = "anniversary"
	MarkerBirthdayReminder     MarkerKind = "birthday_reminder"
	MarkerBirthdayVoucher      MarkerKind = "birthday_voucher"
)

// Marker records that a trigger already fired for one user in one window.
type Marker struct {
	Kind       MarkerKind
	TelegramID int64
	WindowKey  string
}

func (m Marker) String() string {
	return string(m.Kind) + ":" + strconv.FormatInt(m.TelegramID, 10) + ":" + m.WindowKey
}
