package voucher

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotActive = errors.New("voucher is not active")
	ErrExpired   = errors.New("voucher has expired")
)

const day = 24 * time.Hour

type Voucher struct {
	id               uuid.UUID
	code             Code
	ownerID          int64
	amount           int64
	status           Status
	typ              Type
	createdAt        time.Time
	expiresAt        time.Time
	usedAt           *time.Time
	lastReminderSent *time.Time
}

func New(code Code, ownerID, amount int64, typ Type, validDays int, now time.Time) (*Voucher, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if validDays < 1 {
		return nil, ErrInvalidValidity
	}
	return &Voucher{
		id:        uuid.New(),
		code:      code,
		ownerID:   ownerID,
		amount:    amount,
		status:    StatusActive,
		typ:       typ,
		createdAt: now,
		expiresAt: now.AddDate(0, 0, validDays),
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	code Code,
	ownerID, amount int64,
	status Status,
	typ Type,
	createdAt, expiresAt time.Time,
	usedAt, lastReminderSent *time.Time,
) *Voucher {
	return &Voucher{
		id:               id,
		code:             code,
		ownerID:          ownerID,
		amount:           amount,
		status:           status,
		typ:              typ,
		createdAt:        createdAt,
		expiresAt:        expiresAt,
		usedAt:           usedAt,
		lastReminderSent: lastReminderSent,
	}
}

func (v *Voucher) IsExpiredAt(now time.Time) bool {
	return now.After(v.expiresAt)
}

// Redeem checks status before expiry: a used voucher past its date still
// reports ErrNotActive. An active voucher past expiry flips to EXPIRED and
// returns ErrExpired so the caller can persist the flip.
func (v *Voucher) Redeem(now time.Time) error {
	if v.status != StatusActive {
		return ErrNotActive
	}
	if v.IsExpiredAt(now) {
		v.status = StatusExpired
		return ErrExpired
	}
	v.status = StatusUsed
	v.usedAt = &now
	return nil
}

// Expire reports whether the voucher changed state.
func (v *Voucher) Expire(now time.Time) bool {
	if v.status != StatusActive || !v.IsExpiredAt(now) {
		return false
	}
	v.status = StatusExpired
	return true
}

// NeedsReminder: active, expiring within lookahead, and not reminded during cooldown.
func (v *Voucher) NeedsReminder(now time.Time, lookahead, cooldown time.Duration) bool {
	if v.status != StatusActive {
		return false
	}
	if v.expiresAt.Before(now) || v.expiresAt.After(now.Add(lookahead)) {
		return false
	}
	return v.lastReminderSent == nil || v.lastReminderSent.Before(now.Add(-cooldown))
}

func (v *Voucher) MarkReminderSent(at time.Time) {
	v.lastReminderSent = &at
}

// DaysUntilExpiry floors to whole days and never goes negative.
func (v *Voucher) DaysUntilExpiry(now time.Time) int {
	left := v.expiresAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(left / day)
}

func (v *Voucher) ID() uuid.UUID                { return v.id }
func (v *Voucher) Code() Code                   { return v.code }
func (v *Voucher) OwnerID() int64               { return v.ownerID }
func (v *Voucher) Amount() int64                { return v.amount }
func (v *Voucher) Status() Status               { return v.status }
func (v *Voucher) Type() Type                   { return v.typ }
func (v *Voucher) CreatedAt() time.Time         { return v.createdAt }
func (v *Voucher) ExpiresAt() time.Time         { return v.expiresAt }
func (v *Voucher) UsedAt() *time.Time           { return v.usedAt }
func (v *Voucher) LastReminderSent() *time.Time { return v.lastReminderSent }
