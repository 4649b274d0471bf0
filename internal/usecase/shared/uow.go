package shared

import (
	"context"
	"time"

	"kuponbot/internal/domain/cashback"
	"kuponbot/internal/domain/session"
	"kuponbot/internal/domain/voucher"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads: repositories bound outside any transaction, one statement each
	Reads() Tx
}

type Tx interface {
	Sessions() SessionRepository
	Vouchers() VoucherRepository
	Cashback() CashbackRepository
	Markers() MarkerRepository
}

// Lookups return an error matching errs.ErrNotFound when nothing exists.
type SessionRepository interface {
	FindByTelegramID(ctx context.Context, telegramID int64) (*session.Session, error)
	// LockForUpdate reads the row and holds it until the surrounding transaction ends.
	LockForUpdate(ctx context.Context, telegramID int64) (*session.Session, error)
	// CreateIfAbsent reports false when a record for the identity already exists.
	CreateIfAbsent(ctx context.Context, s *session.Session) (bool, error)
	Save(ctx context.Context, s *session.Session) error
	AddCashbackBalance(ctx context.Context, telegramID, delta int64, at time.Time) (int64, error)
	ListRegistered(ctx context.Context) ([]*session.Session, error)
	// ListRegisteredCreatedBetween matches after < created_at <= upTo.
	ListRegisteredCreatedBetween(ctx context.Context, after, upTo time.Time) ([]*session.Session, error)
	ListBirthdayCandidates(ctx context.Context) ([]BirthdayCandidate, error)
	CountByState(ctx context.Context) (map[session.State]int64, error)
}

type VoucherRepository interface {
	Create(ctx context.Context, v *voucher.Voucher) error
	ExistsByCode(ctx context.Context, code voucher.Code) (bool, error)
	FindByCode(ctx context.Context, code voucher.Code) (*voucher.Voucher, error)
	// RedeemIfActive flips an ACTIVE, unexpired voucher to USED; false means another caller won.
	RedeemIfActive(ctx context.Context, code voucher.Code, at time.Time) (bool, error)
	MarkExpired(ctx context.Context, id uuid.UUID) error
	ExpireBefore(ctx context.Context, now time.Time) (int64, error)
	FindReminderCandidates(ctx context.Context, q ReminderQuery) ([]*voucher.Voucher, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) error
	ListByOwner(ctx context.Context, ownerID int64) ([]*voucher.Voucher, error)
	FindLatestByOwnerAndType(ctx context.Context, ownerID int64, typ voucher.Type, since time.Time) (*voucher.Voucher, error)
	CountByStatus(ctx context.Context) (map[voucher.Status]int64, error)
}

type CashbackRepository interface {
	Append(ctx context.Context, e *cashback.Entry) error
	ListByOwner(ctx context.Context, ownerID int64) ([]*cashback.Entry, error)
}

type MarkerRepository interface {
	Exists(ctx context.Context, m Marker) (bool, error)
	// Mark is a no-op when the marker is already present.
	Mark(ctx context.Context, m Marker, at time.Time) error
}
