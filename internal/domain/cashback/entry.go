package cashback

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidPercentage   = errors.New("percentage must be between 0 and 100")
	ErrInsufficientBalance = errors.New("insufficient cashback balance")
	ErrInvalidEntryType    = errors.New("invalid cashback entry type")
)

type EntryType string

const (
	TypeEarned   EntryType = "EARNED"
	TypeUsed     EntryType = "USED"
	TypeRefunded EntryType = "REFUNDED"
)

func NewEntryType(s string) (EntryType, error) {
	switch t := EntryType(s); t {
	case TypeEarned, TypeUsed, TypeRefunded:
		return t, nil
	default:
		return "", ErrInvalidEntryType
	}
}

type EntryStatus string

const (
	StatusActive EntryStatus = "ACTIVE"
	StatusUsed   EntryStatus = "USED"
)

var hundred = decimal.NewFromInt(100)

// Percentage is the share of a purchase returned as cashback.
type Percentage struct {
	value decimal.Decimal
}

func NewPercentage(s string) (Percentage, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() || d.GreaterThan(hundred) {
		return Percentage{}, ErrInvalidPercentage
	}
	return Percentage{value: d}, nil
}

func PercentageFromDecimal(d decimal.Decimal) Percentage {
	return Percentage{value: d}
}

func (p Percentage) Decimal() decimal.Decimal {
	return p.value
}

func (p Percentage) String() string {
	return p.value.String()
}

// Of returns amount*p/100 rounded half away from zero.
func (p Percentage) Of(amount int64) int64 {
	return decimal.NewFromInt(amount).Mul(p.value).Div(hundred).Round(0).IntPart()
}

type Entry struct {
	id             uuid.UUID
	ownerID        int64
	purchaseAmount int64
	cashbackAmount int64
	percentage     Percentage
	typ            EntryType
	status         EntryStatus
	description    string
	createdAt      time.Time
	usedAt         *time.Time
}

func NewEarned(ownerID, purchase int64, pct Percentage, description string, now time.Time) (*Entry, error) {
	if purchase <= 0 {
		return nil, ErrInvalidAmount
	}
	return &Entry{
		id:             uuid.New(),
		ownerID:        ownerID,
		purchaseAmount: purchase,
		cashbackAmount: pct.Of(purchase),
		percentage:     pct,
		typ:            TypeEarned,
		status:         StatusActive,
		description:    description,
		createdAt:      now,
	}, nil
}

// NewUsed rejects any amount above the current balance.
func NewUsed(ownerID, amount, balance int64, description string, now time.Time) (*Entry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if amount > balance {
		return nil, ErrInsufficientBalance
	}
	return &Entry{
		id:             uuid.New(),
		ownerID:        ownerID,
		cashbackAmount: amount,
		typ:            TypeUsed,
		status:         StatusUsed,
		description:    description,
		createdAt:      now,
		usedAt:         &now,
	}, nil
}

func NewRefund(ownerID, amount int64, description string, now time.Time) (*Entry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return &Entry{
		id:             uuid.New(),
		ownerID:        ownerID,
		cashbackAmount: amount,
		typ:            TypeRefunded,
		status:         StatusActive,
		description:    description,
		createdAt:      now,
	}, nil
}

func ReconstructEntry(
	id uuid.UUID,
	ownerID, purchaseAmount, cashbackAmount int64,
	pct Percentage,
	typ EntryType,
	status EntryStatus,
	description string,
	createdAt time.Time,
	usedAt *time.Time,
) *Entry {
	return &Entry{
		id:             id,
		ownerID:        ownerID,
		purchaseAmount: purchaseAmount,
		cashbackAmount: cashbackAmount,
		percentage:     pct,
		typ:            typ,
		status:         status,
		description:    description,
		createdAt:      createdAt,
		usedAt:         usedAt,
	}
}

// Delta is the entry's effect on the balance.
func (e *Entry) Delta() int64 {
	if e.typ == TypeUsed {
		return -e.cashbackAmount
	}
	return e.cashbackAmount
}

func (e *Entry) ID() uuid.UUID          { return e.id }
func (e *Entry) OwnerID() int64         { return e.ownerID }
func (e *Entry) PurchaseAmount() int64  { return e.purchaseAmount }
func (e *Entry) CashbackAmount() int64  { return e.cashbackAmount }
func (e *Entry) Percentage() Percentage { return e.percentage }
func (e *Entry) Type() EntryType        { return e.typ }
func (e *Entry) Status() EntryStatus    { return e.status }
func (e *Entry) Description() string    { return e.description }
func (e *Entry) CreatedAt() time.Time   { return e.createdAt }
func (e *Entry) UsedAt() *time.Time     { return e.usedAt }
