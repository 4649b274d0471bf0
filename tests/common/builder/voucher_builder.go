//go:build unit || e2e

package builder

import (
	"time"

	"kuponbot/internal/domain/voucher"

	"github.com/google/uuid"
)

type VoucherBuilder struct {
	ID        uuid.UUID
	Code      voucher.Code
	OwnerID   int64
	Amount    int64
	Status    voucher.Status
	Type      voucher.Type
	CreatedAt time.Time
	ValidDays int
	UsedAt    *time.Time
}

func NewVoucherBuilder() *VoucherBuilder {
	return &VoucherBuilder{
		ID:        uuid.MustParse("6f1c2a3b-4d5e-4f60-8a9b-0c1d2e3f4a5b"),
		Code:      voucher.Code("abcd2345"),
		OwnerID:   5001,
		Amount:    50000,
		Status:    voucher.StatusActive,
		Type:      voucher.TypeSpecial,
		CreatedAt: FixedNow,
		ValidDays: 30,
	}
}

func (b *VoucherBuilder) With(mutate func(*VoucherBuilder)) *VoucherBuilder {
	mutate(b)
	return b
}

func (b *VoucherBuilder) WithOwner(id int64) *VoucherBuilder {
	b.OwnerID = id
	return b
}

func (b *VoucherBuilder) WithCode(c string) *VoucherBuilder {
	b.Code = voucher.Code(c)
	return b
}

func (b *VoucherBuilder) WithStatus(s voucher.Status) *VoucherBuilder {
	b.Status = s
	return b
}

func (b *VoucherBuilder) WithType(t voucher.Type) *VoucherBuilder {
	b.Type = t
	return b
}

func (b *VoucherBuilder) Used(at time.Time) *VoucherBuilder {
	b.Status = voucher.StatusUsed
	b.UsedAt = &at
	return b
}

func (b *VoucherBuilder) BuildDomain() *voucher.Voucher {
	return voucher.Reconstruct(
		b.ID, b.Code, b.OwnerID, b.Amount, b.Status, b.Type,
		b.CreatedAt, b.CreatedAt.AddDate(0, 0, b.ValidDays), b.UsedAt, nil,
	)
}
