package memstore

import (
	"cmp"
	"context"
	"slices"
	"time"

	"kuponbot/internal/domain/voucher"
	"kuponbot/internal/infra"
	"kuponbot/internal/usecase/shared"

	"github.com/google/uuid"
)

type voucherRepo struct{ t *tx }

func toRecord(v *voucher.Voucher) voucherRecord {
	return voucherRecord{
		id:               v.ID(),
		code:             v.Code().String(),
		ownerID:          v.OwnerID(),
		amount:           v.Amount(),
		status:           v.Status().String(),
		typ:              v.Type().String(),
		createdAt:        v.CreatedAt(),
		expiresAt:        v.ExpiresAt(),
		usedAt:           v.UsedAt(),
		lastReminderSent: v.LastReminderSent(),
	}
}

func (rec voucherRecord) toDomain() *voucher.Voucher {
	return voucher.Reconstruct(
		rec.id,
		voucher.Code(rec.code),
		rec.ownerID,
		rec.amount,
		voucher.Status(rec.status),
		voucher.Type(rec.typ),
		rec.createdAt,
		rec.expiresAt,
		rec.usedAt,
		rec.lastReminderSent,
	)
}

func (r voucherRepo) Create(_ context.Context, v *voucher.Voucher) error {
	d, done := r.t.open()
	defer done()

	if _, ok := d.codes[v.Code().String()]; ok {
		return infra.WrapRepoErr("voucher code already exists", nil, infra.KindDuplicateKey)
	}
	if _, ok := d.sessions[v.OwnerID()]; !ok {
		return infra.WrapRepoErr("voucher owner does not exist", nil, infra.KindForeignKeyViolated)
	}
	d.vouchers[v.ID()] = toRecord(v)
	d.codes[v.Code().String()] = v.ID()
	return nil
}

func (r voucherRepo) ExistsByCode(_ context.Context, code voucher.Code) (bool, error) {
	d, done := r.t.open()
	defer done()

	_, ok := d.codes[code.String()]
	return ok, nil
}

func (r voucherRepo) FindByCode(_ context.Context, code voucher.Code) (*voucher.Voucher, error) {
	d, done := r.t.open()
	defer done()

	id, ok := d.codes[code.String()]
	if !ok {
		return nil, infra.NotFound("voucher not found")
	}
	return d.vouchers[id].toDomain(), nil
}

func (r voucherRepo) RedeemIfActive(_ context.Context, code voucher.Code, at time.Time) (bool, error) {
	d, done := r.t.open()
	defer done()

	id, ok := d.codes[code.String()]
	if !ok {
		return false, nil
	}
	rec := d.vouchers[id]
	if rec.status != voucher.StatusActive.String() || rec.expiresAt.Before(at) {
		return false, nil
	}
	rec.status = voucher.StatusUsed.String()
	rec.usedAt = &at
	d.vouchers[id] = rec
	return true, nil
}

func (r voucherRepo) MarkExpired(_ context.Context, id uuid.UUID) error {
	d, done := r.t.open()
	defer done()

	if rec, ok := d.vouchers[id]; ok && rec.status == voucher.StatusActive.String() {
		rec.status = voucher.StatusExpired.String()
		d.vouchers[id] = rec
	}
	return nil
}

func (r voucherRepo) ExpireBefore(_ context.Context, now time.Time) (int64, error) {
	d, done := r.t.open()
	defer done()

	var n int64
	for id, rec := range d.vouchers {
		if rec.status == voucher.StatusActive.String() && rec.expiresAt.Before(now) {
			rec.status = voucher.StatusExpired.String()
			d.vouchers[id] = rec
			n++
		}
	}
	return n, nil
}

func (r voucherRepo) FindReminderCandidates(_ context.Context, q shared.ReminderQuery) ([]*voucher.Voucher, error) {
	out := r.filter(func(rec voucherRecord) bool {
		if rec.status != voucher.StatusActive.String() {
			return false
		}
		if rec.expiresAt.Before(q.Now) || rec.expiresAt.After(q.Horizon()) {
			return false
		}
		return rec.lastReminderSent == nil || rec.lastReminderSent.Before(q.CooldownBefore())
	})
	slices.SortFunc(out, func(a, b voucherRecord) int { return a.expiresAt.Compare(b.expiresAt) })
	return toDomainList(out), nil
}

func (r voucherRepo) MarkReminderSent(_ context.Context, id uuid.UUID, at time.Time) error {
	d, done := r.t.open()
	defer done()

	rec, ok := d.vouchers[id]
	if !ok {
		return infra.NotFound("voucher not found")
	}
	rec.lastReminderSent = &at
	d.vouchers[id] = rec
	return nil
}

func (r voucherRepo) ListByOwner(_ context.Context, ownerID int64) ([]*voucher.Voucher, error) {
	out := r.filter(func(rec voucherRecord) bool { return rec.ownerID == ownerID })
	slices.SortFunc(out, newestFirst)
	return toDomainList(out), nil
}

func (r voucherRepo) FindLatestByOwnerAndType(_ context.Context, ownerID int64, typ voucher.Type, since time.Time) (*voucher.Voucher, error) {
	out := r.filter(func(rec voucherRecord) bool {
		return rec.ownerID == ownerID && rec.typ == typ.String() && !rec.createdAt.Before(since)
	})
	if len(out) == 0 {
		return nil, infra.NotFound("voucher not found")
	}
	slices.SortFunc(out, newestFirst)
	return out[0].toDomain(), nil
}

func (r voucherRepo) CountByStatus(_ context.Context) (map[voucher.Status]int64, error) {
	d, done := r.t.open()
	defer done()

	out := make(map[voucher.Status]int64)
	for _, rec := range d.vouchers {
		out[voucher.Status(rec.status)]++
	}
	return out, nil
}

func (r voucherRepo) filter(match func(voucherRecord) bool) []voucherRecord {
	d, done := r.t.open()
	defer done()

	var out []voucherRecord
	for _, rec := range d.vouchers {
		if match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func newestFirst(a, b voucherRecord) int {
	return cmp.Compare(b.createdAt.UnixNano(), a.createdAt.UnixNano())
}

func toDomainList(recs []voucherRecord) []*voucher.Voucher {
	out := make([]*voucher.Voucher, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toDomain())
	}
	return out
}
