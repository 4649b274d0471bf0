package memstore

import (
	"context"

	"kuponbot/internal/domain/cashback"
	"kuponbot/internal/infra"
)

type cashbackRepo struct{ t *tx }

func (r cashbackRepo) Append(_ context.Context, e *cashback.Entry) error {
	d, done := r.t.open()
	defer done()

	if _, ok := d.sessions[e.OwnerID()]; !ok {
		return infra.WrapRepoErr("cashback owner does not exist", nil, infra.KindForeignKeyViolated)
	}
	d.entries = append(d.entries, e)
	return nil
}

func (r cashbackRepo) ListByOwner(_ context.Context, ownerID int64) ([]*cashback.Entry, error) {
	d, done := r.t.open()
	defer done()

	var out []*cashback.Entry
	for _, e := range d.entries {
		if e.OwnerID() == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}
