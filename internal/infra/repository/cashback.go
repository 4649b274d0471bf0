package repository

import (
	"context"

	"kuponbot/internal/domain/cashback"
	"kuponbot/internal/infra"
	"kuponbot/internal/infra/repository/converter"
	sqlc "kuponbot/internal/infra/sqlc/generated"
)

type CashbackQueries interface {
	InsertCashbackEntry(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertCashbackEntryParams) error
	ListCashbackEntriesByOwner(ctx context.Context, db sqlc.DBTX, ownerID int64) ([]sqlc.CashbackEntries, error)
}

type CashbackRepository struct {
	queries CashbackQueries
	db      sqlc.DBTX
}

func NewCashbackRepository(queries CashbackQueries, db sqlc.DBTX) *CashbackRepository {
	return &CashbackRepository{
		queries: queries,
		db:      db,
	}
}

func (r *CashbackRepository) Append(ctx context.Context, e *cashback.Entry) error {
	if err := r.queries.InsertCashbackEntry(ctx, r.db, converter.CashbackEntryToInsertParams(e)); err != nil {
		return infra.WrapRepoErr("failed to append cashback entry", err)
	}
	return nil
}

func (r *CashbackRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*cashback.Entry, error) {
	rows, err := r.queries.ListCashbackEntriesByOwner(ctx, r.db, ownerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list cashback entries", err)
	}
	out := make([]*cashback.Entry, 0, len(rows))
	for _, row := range rows {
		e, err := converter.CashbackEntryFromRow(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode cashback entry", err)
		}
		out = append(out, e)
	}
	return out, nil
}
