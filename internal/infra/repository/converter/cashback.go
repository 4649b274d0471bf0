package converter

import (
	"kuponbot/internal/domain/cashback"
	sqlc "kuponbot/internal/infra/sqlc/generated"
	"kuponbot/internal/pkg/errs"
	"kuponbot/internal/pkg/pgconv"
)

func CashbackEntryFromRow(row sqlc.CashbackEntries) (*cashback.Entry, error) {
	typ, err := cashback.NewEntryType(row.Type)
	if err != nil {
		return nil, errs.Wrapf(err, "cashback entry %s", row.ID)
	}
	pct, err := pgconv.DecimalFromNumeric(row.Percentage)
	if err != nil {
		return nil, errs.Wrapf(err, "cashback entry %s", row.ID)
	}

	return cashback.ReconstructEntry(
		row.ID,
		row.OwnerID,
		row.PurchaseAmount,
		row.CashbackAmount,
		cashback.PercentageFromDecimal(pct),
		typ,
		cashback.EntryStatus(row.Status),
		row.Description,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimePtrFromPgtype(row.UsedAt),
	), nil
}

func CashbackEntryToInsertParams(e *cashback.Entry) sqlc.InsertCashbackEntryParams {
	return sqlc.InsertCashbackEntryParams{
		ID:             e.ID(),
		OwnerID:        e.OwnerID(),
		PurchaseAmount: e.PurchaseAmount(),
		CashbackAmount: e.CashbackAmount(),
		Percentage:     pgconv.DecimalToNumeric(e.Percentage().Decimal()),
		Type:           string(e.Type()),
		Status:         string(e.Status()),
		Description:    e.Description(),
		CreatedAt:      pgconv.TimeToPgtype(e.CreatedAt()),
		UsedAt:         pgconv.TimePtrToPgtype(e.UsedAt()),
	}
}
