package converter

import (
	"kuponbot/internal/domain/voucher"
	sqlc "kuponbot/internal/infra/sqlc/generated"
	"kuponbot/internal/pkg/errs"
	"kuponbot/internal/pkg/pgconv"
)

func VoucherFromRow(row sqlc.Vouchers) (*voucher.Voucher, error) {
	status, err := voucher.NewStatus(row.Status)
	if err != nil {
		return nil, errs.Wrapf(err, "voucher %s", row.ID)
	}
	typ, err := voucher.NewType(row.Type)
	if err != nil {
		return nil, errs.Wrapf(err, "voucher %s", row.ID)
	}

	return voucher.Reconstruct(
		row.ID,
		voucher.Code(row.Code),
		row.OwnerID,
		row.Amount,
		status,
		typ,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.ExpiresAt),
		pgconv.TimePtrFromPgtype(row.UsedAt),
		pgconv.TimePtrFromPgtype(row.LastReminderSent),
	), nil
}

func VouchersFromRows(rows []sqlc.Vouchers) ([]*voucher.Voucher, error) {
	out := make([]*voucher.Voucher, 0, len(rows))
	for _, row := range rows {
		v, err := VoucherFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func VoucherToInsertParams(v *voucher.Voucher) sqlc.InsertVoucherParams {
	return sqlc.InsertVoucherParams{
		ID:        v.ID(),
		Code:      v.Code().String(),
		OwnerID:   v.OwnerID(),
		Amount:    v.Amount(),
		Status:    v.Status().String(),
		Type:      v.Type().String(),
		CreatedAt: pgconv.TimeToPgtype(v.CreatedAt()),
		ExpiresAt: pgconv.TimeToPgtype(v.ExpiresAt()),
	}
}
