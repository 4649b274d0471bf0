package repository

import (
	"context"
	"errors"
	"time"

	"kuponbot/internal/domain/voucher"
	"kuponbot/internal/infra"
	"kuponbot/internal/infra/repository/converter"
	sqlc "kuponbot/internal/infra/sqlc/generated"
	"kuponbot/internal/pkg/pgconv"
	"kuponbot/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const pgErrCodeUniqueViolation = "23505"

type VoucherQueries interface {
	InsertVoucher(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertVoucherParams) error
	VoucherCodeExists(ctx context.Context, db sqlc.DBTX, code string) (bool, error)
	GetVoucherByCode(ctx context.Context, db sqlc.DBTX, code string) (sqlc.Vouchers, error)
	RedeemActiveVoucher(ctx context.Context, db sqlc.DBTX, arg sqlc.RedeemActiveVoucherParams) (int64, error)
	ExpireVoucher(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error)
	ExpireVouchersBefore(ctx context.Context, db sqlc.DBTX, expiresAt pgtype.Timestamptz) (int64, error)
	ListReminderCandidates(ctx context.Context, db sqlc.DBTX, arg sqlc.ListReminderCandidatesParams) ([]sqlc.Vouchers, error)
	MarkVoucherReminderSent(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkVoucherReminderSentParams) error
	ListVouchersByOwner(ctx context.Context, db sqlc.DBTX, ownerID int64) ([]sqlc.Vouchers, error)
	GetLatestVoucherByOwnerAndType(ctx context.Context, db sqlc.DBTX, arg sqlc.GetLatestVoucherByOwnerAndTypeParams) (sqlc.Vouchers, error)
	CountVouchersByStatus(ctx context.Context, db sqlc.DBTX) ([]sqlc.CountVouchersByStatusRow, error)
}

type VoucherRepository struct {
	queries VoucherQueries
	db      sqlc.DBTX
}

func NewVoucherRepository(queries VoucherQueries, db sqlc.DBTX) *VoucherRepository {
	return &VoucherRepository{
		queries: queries,
		db:      db,
	}
}

func (r *VoucherRepository) Create(ctx context.Context, v *voucher.Voucher) error {
	if err := r.queries.InsertVoucher(ctx, r.db, converter.VoucherToInsertParams(v)); err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("voucher code already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create voucher", err)
	}
	return nil
}

func (r *VoucherRepository) ExistsByCode(ctx context.Context, code voucher.Code) (bool, error) {
	exists, err := r.queries.VoucherCodeExists(ctx, r.db, code.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to check voucher code", err)
	}
	return exists, nil
}

func (r *VoucherRepository) FindByCode(ctx context.Context, code voucher.Code) (*voucher.Voucher, error) {
	row, err := r.queries.GetVoucherByCode(ctx, r.db, code.String())
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("voucher not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find voucher", err)
	}
	v, err := converter.VoucherFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode voucher", err)
	}
	return v, nil
}

func (r *VoucherRepository) RedeemIfActive(ctx context.Context, code voucher.Code, at time.Time) (bool, error) {
	n, err := r.queries.RedeemActiveVoucher(ctx, r.db, sqlc.RedeemActiveVoucherParams{
		UsedAt: pgconv.TimeToPgtype(at),
		Code:   code.String(),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to redeem voucher", err)
	}
	return n == 1, nil
}

func (r *VoucherRepository) MarkExpired(ctx context.Context, id uuid.UUID) error {
	if _, err := r.queries.ExpireVoucher(ctx, r.db, id); err != nil {
		return infra.WrapRepoErr("failed to expire voucher", err)
	}
	return nil
}

func (r *VoucherRepository) ExpireBefore(ctx context.Context, now time.Time) (int64, error) {
	n, err := r.queries.ExpireVouchersBefore(ctx, r.db, pgconv.TimeToPgtype(now))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to sweep expired vouchers", err)
	}
	return n, nil
}

func (r *VoucherRepository) FindReminderCandidates(ctx context.Context, q shared.ReminderQuery) ([]*voucher.Voucher, error) {
	rows, err := r.queries.ListReminderCandidates(ctx, r.db, sqlc.ListReminderCandidatesParams{
		Now:            pgconv.TimeToPgtype(q.Now),
		Horizon:        pgconv.TimeToPgtype(q.Horizon()),
		CooldownBefore: pgconv.TimeToPgtype(q.CooldownBefore()),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reminder candidates", err)
	}
	out, err := converter.VouchersFromRows(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode vouchers", err)
	}
	return out, nil
}

func (r *VoucherRepository) MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	err := r.queries.MarkVoucherReminderSent(ctx, r.db, sqlc.MarkVoucherReminderSentParams{
		ID:               id,
		LastReminderSent: pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to mark voucher reminder", err)
	}
	return nil
}

func (r *VoucherRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*voucher.Voucher, error) {
	rows, err := r.queries.ListVouchersByOwner(ctx, r.db, ownerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list vouchers", err)
	}
	out, err := converter.VouchersFromRows(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode vouchers", err)
	}
	return out, nil
}

func (r *VoucherRepository) FindLatestByOwnerAndType(ctx context.Context, ownerID int64, typ voucher.Type, since time.Time) (*voucher.Voucher, error) {
	row, err := r.queries.GetLatestVoucherByOwnerAndType(ctx, r.db, sqlc.GetLatestVoucherByOwnerAndTypeParams{
		OwnerID:   ownerID,
		Type:      typ.String(),
		CreatedAt: pgconv.TimeToPgtype(since),
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("voucher not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find latest voucher", err)
	}
	v, err := converter.VoucherFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode voucher", err)
	}
	return v, nil
}

func (r *VoucherRepository) CountByStatus(ctx context.Context) (map[voucher.Status]int64, error) {
	rows, err := r.queries.CountVouchersByStatus(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count vouchers", err)
	}
	out := make(map[voucher.Status]int64, len(rows))
	for _, row := range rows {
		out[voucher.Status(row.Status)] = row.Total
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation
}
