package repository

import (
	"context"
	"time"

	"kuponbot/internal/infra"
	sqlc "kuponbot/internal/infra/sqlc/generated"
	"kuponbot/internal/pkg/pgconv"
	"kuponbot/internal/usecase/shared"
)

type MarkerQueries interface {
	NotificationMarkerExists(ctx context.Context, db sqlc.DBTX, arg sqlc.NotificationMarkerExistsParams) (bool, error)
	InsertNotificationMarker(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertNotificationMarkerParams) error
}

type MarkerRepository struct {
	queries MarkerQueries
	db      sqlc.DBTX
}

func NewMarkerRepository(queries MarkerQueries, db sqlc.DBTX) *MarkerRepository {
	return &MarkerRepository{
		queries: queries,
		db:      db,
	}
}

func (r *MarkerRepository) Exists(ctx context.Context, m shared.Marker) (bool, error) {
	ok, err := r.queries.NotificationMarkerExists(ctx, r.db, sqlc.NotificationMarkerExistsParams{
		Kind:       string(m.Kind),
		TelegramID: m.TelegramID,
		WindowKey:  m.WindowKey,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to check notification marker", err)
	}
	return ok, nil
}

func (r *MarkerRepository) Mark(ctx context.Context, m shared.Marker, at time.Time) error {
	err := r.queries.InsertNotificationMarker(ctx, r.db, sqlc.InsertNotificationMarkerParams{
		Kind:       string(m.Kind),
		TelegramID: m.TelegramID,
		WindowKey:  m.WindowKey,
		SentAt:     pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to write notification marker", err)
	}
	return nil
}
