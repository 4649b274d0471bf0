package converter

import (
	"kuponbot/internal/domain/session"
	sqlc "kuponbot/internal/infra/sqlc/generated"
	"kuponbot/internal/pkg/pgconv"
)

func SessionFromRow(row sqlc.Sessions) *session.Session {
	return session.Reconstruct(session.Snapshot{
		TelegramID:      row.TelegramID,
		Username:        row.Username,
		Phone:           row.Phone,
		FullName:        row.FullName,
		BirthDate:       row.BirthDate,
		Language:        row.Language,
		State:           row.State,
		Role:            row.Role,
		CashbackBalance: row.CashbackBalance,
		LastUpdateID:    row.LastUpdateID,
		CreatedAt:       pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:       pgconv.TimeFromPgtype(row.UpdatedAt),
	})
}

func SessionToInsertParams(s *session.Session) sqlc.InsertSessionIfAbsentParams {
	snap := s.Snapshot()
	return sqlc.InsertSessionIfAbsentParams{
		TelegramID: snap.TelegramID,
		Username:   snap.Username,
		Language:   snap.Language,
		State:      snap.State,
		Role:       snap.Role,
		CreatedAt:  pgconv.TimeToPgtype(snap.CreatedAt),
		UpdatedAt:  pgconv.TimeToPgtype(snap.UpdatedAt),
	}
}

// SessionToUpdateParams leaves the cashback balance out; it only moves
// together with a ledger entry.
func SessionToUpdateParams(s *session.Session) sqlc.UpdateSessionParams {
	snap := s.Snapshot()
	return sqlc.UpdateSessionParams{
		TelegramID:   snap.TelegramID,
		Username:     snap.Username,
		Phone:        snap.Phone,
		FullName:     snap.FullName,
		BirthDate:    snap.BirthDate,
		Language:     snap.Language,
		State:        snap.State,
		Role:         snap.Role,
		LastUpdateID: snap.LastUpdateID,
		UpdatedAt:    pgconv.TimeToPgtype(snap.UpdatedAt),
	}
}
