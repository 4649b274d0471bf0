package repository

import (
	"context"
	"time"

	"kuponbot/internal/domain/session"
	"kuponbot/internal/infra"
	"kuponbot/internal/infra/repository/converter"
	sqlc "kuponbot/internal/infra/sqlc/generated"
	"kuponbot/internal/pkg/pgconv"
	"kuponbot/internal/usecase/shared"
)

type SessionQueries interface {
	GetSession(ctx context.Context, db sqlc.DBTX, telegramID int64) (sqlc.Sessions, error)
	GetSessionForUpdate(ctx context.Context, db sqlc.DBTX, telegramID int64) (sqlc.Sessions, error)
	InsertSessionIfAbsent(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertSessionIfAbsentParams) (int64, error)
	UpdateSession(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateSessionParams) (int64, error)
	AddCashbackBalance(ctx context.Context, db sqlc.DBTX, arg sqlc.AddCashbackBalanceParams) (int64, error)
	ListSessionsByState(ctx context.Context, db sqlc.DBTX, state string) ([]sqlc.Sessions, error)
	ListRegisteredCreatedBetween(ctx context.Context, db sqlc.DBTX, arg sqlc.ListRegisteredCreatedBetweenParams) ([]sqlc.Sessions, error)
	ListBirthdaySessions(ctx context.Context, db sqlc.DBTX) ([]sqlc.Sessions, error)
	CountSessionsByState(ctx context.Context, db sqlc.DBTX) ([]sqlc.CountSessionsByStateRow, error)
}

type SessionRepository struct {
	queries SessionQueries
	db      sqlc.DBTX
}

func NewSessionRepository(queries SessionQueries, db sqlc.DBTX) *SessionRepository {
	return &SessionRepository{
		queries: queries,
		db:      db,
	}
}

func (r *SessionRepository) FindByTelegramID(ctx context.Context, telegramID int64) (*session.Session, error) {
	row, err := r.queries.GetSession(ctx, r.db, telegramID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("session not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find session", err)
	}
	return converter.SessionFromRow(row), nil
}

func (r *SessionRepository) LockForUpdate(ctx context.Context, telegramID int64) (*session.Session, error) {
	row, err := r.queries.GetSessionForUpdate(ctx, r.db, telegramID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("session not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock session", err)
	}
	return converter.SessionFromRow(row), nil
}

func (r *SessionRepository) CreateIfAbsent(ctx context.Context, s *session.Session) (bool, error) {
	n, err := r.queries.InsertSessionIfAbsent(ctx, r.db, converter.SessionToInsertParams(s))
	if err != nil {
		return false, infra.WrapRepoErr("failed to create session", err)
	}
	return n == 1, nil
}

func (r *SessionRepository) Save(ctx context.Context, s *session.Session) error {
	n, err := r.queries.UpdateSession(ctx, r.db, converter.SessionToUpdateParams(s))
	if err != nil {
		return infra.WrapRepoErr("failed to save session", err)
	}
	if n == 0 {
		return infra.NotFound("session not found")
	}
	return nil
}

func (r *SessionRepository) AddCashbackBalance(ctx context.Context, telegramID, delta int64, at time.Time) (int64, error) {
	balance, err := r.queries.AddCashbackBalance(ctx, r.db, sqlc.AddCashbackBalanceParams{
		Delta:      delta,
		UpdatedAt:  pgconv.TimeToPgtype(at),
		TelegramID: telegramID,
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return 0, infra.WrapRepoErr("session not found", err, infra.KindNotFound)
		}
		return 0, infra.WrapRepoErr("failed to update cashback balance", err)
	}
	return balance, nil
}

func (r *SessionRepository) ListRegistered(ctx context.Context) ([]*session.Session, error) {
	rows, err := r.queries.ListSessionsByState(ctx, r.db, session.StateRegistered.String())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list registered sessions", err)
	}
	return sessionsFromRows(rows), nil
}

func (r *SessionRepository) ListRegisteredCreatedBetween(ctx context.Context, after, upTo time.Time) ([]*session.Session, error) {
	rows, err := r.queries.ListRegisteredCreatedBetween(ctx, r.db, sqlc.ListRegisteredCreatedBetweenParams{
		CreatedAfter: pgconv.TimeToPgtype(after),
		CreatedUpTo:  pgconv.TimeToPgtype(upTo),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list sessions by creation time", err)
	}
	return sessionsFromRows(rows), nil
}

func (r *SessionRepository) ListBirthdayCandidates(ctx context.Context) ([]shared.BirthdayCandidate, error) {
	rows, err := r.queries.ListBirthdaySessions(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list birthday sessions", err)
	}
	out := make([]shared.BirthdayCandidate, 0, len(rows))
	for _, row := range rows {
		out = append(out, shared.BirthdayCandidate{
			Session:      converter.SessionFromRow(row),
			RawBirthDate: row.BirthDate,
		})
	}
	return out, nil
}

func (r *SessionRepository) CountByState(ctx context.Context) (map[session.State]int64, error) {
	rows, err := r.queries.CountSessionsByState(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count sessions", err)
	}
	out := make(map[session.State]int64, len(rows))
	for _, row := range rows {
		out[session.State(row.State)] = row.Total
	}
	return out, nil
}

func sessionsFromRows(rows []sqlc.Sessions) []*session.Session {
	out := make([]*session.Session, 0, len(rows))
	for _, row := range rows {
		out = append(out, converter.SessionFromRow(row))
	}
	return out
}
