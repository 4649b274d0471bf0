package memstore

import (
	"context"
	"maps"
	"slices"
	"time"

	"kuponbot/internal/domain/session"
	"kuponbot/internal/infra"
	"kuponbot/internal/usecase/shared"
)

type sessionRepo struct{ t *tx }

func (r sessionRepo) FindByTelegramID(_ context.Context, telegramID int64) (*session.Session, error) {
	d, done := r.t.open()
	defer done()

	snap, ok := d.sessions[telegramID]
	if !ok {
		return nil, infra.NotFound("session not found")
	}
	return session.Reconstruct(snap), nil
}

// LockForUpdate is a plain read; the store mutex already serializes transactions.
func (r sessionRepo) LockForUpdate(ctx context.Context, telegramID int64) (*session.Session, error) {
	return r.FindByTelegramID(ctx, telegramID)
}

func (r sessionRepo) CreateIfAbsent(_ context.Context, s *session.Session) (bool, error) {
	d, done := r.t.open()
	defer done()

	if _, ok := d.sessions[s.TelegramID()]; ok {
		return false, nil
	}
	snap := s.Snapshot()
	snap.CashbackBalance = 0
	d.sessions[s.TelegramID()] = snap
	return true, nil
}

func (r sessionRepo) Save(_ context.Context, s *session.Session) error {
	d, done := r.t.open()
	defer done()

	prev, ok := d.sessions[s.TelegramID()]
	if !ok {
		return infra.NotFound("session not found")
	}
	snap := s.Snapshot()
	snap.CashbackBalance = prev.CashbackBalance
	snap.CreatedAt = prev.CreatedAt
	d.sessions[s.TelegramID()] = snap
	return nil
}

func (r sessionRepo) AddCashbackBalance(_ context.Context, telegramID, delta int64, at time.Time) (int64, error) {
	d, done := r.t.open()
	defer done()

	snap, ok := d.sessions[telegramID]
	if !ok {
		return 0, infra.NotFound("session not found")
	}
	if snap.CashbackBalance+delta < 0 {
		return 0, infra.WrapRepoErr("cashback balance would become negative", nil)
	}
	snap.CashbackBalance += delta
	snap.UpdatedAt = at
	d.sessions[telegramID] = snap
	return snap.CashbackBalance, nil
}

func (r sessionRepo) ListRegistered(_ context.Context) ([]*session.Session, error) {
	return r.list(func(s session.Snapshot) bool {
		return s.State == session.StateRegistered.String()
	}), nil
}

func (r sessionRepo) ListRegisteredCreatedBetween(_ context.Context, after, upTo time.Time) ([]*session.Session, error) {
	return r.list(func(s session.Snapshot) bool {
		return s.State == session.StateRegistered.String() &&
			s.CreatedAt.After(after) && !s.CreatedAt.After(upTo)
	}), nil
}

func (r sessionRepo) ListBirthdayCandidates(_ context.Context) ([]shared.BirthdayCandidate, error) {
	d, done := r.t.open()
	defer done()

	var out []shared.BirthdayCandidate
	for _, id := range sortedIDs(d.sessions) {
		snap := d.sessions[id]
		if snap.State != session.StateRegistered.String() || snap.BirthDate == "" {
			continue
		}
		out = append(out, shared.BirthdayCandidate{
			Session:      session.Reconstruct(snap),
			RawBirthDate: snap.BirthDate,
		})
	}
	return out, nil
}

func (r sessionRepo) CountByState(_ context.Context) (map[session.State]int64, error) {
	d, done := r.t.open()
	defer done()

	out := make(map[session.State]int64)
	for _, snap := range d.sessions {
		out[session.State(snap.State)]++
	}
	return out, nil
}

func (r sessionRepo) list(match func(session.Snapshot) bool) []*session.Session {
	d, done := r.t.open()
	defer done()

	var out []*session.Session
	for _, id := range sortedIDs(d.sessions) {
		if snap := d.sessions[id]; match(snap) {
			out = append(out, session.Reconstruct(snap))
		}
	}
	return out
}

func sortedIDs(m map[int64]session.Snapshot) []int64 {
	return slices.Sorted(maps.Keys(m))
}
