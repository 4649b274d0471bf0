// Package memstore is the process-local storage driver. Transactions are
// serialized on one mutex and roll back by restoring a copy of the data.
package memstore

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"kuponbot/internal/domain/cashback"
	"kuponbot/internal/domain/session"
	"kuponbot/internal/usecase/shared"

	"github.com/google/uuid"
)

type voucherRecord struct {
	id               uuid.UUID
	code             string
	ownerID          int64
	amount           int64
	status           string
	typ              string
	createdAt        time.Time
	expiresAt        time.Time
	usedAt           *time.Time
	lastReminderSent *time.Time
}

type data struct {
	sessions map[int64]session.Snapshot
	vouchers map[uuid.UUID]voucherRecord
	codes    map[string]uuid.UUID
	entries  []*cashback.Entry
	markers  map[shared.Marker]time.Time
}

func newData() *data {
	return &data{
		sessions: make(map[int64]session.Snapshot),
		vouchers: make(map[uuid.UUID]voucherRecord),
		codes:    make(map[string]uuid.UUID),
		markers:  make(map[shared.Marker]time.Time),
	}
}

func (d *data) clone() *data {
	return &data{
		sessions: maps.Clone(d.sessions),
		vouchers: maps.Clone(d.vouchers),
		codes:    maps.Clone(d.codes),
		entries:  slices.Clone(d.entries),
		markers:  maps.Clone(d.markers),
	}
}

type Store struct {
	mu sync.Mutex
	d  *data
}

func New() *Store {
	return &Store{d: newData()}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := s.d.clone()
	if err := fn(ctx, &tx{store: s}); err != nil {
		s.d = saved
		return err
	}
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, &tx{store: s})
}

// Reads must not be used from inside Within or WithinReadOnly on the same goroutine.
func (s *Store) Reads() shared.Tx {
	return &tx{store: s, autoLock: true}
}

type tx struct {
	store    *Store
	autoLock bool
}

// open returns the live data, taking the store lock when not already inside a transaction.
func (t *tx) open() (*data, func()) {
	if !t.autoLock {
		return t.store.d, func() {}
	}
	t.store.mu.Lock()
	return t.store.d, t.store.mu.Unlock
}

func (t *tx) Sessions() shared.SessionRepository  { return sessionRepo{t} }
func (t *tx) Vouchers() shared.VoucherRepository  { return voucherRepo{t} }
func (t *tx) Cashback() shared.CashbackRepository { return cashbackRepo{t} }
func (t *tx) Markers() shared.MarkerRepository    { return markerRepo{t} }
