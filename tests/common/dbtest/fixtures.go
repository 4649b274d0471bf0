//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"kuponbot/internal/domain/session"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateRegisteredSession inserts a customer that finished onboarding at createdAt.
func CreateRegisteredSession(t *testing.T, db DBLike, telegramID int64, createdAt time.Time) {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO sessions (telegram_id, username, phone, full_name, birth_date, language, state, role, created_at, updated_at)
		VALUES ($1, $2, '+998901234567', 'Ism Familiya', '15.03.1995', 'uz', $3, 'customer', $4, $4)`,
		telegramID, fmt.Sprintf("@user%d", telegramID), string(session.StateRegistered), createdAt)
	require.NoError(t, err)
}

// CreateSessionInState inserts a bare session stuck at the given onboarding step.
func CreateSessionInState(t *testing.T, db DBLike, telegramID int64, state session.State, createdAt time.Time) {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO sessions (telegram_id, state, created_at, updated_at)
		VALUES ($1, $2, $3, $3)`,
		telegramID, string(state), createdAt)
	require.NoError(t, err)
}

func CreateVoucher(t *testing.T, db DBLike, ownerID int64, code string, status string, createdAt, expiresAt time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	var usedAt *time.Time
	if status == "USED" {
		usedAt = &createdAt
	}
	_, err := db.Exec(context.Background(), `
		INSERT INTO vouchers (id, code, owner_id, amount, status, type, created_at, expires_at, used_at)
		VALUES ($1, $2, $3, 50000, $4, 'SPECIAL', $5, $6, $7)`,
		id, code, ownerID, status, createdAt, expiresAt, usedAt)
	require.NoError(t, err)
	return id
}

func CountRows(t *testing.T, db DBLike, table string) int64 {
	t.Helper()

	var n int64
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates every public table.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil || len(tables) == 0 {
			truncateSQL.Store("")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
