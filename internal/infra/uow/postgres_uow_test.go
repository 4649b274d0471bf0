//go:build unit

package uow

import (
	"testing"
	"time"

	"kuponbot/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestShouldRetry(t *testing.T) {
	serialization := &pgconn.PgError{Code: pgErrCodeSerializationFailure}
	deadlock := errs.Wrap(&pgconn.PgError{Code: pgErrCodeDeadlockDetected}, "insert voucher")
	unique := &pgconn.PgError{Code: "23505"}

	assert.True(t, shouldRetry(serialization, 0, 3))
	assert.True(t, shouldRetry(deadlock, 2, 3))
	assert.False(t, shouldRetry(deadlock, 3, 3))
	assert.False(t, shouldRetry(unique, 0, 3))
	assert.False(t, shouldRetry(assert.AnError, 0, 3))
}

func TestCalculateBackoff(t *testing.T) {
	base := 100 * time.Millisecond
	for attempt := 0; attempt < 4; attempt++ {
		wait := calculateBackoff(attempt, base)
		floor := time.Duration(1<<attempt) * base
		assert.GreaterOrEqual(t, wait, floor)
		assert.Less(t, wait, floor+floor/5+time.Nanosecond)
	}
}
