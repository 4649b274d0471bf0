//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"kuponbot/internal/domain/session"
	"kuponbot/internal/pkg/config"
	"kuponbot/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) service(t *testing.T) *jwt.Service {
	t.Helper()
	d, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	return jwt.NewService(h.cfg.Secret, d)
}

func (h *JWTHelper) AdminToken(t *testing.T) string {
	t.Helper()
	token, err := h.service(t).GenerateToken("e2e", session.RoleAdmin)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CustomerToken(t *testing.T) string {
	t.Helper()
	token, err := h.service(t).GenerateToken("e2e-customer", session.RoleCustomer)
	require.NoError(t, err)
	return token
}
