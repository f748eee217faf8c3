//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"homeclean/internal/domain/user"
	"homeclean/internal/pkg/config"
	"homeclean/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens the way the auth provider does, signed with the test secret.
type JWTHelper struct {
	cfg config.AuthConfig
}

func NewJWTHelper(cfg config.AuthConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.JWTSecret, h.cfg.Issuer).GenerateToken(userID, role, time.Hour)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.JWTSecret, h.cfg.Issuer).GenerateToken(userID, role, -time.Minute)
	require.NoError(t, err)
	return token
}
