//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"courtbook/internal/domain/member"
	"courtbook/internal/pkg/config"
	"courtbook/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TokenFor mints a bearer token the way the identity provider would. There is
// no login endpoint in this service, so tests sign tokens with the shared
// secret directly.
func TokenFor(t *testing.T, cfg config.JWTConfig, memberID uuid.UUID, role member.Role) string {
	t.Helper()

	duration, err := time.ParseDuration(cfg.Duration)
	require.NoError(t, err)

	token, err := jwt.NewService(cfg.Secret, duration).GenerateToken(memberID, role)
	require.NoError(t, err)
	return token
}

// ExpiredTokenFor signs a token that is already past its expiry.
func ExpiredTokenFor(t *testing.T, cfg config.JWTConfig, memberID uuid.UUID, role member.Role) string {
	t.Helper()

	token, err := jwt.NewService(cfg.Secret, 1*time.Millisecond).GenerateToken(memberID, role)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
