package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACService_RoundTrip(t *testing.T) {
	s := NewHMACService("secret", "talent-match", time.Hour)

	tok, err := s.GenerateToken("ops@example.com", RoleRecruiter)
	require.NoError(t, err)

	c, err := s.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, RoleRecruiter, c.Role)
	assert.Equal(t, "ops@example.com", c.Subject)
	assert.Equal(t, "talent-match", c.Issuer)
}

func TestHMACService_Expired(t *testing.T) {
	s := NewHMACService("secret", "", time.Minute)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	tok, err := s.GenerateToken("svc", RoleAdmin)
	require.NoError(t, err)

	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = s.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACService_Rejects(t *testing.T) {
	s := NewHMACService("secret", "talent-match", time.Hour)

	_, err := s.GenerateToken("svc", "candidate")
	assert.ErrorIs(t, err, ErrUnknownRole)

	other := NewHMACService("other", "talent-match", time.Hour)
	tok, err := other.GenerateToken("svc", RoleAdmin)
	require.NoError(t, err)
	_, err = s.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	wrongIssuer := NewHMACService("secret", "someone-else", time.Hour)
	tok, err = wrongIssuer.GenerateToken("svc", RoleAdmin)
	require.NoError(t, err)
	_, err = s.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = s.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_RejectsUnknownRoleClaim(t *testing.T) {
	c := Claims{
		Role: "candidate",
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewHMACService("secret", "", time.Hour).ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
