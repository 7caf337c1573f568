package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	testSecret  = []byte("0123456789abcdef0123456789abcdef")
	otherSecret = []byte("fedcba9876543210fedcba9876543210")
)

func TestNewSignerValidation(t *testing.T) {
	_, err := NewSigner([]byte("short"), "robochamp", time.Minute)
	require.Error(t, err)

	_, err = NewSigner(testSecret, "", time.Minute)
	require.Error(t, err)

	_, err = NewSigner(testSecret, "robochamp", 0)
	require.Error(t, err)

	_, err = NewSigner(testSecret, "robochamp", time.Minute)
	require.NoError(t, err)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	s, err := NewSigner(testSecret, "robochamp", 15*time.Minute)
	require.NoError(t, err)

	now := time.Now()
	token, err := s.Sign("user-1", "a@x.com", "USER", now)
	require.NoError(t, err)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "a@x.com", claims.Email)
	require.Equal(t, "USER", claims.Role)
	require.Equal(t, "robochamp", claims.Issuer)
	require.NotEmpty(t, claims.ID)
	require.WithinDuration(t, now.Add(15*time.Minute), claims.ExpiresAt.Time, time.Second)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	access, err := NewSigner(testSecret, "robochamp", 15*time.Minute)
	require.NoError(t, err)
	refresh, err := NewSigner(otherSecret, "robochamp", 7*24*time.Hour)
	require.NoError(t, err)

	token, err := refresh.Sign("user-1", "a@x.com", "USER", time.Now())
	require.NoError(t, err)

	// A refresh token must never verify as an access token.
	_, err = access.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	s, err := NewSigner(testSecret, "robochamp", time.Minute)
	require.NoError(t, err)

	token, err := s.Sign("user-1", "a@x.com", "USER", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = s.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyRejectsIssuerMismatch(t *testing.T) {
	a, err := NewSigner(testSecret, "robochamp", time.Minute)
	require.NoError(t, err)
	b, err := NewSigner(testSecret, "someone-else", time.Minute)
	require.NoError(t, err)

	token, err := b.Sign("user-1", "a@x.com", "USER", time.Now())
	require.NoError(t, err)

	_, err = a.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	s, err := NewSigner(testSecret, "robochamp", time.Minute)
	require.NoError(t, err)

	_, err = s.Verify("not.a.jwt")
	require.ErrorIs(t, err, ErrMalformed)

	token, err := s.Sign("user-1", "a@x.com", "USER", time.Now())
	require.NoError(t, err)

	// Tamper with the payload but keep the structure.
	parts := strings.Split(token, ".")
	parts[1] = strings.Repeat("A", len(parts[1]))
	_, err = s.Verify(strings.Join(parts, "."))
	require.Error(t, err)
}
