package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-signing-secret"

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	svc, err := NewTokenService(testSecret, 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)
	return svc
}

func TestNewTokenServiceInvariants(t *testing.T) {
	_, err := NewTokenService("", 15*time.Minute, 24*time.Hour)
	assert.Error(t, err, "empty secret")

	_, err = NewTokenService(testSecret, 24*time.Hour, 24*time.Hour)
	assert.Error(t, err, "access TTL equal to refresh TTL")

	_, err = NewTokenService(testSecret, 48*time.Hour, 24*time.Hour)
	assert.Error(t, err, "access TTL longer than refresh TTL")
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t)
	t0 := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tok, err := svc.Issue("user-123", TokenAccess, t0)
	require.NoError(t, err)

	sub, err := svc.Validate(tok, TokenAccess, t0)
	require.NoError(t, err)
	assert.Equal(t, "user-123", sub)

	// Still valid one second before expiry.
	sub, err = svc.Validate(tok, TokenAccess, t0.Add(15*time.Minute-time.Second))
	require.NoError(t, err)
	assert.Equal(t, "user-123", sub)
}

func TestTokenExpiry(t *testing.T) {
	svc := newTestTokenService(t)
	t0 := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tok, err := svc.Issue("user-123", TokenAccess, t0)
	require.NoError(t, err)

	// now == expiry already counts as expired.
	_, err = svc.Validate(tok, TokenAccess, t0.Add(15*time.Minute))
	assert.ErrorIs(t, err, ErrExpired)

	_, err = svc.Validate(tok, TokenAccess, t0.Add(time.Hour))
	assert.ErrorIs(t, err, ErrExpired)
}

func TestTokenKindsNotInterchangeable(t *testing.T) {
	svc := newTestTokenService(t)
	t0 := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	access, err := svc.Issue("user-123", TokenAccess, t0)
	require.NoError(t, err)
	refresh, err := svc.Issue("user-123", TokenRefresh, t0)
	require.NoError(t, err)

	_, err = svc.Validate(access, TokenRefresh, t0)
	assert.ErrorIs(t, err, ErrWrongKind)

	_, err = svc.Validate(refresh, TokenAccess, t0)
	assert.ErrorIs(t, err, ErrWrongKind)
}

func TestTokenSignature(t *testing.T) {
	svc := newTestTokenService(t)
	t0 := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	other, err := NewTokenService("a-different-secret", 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)
	forged, err := other.Issue("user-123", TokenAccess, t0)
	require.NoError(t, err)

	_, err = svc.Validate(forged, TokenAccess, t0)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = svc.Validate("not-a-token", TokenAccess, t0)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = svc.Validate("", TokenAccess, t0)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestRefreshOutlivesAccess(t *testing.T) {
	svc := newTestTokenService(t)
	t0 := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	refresh, err := svc.Issue("user-123", TokenRefresh, t0)
	require.NoError(t, err)

	// Well past the access lifetime the refresh token still validates.
	sub, err := svc.Validate(refresh, TokenRefresh, t0.Add(23*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "user-123", sub)

	_, err = svc.Validate(refresh, TokenRefresh, t0.Add(24*time.Hour))
	assert.ErrorIs(t, err, ErrExpired)
}
