// Copyright (c) 2026 Workbay. All rights reserved.

package sec_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workbay/workbay/internal/platform/sec"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestCodec(t *testing.T, ttl time.Duration) *sec.TokenCodec {
	t.Helper()
	codec, err := sec.NewTokenCodec(testSecret, "workbay.dev", ttl)
	require.NoError(t, err)
	return codec
}

/*
TestNewTokenCodec_Validation verifies constructor guards against unusable
configurations.
*/
func TestNewTokenCodec_Validation(t *testing.T) {
	_, err := sec.NewTokenCodec("", "workbay.dev", time.Hour)
	assert.Error(t, err)

	_, err = sec.NewTokenCodec(testSecret, "workbay.dev", 0)
	assert.Error(t, err)

	_, err = sec.NewTokenCodec(testSecret, "workbay.dev", -time.Minute)
	assert.Error(t, err)
}

/*
TestTokenCodec_RoundTrip verifies that a token issued for an identity
verifies back to the same claims.
*/
func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	token, err := codec.Issue("user-123", "grace", "developer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "grace", claims.Username)
	assert.Equal(t, "developer", claims.Role)
	assert.Equal(t, "workbay.dev", claims.Issuer)

	// Expiry sits roughly one TTL in the future.
	require.NotNil(t, claims.ExpiresAt)
	remaining := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, remaining, 55*time.Minute)
	assert.LessOrEqual(t, remaining, time.Hour)
}

/*
TestTokenCodec_TamperedToken verifies that flipping a character anywhere in
the token invalidates it.
*/
func TestTokenCodec_TamperedToken(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	token, err := codec.Issue("user-123", "grace", "developer")
	require.NoError(t, err)

	// Flip one character near the end (inside the signature segment).
	tampered := []byte(token)
	position := len(tampered) - 2
	if tampered[position] == 'A' {
		tampered[position] = 'B'
	} else {
		tampered[position] = 'A'
	}

	_, err = codec.Verify(string(tampered))
	require.Error(t, err)
	assert.True(t, errors.Is(err, sec.ErrInvalidToken))
}

/*
TestTokenCodec_WrongSecret verifies a token signed with one secret fails
verification with another.
*/
func TestTokenCodec_WrongSecret(t *testing.T) {
	issuer := newTestCodec(t, time.Hour)

	other, err := sec.NewTokenCodec("another-secret-another-secret-xx", "workbay.dev", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue("user-123", "grace", "developer")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

/*
TestTokenCodec_ExpiredToken verifies expiry is enforced and distinguishable
via errors.Is for diagnostics.
*/
func TestTokenCodec_ExpiredToken(t *testing.T) {
	codec := newTestCodec(t, time.Millisecond)

	token, err := codec.Issue("user-123", "grace", "developer")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = codec.Verify(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sec.ErrInvalidToken))
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

/*
TestTokenCodec_Garbage verifies non-JWT strings are rejected.
*/
func TestTokenCodec_Garbage(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	for _, input := range []string{"", "garbage", "a.b.c", "ey.ey.ey"} {
		_, err := codec.Verify(input)
		assert.Error(t, err, "input %q should fail", input)
	}
}

/*
TestUserRole_Grants covers the non-hierarchical role model with the admin
override.
*/
func TestUserRole_Grants(t *testing.T) {
	tests := []struct {
		name    string
		holder  sec.UserRole
		target  sec.UserRole
		granted bool
	}{
		{"developer_is_developer", sec.RoleDeveloper, sec.RoleDeveloper, true},
		{"client_is_client", sec.RoleClient, sec.RoleClient, true},
		{"developer_not_client", sec.RoleDeveloper, sec.RoleClient, false},
		{"client_not_developer", sec.RoleClient, sec.RoleDeveloper, false},
		{"admin_passes_developer", sec.RoleAdmin, sec.RoleDeveloper, true},
		{"admin_passes_client", sec.RoleAdmin, sec.RoleClient, true},
		{"admin_passes_admin", sec.RoleAdmin, sec.RoleAdmin, true},
		{"developer_not_admin", sec.RoleDeveloper, sec.RoleAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.granted, tt.holder.Grants(tt.target))
		})
	}
}
