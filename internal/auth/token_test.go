package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret-for-unit-tests"

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)

	token, err := m.Issue("user-123", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt, time.Minute)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
}

func TestTokenExpired(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	issuedAt := time.Now().Add(-2 * time.Hour)

	m.now = func() time.Time { return issuedAt }
	token, err := m.Issue("user-123", "alice@example.com")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenTamperedSignature(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)

	token, err := m.Issue("user-123", "alice@example.com")
	require.NoError(t, err)

	last := token[len(token)-1]
	flipped := byte('A')
	if last == flipped {
		flipped = 'B'
	}
	tampered := token[:len(token)-1] + string(flipped)

	_, err = m.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager("one-secret", time.Hour)
	verifier := NewTokenManager("another-secret", time.Hour)

	token, err := issuer.Issue("user-123", "alice@example.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWrongAlgorithmRejected(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)

	// token signed with the right secret but HS512 must still be rejected
	now := time.Now()
	claims := tokenClaims{
		UserID: "user-123",
		Email:  "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenMalformed(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
