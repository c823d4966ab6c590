package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotus-studio/lotus/internal/shared"
)

func TestTokenRoundTrip(t *testing.T) {
	codec := NewTokenCodec("testSecretKeyForTokens1234567890", time.Hour)

	token, err := codec.Issue("user@example.com", time.Now())
	require.NoError(t, err)

	subject, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", subject)
}

func TestTokenExpiredWithNonPositiveWindow(t *testing.T) {
	for _, ttl := range []time.Duration{0, -time.Second} {
		codec := NewTokenCodec("testSecretKeyForTokens1234567890", ttl)

		token, err := codec.Issue("expired@example.com", time.Now())
		require.NoError(t, err)

		_, err = codec.Verify(token)
		assert.ErrorIs(t, err, shared.ErrInvalidToken)
	}
}

func TestTokenRejectedAtExactExpiry(t *testing.T) {
	issued := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	codec := NewTokenCodec("testSecretKeyForTokens1234567890", time.Hour)

	token, err := codec.Issue("edge@example.com", issued)
	require.NoError(t, err)

	codec.now = func() time.Time { return issued.Add(time.Hour) }
	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, shared.ErrInvalidToken)

	codec.now = func() time.Time { return issued.Add(time.Hour - time.Second) }
	subject, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "edge@example.com", subject)
}

func TestTokenRejectsForeignSignature(t *testing.T) {
	signer := NewTokenCodec("anotherSecretKey12345678901", time.Hour)
	verifier := NewTokenCodec("testSecretKeyForTokens1234567890", time.Hour)

	token, err := signer.Issue("signed@example.com", time.Now())
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, shared.ErrInvalidToken)
}

func TestTokenRejectsGarbageInput(t *testing.T) {
	codec := NewTokenCodec("testSecretKeyForTokens1234567890", time.Hour)

	for _, input := range []string{"", " ", "not.a.token", "invalid.token.value"} {
		_, err := codec.Verify(input)
		assert.ErrorIs(t, err, shared.ErrInvalidToken, "input %q", input)
	}
}
