package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndSubject(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	tok, err := svc.Generate("alice")
	require.NoError(t, err, "Generate should not return an error")
	assert.NotEmpty(t, tok, "token should not be empty")
	assert.Len(t, strings.Split(tok, "."), 3, "token should have three segments")

	subject, err := svc.Subject(tok)
	require.NoError(t, err, "Subject should not return an error")
	assert.Equal(t, "alice", subject, "subject should round-trip")
}

func TestGenerateEmptySubject(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	_, err := svc.Generate("")
	assert.ErrorIs(t, err, ErrEmptySubject)
}

func TestSubjectWrongSecret(t *testing.T) {
	issuer := NewService("test-secret", time.Hour)
	verifier := NewService("other-secret", time.Hour)

	tok, err := issuer.Generate("alice")
	require.NoError(t, err)

	_, err = verifier.Subject(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid, "wrong secret should be invalid, not expired")
}

func TestSubjectMalformed(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	_, err := svc.Subject("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSubjectExpired(t *testing.T) {
	svc := NewService("test-secret", -time.Minute)

	tok, err := svc.Generate("alice")
	require.NoError(t, err)

	_, err = svc.Subject(tok)
	assert.ErrorIs(t, err, ErrTokenExpired, "expiry must be distinguishable from invalidity")
}

func TestValid(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	tok, err := svc.Generate("alice")
	require.NoError(t, err)

	assert.True(t, svc.Valid("alice", "alice", tok))
	assert.False(t, svc.Valid("alice", "bob", tok), "subject mismatch should be false, not an error")
}

func TestValidExpiredDegradesToFalse(t *testing.T) {
	svc := NewService("test-secret", -time.Minute)

	tok, err := svc.Generate("alice")
	require.NoError(t, err)

	assert.False(t, svc.Valid("alice", "alice", tok), "expired token degrades to false on the lenient path")
}

func TestValidGarbage(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	assert.False(t, svc.Valid("alice", "alice", "garbage"))
}
