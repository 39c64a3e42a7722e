package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewTokenManager("secret", "dazzlr", time.Hour)
	token, exp, err := m.Issue("user-1")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	uid, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)
}

func TestVerifyRejects(t *testing.T) {
	m := NewTokenManager("secret", "dazzlr", time.Hour)
	token, _, err := m.Issue("user-1")
	require.NoError(t, err)

	_, err = NewTokenManager("other", "dazzlr", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewTokenManager("secret", "someone-else", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Verify("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewTokenManager("secret", "dazzlr", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, _, err := expired.Issue("user-1")
	require.NoError(t, err)
	_, err = m.Verify(old)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
