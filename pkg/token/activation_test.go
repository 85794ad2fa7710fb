package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-signing-secret"

func pendingState() AccountState {
	return AccountState{
		ID:           uuid.New(),
		IsActive:     false,
		PasswordHash: "$2a$10$somebcrypthashvalue",
	}
}

func TestIssueAndVerify(t *testing.T) {
	tk := NewActivationTokenizer(testSecret, time.Hour)
	state := pendingState()

	raw, err := tk.Issue(state)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	assert.True(t, tk.Verify(state, raw))
}

func TestVerify_RejectsForeignAccount(t *testing.T) {
	tk := NewActivationTokenizer(testSecret, time.Hour)
	state := pendingState()

	raw, err := tk.Issue(state)
	require.NoError(t, err)

	other := state
	other.ID = uuid.New()
	assert.False(t, tk.Verify(other, raw))
}

func TestVerify_RejectsAfterStateChange(t *testing.T) {
	tk := NewActivationTokenizer(testSecret, time.Hour)
	state := pendingState()

	raw, err := tk.Issue(state)
	require.NoError(t, err)

	t.Run("activation invalidates", func(t *testing.T) {
		activated := state
		activated.IsActive = true
		assert.False(t, tk.Verify(activated, raw))
	})

	t.Run("password change invalidates", func(t *testing.T) {
		changed := state
		changed.PasswordHash = "$2a$10$anotherbcrypthashvalue"
		assert.False(t, tk.Verify(changed, raw))
	})

	t.Run("login invalidates", func(t *testing.T) {
		loggedIn := state
		now := time.Now()
		loggedIn.LastLogin = &now
		assert.False(t, tk.Verify(loggedIn, raw))
	})
}

func TestVerify_RejectsExpired(t *testing.T) {
	tk := NewActivationTokenizer(testSecret, time.Nanosecond)
	state := pendingState()

	raw, err := tk.Issue(state)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	assert.False(t, tk.Verify(state, raw))
}

func TestVerify_RejectsGarbage(t *testing.T) {
	tk := NewActivationTokenizer(testSecret, time.Hour)
	state := pendingState()

	assert.False(t, tk.Verify(state, ""))
	assert.False(t, tk.Verify(state, "not.a.jwt"))
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	issuer := NewActivationTokenizer("one-secret-value-here", time.Hour)
	verifier := NewActivationTokenizer("a-different-secret!!", time.Hour)
	state := pendingState()

	raw, err := issuer.Issue(state)
	require.NoError(t, err)

	assert.False(t, verifier.Verify(state, raw))
}

func TestDefaultTTLFallback(t *testing.T) {
	tk := NewActivationTokenizer(testSecret, 0)
	assert.Equal(t, DefaultActivationTTL, tk.ttl)
}
