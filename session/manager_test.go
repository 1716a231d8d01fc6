package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	mu     sync.Mutex
	tokens []string
	err    error
	called chan string
}

func newFakeVerifier(err error) *fakeVerifier {
	return &fakeVerifier{err: err, called: make(chan string, 8)}
}

func (v *fakeVerifier) Verify(ctx context.Context, token string) error {
	v.mu.Lock()
	v.tokens = append(v.tokens, token)
	v.mu.Unlock()
	v.called <- token
	return v.err
}

func waitForVerify(t *testing.T, v *fakeVerifier) string {
	t.Helper()
	select {
	case token := <-v.called:
		return token
	case <-time.After(2 * time.Second):
		t.Fatal("verification call never happened")
		return ""
	}
}

func TestStartPersistsRecord(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store)

	record := &Record{Access: "a1", Refresh: "r1"}
	require.NoError(t, m.Start(context.Background(), record))

	assert.Equal(t, record, store.Load())
	assert.Equal(t, record, m.Current())
}

func TestStartNilRecord(t *testing.T) {
	m := NewManager(NewMemoryStore())
	assert.Error(t, m.Start(context.Background(), nil))
}

func TestStartFullSessionVerifies(t *testing.T) {
	verifier := newFakeVerifier(nil)
	m := NewManager(NewMemoryStore(), WithVerifier(verifier))

	require.NoError(t, m.Start(context.Background(), &Record{Access: "a1", Refresh: "r1"}))
	assert.Equal(t, "a1", waitForVerify(t, verifier))
}

func TestStartPartialSessionSkipsVerify(t *testing.T) {
	verifier := newFakeVerifier(nil)
	m := NewManager(NewMemoryStore(), WithVerifier(verifier))

	require.NoError(t, m.Start(context.Background(), &Record{AuthTempToken: "t1", OTPRequired: true}))

	select {
	case <-verifier.called:
		t.Fatal("verification must not run for a pending-OTP session")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestStartVerifyFailureIsSwallowed(t *testing.T) {
	verifier := newFakeVerifier(errors.New("verify rejected"))
	m := NewManager(NewMemoryStore(),
		WithVerifier(verifier),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	record := &Record{Access: "a1", Refresh: "r1"}
	require.NoError(t, m.Start(context.Background(), record))
	waitForVerify(t, verifier)

	// The session stays valid regardless of the verification outcome.
	assert.Equal(t, record, m.Current())
}

func TestEndClearsSession(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store)
	require.NoError(t, m.Start(context.Background(), &Record{Access: "a1"}))

	require.NoError(t, m.End())
	assert.Nil(t, store.Load())
	assert.Nil(t, m.Current())
}

func TestTokenReadsCurrentRecord(t *testing.T) {
	m := NewManager(NewMemoryStore())
	assert.Equal(t, "", m.Token(AccessToken))

	require.NoError(t, m.Start(context.Background(), &Record{Access: "a1", Refresh: "r1"}))
	assert.Equal(t, "a1", m.Token(AccessToken))
	assert.Equal(t, "r1", m.Token(RefreshToken))
	assert.Equal(t, "", m.Token(AuthTempToken))
}

func TestSetAccessTokenMutatesOnlyAccess(t *testing.T) {
	m := NewManager(NewMemoryStore())
	require.NoError(t, m.Start(context.Background(), &Record{Access: "a1", Refresh: "r1"}))

	require.NoError(t, m.SetAccessToken("a2"))
	assert.Equal(t, &Record{Access: "a2", Refresh: "r1"}, m.Current())
}

func TestSetAccessTokenWithoutSession(t *testing.T) {
	m := NewManager(NewMemoryStore())
	assert.Error(t, m.SetAccessToken("a2"))
}
