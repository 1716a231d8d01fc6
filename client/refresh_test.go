package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serob111/pharmtest-sub000/internal/apitest"
	"github.com/serob111/pharmtest-sub000/session"
)

func newTestClient(t *testing.T, backend *apitest.Server, opts ...Option) (*Client, *session.Manager) {
	t.Helper()
	mgr := session.NewManager(session.NewMemoryStore(),
		session.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	c, err := New(backend.URL, mgr, opts...)
	require.NoError(t, err)
	return c, mgr
}

func login(t *testing.T, c *Client) *session.Record {
	t.Helper()
	record, err := c.Auth.Login(context.Background(), apitest.Email, apitest.Password)
	require.NoError(t, err)
	return record
}

func TestProtectedRequestCarriesBearerToken(t *testing.T) {
	backend := apitest.NewServer()
	defer backend.Close()
	c, mgr := newTestClient(t, backend)

	record := login(t, c)
	assert.Equal(t, &session.Record{Access: "a1", Refresh: "r1"}, record)
	assert.Equal(t, record, mgr.Current())

	devices, meta, err := c.Devices.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "Cabinet A", devices[0].Name)
	assert.Equal(t, 1, meta.TotalCount)

	headers := backend.AuthHeaders()
	require.Len(t, headers, 1)
	assert.Equal(t, "Bearer a1", headers[0])
}

func TestUnauthenticatedRequestSentWithoutHeader(t *testing.T) {
	backend := apitest.NewServer()
	defer backend.Close()
	c, _ := newTestClient(t, backend)

	_, _, err := c.Devices.List(context.Background(), ListOptions{})
	assert.True(t, IsUnauthorized(err), "expected 401, got %v", err)

	headers := backend.AuthHeaders()
	require.Len(t, headers, 1)
	assert.Equal(t, "", headers[0])
}

func TestExpiredTokenRefreshedAndRetriedOnce(t *testing.T) {
	backend := apitest.NewServer()
	defer backend.Close()
	c, mgr := newTestClient(t, backend)
	login(t, c)

	backend.ExpireAccessTokens()

	devices, _, err := c.Devices.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Len(t, devices, 1)

	assert.Equal(t, 1, backend.RefreshCalls())
	// Only the access token changed; everything else is untouched.
	assert.Equal(t, &session.Record{Access: "a2", Refresh: "r1"}, mgr.Current())

	headers := backend.AuthHeaders()
	require.Len(t, headers, 2)
	assert.Equal(t, "Bearer a1", headers[0])
	assert.Equal(t, "Bearer a2", headers[1])
}

func TestRetryReplaysRequestBody(t *testing.T) {
	backend := apitest.NewServer()
	defer backend.Close()
	c, _ := newTestClient(t, backend)
	login(t, c)

	backend.ExpireAccessTokens()

	order, err := c.Orders.UpdateStatus(context.Background(), "ord-1", "fulfilled")
	require.NoError(t, err)
	assert.Equal(t, "ord-1", order.ID)
	assert.Equal(t, "fulfilled", order.Status)
	assert.Equal(t, 1, backend.RefreshCalls())
}

func TestConcurrentFailuresShareOneRefresh(t *testing.T) {
	backend := apitest.NewServer()
	defer backend.Close()
	c, _ := newTestClient(t, backend)
	login(t, c)

	backend.SetRefreshDelay(300 * time.Millisecond)
	backend.ExpireAccessTokens()

	const n = 6
	var wg sync.WaitGroup
	errs := make([]error, n)
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, _, errs[i] = c.Devices.List(context.Background(), ListOptions{})
		}(i)
	}
	close(start)
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "request %d", i)
	}
	assert.Equal(t, 1, backend.RefreshCalls())

	// Every retry went out with the same refreshed token.
	var retried int
	for _, h := range backend.AuthHeaders() {
		if h == "Bearer a2" {
			retried++
		}
	}
	assert.Equal(t, n, retried)
}

func TestSecondFailureSurfacedWithoutSecondRefresh(t *testing.T) {
	backend := apitest.NewServer()
	defer backend.Close()
	c, mgr := newTestClient(t, backend)
	login(t, c)

	backend.IssueStaleAccess()
	backend.ExpireAccessTokens()

	_, _, err := c.Devices.List(context.Background(), ListOptions{})
	assert.True(t, IsUnauthorized(err), "expected the retry's 401, got %v", err)
	assert.Equal(t, 1, backend.RefreshCalls())
	// The session survives: only a failed exchange is terminal.
	assert.NotNil(t, mgr.Current())
}

func TestTerminalRefreshFailureClearsSession(t *testing.T) {
	backend := apitest.NewServer()
	defer backend.Close()

	var expired atomic.Int32
	c, mgr := newTestClient(t, backend, WithSessionExpiredHook(func() {
		expired.Add(1)
	}))
	login(t, c)

	backend.RejectRefresh()
	backend.ExpireAccessTokens()

	_, _, err := c.Devices.List(context.Background(), ListOptions{})
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Nil(t, mgr.Current())
	assert.Equal(t, int32(1), expired.Load())
	assert.Equal(t, 1, backend.RefreshCalls())
}

func TestConcurrentTerminalFailureFiresHookOnce(t *testing.T) {
	backend := apitest.NewServer()
	defer backend.Close()

	var expired atomic.Int32
	c, mgr := newTestClient(t, backend, WithSessionExpiredHook(func() {
		expired.Add(1)
	}))
	login(t, c)

	backend.SetRefreshDelay(300 * time.Millisecond)
	backend.RejectRefresh()
	backend.ExpireAccessTokens()

	const n = 4
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = c.Devices.List(context.Background(), ListOptions{})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.ErrorIs(t, err, ErrSessionExpired, "request %d", i)
	}
	assert.Nil(t, mgr.Current())
	assert.Equal(t, int32(1), expired.Load())
}

func TestAuthEndpointsExemptBehindBasePathPrefix(t *testing.T) {
	backend := apitest.NewServerAt("/console")
	defer backend.Close()

	mgr := session.NewManager(session.NewMemoryStore(),
		session.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	c, err := New(backend.URL+"/console", mgr, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	login(t, c)

	// A rejected login while a valid session exists is a real 401, not a
	// stale token; it must not spend a token exchange or touch the session.
	_, err = c.Auth.Login(context.Background(), apitest.Email, "wrong-password")
	assert.True(t, IsUnauthorized(err), "expected 401, got %v", err)
	assert.Equal(t, 0, backend.RefreshCalls())
	assert.Equal(t, &session.Record{Access: "a1", Refresh: "r1"}, mgr.Current())

	// Protected routes under the prefix still refresh normally.
	backend.ExpireAccessTokens()
	_, _, err = c.Devices.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, backend.RefreshCalls())
}

// saveFailStore fails Save on demand, simulating a broken state store.
type saveFailStore struct {
	session.Store
	failSaves atomic.Bool
}

func (s *saveFailStore) Save(record *session.Record) error {
	if s.failSaves.Load() {
		return errors.New("disk full")
	}
	return s.Store.Save(record)
}

func TestStoreWriteFailureAfterRefreshIsNotExpiry(t *testing.T) {
	backend := apitest.NewServer()
	defer backend.Close()

	store := &saveFailStore{Store: session.NewMemoryStore()}
	mgr := session.NewManager(store,
		session.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	var expired atomic.Int32
	c, err := New(backend.URL, mgr,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithSessionExpiredHook(func() {
			expired.Add(1)
		}))
	require.NoError(t, err)
	login(t, c)

	backend.ExpireAccessTokens()
	store.failSaves.Store(true)

	_, _, err = c.Devices.List(context.Background(), ListOptions{})
	require.Error(t, err)
	// The exchange succeeded; only the local write failed. The session is
	// intact, so the error must not claim expiry and the hook stays silent.
	assert.NotErrorIs(t, err, ErrSessionExpired)
	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, int32(0), expired.Load())
	assert.Equal(t, &session.Record{Access: "a1", Refresh: "r1"}, mgr.Current())
}

func TestRefreshWithoutSessionFailsFast(t *testing.T) {
	backend := apitest.NewServer()
	defer backend.Close()
	c, mgr := newTestClient(t, backend)
	login(t, c)

	// Session vanished between the 401 and the exchange.
	require.NoError(t, mgr.End())
	backend.ExpireAccessTokens()

	_, _, err := c.Devices.List(context.Background(), ListOptions{})
	assert.True(t, IsUnauthorized(err), "expected plain 401, got %v", err)
	assert.Equal(t, 0, backend.RefreshCalls())
}
