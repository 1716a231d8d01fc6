package session

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"
)

const verifyTimeout = 10 * time.Second

// Verifier performs the best-effort access-token verification call issued
// when a full session starts. Implemented by the API client's auth service.
type Verifier interface {
	Verify(ctx context.Context, token string) error
}

// Manager is the session lifecycle controller. It owns all mutation of the
// session Record; the durable Store is the single source of truth, so a
// refreshed token is visible to every subsequent read the moment it lands.
type Manager struct {
	store    Store
	verifier Verifier
	logger   *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithVerifier sets the verifier used for the post-login check.
func WithVerifier(v Verifier) ManagerOption {
	return func(m *Manager) {
		m.verifier = v
	}
}

// WithLogger sets the structured logger. If not set, a default JSON logger
// writing to stderr is used.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a session Manager on top of the given store.
func NewManager(store Store, opts ...ManagerOption) *Manager {
	m := &Manager{store: store}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return m
}

// SetVerifier wires the verifier after construction. The API client depends
// on the Manager for tokens, so the verification hook is attached once the
// client exists.
func (m *Manager) SetVerifier(v Verifier) {
	m.verifier = v
}

// Start stores record as the new session, replacing any prior one. For a
// full session (no pending OTP) it fires a best-effort verification of the
// access token; verification failures are logged and discarded.
func (m *Manager) Start(ctx context.Context, record *Record) error {
	if record == nil {
		return errors.New("nil session record")
	}
	if err := m.store.Save(record); err != nil {
		return err
	}
	if !record.OTPRequired && m.verifier != nil {
		token := record.Access
		go func() {
			vctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), verifyTimeout)
			defer cancel()
			if err := m.verifier.Verify(vctx, token); err != nil {
				m.logger.Warn("session verification failed", "error", err)
			}
		}()
	}
	return nil
}

// End clears the session. Safe to call when no session exists.
func (m *Manager) End() error {
	return m.store.Clear()
}

// Current returns the persisted record, or nil when logged out.
func (m *Manager) Current() *Record {
	return m.store.Load()
}

// Token reads the named credential of the current record, or "" if no
// record exists or the field is absent.
func (m *Manager) Token(kind TokenKind) string {
	return m.store.Load().Token(kind)
}

// SetAccessToken rewrites only the access token of the current record,
// leaving every other field untouched. Used by the refresh transport after
// a successful token exchange.
func (m *Manager) SetAccessToken(token string) error {
	record := m.store.Load()
	if record == nil {
		return errors.New("no session to update")
	}
	record.Access = token
	return m.store.Save(record)
}
