package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/serob111/pharmtest-sub000/session"
)

const otpDigits = 6

// AuthState is the client's position in the login flow.
type AuthState int

const (
	// AwaitingCredentials means no session exists.
	AwaitingCredentials AuthState = iota
	// AwaitingOTP means a partial session holds a temporary auth token and
	// the user still owes a one-time code.
	AwaitingOTP
	// Authenticated means a full session with access and refresh tokens exists.
	Authenticated
)

func (s AuthState) String() string {
	switch s {
	case AwaitingCredentials:
		return "awaiting credentials"
	case AwaitingOTP:
		return "awaiting one-time code"
	case Authenticated:
		return "authenticated"
	}
	return "unknown"
}

// AuthService drives the login, two-factor, and verification endpoints.
type AuthService struct {
	client *Client
}

var _ session.Verifier = (*AuthService)(nil)

type obtainRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type twoFactorRequest struct {
	TOTPToken     string `json:"totp_token"`
	AuthTempToken string `json:"auth_temp_token"`
}

type verifyRequest struct {
	Token string `json:"token"`
}

// State derives the current auth state from the persisted session.
func (s *AuthService) State() AuthState {
	record := s.client.sessions.Current()
	switch {
	case record == nil:
		return AwaitingCredentials
	case record.OTPRequired:
		return AwaitingOTP
	default:
		return Authenticated
	}
}

// Login exchanges credentials for a session. The returned record either is
// full (Authenticated) or carries a temporary auth token with OTPRequired
// set, in which case ConfirmTwoFactor must follow. Either way the record is
// started (persisted) so the flow survives a process restart.
func (s *AuthService) Login(ctx context.Context, email, password string) (*session.Record, error) {
	var record session.Record
	err := s.client.do(ctx, http.MethodPost, s.client.authBase+"/obtain/", obtainRequest{
		Email:    email,
		Password: password,
	}, &record)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := s.client.sessions.Start(ctx, &record); err != nil {
		return nil, fmt.Errorf("starting session: %w", err)
	}
	return record.Clone(), nil
}

// ConfirmTwoFactor submits the one-time code for a pending partial session.
// On success the full session replaces the partial one. On any failure the
// session is ended outright so a stale temp token cannot be replayed later.
func (s *AuthService) ConfirmTwoFactor(ctx context.Context, code string) (*session.Record, error) {
	code = normalizeOTPCode(code)
	if !validOTPCode(code) {
		return nil, fmt.Errorf("one-time code must be %d digits", otpDigits)
	}
	tempToken := s.client.sessions.Token(session.AuthTempToken)
	if tempToken == "" {
		return nil, ErrNoPendingTwoFactor
	}

	var record session.Record
	err := s.client.do(ctx, http.MethodPost, s.client.authBase+"/obtain/two-factor/", twoFactorRequest{
		TOTPToken:     code,
		AuthTempToken: tempToken,
	}, &record)
	if err != nil {
		if endErr := s.client.sessions.End(); endErr != nil {
			s.client.logger.Error("ending session after failed two-factor", "error", endErr)
		}
		return nil, fmt.Errorf("two-factor confirmation: %w", err)
	}
	record.OTPRequired = false
	record.AuthTempToken = ""
	if err := s.client.sessions.Start(ctx, &record); err != nil {
		return nil, fmt.Errorf("starting session: %w", err)
	}
	return record.Clone(), nil
}

// Verify checks an access token against the backend. Callers treat the
// result as best-effort; the session Manager logs and discards failures.
func (s *AuthService) Verify(ctx context.Context, token string) error {
	return s.client.do(ctx, http.MethodPost, s.client.authBase+"/verify/", verifyRequest{Token: token}, nil)
}

// Logout ends the local session. The backend holds no session state beyond
// the tokens themselves, so no remote call is involved.
func (s *AuthService) Logout() error {
	return s.client.sessions.End()
}

func normalizeOTPCode(code string) string {
	return strings.TrimSpace(strings.ReplaceAll(code, " ", ""))
}

func validOTPCode(code string) bool {
	if len(code) != otpDigits {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
