package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/serob111/pharmtest-sub000/session"
)

const refreshTimeout = 15 * time.Second

// sessionControl is the slice of *session.Manager the refresh transport
// needs: read the refresh token, rewrite the access token, end the session.
type sessionControl interface {
	Token(kind session.TokenKind) string
	SetAccessToken(token string) error
	End() error
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

// refreshTransport recovers protected requests that fail with 401 by
// exchanging the refresh token for a new access token and replaying the
// original request once.
//
// Concurrent 401s share a single in-flight exchange: a second exchange
// issued while the first is pending would consume a refresh token the
// backend has already rotated, so all failures are funneled through one
// singleflight call and released only after the store holds the new access
// token. A terminal exchange failure clears the session, fires the
// onExpired hook, and surfaces ErrSessionExpired to every waiting caller.
type refreshTransport struct {
	base       http.RoundTripper
	direct     *http.Client // bypasses interception for the exchange call itself
	sessions   sessionControl
	refreshURL string
	authPrefix string
	flight     singleflight.Group
	onExpired  func()
	logger     *slog.Logger
}

func (t *refreshTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Auth endpoints (obtain, two-factor, verify, refresh) are never
	// refresh-intercepted; a 401 there is a real answer, not a stale token.
	if strings.HasPrefix(req.URL.Path, t.authPrefix) {
		return t.base.RoundTrip(req)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}
	// Nothing to exchange without a refresh token; the 401 is the caller's
	// answer.
	if t.sessions.Token(session.RefreshToken) == "" {
		return resp, nil
	}

	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	resp.Body.Close()

	token, err := t.refresh(req.Context())
	if err != nil {
		return nil, err
	}

	retry, err := cloneForRetry(req, token)
	if err != nil {
		return nil, err
	}
	// The retry goes straight to the base transport: a second 401 is
	// returned to the caller as-is, never looped into another refresh.
	return t.base.RoundTrip(retry)
}

// refresh performs (or joins) the single in-flight token exchange and
// returns the new access token. The session store is updated before any
// caller is released to retry.
func (t *refreshTransport) refresh(ctx context.Context) (string, error) {
	token, err, _ := t.flight.Do("refresh", func() (any, error) {
		access, err := t.exchange(ctx)
		if err != nil {
			t.logger.Warn("token refresh failed, ending session", "error", err)
			if clearErr := t.sessions.End(); clearErr != nil {
				t.logger.Error("clearing session after failed refresh", "error", clearErr)
			}
			if t.onExpired != nil {
				t.onExpired()
			}
			return nil, fmt.Errorf("%w: %v", ErrSessionExpired, err)
		}
		// A store write failure is not a refresh failure: the session is
		// intact, so the error must not claim expiry.
		if err := t.sessions.SetAccessToken(access); err != nil {
			return nil, fmt.Errorf("storing refreshed access token: %w", err)
		}
		return access, nil
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

// exchange posts the refresh token to the refresh endpoint. The call runs
// on a detached context: the winning caller may be cancelled while other
// requests still wait on the shared flight.
func (t *refreshTransport) exchange(ctx context.Context) (string, error) {
	refresh := t.sessions.Token(session.RefreshToken)
	if refresh == "" {
		return "", fmt.Errorf("no refresh token in session")
	}

	body, err := json.Marshal(refreshRequest{Refresh: refresh})
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.refreshURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.direct.Do(req)
	if err != nil {
		return "", fmt.Errorf("refresh request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("refresh endpoint returned status %d", resp.StatusCode)
	}

	var out refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding refresh response: %w", err)
	}
	if out.Access == "" {
		return "", fmt.Errorf("refresh response missing access token")
	}
	return out.Access, nil
}

// cloneForRetry rebuilds the failed request with a replayable body and the
// refreshed bearer token.
func cloneForRetry(req *http.Request, token string) (*http.Request, error) {
	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("replaying request body: %w", err)
		}
		retry.Body = body
	}
	retry.Header.Set("Authorization", "Bearer "+token)
	return retry, nil
}
