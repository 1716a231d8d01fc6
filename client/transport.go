package client

import (
	"net/http"

	"github.com/serob111/pharmtest-sub000/session"
)

// tokenSource reads the current access token on demand. Satisfied by
// *session.Manager.
type tokenSource interface {
	Token(kind session.TokenKind) string
}

// authTransport attaches the current access token as a bearer Authorization
// header to every outgoing request. It never blocks, retries, or inspects
// the response; with no token present the request goes out unauthenticated
// and the backend rejects it.
type authTransport struct {
	base   http.RoundTripper
	tokens tokenSource
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := t.tokens.Token(session.AccessToken)
	if token != "" && req.Header.Get("Authorization") == "" {
		// Clone per RoundTripper contract: the caller's request is not mutated.
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return t.base.RoundTrip(req)
}
