// Package session manages the client's authentication session: the
// persisted token record, its durable store, and the lifecycle around it.
package session

// TokenKind names a credential field of the session Record.
type TokenKind int

const (
	// AccessToken is the short-lived bearer credential attached to every
	// authenticated request.
	AccessToken TokenKind = iota
	// RefreshToken is the longer-lived credential used exclusively to mint
	// new access tokens.
	RefreshToken
	// AuthTempToken proves identity between password verification and OTP
	// confirmation; it grants no API access.
	AuthTempToken
)

// Record is the sole persisted session entity. Tokens are opaque strings;
// the client never inspects or validates their contents.
type Record struct {
	Access        string `json:"access"`
	Refresh       string `json:"refresh"`
	AuthTempToken string `json:"auth_temp_token,omitempty"`
	OTPRequired   bool   `json:"otp_required"`
}

// Token returns the named credential field, or "" if absent.
func (r *Record) Token(kind TokenKind) string {
	if r == nil {
		return ""
	}
	switch kind {
	case AccessToken:
		return r.Access
	case RefreshToken:
		return r.Refresh
	case AuthTempToken:
		return r.AuthTempToken
	}
	return ""
}

// Clone returns a copy of the record, or nil for a nil record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	cp := *r
	return &cp
}
