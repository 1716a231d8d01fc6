// Package apitest provides a fake pharmtest backend for exercising the
// client's auth and refresh behavior in tests.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
)

const (
	// Email and Password are the credentials the fake accepts.
	Email    = "admin@pharmtest.local"
	Password = "correct-horse"
	// OTPCode is the one-time code the fake accepts when OTP is required.
	OTPCode = "123456"

	tempToken = "temp-1"
)

// Server is a fake backend. All mutators and counters are safe for
// concurrent use with in-flight requests.
type Server struct {
	*httptest.Server

	mu            sync.Mutex
	otpRequired   bool
	accessSeq     int
	validAccess   map[string]bool
	refreshToken  string
	rejectRefresh bool
	staleAccess   bool
	refreshDelay  time.Duration
	refreshCalls  int
	verifyCalls   int
	verifyTokens  []string
	authHeaders   []string
}

// NewServer starts a fake backend accepting Email/Password. Callers own
// Close.
func NewServer() *Server {
	return NewServerAt("")
}

// NewServerAt starts the fake backend with its whole API mounted under the
// given path prefix (e.g. "/console"), mimicking a deployment behind a
// reverse proxy. An empty prefix serves from the root.
func NewServerAt(prefix string) *Server {
	s := &Server{
		validAccess:  make(map[string]bool),
		refreshToken: "r1",
	}

	r := chi.NewRouter()
	if prefix == "" {
		s.routes(r)
	} else {
		r.Route(prefix, s.routes)
	}

	s.Server = httptest.NewServer(r)
	return s
}

func (s *Server) routes(r chi.Router) {
	r.Post("/api/auth/obtain/", s.handleObtain)
	r.Post("/api/auth/obtain/two-factor/", s.handleTwoFactor)
	r.Post("/api/auth/verify/", s.handleVerify)
	r.Post("/api/auth/refresh/", s.handleRefresh)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAccess)
		r.Get("/api/devices/", s.handleDevices)
		r.Get("/api/medications/", listPage("medications"))
		r.Get("/api/users/", listPage("users"))
		r.Get("/api/prescriptions/", listPage("prescriptions"))
		r.Get("/api/orders/", listPage("orders"))
		r.Put("/api/orders/{id}/status/", s.handleOrderStatus)
	})
}

// RequireOTP makes obtain return a partial session until OTPCode is confirmed.
func (s *Server) RequireOTP() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.otpRequired = true
}

// RejectRefresh makes the refresh endpoint fail every exchange.
func (s *Server) RejectRefresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectRefresh = true
}

// IssueStaleAccess makes refresh succeed but hand out access tokens the
// protected endpoints reject, so a retried request fails again.
func (s *Server) IssueStaleAccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staleAccess = true
}

// SetRefreshDelay delays the refresh handler, widening the race window for
// concurrency tests.
func (s *Server) SetRefreshDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshDelay = d
}

// ExpireAccessTokens invalidates every issued access token; subsequent
// protected requests 401 until a refresh mints a new one.
func (s *Server) ExpireAccessTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.validAccess = make(map[string]bool)
}

// RefreshCalls reports how many token exchanges the backend served.
func (s *Server) RefreshCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshCalls
}

// VerifyCalls reports how many verification calls arrived.
func (s *Server) VerifyCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.verifyCalls
}

// VerifiedTokens returns the tokens passed to the verify endpoint.
func (s *Server) VerifiedTokens() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.verifyTokens...)
}

// AuthHeaders returns the Authorization header of each protected request,
// in arrival order.
func (s *Server) AuthHeaders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.authHeaders...)
}

func (s *Server) issueAccessLocked() string {
	s.accessSeq++
	token := fmt.Sprintf("a%d", s.accessSeq)
	s.validAccess[token] = true
	return token
}

func (s *Server) handleObtain(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	if req.Email != Email || req.Password != Password {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.otpRequired {
		writeJSON(w, http.StatusOK, map[string]any{
			"auth_temp_token": tempToken,
			"otp_required":    true,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"access":       s.issueAccessLocked(),
		"refresh":      s.refreshToken,
		"otp_required": false,
	})
}

func (s *Server) handleTwoFactor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TOTPToken     string `json:"totp_token"`
		AuthTempToken string `json:"auth_temp_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	if req.AuthTempToken != tempToken || req.TOTPToken != OTPCode {
		writeError(w, http.StatusUnauthorized, "invalid one-time code")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"access":       s.issueAccessLocked(),
		"refresh":      s.refreshToken,
		"otp_required": false,
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}

	s.mu.Lock()
	s.verifyCalls++
	s.verifyTokens = append(s.verifyTokens, req.Token)
	valid := s.validAccess[req.Token]
	s.mu.Unlock()

	if !valid {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}

	s.mu.Lock()
	s.refreshCalls++
	delay := s.refreshDelay
	reject := s.rejectRefresh || req.Refresh != s.refreshToken
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if reject {
		writeError(w, http.StatusUnauthorized, "refresh token rejected")
		return
	}

	s.mu.Lock()
	var access string
	if s.staleAccess {
		s.accessSeq++
		access = fmt.Sprintf("stale%d", s.accessSeq)
	} else {
		access = s.issueAccessLocked()
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"access": access})
}

func (s *Server) requireAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")

		s.mu.Lock()
		s.authHeaders = append(s.authHeaders, header)
		token := strings.TrimPrefix(header, "Bearer ")
		valid := header != token && s.validAccess[token]
		s.mu.Unlock()

		if !valid {
			writeError(w, http.StatusUnauthorized, "credential invalid or expired")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleDevices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"devices": []map[string]any{
			{
				"id":            "dev-1",
				"name":          "Cabinet A",
				"serial_number": "SN-0001",
				"status":        "online",
				"connection":    map[string]any{"host": "10.0.0.5", "port": 9100, "protocol": "tcp"},
			},
		},
		"meta": map[string]any{"total_count": 1, "limit": 100, "offset": 0, "has_more": false},
	})
}

func (s *Server) handleOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":              chi.URLParam(r, "id"),
		"prescription_id": "rx-1",
		"quantity":        1,
		"status":          req.Status,
	})
}

func listPage(field string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			field:  []any{},
			"meta": map[string]any{"total_count": 0, "limit": 100, "offset": 0, "has_more": false},
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
