// Package client provides the HTTP client for the pharmtest administration
// backend: bearer-token injection, coordinated token refresh with a single
// retry, and typed wrappers for the admin API surface.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/serob111/pharmtest-sub000/session"
)

const (
	defaultAuthBase = "/api/auth"
	defaultTimeout  = 30 * time.Second
	maxErrorBody    = 1 << 20
)

// Client talks to the pharmtest backend. All requests flow through the
// refresh and auth transports; the session.Manager's store is the single
// source of truth for tokens.
type Client struct {
	baseURL    *url.URL
	authBase   string
	httpClient *http.Client
	logger     *slog.Logger
	sessions   *session.Manager

	Auth          *AuthService
	Users         *UsersService
	Devices       *DevicesService
	Medications   *MedicationsService
	Prescriptions *PrescriptionsService
	Orders        *OrdersService
}

type service struct {
	client *Client
}

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	authBase  string
	transport http.RoundTripper
	timeout   time.Duration
	logger    *slog.Logger
	onExpired func()
}

// WithAuthBase overrides the auth endpoint prefix (default /api/auth).
func WithAuthBase(prefix string) Option {
	return func(c *clientConfig) {
		c.authBase = prefix
	}
}

// WithTransport sets the innermost HTTP transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *clientConfig) {
		c.transport = rt
	}
}

// WithTimeout sets the per-request timeout (default 30s).
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = d
	}
}

// WithLogger sets the structured logger. If not set, a default JSON logger
// writing to stderr is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithSessionExpiredHook registers a hook fired once per terminal refresh
// failure, after the session store has been cleared. Consumers typically
// prompt for a fresh sign-in here.
func WithSessionExpiredHook(fn func()) Option {
	return func(c *clientConfig) {
		c.onExpired = fn
	}
}

// New creates a Client for the backend at baseURL using sessions for token
// state. The manager's verifier is wired to the client's auth service, so
// full-session starts trigger the best-effort verification call.
func New(baseURL string, sessions *session.Manager, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}

	cfg := &clientConfig{
		authBase:  defaultAuthBase,
		transport: http.DefaultTransport,
		timeout:   defaultTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}

	c := &Client{
		baseURL:  parsed,
		authBase: strings.TrimSuffix(cfg.authBase, "/"),
		logger:   cfg.logger,
		sessions: sessions,
	}

	auth := &authTransport{base: cfg.transport, tokens: sessions}
	refresh := &refreshTransport{
		base:       auth,
		direct:     &http.Client{Transport: cfg.transport, Timeout: cfg.timeout},
		sessions:   sessions,
		refreshURL: c.endpoint(c.authBase + "/refresh/"),
		// The exemption prefix must match request paths, which carry the
		// base URL's own path when one is configured.
		authPrefix: strings.TrimSuffix(parsed.Path, "/") + c.authBase + "/",
		onExpired:  cfg.onExpired,
		logger:     cfg.logger,
	}
	c.httpClient = &http.Client{Transport: refresh, Timeout: cfg.timeout}

	c.Auth = &AuthService{client: c}
	c.Users = &UsersService{service{client: c}}
	c.Devices = &DevicesService{service{client: c}}
	c.Medications = &MedicationsService{service{client: c}}
	c.Prescriptions = &PrescriptionsService{service{client: c}}
	c.Orders = &OrdersService{service{client: c}}

	sessions.SetVerifier(c.Auth)
	return c, nil
}

// Sessions returns the session manager backing this client.
func (c *Client) Sessions() *session.Manager {
	return c.sessions
}

func (c *Client) endpoint(path string) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	return u.String()
}

// do issues a JSON request and decodes the response into out (when non-nil).
// Non-2xx responses are returned as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil {
		var body ErrorResponse
		if json.Unmarshal(data, &body) == nil {
			apiErr.Message = body.Error
		}
	}
	return apiErr
}
