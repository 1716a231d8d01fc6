package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/serob111/pharmtest-sub000/client"
	"github.com/serob111/pharmtest-sub000/internal/config"
	"github.com/serob111/pharmtest-sub000/prefs"
	"github.com/serob111/pharmtest-sub000/session"
	bboltstorage "github.com/serob111/pharmtest-sub000/storage/bbolt"
)

// app wires the local state store, session manager and API client for a
// single command invocation.
type app struct {
	cfg      *config.Config
	repo     *bboltstorage.Store
	sessions *session.Manager
	client   *client.Client
	prefs    *prefs.Store
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	repo, err := bboltstorage.NewRepositoryFromFile(cfg.StatePath(), nil)
	if err != nil {
		return nil, fmt.Errorf("opening local state: %w", err)
	}

	secret, err := session.LoadOrCreateSecret(cfg.SecretPath())
	if err != nil {
		repo.Close()
		return nil, err
	}
	store, err := session.NewPersistentStore(repo, secret)
	if err != nil {
		repo.Close()
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	sessions := session.NewManager(store, session.WithLogger(logger))

	c, err := client.New(cfg.APIBaseURL, sessions,
		client.WithAuthBase(cfg.AuthBasePath),
		client.WithLogger(logger),
		client.WithSessionExpiredHook(func() {
			fmt.Fprintln(os.Stderr, "Session expired. Run 'pharmtest login' to sign in again.")
		}),
	)
	if err != nil {
		repo.Close()
		return nil, err
	}

	return &app{
		cfg:      cfg,
		repo:     repo,
		sessions: sessions,
		client:   c,
		prefs:    prefs.NewStore(repo),
	}, nil
}

func (a *app) Close() error {
	return a.repo.Close()
}

// withApp builds the app, runs fn, and closes local state afterwards.
func withApp(fn func(a *app) error) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
