package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/awnumar/memguard"

	"github.com/serob111/pharmtest-sub000/internal/util"
	"github.com/serob111/pharmtest-sub000/storage"
)

const (
	sessionScope  = "session"
	sessionKey    = "current"
	sessionAAD    = "pharmtest:session:current"
	sealKeyInfo   = "pharmtest:session_seal_key:v1"
	secretFileLen = 32
)

// PersistentStore keeps the session Record in a storage.Repository,
// sealed at rest with AES-256-GCM. The seal key is derived via HKDF from a
// local machine secret and held in a memguard Enclave while the process
// runs, so the raw key never sits in plain heap memory.
type PersistentStore struct {
	repo storage.Repository
	key  *memguard.Enclave
}

var _ Store = (*PersistentStore)(nil)

// NewPersistentStore creates a durable session store backed by repo. The
// machineSecret (32 bytes, see LoadOrCreateSecret) is wiped before return.
func NewPersistentStore(repo storage.Repository, machineSecret []byte) (*PersistentStore, error) {
	defer util.WipeBytes(machineSecret)
	if len(machineSecret) != secretFileLen {
		return nil, fmt.Errorf("machine secret must be exactly %d bytes, got %d", secretFileLen, len(machineSecret))
	}
	key, err := util.HKDF(machineSecret, nil, []byte(sealKeyInfo))
	if err != nil {
		return nil, fmt.Errorf("deriving session seal key: %w", err)
	}
	// NewEnclave wipes the key slice after sealing it.
	return &PersistentStore{
		repo: repo,
		key:  memguard.NewEnclave(key),
	}, nil
}

// Load returns the current record, or nil when no record exists or the
// stored entry cannot be opened or decoded. A record that fails to open is
// removed so a half-written or tampered entry does not wedge the client in
// a "logged in" state with unusable tokens.
func (s *PersistentStore) Load() *Record {
	env, err := s.repo.Get(sessionScope, sessionKey)
	if err != nil {
		return nil
	}
	data, err := s.open(env)
	if err != nil {
		_ = s.repo.Delete(sessionScope, sessionKey)
		return nil
	}
	defer util.WipeBytes(data)
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		_ = s.repo.Delete(sessionScope, sessionKey)
		return nil
	}
	return &record
}

func (s *PersistentStore) Save(record *Record) error {
	if record == nil {
		return errors.New("nil session record")
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding session record: %w", err)
	}
	defer util.WipeBytes(data)
	env, err := s.seal(data)
	if err != nil {
		return fmt.Errorf("sealing session record: %w", err)
	}
	return s.repo.Put(sessionScope, sessionKey, env)
}

func (s *PersistentStore) Clear() error {
	err := s.repo.Delete(sessionScope, sessionKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	return err
}

func (s *PersistentStore) seal(data []byte) (*storage.Envelope, error) {
	buf, err := s.key.Open()
	if err != nil {
		return nil, err
	}
	defer buf.Destroy()
	return storage.SealRecord(buf.Bytes(), data, []byte(sessionAAD))
}

func (s *PersistentStore) open(env *storage.Envelope) ([]byte, error) {
	buf, err := s.key.Open()
	if err != nil {
		return nil, err
	}
	defer buf.Destroy()
	return storage.OpenRecord(buf.Bytes(), env, []byte(sessionAAD))
}

// LoadOrCreateSecret reads the machine secret file at path, generating it
// with restrictive permissions on first use. The secret seeds the session
// seal key; deleting the file makes any stored session unreadable, which
// degrades to "logged out".
func LoadOrCreateSecret(path string) ([]byte, error) {
	secret, err := os.ReadFile(path)
	if err == nil {
		if len(secret) != secretFileLen {
			return nil, fmt.Errorf("machine secret %s is corrupt: %d bytes", path, len(secret))
		}
		return secret, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading machine secret: %w", err)
	}

	secret, err = util.RandomBytes(secretFileLen)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating secret directory: %w", err)
	}
	if err := os.WriteFile(path, secret, 0o600); err != nil {
		return nil, fmt.Errorf("writing machine secret: %w", err)
	}
	return secret, nil
}
