// Package memory provides a thread-safe in-memory implementation of storage.Repository.
package memory

import (
	"sync"

	"github.com/serob111/pharmtest-sub000/storage"
)

// Repository is a thread-safe in-memory implementation of storage.Repository.
// Suitable for testing and ephemeral sessions.
type Repository struct {
	mu   sync.RWMutex
	data map[string]map[string]*storage.Envelope
}

var _ storage.Repository = (*Repository)(nil)

// NewRepository creates a new empty in-memory Repository.
func NewRepository() *Repository {
	return &Repository{data: make(map[string]map[string]*storage.Envelope)}
}

func cloneEnvelope(env *storage.Envelope) *storage.Envelope {
	if env == nil {
		return nil
	}
	return &storage.Envelope{
		Ver:        env.Ver,
		Scheme:     env.Scheme,
		Nonce:      append([]byte(nil), env.Nonce...),
		Ciphertext: append([]byte(nil), env.Ciphertext...),
	}
}

func (r *Repository) Put(scope, key string, envelope *storage.Envelope) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[scope]; !ok {
		r.data[scope] = make(map[string]*storage.Envelope)
	}
	r.data[scope][key] = cloneEnvelope(envelope)
	return nil
}

func (r *Repository) Get(scope, key string) (*storage.Envelope, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	scoped, ok := r.data[scope]
	if !ok {
		return nil, storage.ErrNotFound
	}
	env, ok := scoped[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneEnvelope(env), nil
}

func (r *Repository) Delete(scope, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	scoped, ok := r.data[scope]
	if !ok {
		return storage.ErrNotFound
	}
	if _, ok := scoped[key]; !ok {
		return storage.ErrNotFound
	}
	delete(scoped, key)
	return nil
}

func (r *Repository) List(scope string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var keys []string
	for k := range r.data[scope] {
		keys = append(keys, k)
	}
	return keys, nil
}
