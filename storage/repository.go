// Package storage provides the local durable-storage abstraction for
// client state records.
package storage

import "errors"

// ErrNotFound is returned when a record does not exist under the given scope and key.
var ErrNotFound = errors.New("record not found")

// Repository defines the interface for local record storage. Records are
// grouped by scope (e.g. "session", "prefs") and addressed by key.
type Repository interface {
	Put(scope string, key string, envelope *Envelope) error
	Get(scope string, key string) (*Envelope, error)
	Delete(scope string, key string) error
	List(scope string) ([]string, error)
}
