// Package prefs persists the user's console preferences; currently just
// the UI language code.
package prefs

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/serob111/pharmtest-sub000/storage"
)

const (
	prefsScope  = "prefs"
	languageKey = "language"
)

// supported lists the console's translation languages; the first entry is
// the fallback.
var supported = []language.Tag{
	language.English,
	language.Russian,
	language.Armenian,
}

var matcher = language.NewMatcher(supported)

// Store reads and writes preferences in a storage.Repository. Values are
// not sensitive and are stored unencrypted.
type Store struct {
	repo storage.Repository
}

// NewStore creates a preference store backed by repo.
func NewStore(repo storage.Repository) *Store {
	return &Store{repo: repo}
}

// Language returns the persisted UI language. Absent or unparseable values
// fall back to English.
func (s *Store) Language() language.Tag {
	env, err := s.repo.Get(prefsScope, languageKey)
	if err != nil {
		return language.English
	}
	value, err := storage.OpenRawRecord(env)
	if err != nil {
		return language.English
	}
	parsed, err := language.Parse(string(value))
	if err != nil {
		return language.English
	}
	// Match via index: the matcher's returned tag may carry extensions.
	_, idx, _ := matcher.Match(parsed)
	return supported[idx]
}

// SetLanguage persists the language for the given BCP 47 code, matched
// against the supported set.
func (s *Store) SetLanguage(code string) (language.Tag, error) {
	parsed, err := language.Parse(code)
	if err != nil {
		return language.Und, fmt.Errorf("invalid language code %q: %w", code, err)
	}
	_, idx, confidence := matcher.Match(parsed)
	if confidence == language.No {
		return language.Und, fmt.Errorf("unsupported language %q", code)
	}
	tag := supported[idx]
	if err := s.repo.Put(prefsScope, languageKey, storage.RawRecord([]byte(tag.String()))); err != nil {
		return language.Und, err
	}
	return tag, nil
}

// Supported returns the console's translation languages.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}
