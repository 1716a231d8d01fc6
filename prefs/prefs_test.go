package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/serob111/pharmtest-sub000/storage"
	"github.com/serob111/pharmtest-sub000/storage/memory"
)

func TestLanguageDefaultsToEnglish(t *testing.T) {
	s := NewStore(memory.NewRepository())
	assert.Equal(t, language.English, s.Language())
}

func TestSetLanguageRoundTrip(t *testing.T) {
	s := NewStore(memory.NewRepository())

	tag, err := s.SetLanguage("hy")
	require.NoError(t, err)
	assert.Equal(t, language.Armenian, tag)
	assert.Equal(t, language.Armenian, s.Language())
}

func TestSetLanguageMatchesRegionalVariant(t *testing.T) {
	s := NewStore(memory.NewRepository())

	// A regional variant matches its supported base language.
	_, err := s.SetLanguage("ru-RU")
	require.NoError(t, err)
	assert.Equal(t, language.Russian, s.Language())
}

func TestSetLanguageInvalidCode(t *testing.T) {
	s := NewStore(memory.NewRepository())

	_, err := s.SetLanguage("not a tag!!")
	assert.Error(t, err)
	assert.Equal(t, language.English, s.Language())
}

func TestLanguageCorruptEntryFallsBack(t *testing.T) {
	repo := memory.NewRepository()
	s := NewStore(repo)

	require.NoError(t, repo.Put("prefs", "language", storage.RawRecord([]byte("???"))))
	assert.Equal(t, language.English, s.Language())
}

func TestSupported(t *testing.T) {
	tags := Supported()
	assert.Contains(t, tags, language.English)
	assert.Contains(t, tags, language.Russian)
	assert.Contains(t, tags, language.Armenian)
}
