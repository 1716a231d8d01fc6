package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serob111/pharmtest-sub000/storage"
)

func TestPutGetDelete(t *testing.T) {
	repo := NewRepository()

	env := storage.RawRecord([]byte("value"))
	require.NoError(t, repo.Put("prefs", "language", env))

	got, err := repo.Get("prefs", "language")
	require.NoError(t, err)
	assert.Equal(t, env.Ciphertext, got.Ciphertext)

	require.NoError(t, repo.Delete("prefs", "language"))
	_, err = repo.Get("prefs", "language")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetMissing(t *testing.T) {
	repo := NewRepository()

	_, err := repo.Get("nope", "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = repo.Delete("nope", "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetReturnsCopy(t *testing.T) {
	repo := NewRepository()
	require.NoError(t, repo.Put("s", "k", storage.RawRecord([]byte("abc"))))

	got, err := repo.Get("s", "k")
	require.NoError(t, err)
	got.Ciphertext[0] = 'x'

	again, err := repo.Get("s", "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again.Ciphertext)
}

func TestList(t *testing.T) {
	repo := NewRepository()
	require.NoError(t, repo.Put("s", "a", storage.RawRecord([]byte("1"))))
	require.NoError(t, repo.Put("s", "b", storage.RawRecord([]byte("2"))))

	keys, err := repo.List("s")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, keys)

	empty, err := repo.List("other")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
