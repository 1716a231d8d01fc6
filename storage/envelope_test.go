package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serob111/pharmtest-sub000/internal/util"
)

func TestSealOpenRecord(t *testing.T) {
	key, err := util.RandomBytes(util.AESKeySize)
	require.NoError(t, err)

	plain := []byte(`{"access":"a1"}`)
	aad := []byte("session:current")

	env, err := SealRecord(key, plain, aad)
	require.NoError(t, err)
	assert.Equal(t, 1, env.Ver)
	assert.Equal(t, "aes256gcm", env.Scheme)
	assert.Len(t, env.Nonce, 12)

	opened, err := OpenRecord(key, env, aad)
	require.NoError(t, err)
	assert.Equal(t, plain, opened)
}

func TestOpenRecordWrongKey(t *testing.T) {
	key, err := util.RandomBytes(util.AESKeySize)
	require.NoError(t, err)
	other, err := util.RandomBytes(util.AESKeySize)
	require.NoError(t, err)

	env, err := SealRecord(key, []byte("payload"), nil)
	require.NoError(t, err)

	_, err = OpenRecord(other, env, nil)
	assert.Error(t, err)
}

func TestOpenRecordUnsupportedScheme(t *testing.T) {
	key, err := util.RandomBytes(util.AESKeySize)
	require.NoError(t, err)

	_, err = OpenRecord(key, &Envelope{Ver: 1, Scheme: "raw"}, nil)
	assert.Error(t, err)

	_, err = OpenRecord(key, &Envelope{Ver: 2, Scheme: "aes256gcm"}, nil)
	assert.Error(t, err)
}

func TestRawRecordRoundTrip(t *testing.T) {
	env := RawRecord([]byte("hy"))
	assert.Equal(t, "raw", env.Scheme)

	value, err := OpenRawRecord(env)
	require.NoError(t, err)
	assert.Equal(t, []byte("hy"), value)

	_, err = OpenRawRecord(&Envelope{Ver: 1, Scheme: "aes256gcm"})
	assert.Error(t, err)
}
