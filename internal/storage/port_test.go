// ABOUTME: Tests shared by every key/value port implementation.
// ABOUTME: Covers get/set roundtrip, missing keys, overwrite, key listing, and SQLite reopen.
package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func portsUnderTest(t *testing.T) map[string]Port {
	t.Helper()
	sqlitePort, err := NewSQLitePort(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlitePort.Close() })

	return map[string]Port{
		"memory": NewMemoryPort(),
		"sqlite": sqlitePort,
	}
}

func TestPortRoundtrip(t *testing.T) {
	for name, port := range portsUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, port.Set("instaclone_users", []byte(`[{"username":"emma_creative"}]`)))

			got, err := port.Get("instaclone_users")
			require.NoError(t, err)
			assert.JSONEq(t, `[{"username":"emma_creative"}]`, string(got))
		})
	}
}

func TestPortMissingKey(t *testing.T) {
	for name, port := range portsUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			_, err := port.Get("nope")
			assert.ErrorIs(t, err, ErrKeyNotFound)
		})
	}
}

func TestPortOverwrite(t *testing.T) {
	for name, port := range portsUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, port.Set("k", []byte("1")))
			require.NoError(t, port.Set("k", []byte("2")))

			got, err := port.Get("k")
			require.NoError(t, err)
			assert.Equal(t, "2", string(got))
		})
	}
}

func TestPortKeys(t *testing.T) {
	for name, port := range portsUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, port.Set("b", []byte("x")))
			require.NoError(t, port.Set("a", []byte("y")))

			lister, ok := port.(KeyLister)
			require.True(t, ok, "port should list keys")
			keys, err := lister.Keys()
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, keys)
		})
	}
}

func TestMemoryPortCopiesValues(t *testing.T) {
	port := NewMemoryPort()
	value := []byte("abc")
	require.NoError(t, port.Set("k", value))
	value[0] = 'z'

	got, err := port.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'z'
	again, err := port.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestSQLitePortPersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "snapgram.db")

	first, err := NewSQLitePort(dbPath)
	require.NoError(t, err)
	require.NoError(t, first.Set("instaclone_current_user", []byte(`"alex_photo"`)))
	require.NoError(t, first.Close())

	second, err := NewSQLitePort(dbPath)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	got, err := second.Get("instaclone_current_user")
	require.NoError(t, err)
	assert.Equal(t, `"alex_photo"`, string(got))
	assert.Equal(t, dbPath, second.Path())
}
