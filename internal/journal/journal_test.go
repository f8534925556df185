package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T) {
	t.Helper()
	require.NoError(t, Open(Config{
		File:    filepath.Join(t.TempDir(), "j", "journal.db"),
		Timeout: time.Second,
	}))
	t.Cleanup(func() {
		if Opened() {
			require.NoError(t, Close())
		}
	})
}

func TestRecordLookup(t *testing.T) {
	open(t)

	key := Key(42, "ciphertext")
	_, found, err := Lookup(key)
	require.NoError(t, err)
	assert.False(t, found)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, Record(key, Entry{Length: 7, Source: "in.txt", Created: now}))

	e, found, err := Lookup(key)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 7, e.Length)
	assert.Equal(t, "in.txt", e.Source)
	assert.True(t, now.Equal(e.Created))
}

func TestRecordConflict(t *testing.T) {
	open(t)

	key := Key(7, "945343IG2c3dDM79G1HJDGb")
	require.NoError(t, Record(key, Entry{Length: 6, Source: "a.txt"}))

	// Same length again is not a conflict.
	require.NoError(t, Record(key, Entry{Length: 6, Source: "a.txt"}))
	e, _, err := Lookup(key)
	require.NoError(t, err)
	assert.False(t, e.Ambiguous)

	require.NoError(t, Record(key, Entry{Length: 5, Source: "b.txt"}))
	e, found, err := Lookup(key)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, e.Ambiguous)
	assert.Equal(t, "a.txt", e.Source)

	// Once ambiguous, always ambiguous.
	require.NoError(t, Record(key, Entry{Length: 6, Source: "c.txt"}))
	e, _, err = Lookup(key)
	require.NoError(t, err)
	assert.True(t, e.Ambiguous)
}

func TestKey(t *testing.T) {
	assert.Equal(t, Key(1, "abc"), Key(1, "abc"))
	assert.NotEqual(t, Key(1, "abc"), Key(2, "abc"))
	assert.NotEqual(t, Key(1, "abc"), Key(1, "abd"))
}

func TestAll(t *testing.T) {
	open(t)

	for i := range 5 {
		require.NoError(t, Record(uint64(i), Entry{Length: i}))
	}

	seen := map[uint64]int{}
	for k, e := range All() {
		seen[k] = e.Length
	}
	assert.Equal(t, map[uint64]int{0: 0, 1: 1, 2: 2, 3: 3, 4: 4}, seen)

	n := 0
	for range All() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestReopen(t *testing.T) {
	file := filepath.Join(t.TempDir(), "journal.db")

	require.NoError(t, Open(Config{File: file, Timeout: time.Second}))
	require.NoError(t, Record(9, Entry{Length: 3}))
	require.NoError(t, Closer().Close())
	assert.False(t, Opened())

	require.NoError(t, Open(Config{File: file, Timeout: time.Second}))
	defer Close()

	e, found, err := Lookup(9)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, e.Length)
}

func TestOpenRequiresFile(t *testing.T) {
	assert.Error(t, Open(Config{}))
	assert.False(t, Opened())
}
