// Package journal remembers the plaintext length of encrypted payloads in a
// BoltDB file, so decryption can restore leading zero symbols that the
// chained conversions collapse.
package journal

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.etcd.io/bbolt"
)

var (
	bucketEntries = []byte("entries")
)

type Config struct {
	File    string        `yaml:"file" default:"data/journal.db"`
	Timeout time.Duration `yaml:"timeout" default:"5s"`
}

// Entry is what the journal knows about one ciphertext.
type Entry struct {
	Length  int       `json:"length"`
	Source  string    `json:"source"`
	Created time.Time `json:"created"`
	// Ambiguous entries must not be used to restore a length.
	Ambiguous bool `json:"ambiguous,omitempty"`
}

var db *bbolt.DB

func Open(config Config) error {
	if db != nil {
		panic("journal: already opened")
	}
	if config.File == "" {
		return fmt.Errorf("journal: file is required")
	}

	err := os.MkdirAll(filepath.Dir(config.File), 0755)
	if err != nil {
		return fmt.Errorf("journal: create dir: %w", err)
	}

	db, err = bbolt.Open(config.File, 0600, &bbolt.Options{
		Timeout: config.Timeout,
	})
	if err != nil {
		db = nil
		return fmt.Errorf("journal: open bbolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEntries)
		if err != nil {
			return fmt.Errorf("create bucket %q: %w", bucketEntries, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		db = nil
		return fmt.Errorf("journal: initialize buckets: %w", err)
	}
	return nil
}

func Opened() bool {
	return db != nil
}

func Close() error {
	if db == nil {
		panic("journal: not opened")
	}

	err := db.Close()
	db = nil
	if err != nil {
		return fmt.Errorf("journal: close bbolt db: %w", err)
	}
	return nil
}

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}

func Closer() io.Closer {
	return closerFunc(Close)
}

// Key identifies a ciphertext produced with the sequence of the given
// fingerprint.
func Key(fingerprint uint64, ciphertext string) uint64 {
	h := xxhash.New()
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], fingerprint)
	h.Write(b[:])
	h.WriteString(ciphertext)
	return h.Sum64()
}

func encodeKey(key uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, key)
}

// Record stores entry under key. When key already holds an entry of another
// length, plaintexts differing only in leading zeros met the same ciphertext
// and the stored entry is marked Ambiguous instead.
func Record(key uint64, entry Entry) error {
	if db == nil {
		panic("journal: not opened")
	}

	return db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEntries)
		if b == nil {
			return fmt.Errorf("journal: entries bucket not found")
		}

		k := encodeKey(key)
		if data := b.Get(k); data != nil {
			var prev Entry
			err := json.Unmarshal(data, &prev)
			if err != nil {
				return fmt.Errorf("journal: unmarshal entry %016x: %w", key, err)
			}

			if prev.Ambiguous || prev.Length != entry.Length {
				prev.Ambiguous = true
				entry = prev
			}
		}

		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("journal: marshal entry: %w", err)
		}
		return b.Put(k, data)
	})
}

func Lookup(key uint64) (Entry, bool, error) {
	if db == nil {
		panic("journal: not opened")
	}

	var entry Entry
	found := false

	err := db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEntries)
		if b == nil {
			return fmt.Errorf("journal: entries bucket not found")
		}

		data := b.Get(encodeKey(key))
		if data == nil {
			return nil
		}
		found = true

		err := json.Unmarshal(data, &entry)
		if err != nil {
			return fmt.Errorf("journal: unmarshal entry %016x: %w", key, err)
		}
		return nil
	})
	if err != nil {
		return Entry{}, false, err
	}
	return entry, found, nil
}

var errStop = fmt.Errorf("stop iteration")

func All() iter.Seq2[uint64, Entry] {
	if db == nil {
		panic("journal: not opened")
	}

	return func(yield func(uint64, Entry) bool) {
		err := db.View(func(tx *bbolt.Tx) error {
			b := tx.Bucket(bucketEntries)
			if b == nil {
				return fmt.Errorf("journal: entries bucket not found")
			}

			return b.ForEach(func(k, v []byte) error {
				if len(k) != 8 {
					return fmt.Errorf("journal: malformed key %x", k)
				}

				var entry Entry
				err := json.Unmarshal(v, &entry)
				if err != nil {
					return fmt.Errorf("journal: unmarshal entry %x: %w", k, err)
				}

				if !yield(binary.BigEndian.Uint64(k), entry) {
					return errStop
				}
				return nil
			})
		})

		if err != nil {
			if errors.Is(err, errStop) {
				return
			}
			panic(fmt.Errorf("journal: list entries: %w", err))
		}
	}
}
