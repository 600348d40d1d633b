package memory

import (
	"encoding/binary"
	"errors"
	"iter"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// Pager is implemented by stores that can list their populated pages.
//
// Err reports the first error that ended a Pages iteration early.
type Pager interface {
	Pages() iter.Seq[uint32]
	Err() error
}

var (
	pebbleLower = []byte("word:")
	pebbleUpper = []byte("word;") // ';' sorts right after ':'
)

// Pebble is a persistent store, one key per populated word.
//
// Keys are "word:" followed by the 4-byte big-endian address; values are
// the word as 5 big-endian bytes.
type Pebble struct {
	Sync bool // If set, every SetWord is synced to stable storage.

	db  *pebble.DB
	err error
}

var _ Memory = (*Pebble)(nil)
var _ Pager = (*Pebble)(nil)

// OpenPebble opens or creates a store in dirname. A nil filesys uses the
// operating system's file system.
func OpenPebble(dirname string, filesys vfs.FS) (store *Pebble, err error) {
	opts := &pebble.Options{}
	if filesys != nil {
		opts.FS = filesys
	}

	db, err := pebble.Open(dirname, opts)
	if err != nil {
		return
	}

	store = &Pebble{db: db}
	return
}

// Close flushes and closes the store.
func (store *Pebble) Close() (err error) {
	if store.db == nil {
		return
	}
	err = store.db.Close()
	store.db = nil
	return
}

// Err returns the first error hit while iterating pages.
func (store *Pebble) Err() error {
	return store.err
}

func pebbleKey(address uint32) (key []byte) {
	key = make([]byte, len(pebbleLower)+4)
	copy(key, pebbleLower)
	binary.BigEndian.PutUint32(key[len(pebbleLower):], address)
	return
}

// GetWord reads the word at address. Missing words read as zero.
func (store *Pebble) GetWord(address uint32) (value Word, err error) {
	if address >= MOBY {
		err = &ErrAddress{Address: address, Err: ErrAddressRange}
		return
	}
	if store.db == nil {
		err = ErrClosed
		return
	}

	data, closer, err := store.db.Get(pebbleKey(address))
	if errors.Is(err, pebble.ErrNotFound) {
		err = nil
		return
	}
	if err != nil {
		return
	}
	defer closer.Close()

	if len(data) != 5 {
		err = &ErrAddress{Address: address, Err: ErrCorrupt}
		return
	}

	var buf [8]byte
	copy(buf[3:], data)
	value = Word(binary.BigEndian.Uint64(buf[:])) & WORD_MASK

	return
}

// SetWord writes the word at address.
func (store *Pebble) SetWord(address uint32, value Word) (err error) {
	if address >= MOBY {
		err = &ErrAddress{Address: address, Err: ErrAddressRange}
		return
	}
	if store.db == nil {
		err = ErrClosed
		return
	}

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(value&WORD_MASK))

	opts := pebble.NoSync
	if store.Sync {
		opts = pebble.Sync
	}

	err = store.db.Set(pebbleKey(address), buf[3:], opts)
	return
}

// Pages returns the populated page addresses in ascending order.
func (store *Pebble) Pages() iter.Seq[uint32] {
	return func(yield func(page uint32) bool) {
		if store.db == nil {
			store.err = ErrClosed
			return
		}

		it, err := store.db.NewIter(&pebble.IterOptions{
			LowerBound: pebbleLower,
			UpperBound: pebbleUpper,
		})
		if err != nil {
			store.err = err
			return
		}
		defer it.Close()

		last := uint32(MOBY)
		for it.First(); it.Valid(); it.Next() {
			key := it.Key()
			if len(key) != len(pebbleLower)+4 {
				continue
			}
			page := PageOf(binary.BigEndian.Uint32(key[len(pebbleLower):]))
			if page == last {
				continue
			}
			last = page
			if !yield(page) {
				return
			}
		}

		if err := it.Error(); err != nil {
			store.err = err
		}
	}
}
