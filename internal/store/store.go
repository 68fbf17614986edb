// Package store adapts hive.go's generic byte-keyed KVStore into the
// narrow Get/Set/Has/Iterate shape the rest of this module needs, with
// prefix partitioning so multiple logical stores can share one backing
// KVStore.
package store

import (
	"encoding/binary"
	"errors"

	"github.com/iotaledger/hive.go/core/kvstore"
	"github.com/iotaledger/hive.go/core/kvstore/mapdb"
	"github.com/repoauth/sssim/internal/xassert"
)

// Store is a byte-keyed persistence layer. The zero value is not usable;
// construct with NewMemory or New.
type Store struct {
	kvs    kvstore.KVStore
	prefix []byte
}

// NewMemory returns a Store backed by an in-memory map, suitable for a
// single simulator run. Nothing in this system needs durability across
// process restarts.
func NewMemory() *Store {
	return &Store{kvs: mapdb.NewMapDB()}
}

// New wraps an existing hive.go KVStore, scoping every key under prefix so
// multiple Stores can share one underlying database without collision.
func New(kvs kvstore.KVStore, prefix []byte) *Store {
	return &Store{kvs: kvs, prefix: prefix}
}

func (s *Store) makeKey(key []byte) []byte {
	if len(s.prefix) == 0 {
		return key
	}
	out := make([]byte, 0, len(s.prefix)+len(key))
	out = append(out, s.prefix...)
	return append(out, key...)
}

// Set writes key/value, panicking on any underlying store error. The
// in-process mapdb/badger backends only fail on programmer error (closed
// store, disk full), never on valid input.
func (s *Store) Set(key, value []byte) {
	err := s.kvs.Set(s.makeKey(key), value)
	xassert.Assert(err == nil, "store: set failed: %v", err)
}

// Get returns (value, true) if key is present, or (nil, false) otherwise.
func (s *Store) Get(key []byte) ([]byte, bool) {
	v, err := s.kvs.Get(s.makeKey(key))
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, false
	}
	xassert.Assert(err == nil, "store: get failed: %v", err)
	return v, true
}

// Has reports whether key is present.
func (s *Store) Has(key []byte) bool {
	ok, err := s.kvs.Has(s.makeKey(key))
	xassert.Assert(err == nil, "store: has failed: %v", err)
	return ok
}

// Iterate calls fn for every key/value pair under this Store's prefix, in
// the underlying store's own order. fn's key has the prefix stripped.
func (s *Store) Iterate(fn func(key, value []byte) bool) {
	err := s.kvs.Iterate(s.prefix, func(key kvstore.Key, value kvstore.Value) bool {
		return fn(key[len(s.prefix):], value)
	})
	xassert.Assert(err == nil, "store: iterate failed: %v", err)
}

// SequenceKey renders a monotone uint64 sequence number as a fixed-width
// big-endian key, so sequential Iterate order matches insertion order.
func SequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
