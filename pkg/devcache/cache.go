// Package devcache caches decoded libraries by the content hash of their
// source buffer, so re-decoding an unchanged export.pdb is a lookup
// instead of a full four-pass walk. It is strictly optional: callers who
// never open a Cache pay nothing for it.
package devcache

import (
	"bytes"
	"encoding/gob"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/trackvault/pkg/catalog"
)

// Cache is a pebble-backed key-value store keyed by the xxhash of a
// decoded buffer, valued by its gob-encoded Library.
type Cache struct {
	db *pebble.DB
}

// Open opens (or creates) a cache rooted at path.
func Open(path string) (*Cache, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying pebble handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// key derives this cache's lookup key from a source buffer's content hash.
func key(buf []byte) []byte {
	h := xxhash.Sum64(buf)
	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		out[i] = byte(h >> (8 * i))
	}
	return out
}

// Get returns the cached Library for buf, if present.
func (c *Cache) Get(buf []byte) (*catalog.Library, bool, error) {
	data, closer, err := c.db.Get(key(buf))
	if err == pebble.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer closer.Close()

	var lib catalog.Library
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&lib); err != nil {
		return nil, false, err
	}
	return &lib, true, nil
}

// Put stores lib under buf's content hash and returns a ksuid tagging
// this write, for correlating it with the Diagnostics of the decode that
// produced lib.
func (c *Cache) Put(buf []byte, lib *catalog.Library) (ksuid.KSUID, error) {
	id := ksuid.New()

	var out bytes.Buffer
	if err := gob.NewEncoder(&out).Encode(lib); err != nil {
		return ksuid.Nil, err
	}
	if err := c.db.Set(key(buf), out.Bytes(), pebble.NoSync); err != nil {
		return ksuid.Nil, err
	}
	return id, nil
}
