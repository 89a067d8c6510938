// SPDX-License-Identifier: MIT

// Package store persists automata under string keys.
//
// Every backend stores the binary form written by (*fst.Fst).Write, so an
// automaton saved through one backend loads unchanged through any other
// after copying the bytes. Key-value backends (Redis, Badger) wrap the
// bytes in a small msgpack record that also carries the semiring and size,
// which lets tools list stored automata without decoding them.
//
// Backends:
//
//	– FileStore:   one file per key (the default of the capi boundary).
//	– MemoryStore: process-local map, safe for concurrent use.
//	– SQLStore:    database/sql with the SQLite or Postgres dialect.
//	– RedisStore:  github.com/redis/go-redis/v9.
//	– MongoStore:  go.mongodb.org/mongo-driver.
//	– BadgerStore: github.com/dgraph-io/badger/v4, embedded.
//
// Errors (sentinel):
//
//	– ErrNotFound  if Load or Delete names a missing key.
//	– ErrEmptyKey  if the key is "".
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/weight"
)

// Sentinel errors returned by every backend.
var (
	// ErrNotFound indicates a key with no stored automaton.
	ErrNotFound = errors.New("store: automaton not found")

	// ErrEmptyKey indicates an empty key.
	ErrEmptyKey = errors.New("store: empty key")

	// ErrCorrupt indicates a stored value that does not decode.
	ErrCorrupt = errors.New("store: corrupt record")
)

// Store saves, loads and deletes automata by key. Implementations never
// retain the *fst.Fst they are given: Save serializes it immediately and
// Load always returns a fresh automaton.
type Store interface {
	Save(ctx context.Context, key string, f *fst.Fst) error
	Load(ctx context.Context, key string) (*fst.Fst, error)
	Delete(ctx context.Context, key string) error
}

// encode returns the binary form of f.
func encode(f *fst.Fst) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decode parses the binary form written by encode.
func decode(data []byte) (*fst.Fst, error) {
	return fst.Read(bytes.NewReader(data))
}

// Record is the value stored by the key-value backends.
type Record struct {
	Semiring string `msgpack:"semiring"`
	States   int    `msgpack:"states"`
	Arcs     int    `msgpack:"arcs"`
	Data     []byte `msgpack:"data"`
}

func marshalRecord(f *fst.Fst) ([]byte, error) {
	data, err := encode(f)
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(&Record{
		Semiring: f.Semiring().String(),
		States:   f.NumStates(),
		Arcs:     f.TotalArcs(),
		Data:     data,
	})
}

// UnmarshalRecord decodes a value written by a key-value backend without
// decoding the automaton itself.
func UnmarshalRecord(b []byte) (Record, error) {
	var r Record
	if err := msgpack.Unmarshal(b, &r); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return r, nil
}

func unmarshalFst(b []byte) (*fst.Fst, error) {
	r, err := UnmarshalRecord(b)
	if err != nil {
		return nil, err
	}
	f, err := decode(r.Data)
	if err != nil {
		return nil, err
	}
	if s, err := weight.ParseSemiring(r.Semiring); err != nil || s != f.Semiring() {
		return nil, fmt.Errorf("%w: record says %q, data holds %s", ErrCorrupt, r.Semiring, f.Semiring())
	}
	return f, nil
}

func checkKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return nil
}

func notFound(key string) error {
	return fmt.Errorf("%w: %q", ErrNotFound, key)
}

// Ensure every backend implements Store.
var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
	_ Store = (*SQLStore)(nil)
	_ Store = (*RedisStore)(nil)
	_ Store = (*MongoStore)(nil)
	_ Store = (*BadgerStore)(nil)
)
