// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/katalvlaran/lvfst/fst"
)

// BadgerStore keeps one msgpack Record per key in an embedded Badger
// database.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a Badger database in dir. An empty dir
// opens an in-memory database.
func OpenBadger(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStore{db: db}, nil
}

// Close releases the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Save sets the key's record.
func (s *BadgerStore) Save(_ context.Context, key string, f *fst.Fst) error {
	if err := checkKey(key); err != nil {
		return err
	}
	b, err := marshalRecord(f)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), b)
	})
}

// Load reads the key's record.
func (s *BadgerStore) Load(_ context.Context, key string) (*fst.Fst, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, notFound(key)
	}
	if err != nil {
		return nil, err
	}
	return unmarshalFst(val)
}

// Delete removes the key's record.
func (s *BadgerStore) Delete(_ context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(key)); err != nil {
			return err
		}
		return txn.Delete([]byte(key))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return notFound(key)
	}
	return err
}

// Records calls fn for every stored record in key order.
func (s *BadgerStore) Records(fn func(key string, r Record) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			v, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			r, err := UnmarshalRecord(v)
			if err != nil {
				return err
			}
			if err := fn(string(item.KeyCopy(nil)), r); err != nil {
				return err
			}
		}
		return nil
	})
}
