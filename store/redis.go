// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/katalvlaran/lvfst/fst"
)

// RedisStore keeps one msgpack Record per key under <prefix>fst:<key>.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore returns a store over client. prefix defaults to "lvfst:".
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "lvfst:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) keyFst(key string) string {
	return r.prefix + "fst:" + key
}

// Save sets the key's record.
func (r *RedisStore) Save(ctx context.Context, key string, f *fst.Fst) error {
	if err := checkKey(key); err != nil {
		return err
	}
	b, err := marshalRecord(f)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.keyFst(key), b, 0).Err()
}

// Load gets the key's record.
func (r *RedisStore) Load(ctx context.Context, key string) (*fst.Fst, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	b, err := r.client.Get(ctx, r.keyFst(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, notFound(key)
	}
	if err != nil {
		return nil, err
	}
	return unmarshalFst(b)
}

// Delete removes the key's record.
func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	n, err := r.client.Del(ctx, r.keyFst(key)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(key)
	}
	return nil
}
