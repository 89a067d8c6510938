// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrUnknownBackend indicates a Config naming no known backend.
var ErrUnknownBackend = errors.New("store: unknown backend")

// Config selects and parameterizes a backend.
type Config struct {
	Backend    string `yaml:"backend"`    // file (default), memory, sqlite, postgres, redis, mongo, badger
	Dir        string `yaml:"dir"`        // file root or badger directory
	DSN        string `yaml:"dsn"`        // sqlite/postgres data source, mongo URI
	Addr       string `yaml:"addr"`       // redis address
	Prefix     string `yaml:"prefix"`     // redis key prefix
	Database   string `yaml:"database"`   // mongo database
	Collection string `yaml:"collection"` // mongo collection
}

// Open builds the backend described by c. The returned close function
// releases any connection Open created and is never nil.
func Open(ctx context.Context, c Config) (Store, func() error, error) {
	noop := func() error { return nil }
	switch c.Backend {
	case "", "file":
		return NewFileStore(c.Dir), noop, nil
	case "memory":
		return NewMemoryStore(), noop, nil
	case "sqlite":
		dsn := c.DSN
		if dsn == "" {
			dsn = ":memory:"
		}
		s, db, err := OpenSQLite(ctx, dsn)
		if err != nil {
			return nil, noop, err
		}
		return s, db.Close, nil
	case "postgres":
		s, db, err := OpenPostgres(ctx, c.DSN)
		if err != nil {
			return nil, noop, err
		}
		return s, db.Close, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: c.Addr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, err
		}
		return NewRedisStore(client, c.Prefix), client.Close, nil
	case "mongo":
		cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		client, err := mongo.Connect(cctx, options.Client().ApplyURI(c.DSN))
		if err != nil {
			return nil, noop, err
		}
		closeFn := func() error { return client.Disconnect(context.Background()) }
		return NewMongoStore(client, c.Database, c.Collection), closeFn, nil
	case "badger":
		s, err := OpenBadger(c.Dir)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
}
