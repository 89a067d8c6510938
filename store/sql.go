// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Drivers registered for OpenSQLite and OpenPostgres.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/lvfst/fst"
)

// Dialect selects the SQL flavour of an SQLStore.
type Dialect uint8

const (
	// SQLite uses ? placeholders and BLOB columns ("sqlite" driver).
	SQLite Dialect = iota
	// Postgres uses $n placeholders and BYTEA columns ("pgx" driver).
	Postgres
)

// SQLStore keeps automata in a single table:
//
//	automata(key TEXT PRIMARY KEY, semiring TEXT, states INTEGER, arcs INTEGER, data BLOB|BYTEA)
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	table   string
}

// NewSQLStore creates the table if needed and returns a store over db. The
// caller keeps ownership of db.
func NewSQLStore(ctx context.Context, db *sql.DB, dialect Dialect) (*SQLStore, error) {
	s := &SQLStore{db: db, dialect: dialect, table: "automata"}
	if err := s.initSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// OpenSQLite opens dsn with the modernc.org/sqlite driver. ":memory:" is
// limited to one connection so every statement sees the same database.
func OpenSQLite(ctx context.Context, dsn string) (*SQLStore, *sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, err
	}
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	s, err := NewSQLStore(ctx, db, SQLite)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return s, db, nil
}

// OpenPostgres opens dsn with the pgx stdlib driver.
func OpenPostgres(ctx context.Context, dsn string) (*SQLStore, *sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, err
	}
	s, err := NewSQLStore(ctx, db, Postgres)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return s, db, nil
}

func (s *SQLStore) initSchema(ctx context.Context) error {
	blob := "BLOB"
	if s.dialect == Postgres {
		blob = "BYTEA"
	}
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key TEXT PRIMARY KEY,
			semiring TEXT NOT NULL,
			states INTEGER NOT NULL,
			arcs INTEGER NOT NULL,
			data %s NOT NULL
		);`, s.table, blob),
	)
	return err
}

// query rewrites ? placeholders for the dialect.
func (s *SQLStore) query(q string) string {
	if s.dialect != Postgres {
		return q
	}
	out := make([]byte, 0, len(q)+8)
	n := 0
	for i := 0; i < len(q); i++ {
		if q[i] == '?' {
			n++
			out = fmt.Appendf(out, "$%d", n)
			continue
		}
		out = append(out, q[i])
	}
	return string(out)
}

// Save inserts or replaces the row of key.
func (s *SQLStore) Save(ctx context.Context, key string, f *fst.Fst) error {
	if err := checkKey(key); err != nil {
		return err
	}
	data, err := encode(f)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, s.query(`
		INSERT INTO `+s.table+` (key, semiring, states, arcs, data)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			semiring = excluded.semiring,
			states = excluded.states,
			arcs = excluded.arcs,
			data = excluded.data`),
		key, f.Semiring().String(), f.NumStates(), f.TotalArcs(), data,
	)
	return err
}

// Load reads the row of key.
func (s *SQLStore) Load(ctx context.Context, key string) (*fst.Fst, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	var data []byte
	err := s.db.QueryRowContext(ctx, s.query(`SELECT data FROM `+s.table+` WHERE key = ?`), key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(key)
	}
	if err != nil {
		return nil, err
	}
	return decode(data)
}

// Delete removes the row of key.
func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, s.query(`DELETE FROM `+s.table+` WHERE key = ?`), key)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(key)
	}
	return nil
}
