package store_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/internal/testutil"
	"github.com/katalvlaran/lvfst/store"
	"github.com/katalvlaran/lvfst/weight"
)

const sample = "0 1 1 2 0.5\n0 2 3 0 1.25\n1 2 4 4 2\n2 0.75\n1\n"

func compile(t *testing.T, s weight.Semiring) *fst.Fst {
	t.Helper()
	f, err := fst.ReadText(strings.NewReader(sample), s, false)
	require.NoError(t, err)
	return f
}

// StoreSuite runs the same contract against every backend.
type StoreSuite struct {
	suite.Suite
	open func(t *testing.T) store.Store
	st   store.Store
	ctx  context.Context
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.st = s.open(s.T())
}

func (s *StoreSuite) TestRoundTrip() {
	for _, sr := range weight.Semirings {
		s.Run(sr.String(), func() {
			f := compile(s.T(), sr)
			s.Require().NoError(s.st.Save(s.ctx, "rt-"+sr.String(), f))

			got, err := s.st.Load(s.ctx, "rt-"+sr.String())
			s.Require().NoError(err)
			s.Equal(sr, got.Semiring())
			s.True(fst.Equal(f, got, weight.DefaultDelta))
		})
	}
}

func (s *StoreSuite) TestOverwrite() {
	a := compile(s.T(), weight.Tropical)
	s.Require().NoError(s.st.Save(s.ctx, "k", a))

	b, err := fst.New(weight.Log)
	s.Require().NoError(err)
	b.AddState()
	s.Require().NoError(b.SetStart(0))
	s.Require().NoError(s.st.Save(s.ctx, "k", b))

	got, err := s.st.Load(s.ctx, "k")
	s.Require().NoError(err)
	s.Equal(weight.Log, got.Semiring())
	s.Equal(1, got.NumStates())
}

func (s *StoreSuite) TestDelete() {
	s.Require().NoError(s.st.Save(s.ctx, "gone", compile(s.T(), weight.Tropical)))
	s.Require().NoError(s.st.Delete(s.ctx, "gone"))

	_, err := s.st.Load(s.ctx, "gone")
	s.ErrorIs(err, store.ErrNotFound)
	s.ErrorIs(s.st.Delete(s.ctx, "gone"), store.ErrNotFound)
}

func (s *StoreSuite) TestMissingAndEmptyKeys() {
	_, err := s.st.Load(s.ctx, "never-saved")
	s.ErrorIs(err, store.ErrNotFound)

	_, err = s.st.Load(s.ctx, "")
	s.ErrorIs(err, store.ErrEmptyKey)
	s.ErrorIs(s.st.Save(s.ctx, "", compile(s.T(), weight.Tropical)), store.ErrEmptyKey)
	s.ErrorIs(s.st.Delete(s.ctx, ""), store.ErrEmptyKey)
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &StoreSuite{open: func(*testing.T) store.Store {
		return store.NewMemoryStore()
	}})
}

func TestFileStore(t *testing.T) {
	suite.Run(t, &StoreSuite{open: func(t *testing.T) store.Store {
		return store.NewFileStore(t.TempDir())
	}})
}

func TestSQLiteStore(t *testing.T) {
	suite.Run(t, &StoreSuite{open: func(t *testing.T) store.Store {
		st, db, err := store.OpenSQLite(context.Background(), ":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		return st
	}})
}

func TestBadgerStore(t *testing.T) {
	suite.Run(t, &StoreSuite{open: func(t *testing.T) store.Store {
		st, err := store.OpenBadger("")
		require.NoError(t, err)
		t.Cleanup(func() { _ = st.Close() })
		return st
	}})
}

func TestPostgresStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	dsn := testutil.PostgresDSN(t)
	suite.Run(t, &StoreSuite{open: func(t *testing.T) store.Store {
		st, db, err := store.OpenPostgres(context.Background(), dsn)
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		_, err = db.Exec(`DELETE FROM automata`)
		require.NoError(t, err)
		return st
	}})
}

func TestRedisStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	addr := testutil.RedisAddr(t)
	suite.Run(t, &StoreSuite{open: func(t *testing.T) store.Store {
		client := redis.NewClient(&redis.Options{Addr: addr})
		t.Cleanup(func() { _ = client.Close() })
		require.NoError(t, client.FlushDB(context.Background()).Err())
		return store.NewRedisStore(client, "")
	}})
}

func TestMongoStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	uri := testutil.MongoURI(t)
	suite.Run(t, &StoreSuite{open: func(t *testing.T) store.Store {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
		return store.NewMongoStore(client, "lvfst_"+strings.ReplaceAll(uuid.NewString(), "-", ""), "")
	}})
}

func TestBadgerStore_Records(t *testing.T) {
	st, err := store.OpenBadger("")
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	require.NoError(t, st.Save(ctx, "b", compile(t, weight.Log)))
	require.NoError(t, st.Save(ctx, "a", compile(t, weight.Tropical)))

	var keys []string
	var recs []store.Record
	require.NoError(t, st.Records(func(key string, r store.Record) error {
		keys = append(keys, key)
		recs = append(recs, r)
		return nil
	}))
	assert.Equal(t, []string{"a", "b"}, keys)
	assert.Equal(t, "tropical", recs[0].Semiring)
	assert.Equal(t, "log", recs[1].Semiring)
	assert.Equal(t, 3, recs[0].States)
	assert.Equal(t, 3, recs[0].Arcs)
	assert.NotEmpty(t, recs[0].Data)
}

func TestUnmarshalRecord_Corrupt(t *testing.T) {
	_, err := store.UnmarshalRecord([]byte{0xc1})
	assert.ErrorIs(t, err, store.ErrCorrupt)
}

func TestMemoryStore_Keys(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	for _, k := range []string{"z", "m", "a"} {
		require.NoError(t, st.Save(ctx, k, compile(t, weight.Tropical)))
	}
	assert.Equal(t, []string{"a", "m", "z"}, st.Keys())
}

func TestMemoryStore_Detached(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	f := compile(t, weight.Tropical)
	require.NoError(t, st.Save(ctx, "k", f))

	f.DeleteStates()
	got, err := st.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 3, got.NumStates())
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		cfg     store.Config
		wantErr error
	}{
		{"default file", store.Config{Dir: t.TempDir()}, nil},
		{"memory", store.Config{Backend: "memory"}, nil},
		{"sqlite", store.Config{Backend: "sqlite"}, nil},
		{"badger", store.Config{Backend: "badger"}, nil},
		{"unknown", store.Config{Backend: "etcd"}, store.ErrUnknownBackend},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st, closeFn, err := store.Open(ctx, tc.cfg)
			require.NotNil(t, closeFn)
			defer func() { assert.NoError(t, closeFn()) }()
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, st.Save(ctx, "k", compile(t, weight.Tropical)))
			_, err = st.Load(ctx, "k")
			assert.NoError(t, err)
		})
	}
}

// sqlite keeps the metadata columns in sync with the blob.
func TestSQLiteStore_Columns(t *testing.T) {
	ctx := context.Background()
	st, db, err := store.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, st.Save(ctx, "k", compile(t, weight.Log64)))

	var sr string
	var states, arcs int
	row := db.QueryRowContext(ctx, `SELECT semiring, states, arcs FROM automata WHERE key = ?`, "k")
	require.NoError(t, row.Scan(&sr, &states, &arcs))
	assert.Equal(t, "log64", sr)
	assert.Equal(t, 3, states)
	assert.Equal(t, 3, arcs)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM automata`).Scan(&n))
	assert.Equal(t, 1, n)
}
