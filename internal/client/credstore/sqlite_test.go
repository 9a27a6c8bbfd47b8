package credstore

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", "file:credstore?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE credentials (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return NewSQLiteStore(db)
}

func TestGet_AbsentKeyReturnsEmpty(t *testing.T) {
	s := setupDB(t)

	v, err := s.Get(context.Background(), "access_token")
	require.NoError(t, err)
	require.Empty(t, v)
}

func TestSet_OverwritesUnconditionally(t *testing.T) {
	s := setupDB(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "access_token", "first"))
	require.NoError(t, s.Set(ctx, "access_token", "second"))

	v, err := s.Get(ctx, "access_token")
	require.NoError(t, err)
	require.Equal(t, "second", v)
}

func TestRemove_IsIdempotent(t *testing.T) {
	s := setupDB(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "refresh_token", "r1"))
	require.NoError(t, s.Remove(ctx, "refresh_token"))
	require.NoError(t, s.Remove(ctx, "refresh_token"))

	v, err := s.Get(ctx, "refresh_token")
	require.NoError(t, err)
	require.Empty(t, v)
}

func TestClear_RemovesAllEntries(t *testing.T) {
	s := setupDB(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "access_token", "a"))
	require.NoError(t, s.Set(ctx, "refresh_token", "r"))
	require.NoError(t, s.Clear(ctx))

	for _, key := range []string{"access_token", "refresh_token"} {
		v, err := s.Get(ctx, key)
		require.NoError(t, err)
		require.Empty(t, v)
	}
}
