package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:metadata_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
DELETE FROM metadata;
`)
	require.NoError(t, err)
	return db
}

func TestSetGet_RoundTripAndOverwrite(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "session.user", []byte(`{"_id":"u1"}`)))

	got, err := repo.Get(ctx, "session.user")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"_id":"u1"}`), got)

	require.NoError(t, repo.Set(ctx, "session.user", []byte(`{"_id":"u2"}`)))
	got, err = repo.Get(ctx, "session.user")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"_id":"u2"}`), got)
}

func TestGet_MissingKeyReturnsNil(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)

	got, err := repo.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDelete_RemovesSingleKey(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "a", []byte("1")))
	require.NoError(t, repo.Set(ctx, "b", []byte("2")))
	require.NoError(t, repo.Delete(ctx, "a"))

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), got)
}

func TestClearAndList(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "a", []byte("1")))
	require.NoError(t, repo.Set(ctx, "b", []byte("2")))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, []byte("1"), all["a"])

	require.NoError(t, repo.Clear(ctx))
	all, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
