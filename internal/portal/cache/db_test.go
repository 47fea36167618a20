package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

func TestInitDatabase_MigratesAndServes(t *testing.T) {
	ctx := context.Background()

	db, store, err := InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, store.Set(ctx, KeyEvents, []byte("[]")))
	v, err := store.Get(ctx, KeyEvents)
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)
}
