package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-resolution-router/internal/core/domain"
	"model-resolution-router/internal/testutil"
)

func newTestStore(t *testing.T) *SiteConfigStore {
	t.Helper()
	store, err := New(context.Background(), filepath.Join(t.TempDir(), "sites.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSiteConfigStore_PutGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testutil.WortenSiteKey, []byte(testutil.WortenConfig)))

	doc, err := store.Get(ctx, testutil.WortenSiteKey)
	require.NoError(t, err)
	assert.JSONEq(t, testutil.WortenConfig, string(doc))
}

func TestSiteConfigStore_PutReplaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testutil.AudiSiteKey, []byte(testutil.WortenConfig)))
	require.NoError(t, store.Put(ctx, testutil.AudiSiteKey, []byte(testutil.AudiConfig)))

	doc, err := store.Get(ctx, testutil.AudiSiteKey)
	require.NoError(t, err)
	assert.JSONEq(t, testutil.AudiConfig, string(doc))
}

func TestSiteConfigStore_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "unknown.example")
	assert.ErrorIs(t, err, domain.ErrSiteConfigNotFound)
}

func TestSiteConfigStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.db")
	ctx := context.Background()

	store, err := New(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, testutil.WortenSiteKey, []byte(testutil.WortenConfig)))
	require.NoError(t, store.Close())

	reopened, err := New(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	_, err = reopened.Get(ctx, testutil.WortenSiteKey)
	assert.NoError(t, err)
}
