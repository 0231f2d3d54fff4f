package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "printlink.json")

	fs, err := NewFileStore(path)
	require.NoError(t, err)

	id, err := fs.Create(ctx, "requests", Document{"title": "benchy", "status": "Pending"})
	require.NoError(t, err)
	offerID, err := fs.Create(ctx, "requests/"+id+"/offers", Document{"price": 12.5, "maker_id": "maker-1"})
	require.NoError(t, err)

	before, err := fs.Get(ctx, DocPath("requests", id))
	require.NoError(t, err)

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	snap, err := reopened.Get(ctx, DocPath("requests", id))
	require.NoError(t, err)
	assert.Equal(t, "benchy", snap.Data["title"])
	assert.Equal(t, "Pending", snap.Data["status"])
	assert.True(t, snap.CreatedAt.Equal(before.CreatedAt), "timestamps survive the round trip")

	offerSnap, err := reopened.Get(ctx, DocPath("requests/"+id+"/offers", offerID))
	require.NoError(t, err)
	assert.Equal(t, 12.5, offerSnap.Data["price"])
}

func TestFileStorePersistsUpdates(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "printlink.json")

	fs, err := NewFileStore(path)
	require.NoError(t, err)

	id, err := fs.Create(ctx, "requests", Document{"status": "Pending"})
	require.NoError(t, err)

	applied, err := fs.UpdateIf(ctx, DocPath("requests", id), Document{"status": "InProgress", "maker_id": "maker-1"}, "status", "Pending")
	require.NoError(t, err)
	require.True(t, applied)

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	snap, err := reopened.Get(ctx, DocPath("requests", id))
	require.NoError(t, err)
	assert.Equal(t, "InProgress", snap.Data["status"])
	assert.Equal(t, "maker-1", snap.Data["maker_id"])
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "does-not-exist.json")

	fs, err := NewFileStore(path)
	require.NoError(t, err)

	snaps, err := fs.Query(ctx, Query{Collection: "requests"})
	require.NoError(t, err)
	assert.Empty(t, snaps)
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewFileStore(path)
	assert.Error(t, err)
}
