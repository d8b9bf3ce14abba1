package seed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/linkgenetic/linkid-resolver/internal/registry"
	"github.com/linkgenetic/linkid-resolver/internal/seed"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	store := registry.NewMemoryStore()
	ctx := context.Background()

	path := writeSeed(t, `[
		{"targetUri": "https://example.org/one", "issuer": "alice", "metadata": {"title": "One"}},
		{"targetUri": "https://example.org/two"},
		{"targetUri": "https://example.org/gone", "withdrawn": true, "withdrawalReason": "superseded"}
	]`)

	created, err := seed.Load(ctx, path, store, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, created, 3)

	first, err := store.GetActive(ctx, created[0])
	require.NoError(t, err)
	assert.Equal(t, "alice", first.Issuer())
	assert.Equal(t, "One", first.Metadata["title"])

	second, err := store.GetActive(ctx, created[1])
	require.NoError(t, err)
	assert.Equal(t, "seed", second.Issuer())

	var werr *registry.WithdrawnError
	_, err = store.GetActive(ctx, created[2])
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, "superseded", werr.Tombstone.Reason)
}

func TestLoad_MissingFile(t *testing.T) {
	store := registry.NewMemoryStore()

	created, err := seed.Load(context.Background(), "/does/not/exist.json", store, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestLoad_MalformedFile(t *testing.T) {
	store := registry.NewMemoryStore()
	path := writeSeed(t, `{"not": "an array"`)

	_, err := seed.Load(context.Background(), path, store, zap.NewNop())
	assert.Error(t, err)
}

func TestLoad_BadRecord(t *testing.T) {
	store := registry.NewMemoryStore()
	path := writeSeed(t, `[{"mediaType": "text/html"}]`)

	_, err := seed.Load(context.Background(), path, store, zap.NewNop())
	assert.Error(t, err)
}
