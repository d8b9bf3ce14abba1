package resolver_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/linkgenetic/linkid-resolver/internal/cache"
	"github.com/linkgenetic/linkid-resolver/internal/registry"
	"github.com/linkgenetic/linkid-resolver/internal/resolver"
)

func newService(t *testing.T) (*resolver.Service, *registry.MemoryStore) {
	t.Helper()
	store := registry.NewMemoryStore()
	resultCache := cache.New[resolver.Resolution](time.Minute, time.Minute)
	return resolver.New(store, resultCache, zap.NewNop()), store
}

func TestService_ResolveRedirect(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	record, err := store.Create(ctx, registry.RegistrationPayload{TargetURI: "https://example.org/resource"}, "issuer-1")
	require.NoError(t, err)

	result, err := svc.Resolve(ctx, record.ID, resolver.Request{PreferRedirect: true})
	require.NoError(t, err)

	redirect, ok := result.(resolver.Redirect)
	require.True(t, ok)
	assert.Equal(t, "https://example.org/resource", redirect.URI)
	assert.False(t, redirect.Permanent)
	assert.Equal(t, resolver.RedirectTTL, redirect.CacheTTL)
	assert.Equal(t, 1.0, redirect.Quality)
}

func TestService_ResolveMetadata(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	record, err := store.Create(ctx, registry.RegistrationPayload{
		TargetURI: "https://example.org/resource",
		MediaType: "application/pdf",
		Language:  "en",
	}, "issuer-1")
	require.NoError(t, err)

	result, err := svc.Resolve(ctx, record.ID, resolver.Request{PreferRedirect: false})
	require.NoError(t, err)

	metadata, ok := result.(resolver.Metadata)
	require.True(t, ok)
	assert.Equal(t, record.ID, metadata.Data.ID)
	assert.Equal(t, "https://example.org/resource", metadata.Data.Target)
	assert.Equal(t, "application/pdf", metadata.Data.MediaType)
	assert.Equal(t, int64(1), metadata.Data.Version)
	assert.Equal(t, "issuer-1", metadata.Data.Metadata["issuer"])
	assert.Equal(t, resolver.MetadataTTL, metadata.CacheTTL)
	assert.Equal(t, fmt.Sprintf(`W/"1-%d"`, record.Updated.Unix()), metadata.ETag)
}

func TestService_ResolveErrorsPropagate(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	_, err := svc.Resolve(ctx, "missingmissingmissingmissingmissing1", resolver.Request{PreferRedirect: true})
	var nf *registry.NotFoundError
	require.ErrorAs(t, err, &nf)

	record, err := store.Create(ctx, registry.RegistrationPayload{TargetURI: "https://example.org"}, "issuer-1")
	require.NoError(t, err)
	require.NoError(t, store.Withdraw(ctx, record.ID, "issuer-1", "gone"))

	_, err = svc.Resolve(ctx, record.ID, resolver.Request{PreferRedirect: true})
	var werr *registry.WithdrawnError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, "gone", werr.Tombstone.Reason)
}

func TestService_UpdateInvalidatesCache(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	record, err := store.Create(ctx, registry.RegistrationPayload{TargetURI: "https://example.org/old"}, "issuer-1")
	require.NoError(t, err)

	// Prime both response shapes.
	_, err = svc.Resolve(ctx, record.ID, resolver.Request{PreferRedirect: true})
	require.NoError(t, err)
	_, err = svc.Resolve(ctx, record.ID, resolver.Request{PreferRedirect: false})
	require.NoError(t, err)

	target := "https://example.org/new"
	require.NoError(t, svc.Update(ctx, record.ID, "issuer-1", registry.UpdateFields{TargetURI: &target}))

	result, err := svc.Resolve(ctx, record.ID, resolver.Request{PreferRedirect: true})
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/new", result.(resolver.Redirect).URI)

	meta, err := svc.Resolve(ctx, record.ID, resolver.Request{PreferRedirect: false})
	require.NoError(t, err)
	assert.Equal(t, int64(2), meta.(resolver.Metadata).Data.Version)
}

func TestService_WithdrawInvalidatesCache(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	record, err := store.Create(ctx, registry.RegistrationPayload{TargetURI: "https://example.org"}, "issuer-1")
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, record.ID, resolver.Request{PreferRedirect: true})
	require.NoError(t, err)

	require.NoError(t, svc.Withdraw(ctx, record.ID, "issuer-1", "owner request"))

	_, err = svc.Resolve(ctx, record.ID, resolver.Request{PreferRedirect: true})
	var werr *registry.WithdrawnError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, "owner request", werr.Tombstone.Reason)
}

func TestService_Register(t *testing.T) {
	svc, _ := newService(t)

	record, err := svc.Register(context.Background(), registry.RegistrationPayload{TargetURI: "https://example.org"}, "issuer-1")
	require.NoError(t, err)
	assert.True(t, registry.ValidLinkID(record.ID))
	assert.Equal(t, "issuer-1", record.Issuer())
}

func TestService_HealthCheck(t *testing.T) {
	svc, _ := newService(t)

	health := svc.HealthCheck(context.Background())
	assert.True(t, health["registry"])
	assert.True(t, health["cache"])
}
