package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/linkgenetic/linkid-resolver/internal/app/server"
	"github.com/linkgenetic/linkid-resolver/internal/app/service"
	"github.com/linkgenetic/linkid-resolver/internal/cache"
	"github.com/linkgenetic/linkid-resolver/internal/registry"
	"github.com/linkgenetic/linkid-resolver/internal/resolver"
	"github.com/linkgenetic/linkid-resolver/pkg/linkid"
)

func newTestServer(t *testing.T) (*httptest.Server, *service.Auth) {
	t.Helper()

	store := registry.NewMemoryStore()
	resultCache := cache.New[resolver.Resolution](resolver.MetadataTTL, time.Minute)
	svc := resolver.New(store, resultCache, zap.NewNop())
	auth := service.NewAuth("integration-secret")

	r := server.Init(svc, auth, zap.NewNop(), server.Options{
		BaseURL:            "https://w3id.org/linkid",
		ResolverName:       "resolver.test",
		RateLimitPerMinute: 600,
		RateLimitPerHour:   3600,
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, auth
}

func writeToken(t *testing.T, auth *service.Auth, sub string) string {
	t.Helper()
	token, err := auth.BuildToken(sub, []string{service.ScopeRead, service.ScopeWrite})
	require.NoError(t, err)
	return token
}

// Full lifecycle through the SDK: register, redirect resolution, metadata
// resolution, repoint, withdraw, tombstoned resolution.
func TestLifecycle(t *testing.T) {
	srv, auth := newTestServer(t)
	ctx := context.Background()

	client, err := linkid.New(srv.URL, linkid.WithAPIKey(writeToken(t, auth, "alice")))
	require.NoError(t, err)

	reg, err := client.Register(ctx, linkid.RegistrationRequest{
		TargetURI: "https://example.org/resource",
		Metadata:  map[string]any{"title": "A Resource"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, reg.ID)
	assert.Equal(t, "https://w3id.org/linkid/"+reg.ID, reg.URI)

	res, err := client.Resolve(ctx, reg.ID)
	require.NoError(t, err)
	redirect, ok := res.(linkid.Redirect)
	require.True(t, ok)
	assert.Equal(t, "https://example.org/resource", redirect.URI)
	assert.False(t, redirect.Permanent)
	assert.Equal(t, "resolver.test", redirect.Resolver)

	res, err = client.Resolve(ctx, reg.ID, linkid.WithMetadata())
	require.NoError(t, err)
	metadata, ok := res.(linkid.Metadata)
	require.True(t, ok)
	assert.Equal(t, "https://example.org/resource", metadata.Data.Target)
	assert.Equal(t, int64(1), metadata.Data.Version)
	assert.Equal(t, "alice", metadata.Data.Metadata["issuer"])
	assert.NotEmpty(t, metadata.ETag)

	newTarget := "https://example.org/new"
	_, err = client.Update(ctx, reg.ID, linkid.UpdateRequest{TargetURI: &newTarget})
	require.NoError(t, err)

	res, err = client.Resolve(ctx, reg.ID, linkid.WithMetadata())
	require.NoError(t, err)
	metadata = res.(linkid.Metadata)
	assert.Equal(t, newTarget, metadata.Data.Target)
	assert.Equal(t, int64(2), metadata.Data.Version)

	res, err = client.Resolve(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, newTarget, res.(linkid.Redirect).URI)

	result, err := client.Withdraw(ctx, reg.ID, "owner request")
	require.NoError(t, err)
	assert.Equal(t, "owner request", result.Reason)

	var werr *linkid.WithdrawnError
	_, err = client.Resolve(ctx, reg.ID)
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, "owner request", werr.Tombstone.Reason)
	assert.Equal(t, reg.ID, werr.LinkID)
}

func TestOwnershipEnforcedAcrossIdentities(t *testing.T) {
	srv, auth := newTestServer(t)
	ctx := context.Background()

	alice, err := linkid.New(srv.URL, linkid.WithAPIKey(writeToken(t, auth, "alice")))
	require.NoError(t, err)
	mallory, err := linkid.New(srv.URL, linkid.WithAPIKey(writeToken(t, auth, "mallory")))
	require.NoError(t, err)

	reg, err := alice.Register(ctx, linkid.RegistrationRequest{TargetURI: "https://example.org/resource"})
	require.NoError(t, err)

	var ferr *linkid.ForbiddenError

	target := "https://attacker.example/hijack"
	_, err = mallory.Update(ctx, reg.ID, linkid.UpdateRequest{TargetURI: &target})
	require.ErrorAs(t, err, &ferr)

	_, err = mallory.Withdraw(ctx, reg.ID, "")
	require.ErrorAs(t, err, &ferr)

	res, err := alice.Resolve(ctx, reg.ID, linkid.WithMetadata())
	require.NoError(t, err)
	metadata := res.(linkid.Metadata)
	assert.Equal(t, "https://example.org/resource", metadata.Data.Target)
	assert.Equal(t, int64(1), metadata.Data.Version)
}

func TestRedirectHeaders(t *testing.T) {
	srv, auth := newTestServer(t)
	ctx := context.Background()

	client, err := linkid.New(srv.URL, linkid.WithAPIKey(writeToken(t, auth, "alice")))
	require.NoError(t, err)

	reg, err := client.Register(ctx, linkid.RegistrationRequest{TargetURI: "https://example.org/resource"})
	require.NoError(t, err)

	httpClient := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := httpClient.Get(srv.URL + "/resolve/" + reg.ID)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://example.org/resource", resp.Header.Get("Location"))
	assert.Equal(t, "max-age=300", resp.Header.Get("Cache-Control"))
	assert.Equal(t, "resolver.test", resp.Header.Get("X-LinkID-Resolver"))
	assert.Equal(t, "1.0", resp.Header.Get("X-LinkID-Quality"))
	assert.Contains(t, resp.Header.Get("Link"), reg.ID)
}

func TestUnauthenticatedRegisterRejected(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/register", "application/json",
		nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUnknownLinkIDNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	client, err := linkid.New(srv.URL)
	require.NoError(t, err)

	var nferr *linkid.NotFoundError
	_, err = client.Resolve(context.Background(), "00000000000000000000000000000000")
	require.ErrorAs(t, err, &nferr)
}

func TestDiscoveryDocument(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/.well-known/linkid-resolver")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
}
