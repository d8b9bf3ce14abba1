package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linkgenetic/linkid-resolver/internal/config"
)

func TestParse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		os.Clearenv()
		opts := config.Parse()
		require.Equal(t, "localhost:8080", opts.Address)
		require.Equal(t, "https://w3id.org/linkid", opts.BaseURL)
		require.Equal(t, "resolver.linkid.org", opts.ResolverName)
		require.Equal(t, "", opts.SeedFile)
		require.Equal(t, "info", opts.LogLevel)
		require.Equal(t, 600, opts.RateLimitPerMinute)
		require.Equal(t, 3600, opts.RateLimitPerHour)
		require.False(t, opts.EnableHTTPS)
		require.False(t, opts.EnablePprof)
	})

	t.Run("env overrides", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("LINKID_SERVER_ADDRESS", "127.0.0.1:9999")
		os.Setenv("LINKID_BASE_URL", "https://links.example.org")
		os.Setenv("LINKID_RESOLVER_NAME", "resolver.example.org")
		os.Setenv("LINKID_SEED_FILE", "/tmp/seed.json")
		os.Setenv("LINKID_JWT_SECRET", "test-secret")
		os.Setenv("LINKID_LOG_LEVEL", "debug")
		os.Setenv("LINKID_ENABLE_HTTPS", "true")
		os.Setenv("LINKID_TLS_HOSTS", "links.example.org")

		opts := config.Parse()
		require.Equal(t, "127.0.0.1:9999", opts.Address)
		require.Equal(t, "https://links.example.org", opts.BaseURL)
		require.Equal(t, "resolver.example.org", opts.ResolverName)
		require.Equal(t, "/tmp/seed.json", opts.SeedFile)
		require.Equal(t, "test-secret", opts.JWTSecret)
		require.Equal(t, "debug", opts.LogLevel)
		require.True(t, opts.EnableHTTPS)
		require.Equal(t, "links.example.org", opts.TLSHosts)
	})

	t.Run("bad https flag", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("LINKID_ENABLE_HTTPS", "sure")

		opts := config.Parse()
		require.False(t, opts.EnableHTTPS)
	})
}
