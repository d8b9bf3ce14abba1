// Package config provides the resolver's configuration from command-line
// flags, a .env file, and environment variables, in increasing precedence.
package config

import (
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the resolver binary.
type Options struct {
	// Address defines the server's listening address (ip:port).
	Address string

	// BaseURL is the public URL under which registered identifiers resolve.
	BaseURL string

	// ResolverName identifies this resolver in the X-LinkID-Resolver header.
	ResolverName string

	// SeedFile is an optional JSON file of records to import at startup.
	SeedFile string

	// JWTSecret signs and verifies the bearer tokens accepted on mutations.
	JWTSecret string

	// LogLevel is the zap level for the application logger.
	LogLevel string

	// RateLimitPerMinute and RateLimitPerHour are advisory figures published
	// in the discovery document.
	RateLimitPerMinute int
	RateLimitPerHour   int

	// EnablePprof indicates whether to start the pprof listener.
	EnablePprof bool

	// EnableHTTPS indicates whether to serve TLS via autocert.
	EnableHTTPS bool

	// TLSHosts is the autocert host whitelist when EnableHTTPS is set.
	TLSHosts string
}

var options = &Options{}

func init() {
	flag.StringVar(&options.Address, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.BaseURL, "b", "https://w3id.org/linkid", "base URI for registered identifiers")
	flag.StringVar(&options.ResolverName, "n", "resolver.linkid.org", "resolver identity header value")
	flag.StringVar(&options.SeedFile, "f", "", "path to seed file")
	flag.StringVar(&options.JWTSecret, "j", "supersecretkey", "jwt signing secret")
	flag.StringVar(&options.LogLevel, "l", "info", "log level")
	flag.IntVar(&options.RateLimitPerMinute, "rm", 600, "advisory per-minute rate limit")
	flag.IntVar(&options.RateLimitPerHour, "rh", 3600, "advisory per-hour rate limit")
	flag.BoolVar(&options.EnablePprof, "p", false, "enable pprof")
	flag.BoolVar(&options.EnableHTTPS, "s", false, "enable https")
	flag.StringVar(&options.TLSHosts, "t", "", "comma-separated autocert host whitelist")
}

// Parse parses flags and applies .env and environment overrides. Environment
// variables use the LINKID_ prefix.
func Parse() *Options {
	flag.Parse()

	// Missing .env is not an error.
	_ = godotenv.Load()

	if v := os.Getenv("LINKID_SERVER_ADDRESS"); v != "" {
		options.Address = v
	}
	if v := os.Getenv("LINKID_BASE_URL"); v != "" {
		options.BaseURL = v
	}
	if v := os.Getenv("LINKID_RESOLVER_NAME"); v != "" {
		options.ResolverName = v
	}
	if v := os.Getenv("LINKID_SEED_FILE"); v != "" {
		options.SeedFile = v
	}
	if v := os.Getenv("LINKID_JWT_SECRET"); v != "" {
		options.JWTSecret = v
	}
	if v := os.Getenv("LINKID_LOG_LEVEL"); v != "" {
		options.LogLevel = v
	}
	if v := os.Getenv("LINKID_ENABLE_HTTPS"); v != "" {
		httpsMode, err := strconv.ParseBool(v)
		if err != nil {
			options.EnableHTTPS = false
		} else {
			options.EnableHTTPS = httpsMode
		}
	}
	if v := os.Getenv("LINKID_TLS_HOSTS"); v != "" {
		options.TLSHosts = v
	}

	return options
}
