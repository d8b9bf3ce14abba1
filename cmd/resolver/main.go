package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/linkgenetic/linkid-resolver/internal/app/server"
	"github.com/linkgenetic/linkid-resolver/internal/app/service"
	"github.com/linkgenetic/linkid-resolver/internal/cache"
	"github.com/linkgenetic/linkid-resolver/internal/config"
	"github.com/linkgenetic/linkid-resolver/internal/logger"
	"github.com/linkgenetic/linkid-resolver/internal/registry"
	"github.com/linkgenetic/linkid-resolver/internal/resolver"
	"github.com/linkgenetic/linkid-resolver/internal/seed"

	_ "net/http/pprof"
)

var buildVersion string
var buildDate string
var buildCommit string

func main() {
	options := config.Parse()

	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		panic(err)
	}
	zapLogger := log.Log
	defer func() {
		_ = zapLogger.Sync()
	}()

	zapLogger.Info("build info",
		zap.String("version", buildVersion),
		zap.String("date", buildDate),
		zap.String("commit", buildCommit),
	)

	if options.EnablePprof {
		go func() {
			zapLogger.Info("Starting pprof server", zap.String("addr", "localhost:6060"))
			if err := http.ListenAndServe("localhost:6060", nil); err != nil {
				zapLogger.Error("pprof server error", zap.Error(err))
			}
		}()
	}

	store := registry.NewMemoryStore()

	if options.SeedFile != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		created, err := seed.Load(ctx, options.SeedFile, store, zapLogger)
		cancel()
		if err != nil {
			zapLogger.Fatal("seed import failed", zap.Error(err))
		}
		zapLogger.Info("seeded registry", zap.Int("records", len(created)))
	}

	resultCache := cache.New[resolver.Resolution](resolver.MetadataTTL, 10*time.Minute)
	svc := resolver.New(store, resultCache, zapLogger)
	auth := service.NewAuth(options.JWTSecret)

	r := server.Init(svc, auth, zapLogger, server.Options{
		BaseURL:            options.BaseURL,
		ResolverName:       options.ResolverName,
		RateLimitPerMinute: options.RateLimitPerMinute,
		RateLimitPerHour:   options.RateLimitPerHour,
	})

	if options.EnableHTTPS {
		manager := &autocert.Manager{
			Cache:      autocert.DirCache("cache-dir"),
			Prompt:     autocert.AcceptTOS,
			HostPolicy: autocert.HostWhitelist(strings.Split(options.TLSHosts, ",")...),
		}
		srv := &http.Server{
			Addr:      ":443",
			Handler:   r,
			TLSConfig: manager.TLSConfig(),
		}
		zapLogger.Info("Server is running with TLS", zap.String("hosts", options.TLSHosts))
		if err := srv.ListenAndServeTLS("", ""); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	} else {
		zapLogger.Info("Server is running", zap.String("addr", options.Address))
		if err := http.ListenAndServe(options.Address, r); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}
}
