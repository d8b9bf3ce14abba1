// Package server assembles the chi router and middleware chain.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/linkgenetic/linkid-resolver/internal/app/handler"
	"github.com/linkgenetic/linkid-resolver/internal/app/service"
	"github.com/linkgenetic/linkid-resolver/internal/middleware"
	"github.com/linkgenetic/linkid-resolver/internal/resolver"
)

// Options carries the handler wiring knobs.
type Options struct {
	BaseURL            string
	ResolverName       string
	RateLimitPerMinute int
	RateLimitPerHour   int
}

// Init wires the HTTP surface: resolution, mutations, health, discovery.
func Init(svc resolver.ServiceIface, auth service.AuthIface, logger *zap.Logger, opts Options) *chi.Mux {
	getHandler := handler.NewGet(svc, logger, opts.BaseURL, opts.ResolverName, opts.RateLimitPerMinute, opts.RateLimitPerHour)
	postHandler := handler.NewPost(opts.BaseURL, svc, logger)
	putHandler := handler.NewPut(svc, logger)
	deleteHandler := handler.NewDelete(svc, logger)

	r := chi.NewRouter()
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.WithAuth(auth))
	r.Use(middleware.WithGzipRequest)
	r.Use(middleware.WithGzipResponse)

	r.Get("/health", getHandler.Health)
	r.Get("/.well-known/linkid-resolver", getHandler.Discovery)

	r.Get("/resolve/{linkid}", getHandler.ResolveLinkID)
	r.Post("/register", postHandler.Register)
	r.Put("/resolve/{linkid}", putHandler.Update)
	r.Delete("/resolve/{linkid}", deleteHandler.Withdraw)

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
