package handler

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/linkgenetic/linkid-resolver/internal/models"
	"github.com/linkgenetic/linkid-resolver/internal/registry"
	"github.com/linkgenetic/linkid-resolver/internal/resolver"
)

var (
	formatPattern = regexp.MustCompile(`^(pdf|html|json|xml|txt)$`)
	langPattern   = regexp.MustCompile(`^[a-z]{2}(-[A-Z]{2})?$`)
)

// GetHandler serves the resolution, health, and discovery endpoints.
type GetHandler struct {
	service      resolver.ServiceIface
	logger       *zap.Logger
	baseURL      string
	resolverName string
	perMinute    int
	perHour      int
}

// NewGet creates a GetHandler. baseURL is the public prefix under which
// identifiers resolve; resolverName is published in X-LinkID-Resolver.
func NewGet(s resolver.ServiceIface, l *zap.Logger, baseURL, resolverName string, perMinute, perHour int) *GetHandler {
	return &GetHandler{
		service:      s,
		logger:       l,
		baseURL:      baseURL,
		resolverName: resolverName,
		perMinute:    perMinute,
		perHour:      perHour,
	}
}

// ResolveLinkID handles GET /resolve/{linkid}: a redirect to the current
// target by default, or the record snapshot when ?metadata=true.
func (h *GetHandler) ResolveLinkID(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	linkID := chi.URLParam(req, "linkid")
	if !registry.ValidLinkID(linkID) {
		writeJSON(res, http.StatusBadRequest, models.ErrorResponse{
			Error:  "Invalid LinkID format",
			LinkID: linkID,
		})
		return
	}

	request, ok := h.parseResolutionRequest(res, req)
	if !ok {
		return
	}

	h.logger.Info("resolving linkid",
		zap.String("linkid", linkID),
		zap.Bool("preferRedirect", request.PreferRedirect),
	)

	result, err := h.service.Resolve(ctx, linkID, request)
	if err != nil {
		writeResolverError(res, h.logger, err, linkID)
		return
	}

	switch r := result.(type) {
	case resolver.Redirect:
		res.Header().Set("Location", r.URI)
		res.Header().Set("Cache-Control", "max-age="+strconv.Itoa(int(r.CacheTTL.Seconds())))
		res.Header().Set("Link", `<`+h.baseURL+`/`+linkID+`>; rel="canonical"`)
		res.Header().Set("X-LinkID-Resolver", h.resolverName)
		res.Header().Set("X-LinkID-Quality", strconv.FormatFloat(r.Quality, 'f', 1, 64))

		if r.Permanent {
			res.WriteHeader(http.StatusMovedPermanently)
		} else {
			res.WriteHeader(http.StatusFound)
		}

	case resolver.Metadata:
		res.Header().Set("Content-Type", "application/linkid+json")
		res.Header().Set("Cache-Control", "max-age="+strconv.Itoa(int(r.CacheTTL.Seconds())))
		res.Header().Set("ETag", r.ETag)
		res.Header().Set("Vary", "Accept, Accept-Language")
		res.Header().Set("X-LinkID-Resolver", h.resolverName)
		res.WriteHeader(http.StatusOK)

		if err := writeBody(res, r.Data); err != nil {
			h.logger.Error("failed to write metadata body", zap.Error(err))
		}
	}
}

// parseResolutionRequest validates the query parameters and assembles the
// resolver request. Content negotiation inputs are carried through even
// though single-target resolution ignores them.
func (h *GetHandler) parseResolutionRequest(res http.ResponseWriter, req *http.Request) (resolver.Request, bool) {
	q := req.URL.Query()

	format := q.Get("format")
	if format != "" && !formatPattern.MatchString(format) {
		writeJSON(res, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid format parameter"})
		return resolver.Request{}, false
	}

	lang := q.Get("lang")
	if lang != "" && !langPattern.MatchString(lang) {
		writeJSON(res, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid lang parameter"})
		return resolver.Request{}, false
	}

	version := 0
	if raw := q.Get("version"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			writeJSON(res, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid version parameter"})
			return resolver.Request{}, false
		}
		version = v
	}

	metadata := false
	if raw := q.Get("metadata"); raw != "" {
		m, err := strconv.ParseBool(raw)
		if err != nil {
			writeJSON(res, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid metadata parameter"})
			return resolver.Request{}, false
		}
		metadata = m
	}

	return resolver.Request{
		Format:         format,
		Language:       lang,
		Version:        version,
		Timestamp:      q.Get("at"),
		AcceptHeader:   req.Header.Get("Accept"),
		AcceptLanguage: req.Header.Get("Accept-Language"),
		PreferRedirect: !metadata,
	}, true
}

// Health handles GET /health.
func (h *GetHandler) Health(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	writeJSON(res, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": models.EpochSeconds(time.Now()),
		"version":   "1.0.0",
		"services":  h.service.HealthCheck(ctx),
	})
}

// Discovery handles GET /.well-known/linkid-resolver: a capability document
// enumerating endpoint templates, supported formats, and advisory
// rate-limit figures.
func (h *GetHandler) Discovery(res http.ResponseWriter, req *http.Request) {
	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}
	base := scheme + "://" + req.Host

	writeJSON(res, http.StatusOK, map[string]any{
		"resolver": map[string]any{
			"version": "1.0",
			"endpoints": map[string]string{
				"resolve":  base + "/resolve/{id}",
				"register": base + "/register",
				"update":   base + "/resolve/{id}",
				"withdraw": base + "/resolve/{id}",
			},
			"capabilities": []string{
				"content-negotiation",
				"caching",
				"authentication",
				"rate-limiting",
				"federation",
			},
			"supportedFormats": []string{
				"application/linkid+json",
				"application/json",
				"text/html",
			},
			"rateLimits": map[string]int{
				"perMinute": h.perMinute,
				"perHour":   h.perHour,
			},
		},
	})
}
