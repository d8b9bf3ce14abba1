package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/linkgenetic/linkid-resolver/internal/app/service"
	"github.com/linkgenetic/linkid-resolver/internal/middleware"
	"github.com/linkgenetic/linkid-resolver/internal/models"
	"github.com/linkgenetic/linkid-resolver/internal/registry"
	"github.com/linkgenetic/linkid-resolver/internal/resolver"
)

// PostHandler serves POST /register.
type PostHandler struct {
	baseURL string
	service resolver.ServiceIface
	logger  *zap.Logger
}

// NewPost creates a PostHandler.
func NewPost(baseURL string, s resolver.ServiceIface, l *zap.Logger) *PostHandler {
	return &PostHandler{
		baseURL: baseURL,
		service: s,
		logger:  l,
	}
}

// Register handles POST /register. Requires an authenticated identity with
// the write scope; the identity becomes the record's issuer.
func (h *PostHandler) Register(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	identity, ok := middleware.IdentityFromContext(req.Context())
	if !ok {
		writeJSON(res, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	if !identity.HasScope(service.ScopeWrite) {
		writeJSON(res, http.StatusForbidden, models.ErrorResponse{Error: "Write permission required"})
		return
	}

	var request models.RegistrationRequest
	if err := decodeJSONBody(res, req, &request); err != nil {
		var mr *malformedRequest
		if errors.As(err, &mr) {
			writeJSON(res, mr.status, models.ErrorResponse{Error: mr.msg})
		} else {
			h.logger.Error("failed to decode registration body", zap.Error(err))
			writeJSON(res, http.StatusInternalServerError, models.ErrorResponse{Error: "Registration failed"})
		}
		return
	}

	if err := request.Validate(); err != nil {
		writeJSON(res, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	record, err := h.service.Register(ctx, registry.RegistrationPayload{
		TargetURI: request.TargetURI,
		MediaType: request.MediaType,
		Language:  request.Language,
		Metadata:  request.Metadata,
	}, identity.Sub)
	if err != nil {
		writeResolverError(res, h.logger, err, "")
		return
	}

	writeJSON(res, http.StatusCreated, models.RegistrationResponse{
		ID:      record.ID,
		URI:     h.baseURL + "/" + record.ID,
		Created: models.EpochSeconds(record.Created),
	})
}
