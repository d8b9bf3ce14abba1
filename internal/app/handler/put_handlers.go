package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/linkgenetic/linkid-resolver/internal/middleware"
	"github.com/linkgenetic/linkid-resolver/internal/models"
	"github.com/linkgenetic/linkid-resolver/internal/registry"
	"github.com/linkgenetic/linkid-resolver/internal/resolver"
)

// PutHandler serves PUT /resolve/{linkid}.
type PutHandler struct {
	service resolver.ServiceIface
	logger  *zap.Logger
}

// NewPut creates a PutHandler.
func NewPut(s resolver.ServiceIface, l *zap.Logger) *PutHandler {
	return &PutHandler{
		service: s,
		logger:  l,
	}
}

// Update handles PUT /resolve/{linkid}: a partial field update by the
// owning identity.
func (h *PutHandler) Update(res http.ResponseWriter, req *http.Request) {
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

	identity, ok := middleware.IdentityFromContext(req.Context())
	if !ok {
		writeJSON(res, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var request models.UpdateRequest
	if err := decodeJSONBody(res, req, &request); err != nil {
		var mr *malformedRequest
		if errors.As(err, &mr) {
			writeJSON(res, mr.status, models.ErrorResponse{Error: mr.msg})
		} else {
			h.logger.Error("failed to decode update body", zap.Error(err))
			writeJSON(res, http.StatusInternalServerError, models.ErrorResponse{Error: "Update failed"})
		}
		return
	}

	err := h.service.Update(ctx, linkID, identity.Sub, registry.UpdateFields{
		TargetURI: request.TargetURI,
		MediaType: request.MediaType,
		Language:  request.Language,
		Metadata:  request.Metadata,
	})
	if err != nil {
		writeResolverError(res, h.logger, err, linkID)
		return
	}

	writeJSON(res, http.StatusOK, models.UpdateResponse{
		ID:      linkID,
		Updated: models.EpochSeconds(time.Now()),
	})
}
