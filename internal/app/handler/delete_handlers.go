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

// DeleteHandler serves DELETE /resolve/{linkid}.
type DeleteHandler struct {
	service resolver.ServiceIface
	logger  *zap.Logger
}

// NewDelete creates a DeleteHandler.
func NewDelete(s resolver.ServiceIface, l *zap.Logger) *DeleteHandler {
	return &DeleteHandler{
		service: s,
		logger:  l,
	}
}

// Withdraw handles DELETE /resolve/{linkid}: sets the tombstone. The body
// is optional and may carry a withdrawal reason.
func (h *DeleteHandler) Withdraw(res http.ResponseWriter, req *http.Request) {
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

	var request models.WithdrawRequest
	if req.ContentLength != 0 {
		if err := decodeJSONBody(res, req, &request); err != nil {
			var mr *malformedRequest
			if errors.As(err, &mr) {
				writeJSON(res, mr.status, models.ErrorResponse{Error: mr.msg})
			} else {
				h.logger.Error("failed to decode withdrawal body", zap.Error(err))
				writeJSON(res, http.StatusInternalServerError, models.ErrorResponse{Error: "Withdrawal failed"})
			}
			return
		}
	}

	if err := h.service.Withdraw(ctx, linkID, identity.Sub, request.Reason); err != nil {
		writeResolverError(res, h.logger, err, linkID)
		return
	}

	writeJSON(res, http.StatusOK, models.WithdrawResponse{
		ID:        linkID,
		Withdrawn: models.EpochSeconds(time.Now()),
		Reason:    request.Reason,
	})
}
