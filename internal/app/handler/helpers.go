// Package handler contains the HTTP handlers of the resolver: resolution,
// registration, update, withdrawal, plus the health and discovery endpoints.
// Lifecycle errors from the registry map one-to-one onto HTTP statuses and
// structured error bodies; nothing is downgraded to a generic failure
// except truly unexpected faults.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/linkgenetic/linkid-resolver/internal/models"
	"github.com/linkgenetic/linkid-resolver/internal/registry"
)

// malformedRequest represents an error with a malformed HTTP request.
type malformedRequest struct {
	status int
	msg    string
}

func (mr *malformedRequest) Error() string {
	return mr.msg
}

// decodeJSONBody decodes a JSON request body into dst with strict settings:
// unknown fields, trailing data, and oversized bodies are all rejected.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	ct := r.Header.Get("Content-Type")
	if ct != "" {
		mediaType := strings.ToLower(strings.TrimSpace(strings.Split(ct, ";")[0]))
		if mediaType != "application/json" {
			msg := "Content-Type header is not application/json"
			return &malformedRequest{status: http.StatusUnsupportedMediaType, msg: msg}
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1048576)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(&dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError

		switch {
		case errors.As(err, &syntaxError):
			msg := fmt.Sprintf("Request body contains badly-formed JSON (at position %d)", syntaxError.Offset)
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case errors.Is(err, io.ErrUnexpectedEOF):
			msg := "Request body contains badly-formed JSON"
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case errors.As(err, &unmarshalTypeError):
			msg := fmt.Sprintf("Request body contains an invalid value for the %q field (at position %d)", unmarshalTypeError.Field, unmarshalTypeError.Offset)
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			msg := fmt.Sprintf("Request body contains unknown field %s", fieldName)
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case errors.Is(err, io.EOF):
			msg := "Request body must not be empty"
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case err.Error() == "http: request body too large":
			msg := "Request body must not be larger than 1MB"
			return &malformedRequest{status: http.StatusRequestEntityTooLarge, msg: msg}

		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		msg := "Request body must only contain a single JSON object"
		return &malformedRequest{status: http.StatusBadRequest, msg: msg}
	}

	return nil
}

// writeBody serializes v into an already-prepared response.
func writeBody(w http.ResponseWriter, v any) error {
	return json.NewEncoder(w).Encode(v)
}

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeResolverError maps registry lifecycle errors onto the wire contract.
func writeResolverError(w http.ResponseWriter, logger *zap.Logger, err error, linkID string) {
	var nf *registry.NotFoundError
	var wd *registry.WithdrawnError
	var ua *registry.UnauthorizedError
	var ve *registry.ValidationError

	switch {
	case errors.As(err, &nf):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{
			Error:  "LinkID not found",
			LinkID: linkID,
		})
	case errors.As(err, &wd):
		writeJSON(w, http.StatusGone, models.ErrorResponse{
			Error:  "LinkID withdrawn",
			LinkID: linkID,
			Tombstone: &models.TombstonePayload{
				Reason: wd.Tombstone.Reason,
				At:     models.EpochSeconds(wd.Tombstone.At),
			},
		})
	case errors.As(err, &ua):
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{
			Error:  "Not authorized",
			LinkID: linkID,
		})
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
			Error:  ve.Msg,
			LinkID: linkID,
		})
	default:
		logger.Error("unexpected resolver error", zap.String("linkid", linkID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Error: "Internal resolver error",
		})
	}
}
