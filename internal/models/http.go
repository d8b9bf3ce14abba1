// Package models defines the request and response payloads exchanged over
// the resolver's HTTP surface.
package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// EpochSeconds renders a timestamp the way the wire format expects:
// fractional seconds since the Unix epoch.
func EpochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// RecordPayload is the public snapshot of a registry record returned by a
// metadata resolution.
type RecordPayload struct {
	ID        string         `json:"id"`
	Target    string         `json:"target"`
	MediaType string         `json:"mediaType,omitempty"`
	Language  string         `json:"language,omitempty"`
	Created   float64        `json:"created"`
	Updated   float64        `json:"updated"`
	Version   int64          `json:"version"`
	Metadata  map[string]any `json:"metadata"`
}

// RegistrationRequest is the POST /register body.
type RegistrationRequest struct {
	TargetURI string         `json:"targetUri"`
	MediaType string         `json:"mediaType,omitempty"`
	Language  string         `json:"language,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Validate checks the registration payload before it reaches the registry.
func (r RegistrationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TargetURI, validation.Required, is.URL),
	)
}

// RegistrationResponse is the 201 body for a successful registration.
type RegistrationResponse struct {
	ID      string  `json:"id"`
	URI     string  `json:"uri"`
	Created float64 `json:"created"`
}

// UpdateRequest is the PUT /resolve/{linkid} body. Pointer fields
// distinguish "absent" from "set to empty".
type UpdateRequest struct {
	TargetURI *string        `json:"targetUri,omitempty"`
	MediaType *string        `json:"mediaType,omitempty"`
	Language  *string        `json:"language,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// UpdateResponse is the 200 body for a successful update.
type UpdateResponse struct {
	ID      string  `json:"id"`
	Updated float64 `json:"updated"`
}

// WithdrawRequest is the optional DELETE /resolve/{linkid} body.
type WithdrawRequest struct {
	Reason string `json:"reason,omitempty"`
}

// WithdrawResponse is the 200 body for a successful withdrawal.
type WithdrawResponse struct {
	ID        string  `json:"id"`
	Withdrawn float64 `json:"withdrawn"`
	Reason    string  `json:"reason,omitempty"`
}

// TombstonePayload mirrors the stored tombstone on 410 responses.
type TombstonePayload struct {
	Reason string  `json:"reason,omitempty"`
	At     float64 `json:"at"`
}

// ErrorResponse is the structured error body. Tombstone is present only on
// 410 responses.
type ErrorResponse struct {
	Error     string            `json:"error"`
	LinkID    string            `json:"linkId,omitempty"`
	Tombstone *TombstonePayload `json:"tombstone,omitempty"`
}
