package linkid

import (
	"fmt"
	"time"
)

// ValidationError reports malformed local input. It is always raised before
// any network call, or when the server rejects the request shape with 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return "linkid: validation failed: " + e.Msg
}

// NotFoundError reports an identifier the resolver has never issued.
type NotFoundError struct {
	LinkID string
}

func (e *NotFoundError) Error() string {
	return "linkid: " + e.LinkID + " not found"
}

// Tombstone records the withdrawal fact carried by a 410 response.
type Tombstone struct {
	Reason string  `json:"reason,omitempty"`
	At     float64 `json:"at"`
}

// WithdrawnError reports an identifier that existed but has been withdrawn.
// The tombstone carries the stored reason and withdrawal time.
type WithdrawnError struct {
	LinkID    string
	Tombstone Tombstone
}

func (e *WithdrawnError) Error() string {
	if e.Tombstone.Reason != "" {
		return "linkid: " + e.LinkID + " withdrawn: " + e.Tombstone.Reason
	}
	return "linkid: " + e.LinkID + " withdrawn"
}

// AuthRequiredError reports a mutating call attempted without a configured
// API key. No network request is made.
type AuthRequiredError struct {
	Operation string
}

func (e *AuthRequiredError) Error() string {
	return "linkid: " + e.Operation + " requires an API key"
}

// UnauthorizedError reports a rejected credential (401).
type UnauthorizedError struct {
	LinkID string
}

func (e *UnauthorizedError) Error() string {
	return "linkid: credential rejected"
}

// ForbiddenError reports an ownership or scope mismatch (403).
type ForbiddenError struct {
	LinkID string
}

func (e *ForbiddenError) Error() string {
	return "linkid: forbidden"
}

// RateLimitedError reports a 429 response. RetryAfter is zero when the
// server sent no Retry-After header.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return "linkid: rate limited"
}

// NetworkError reports a transport failure that survived the retry budget.
// It wraps the last underlying failure.
type NetworkError struct {
	Attempts int
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("linkid: transport failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ResolverError reports any other failure response from the resolver.
type ResolverError struct {
	StatusCode int
	Msg        string
}

func (e *ResolverError) Error() string {
	return fmt.Sprintf("linkid: resolver returned %d: %s", e.StatusCode, e.Msg)
}
