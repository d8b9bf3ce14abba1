// Package resolver decides the shape of a resolution response: a temporary
// redirect to the record's current target, or a metadata snapshot with a
// weak validator. Registry lifecycle errors pass through unchanged.
package resolver

import (
	"time"

	"github.com/linkgenetic/linkid-resolver/internal/models"
)

// Resolution is the tagged result union. Exactly two shapes exist:
// Redirect and Metadata.
type Resolution interface {
	isResolution()
}

// Redirect instructs the caller to navigate to the target URI. Identifiers
// may be repointed at any time, so Permanent is always false.
type Redirect struct {
	URI       string
	Permanent bool
	CacheTTL  time.Duration
	// Quality is reserved for future multi-candidate negotiation.
	Quality float64
}

func (Redirect) isResolution() {}

// Metadata carries a snapshot of the record's public fields instead of a
// redirect. The shorter TTL reflects that structured consumers are more
// sensitive to staleness than browsers following a redirect.
type Metadata struct {
	Data     models.RecordPayload
	CacheTTL time.Duration
	ETag     string
}

func (Metadata) isResolution() {}

// Request carries the caller's resolution preferences. Content negotiation
// fields are accepted but do not alter which record is returned; resolution
// is single-target.
type Request struct {
	Format         string
	Language       string
	Version        int
	Timestamp      string
	AcceptHeader   string
	AcceptLanguage string
	PreferRedirect bool
}
