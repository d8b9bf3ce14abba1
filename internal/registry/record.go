// Package registry owns the LinkID record lifecycle: registration,
// versioned updates, and logical withdrawal via tombstones. Records are
// never physically deleted so the fact of a withdrawal stays resolvable.
package registry

import "time"

// Tombstone marks a record as withdrawn. Once set it is immutable and the
// record is terminal.
type Tombstone struct {
	Reason string    `json:"reason,omitempty"`
	At     time.Time `json:"at"`
}

// LinkRecord is a registered identifier and its current resolution target.
type LinkRecord struct {
	ID        string            `json:"id"`
	TargetURI string            `json:"targetUri"`
	MediaType string            `json:"mediaType,omitempty"`
	Language  string            `json:"language,omitempty"`
	Metadata  map[string]any    `json:"metadata"`
	Version   int64             `json:"version"`
	Created   time.Time         `json:"created"`
	Updated   time.Time         `json:"updated"`
	Tombstone *Tombstone        `json:"tombstone,omitempty"`
}

// Issuer returns the identity that owns the record. It is set from the
// registering identity at creation time and anchors all mutation checks.
func (r *LinkRecord) Issuer() string {
	if r.Metadata == nil {
		return ""
	}
	issuer, _ := r.Metadata["issuer"].(string)
	return issuer
}

// Withdrawn reports whether the record carries a tombstone.
func (r *LinkRecord) Withdrawn() bool {
	return r.Tombstone != nil
}

// clone returns a deep copy so callers never observe a torn record while
// a concurrent mutation is in flight.
func (r *LinkRecord) clone() *LinkRecord {
	c := *r
	c.Metadata = make(map[string]any, len(r.Metadata))
	for k, v := range r.Metadata {
		c.Metadata[k] = v
	}
	if r.Tombstone != nil {
		t := *r.Tombstone
		c.Tombstone = &t
	}
	return &c
}

// RegistrationPayload carries the caller-supplied fields for Create.
type RegistrationPayload struct {
	TargetURI string
	MediaType string
	Language  string
	Metadata  map[string]any
}

// UpdateFields carries a partial update. Nil pointers mean "leave as is";
// Metadata keys are merged into the existing map, never replacing it.
type UpdateFields struct {
	TargetURI *string
	MediaType *string
	Language  *string
	Metadata  map[string]any
}
