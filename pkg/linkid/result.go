package linkid

// Record is the public snapshot of a registered identifier as returned by a
// metadata resolution. Timestamps are fractional seconds since the Unix
// epoch, matching the wire format.
type Record struct {
	ID        string         `json:"id"`
	Target    string         `json:"target"`
	MediaType string         `json:"mediaType,omitempty"`
	Language  string         `json:"language,omitempty"`
	Created   float64        `json:"created"`
	Updated   float64        `json:"updated"`
	Version   int64          `json:"version"`
	Metadata  map[string]any `json:"metadata"`
}

// Resolution is the outcome of a resolve call: either a Redirect or a
// Metadata value.
type Resolution interface {
	isResolution()
	// FromCache reports whether the result was served from the local cache
	// without a network call.
	FromCache() bool
}

// Redirect is a resolution that points at the identifier's current target.
type Redirect struct {
	LinkID    string
	URI       string
	Permanent bool
	Resolver  string
	Quality   float64
	Cached    bool
}

func (Redirect) isResolution() {}

// FromCache reports whether the redirect was replayed from the local cache.
func (r Redirect) FromCache() bool { return r.Cached }

// Metadata is a resolution that carries the identifier's record snapshot.
type Metadata struct {
	LinkID   string
	Data     Record
	Resolver string
	ETag     string
	Cached   bool
}

func (Metadata) isResolution() {}

// FromCache reports whether the snapshot was replayed from the local cache.
func (m Metadata) FromCache() bool { return m.Cached }

// Registration is the outcome of a register call.
type Registration struct {
	ID      string  `json:"id"`
	URI     string  `json:"uri"`
	Created float64 `json:"created"`
}

// UpdateResult is the outcome of an update call.
type UpdateResult struct {
	ID      string  `json:"id"`
	Updated float64 `json:"updated"`
}

// WithdrawResult is the outcome of a withdraw call.
type WithdrawResult struct {
	ID        string  `json:"id"`
	Withdrawn float64 `json:"withdrawn"`
	Reason    string  `json:"reason,omitempty"`
}
