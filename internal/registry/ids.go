package registry

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// LinkID shape shared by the wire contract and the generator: 32-64 chars
// drawn from the unreserved URI alphabet.
var linkIDPattern = regexp.MustCompile(`^[A-Za-z0-9._~-]{32,64}$`)

// ValidLinkID reports whether id matches the identifier charset and length
// constraints.
func ValidLinkID(id string) bool {
	return linkIDPattern.MatchString(id)
}

// newLinkID produces a fresh 32-char lowercase hex identifier. Uniqueness
// against previously issued ids is enforced by the store on create.
func newLinkID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
