package registry

import "fmt"

// NotFoundError reports that an identifier was never registered.
type NotFoundError struct {
	LinkID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("linkid %q not found", e.LinkID)
}

// WithdrawnError reports that an identifier exists but has been withdrawn.
// It carries the tombstone so callers can surface the reason and time.
type WithdrawnError struct {
	LinkID    string
	Tombstone Tombstone
}

func (e *WithdrawnError) Error() string {
	return fmt.Sprintf("linkid %q withdrawn", e.LinkID)
}

// UnauthorizedError reports an ownership mismatch on a mutation.
type UnauthorizedError struct {
	LinkID string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("identity does not own linkid %q", e.LinkID)
}

// ValidationError reports malformed input rejected before any state change.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}
