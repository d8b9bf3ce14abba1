package registry

import "context"

// Store is the registry capability consumed by the resolver and the HTTP
// mutation path. Implementations must serialize mutations of the same
// identifier so a version bump never overwrites a concurrent one.
type Store interface {
	// Create registers a new record with a fresh unique id and version 1.
	Create(ctx context.Context, payload RegistrationPayload, issuer string) (*LinkRecord, error)

	// GetActive returns the record unless it is unknown (NotFoundError) or
	// withdrawn (WithdrawnError). Resolution path.
	GetActive(ctx context.Context, id string) (*LinkRecord, error)

	// GetAny returns the record regardless of withdrawal state, failing only
	// with NotFoundError. Mutation paths use it so ownership can still be
	// verified against a withdrawn record.
	GetAny(ctx context.Context, id string) (*LinkRecord, error)

	// Update applies recognized fields and bumps version iff something
	// actually changed. Fails UnauthorizedError on issuer mismatch and
	// WithdrawnError when the record is terminal.
	Update(ctx context.Context, id string, issuer string, fields UpdateFields) error

	// Withdraw sets the tombstone. Idempotent: re-withdrawing an already
	// withdrawn record keeps the original tombstone and succeeds.
	Withdraw(ctx context.Context, id string, issuer string, reason string) error

	// Resolve returns the current target of an active record.
	Resolve(ctx context.Context, id string) (string, *LinkRecord, error)

	// HealthCheck reports whether the store is usable.
	HealthCheck(ctx context.Context) bool
}
