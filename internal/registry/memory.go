package registry

import (
	"context"
	"net/url"
	"reflect"
	"sync"
	"time"
)

// MemoryStore keeps all records in a mutex-guarded map. Mutations take the
// write lock, which serializes read-modify-write of the version counter per
// identifier; reads hand out deep copies.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*LinkRecord
}

// NewMemoryStore creates an empty in-memory registry.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*LinkRecord),
	}
}

// Create registers a new record. The generated id is re-checked against
// every id ever issued, including withdrawn ones.
func (m *MemoryStore) Create(ctx context.Context, payload RegistrationPayload, issuer string) (*LinkRecord, error) {
	if err := validatePayload(payload); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := newLinkID()
	for {
		if _, exists := m.records[id]; !exists {
			break
		}
		id = newLinkID()
	}

	metadata := make(map[string]any, len(payload.Metadata)+1)
	for k, v := range payload.Metadata {
		metadata[k] = v
	}
	if _, ok := metadata["issuer"]; !ok {
		metadata["issuer"] = issuer
	}

	now := time.Now()
	record := &LinkRecord{
		ID:        id,
		TargetURI: payload.TargetURI,
		MediaType: payload.MediaType,
		Language:  payload.Language,
		Metadata:  metadata,
		Version:   1,
		Created:   now,
		Updated:   now,
	}
	m.records[id] = record

	return record.clone(), nil
}

// GetActive returns the record for the resolution path.
func (m *MemoryStore) GetActive(ctx context.Context, id string) (*LinkRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[id]
	if !ok {
		return nil, &NotFoundError{LinkID: id}
	}
	if record.Withdrawn() {
		return nil, &WithdrawnError{LinkID: id, Tombstone: *record.Tombstone}
	}
	return record.clone(), nil
}

// GetAny returns the record regardless of withdrawal state.
func (m *MemoryStore) GetAny(ctx context.Context, id string) (*LinkRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[id]
	if !ok {
		return nil, &NotFoundError{LinkID: id}
	}
	return record.clone(), nil
}

// Update applies recognized fields under the write lock. Ownership is
// verified first; a withdrawn record rejects the mutation so a retired
// identifier can never be repointed. Version and Updated move iff at least
// one field actually changed.
func (m *MemoryStore) Update(ctx context.Context, id string, issuer string, fields UpdateFields) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[id]
	if !ok {
		return &NotFoundError{LinkID: id}
	}
	if owner := record.Issuer(); owner != "" && owner != issuer {
		return &UnauthorizedError{LinkID: id}
	}
	if record.Withdrawn() {
		return &WithdrawnError{LinkID: id, Tombstone: *record.Tombstone}
	}

	changed := false
	if fields.TargetURI != nil && *fields.TargetURI != record.TargetURI {
		if !absoluteURI(*fields.TargetURI) {
			return &ValidationError{Msg: "targetUri must be an absolute URI"}
		}
		record.TargetURI = *fields.TargetURI
		changed = true
	}
	if fields.MediaType != nil && *fields.MediaType != record.MediaType {
		record.MediaType = *fields.MediaType
		changed = true
	}
	if fields.Language != nil && *fields.Language != record.Language {
		record.Language = *fields.Language
		changed = true
	}
	for k, v := range fields.Metadata {
		if existing, ok := record.Metadata[k]; !ok || !reflect.DeepEqual(existing, v) {
			record.Metadata[k] = v
			changed = true
		}
	}

	if changed {
		record.Version++
		record.Updated = time.Now()
	}
	return nil
}

// Withdraw marks the record terminal. Version is untouched.
func (m *MemoryStore) Withdraw(ctx context.Context, id string, issuer string, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[id]
	if !ok {
		return &NotFoundError{LinkID: id}
	}
	if owner := record.Issuer(); owner != "" && owner != issuer {
		return &UnauthorizedError{LinkID: id}
	}
	if record.Withdrawn() {
		return nil
	}

	record.Tombstone = &Tombstone{Reason: reason, At: time.Now()}
	return nil
}

// Resolve is the single source of truth for the resolver's read path.
func (m *MemoryStore) Resolve(ctx context.Context, id string) (string, *LinkRecord, error) {
	record, err := m.GetActive(ctx, id)
	if err != nil {
		return "", nil, err
	}
	return record.TargetURI, record, nil
}

// HealthCheck always succeeds for the in-memory store.
func (m *MemoryStore) HealthCheck(ctx context.Context) bool {
	return true
}

func validatePayload(payload RegistrationPayload) error {
	if payload.TargetURI == "" {
		return &ValidationError{Msg: "targetUri is required"}
	}
	if !absoluteURI(payload.TargetURI) {
		return &ValidationError{Msg: "targetUri must be an absolute URI"}
	}
	return nil
}

func absoluteURI(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.IsAbs() && u.Host != ""
}
