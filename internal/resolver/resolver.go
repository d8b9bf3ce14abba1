package resolver

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/linkgenetic/linkid-resolver/internal/cache"
	"github.com/linkgenetic/linkid-resolver/internal/models"
	"github.com/linkgenetic/linkid-resolver/internal/registry"
)

// Response TTLs. Redirects are consumed by browsers and can tolerate more
// staleness than structured metadata consumers.
const (
	RedirectTTL = 300 * time.Second
	MetadataTTL = 120 * time.Second
)

// ServiceIface is the resolver capability consumed by the HTTP handlers.
type ServiceIface interface {
	Resolve(ctx context.Context, id string, req Request) (Resolution, error)
	Register(ctx context.Context, payload registry.RegistrationPayload, issuer string) (*registry.LinkRecord, error)
	Update(ctx context.Context, id string, issuer string, fields registry.UpdateFields) error
	Withdraw(ctx context.Context, id string, issuer string, reason string) error
	HealthCheck(ctx context.Context) map[string]bool
}

// Service shapes registry records into resolution responses and keeps a
// short-lived result cache in front of the read path.
type Service struct {
	registry registry.Store
	cache    *cache.Manager[Resolution]
	logger   *zap.Logger
}

// New creates a resolver service backed by the given registry store.
func New(store registry.Store, resultCache *cache.Manager[Resolution], logger *zap.Logger) *Service {
	return &Service{
		registry: store,
		cache:    resultCache,
		logger:   logger,
	}
}

// Resolve produces a Redirect when the request prefers one (the default),
// otherwise a Metadata snapshot with a weak validator. Registry errors
// (not found, withdrawn) propagate unchanged.
func (s *Service) Resolve(ctx context.Context, id string, req Request) (Resolution, error) {
	key := resultKey(id, req.PreferRedirect)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	targetURI, record, err := s.registry.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	var result Resolution
	if req.PreferRedirect {
		result = Redirect{
			URI:       targetURI,
			Permanent: false,
			CacheTTL:  RedirectTTL,
			Quality:   1.0,
		}
	} else {
		result = Metadata{
			Data:     snapshot(record),
			CacheTTL: MetadataTTL,
			ETag:     weakETag(record),
		}
	}

	s.cache.Set(key, result, cacheTTL(result))
	return result, nil
}

// Register creates a new record owned by issuer.
func (s *Service) Register(ctx context.Context, payload registry.RegistrationPayload, issuer string) (*registry.LinkRecord, error) {
	record, err := s.registry.Create(ctx, payload, issuer)
	if err != nil {
		return nil, err
	}

	s.logger.Info("registered linkid",
		zap.String("linkid", record.ID),
		zap.String("issuer", issuer),
	)
	return record, nil
}

// Update applies a partial update and drops the identifier's cached
// resolutions so the next read observes the new state.
func (s *Service) Update(ctx context.Context, id string, issuer string, fields registry.UpdateFields) error {
	if err := s.registry.Update(ctx, id, issuer, fields); err != nil {
		return err
	}

	s.invalidate(id)
	s.logger.Info("updated linkid", zap.String("linkid", id), zap.String("issuer", issuer))
	return nil
}

// Withdraw tombstones the record and drops its cached resolutions.
func (s *Service) Withdraw(ctx context.Context, id string, issuer string, reason string) error {
	if err := s.registry.Withdraw(ctx, id, issuer, reason); err != nil {
		return err
	}

	s.invalidate(id)
	s.logger.Info("withdrew linkid", zap.String("linkid", id), zap.String("issuer", issuer))
	return nil
}

// HealthCheck reports per-dependency health for the /health endpoint.
func (s *Service) HealthCheck(ctx context.Context) map[string]bool {
	return map[string]bool{
		"registry": s.registry.HealthCheck(ctx),
		"cache":    true,
	}
}

func (s *Service) invalidate(id string) {
	s.cache.Delete(resultKey(id, true), resultKey(id, false))
}

func resultKey(id string, redirect bool) string {
	if redirect {
		return "resolve|" + id + "|redirect"
	}
	return "resolve|" + id + "|metadata"
}

func cacheTTL(r Resolution) time.Duration {
	switch v := r.(type) {
	case Redirect:
		return v.CacheTTL
	case Metadata:
		return v.CacheTTL
	}
	return 0
}

func snapshot(record *registry.LinkRecord) models.RecordPayload {
	return models.RecordPayload{
		ID:        record.ID,
		Target:    record.TargetURI,
		MediaType: record.MediaType,
		Language:  record.Language,
		Created:   models.EpochSeconds(record.Created),
		Updated:   models.EpochSeconds(record.Updated),
		Version:   record.Version,
		Metadata:  record.Metadata,
	}
}

func weakETag(record *registry.LinkRecord) string {
	return fmt.Sprintf(`W/"%d-%d"`, record.Version, record.Updated.Unix())
}
