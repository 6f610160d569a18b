package keys

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cerbhq/cerberus/pkg/model"
	"github.com/cerbhq/cerberus/pkg/server/store"
)

// touchQueueSize bounds the backlog of pending last-used updates. When the
// queue is full new touches are dropped: validation latency wins over audit
// precision.
const touchQueueSize = 256

type touch struct {
	id     uuid.UUID
	usedAt time.Time
}

// Service is the key minting and hashing engine. It owns a background
// worker that records last-used timestamps off the validation path.
type Service struct {
	apiKeys  store.ApiKeyStore
	tenants  store.TenantStore
	projects store.ProjectStore
	log      *zap.Logger

	touches chan touch
	done    chan struct{}
}

// NewService creates a Service and starts its last-used worker. Call Close
// to drain and stop the worker.
func NewService(apiKeys store.ApiKeyStore, tenants store.TenantStore, projects store.ProjectStore, log *zap.Logger) *Service {
	s := &Service{
		apiKeys:  apiKeys,
		tenants:  tenants,
		projects: projects,
		log:      log,
		touches:  make(chan touch, touchQueueSize),
		done:     make(chan struct{}),
	}
	go s.drainTouches()
	return s
}

// Close stops the last-used worker after draining queued updates.
func (s *Service) Close() {
	close(s.touches)
	<-s.done
}

func (s *Service) drainTouches() {
	defer close(s.done)
	for t := range s.touches {
		if err := s.apiKeys.UpdateLastUsed(t.id, t.usedAt); err != nil {
			// Best effort only. A lost last-used timestamp never surfaces
			// to the caller that validated the key.
			s.log.Debug("failed to record api key use",
				zap.String("apiKeyId", t.id.String()),
				zap.Error(err),
			)
		}
	}
}

// Mint creates a new API key owned by tenantID, optionally scoped to
// projectID. It returns the plaintext credential exactly once alongside the
// stored record; the plaintext is not recoverable afterwards.
//
// The tenant must exist and, when given, the project must belong to it;
// otherwise the store's not-found sentinel is returned.
func (s *Service) Mint(name string, tenantID uuid.UUID, projectID *uuid.UUID, expiresAt *time.Time) (string, *model.ApiKey, error) {
	if _, err := s.tenants.TenantByID(tenantID); err != nil {
		return "", nil, err
	}

	if projectID != nil {
		if _, err := s.projects.ProjectByID(tenantID, *projectID); err != nil {
			return "", nil, err
		}
	}

	plaintext, err := model.GenerateKey()
	if err != nil {
		return "", nil, err
	}

	key := &model.ApiKey{
		ID:        uuid.New(),
		Name:      name,
		KeyHash:   model.HashKey(plaintext),
		TenantID:  tenantID,
		ProjectID: projectID,
		ExpiresAt: expiresAt,
		IsActive:  true,
	}

	if err := s.apiKeys.CreateApiKey(key); err != nil {
		return "", nil, err
	}

	return plaintext, key, nil
}

// Validate resolves a plaintext credential to its stored record. It returns
// nil for anything that must not authenticate: empty input, missing prefix,
// unknown hash, revoked key, expired key. Inputs without the key prefix are
// rejected before any store lookup.
//
// On success the last-used timestamp is dispatched to the background worker
// and never awaited.
func (s *Service) Validate(plaintext string) *model.ApiKey {
	if plaintext == "" || len(plaintext) < len(model.KeyPrefix) || plaintext[:len(model.KeyPrefix)] != model.KeyPrefix {
		return nil
	}

	key, err := s.apiKeys.ApiKeyByHash(model.HashKey(plaintext))
	if err != nil {
		s.log.Warn("api key lookup failed", zap.Error(err))
		return nil
	}
	if key == nil {
		return nil
	}

	if !key.IsActive {
		return nil
	}
	if key.IsExpired() {
		return nil
	}

	select {
	case s.touches <- touch{id: key.ID, usedAt: time.Now().UTC()}:
	default:
		// Queue full; drop rather than stall validation.
	}

	return key
}

// Revoke deactivates a key. Returns false if the key doesn't exist.
func (s *Service) Revoke(id uuid.UUID) (bool, error) {
	return s.apiKeys.RevokeApiKey(id)
}

// ByID returns a key record for management reads.
func (s *Service) ByID(id uuid.UUID) (*model.ApiKey, error) {
	return s.apiKeys.ApiKeyByID(id)
}

// ForTenant returns all key records owned by a tenant.
func (s *Service) ForTenant(tenantID uuid.UUID) ([]model.ApiKey, error) {
	return s.apiKeys.ApiKeysForTenant(tenantID)
}
