package store

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/cerbhq/cerberus/pkg/model"
)

// ErrApiKeyNotFound is returned when an API key doesn't exist
var ErrApiKeyNotFound = errors.New("api key not found")

// ApiKeyStore abstracts API key storage operations
type ApiKeyStore interface {
	// CreateApiKey persists a freshly minted key record. The record carries
	// the storage hash only; the plaintext never reaches this layer.
	CreateApiKey(key *model.ApiKey) error

	// ApiKeyByHash retrieves a key by its storage digest. Returns
	// (nil, nil) when no record matches: an unknown hash is an expected
	// outcome of validation, not an error.
	ApiKeyByHash(hash string) (*model.ApiKey, error)

	// ApiKeyByID retrieves a key by id. Returns ErrApiKeyNotFound if absent.
	ApiKeyByID(id uuid.UUID) (*model.ApiKey, error)

	// ApiKeysForTenant returns all keys owned by a tenant, newest first.
	ApiKeysForTenant(tenantID uuid.UUID) ([]model.ApiKey, error)

	// UpdateLastUsed records a successful validation. Best effort; callers
	// on the validation path must not block on it.
	UpdateLastUsed(id uuid.UUID, usedAt time.Time) error

	// RevokeApiKey flips is_active to false. Irreversible. Returns false if
	// no row matched.
	RevokeApiKey(id uuid.UUID) (bool, error)
}
