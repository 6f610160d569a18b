package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cerbhq/cerberus/pkg/model"
	"github.com/cerbhq/cerberus/pkg/server/store"
)

// Ensure ApiKeyStore implements store.ApiKeyStore
var _ store.ApiKeyStore = (*ApiKeyStore)(nil)

// ApiKeyStore implements store.ApiKeyStore using GORM
type ApiKeyStore struct {
	db *gorm.DB
}

// NewApiKeyStore creates a new ApiKeyStore
func NewApiKeyStore(db *gorm.DB) *ApiKeyStore {
	return &ApiKeyStore{db: db}
}

// CreateApiKey persists a freshly minted key record.
func (s *ApiKeyStore) CreateApiKey(key *model.ApiKey) error {
	return s.db.Create(key).Error
}

// ApiKeyByHash retrieves a key by its storage digest. An unknown hash is an
// expected validation outcome, so it maps to (nil, nil) rather than an error.
func (s *ApiKeyStore) ApiKeyByHash(hash string) (*model.ApiKey, error) {
	var key model.ApiKey
	tx := s.db.Where("key_hash = ?", hash).First(&key)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &key, nil
}

// ApiKeyByID retrieves a key by id.
func (s *ApiKeyStore) ApiKeyByID(id uuid.UUID) (*model.ApiKey, error) {
	var key model.ApiKey
	tx := s.db.Where("id = ?", id).First(&key)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrApiKeyNotFound
		}
		return nil, tx.Error
	}
	return &key, nil
}

// ApiKeysForTenant returns all keys owned by a tenant, newest first.
func (s *ApiKeyStore) ApiKeysForTenant(tenantID uuid.UUID) ([]model.ApiKey, error) {
	var keys []model.ApiKey
	if err := s.db.Where("tenant_id = ?", tenantID).Order("created_at desc").Find(&keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

// UpdateLastUsed records a successful validation.
func (s *ApiKeyStore) UpdateLastUsed(id uuid.UUID, usedAt time.Time) error {
	return s.db.Model(&model.ApiKey{}).Where("id = ?", id).Update("last_used_at", usedAt).Error
}

// RevokeApiKey flips is_active to false. There is no path back to active.
func (s *ApiKeyStore) RevokeApiKey(id uuid.UUID) (bool, error) {
	tx := s.db.Model(&model.ApiKey{}).Where("id = ?", id).Update("is_active", false)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
