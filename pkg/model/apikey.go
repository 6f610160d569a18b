package model

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
)

// KeyPrefix tags every plaintext credential so keys are recognizable and
// greppable in logs without being guessable.
const KeyPrefix = "cerb_"

// ApiKey is a bearer credential scoped to a tenant, optionally narrowed to
// a single project. Only the SHA-256 digest of the plaintext is persisted;
// the plaintext exists exactly once, in the minting response.
type ApiKey struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name       string     `gorm:"column:name;not null" json:"name"`
	KeyHash    string     `gorm:"column:key_hash;not null;unique" json:"-"`
	TenantID   uuid.UUID  `gorm:"column:tenant_id;type:uuid;not null" json:"tenantId"`
	ProjectID  *uuid.UUID `gorm:"column:project_id;type:uuid" json:"projectId,omitempty"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	ExpiresAt  *time.Time `gorm:"column:expires_at" json:"expiresAt,omitempty"`
	LastUsedAt *time.Time `gorm:"column:last_used_at" json:"lastUsedAt,omitempty"`
	IsActive   bool       `gorm:"column:is_active;default:true" json:"isActive"`
}

func (ApiKey) TableName() string {
	return "api_keys"
}

// GenerateKey creates a new plaintext credential: the fixed prefix followed
// by 256 bits of cryptographically secure randomness, URL-safe and unpadded.
func GenerateKey() (string, error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}
	return KeyPrefix + base64.RawURLEncoding.EncodeToString(randomBytes), nil
}

// HashKey returns the storage digest of a plaintext credential: the SHA-256
// of the full plaintext, prefix included.
func HashKey(plaintext string) string {
	digest := sha256.Sum256([]byte(plaintext))
	return base64.StdEncoding.EncodeToString(digest[:])
}

// IsExpired reports whether the key's expiry timestamp has passed.
func (k *ApiKey) IsExpired() bool {
	if k.ExpiresAt == nil {
		return false
	}
	return time.Now().After(*k.ExpiresAt)
}

// IsTenantWide reports whether the key carries no project scope.
func (k *ApiKey) IsTenantWide() bool {
	return k.ProjectID == nil
}
