package gorm

import (
	"gorm.io/gorm"

	"github.com/cerbhq/cerberus/pkg/server/store"
)

// Ensure HealthStore implements store.HealthStore
var _ store.HealthStore = (*HealthStore)(nil)

// HealthStore implements store.HealthStore using GORM
type HealthStore struct {
	db *gorm.DB
}

// NewHealthStore creates a new HealthStore
func NewHealthStore(db *gorm.DB) *HealthStore {
	return &HealthStore{db: db}
}

// Ping checks database reachability.
func (s *HealthStore) Ping() error {
	return s.db.Exec("SELECT 1").Error
}
