package gorm

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cerbhq/cerberus/pkg/model"
	"github.com/cerbhq/cerberus/pkg/server/store"
)

// Ensure TenantStore implements store.TenantStore
var _ store.TenantStore = (*TenantStore)(nil)

// TenantStore implements store.TenantStore using GORM
type TenantStore struct {
	db *gorm.DB
}

// NewTenantStore creates a new TenantStore
func NewTenantStore(db *gorm.DB) *TenantStore {
	return &TenantStore{db: db}
}

// CreateTenant creates a tenant and returns the stored record.
func (s *TenantStore) CreateTenant(name string) (*model.Tenant, error) {
	tenant := model.Tenant{
		ID:   uuid.New(),
		Name: name,
	}
	if err := s.db.Create(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// TenantByID retrieves a tenant with its projects preloaded.
func (s *TenantStore) TenantByID(id uuid.UUID) (*model.Tenant, error) {
	var tenant model.Tenant
	tx := s.db.Preload("Projects").Where("id = ?", id).First(&tenant)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrTenantNotFound
		}
		return nil, tx.Error
	}
	return &tenant, nil
}

// ListTenants returns all tenants.
func (s *TenantStore) ListTenants() ([]model.Tenant, error) {
	var tenants []model.Tenant
	if err := s.db.Order("created_at").Find(&tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}
