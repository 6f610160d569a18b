package store

import (
	"errors"

	"github.com/google/uuid"

	"github.com/cerbhq/cerberus/pkg/model"
)

// ErrTenantNotFound is returned when a tenant doesn't exist
var ErrTenantNotFound = errors.New("tenant not found")

// TenantStore abstracts tenant storage operations
type TenantStore interface {
	// CreateTenant creates a tenant and returns the stored record.
	CreateTenant(name string) (*model.Tenant, error)

	// TenantByID retrieves a tenant with its projects preloaded.
	// Returns ErrTenantNotFound if the tenant doesn't exist.
	TenantByID(id uuid.UUID) (*model.Tenant, error)

	// ListTenants returns all tenants.
	ListTenants() ([]model.Tenant, error)
}
