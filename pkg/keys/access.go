package keys

import (
	"github.com/google/uuid"

	"github.com/cerbhq/cerberus/pkg/model"
)

// HasTenantAccess reports whether key may act on resources owned by
// tenantID. A key only ever sees its own tenant.
func HasTenantAccess(key *model.ApiKey, tenantID uuid.UUID) bool {
	if key == nil {
		return false
	}
	return key.TenantID == tenantID
}

// HasProjectAccess reports whether key may act on projectID within
// tenantID. Tenant-wide keys reach every project of their tenant;
// project-scoped keys reach only the project they were minted for.
func HasProjectAccess(key *model.ApiKey, tenantID, projectID uuid.UUID) bool {
	if !HasTenantAccess(key, tenantID) {
		return false
	}
	if key.IsTenantWide() {
		return true
	}
	return *key.ProjectID == projectID
}
