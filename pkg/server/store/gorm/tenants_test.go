package gorm

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerbhq/cerberus/pkg/server/store"
)

func TestTenantByID(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewTenantStore(db)

	tenantID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow(tenantID.String(), "Acme", now, now))
	// Preloaded projects
	mock.ExpectQuery(`SELECT \* FROM "projects" WHERE "projects"."tenant_id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name", "description", "environment", "created_at"}))

	tenant, err := s.TenantByID(tenantID)
	require.NoError(t, err)
	assert.Equal(t, tenantID, tenant.ID)
	assert.Equal(t, "Acme", tenant.Name)
	assert.Empty(t, tenant.Projects)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTenantByIDNotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewTenantStore(db)

	mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}))

	_, err := s.TenantByID(uuid.New())
	assert.ErrorIs(t, err, store.ErrTenantNotFound)
}

func TestListTenants(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewTenantStore(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "tenants" ORDER BY created_at`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow(uuid.New().String(), "Acme", now, now).
			AddRow(uuid.New().String(), "Globex", now, now))

	tenants, err := s.ListTenants()
	require.NoError(t, err)
	require.Len(t, tenants, 2)
	assert.Equal(t, "Acme", tenants[0].Name)
	assert.Equal(t, "Globex", tenants[1].Name)
}
