package gorm

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerbhq/cerberus/pkg/model"
	"github.com/cerbhq/cerberus/pkg/server/store"
)

var apiKeyColumns = []string{"id", "name", "key_hash", "tenant_id", "project_id", "created_at", "expires_at", "last_used_at", "is_active"}

func TestApiKeyByHash(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewApiKeyStore(db)

	keyID := uuid.New()
	tenantID := uuid.New()
	hash := model.HashKey("cerb_test")

	mock.ExpectQuery(`SELECT \* FROM "api_keys" WHERE key_hash = \$1`).
		WillReturnRows(sqlmock.NewRows(apiKeyColumns).
			AddRow(keyID.String(), "ci", hash, tenantID.String(), nil, time.Now(), nil, nil, true))

	key, err := s.ApiKeyByHash(hash)
	require.NoError(t, err)
	require.NotNil(t, key)
	assert.Equal(t, keyID, key.ID)
	assert.Equal(t, tenantID, key.TenantID)
	assert.True(t, key.IsActive)
	assert.True(t, key.IsTenantWide())
}

func TestApiKeyByHashMiss(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewApiKeyStore(db)

	mock.ExpectQuery(`SELECT \* FROM "api_keys" WHERE key_hash = \$1`).
		WillReturnRows(sqlmock.NewRows(apiKeyColumns))

	// An unknown digest is a validation outcome, not an error.
	key, err := s.ApiKeyByHash(model.HashKey("cerb_unknown"))
	require.NoError(t, err)
	assert.Nil(t, key)
}

func TestApiKeyByIDNotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewApiKeyStore(db)

	mock.ExpectQuery(`SELECT \* FROM "api_keys" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(apiKeyColumns))

	_, err := s.ApiKeyByID(uuid.New())
	assert.ErrorIs(t, err, store.ErrApiKeyNotFound)
}

func TestApiKeysForTenant(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewApiKeyStore(db)

	tenantID := uuid.New()
	projectID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "api_keys" WHERE tenant_id = \$1 ORDER BY created_at desc`).
		WillReturnRows(sqlmock.NewRows(apiKeyColumns).
			AddRow(uuid.New().String(), "newer", "h1", tenantID.String(), projectID.String(), time.Now(), nil, nil, true).
			AddRow(uuid.New().String(), "older", "h2", tenantID.String(), nil, time.Now(), nil, nil, false))

	keys, err := s.ApiKeysForTenant(tenantID)
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.Equal(t, "newer", keys[0].Name)
	assert.False(t, keys[0].IsTenantWide())
	assert.False(t, keys[1].IsActive)
}

func TestUpdateLastUsed(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewApiKeyStore(db)

	keyID := uuid.New()
	usedAt := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "api_keys" SET "last_used_at"=\$1 WHERE id = \$2`).
		WithArgs(usedAt, keyID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.UpdateLastUsed(keyID, usedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevokeApiKey(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewApiKeyStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "api_keys" SET "is_active"=\$1 WHERE id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	revoked, err := s.RevokeApiKey(uuid.New())
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRevokeApiKeyUnknownID(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewApiKeyStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "api_keys" SET "is_active"=\$1 WHERE id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	revoked, err := s.RevokeApiKey(uuid.New())
	require.NoError(t, err)
	assert.False(t, revoked)
}
