package keys

import (
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/cerbhq/cerberus/pkg/model"
)

// MockApiKeyStore implements store.ApiKeyStore for testing using testify/mock
type MockApiKeyStore struct {
	mock.Mock
}

func NewMockApiKeyStore() *MockApiKeyStore {
	return &MockApiKeyStore{}
}

func (m *MockApiKeyStore) CreateApiKey(key *model.ApiKey) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockApiKeyStore) ApiKeyByHash(hash string) (*model.ApiKey, error) {
	args := m.Called(hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ApiKey), args.Error(1)
}

func (m *MockApiKeyStore) ApiKeyByID(id uuid.UUID) (*model.ApiKey, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ApiKey), args.Error(1)
}

func (m *MockApiKeyStore) ApiKeysForTenant(tenantID uuid.UUID) ([]model.ApiKey, error) {
	args := m.Called(tenantID)
	return args.Get(0).([]model.ApiKey), args.Error(1)
}

func (m *MockApiKeyStore) UpdateLastUsed(id uuid.UUID, usedAt time.Time) error {
	args := m.Called(id, usedAt)
	return args.Error(0)
}

func (m *MockApiKeyStore) RevokeApiKey(id uuid.UUID) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

// MockTenantStore implements store.TenantStore for testing using testify/mock
type MockTenantStore struct {
	mock.Mock
}

func NewMockTenantStore() *MockTenantStore {
	return &MockTenantStore{}
}

func (m *MockTenantStore) CreateTenant(name string) (*model.Tenant, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tenant), args.Error(1)
}

func (m *MockTenantStore) TenantByID(id uuid.UUID) (*model.Tenant, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tenant), args.Error(1)
}

func (m *MockTenantStore) ListTenants() ([]model.Tenant, error) {
	args := m.Called()
	return args.Get(0).([]model.Tenant), args.Error(1)
}

// MockProjectStore implements store.ProjectStore for testing using testify/mock
type MockProjectStore struct {
	mock.Mock
}

func NewMockProjectStore() *MockProjectStore {
	return &MockProjectStore{}
}

func (m *MockProjectStore) CreateProject(tenantID uuid.UUID, name, description string, environment model.Environment) (*model.Project, error) {
	args := m.Called(tenantID, name, description, environment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectStore) ProjectByID(tenantID, projectID uuid.UUID) (*model.Project, error) {
	args := m.Called(tenantID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectStore) ProjectsForTenant(tenantID uuid.UUID) ([]model.Project, error) {
	args := m.Called(tenantID)
	return args.Get(0).([]model.Project), args.Error(1)
}
