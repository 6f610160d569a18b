package endpoints

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/cerbhq/cerberus/pkg/audit"
	"github.com/cerbhq/cerberus/pkg/config"
	"github.com/cerbhq/cerberus/pkg/keys"
	"github.com/cerbhq/cerberus/pkg/model"
	"github.com/cerbhq/cerberus/pkg/server"
)

const testBootstrapToken = "test-bootstrap-token"

func init() {
	audit.SetEnabled(false)
}

type mockStores struct {
	tenants  *MockTenantStore
	projects *MockProjectStore
	animas   *MockAnimaStore
	apiKeys  *MockApiKeyStore
	health   *MockHealthStore
}

// newTestServer wires a full router over mock stores and registers every
// endpoint, validation pipeline included.
func newTestServer(t *testing.T) (*server.Server, *mockStores) {
	return newTestServerWithToken(t, testBootstrapToken)
}

func newTestServerWithToken(t *testing.T, bootstrapToken string) (*server.Server, *mockStores) {
	t.Helper()

	stores := &mockStores{
		tenants:  NewMockTenantStore(),
		projects: NewMockProjectStore(),
		animas:   NewMockAnimaStore(),
		apiKeys:  NewMockApiKeyStore(),
		health:   NewMockHealthStore(),
	}

	keyService := keys.NewService(stores.apiKeys, stores.tenants, stores.projects, zap.NewNop())
	t.Cleanup(keyService.Close)

	srv := server.NewServer(
		server.Stores{
			Tenants:  stores.tenants,
			Projects: stores.projects,
			Animas:   stores.animas,
			ApiKeys:  stores.apiKeys,
			Health:   stores.health,
		},
		keyService,
		nil,
		zap.NewNop(),
		config.Config{
			BindAddress:    "127.0.0.1",
			Port:           "0",
			BootstrapToken: bootstrapToken,
		},
	)

	RegisterAll(srv)

	return srv, stores
}

// authenticatedKey registers a valid credential with the mock key store and
// returns the plaintext to put in the Authorization header alongside its
// record.
func authenticatedKey(t *testing.T, stores *mockStores, tenantID uuid.UUID, projectID *uuid.UUID) (string, *model.ApiKey) {
	t.Helper()

	plaintext, err := model.GenerateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	key := &model.ApiKey{
		ID:        uuid.New(),
		Name:      "test",
		KeyHash:   model.HashKey(plaintext),
		TenantID:  tenantID,
		ProjectID: projectID,
		IsActive:  true,
	}

	stores.apiKeys.On("ApiKeyByHash", key.KeyHash).Return(key, nil)
	stores.apiKeys.On("UpdateLastUsed", key.ID, mock.AnythingOfType("time.Time")).Return(nil).Maybe()

	return plaintext, key
}
