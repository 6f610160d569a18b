package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cerbhq/cerberus/pkg/config"
	"github.com/cerbhq/cerberus/pkg/model"
)

func postBootstrap(srv http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/bootstrap", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestBootstrap_Success(t *testing.T) {
	srv, stores := newTestServer(t)

	tenantID := uuid.New()
	stores.tenants.On("CreateTenant", "Acme").
		Return(&model.Tenant{ID: tenantID, Name: "Acme"}, nil)
	stores.tenants.On("TenantByID", tenantID).
		Return(&model.Tenant{ID: tenantID, Name: "Acme"}, nil)
	stores.apiKeys.On("CreateApiKey", mock.AnythingOfType("*model.ApiKey")).Return(nil)

	rec := postBootstrap(srv.Router, `{"bootstrapToken":"`+testBootstrapToken+`","tenantName":"Acme"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp BootstrapResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, tenantID.String(), resp.TenantID)
	assert.Equal(t, "Acme", resp.TenantName)
	assert.True(t, strings.HasPrefix(resp.ApiKey, model.KeyPrefix))
	assert.NotEmpty(t, resp.Warning)
}

func TestBootstrap_WrongTokenLeavesStoreUnchanged(t *testing.T) {
	srv, stores := newTestServer(t)

	rec := postBootstrap(srv.Router, `{"bootstrapToken":"wrong","tenantName":"Acme"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	stores.tenants.AssertNotCalled(t, "CreateTenant", mock.Anything)
	stores.apiKeys.AssertNotCalled(t, "CreateApiKey", mock.Anything)
}

func TestBootstrap_EmptyTenantName(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := postBootstrap(srv.Router, `{"bootstrapToken":"`+testBootstrapToken+`","tenantName":""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBootstrap_FailsClosedWithoutConfiguredToken(t *testing.T) {
	for _, token := range []string{"", config.BootstrapPlaceholder} {
		srv, stores := newTestServerWithToken(t, token)

		rec := postBootstrap(srv.Router, `{"bootstrapToken":"`+token+`","tenantName":"Acme"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		stores.tenants.AssertNotCalled(t, "CreateTenant", mock.Anything)
	}
}
