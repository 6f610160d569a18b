package endpoints

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/cerbhq/cerberus/pkg/audit"
	"github.com/cerbhq/cerberus/pkg/config"
	"github.com/cerbhq/cerberus/pkg/keys"
	"github.com/cerbhq/cerberus/pkg/server"
	"github.com/cerbhq/cerberus/pkg/server/store"
)

// BootstrapRequest is the body of POST /bootstrap
type BootstrapRequest struct {
	BootstrapToken string     `json:"bootstrapToken"`
	TenantName     string     `json:"tenantName"`
	ApiKeyName     string     `json:"apiKeyName,omitempty"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
}

// BootstrapResponse carries the one and only copy of the first credential.
type BootstrapResponse struct {
	TenantID   string `json:"tenantId"`
	TenantName string `json:"tenantName"`
	ApiKeyID   string `json:"apiKeyId"`
	ApiKey     string `json:"apiKey"`
	Warning    string `json:"warning"`
	Message    string `json:"message"`
}

const plaintextWarning = "Store this API key securely. It cannot be retrieved again."

// RegisterBootstrapEndpoint registers the trust-establishment endpoint
func RegisterBootstrapEndpoint(s *server.Server) {
	s.Router.HandleFunc("/bootstrap", handleBootstrap(s.Stores.Tenants, s.Keys, s.Config)).Methods("POST")
}

func handleBootstrap(tenants store.TenantStore, keyService *keys.Service, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Unset or placeholder token is a deployment error, never an
		// invitation to accept anything.
		if !cfg.BootstrapConfigured() {
			respondWithError(w, http.StatusInternalServerError, "Bootstrap token is not configured on this server")
			return
		}

		var req BootstrapRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.BootstrapToken != cfg.BootstrapToken {
			audit.Log(audit.BootstrapEvent{ClientIP: r.RemoteAddr})
			respondWithError(w, http.StatusUnauthorized, "Invalid bootstrap token")
			return
		}

		if req.TenantName == "" {
			respondWithError(w, http.StatusBadRequest, "Tenant name is required")
			return
		}

		tenant, err := tenants.CreateTenant(req.TenantName)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to create tenant")
			return
		}

		keyName := req.ApiKeyName
		if keyName == "" {
			keyName = "bootstrap"
		}

		plaintext, record, err := keyService.Mint(keyName, tenant.ID, nil, req.ExpiresAt)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to mint api key")
			return
		}

		audit.Log(audit.BootstrapEvent{
			TenantID:   tenant.ID.String(),
			TenantName: tenant.Name,
			ClientIP:   r.RemoteAddr,
			Success:    true,
		})
		audit.Log(audit.KeyMintEvent{
			ApiKeyID: record.ID.String(),
			KeyName:  record.Name,
			TenantID: tenant.ID.String(),
			ClientIP: r.RemoteAddr,
		})

		respondWithJSON(w, http.StatusOK, BootstrapResponse{
			TenantID:   tenant.ID.String(),
			TenantName: tenant.Name,
			ApiKeyID:   record.ID.String(),
			ApiKey:     plaintext,
			Warning:    plaintextWarning,
			Message:    "Tenant bootstrapped successfully",
		})
	}
}
