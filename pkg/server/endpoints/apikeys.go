package endpoints

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/cerbhq/cerberus/pkg/audit"
	"github.com/cerbhq/cerberus/pkg/keys"
	"github.com/cerbhq/cerberus/pkg/model"
	"github.com/cerbhq/cerberus/pkg/server"
	"github.com/cerbhq/cerberus/pkg/server/store"
)

// CreateApiKeyRequest is the body of POST /api-keys. Exactly one of
// TenantID and TenantName must be set; TenantName creates the tenant
// alongside the key.
type CreateApiKeyRequest struct {
	Name       string     `json:"name"`
	TenantID   *uuid.UUID `json:"tenantId,omitempty"`
	TenantName string     `json:"tenantName,omitempty"`
	ProjectID  *uuid.UUID `json:"projectId,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
}

// CreateApiKeyResponse returns the sanitized record plus the one-time
// plaintext.
type CreateApiKeyResponse struct {
	ApiKey  *model.ApiKey `json:"apiKey"`
	Key     string        `json:"key"`
	Warning string        `json:"warning"`
}

// RegisterApiKeysEndpoints registers the key-management routes
func RegisterApiKeysEndpoints(s *server.Server) {
	router := s.Router
	tenants := s.Stores.Tenants

	router.HandleFunc("/api-keys", handleCreateApiKey(tenants, s.Keys)).Methods("POST")
	router.HandleFunc("/api-keys/tenant/{tenantId}", handleListApiKeys(s.Keys)).Methods("GET")
	router.HandleFunc("/api-keys/{id}", handleGetApiKey(s.Keys)).Methods("GET")
	router.HandleFunc("/api-keys/{id}", handleRevokeApiKey(s.Keys)).Methods("DELETE")
}

func handleCreateApiKey(tenants store.TenantStore, keyService *keys.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateApiKeyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Name == "" {
			respondWithError(w, http.StatusBadRequest, "Key name is required")
			return
		}

		var tenantID uuid.UUID
		switch {
		case req.TenantID != nil:
			tenantID = *req.TenantID
		case req.TenantName != "":
			tenant, err := tenants.CreateTenant(req.TenantName)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, "Failed to create tenant")
				return
			}
			tenantID = tenant.ID
		default:
			respondWithError(w, http.StatusBadRequest, "Either tenantId or tenantName is required")
			return
		}

		plaintext, record, err := keyService.Mint(req.Name, tenantID, req.ProjectID, req.ExpiresAt)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Failed to create api key: "+err.Error())
			return
		}

		event := audit.KeyMintEvent{
			ApiKeyID: record.ID.String(),
			KeyName:  record.Name,
			TenantID: tenantID.String(),
			ClientIP: r.RemoteAddr,
		}
		if record.ProjectID != nil {
			event.ProjectID = record.ProjectID.String()
		}
		audit.Log(event)

		respondWithJSON(w, http.StatusCreated, CreateApiKeyResponse{
			ApiKey:  record,
			Key:     plaintext,
			Warning: plaintextWarning,
		})
	}
}

func handleGetApiKey(keyService *keys.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Api key not found")
			return
		}

		record, err := keyService.ByID(id)
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Api key not found")
			return
		}

		respondWithJSON(w, http.StatusOK, record)
	}
}

func handleListApiKeys(keyService *keys.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := uuid.Parse(mux.Vars(r)["tenantId"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Tenant not found")
			return
		}

		records, err := keyService.ForTenant(tenantID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list api keys")
			return
		}

		respondWithJSON(w, http.StatusOK, records)
	}
}

func handleRevokeApiKey(keyService *keys.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Api key not found")
			return
		}

		record, err := keyService.ByID(id)
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Api key not found")
			return
		}

		revoked, err := keyService.Revoke(id)
		if err != nil || !revoked {
			respondWithError(w, http.StatusNotFound, "Api key not found")
			return
		}

		audit.Log(audit.KeyRevokeEvent{
			ApiKeyID: id.String(),
			ActorID:  "management-api",
			TenantID: record.TenantID.String(),
			ClientIP: r.RemoteAddr,
		})

		respondWithJSON(w, http.StatusOK, map[string]string{"message": "Api key revoked"})
	}
}
