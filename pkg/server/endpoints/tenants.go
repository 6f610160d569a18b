package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/cerbhq/cerberus/pkg/keys"
	"github.com/cerbhq/cerberus/pkg/model"
	"github.com/cerbhq/cerberus/pkg/principal"
	"github.com/cerbhq/cerberus/pkg/server"
	"github.com/cerbhq/cerberus/pkg/server/store"
)

// CreateTenantRequest is the body of POST /tenants
type CreateTenantRequest struct {
	Name string `json:"name"`
}

// RegisterTenantsEndpoints registers the tenant routes
func RegisterTenantsEndpoints(s *server.Server) {
	router := s.Router
	tenants := s.Stores.Tenants

	router.HandleFunc("/tenants", handleListTenants(tenants)).Methods("GET")
	router.HandleFunc("/tenants", handleCreateTenant(tenants)).Methods("POST")
	router.HandleFunc("/tenants/{id}", handleGetTenant(tenants)).Methods("GET")
}

// handleListTenants returns only the caller's own tenant. The route reads
// like a collection but never discloses other tenants' existence.
func handleListTenants(tenants store.TenantStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Missing Authorization header")
			return
		}

		tenant, err := tenants.TenantByID(p.TenantID())
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Tenant not found")
			return
		}

		respondWithJSON(w, http.StatusOK, []*model.Tenant{tenant})
	}
}

func handleCreateTenant(tenants store.TenantStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Missing Authorization header")
			return
		}

		// Creation discloses the scope-kind rejection explicitly: a
		// project-scoped key learns it is forbidden, not that the route
		// doesn't exist.
		if !p.IsTenantWide() {
			respondWithError(w, http.StatusForbidden, "Project-scoped api keys cannot create tenants")
			return
		}

		var req CreateTenantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Name == "" {
			respondWithError(w, http.StatusBadRequest, "Tenant name is required")
			return
		}

		tenant, err := tenants.CreateTenant(req.Name)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to create tenant")
			return
		}

		respondWithJSON(w, http.StatusCreated, map[string]string{
			"id":   tenant.ID.String(),
			"name": tenant.Name,
		})
	}
}

// handleGetTenant distinguishes absent (404) from denied (403), unlike the
// project and anima lookups. Tenant ids are not treated as enumeration
// targets on this route.
func handleGetTenant(tenants store.TenantStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Missing Authorization header")
			return
		}

		id, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Tenant not found")
			return
		}

		tenant, err := tenants.TenantByID(id)
		if errors.Is(err, store.ErrTenantNotFound) {
			respondWithError(w, http.StatusNotFound, "Tenant not found")
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch tenant")
			return
		}

		if !keys.HasTenantAccess(p.Key, id) {
			respondWithError(w, http.StatusForbidden, "Access denied")
			return
		}

		respondWithJSON(w, http.StatusOK, tenant)
	}
}
