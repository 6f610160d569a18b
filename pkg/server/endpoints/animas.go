package endpoints

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/cerbhq/cerberus/pkg/audit"
	"github.com/cerbhq/cerberus/pkg/keys"
	"github.com/cerbhq/cerberus/pkg/principal"
	"github.com/cerbhq/cerberus/pkg/server"
	"github.com/cerbhq/cerberus/pkg/server/store"
)

// CreateAnimaRequest is the body of POST .../animas
type CreateAnimaRequest struct {
	Definition  string `json:"definition"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// UpdateAnimaRequest is the body of PUT .../animas/{animaId}
type UpdateAnimaRequest struct {
	Value       string  `json:"value"`
	Description *string `json:"description,omitempty"`
}

// RegisterAnimasEndpoints registers the secret routes
func RegisterAnimasEndpoints(s *server.Server) {
	router := s.Router
	animas := s.Stores.Animas
	projects := s.Stores.Projects

	base := "/tenants/{tenantId}/projects/{projectId}/animas"
	router.HandleFunc(base, handleListAnimas(animas, projects)).Methods("GET")
	router.HandleFunc(base, handleCreateAnima(animas, projects)).Methods("POST")
	// Definitions may contain slashes (e.g. db/password), so the reader
	// route swallows the rest of the path.
	router.HandleFunc(base+"/{definition:.+}", handleGetAnima(animas, projects)).Methods("GET")
	router.HandleFunc(base+"/{animaId}", handleUpdateAnima(animas, projects)).Methods("PUT")
	router.HandleFunc(base+"/{animaId}", handleDeleteAnima(animas, projects)).Methods("DELETE")
}

// resolveProject applies the disclosure-safe guard shared by every anima
// route: the path must parse, the key must reach the project, and the
// project must exist under the tenant. Any failure reads as not found.
func resolveProject(w http.ResponseWriter, r *http.Request, projects store.ProjectStore) (*principal.Principal, uuid.UUID, bool) {
	p, ok := principal.Get(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Missing Authorization header")
		return nil, uuid.Nil, false
	}

	vars := mux.Vars(r)
	tenantID, terr := uuid.Parse(vars["tenantId"])
	projectID, perr := uuid.Parse(vars["projectId"])

	if terr != nil || perr != nil || !keys.HasProjectAccess(p.Key, tenantID, projectID) {
		respondWithError(w, http.StatusNotFound, "Project not found")
		return nil, uuid.Nil, false
	}

	if _, err := projects.ProjectByID(tenantID, projectID); err != nil {
		respondWithError(w, http.StatusNotFound, "Project not found")
		return nil, uuid.Nil, false
	}

	return p, projectID, true
}

func handleListAnimas(animas store.AnimaStore, projects store.ProjectStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, projectID, ok := resolveProject(w, r, projects)
		if !ok {
			return
		}

		records, err := animas.AnimasForProject(projectID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list animas")
			return
		}

		respondWithJSON(w, http.StatusOK, records)
	}
}

func handleCreateAnima(animas store.AnimaStore, projects store.ProjectStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, projectID, ok := resolveProject(w, r, projects)
		if !ok {
			return
		}

		var req CreateAnimaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Definition == "" {
			respondWithError(w, http.StatusBadRequest, "Definition is required")
			return
		}

		anima, err := animas.CreateAnima(projectID, req.Definition, req.Value, req.Description)
		if err != nil {
			// Duplicate definitions surface here as the storage layer's
			// constraint violation.
			respondWithError(w, http.StatusInternalServerError, "Failed to create anima")
			return
		}

		audit.Log(audit.SecretAccessEvent{
			ActorID:    p.Key.ID.String(),
			TenantID:   p.TenantID().String(),
			ProjectID:  projectID.String(),
			Definition: anima.Definition,
			Operation:  "create",
			ClientIP:   r.RemoteAddr,
		})

		respondWithJSON(w, http.StatusCreated, map[string]string{
			"id":          anima.ID.String(),
			"definition":  anima.Definition,
			"description": anima.Description,
		})
	}
}

func handleGetAnima(animas store.AnimaStore, projects store.ProjectStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, projectID, ok := resolveProject(w, r, projects)
		if !ok {
			return
		}

		definition, err := url.PathUnescape(mux.Vars(r)["definition"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Anima not found")
			return
		}

		anima, err := animas.AnimaByDefinition(projectID, definition)
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Anima not found")
			return
		}

		audit.Log(audit.SecretAccessEvent{
			ActorID:    p.Key.ID.String(),
			TenantID:   p.TenantID().String(),
			ProjectID:  projectID.String(),
			Definition: anima.Definition,
			Operation:  "fetch",
			ClientIP:   r.RemoteAddr,
		})

		respondWithJSON(w, http.StatusOK, anima)
	}
}

func handleUpdateAnima(animas store.AnimaStore, projects store.ProjectStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, projectID, ok := resolveProject(w, r, projects)
		if !ok {
			return
		}

		animaID, err := uuid.Parse(mux.Vars(r)["animaId"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Anima not found")
			return
		}

		var req UpdateAnimaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		updated, err := animas.UpdateAnima(projectID, animaID, req.Value, req.Description)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to update anima")
			return
		}
		if !updated {
			respondWithError(w, http.StatusNotFound, "Anima not found")
			return
		}

		audit.Log(audit.SecretAccessEvent{
			ActorID:   p.Key.ID.String(),
			TenantID:  p.TenantID().String(),
			ProjectID: projectID.String(),
			Operation: "update",
			ClientIP:  r.RemoteAddr,
		})

		respondWithJSON(w, http.StatusOK, map[string]string{"message": "Anima updated"})
	}
}

func handleDeleteAnima(animas store.AnimaStore, projects store.ProjectStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, projectID, ok := resolveProject(w, r, projects)
		if !ok {
			return
		}

		animaID, err := uuid.Parse(mux.Vars(r)["animaId"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Anima not found")
			return
		}

		deleted, err := animas.DeleteAnima(projectID, animaID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to delete anima")
			return
		}
		if !deleted {
			respondWithError(w, http.StatusNotFound, "Anima not found")
			return
		}

		audit.Log(audit.SecretAccessEvent{
			ActorID:   p.Key.ID.String(),
			TenantID:  p.TenantID().String(),
			ProjectID: projectID.String(),
			Operation: "delete",
			ClientIP:  r.RemoteAddr,
		})

		respondWithJSON(w, http.StatusOK, map[string]string{"message": "Anima deleted"})
	}
}
