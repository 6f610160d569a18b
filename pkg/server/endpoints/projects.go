package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/cerbhq/cerberus/pkg/keys"
	"github.com/cerbhq/cerberus/pkg/model"
	"github.com/cerbhq/cerberus/pkg/principal"
	"github.com/cerbhq/cerberus/pkg/server"
	"github.com/cerbhq/cerberus/pkg/server/store"
)

// CreateProjectRequest is the body of POST /tenants/{id}/projects
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Environment string `json:"environment"`
}

// RegisterProjectsEndpoints registers the project routes
func RegisterProjectsEndpoints(s *server.Server) {
	router := s.Router
	projects := s.Stores.Projects

	router.HandleFunc("/tenants/{id}/projects", handleListProjects(projects)).Methods("GET")
	router.HandleFunc("/tenants/{id}/projects", handleCreateProject(projects)).Methods("POST")
	router.HandleFunc("/tenants/{tenantId}/projects/{projectId}", handleGetProject(projects)).Methods("GET")
}

func handleListProjects(projects store.ProjectStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Missing Authorization header")
			return
		}

		tenantID, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil || !keys.HasTenantAccess(p.Key, tenantID) {
			respondWithError(w, http.StatusNotFound, "Tenant not found")
			return
		}

		all, err := projects.ProjectsForTenant(tenantID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list projects")
			return
		}

		// A project-scoped key sees a list of one.
		if !p.IsTenantWide() {
			visible := make([]model.Project, 0, 1)
			for _, project := range all {
				if keys.HasProjectAccess(p.Key, tenantID, project.ID) {
					visible = append(visible, project)
				}
			}
			all = visible
		}

		respondWithJSON(w, http.StatusOK, all)
	}
}

func handleCreateProject(projects store.ProjectStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Missing Authorization header")
			return
		}

		tenantID, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Tenant not found")
			return
		}

		if !keys.HasTenantAccess(p.Key, tenantID) {
			respondWithError(w, http.StatusForbidden, "Access denied")
			return
		}

		var req CreateProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Name == "" {
			respondWithError(w, http.StatusBadRequest, "Project name is required")
			return
		}

		environment, ok := model.ParseEnvironment(req.Environment)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Environment must be one of: DEVELOPMENT, STAGING, PRODUCTION")
			return
		}

		project, err := projects.CreateProject(tenantID, req.Name, req.Description, environment)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to create project")
			return
		}

		respondWithJSON(w, http.StatusCreated, project)
	}
}

func handleGetProject(projects store.ProjectStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Missing Authorization header")
			return
		}

		vars := mux.Vars(r)
		tenantID, terr := uuid.Parse(vars["tenantId"])
		projectID, perr := uuid.Parse(vars["projectId"])

		// Absent and denied are indistinguishable on the read path.
		if terr != nil || perr != nil || !keys.HasProjectAccess(p.Key, tenantID, projectID) {
			respondWithError(w, http.StatusNotFound, "Project not found")
			return
		}

		project, err := projects.ProjectByID(tenantID, projectID)
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Project not found")
			return
		}

		respondWithJSON(w, http.StatusOK, project)
	}
}
