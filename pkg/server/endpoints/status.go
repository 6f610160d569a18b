package endpoints

import (
	"net/http"

	"github.com/cerbhq/cerberus/pkg/server"
	"github.com/cerbhq/cerberus/pkg/server/store"
)

// StatusResponse is the health payload served on / and /status
type StatusResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// RegisterStatusEndpoints registers the health endpoints (no auth required)
func RegisterStatusEndpoints(s *server.Server) {
	handler := handleStatus(s.Stores.Health)
	s.Router.HandleFunc("/", handler).Methods("GET")
	s.Router.HandleFunc("/status", handler).Methods("GET")
}

func handleStatus(health store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := health.Ping(); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, StatusResponse{
				Status:   "error",
				Database: "unreachable",
			})
			return
		}

		respondWithJSON(w, http.StatusOK, StatusResponse{
			Status:   "ok",
			Database: "ok",
		})
	}
}
