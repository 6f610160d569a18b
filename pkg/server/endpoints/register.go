package endpoints

import (
	"github.com/cerbhq/cerberus/pkg/server"
	"github.com/cerbhq/cerberus/pkg/server/middleware"
)

// RegisterAll registers all API endpoints on the server. The validation
// pipeline wraps the whole router; exempt paths are decided inside the
// middleware so registration order doesn't matter.
func RegisterAll(srv *server.Server) {
	authenticator := middleware.NewAPIKeyAuthenticator(srv.Keys)
	srv.Router.Use(authenticator.Middleware)

	RegisterBootstrapEndpoint(srv)
	RegisterApiKeysEndpoints(srv)
	RegisterTenantsEndpoints(srv)
	RegisterProjectsEndpoints(srv)
	RegisterAnimasEndpoints(srv)
	RegisterDocsEndpoints(srv)
	RegisterStatusEndpoints(srv)
}
