// Package server provides the HTTP server for the Cerberus API.
//
// This package implements the core HTTP server that handles all Cerberus REST
// API requests. It uses gorilla/mux for routing and wires the validation
// middleware, storage interfaces, and key service together.
//
// # Server Setup
//
//	srv := server.NewServer(stores, keyService, db, logger, cfg)
//	endpoints.RegisterAll(srv)
//	log.Fatal(srv.Start())
//
// # Components
//
// The Server struct holds:
//
//   - Stores: storage interfaces for tenants, projects, animas, keys, health
//   - Keys: the key minting and validation service
//   - Router: HTTP request router
//   - DB: database connection
//   - Config: process configuration injected at startup
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//	endpoints.RegisterAll(srv)
//
// This registers the Cerberus API surface including:
//
//   - /bootstrap - one-time tenant provisioning
//   - /api-keys - key management
//   - /tenants, /tenants/{id}/projects - hierarchy management
//   - /tenants/{t}/projects/{p}/animas - secret management
//   - /docs, /status, / - documentation and health
package server
