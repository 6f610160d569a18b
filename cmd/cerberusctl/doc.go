// Package main provides the cerberusctl CLI for the Cerberus
// multi-tenant secrets-management server.
//
// # Quick Start
//
//	# Run database migrations
//	cerberusctl db migrate
//
//	# Create the first tenant and its tenant-wide key
//	cerberusctl tenant create Acme
//
//	# Start the server
//	cerberusctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - BIND_ADDRESS: Server bind address (default: 0.0.0.0)
//   - PORT: Server port (default: 8000)
//   - CERBERUS_CONFIG: Path to an optional YAML configuration file
//   - CERBERUS_BOOTSTRAP_TOKEN: Shared secret for the bootstrap endpoint
//   - CERBERUS_LOG_LEVEL: Log level (debug, info, warn, error)
//   - CERBERUS_AUDIT_ENABLED: Set to "false" to silence audit output
package main
