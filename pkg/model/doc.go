// Package model defines the database models for Cerberus.
//
// This package contains GORM models that map to the Cerberus PostgreSQL
// schema. The model hierarchy is strict: every Anima is reachable only
// through its Project, every Project only through its Tenant, and API keys
// are owned by exactly one Tenant with an optional narrowing Project scope.
//
// # Core Models
//
//   - Tenant: top-level organization boundary
//   - Project: grouping of secrets, tagged with an Environment
//   - Anima: a single named secret value within a project
//   - ApiKey: bearer credential (SHA-256 digest stored, never plaintext)
//
// # Database Schema
//
//   - tenants: organizations
//   - projects: tenant-owned groupings (cascade delete from tenants)
//   - animas: secrets, unique per (project_id, lower(definition))
//   - api_keys: credential records, unique key_hash
package model
