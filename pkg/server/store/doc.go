// Package store defines the persistence interfaces consumed by the Cerberus
// core, together with their sentinel errors. The gorm subpackage provides
// the PostgreSQL implementations; tests substitute mocks.
package store
