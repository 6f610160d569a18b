// Package db carries the embedded database migrations.
package db

import "embed"

// Migrations holds the SQL migration files compiled into the binary for
// builds tagged embed_migrations.
//
//go:embed migrations/*.sql
var Migrations embed.FS
