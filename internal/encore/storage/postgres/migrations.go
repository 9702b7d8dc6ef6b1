package postgres

import "embed"

// Migrations holds the embedded schema migrations for the booking site.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the path of the migrations inside the embedded FS.
const MigrationsDir = "migrations"
