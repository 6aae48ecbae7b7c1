package postgres

import "embed"

// Migrations holds the goose SQL migrations of the schema, rooted at "migrations".
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory of Migrations that goose should read.
const MigrationsDir = "migrations"
