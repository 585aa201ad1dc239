package migration

import "embed"

const migrationsDir = "migrations"

// Rental schema migrations, applied at startup by RunMigrations.
//
//go:embed migrations/*.up.sql
var embeddedMigrations embed.FS
