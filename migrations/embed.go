package migrations

import "embed"

// FS holds the postgres schema applied by gormrepo.ApplyMigrations.
//
//go:embed *.sql
var FS embed.FS
