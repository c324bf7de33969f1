package migrations

import "embed"

// FS holds the versioned SQL files applied by golang-migrate.
//
//go:embed *.sql
var FS embed.FS
