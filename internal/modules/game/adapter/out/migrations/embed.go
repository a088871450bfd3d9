package migrations

import "embed"

// FS holds the saved-game schema, one directory per driver.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

const (
	SQLiteDir   = "sqlite"
	PostgresDir = "postgres"
)
