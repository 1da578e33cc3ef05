package storage

import (
	"strings"

	"github.com/Sai2211201144/learn-ai-2/internal/storage/postgres"
	"github.com/Sai2211201144/learn-ai-2/internal/storage/sqlite"
)

// Open picks a backend from the storage location: PostgreSQL URIs and DSNs,
// a .json file, or a SQLite database path.
func Open(location string) Provider {
	switch {
	case IsPostgres(location):
		return postgres.New(location)
	case strings.HasSuffix(strings.ToLower(location), ".json"):
		return NewJSONStore(location)
	default:
		return sqlite.NewStore(location)
	}
}

// IsPostgres reports whether location addresses a PostgreSQL server.
func IsPostgres(location string) bool {
	if postgres.IsURL(location) {
		return true
	}
	return strings.Contains(location, "host=") || strings.Contains(location, "dbname=")
}
