package dialect

import "strings"

// Dialect names for external usage.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite3"
	Postgres = "postgres"
)

// Driver is the interface that wraps the storage session used to compile
// search clauses. Implementations only need to report their dialect and
// release their resources.
type Driver interface {
	// Dialect returns the dialect name of the driver.
	Dialect() string
	// Close closes the underlying connection.
	Close() error
}

// Normalize maps driver names and their common aliases onto one of the
// dialect constants. Unknown names are returned lower-cased.
func Normalize(name string) string {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "postgres", "postgresql", "pgx", "pq":
		return Postgres
	case "mysql", "mariadb":
		return MySQL
	case "sqlite", "sqlite3":
		return SQLite
	default:
		return n
	}
}

// Supported reports whether the name normalizes to a known dialect.
func Supported(name string) bool {
	switch Normalize(name) {
	case Postgres, MySQL, SQLite:
		return true
	}
	return false
}
