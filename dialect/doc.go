// Package dialect provides the database dialect abstraction used by the search bridge.
//
// The search bridge never executes queries; it only needs to know which SQL
// dialect a session speaks so literals, casts and case folding are rendered
// correctly.
//
// # Supported Dialects
//
//   - Postgres: PostgreSQL database
//   - MySQL: MySQL/MariaDB database
//   - SQLite: SQLite database
//
// # Dialect Constants
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite3"
//
// Driver names such as "pgx", "postgresql" or "sqlite" are mapped onto these
// constants by Normalize.
//
// # Driver Interface
//
//	type Driver interface {
//	    Dialect() string
//	    Close() error
//	}
//
// # Sub-packages
//
//   - dialect/sql: database/sql backed driver and literal quoting
package dialect
