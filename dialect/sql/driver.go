package sql

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/syssam/velox-search/dialect"
)

// validIdentifierRe validates SQL identifiers (alphanumeric, underscores, dots for schema.name)
var validIdentifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*$`)

// IsValidIdentifier checks if the string is a valid SQL identifier.
func IsValidIdentifier(s string) bool {
	return s != "" && len(s) <= 128 && validIdentifierRe.MatchString(s)
}

// Driver is a dialect.Driver implementation for SQL based databases.
type Driver struct {
	db      *sql.DB
	dialect string
}

// NewDriver creates a new Driver with the given database handle and dialect.
func NewDriver(dialect string, db *sql.DB) *Driver {
	return &Driver{dialect: dialect, db: db}
}

// Open wraps the database/sql.Open method and returns a Driver for the
// registered database/sql driver of the given name.
func Open(driverName, source string) (*Driver, error) {
	db, err := sql.Open(driverName, source)
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: open %s: %w", driverName, err)
	}
	return NewDriver(driverName, db), nil
}

// OpenDB wraps the given database/sql.DB with a Driver.
func OpenDB(dialect string, db *sql.DB) *Driver {
	return NewDriver(dialect, db)
}

// DB returns the underlying *sql.DB instance.
func (d Driver) DB() *sql.DB {
	return d.db
}

// Dialect implements the dialect.Driver method.
func (d Driver) Dialect() string {
	// If the underlying driver is wrapped with a telemetry driver.
	for _, name := range []string{dialect.MySQL, dialect.SQLite, dialect.Postgres} {
		if strings.HasPrefix(d.dialect, name) {
			return name
		}
	}
	return dialect.Normalize(d.dialect)
}

// Ping verifies the session is reachable.
func (d *Driver) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("dialect/sql: ping: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (d *Driver) Close() error { return d.db.Close() }

var _ dialect.Driver = (*Driver)(nil)

// static is a driver without a connection. It is used when only the dialect
// of a session is known, e.g. when rendering clauses offline.
type static string

// Static returns a dialect.Driver that reports the given dialect and holds
// no connection.
func Static(name string) dialect.Driver {
	return static(dialect.Normalize(name))
}

func (s static) Dialect() string { return string(s) }

func (static) Close() error { return nil }
