// Package sql provides the database/sql backed session driver and the
// dialect-aware quoting used when search clauses are compiled to native SQL.
//
// # Drivers
//
// Open wraps database/sql.Open; the database/sql driver must be registered by
// the caller (lib/pq, go-sql-driver/mysql, modernc.org/sqlite, ...):
//
//	import _ "github.com/lib/pq"
//
//	drv, err := sql.Open("postgres", "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
// When no connection is needed, Static returns a driver that only reports
// its dialect:
//
//	drv := sql.Static(dialect.SQLite)
//
// # Quoting
//
//	sql.QuoteLiteral(dialect.Postgres, `it's`)   // 'it''s'
//	sql.QuoteLiteral(dialect.MySQL, `a\b`)       // 'a\\b'
//	sql.QuoteIdentifier(dialect.MySQL, "c.type") // `c`.`type`
package sql
