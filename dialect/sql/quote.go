package sql

import (
	"strings"

	"github.com/lib/pq"

	"github.com/syssam/velox-search/dialect"
)

// mysqlEscape doubles quotes and backslashes; MySQL treats a backslash in a
// string literal as an escape character.
func mysqlEscape(s string) string {
	if !strings.ContainsAny(s, `'\`) {
		return s
	}
	return strings.NewReplacer(`\`, `\\`, "'", "''").Replace(s)
}

// QuoteLiteral quotes a string literal for the given dialect.
func QuoteLiteral(name, s string) string {
	switch dialect.Normalize(name) {
	case dialect.Postgres:
		// pq prefixes literals containing backslashes with " E".
		return strings.TrimPrefix(pq.QuoteLiteral(s), " ")
	case dialect.MySQL:
		return "'" + mysqlEscape(s) + "'"
	default:
		return "'" + strings.ReplaceAll(s, "'", "''") + "'"
	}
}

// QuoteIdentifier quotes an identifier for the given dialect. Dotted
// identifiers are quoted per segment.
func QuoteIdentifier(name, ident string) string {
	parts := strings.Split(ident, ".")
	for i, p := range parts {
		switch dialect.Normalize(name) {
		case dialect.Postgres:
			parts[i] = pq.QuoteIdentifier(p)
		case dialect.MySQL:
			parts[i] = "`" + strings.ReplaceAll(p, "`", "``") + "`"
		default:
			parts[i] = `"` + strings.ReplaceAll(p, `"`, `""`) + `"`
		}
	}
	return strings.Join(parts, ".")
}

// TextType returns the type name used to cast an expression to text.
func TextType(name string) string {
	if dialect.Normalize(name) == dialect.MySQL {
		return "CHAR"
	}
	return "TEXT"
}
