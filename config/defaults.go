package config

import "github.com/syssam/velox-search/dialect"

// Default values for mapping fields.
const (
	DefaultDialect  = dialect.Postgres
	DefaultFieldSet = "default"
)

// ApplyDefaults fills the unset values of the mapping.
func ApplyDefaults(m *Mapping) {
	if m.Dialect == "" {
		m.Dialect = DefaultDialect
	}
	m.Dialect = dialect.Normalize(m.Dialect)
	if m.FieldSet == "" {
		m.FieldSet = DefaultFieldSet
	}
	if m.Entities == nil {
		m.Entities = map[string]string{}
	}
	if m.Metadata == nil {
		m.Metadata = map[string]EntityMetadata{}
	}
	if m.Fields == nil {
		m.Fields = map[string]FieldMapping{}
	}
}
