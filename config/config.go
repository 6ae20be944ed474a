// Package config loads mapping files that describe how search fields map
// onto entities, and applies them to where-builders.
//
// A mapping file looks like:
//
//	dialect: postgres
//	fieldset: invoice
//	entities:
//	  Customer: c
//	metadata:
//	  Customer:
//	    table: customers
//	    properties:
//	      type: {column: customer_type, type: string}
//	fields:
//	  customerType:
//	    entity: Customer
//	    property: type
//	    converters: ["func:get_customer_type"]
//
// Load reads a file, applies defaults and validates it.
package config

import (
	"sort"

	"github.com/syssam/velox-search/condition"
)

// Mapping is the root of a mapping file.
type Mapping struct {
	// Dialect of the session the clause is compiled for.
	Dialect string `yaml:"dialect"`

	// FieldSet is the name of the FieldSet built from Fields.
	FieldSet string `yaml:"fieldset"`

	// Entities maps entity names to query aliases.
	Entities map[string]string `yaml:"entities"`

	// Metadata describes the storage of entities.
	Metadata map[string]EntityMetadata `yaml:"metadata"`

	// Fields maps search field names to their configuration.
	Fields map[string]FieldMapping `yaml:"fields"`
}

// EntityMetadata describes how an entity is stored.
type EntityMetadata struct {
	Table      string              `yaml:"table"`
	Properties map[string]Property `yaml:"properties"`
}

// Property is a stored entity property.
type Property struct {
	Column string `yaml:"column"`
	Type   string `yaml:"type"`
}

// FieldMapping configures one search field.
type FieldMapping struct {
	Alias    string `yaml:"alias"`
	Entity   string `yaml:"entity"`
	Property string `yaml:"property"`
	Type     string `yaml:"type"`

	// Converters are converter specifications, e.g. "lower" or
	// "func:get_customer_type".
	Converters []string `yaml:"converters"`
}

// FieldNames returns the configured field names, sorted.
func (m *Mapping) FieldNames() []string {
	names := make([]string, 0, len(m.Fields))
	for name := range m.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildFieldSet returns the FieldSet described by the mapping.
func (m *Mapping) BuildFieldSet() *condition.FieldSet {
	fs := condition.NewFieldSet(m.FieldSet)
	for _, name := range m.FieldNames() {
		f := m.Fields[name]
		fs.Add(condition.Field{
			Name:     name,
			Entity:   f.Entity,
			Property: f.Property,
			Type:     f.Type,
		})
	}
	return fs
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
