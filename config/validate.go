package config

import (
	"fmt"
	"strings"

	"github.com/syssam/velox-search/dialect"
	"github.com/syssam/velox-search/dialect/sql"
	"github.com/syssam/velox-search/orm/conversion"
)

// FieldError is a validation error of one mapping value.
type FieldError struct {
	// Field is the dotted path of the value, e.g. "fields.customerType.alias".
	Field   string
	Message string
}

// Error returns the error string.
func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationError holds every validation error of a mapping.
type ValidationError struct {
	Errors []FieldError
}

// Error returns the error string.
func (e ValidationError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "mapping validation failed"
	case 1:
		return "mapping validation failed: " + e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "mapping validation failed with %d errors:", len(e.Errors))
	for _, err := range e.Errors {
		sb.WriteString("\n  - " + err.Error())
	}
	return sb.String()
}

// Validate checks the mapping and returns a ValidationError listing every
// problem, or nil.
func Validate(m *Mapping) error {
	var errs []FieldError
	add := func(field, format string, args ...any) {
		errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if !dialect.Supported(m.Dialect) {
		add("dialect", "unsupported dialect %q", m.Dialect)
	}
	for _, entity := range sortedKeys(m.Entities) {
		if alias := m.Entities[entity]; !sql.IsValidIdentifier(alias) {
			add("entities."+entity, "invalid alias %q", alias)
		}
	}
	for _, entity := range sortedKeys(m.Metadata) {
		md := m.Metadata[entity]
		if md.Table != "" && !sql.IsValidIdentifier(md.Table) {
			add("metadata."+entity+".table", "invalid table %q", md.Table)
		}
		for _, prop := range sortedKeys(md.Properties) {
			if c := md.Properties[prop].Column; c != "" && !sql.IsValidIdentifier(c) {
				add("metadata."+entity+".properties."+prop+".column", "invalid column %q", c)
			}
		}
	}
	for _, name := range m.FieldNames() {
		f := m.Fields[name]
		path := "fields." + name
		switch {
		case f.Alias != "" && !sql.IsValidIdentifier(f.Alias):
			add(path+".alias", "invalid alias %q", f.Alias)
		case f.Alias == "" && f.Entity == "":
			add(path, "either alias or entity is required")
		case f.Alias == "" && m.Entities[f.Entity] == "":
			add(path+".entity", "no alias configured for entity %q", f.Entity)
		}
		if f.Property != "" && !sql.IsValidIdentifier(f.Property) {
			add(path+".property", "invalid property %q", f.Property)
		}
		if md, ok := m.Metadata[f.Entity]; ok && f.Entity != "" {
			prop := f.Property
			if prop == "" {
				prop = name
			}
			if _, ok := md.Properties[prop]; !ok {
				add(path+".property", "entity %q has no property %q", f.Entity, prop)
			}
		}
		for i, ref := range f.Converters {
			if _, err := conversion.Lookup(ref); err != nil {
				add(fmt.Sprintf("%s.converters[%d]", path, i), "%v", err)
			}
		}
	}
	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
