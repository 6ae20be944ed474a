package orm

import (
	"fmt"
	"sort"

	veloxsearch "github.com/syssam/velox-search"
	"github.com/syssam/velox-search/condition"
)

// FieldConfig is the mapping of a search field onto an entity property.
// Empty strings mean "not set".
type FieldConfig struct {
	FieldName      string
	Alias          string
	Entity         string
	Property       string
	MappingType    string
	ValueConverter ValueConverter
	SQLConverter   SQLFieldConverter
}

// Column returns the qualified column reference, e.g. "c.type".
func (c FieldConfig) Column() string {
	return c.Alias + "." + c.Property
}

// FieldOption configures a field in SetField.
type FieldOption func(*FieldConfig)

// WithEntity sets the entity owning the property.
func WithEntity(entity string) FieldOption {
	return func(c *FieldConfig) { c.Entity = entity }
}

// WithProperty sets the entity property. It defaults to the property of the
// FieldSet field, or the field name.
func WithProperty(property string) FieldOption {
	return func(c *FieldConfig) { c.Property = property }
}

// WithMappingType sets the mapping type. It defaults to the type declared
// by the entity metadata, or the type of the FieldSet field.
func WithMappingType(mappingType string) FieldOption {
	return func(c *FieldConfig) { c.MappingType = mappingType }
}

// FieldConfigBuilder holds the field and entity mappings of a where-builder.
type FieldConfigBuilder struct {
	em       EntityManager
	fieldSet *condition.FieldSet
	entities map[string]string
	fields   map[string]*FieldConfig
}

// NewFieldConfigBuilder returns an empty FieldConfigBuilder for the FieldSet.
func NewFieldConfigBuilder(em EntityManager, fs *condition.FieldSet) *FieldConfigBuilder {
	return &FieldConfigBuilder{
		em:       em,
		fieldSet: fs,
		entities: make(map[string]string),
		fields:   make(map[string]*FieldConfig),
	}
}

// SetEntityMapping maps an entity to its alias. An empty alias removes the mapping.
func (b *FieldConfigBuilder) SetEntityMapping(entity, alias string) {
	if alias == "" {
		delete(b.entities, entity)
		return
	}
	b.entities[entity] = alias
}

// SetEntityMappings replaces all entity mappings.
func (b *FieldConfigBuilder) SetEntityMappings(mappings map[string]string) {
	b.entities = make(map[string]string, len(mappings))
	for entity, alias := range mappings {
		b.SetEntityMapping(entity, alias)
	}
}

// EntityMappings returns a copy of the entity mappings.
func (b *FieldConfigBuilder) EntityMappings() map[string]string {
	m := make(map[string]string, len(b.entities))
	for k, v := range b.entities {
		m[k] = v
	}
	return m
}

func (b *FieldConfigBuilder) field(name string) (*FieldConfig, error) {
	if !b.fieldSet.Has(name) {
		return nil, veloxsearch.NewUnknownFieldError(name, b.fieldSet.Name())
	}
	cfg, ok := b.fields[name]
	if !ok {
		cfg = &FieldConfig{FieldName: name}
		b.fields[name] = cfg
	}
	return cfg, nil
}

// SetField maps a search field onto a property of the entity known by alias.
// Converters set earlier are kept.
func (b *FieldConfigBuilder) SetField(fieldName, alias string, opts ...FieldOption) error {
	if !b.fieldSet.Has(fieldName) {
		return veloxsearch.NewUnknownFieldError(fieldName, b.fieldSet.Name())
	}
	next := FieldConfig{FieldName: fieldName, Alias: alias}
	for _, opt := range opts {
		opt(&next)
	}
	if next.Entity != "" && b.em != nil {
		if md, ok := b.em.Metadata(next.Entity); ok {
			property := b.defaultProperty(fieldName, next.Property)
			if !md.HasProperty(property) {
				return &veloxsearch.UnknownPropertyError{Entity: next.Entity, Property: property}
			}
		}
	}
	cfg, _ := b.field(fieldName)
	next.ValueConverter, next.SQLConverter = cfg.ValueConverter, cfg.SQLConverter
	*cfg = next
	return nil
}

// SetConverter sets the converters of a field. The converter fills the
// value and SQL slots it implements; the other slot is kept.
func (b *FieldConfigBuilder) SetConverter(fieldName string, converter any) error {
	if !b.fieldSet.Has(fieldName) {
		return veloxsearch.NewUnknownFieldError(fieldName, b.fieldSet.Name())
	}
	vc, isValue := converter.(ValueConverter)
	sc, isSQL := converter.(SQLFieldConverter)
	if !isValue && !isSQL {
		return fmt.Errorf("%w: %T", veloxsearch.ErrInvalidConverter, converter)
	}
	cfg, err := b.field(fieldName)
	if err != nil {
		return err
	}
	if isValue {
		cfg.ValueConverter = vc
	}
	if isSQL {
		cfg.SQLConverter = sc
	}
	return nil
}

// SetValueConverter sets the value converter of a field. A nil converter clears it.
func (b *FieldConfigBuilder) SetValueConverter(fieldName string, c ValueConverter) error {
	cfg, err := b.field(fieldName)
	if err != nil {
		return err
	}
	cfg.ValueConverter = c
	return nil
}

// SetSQLFieldConverter sets the SQL converter of a field. A nil converter clears it.
func (b *FieldConfigBuilder) SetSQLFieldConverter(fieldName string, c SQLFieldConverter) error {
	cfg, err := b.field(fieldName)
	if err != nil {
		return err
	}
	cfg.SQLConverter = c
	return nil
}

func (b *FieldConfigBuilder) defaultProperty(fieldName, property string) string {
	if property != "" {
		return property
	}
	if f, ok := b.fieldSet.Get(fieldName); ok && f.Property != "" {
		return f.Property
	}
	return fieldName
}

// Resolve returns the complete configuration of a field. Unset parts are
// derived from the entity mappings, the entity metadata and the FieldSet.
func (b *FieldConfigBuilder) Resolve(fieldName string) (FieldConfig, error) {
	f, ok := b.fieldSet.Get(fieldName)
	if !ok {
		return FieldConfig{}, veloxsearch.NewUnknownFieldError(fieldName, b.fieldSet.Name())
	}
	cfg := FieldConfig{FieldName: fieldName}
	if c, ok := b.fields[fieldName]; ok {
		cfg = *c
	}
	if cfg.Entity == "" {
		cfg.Entity = f.Entity
	}
	cfg.Property = b.defaultProperty(fieldName, cfg.Property)
	if cfg.Alias == "" && cfg.Entity != "" {
		cfg.Alias = b.entities[cfg.Entity]
	}
	if cfg.Alias == "" {
		if cfg.Entity == "" {
			return FieldConfig{}, veloxsearch.NewUnresolvedFieldError(fieldName, "no alias configured and the field has no entity")
		}
		return FieldConfig{}, veloxsearch.NewUnresolvedFieldError(fieldName, fmt.Sprintf("no alias configured for entity %q", cfg.Entity))
	}
	if cfg.MappingType == "" && cfg.Entity != "" && b.em != nil {
		if md, ok := b.em.Metadata(cfg.Entity); ok {
			cfg.MappingType = md.TypeOf(cfg.Property)
		}
	}
	if cfg.MappingType == "" {
		cfg.MappingType = f.Type
	}
	return cfg, nil
}

// Fields returns the configuration of every configured field, sorted by
// name. Fields that resolve are returned resolved.
func (b *FieldConfigBuilder) Fields() []FieldConfig {
	out := make([]FieldConfig, 0, len(b.fields))
	for name, cfg := range b.fields {
		if resolved, err := b.Resolve(name); err == nil {
			out = append(out, resolved)
			continue
		}
		out = append(out, *cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FieldName < out[j].FieldName })
	return out
}
