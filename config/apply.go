package config

import (
	"fmt"

	"github.com/syssam/velox-search/orm"
	"github.com/syssam/velox-search/orm/conversion"
	"github.com/syssam/velox-search/querylanguage"
)

// RegisterMetadata registers the entity metadata of the mapping on em.
func (m *Mapping) RegisterMetadata(em *querylanguage.EntityManager) error {
	for _, entity := range sortedKeys(m.Metadata) {
		md := m.Metadata[entity]
		cm := querylanguage.NewClassMetadata(entity)
		cm.Table = md.Table
		for _, prop := range sortedKeys(md.Properties) {
			p := md.Properties[prop]
			cm.AddProperty(prop, p.Column, p.Type)
		}
		if err := em.RegisterEntity(cm); err != nil {
			return fmt.Errorf("config: register entity %q: %w", entity, err)
		}
	}
	return nil
}

// Apply configures the entity mappings, fields and converters of wb.
func (m *Mapping) Apply(wb *orm.WhereBuilder) error {
	if err := wb.SetEntityMappings(m.Entities); err != nil {
		return err
	}
	for _, name := range m.FieldNames() {
		f := m.Fields[name]
		var opts []orm.FieldOption
		if f.Entity != "" {
			opts = append(opts, orm.WithEntity(f.Entity))
		}
		if f.Property != "" {
			opts = append(opts, orm.WithProperty(f.Property))
		}
		if f.Type != "" {
			opts = append(opts, orm.WithMappingType(f.Type))
		}
		if err := wb.SetField(name, f.Alias, opts...); err != nil {
			return err
		}
		for _, ref := range f.Converters {
			c, err := conversion.Lookup(ref)
			if err != nil {
				return fmt.Errorf("config: field %q: %w", name, err)
			}
			if err := wb.SetConverter(name, c); err != nil {
				return err
			}
		}
	}
	return nil
}
