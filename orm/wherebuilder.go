package orm

import (
	"context"
	"errors"
	"io"
	"log/slog"

	veloxsearch "github.com/syssam/velox-search"
	"github.com/syssam/velox-search/condition"
	"github.com/syssam/velox-search/querylanguage"
)

// EntityManager is the storage session a where-builder renders for.
// *querylanguage.EntityManager implements it.
type EntityManager interface {
	Dialect() string
	Metadata(entity string) (*querylanguage.ClassMetadata, bool)
	CompileCondition(condition string, aliases map[string]string) (string, error)
}

type state int

const (
	stateConfiguring state = iota
	stateGenerated
)

// WhereBuilder renders a search condition as a where-clause of the query
// language. It is configured once, then generates its clause once; a
// WhereBuilder is not safe for concurrent use.
type WhereBuilder struct {
	cond   *condition.SearchCondition
	em     EntityManager
	fields *FieldConfigBuilder
	log    *slog.Logger

	state  state
	clause string
}

// Option configures a WhereBuilder.
type Option func(*WhereBuilder)

// WithLogger sets the logger for generation debug output.
func WithLogger(l *slog.Logger) Option {
	return func(wb *WhereBuilder) { wb.log = l }
}

// NewWhereBuilder returns a WhereBuilder for the condition. It fails with a
// PreconditionError when the condition contains errors.
func NewWhereBuilder(cond *condition.SearchCondition, em EntityManager, opts ...Option) (*WhereBuilder, error) {
	if cond == nil {
		return nil, errors.New("orm: nil search condition")
	}
	if em == nil {
		return nil, errors.New("orm: nil entity manager")
	}
	if cond.HasErrors(true) {
		return nil, veloxsearch.NewPreconditionError(cond.FieldSet().Name())
	}
	wb := &WhereBuilder{
		cond:   cond,
		em:     em,
		fields: NewFieldConfigBuilder(em, cond.FieldSet()),
	}
	for _, opt := range opts {
		opt(wb)
	}
	if wb.log == nil {
		wb.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return wb, nil
}

func (wb *WhereBuilder) guardNotGenerated(op string) error {
	if wb.state == stateGenerated {
		return veloxsearch.NewLockedError(op)
	}
	return nil
}

// SetEntityMapping maps an entity to the alias used in the query. An empty
// alias removes the mapping.
func (wb *WhereBuilder) SetEntityMapping(entity, alias string) error {
	if err := wb.guardNotGenerated("SetEntityMapping"); err != nil {
		return err
	}
	wb.fields.SetEntityMapping(entity, alias)
	return nil
}

// SetEntityMappings replaces all entity mappings.
func (wb *WhereBuilder) SetEntityMappings(mappings map[string]string) error {
	if err := wb.guardNotGenerated("SetEntityMappings"); err != nil {
		return err
	}
	wb.fields.SetEntityMappings(mappings)
	return nil
}

// SetField maps a search field onto a property of the entity known by alias.
func (wb *WhereBuilder) SetField(fieldName, alias string, opts ...FieldOption) error {
	if err := wb.guardNotGenerated("SetField"); err != nil {
		return err
	}
	return wb.fields.SetField(fieldName, alias, opts...)
}

// SetConverter sets the converters of a field. converter must implement
// ValueConverter, SQLFieldConverter or both.
func (wb *WhereBuilder) SetConverter(fieldName string, converter any) error {
	if err := wb.guardNotGenerated("SetConverter"); err != nil {
		return err
	}
	return wb.fields.SetConverter(fieldName, converter)
}

// SetValueConverter sets only the value converter of a field.
func (wb *WhereBuilder) SetValueConverter(fieldName string, c ValueConverter) error {
	if err := wb.guardNotGenerated("SetValueConverter"); err != nil {
		return err
	}
	return wb.fields.SetValueConverter(fieldName, c)
}

// SetSQLFieldConverter sets only the SQL converter of a field.
func (wb *WhereBuilder) SetSQLFieldConverter(fieldName string, c SQLFieldConverter) error {
	if err := wb.guardNotGenerated("SetSQLFieldConverter"); err != nil {
		return err
	}
	return wb.fields.SetSQLFieldConverter(fieldName, c)
}

// Generate renders the where-clause. The first successful call locks the
// configuration; later calls return the same clause. A condition without
// values renders as "".
func (wb *WhereBuilder) Generate() (string, error) {
	if wb.state == stateGenerated {
		return wb.clause, nil
	}
	root := wb.cond.ValuesGroup()
	resolved, err := wb.resolveFields(root)
	if err != nil {
		return "", err
	}
	r := &renderer{dialect: wb.em.Dialect(), fields: resolved}
	clause, _, err := r.group(root)
	if err != nil {
		return "", err
	}
	if root.IsNegated() && clause != "" {
		clause = "NOT (" + clause + ")"
	}
	wb.clause = clause
	wb.state = stateGenerated
	wb.log.LogAttrs(context.Background(), slog.LevelDebug, "where-clause generated",
		slog.String("fieldset", wb.cond.FieldSet().Name()),
		slog.Int("fields", len(resolved)),
		slog.String("clause", clause),
	)
	return clause, nil
}

// GenerateSQL generates the where-clause and compiles it into SQL of the
// entity manager's dialect.
func (wb *WhereBuilder) GenerateSQL() (string, error) {
	clause, err := wb.Generate()
	if err != nil {
		return "", err
	}
	return wb.em.CompileCondition(clause, wb.aliases())
}

// aliases maps every alias used by the clause to its entity ("" if unknown).
func (wb *WhereBuilder) aliases() map[string]string {
	aliases := make(map[string]string)
	for entity, alias := range wb.fields.EntityMappings() {
		aliases[alias] = entity
	}
	for _, name := range usedFields(wb.cond.ValuesGroup()) {
		cfg, err := wb.fields.Resolve(name)
		if err != nil {
			continue
		}
		if _, ok := aliases[cfg.Alias]; !ok || cfg.Entity != "" {
			aliases[cfg.Alias] = cfg.Entity
		}
	}
	return aliases
}

func (wb *WhereBuilder) resolveFields(root *condition.ValuesGroup) (map[string]FieldConfig, error) {
	resolved := make(map[string]FieldConfig)
	for _, name := range usedFields(root) {
		cfg, err := wb.fields.Resolve(name)
		if err != nil {
			return nil, err
		}
		resolved[name] = cfg
	}
	return resolved, nil
}

// usedFields returns the fields holding values, in render order.
func usedFields(root *condition.ValuesGroup) []string {
	var names []string
	seen := make(map[string]bool)
	var walk func(*condition.ValuesGroup)
	walk = func(g *condition.ValuesGroup) {
		for _, child := range g.Groups() {
			walk(child)
		}
		for _, name := range g.Fields() {
			if !seen[name] && g.Field(name).Count() > 0 {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	walk(root)
	return names
}

// SearchCondition returns the condition the builder renders.
func (wb *WhereBuilder) SearchCondition() *condition.SearchCondition { return wb.cond }

// EntityManager returns the storage session of the builder.
func (wb *WhereBuilder) EntityManager() EntityManager { return wb.em }

// FieldsConfig returns a snapshot of the configured fields.
func (wb *WhereBuilder) FieldsConfig() []FieldConfig { return wb.fields.Fields() }
