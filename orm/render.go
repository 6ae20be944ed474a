package orm

import (
	"fmt"
	"strings"

	veloxsearch "github.com/syssam/velox-search"
	"github.com/syssam/velox-search/condition"
	"github.com/syssam/velox-search/orm/functions"
)

// likeEscape is the escape character of rendered LIKE patterns.
const likeEscape = "!"

var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// textTypes are matched by LIKE without a text conversion.
var textTypes = map[string]bool{
	"":        true,
	"string":  true,
	"text":    true,
	"varchar": true,
	"char":    true,
}

type renderer struct {
	dialect string
	fields  map[string]FieldConfig
}

// group renders a group without its own negation. It reports whether the
// result joins more than one part.
func (r *renderer) group(g *condition.ValuesGroup) (string, bool, error) {
	type part struct {
		s        string
		compound bool
	}
	var parts []part
	for _, child := range g.Groups() {
		s, _, err := r.group(child)
		if err != nil {
			return "", false, err
		}
		if s == "" {
			continue
		}
		if child.IsNegated() {
			parts = append(parts, part{s: "NOT (" + s + ")"})
		} else {
			parts = append(parts, part{s: "(" + s + ")"})
		}
	}
	for _, name := range g.Fields() {
		bag := g.Field(name)
		if bag.Count() == 0 {
			continue
		}
		s, compound, err := r.bag(r.fields[name], bag)
		if err != nil {
			return "", false, err
		}
		if s != "" {
			parts = append(parts, part{s: s, compound: compound})
		}
	}
	switch len(parts) {
	case 0:
		return "", false, nil
	case 1:
		return parts[0].s, parts[0].compound, nil
	}
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = p.s
		if p.compound {
			out[i] = "(" + p.s + ")"
		}
	}
	return strings.Join(out, " "+g.Logical().String()+" "), true, nil
}

// bag renders the values of one field: inclusions are joined by OR,
// exclusions by AND, and both sides by AND.
func (r *renderer) bag(cfg FieldConfig, bag *condition.ValuesBag) (string, bool, error) {
	column, err := r.column(cfg)
	if err != nil {
		return "", false, err
	}
	var incl, excl []string
	for _, v := range bag.SimpleValues() {
		lit, err := r.literal(cfg, v)
		if err != nil {
			return "", false, err
		}
		incl = append(incl, column+" = "+lit)
	}
	for _, v := range bag.ExcludedSimpleValues() {
		lit, err := r.literal(cfg, v)
		if err != nil {
			return "", false, err
		}
		excl = append(excl, "NOT ("+column+" = "+lit+")")
	}
	for _, rng := range bag.Ranges() {
		s, err := r.rangeExpr(cfg, column, rng)
		if err != nil {
			return "", false, err
		}
		incl = append(incl, "("+s+")")
	}
	for _, rng := range bag.ExcludedRanges() {
		s, err := r.rangeExpr(cfg, column, rng)
		if err != nil {
			return "", false, err
		}
		excl = append(excl, "NOT ("+s+")")
	}
	for _, c := range bag.Comparisons() {
		if !c.Operator.Valid() {
			return "", false, fmt.Errorf("orm: field %q: invalid comparison operator %q", cfg.FieldName, c.Operator)
		}
		lit, err := r.literal(cfg, c.Value)
		if err != nil {
			return "", false, err
		}
		s := column + " " + string(c.Operator) + " " + lit
		if c.Operator.Excludes() {
			excl = append(excl, s)
		} else {
			incl = append(incl, s)
		}
	}
	for _, p := range bag.PatternMatches() {
		s, err := r.pattern(cfg, column, p)
		if err != nil {
			return "", false, err
		}
		if p.Negated {
			excl = append(excl, "NOT ("+s+")")
		} else {
			incl = append(incl, s)
		}
	}
	switch {
	case len(incl) > 0 && len(excl) > 0:
		return wrap(incl, " OR ") + " AND " + wrap(excl, " AND "), true, nil
	case len(incl) > 0:
		return strings.Join(incl, " OR "), len(incl) > 1, nil
	default:
		return strings.Join(excl, " AND "), len(excl) > 1, nil
	}
}

func wrap(parts []string, sep string) string {
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, sep) + ")"
}

func (r *renderer) hints(cfg FieldConfig) ConversionHints {
	return ConversionHints{
		Field:       cfg.FieldName,
		Column:      cfg.Column(),
		MappingType: cfg.MappingType,
		Dialect:     r.dialect,
	}
}

// column returns the column expression, wrapped by the SQL converter.
func (r *renderer) column(cfg FieldConfig) (string, error) {
	if cfg.SQLConverter == nil {
		return cfg.Column(), nil
	}
	s, err := cfg.SQLConverter.ConvertSQLField(cfg.Column(), r.hints(cfg))
	if err != nil {
		return "", veloxsearch.NewConversionError(cfg.FieldName, "sql", err)
	}
	return s, nil
}

// literal renders a value, through the value converter when set.
func (r *renderer) literal(cfg FieldConfig, v any) (string, error) {
	if cfg.ValueConverter != nil {
		s, err := cfg.ValueConverter.ConvertValue(v, r.hints(cfg))
		if err != nil {
			return "", veloxsearch.NewConversionError(cfg.FieldName, "value", err)
		}
		return s, nil
	}
	s, err := Literal(v, cfg.MappingType)
	if err != nil {
		return "", fmt.Errorf("orm: field %q: %w", cfg.FieldName, err)
	}
	return s, nil
}

func (r *renderer) rangeExpr(cfg FieldConfig, column string, rng condition.Range) (string, error) {
	lower, err := r.literal(cfg, rng.Lower)
	if err != nil {
		return "", err
	}
	upper, err := r.literal(cfg, rng.Upper)
	if err != nil {
		return "", err
	}
	lop, uop := ">=", "<="
	if rng.ExclusiveLower {
		lop = ">"
	}
	if rng.ExclusiveUpper {
		uop = "<"
	}
	return column + " " + lop + " " + lower + " AND " + column + " " + uop + " " + upper, nil
}

// pattern renders a pattern match without its negation.
func (r *renderer) pattern(cfg FieldConfig, column string, p condition.PatternMatch) (string, error) {
	if p.Type == condition.PatternEquals {
		lit, err := r.literal(cfg, p.Value)
		if err != nil {
			return "", err
		}
		if p.CaseInsensitive {
			return call(functions.MatchName, column) + " = " + call(functions.ValueConversionName, lit), nil
		}
		return column + " = " + lit, nil
	}
	value := p.Value
	if pc, ok := cfg.ValueConverter.(PatternConverter); ok {
		v, err := pc.ConvertPattern(value, r.hints(cfg))
		if err != nil {
			return "", veloxsearch.NewConversionError(cfg.FieldName, "value", err)
		}
		value = v
	}
	var pattern string
	escaped := likeEscaper.Replace(value)
	switch p.Type {
	case condition.PatternContains:
		pattern = "%" + escaped + "%"
	case condition.PatternStartsWith:
		pattern = escaped + "%"
	case condition.PatternEndsWith:
		pattern = "%" + escaped
	default:
		return "", fmt.Errorf("orm: field %q: invalid pattern type %q", cfg.FieldName, p.Type)
	}
	suffix := " ESCAPE " + QuoteString(likeEscape)
	if p.CaseInsensitive {
		return call(functions.MatchName, column) + " LIKE " + call(functions.ValueConversionName, QuoteString(pattern)) + suffix, nil
	}
	if !textTypes[strings.ToLower(cfg.MappingType)] && cfg.SQLConverter == nil {
		column = call(functions.FieldConversionName, column)
	}
	return column + " LIKE " + QuoteString(pattern) + suffix, nil
}

func call(name, arg string) string {
	return name + "(" + arg + ")"
}
