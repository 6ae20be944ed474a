// Package input decodes search conditions from YAML (or JSON) documents.
//
// A document describes the root group:
//
//	logical-case: AND
//	fields:
//	  customerType:
//	    simple-values: [vip, gold]
//	  id:
//	    ranges:
//	      - {lower: 1, upper: 10, inclusive-upper: false}
//	    comparisons:
//	      - {operator: ">", value: 100}
//	  name:
//	    pattern-matchers:
//	      - {type: starts-with, value: Jo, case-insensitive: true}
//	groups:
//	  - logical-case: OR
//	    negated: true
//	    fields: {...}
//
// Unknown fields and limit violations fail the decoding. Invalid values are
// recorded as errors on the values bag, so the resulting condition reports
// HasErrors(true).
package input

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	veloxsearch "github.com/syssam/velox-search"
	"github.com/syssam/velox-search/condition"
)

// Default limits.
const (
	DefaultMaxNestingLevel = 100
	DefaultMaxValues       = 10000
)

var (
	// ErrNestingLevel is returned when groups are nested deeper than allowed.
	ErrNestingLevel = errors.New("input: maximum nesting level exceeded")

	// ErrValuesOverflow is returned when a field holds more values than allowed.
	ErrValuesOverflow = errors.New("input: maximum number of values exceeded")
)

// Processor decodes condition documents.
type Processor struct {
	maxNestingLevel int
	maxValues       int
}

// Option configures a Processor.
type Option func(*Processor)

// WithMaxNestingLevel sets the maximum depth of nested groups.
func WithMaxNestingLevel(n int) Option {
	return func(p *Processor) { p.maxNestingLevel = n }
}

// WithMaxValues sets the maximum number of values per field and group.
func WithMaxValues(n int) Option {
	return func(p *Processor) { p.maxValues = n }
}

// NewProcessor returns a Processor with the default limits.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		maxNestingLevel: DefaultMaxNestingLevel,
		maxValues:       DefaultMaxValues,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process decodes data with a default Processor.
func Process(fs *condition.FieldSet, data []byte) (*condition.SearchCondition, error) {
	return NewProcessor().Process(fs, data)
}

// Process decodes a condition document for the given FieldSet. An empty
// document yields an empty condition.
func (p *Processor) Process(fs *condition.FieldSet, data []byte) (*condition.SearchCondition, error) {
	var doc groupDoc
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return condition.New(fs, nil), nil
		}
		return nil, fmt.Errorf("input: decode condition: %w", err)
	}
	group, err := p.group(fs, &doc, "", 0)
	if err != nil {
		return nil, err
	}
	return condition.New(fs, group), nil
}

type groupDoc struct {
	LogicalCase string     `yaml:"logical-case"`
	Negated     bool       `yaml:"negated"`
	Fields      yaml.Node  `yaml:"fields"`
	Groups      []groupDoc `yaml:"groups"`
}

type fieldDoc struct {
	SimpleValues         []any        `yaml:"simple-values"`
	ExcludedSimpleValues []any        `yaml:"excluded-simple-values"`
	Ranges               []rangeDoc   `yaml:"ranges"`
	ExcludedRanges       []rangeDoc   `yaml:"excluded-ranges"`
	Comparisons          []compareDoc `yaml:"comparisons"`
	PatternMatchers      []patternDoc `yaml:"pattern-matchers"`
}

type rangeDoc struct {
	Lower          any   `yaml:"lower"`
	Upper          any   `yaml:"upper"`
	InclusiveLower *bool `yaml:"inclusive-lower"`
	InclusiveUpper *bool `yaml:"inclusive-upper"`
}

type compareDoc struct {
	Operator string `yaml:"operator"`
	Value    any    `yaml:"value"`
}

type patternDoc struct {
	Type            string `yaml:"type"`
	Value           string `yaml:"value"`
	CaseInsensitive bool   `yaml:"case-insensitive"`
	Negated         bool   `yaml:"negated"`
}

func (p *Processor) group(fs *condition.FieldSet, doc *groupDoc, path string, level int) (*condition.ValuesGroup, error) {
	if level > p.maxNestingLevel {
		return nil, fmt.Errorf("%w: %s is nested %d levels deep (max %d)", ErrNestingLevel, pathOrRoot(path), level, p.maxNestingLevel)
	}
	group := condition.NewValuesGroup(condition.And)
	logical, err := condition.ParseLogical(doc.LogicalCase)
	if err != nil {
		group.AddError(veloxsearch.ValuesError{Path: path + "[logical-case]", Message: err.Error()})
	} else {
		group.SetLogical(logical)
	}
	group.SetNegated(doc.Negated)

	if err := p.fields(fs, group, &doc.Fields, path); err != nil {
		return nil, err
	}
	for i := range doc.Groups {
		child, err := p.group(fs, &doc.Groups[i], fmt.Sprintf("%s[groups][%d]", path, i), level+1)
		if err != nil {
			return nil, err
		}
		group.AddGroup(child)
	}
	return group, nil
}

func (p *Processor) fields(fs *condition.FieldSet, group *condition.ValuesGroup, node *yaml.Node, path string) error {
	if node.Kind == 0 {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("input: %s[fields] must be a mapping (line %d)", path, node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		if !fs.Has(name) {
			return veloxsearch.NewUnknownFieldError(name, fs.Name())
		}
		var doc fieldDoc
		if err := node.Content[i+1].Decode(&doc); err != nil {
			return fmt.Errorf("input: decode field %q: %w", name, err)
		}
		bag := group.Field(name)
		if bag == nil {
			bag = condition.NewValuesBag()
			group.AddField(name, bag)
		}
		p.values(bag, &doc, fmt.Sprintf("%s[%s]", path, name))
		if bag.Count() > p.maxValues {
			return fmt.Errorf("%w: field %q has %d values (max %d)", ErrValuesOverflow, name, bag.Count(), p.maxValues)
		}
	}
	return nil
}

func (p *Processor) values(bag *condition.ValuesBag, doc *fieldDoc, path string) {
	for _, v := range doc.SimpleValues {
		bag.AddSimpleValue(v)
	}
	for _, v := range doc.ExcludedSimpleValues {
		bag.AddExcludedSimpleValue(v)
	}
	for i, r := range doc.Ranges {
		if rng, msg := toRange(r); msg != "" {
			bag.AddError(veloxsearch.ValuesError{Path: fmt.Sprintf("%s[ranges][%d]", path, i), Message: msg})
		} else {
			bag.AddRange(rng)
		}
	}
	for i, r := range doc.ExcludedRanges {
		if rng, msg := toRange(r); msg != "" {
			bag.AddError(veloxsearch.ValuesError{Path: fmt.Sprintf("%s[excluded-ranges][%d]", path, i), Message: msg})
		} else {
			bag.AddExcludedRange(rng)
		}
	}
	for i, c := range doc.Comparisons {
		op, err := condition.ParseOperator(c.Operator)
		if err != nil {
			bag.AddError(veloxsearch.ValuesError{Path: fmt.Sprintf("%s[comparisons][%d]", path, i), Message: err.Error()})
			continue
		}
		bag.AddComparison(condition.Compare{Operator: op, Value: c.Value})
	}
	for i, m := range doc.PatternMatchers {
		t, err := condition.ParsePatternType(m.Type)
		if err != nil {
			bag.AddError(veloxsearch.ValuesError{Path: fmt.Sprintf("%s[pattern-matchers][%d]", path, i), Message: err.Error()})
			continue
		}
		bag.AddPatternMatch(condition.PatternMatch{
			Type:            t,
			Value:           m.Value,
			CaseInsensitive: m.CaseInsensitive,
			Negated:         m.Negated,
		})
	}
}

func toRange(r rangeDoc) (condition.Range, string) {
	if r.Lower == nil || r.Upper == nil {
		return condition.Range{}, "range requires both a lower and an upper value"
	}
	if lo, hi, ok := numbers(r.Lower, r.Upper); ok && lo > hi {
		return condition.Range{}, fmt.Sprintf("lower range-value %v must be lower than upper range-value %v", r.Lower, r.Upper)
	}
	return condition.Range{
		Lower:          r.Lower,
		Upper:          r.Upper,
		ExclusiveLower: r.InclusiveLower != nil && !*r.InclusiveLower,
		ExclusiveUpper: r.InclusiveUpper != nil && !*r.InclusiveUpper,
	}, ""
}

func numbers(a, b any) (float64, float64, bool) {
	x, ok := number(a)
	if !ok {
		return 0, 0, false
	}
	y, ok := number(b)
	return x, y, ok
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func pathOrRoot(path string) string {
	if path == "" {
		return "root group"
	}
	return path
}
