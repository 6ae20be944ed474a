package condition

import veloxsearch "github.com/syssam/velox-search"

// ValuesBag holds the values of one field inside a ValuesGroup.
type ValuesBag struct {
	simple         []any
	excludedSimple []any
	ranges         []Range
	excludedRanges []Range
	comparisons    []Compare
	patterns       []PatternMatch
	errors         []veloxsearch.ValuesError
}

// NewValuesBag returns an empty ValuesBag.
func NewValuesBag() *ValuesBag { return &ValuesBag{} }

// AddSimpleValue adds a value the field must equal.
func (b *ValuesBag) AddSimpleValue(v any) *ValuesBag {
	b.simple = append(b.simple, v)
	return b
}

// AddExcludedSimpleValue adds a value the field must not equal.
func (b *ValuesBag) AddExcludedSimpleValue(v any) *ValuesBag {
	b.excludedSimple = append(b.excludedSimple, v)
	return b
}

// AddRange adds a range the field must be in.
func (b *ValuesBag) AddRange(r Range) *ValuesBag {
	b.ranges = append(b.ranges, r)
	return b
}

// AddExcludedRange adds a range the field must not be in.
func (b *ValuesBag) AddExcludedRange(r Range) *ValuesBag {
	b.excludedRanges = append(b.excludedRanges, r)
	return b
}

// AddComparison adds a comparison.
func (b *ValuesBag) AddComparison(c Compare) *ValuesBag {
	b.comparisons = append(b.comparisons, c)
	return b
}

// AddPatternMatch adds a pattern match.
func (b *ValuesBag) AddPatternMatch(p PatternMatch) *ValuesBag {
	b.patterns = append(b.patterns, p)
	return b
}

// AddError records an invalid value.
func (b *ValuesBag) AddError(err veloxsearch.ValuesError) *ValuesBag {
	b.errors = append(b.errors, err)
	return b
}

func (b *ValuesBag) SimpleValues() []any            { return b.simple }
func (b *ValuesBag) ExcludedSimpleValues() []any    { return b.excludedSimple }
func (b *ValuesBag) Ranges() []Range                { return b.ranges }
func (b *ValuesBag) ExcludedRanges() []Range        { return b.excludedRanges }
func (b *ValuesBag) Comparisons() []Compare         { return b.comparisons }
func (b *ValuesBag) PatternMatches() []PatternMatch { return b.patterns }

// Errors returns the recorded value errors.
func (b *ValuesBag) Errors() []veloxsearch.ValuesError { return b.errors }

// HasErrors reports whether any value error was recorded.
func (b *ValuesBag) HasErrors() bool { return len(b.errors) > 0 }

// Count returns the number of values in the bag, errors excluded.
func (b *ValuesBag) Count() int {
	return len(b.simple) + len(b.excludedSimple) + len(b.ranges) +
		len(b.excludedRanges) + len(b.comparisons) + len(b.patterns)
}

// ValuesGroup is a node of the condition tree. Its nested groups and field
// bags are joined with the group's logical connector.
type ValuesGroup struct {
	logical Logical
	negated bool
	groups  []*ValuesGroup
	fields  []string
	bags    map[string]*ValuesBag
	errors  []veloxsearch.ValuesError
}

// NewValuesGroup returns an empty group with the given connector.
func NewValuesGroup(logical Logical) *ValuesGroup {
	if logical == "" {
		logical = And
	}
	return &ValuesGroup{logical: logical, bags: make(map[string]*ValuesBag)}
}

// Logical returns the connector of the group.
func (g *ValuesGroup) Logical() Logical { return g.logical }

// SetLogical sets the connector of the group.
func (g *ValuesGroup) SetLogical(l Logical) *ValuesGroup {
	g.logical = l
	return g
}

// IsNegated reports whether the group is negated.
func (g *ValuesGroup) IsNegated() bool { return g.negated }

// SetNegated marks the group as negated.
func (g *ValuesGroup) SetNegated(negated bool) *ValuesGroup {
	g.negated = negated
	return g
}

// AddGroup appends a nested group.
func (g *ValuesGroup) AddGroup(child *ValuesGroup) *ValuesGroup {
	g.groups = append(g.groups, child)
	return g
}

// Groups returns the nested groups.
func (g *ValuesGroup) Groups() []*ValuesGroup { return g.groups }

// AddField sets the values of a field. Setting a field twice replaces the
// bag and keeps the original position. A nil bag is stored as an empty one.
func (g *ValuesGroup) AddField(name string, bag *ValuesBag) *ValuesGroup {
	if bag == nil {
		bag = NewValuesBag()
	}
	if _, ok := g.bags[name]; !ok {
		g.fields = append(g.fields, name)
	}
	g.bags[name] = bag
	return g
}

// HasField reports whether the group holds values for the field.
func (g *ValuesGroup) HasField(name string) bool {
	_, ok := g.bags[name]
	return ok
}

// Field returns the values of a field, or nil.
func (g *ValuesGroup) Field(name string) *ValuesBag { return g.bags[name] }

// Fields returns the field names in insertion order.
func (g *ValuesGroup) Fields() []string { return g.fields }

// AddError records a group-level error.
func (g *ValuesGroup) AddError(err veloxsearch.ValuesError) *ValuesGroup {
	g.errors = append(g.errors, err)
	return g
}

// Errors returns the group-level errors.
func (g *ValuesGroup) Errors() []veloxsearch.ValuesError { return g.errors }

// HasErrors reports whether the group or any of its bags has errors. With
// recursive set, nested groups are checked too.
func (g *ValuesGroup) HasErrors(recursive bool) bool {
	if len(g.errors) > 0 {
		return true
	}
	for _, bag := range g.bags {
		if bag.HasErrors() {
			return true
		}
	}
	if !recursive {
		return false
	}
	for _, child := range g.groups {
		if child.HasErrors(true) {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the group holds no values, recursively.
func (g *ValuesGroup) IsEmpty() bool {
	for _, bag := range g.bags {
		if bag.Count() > 0 {
			return false
		}
	}
	for _, child := range g.groups {
		if !child.IsEmpty() {
			return false
		}
	}
	return true
}
