package condition

import (
	"errors"

	veloxsearch "github.com/syssam/velox-search"
)

// Builder builds a SearchCondition with a fluent API.
//
//	cond, err := condition.NewBuilder(fs, condition.And).
//		Field("customerType").SimpleValue("vip").End().
//		Group(condition.Or).
//			Field("id").Range(1, 10).End().
//			Field("id").Compare(condition.GreaterThan, 100).End().
//		End().
//		Build()
type Builder struct {
	fs    *FieldSet
	root  *ValuesGroup
	stack []*ValuesGroup
	errs  []error
}

// NewBuilder returns a Builder whose root group uses the given connector.
func NewBuilder(fs *FieldSet, logical Logical) *Builder {
	root := NewValuesGroup(logical)
	return &Builder{fs: fs, root: root, stack: []*ValuesGroup{root}}
}

func (b *Builder) current() *ValuesGroup { return b.stack[len(b.stack)-1] }

// Negate marks the current group as negated.
func (b *Builder) Negate() *Builder {
	b.current().SetNegated(true)
	return b
}

// Group opens a nested group. It must be closed with End.
func (b *Builder) Group(logical Logical) *Builder {
	g := NewValuesGroup(logical)
	b.current().AddGroup(g)
	b.stack = append(b.stack, g)
	return b
}

// End closes the current nested group.
func (b *Builder) End() *Builder {
	if len(b.stack) == 1 {
		b.errs = append(b.errs, errors.New("condition: End called on the root group"))
		return b
	}
	b.stack = b.stack[:len(b.stack)-1]
	return b
}

// Field returns a builder for the values of the named field in the current
// group. Values of a field referenced twice in one group are merged.
func (b *Builder) Field(name string) *FieldBuilder {
	if !b.fs.Has(name) {
		b.errs = append(b.errs, veloxsearch.NewUnknownFieldError(name, b.fs.Name()))
		return &FieldBuilder{b: b, bag: NewValuesBag()}
	}
	g := b.current()
	bag := g.Field(name)
	if bag == nil {
		bag = NewValuesBag()
		g.AddField(name, bag)
	}
	return &FieldBuilder{b: b, bag: bag}
}

// Build returns the condition, or the errors collected while building.
func (b *Builder) Build() (*SearchCondition, error) {
	if len(b.stack) != 1 {
		b.errs = append(b.errs, errors.New("condition: unclosed group"))
	}
	if err := veloxsearch.NewAggregateError(b.errs...); err != nil {
		return nil, err
	}
	return New(b.fs, b.root), nil
}

// FieldBuilder adds values to one field bag.
type FieldBuilder struct {
	b   *Builder
	bag *ValuesBag
}

func (f *FieldBuilder) SimpleValue(v any) *FieldBuilder {
	f.bag.AddSimpleValue(v)
	return f
}

func (f *FieldBuilder) ExcludedSimpleValue(v any) *FieldBuilder {
	f.bag.AddExcludedSimpleValue(v)
	return f
}

// Range adds an inclusive range.
func (f *FieldBuilder) Range(lower, upper any) *FieldBuilder {
	f.bag.AddRange(Range{Lower: lower, Upper: upper})
	return f
}

// ExcludedRange adds an inclusive excluded range.
func (f *FieldBuilder) ExcludedRange(lower, upper any) *FieldBuilder {
	f.bag.AddExcludedRange(Range{Lower: lower, Upper: upper})
	return f
}

// AddRange adds a range with explicit bounds.
func (f *FieldBuilder) AddRange(r Range) *FieldBuilder {
	f.bag.AddRange(r)
	return f
}

func (f *FieldBuilder) AddExcludedRange(r Range) *FieldBuilder {
	f.bag.AddExcludedRange(r)
	return f
}

func (f *FieldBuilder) Compare(op Operator, v any) *FieldBuilder {
	f.bag.AddComparison(Compare{Operator: op, Value: v})
	return f
}

func (f *FieldBuilder) Pattern(t PatternType, v string) *FieldBuilder {
	f.bag.AddPatternMatch(PatternMatch{Type: t, Value: v})
	return f
}

func (f *FieldBuilder) AddPatternMatch(p PatternMatch) *FieldBuilder {
	f.bag.AddPatternMatch(p)
	return f
}

// End returns to the group builder.
func (f *FieldBuilder) End() *Builder { return f.b }

