package condition

import (
	"fmt"
	"strings"
)

// Logical is the connector used to join the children of a ValuesGroup.
type Logical string

// Logical connectors.
const (
	And Logical = "AND"
	Or  Logical = "OR"
)

// String implements the fmt.Stringer interface.
func (l Logical) String() string {
	if l == "" {
		return string(And)
	}
	return string(l)
}

// ParseLogical parses a connector name case-insensitively. An empty name
// yields And.
func ParseLogical(s string) (Logical, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "AND":
		return And, nil
	case "OR":
		return Or, nil
	default:
		return "", fmt.Errorf("condition: invalid logical case %q", s)
	}
}

// Range is a value range. Both bounds are inclusive unless marked exclusive.
type Range struct {
	Lower          any
	Upper          any
	ExclusiveLower bool
	ExclusiveUpper bool
}

// Operator is a comparison operator.
type Operator string

// Comparison operators.
const (
	LessThan           Operator = "<"
	LessThanOrEqual    Operator = "<="
	NotEqual           Operator = "<>"
	GreaterThan        Operator = ">"
	GreaterThanOrEqual Operator = ">="
)

// Valid reports whether the operator is known.
func (o Operator) Valid() bool {
	switch o {
	case LessThan, LessThanOrEqual, NotEqual, GreaterThan, GreaterThanOrEqual:
		return true
	}
	return false
}

// Excludes reports whether the operator selects by exclusion.
func (o Operator) Excludes() bool { return o == NotEqual }

// ParseOperator parses a comparison operator. "!=" is accepted as an alias of "<>".
func ParseOperator(s string) (Operator, error) {
	op := Operator(strings.TrimSpace(s))
	if op == "!=" {
		op = NotEqual
	}
	if !op.Valid() {
		return "", fmt.Errorf("condition: invalid comparison operator %q", s)
	}
	return op, nil
}

// Compare is a comparison of the field against a value.
type Compare struct {
	Operator Operator
	Value    any
}

// PatternType is the kind of a pattern match.
type PatternType string

// Pattern types.
const (
	PatternContains   PatternType = "contains"
	PatternStartsWith PatternType = "starts-with"
	PatternEndsWith   PatternType = "ends-with"
	PatternEquals     PatternType = "equals"
)

// Valid reports whether the pattern type is known.
func (t PatternType) Valid() bool {
	switch t {
	case PatternContains, PatternStartsWith, PatternEndsWith, PatternEquals:
		return true
	}
	return false
}

// ParsePatternType parses a pattern type name. Underscores and case are ignored,
// so "STARTS_WITH" and "starts-with" are equal.
func ParsePatternType(s string) (PatternType, error) {
	t := PatternType(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	if !t.Valid() {
		return "", fmt.Errorf("condition: invalid pattern type %q", s)
	}
	return t, nil
}

// PatternMatch matches the text of a field against a pattern.
type PatternMatch struct {
	Type            PatternType
	Value           string
	CaseInsensitive bool
	Negated         bool
}
