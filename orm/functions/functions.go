// Package functions provides the query functions used by generated search
// clauses: a text cast of a column, a lower-casing of a value, and the
// case-insensitive match of a column.
//
// Each function takes exactly one argument and renders for the dialect of
// the SQL walker:
//
//	RW_SEARCH_FIELD_CONVERSION(c.id)    CAST(c.id AS TEXT)
//	RW_SEARCH_VALUE_CONVERSION('Jo%')   LOWER('Jo%')
//	RW_SEARCH_MATCH(c.name)             LOWER(CAST(c.name AS TEXT))
package functions

import (
	"github.com/syssam/velox-search/dialect"
	"github.com/syssam/velox-search/dialect/sql"
	"github.com/syssam/velox-search/querylanguage"
)

// Function names.
const (
	FieldConversionName = "RW_SEARCH_FIELD_CONVERSION"
	ValueConversionName = "RW_SEARCH_VALUE_CONVERSION"
	MatchName           = "RW_SEARCH_MATCH"
)

// Definition pairs a function name with its factory.
type Definition struct {
	Name    string
	Factory querylanguage.FunctionFactory
}

// Definitions returns the search functions in registration order.
func Definitions() []Definition {
	return []Definition{
		{Name: FieldConversionName, Factory: NewFieldConversion},
		{Name: ValueConversionName, Factory: NewValueConversion},
		{Name: MatchName, Factory: NewValueMatch},
	}
}

// singleArgument parses IDENT "(" StringPrimary ")".
type singleArgument struct {
	arg querylanguage.Node
}

func (f *singleArgument) Parse(p *querylanguage.Parser) (err error) {
	if _, err = p.Match(querylanguage.TokenIdentifier); err != nil {
		return err
	}
	if _, err = p.Match(querylanguage.TokenOpenParenthesis); err != nil {
		return err
	}
	if f.arg, err = p.StringPrimary(); err != nil {
		return err
	}
	_, err = p.Match(querylanguage.TokenCloseParenthesis)
	return err
}

// FieldConversion casts its argument to text.
type FieldConversion struct{ singleArgument }

// NewFieldConversion is the FunctionFactory of FieldConversion.
func NewFieldConversion(string) querylanguage.FunctionNode { return &FieldConversion{} }

// SQL implements querylanguage.FunctionNode.
func (f *FieldConversion) SQL(w *querylanguage.SQLWalker) (string, error) {
	x, err := w.Walk(f.arg)
	if err != nil {
		return "", err
	}
	return "CAST(" + x + " AS " + sql.TextType(w.Dialect()) + ")", nil
}

// ValueConversion lower-cases its argument.
type ValueConversion struct{ singleArgument }

// NewValueConversion is the FunctionFactory of ValueConversion.
func NewValueConversion(string) querylanguage.FunctionNode { return &ValueConversion{} }

// SQL implements querylanguage.FunctionNode.
func (f *ValueConversion) SQL(w *querylanguage.SQLWalker) (string, error) {
	x, err := w.Walk(f.arg)
	if err != nil {
		return "", err
	}
	return "LOWER(" + x + ")", nil
}

// ValueMatch lower-cases the text form of its argument.
type ValueMatch struct{ singleArgument }

// NewValueMatch is the FunctionFactory of ValueMatch.
func NewValueMatch(string) querylanguage.FunctionNode { return &ValueMatch{} }

// SQL implements querylanguage.FunctionNode.
func (f *ValueMatch) SQL(w *querylanguage.SQLWalker) (string, error) {
	x, err := w.Walk(f.arg)
	if err != nil {
		return "", err
	}
	// SQLite compares any value as text.
	if w.Dialect() == dialect.SQLite {
		return "LOWER(" + x + ")", nil
	}
	return "LOWER(CAST(" + x + " AS " + sql.TextType(w.Dialect()) + "))", nil
}
