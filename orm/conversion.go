package orm

// ConversionHints describe the field a converter is applied to.
type ConversionHints struct {
	Field       string // search field name
	Column      string // qualified column, e.g. "c.type"
	MappingType string
	Dialect     string
}

// ValueConverter renders a value as a query-language literal.
type ValueConverter interface {
	ConvertValue(value any, hints ConversionHints) (string, error)
}

// SQLFieldConverter wraps the column expression of a field.
type SQLFieldConverter interface {
	ConvertSQLField(column string, hints ConversionHints) (string, error)
}

// The ValueConverterFunc type is an adapter to allow the use of ordinary
// functions as ValueConverter.
type ValueConverterFunc func(value any, hints ConversionHints) (string, error)

// ConvertValue calls f(value, hints).
func (f ValueConverterFunc) ConvertValue(value any, hints ConversionHints) (string, error) {
	return f(value, hints)
}

// The SQLFieldConverterFunc type is an adapter to allow the use of ordinary
// functions as SQLFieldConverter.
type SQLFieldConverterFunc func(column string, hints ConversionHints) (string, error)

// ConvertSQLField calls f(column, hints).
func (f SQLFieldConverterFunc) ConvertSQLField(column string, hints ConversionHints) (string, error) {
	return f(column, hints)
}

// PatternConverter is implemented by value converters that also rewrite the
// text of LIKE patterns, e.g. to match a column their SQL side lower-cases.
// The pattern is converted before wildcard escaping.
type PatternConverter interface {
	ConvertPattern(pattern string, hints ConversionHints) (string, error)
}
