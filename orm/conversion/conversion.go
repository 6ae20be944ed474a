// Package conversion provides stock converters for where-builder fields.
package conversion

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/velox-search/orm"
)

// SQLFunction wraps the column in a call of the named query function, e.g.
// SQLFunction("get_customer_type") renders get_customer_type(c.type).
type SQLFunction string

// ConvertSQLField implements orm.SQLFieldConverter.
func (f SQLFunction) ConvertSQLField(column string, _ orm.ConversionHints) (string, error) {
	if f == "" {
		return "", fmt.Errorf("conversion: empty function name")
	}
	return string(f) + "(" + column + ")", nil
}

// LowerCase compares fields case-insensitively: the column is wrapped in
// LOWER and string values and LIKE patterns are lower-cased. The zero value uses language
// independent casing rules.
type LowerCase struct {
	tag language.Tag
}

// NewLowerCase returns a LowerCase converter using the casing rules of tag.
func NewLowerCase(tag language.Tag) *LowerCase {
	return &LowerCase{tag: tag}
}

// ConvertSQLField implements orm.SQLFieldConverter.
func (*LowerCase) ConvertSQLField(column string, _ orm.ConversionHints) (string, error) {
	return "LOWER(" + column + ")", nil
}

// ConvertValue implements orm.ValueConverter.
func (c *LowerCase) ConvertValue(value any, hints orm.ConversionHints) (string, error) {
	s, ok := value.(string)
	if !ok {
		return orm.Literal(value, hints.MappingType)
	}
	// A Caser is stateful, so each call gets its own.
	return orm.QuoteString(cases.Lower(c.tag).String(s)), nil
}

// ConvertPattern implements orm.PatternConverter.
func (c *LowerCase) ConvertPattern(pattern string, _ orm.ConversionHints) (string, error) {
	return cases.Lower(c.tag).String(pattern), nil
}

// UUID normalizes UUID values to their canonical form.
type UUID struct{}

// ConvertValue implements orm.ValueConverter.
func (UUID) ConvertValue(value any, _ orm.ConversionHints) (string, error) {
	switch v := value.(type) {
	case uuid.UUID:
		return orm.QuoteString(v.String()), nil
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return "", fmt.Errorf("conversion: invalid uuid %q: %w", v, err)
		}
		return orm.QuoteString(id.String()), nil
	case []byte:
		id, err := uuid.FromBytes(v)
		if err != nil {
			return "", fmt.Errorf("conversion: invalid uuid bytes: %w", err)
		}
		return orm.QuoteString(id.String()), nil
	default:
		return "", fmt.Errorf("conversion: unsupported uuid value %T", value)
	}
}

// DateOnly renders time values and RFC 3339 strings as dates.
type DateOnly struct{}

// ConvertValue implements orm.ValueConverter.
func (DateOnly) ConvertValue(value any, _ orm.ConversionHints) (string, error) {
	switch v := value.(type) {
	case time.Time:
		return orm.QuoteString(v.Format(time.DateOnly)), nil
	case string:
		for _, layout := range []string{time.DateOnly, time.RFC3339, time.DateTime} {
			if t, err := time.Parse(layout, v); err == nil {
				return orm.QuoteString(t.Format(time.DateOnly)), nil
			}
		}
		return "", fmt.Errorf("conversion: invalid date %q", v)
	default:
		return "", fmt.Errorf("conversion: unsupported date value %T", value)
	}
}

var (
	mu       sync.RWMutex
	registry = map[string]func(arg string) (any, error){
		"lower": func(arg string) (any, error) {
			tag := language.Und
			if arg != "" {
				t, err := language.Parse(arg)
				if err != nil {
					return nil, fmt.Errorf("conversion: lower: %w", err)
				}
				tag = t
			}
			return NewLowerCase(tag), nil
		},
		"uuid": func(string) (any, error) { return UUID{}, nil },
		"date": func(string) (any, error) { return DateOnly{}, nil },
		"func": func(arg string) (any, error) {
			if arg == "" {
				return nil, fmt.Errorf("conversion: func requires a function name")
			}
			return SQLFunction(arg), nil
		},
	}
)

// Register adds a named converter constructor for Lookup. A registered name
// replaces an earlier one.
func Register(name string, ctor func(arg string) (any, error)) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(name)] = ctor
}

// Lookup returns a converter by reference "name" or "name:arg", e.g.
// "lower", "lower:tr", "uuid", "date" or "func:get_customer_type".
func Lookup(ref string) (any, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(ref), ":")
	mu.RLock()
	ctor, ok := registry[strings.ToLower(name)]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("conversion: unknown converter %q", name)
	}
	return ctor(arg)
}

// Names returns the registered converter names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
