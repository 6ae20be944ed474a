package orm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	veloxsearch "github.com/syssam/velox-search"
)

// Mapping types with a dedicated literal format.
const (
	TypeDate = "date"
	TypeTime = "time"
)

// QuoteString quotes s as a query-language string literal.
func QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Literal renders a value as a query-language literal. Time values are
// formatted according to the mapping type.
func Literal(v any, mappingType string) (string, error) {
	switch v := v.(type) {
	case nil:
		return "NULL", nil
	case string:
		return QuoteString(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		if !finite(float64(v)) {
			return "", fmt.Errorf("%w: %v", veloxsearch.ErrUnsupportedValue, v)
		}
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		if !finite(v) {
			return "", fmt.Errorf("%w: %v", veloxsearch.ErrUnsupportedValue, v)
		}
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case time.Time:
		switch strings.ToLower(mappingType) {
		case TypeDate:
			return QuoteString(v.Format(time.DateOnly)), nil
		case TypeTime:
			return QuoteString(v.Format(time.TimeOnly)), nil
		default:
			return QuoteString(v.Format(time.DateTime)), nil
		}
	case uuid.UUID:
		return QuoteString(v.String()), nil
	case fmt.Stringer:
		return QuoteString(v.String()), nil
	default:
		return "", fmt.Errorf("%w: %T", veloxsearch.ErrUnsupportedValue, v)
	}
}

// finite reports whether f has a literal form; NaN and infinities have none.
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
