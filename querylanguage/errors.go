package querylanguage

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFunction is returned when a query calls a function that is
	// neither built in nor registered.
	ErrUnknownFunction = errors.New("querylanguage: unknown function")

	// ErrReservedFunction is returned when a custom function would shadow a
	// built-in one.
	ErrReservedFunction = errors.New("querylanguage: reserved function name")

	// ErrUnknownManager is returned by Registry.Manager for unknown names.
	ErrUnknownManager = errors.New("querylanguage: unknown manager")

	// ErrUnknownAlias is returned when a path uses an alias that was not declared.
	ErrUnknownAlias = errors.New("querylanguage: unknown alias")
)

// SyntaxError reports a query that cannot be parsed.
type SyntaxError struct {
	Offset int // byte offset in the query, -1 when unknown
	Msg    string
}

// Error returns the error string.
func (e *SyntaxError) Error() string {
	if e.Offset < 0 {
		return "querylanguage: syntax error: " + e.Msg
	}
	return fmt.Sprintf("querylanguage: syntax error at offset %d: %s", e.Offset, e.Msg)
}

// IsSyntaxError returns true if the error is a SyntaxError.
func IsSyntaxError(err error) bool {
	var e *SyntaxError
	return errors.As(err, &e)
}
