package querylanguage

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// FunctionNode is a custom function of the query language. Parse consumes the
// call from the parser, starting at the function name; SQL renders the call
// for the walker's dialect.
type FunctionNode interface {
	Parse(*Parser) error
	SQL(*SQLWalker) (string, error)
}

// FunctionFactory returns a new node for a call of the named function.
type FunctionFactory func(name string) FunctionNode

// builtinFunctions are passed through to SQL unchanged.
var builtinFunctions = map[string]struct{}{
	"ABS":       {},
	"COALESCE":  {},
	"CONCAT":    {},
	"LENGTH":    {},
	"LOWER":     {},
	"MOD":       {},
	"NULLIF":    {},
	"SQRT":      {},
	"SUBSTRING": {},
	"TRIM":      {},
	"UPPER":     {},
}

// IsBuiltinFunction reports whether name is a built-in function.
func IsBuiltinFunction(name string) bool {
	_, ok := builtinFunctions[strings.ToUpper(name)]
	return ok
}

// Configuration holds the custom functions known to the query language.
// It is safe for concurrent use.
type Configuration struct {
	mu              sync.RWMutex
	stringFunctions map[string]FunctionFactory
}

// NewConfiguration returns an empty Configuration.
func NewConfiguration() *Configuration {
	return &Configuration{stringFunctions: make(map[string]FunctionFactory)}
}

// AddCustomStringFunction registers a string function. Names are case
// insensitive; registering a name again replaces the earlier factory.
func (c *Configuration) AddCustomStringFunction(name string, factory FunctionFactory) error {
	if factory == nil {
		return errors.New("querylanguage: nil function factory")
	}
	key := strings.ToUpper(strings.TrimSpace(name))
	if key == "" {
		return errors.New("querylanguage: empty function name")
	}
	if IsBuiltinFunction(key) {
		return fmt.Errorf("%w: %s", ErrReservedFunction, key)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stringFunctions[key] = factory
	return nil
}

// CustomStringFunction returns the factory registered for name.
func (c *Configuration) CustomStringFunction(name string) (FunctionFactory, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.stringFunctions[strings.ToUpper(name)]
	return f, ok
}

// CustomStringFunctions returns the registered names, sorted.
func (c *Configuration) CustomStringFunctions() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.stringFunctions))
	for name := range c.stringFunctions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
