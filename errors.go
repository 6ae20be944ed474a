package veloxsearch

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors. The typed errors below match them with errors.Is.
var (
	// ErrPrecondition is returned when a where-builder is constructed for a
	// search condition that still contains errors.
	ErrPrecondition = errors.New("veloxsearch: search condition contains errors")

	// ErrUnknownField is returned when a configuration call references a field
	// that is not part of the FieldSet.
	ErrUnknownField = errors.New("veloxsearch: unknown field")

	// ErrUnresolvedField is returned when a field used by the condition has no
	// configuration and none can be derived.
	ErrUnresolvedField = errors.New("veloxsearch: unresolved field")

	// ErrLocked is returned by configuration methods once the where-clause is generated.
	ErrLocked = errors.New("veloxsearch: where-clause already generated")

	// ErrConfiguration is returned when the search functions cannot be registered
	// on a manager.
	ErrConfiguration = errors.New("veloxsearch: invalid configuration")

	// ErrInvalidConverter is returned when a converter implements neither
	// value nor SQL field conversion.
	ErrInvalidConverter = errors.New("veloxsearch: converter implements no conversion")

	// ErrUnsupportedValue is returned when a value cannot be rendered as a literal.
	ErrUnsupportedValue = errors.New("veloxsearch: unsupported value")
)

// PreconditionError reports a search condition that cannot be used to
// generate a where-clause.
type PreconditionError struct {
	FieldSet string
}

// Error returns the error string.
func (e *PreconditionError) Error() string {
	if e.FieldSet != "" {
		return fmt.Sprintf("veloxsearch: unable to generate the where-clause, search condition of fieldset %q contains errors", e.FieldSet)
	}
	return "veloxsearch: unable to generate the where-clause, search condition contains errors"
}

// Is reports whether the target error matches ErrPrecondition.
func (e *PreconditionError) Is(err error) bool {
	return err == ErrPrecondition
}

// NewPreconditionError returns a new PreconditionError for the given fieldset.
func NewPreconditionError(fieldSet string) *PreconditionError {
	return &PreconditionError{FieldSet: fieldSet}
}

// IsPrecondition returns true if the error is a PreconditionError.
func IsPrecondition(err error) bool {
	if err == nil {
		return false
	}
	var e *PreconditionError
	return errors.As(err, &e) || errors.Is(err, ErrPrecondition)
}

// UnknownFieldError represents a reference to a field that is not registered
// in the FieldSet.
type UnknownFieldError struct {
	Field    string
	FieldSet string
}

// Error returns the error string.
func (e *UnknownFieldError) Error() string {
	if e.FieldSet != "" {
		return fmt.Sprintf("veloxsearch: field %q is not registered in fieldset %q", e.Field, e.FieldSet)
	}
	return fmt.Sprintf("veloxsearch: field %q is not registered in the fieldset", e.Field)
}

// Is reports whether the target error matches ErrUnknownField.
func (e *UnknownFieldError) Is(err error) bool {
	return err == ErrUnknownField
}

// NewUnknownFieldError returns a new UnknownFieldError.
func NewUnknownFieldError(field, fieldSet string) *UnknownFieldError {
	return &UnknownFieldError{Field: field, FieldSet: fieldSet}
}

// IsUnknownField returns true if the error is an UnknownFieldError.
func IsUnknownField(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownFieldError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownField)
}

// UnresolvedFieldError represents a field used by the condition for which
// no alias or property could be determined at generation time.
type UnresolvedFieldError struct {
	Field  string
	Reason string
}

// Error returns the error string.
func (e *UnresolvedFieldError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("veloxsearch: field %q cannot be resolved: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("veloxsearch: field %q cannot be resolved", e.Field)
}

// Is reports whether the target error matches ErrUnresolvedField.
func (e *UnresolvedFieldError) Is(err error) bool {
	return err == ErrUnresolvedField
}

// NewUnresolvedFieldError returns a new UnresolvedFieldError.
func NewUnresolvedFieldError(field, reason string) *UnresolvedFieldError {
	return &UnresolvedFieldError{Field: field, Reason: reason}
}

// IsUnresolvedField returns true if the error is an UnresolvedFieldError.
func IsUnresolvedField(err error) bool {
	if err == nil {
		return false
	}
	var e *UnresolvedFieldError
	return errors.As(err, &e) || errors.Is(err, ErrUnresolvedField)
}

// LockedError is returned by a configuration method called after the
// where-clause was generated. The generated clause stays valid.
type LockedError struct {
	Op string // configuration method that was rejected
}

// Error returns the error string.
func (e *LockedError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("veloxsearch: %s cannot be called once the where-clause is generated", e.Op)
	}
	return "veloxsearch: configuration methods cannot be called once the where-clause is generated"
}

// Is reports whether the target error matches ErrLocked.
func (e *LockedError) Is(err error) bool {
	return err == ErrLocked
}

// NewLockedError returns a new LockedError for the given operation.
func NewLockedError(op string) *LockedError {
	return &LockedError{Op: op}
}

// IsLocked returns true if the error is a LockedError.
func IsLocked(err error) bool {
	if err == nil {
		return false
	}
	var e *LockedError
	return errors.As(err, &e) || errors.Is(err, ErrLocked)
}

// ConfigurationError reports a manager the search functions cannot be
// registered on.
type ConfigurationError struct {
	Manager string
	Msg     string
}

// Error returns the error string.
func (e *ConfigurationError) Error() string {
	if e.Manager != "" {
		return fmt.Sprintf("veloxsearch: manager %q: %s", e.Manager, e.Msg)
	}
	return "veloxsearch: " + e.Msg
}

// Is reports whether the target error matches ErrConfiguration.
func (e *ConfigurationError) Is(err error) bool {
	return err == ErrConfiguration
}

// NewConfigurationError returns a new ConfigurationError.
func NewConfigurationError(manager, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Manager: manager, Msg: fmt.Sprintf(format, args...)}
}

// IsConfiguration returns true if the error is a ConfigurationError.
func IsConfiguration(err error) bool {
	if err == nil {
		return false
	}
	var e *ConfigurationError
	return errors.As(err, &e) || errors.Is(err, ErrConfiguration)
}

// UnknownPropertyError is returned when a field is mapped to a property the
// entity metadata does not declare.
type UnknownPropertyError struct {
	Entity   string
	Property string
}

// Error returns the error string.
func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("veloxsearch: entity %q has no property %q", e.Entity, e.Property)
}

// IsUnknownProperty returns true if the error is an UnknownPropertyError.
func IsUnknownProperty(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownPropertyError
	return errors.As(err, &e)
}

// ConversionError wraps a failure of a field converter.
type ConversionError struct {
	Field string
	Kind  string // "value" or "sql"
	Err   error
}

// Error returns the error string.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("veloxsearch: %s conversion of field %q failed: %v", e.Kind, e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// NewConversionError returns a new ConversionError.
func NewConversionError(field, kind string, err error) *ConversionError {
	return &ConversionError{Field: field, Kind: kind, Err: err}
}

// IsConversionError returns true if the error is a ConversionError.
func IsConversionError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConversionError
	return errors.As(err, &e)
}

// ValuesError describes a single invalid value inside a search condition.
type ValuesError struct {
	Path    string // e.g. "[customerType][ranges][0]"
	Message string
}

// Error returns the error string.
func (e ValuesError) Error() string {
	return e.Path + ": " + e.Message
}

// AggregateError represents multiple errors collected during an operation.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "veloxsearch: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("veloxsearch: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap returns the collected errors.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}
