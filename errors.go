package questdbconnect

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common failure classes.
var (
	// ErrNotFound is returned when a named table does not exist.
	ErrNotFound = errors.New("questdb: table not found")

	// ErrUnsupported is returned for operations QuestDB has no concept of,
	// such as schemas, sequences and two-phase commit.
	ErrUnsupported = errors.New("questdb: unsupported operation")

	// ErrUnknownType is returned when a raw type name reported by the
	// database has no registry entry.
	ErrUnknownType = errors.New("questdb: unknown column type")
)

// ConfigError reports an invalid caller-supplied configuration, such as a
// table engine requesting partitioning without a designated timestamp, or a
// column whose type is not a QuestDB type. It is raised at DDL-generation
// time, before any statement reaches the network, and is never retried.
type ConfigError struct {
	msg string
}

// Error returns the error string.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("questdb: invalid configuration: %s", e.msg)
}

// NewConfigError returns a new ConfigError with the given message.
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

// IsConfigError returns true if the error is a ConfigError.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConfigError
	return errors.As(err, &e)
}

// NotFoundError represents an error when a named table does not exist.
// A successful introspection round-trip that returns zero rows maps to this
// error; a failed round-trip propagates the underlying query error instead,
// so transient connectivity failures are never mistaken for a missing table.
type NotFoundError struct {
	table string
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("questdb: table %q does not exist", e.table)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Table returns the table name that was searched for.
func (e *NotFoundError) Table() string {
	return e.table
}

// NewNotFoundError returns a new NotFoundError for the given table.
func NewNotFoundError(table string) *NotFoundError {
	return &NotFoundError{table: table}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// UnsupportedError represents an operation the database cannot perform.
// It is raised synchronously and never attempted against the network.
type UnsupportedError struct {
	op string
}

// Error returns the error string.
func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("questdb: %s is not supported", e.op)
}

// Is reports whether the target error matches UnsupportedError.
func (e *UnsupportedError) Is(err error) bool {
	return err == ErrUnsupported
}

// Op returns the unsupported operation name.
func (e *UnsupportedError) Op() string {
	return e.op
}

// NewUnsupportedError returns a new UnsupportedError for the given operation.
func NewUnsupportedError(op string) *UnsupportedError {
	return &UnsupportedError{op: op}
}

// IsUnsupported returns true if the error is an UnsupportedError.
func IsUnsupported(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupported)
}

// UnknownTypeError represents a raw type name from introspection that has
// no registry entry. It is fatal and must surface to the caller; silently
// guessing a type would corrupt downstream reads.
type UnknownTypeError struct {
	name string
}

// Error returns the error string.
func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("questdb: unknown column type %q", e.name)
}

// Is reports whether the target error matches UnknownTypeError.
func (e *UnknownTypeError) Is(err error) bool {
	return err == ErrUnknownType
}

// TypeName returns the unresolved raw type name.
func (e *UnknownTypeError) TypeName() string {
	return e.name
}

// NewUnknownTypeError returns a new UnknownTypeError for the given raw name.
func NewUnknownTypeError(name string) *UnknownTypeError {
	return &UnknownTypeError{name: name}
}

// IsUnknownType returns true if the error is an UnknownTypeError.
func IsUnknownType(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownTypeError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownType)
}
