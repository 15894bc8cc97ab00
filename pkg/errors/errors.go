// Package errors provides custom error types for the veritab system.
// These errors enable programmatic error checking and carry enough
// context (offending column, available columns) for the operator to
// correct their input without digging through logs.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the veritab system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupported indicates an unsupported format or driver
	ErrUnsupported = errors.New("unsupported")
)

// ColumnNotFoundError reports a requested column name that, after
// normalization, does not exist in a table's normalized column set.
type ColumnNotFoundError struct {
	Table     string   // table label ("source", "target", or a file name)
	Column    string   // the normalized name that failed to resolve
	Available []string // the table's normalized column names
}

// Error implements the error interface
func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("%s has no column %q: available columns are [%s]",
		e.Table, e.Column, strings.Join(e.Available, ", "))
}

// Is implements errors.Is support
func (e *ColumnNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewColumnNotFoundError creates a new ColumnNotFoundError
func NewColumnNotFoundError(table, column string, available []string) *ColumnNotFoundError {
	return &ColumnNotFoundError{Table: table, Column: column, Available: available}
}

// DuplicateColumnError reports the same column selected more than once
// within one side's composite-key column list.
type DuplicateColumnError struct {
	Column    string   // the repeated normalized name
	Selection []string // the full selection as given
}

// Error implements the error interface
func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("column %q selected more than once in [%s]",
		e.Column, strings.Join(e.Selection, ", "))
}

// Is implements errors.Is support
func (e *DuplicateColumnError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewDuplicateColumnError creates a new DuplicateColumnError
func NewDuplicateColumnError(column string, selection []string) *DuplicateColumnError {
	return &DuplicateColumnError{Column: column, Selection: selection}
}

// ArityError reports source and target column selectors of different
// lengths in multi-column mode.
type ArityError struct {
	SourceArity int
	TargetArity int
}

// Error implements the error interface
func (e *ArityError) Error() string {
	return fmt.Sprintf("source selects %d column(s) but target selects %d: selectors must have equal length",
		e.SourceArity, e.TargetArity)
}

// Is implements errors.Is support
func (e *ArityError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewArityError creates a new ArityError
func NewArityError(sourceArity, targetArity int) *ArityError {
	return &ArityError{SourceArity: sourceArity, TargetArity: targetArity}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// LoadError represents a failure loading tabular data from a file
type LoadError struct {
	Path    string
	Format  string // "csv", "xlsx"
	Message string
	Err     error
}

// Error implements the error interface
func (e *LoadError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("loading %s file %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("loading %s: %s", e.Path, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new LoadError
func NewLoadError(path, format string, err error) *LoadError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &LoadError{Path: path, Format: format, Message: message, Err: err}
}

// QueryError represents a failure executing a query against the
// external database collaborator.
type QueryError struct {
	Driver  string
	Message string
	Err     error
}

// Error implements the error interface
func (e *QueryError) Error() string {
	if e.Driver != "" {
		return fmt.Sprintf("query error (%s): %s", e.Driver, e.Message)
	}
	return fmt.Sprintf("query error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError creates a new QueryError
func NewQueryError(driver string, err error) *QueryError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &QueryError{Driver: driver, Message: message, Err: err}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{Operation: operation, Path: path, Message: message, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUnsupported checks if an error is an unsupported format/driver error
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapLoad wraps an error as a LoadError
func WrapLoad(path, format string, err error) error {
	if err == nil {
		return nil
	}
	return NewLoadError(path, format, err)
}

// WrapQuery wraps an error as a QueryError
func WrapQuery(driver string, err error) error {
	if err == nil {
		return nil
	}
	return NewQueryError(driver, err)
}
