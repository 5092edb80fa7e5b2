// Package errors provides custom error types for the trendkit system.
// These errors let callers branch on merge outcomes (empty result, missing
// anchor) with errors.Is while still carrying the file or topic involved.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is, As and Join are re-exported so callers need a single errors import.
var (
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Common sentinel errors for the trendkit system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyResult indicates a merge produced no rows
	ErrEmptyResult = errors.New("empty result")

	// ErrNoCommonAnchor indicates no series name is shared by every input
	ErrNoCommonAnchor = errors.New("no common anchor")

	// ErrAnchorMissing indicates the chosen anchor vanished from an input
	ErrAnchorMissing = errors.New("anchor missing in file")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// EmptyResultError reports a merge that produced no rows.
type EmptyResultError struct {
	Operation string // "raw", "adjusted"
	Inputs    int
}

// Error implements the error interface
func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("%s merge of %d input(s) produced no rows", e.Operation, e.Inputs)
}

// Is implements errors.Is support
func (e *EmptyResultError) Is(target error) bool {
	return target == ErrEmptyResult
}

// NewEmptyResultError creates a new EmptyResultError
func NewEmptyResultError(operation string, inputs int) *EmptyResultError {
	return &EmptyResultError{Operation: operation, Inputs: inputs}
}

// NoCommonAnchorError reports that the inputs share no series name.
type NoCommonAnchorError struct {
	Files []string
}

// Error implements the error interface
func (e *NoCommonAnchorError) Error() string {
	if len(e.Files) == 0 {
		return "no common anchor: no inputs"
	}
	return fmt.Sprintf("no common anchor across %d file(s): %s", len(e.Files), strings.Join(e.Files, ", "))
}

// Is implements errors.Is support
func (e *NoCommonAnchorError) Is(target error) bool {
	return target == ErrNoCommonAnchor
}

// NewNoCommonAnchorError creates a new NoCommonAnchorError
func NewNoCommonAnchorError(files []string) *NoCommonAnchorError {
	return &NoCommonAnchorError{Files: files}
}

// AnchorMissingError reports that the chosen anchor is absent from a parsed input.
type AnchorMissingError struct {
	Anchor string
	File   string
}

// Error implements the error interface
func (e *AnchorMissingError) Error() string {
	return fmt.Sprintf("anchor %q not found in %s", e.Anchor, e.File)
}

// Is implements errors.Is support
func (e *AnchorMissingError) Is(target error) bool {
	return target == ErrAnchorMissing
}

// NewAnchorMissingError creates a new AnchorMissingError
func NewAnchorMissingError(anchor, file string) *AnchorMissingError {
	return &AnchorMissingError{Anchor: anchor, File: file}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "csv", "xlsx", "yaml"
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "rename", "open"
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
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
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

// IsEmptyResult checks if an error reports an empty merge
func IsEmptyResult(err error) bool {
	return errors.Is(err, ErrEmptyResult)
}

// IsNoCommonAnchor checks if an error reports a missing common anchor
func IsNoCommonAnchor(err error) bool {
	return errors.Is(err, ErrNoCommonAnchor)
}

// IsAnchorMissing checks if an error reports an anchor absent from a file
func IsAnchorMissing(err error) bool {
	return errors.Is(err, ErrAnchorMissing)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
