// Package errors provides structured error types for dashbridge.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the parsers, the validator and the CLI
//   - Machine-readable error codes for programmatic handling
//   - Typed reference violations that name the offending ids
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input decoding and reference validation failures
//   - MISSING_*: Required structure absent from the input
//   - *_FAILED: An encoder or scanner could not complete
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingEnvelope, "no CDATA section in %s", path)
//	if errors.Is(err, errors.ErrCodeMissingEnvelope) {
//	    // Handle missing envelope
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidJSON, decodeErr, "decode dashboard")
//
//	// Reference violations carry their ids
//	var refErr *errors.DataSourceReferenceError
//	if stderrors.As(err, &refErr) {
//	    fmt.Println(refErr.Visualization, refErr.DataSource)
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Decoding errors
	ErrCodeInvalidEncoding Code = "INVALID_ENCODING"
	ErrCodeInvalidJSON     Code = "INVALID_JSON"
	ErrCodeMissingEnvelope Code = "MISSING_ENVELOPE"
	ErrCodeMarkupParsing   Code = "MARKUP_PARSING_FAILED"

	// Reference validation errors
	ErrCodeInvalidDataSourceReference Code = "INVALID_DATA_SOURCE_REFERENCE"
	ErrCodeInvalidDataSourceChain     Code = "INVALID_DATA_SOURCE_CHAIN"
	ErrCodeInvalidLayoutReference     Code = "INVALID_LAYOUT_REFERENCE"
	ErrCodeDataSourceCycle            Code = "DATA_SOURCE_CYCLE"

	// Encoding errors
	ErrCodeSerializationFailed Code = "SERIALIZATION_FAILED"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// coder is implemented by the typed violation errors below.
type coder interface {
	error
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or a typed violation
// with a matching code. The outermost coded error wins.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no coded error is found in the chain.
func GetCode(err error) Code {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Code
		}
		if c, ok := err.(coder); ok {
			return c.Code()
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types and typed violations, returns the message (and cause)
// without code prefixes. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	for e := err; e != nil; e = errors.Unwrap(e) {
		switch c := e.(type) {
		case *Error:
			if c.Cause != nil {
				return c.Message + ": " + UserMessage(c.Cause)
			}
			return c.Message
		case coder:
			return strings.TrimPrefix(c.Error(), string(c.Code())+": ")
		}
	}
	return err.Error()
}

// DataSourceReferenceError reports a visualization that points at a data
// source id absent from the dashboard.
type DataSourceReferenceError struct {
	Visualization string
	DataSource    string
}

// Error implements the error interface.
func (e *DataSourceReferenceError) Error() string {
	return fmt.Sprintf("%s: visualization %q references unknown data source %q",
		ErrCodeInvalidDataSourceReference, e.Visualization, e.DataSource)
}

// Code returns the error code for this error type.
func (e *DataSourceReferenceError) Code() Code {
	return ErrCodeInvalidDataSourceReference
}

// DataSourceChainError reports a data source that extends an unknown one.
type DataSourceChainError struct {
	DataSource string
	Extends    string
}

// Error implements the error interface.
func (e *DataSourceChainError) Error() string {
	return fmt.Sprintf("%s: data source %q extends unknown data source %q",
		ErrCodeInvalidDataSourceChain, e.DataSource, e.Extends)
}

// Code returns the error code for this error type.
func (e *DataSourceChainError) Code() Code {
	return ErrCodeInvalidDataSourceChain
}

// LayoutReferenceError reports a layout entry pointing at a missing
// visualization or input. ItemKind is "visualization" or "input".
type LayoutReferenceError struct {
	ItemKind string
	Item     string
}

// Error implements the error interface.
func (e *LayoutReferenceError) Error() string {
	return fmt.Sprintf("%s: layout references unknown %s %q",
		ErrCodeInvalidLayoutReference, e.ItemKind, e.Item)
}

// Code returns the error code for this error type.
func (e *LayoutReferenceError) Code() Code {
	return ErrCodeInvalidLayoutReference
}

// DataSourceCycleError reports an extends chain that loops back on itself.
// Chain lists the ids in visiting order, ending with the repeated id.
type DataSourceCycleError struct {
	Chain []string
}

// Error implements the error interface.
func (e *DataSourceCycleError) Error() string {
	return fmt.Sprintf("%s: data source chain loops: %s",
		ErrCodeDataSourceCycle, strings.Join(e.Chain, " -> "))
}

// Code returns the error code for this error type.
func (e *DataSourceCycleError) Code() Code {
	return ErrCodeDataSourceCycle
}
