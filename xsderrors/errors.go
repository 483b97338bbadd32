// Package xsderrors provides structured error types for schema-fetcher.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between the failure categories
// of a mirroring run and report which schema URL was at fault.
//
// # Error Categories
//
//   - MalformedReferenceError: a schemaLocation that cannot be resolved to an
//     absolute URL against its parent schema
//   - UnparsableSchemaError: fetched content that cannot be tokenized as XML,
//     or that has no recognizable schema root element
//   - UnreachableSchemaError: a schema URL whose content cannot be retrieved
//     (network failure, non-200 status, unreadable file)
//
// # Usage with errors.As
//
//	result, err := f.Fetch("/srv/mirror", "https://example.com/order.xsd")
//	if err != nil {
//	    var fetchErr *xsderrors.UnreachableSchemaError
//	    if errors.As(err, &fetchErr) {
//	        log.Printf("cannot reach %s (status %d)", fetchErr.URL, fetchErr.StatusCode)
//	    }
//	}
package xsderrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrMalformedReference indicates a schemaLocation could not be resolved.
	ErrMalformedReference = errors.New("malformed schema reference")

	// ErrUnparsableSchema indicates fetched content could not be parsed as a schema.
	ErrUnparsableSchema = errors.New("unparsable schema")

	// ErrUnreachableSchema indicates a schema URL could not be fetched.
	ErrUnreachableSchema = errors.New("unreachable schema")
)

// MalformedReferenceError represents a schemaLocation literal that could not
// be turned into an absolute URL, either because the literal itself does not
// parse or because resolution against the parent schema's URL failed.
type MalformedReferenceError struct {
	// SchemaLocation is the literal attribute text that failed to resolve
	SchemaLocation string
	// Parent is the URL of the schema containing the reference ("" for
	// root URLs given on the command line)
	Parent string
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *MalformedReferenceError) Error() string {
	msg := "malformed schema reference"
	if e.SchemaLocation != "" {
		msg += fmt.Sprintf(" %q", e.SchemaLocation)
	}
	if e.Parent != "" {
		msg += " in " + e.Parent
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *MalformedReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *MalformedReferenceError) Is(target error) bool {
	return target == ErrMalformedReference
}

// UnparsableSchemaError represents fetched content that could not be
// processed as an XML schema: the XML tokenizer failed, the charset
// declaration is unknown, or the document root is not a schema element.
type UnparsableSchemaError struct {
	// URL is the schema URL whose content failed to parse
	URL string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *UnparsableSchemaError) Error() string {
	msg := "unparsable schema"
	if e.URL != "" {
		msg += " " + e.URL
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *UnparsableSchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *UnparsableSchemaError) Is(target error) bool {
	return target == ErrUnparsableSchema
}

// UnreachableSchemaError represents a schema URL whose content could not be
// retrieved. For HTTP(S) URLs this covers transport errors and non-200
// responses; for file URLs it covers unreadable paths.
type UnreachableSchemaError struct {
	// URL is the schema URL that could not be fetched
	URL string
	// StatusCode is the HTTP status received, if any (0 if the failure
	// happened before a response arrived, or for file URLs)
	StatusCode int
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *UnreachableSchemaError) Error() string {
	msg := "unreachable schema"
	if e.URL != "" {
		msg += " " + e.URL
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": HTTP status %d", e.StatusCode)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *UnreachableSchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *UnreachableSchemaError) Is(target error) bool {
	return target == ErrUnreachableSchema
}
