package askit

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/itsatony/go-cuserr"
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Resolution errors
	ErrMsgIO              = "I/O error"
	ErrMsgParse           = "Failed to parse"
	ErrMsgEmptyNotAllowed = "Empty input (no default provided)"
	ErrMsgRetriesExceeded = "Maximum retry attempts exceeded"
	ErrMsgValidation      = "Validation failed"
	ErrMsgNoParser        = "no parser registered"
	ErrMsgNilPrompt       = "prompt cannot be nil"
	ErrMsgInvalidRule     = "invalid validation rule"

	// Form errors
	ErrMsgFormEmpty          = "form has no fields"
	ErrMsgFormInvalid        = "invalid form document"
	ErrMsgFormFieldNameEmpty = "form field name cannot be empty"
	ErrMsgFormFieldDuplicate = "duplicate form field name"
	ErrMsgFormFieldType      = "unknown form field type"
	ErrMsgFormFieldDefault   = "form field default does not parse"
	ErrMsgFormFieldRule      = "invalid form field validation rule"
	ErrMsgFormFieldChoice    = "form field choice does not parse"

	// Catalog errors
	ErrMsgFormNotFound    = "form not found"
	ErrMsgCatalogClosed   = "form catalog is closed"
	ErrMsgCatalogRootDir  = "form catalog root is not a directory"
	ErrMsgFormNameEmpty   = "form name cannot be empty"
	ErrMsgFormNameInvalid = "invalid form name"
	ErrMsgCatalogRead     = "failed to read form catalog"
)

// Error format strings
const (
	ErrFmtParse      = "Failed to parse as %s: %s"
	ErrFmtValidation = "Validation failed: %s"
	ErrFmtField      = "field %q: %v"
	ErrFmtMust       = "askit error: %v"
)

// Sentinel errors, one per error kind, plus the catalog errors.
var (
	ErrIO              = errors.New(ErrMsgIO)
	ErrParse           = errors.New(ErrMsgParse)
	ErrEmptyNotAllowed = errors.New(ErrMsgEmptyNotAllowed)
	ErrRetriesExceeded = errors.New(ErrMsgRetriesExceeded)
	ErrValidation      = errors.New(ErrMsgValidation)

	ErrFormNotFound  = errors.New(ErrMsgFormNotFound)
	ErrCatalogClosed = errors.New(ErrMsgCatalogClosed)
)

// ErrorKind classifies resolution failures.
type ErrorKind string

// Error kinds.
const (
	KindNone            ErrorKind = ""
	KindIO              ErrorKind = "io"
	KindParse           ErrorKind = "parse"
	KindEmptyNotAllowed ErrorKind = "empty_not_allowed"
	KindRetriesExceeded ErrorKind = "retries_exceeded"
	KindValidation      ErrorKind = "validation"
	KindOther           ErrorKind = "other"
)

// KindOf classifies err. It returns KindNone for nil and KindOther for
// errors that did not come from a resolution (hook aborts, form definition
// errors).
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrIO):
		return KindIO
	case errors.Is(err, ErrRetriesExceeded):
		return KindRetriesExceeded
	case errors.Is(err, ErrEmptyNotAllowed):
		return KindEmptyNotAllowed
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrParse):
		return KindParse
	default:
		return KindOther
	}
}

// ParseError reports that a line could not be converted to the target type.
type ParseError struct {
	// TypeName is the Go name of the target type, e.g. "uint16".
	TypeName string
	// Cause is the human-readable reason reported by the conversion.
	Cause string
	// Err is the underlying conversion error, if any.
	Err error
}

// NewParseError creates a parse error for typeName from the conversion failure cause.
func NewParseError(typeName string, cause error) *ParseError {
	return &ParseError{
		TypeName: typeName,
		Cause:    causeText(cause),
		Err:      cause,
	}
}

// Error implements the error interface. The text doubles as the retry notice.
func (e *ParseError) Error() string {
	return fmt.Sprintf(ErrFmtParse, e.TypeName, e.Cause)
}

// Unwrap returns the underlying conversion error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ValidationError reports that the validator rejected the last value and no
// attempts were left.
type ValidationError struct {
	Message string
}

// NewValidationError creates a validation error carrying the configured message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf(ErrFmtValidation, e.Message)
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewIOError wraps a failed read, write or flush.
func NewIOError(operation string, cause error) error {
	return cuserr.WrapStdError(fmt.Errorf("%w: %w", ErrIO, cause), ErrCodeIO, ErrMsgIO).
		WithMetadata(MetaKeyOperation, operation)
}

// NewEmptyNotAllowedError creates the error for empty input without a usable default.
func NewEmptyNotAllowedError() error {
	return cuserr.WrapStdError(ErrEmptyNotAllowed, ErrCodeEmpty, ErrMsgEmptyNotAllowed)
}

// NewRetriesExceededError creates the error for an exhausted retry budget.
// last is the failure of the final attempt and is kept as metadata only.
func NewRetriesExceededError(attempts int, last error) error {
	err := cuserr.WrapStdError(ErrRetriesExceeded, ErrCodeRetries, ErrMsgRetriesExceeded).
		WithMetadata(MetaKeyAttempts, strconv.Itoa(attempts))
	if last != nil {
		err = err.WithMetadata(MetaKeyLastError, last.Error())
	}
	return err
}

// NewConfigError creates an error for a prompt that cannot be resolved as configured.
func NewConfigError(msg string) error {
	return cuserr.NewValidationError(ErrCodeConfig, msg)
}

// FieldError wraps the failure of one form field.
type FieldError struct {
	Form  string
	Field string
	Err   error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf(ErrFmtField, e.Field, e.Err)
}

// Unwrap returns the field's resolution error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewFormError creates a form definition error.
func NewFormError(msg, form, field string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeForm, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeForm, msg)
	}
	err = err.WithMetadata(MetaKeyForm, form)
	if field != "" {
		err = err.WithMetadata(MetaKeyField, field)
	}
	return err
}

// NewFormNotFoundError creates a catalog lookup error.
func NewFormNotFoundError(name string) error {
	return cuserr.WrapStdError(ErrFormNotFound, ErrCodeCatalog, ErrMsgFormNotFound).
		WithMetadata(MetaKeyForm, name)
}

// NewCatalogError creates a catalog error for the named form or path.
func NewCatalogError(msg, name string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeCatalog, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeCatalog, msg)
	}
	if name != "" {
		err = err.WithMetadata(MetaKeyForm, name)
	}
	return err
}

// NewCatalogClosedError creates the error returned by a closed catalog.
func NewCatalogClosedError() error {
	return cuserr.WrapStdError(ErrCatalogClosed, ErrCodeCatalog, ErrMsgCatalogClosed)
}

// Must returns v or panics when err is non-nil.
// Intended for scripts where a failed prompt should end the program.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(fmt.Sprintf(ErrFmtMust, err))
	}
	return v
}
