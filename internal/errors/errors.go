package errors

import (
	"fmt"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeMissingColumn   ErrorType = "MISSING_COLUMN"
	ErrTypeMalformedLookup ErrorType = "MALFORMED_LOOKUP"
	ErrTypeEmptyMeasure    ErrorType = "EMPTY_MEASURE"
	ErrTypeParsing         ErrorType = "PARSING"
	ErrTypeValidation      ErrorType = "VALIDATION"
	ErrTypeStorage         ErrorType = "STORAGE"
	ErrTypeConfig          ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	appErr, ok := err.(*AppError)
	if !ok {
		return false
	}
	return appErr.Type == errType
}

// Helper functions for the engine's error taxonomy

// NewMissingColumnError creates the fatal load error naming every required
// column absent from the input header. Schema-level errors abort the load
// and are reported once.
func NewMissingColumnError(columns []string) *AppError {
	return NewAppError(
		ErrTypeMissingColumn,
		fmt.Sprintf("required columns missing from input: %s", strings.Join(columns, ", ")),
		nil,
	).WithContext("columns", columns)
}

// MissingColumns extracts the absent column names from a MissingColumn error.
func MissingColumns(err error) []string {
	appErr, ok := err.(*AppError)
	if !ok || appErr.Type != ErrTypeMissingColumn {
		return nil
	}
	cols, _ := appErr.Context["columns"].([]string)
	return cols
}

// NewMalformedLookupError creates the non-fatal condition raised when the
// dimension lookup section is present but unusable. Callers degrade to an
// empty mapping and surface this as a warning.
func NewMalformedLookupError(message string) *AppError {
	return NewAppError(ErrTypeMalformedLookup, message, nil)
}

// NewEmptyMeasureError creates the aggregation error raised when no amount
// value in the filtered set could be coerced to a number.
func NewEmptyMeasureError(measure string) *AppError {
	return NewAppError(
		ErrTypeEmptyMeasure,
		fmt.Sprintf("no numeric values found for measure %q", measure),
		nil,
	).WithContext("measure", measure)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
