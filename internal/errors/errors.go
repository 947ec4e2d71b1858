package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether any AppError in err's chain carries code.
func HasCode(err error, code string) bool {
	for err != nil {
		var appErr *AppError
		if !stderrors.As(err, &appErr) {
			return false
		}
		if appErr.Code == code {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// Predefined error codes
const (
	// Loader
	CodeFileNotFound  = "FILE_NOT_FOUND"
	CodeEmptyData     = "EMPTY_DATA"
	CodeMalformedData = "MALFORMED_DATA"

	// Coercion
	CodeColumnNotFound = "COLUMN_NOT_FOUND"
	CodeConversion     = "CONVERSION_ERROR"

	// Statistics and histogram
	CodeEmptySeries = "EMPTY_SERIES"

	CodeConfigInvalid = "CONFIG_INVALID"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeInternalError = "INTERNAL_ERROR"
)

// Common error constructors
func FileNotFound(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeFileNotFound,
		Message: fmt.Sprintf("file not found: %s", path),
		Cause:   cause,
	}
}

func EmptyData(path string) *AppError {
	return New(CodeEmptyData, fmt.Sprintf("no data rows in %s", path))
}

func MalformedData(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeMalformedData,
		Message: fmt.Sprintf("malformed data in %s", path),
		Cause:   cause,
	}
}

func ColumnNotFound(column string) *AppError {
	return New(CodeColumnNotFound, fmt.Sprintf("column %q not found", column))
}

// ConversionError reports a cell that cannot be read as a number. row is the
// 1-based data row, not counting the header.
func ConversionError(column string, row int, value string, cause error) *AppError {
	return &AppError{
		Code:    CodeConversion,
		Message: fmt.Sprintf("could not convert %q in column %q (row %d) to float", value, column, row),
		Cause:   cause,
	}
}

func EmptySeries(column string) *AppError {
	if column == "" {
		return New(CodeEmptySeries, "no numeric values to analyze")
	}
	return New(CodeEmptySeries, fmt.Sprintf("no numeric values to analyze in column %q", column))
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}
