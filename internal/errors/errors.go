package errors

import (
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

// GetCode returns the error code if it's an AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// IsCode reports whether err is an AppError carrying the given code
func IsCode(err error, code string) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}

// Predefined error codes. The first three form the fatal/recoverable
// taxonomy of the analysis engine; the rest are generic plumbing codes.
const (
	CodeRequiredColumnMissing      = "REQUIRED_COLUMN_MISSING"
	CodeReferenceTableMissing      = "REFERENCE_TABLE_MISSING"
	CodeTheoreticalTotalUnresolved = "THEORETICAL_TOTAL_UNRESOLVED"
	CodeConfigInvalid              = "CONFIG_INVALID"
	CodeInvalidInput               = "INVALID_INPUT"
	CodeInternalError              = "INTERNAL_ERROR"
	CodeIOError                    = "IO_ERROR"
)

// Common error constructors

// RequiredColumnMissing is fatal for the current operation: header discovery
// failed for a column the operation requires.
func RequiredColumnMissing(column string) *AppError {
	return New(CodeRequiredColumnMissing, fmt.Sprintf("required column %s not found in header row", column))
}

// ReferenceTableMissing is fatal for the resolver: the LOLIMIT sentinel row
// was not found below the record block.
func ReferenceTableMissing() *AppError {
	return New(CodeReferenceTableMissing, "reference table sentinel LOLIMIT not found in column F")
}

// TheoreticalTotalUnresolved is recoverable: the aggregator proceeds in
// degraded mode with every fallout percentage reported as zero.
func TheoreticalTotalUnresolved() *AppError {
	return New(CodeTheoreticalTotalUnresolved, "THEORETICAL_NUM not found; fallout percentages degrade to zero")
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func IOError(message string, cause error) *AppError {
	return &AppError{Code: CodeIOError, Message: message, Cause: cause}
}
