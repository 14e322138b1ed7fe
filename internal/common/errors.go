// Package common defines the error taxonomy shared by all layers.
// Primary-action failures (authorization, not-found, invalid state) are typed
// *Error values that handlers translate into the response envelope; side-effect
// failures are logged at the call site and never wrapped into responses.
package common

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP status codes used across handlers.
const (
	StatusOK                  = 200
	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusConflict            = 409
	StatusInternalServerError = 500
	StatusServiceUnavailable  = 503
)

// Response messages.
const (
	MsgSuccess         = "Success"
	MsgValidationError = "Validation error"
	MsgInvalidFormat   = "Invalid data format"
	MsgDatabaseError   = "Database error"
)

// ErrorCode identifies an error class with a stable string code.
type ErrorCode struct {
	Code string
}

// Error classes. Codes are stable identifiers exposed in API responses.
var (
	ErrCodeValidationInput  = ErrorCode{Code: "VAL01"}
	ErrCodeValidationFormat = ErrorCode{Code: "VAL02"}
	ErrCodeAuth             = ErrorCode{Code: "AUTH01"}
	ErrCodeAuthToken        = ErrorCode{Code: "AUTH02"}
	ErrCodeAuthRole         = ErrorCode{Code: "AUTH03"}
	ErrCodeAuthCredentials  = ErrorCode{Code: "AUTH04"}
	ErrCodeDatabase         = ErrorCode{Code: "DB01"}
	ErrCodeDatabaseQuery    = ErrorCode{Code: "DB02"}
	ErrCodeDatabaseConflict = ErrorCode{Code: "DB03"}
	ErrCodeBusinessOperation = ErrorCode{Code: "BIZ01"}
	ErrCodeBusinessState     = ErrorCode{Code: "BIZ02"}
	ErrCodeInternalServer    = ErrorCode{Code: "SYS01"}
)

// Sentinel errors for errors.Is checks in services.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidFormat  = errors.New("invalid format")
	ErrInvalidInput   = errors.New("invalid input")
	ErrRequiredField  = errors.New("required field missing")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrMongoDuplicate = errors.New("duplicate key")
)

// Error is the typed error surfaced to the API layer.
type Error struct {
	Code       ErrorCode
	Message    string
	StatusCode int
	Details    map[string]interface{}
	cause      error
}

// NewError creates a typed error. cause may be nil.
func NewError(code ErrorCode, message string, statusCode int, cause error) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		cause:      cause,
	}
}

// WithDetails attaches structured details for the response body.
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	e.Details = details
	return e
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// ConvertMongoError maps driver errors onto the shared taxonomy so callers can
// keep using errors.Is against the sentinels.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return NewError(
			ErrCodeDatabaseConflict,
			"A document with the same unique key already exists",
			StatusConflict,
			ErrMongoDuplicate,
		)
	}
	if mongo.IsTimeout(err) {
		return NewError(
			ErrCodeDatabase,
			"Database operation timed out",
			StatusServiceUnavailable,
			err,
		)
	}
	return NewError(
		ErrCodeDatabaseQuery,
		"Database operation failed",
		StatusInternalServerError,
		err,
	)
}
