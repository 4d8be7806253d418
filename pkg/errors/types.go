package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a structured error code
type ErrorCode string

const (
	// Subscription lifecycle errors
	ErrCodeInvalidSource         ErrorCode = "INVALID_SOURCE"
	ErrCodeProfileNotFound       ErrorCode = "PROFILE_NOT_FOUND"
	ErrCodeAlreadySubscribed     ErrorCode = "ALREADY_SUBSCRIBED"
	ErrCodeUnprocessableMetadata ErrorCode = "UNPROCESSABLE_METADATA"
	ErrCodeProviderUnavailable   ErrorCode = "PROVIDER_UNAVAILABLE"
	ErrCodeStorageFailure        ErrorCode = "STORAGE_FAILURE"

	// Generic errors
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrCodeValidation ErrorCode = "VALIDATION"
	ErrCodeConfig     ErrorCode = "CONFIG_INVALID"
	ErrCodeRateLimit  ErrorCode = "RATE_LIMIT"
	ErrCodeInternal   ErrorCode = "INTERNAL"
)

// AppError represents a structured application error
type AppError struct {
	Code     ErrorCode      `json:"code"`
	Message  string         `json:"message"`
	Details  map[string]any `json:"details,omitempty"`
	Cause    error          `json:"-"`
	HTTPCode int            `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying cause
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// GetHTTPCode returns the HTTP status associated with the error
func (e *AppError) GetHTTPCode() int {
	if e.HTTPCode != 0 {
		return e.HTTPCode
	}
	return getDefaultHTTPCode(e.Code)
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// Newf creates a new AppError with formatted message
func Newf(code ErrorCode, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with an AppError
func Wrap(cause error, code ErrorCode, message string) *AppError {
	return New(code, message).WithCause(cause)
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(cause error, code ErrorCode, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...)).WithCause(cause)
}

func getDefaultHTTPCode(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidSource, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeProfileNotFound, ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeAlreadySubscribed:
		return http.StatusConflict
	case ErrCodeUnprocessableMetadata:
		return http.StatusUnprocessableEntity
	case ErrCodeProviderUnavailable:
		return http.StatusBadGateway
	case ErrCodeRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Common error constructors

// InvalidSource reports a media type / source combination that cannot be served
func InvalidSource(format string, args ...any) *AppError {
	return Newf(ErrCodeInvalidSource, format, args...)
}

// ProfileNotFound reports a profile id that does not exist
func ProfileNotFound(id uint) *AppError {
	return Newf(ErrCodeProfileNotFound, "profile %d not found", id).
		WithDetail("profile_id", id)
}

// AlreadySubscribed reports an existing subscription for the same provider title
func AlreadySubscribed(source string, sourceID int64) *AppError {
	return Newf(ErrCodeAlreadySubscribed, "already subscribed to %s:%d", source, sourceID).
		WithDetail("source", source).
		WithDetail("source_id", sourceID)
}

// UnprocessableMetadata reports provider metadata that cannot be stored
func UnprocessableMetadata(field string, cause error) *AppError {
	return Wrapf(cause, ErrCodeUnprocessableMetadata, "invalid %s in provider metadata", field).
		WithDetail("field", field)
}

// ProviderUnavailable reports an upstream fetch failure
func ProviderUnavailable(provider string, cause error) *AppError {
	return Wrapf(cause, ErrCodeProviderUnavailable, "metadata provider '%s' unavailable", provider).
		WithDetail("provider", provider)
}

// StorageFailure reports a local persistence failure
func StorageFailure(operation string, cause error) *AppError {
	return Wrapf(cause, ErrCodeStorageFailure, "%s failed", operation).
		WithDetail("operation", operation)
}

// NotFound creates a not found error
func NotFound(resource string, id any) *AppError {
	return Newf(ErrCodeNotFound, "%s not found", resource).
		WithDetail("resource", resource).
		WithDetail("id", id)
}

// ValidationError creates a validation error
func ValidationError(field string, reason string) *AppError {
	return Newf(ErrCodeValidation, "validation failed for field '%s': %s", field, reason).
		WithDetail("field", field).
		WithDetail("reason", reason)
}

// ConfigError creates a configuration error
func ConfigError(key string, reason string) *AppError {
	return Newf(ErrCodeConfig, "configuration error for '%s': %s", key, reason).
		WithDetail("key", key)
}

// As returns the AppError in err's chain, if any
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is checks if an error is of a specific type
func Is(err error, code ErrorCode) bool {
	if appErr, ok := As(err); ok {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return ErrCodeInternal
}

// GetHTTPCode extracts the HTTP status code from an error
func GetHTTPCode(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.GetHTTPCode()
	}
	return http.StatusInternalServerError
}
