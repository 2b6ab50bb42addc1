package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
	ErrorTypeExternal     ErrorType = "EXTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrCodeRequired          ErrorCode = "REQUIRED"
	ErrCodeInvalidName       ErrorCode = "INVALID_NAME"
	ErrCodeNameTooLong       ErrorCode = "NAME_TOO_LONG"
	ErrCodeInvalidEmail      ErrorCode = "INVALID_EMAIL"
	ErrCodeEmailInUse        ErrorCode = "EMAIL_IN_USE"
	ErrCodeInvalidDepartment ErrorCode = "INVALID_DEPARTMENT"

	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeEmployeeNotFound ErrorCode = "EMPLOYEE_NOT_FOUND"
	ErrCodeRequestFailed    ErrorCode = "REQUEST_FAILED"
	ErrCodeUnexpectedStatus ErrorCode = "UNEXPECTED_STATUS"
	ErrCodeDecodeFailed     ErrorCode = "DECODE_FAILED"

	ErrCodeLoginFailed  ErrorCode = "LOGIN_FAILED"
	ErrCodeSignupFailed ErrorCode = "SIGNUP_FAILED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// Fields flattens validation details into field -> message. The first message
// recorded for a field wins.
func (e *AppError) Fields() map[string]string {
	fields := make(map[string]string)
	if e == nil || e.Details == nil {
		return fields
	}
	if validationErrors, ok := e.Details.(ValidationErrors); ok {
		for _, ve := range validationErrors.Errors {
			if _, seen := fields[ve.Field]; !seen {
				fields[ve.Field] = ve.Message
			}
		}
	}
	return fields
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func newAppError(t ErrorType, code ErrorCode, message string, status int) *AppError {
	return &AppError{Type: t, Code: code, Message: message, StatusCode: status}
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return newAppError(ErrorTypeValidation, code, message, http.StatusBadRequest)
}

// NewValidationFieldError carries a single field message in Details.
func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return NewValidationError("Validation failed", ErrCodeValidationFailed).WithDetails(ValidationErrors{
		Errors: []ValidationError{{Field: field, Message: message, Code: string(code)}},
	})
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return newAppError(ErrorTypeNotFound, code, message, http.StatusNotFound)
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return newAppError(ErrorTypeUnauthorized, code, message, http.StatusUnauthorized)
}

func NewInternalError(message string, cause error) *AppError {
	return newAppError(ErrorTypeInternal, "INTERNAL_ERROR", message, http.StatusInternalServerError).WithCause(cause)
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return newAppError(ErrorTypeConflict, code, message, http.StatusConflict)
}

// NewExternalError describes a failed call to a remote collaborator. status is
// zero when no response was received at all.
func NewExternalError(message string, code ErrorCode, status int) *AppError {
	return newAppError(ErrorTypeExternal, code, message, status)
}

// NewRemoteError classifies a non-2xx response so callers can branch on Type.
// Codes are generic; resource clients narrow them where they know the resource.
func NewRemoteError(status int, message string) *AppError {
	if message == "" {
		message = http.StatusText(status)
	}
	switch status {
	case http.StatusNotFound:
		return NewNotFoundError(message, ErrCodeNotFound)
	case http.StatusUnauthorized:
		return NewUnauthorizedError(message, ErrCodeUnexpectedStatus)
	case http.StatusConflict:
		return NewConflictError(message, ErrCodeUnexpectedStatus)
	default:
		return NewExternalError(message, ErrCodeUnexpectedStatus, status)
	}
}

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// FieldErrors returns the field-scoped messages carried by err, or an empty map.
func FieldErrors(err error) map[string]string {
	if appErr, ok := IsAppError(err); ok {
		return appErr.Fields()
	}
	return map[string]string{}
}

func IsValidation(err error) bool {
	appErr, ok := IsAppError(err)
	return ok && appErr.Type == ErrorTypeValidation
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
