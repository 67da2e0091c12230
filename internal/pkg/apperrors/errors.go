package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound = errors.New("resource not found")

	ErrInvalidArgument = errors.New("invalid argument")

	ErrValidation = errors.New("validation failed")

	ErrAlreadyExists = errors.New("resource already exists")

	ErrConflict = errors.New("resource conflict")

	ErrDatabase = errors.New("database error")

	ErrInternalServer = errors.New("internal server error")

	ErrUnauthorized = errors.New("unauthorized")

	// Failures talking to a peer service.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")

	ErrUpstreamNotFound = errors.New("resource not found in external service")

	ErrUpstreamDataMissing = errors.New("upstream service returned no data")
)

type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func NewValidationError(field, message string) error {
	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{Field: field, Message: message})
}

// FieldErrors collects one message per invalid field.
type FieldErrors struct {
	Fields map[string]string
}

func (e *FieldErrors) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *FieldErrors) Unwrap() error {
	return ErrValidation
}

func (e *FieldErrors) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if existing, ok := e.Fields[field]; ok {
		e.Fields[field] = existing + "; " + message
		return
	}
	e.Fields[field] = message
}

func (e *FieldErrors) HasErrors() bool {
	return len(e.Fields) > 0
}

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func WrapDatabaseError(cause error, message string) error {
	return &AppError{
		Code:    "DB_ERROR",
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrDatabase, cause),
	}
}

func WrapUpstreamError(kind error, service, message string, cause error) error {
	wrapped := kind
	if cause != nil {
		wrapped = fmt.Errorf("%w: %w", kind, cause)
	}
	return &AppError{
		Code:    "UPSTREAM_" + strings.ToUpper(service),
		Message: message,
		Cause:   wrapped,
	}
}
