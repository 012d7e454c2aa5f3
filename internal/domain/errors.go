package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors for use with errors.Is()
var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation failed")
	ErrConstraint    = errors.New("constraint violation")
	ErrConnection    = errors.New("database unreachable")
	ErrPoolExhausted = errors.New("connection pool exhausted")

	// ErrNestedTransaction is returned when a transaction scope is opened
	// while another scope is already active on the same context.
	ErrNestedTransaction = errors.New("transaction scope already active")
)

// ValidationError indicates bad or missing input fields.
// Fields lists the offending field names.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (fields: %s)", e.Message, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError indicates a resource or referenced parent does not resolve.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: not found", e.Resource, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConstraintError surfaces a foreign-key or uniqueness violation from the store.
type ConstraintError struct {
	Message    string
	Constraint string
}

func (e *ConstraintError) Error() string { return e.Message }

func (e *ConstraintError) Is(target error) bool { return target == ErrConstraint }

// ConnectionError indicates the store is unreachable.
type ConnectionError struct {
	Message string
	Err     error
}

func (e *ConnectionError) Error() string { return e.Message }

func (e *ConnectionError) Unwrap() error { return e.Err }

func (e *ConnectionError) Is(target error) bool { return target == ErrConnection }

// PoolExhaustedError indicates pool acquisition timed out.
// Callers should treat it as retryable with backoff.
type PoolExhaustedError struct {
	Message string
	Err     error
}

func (e *PoolExhaustedError) Error() string { return e.Message }

func (e *PoolExhaustedError) Unwrap() error { return e.Err }

func (e *PoolExhaustedError) Is(target error) bool { return target == ErrPoolExhausted }

// NewValidationError builds a ValidationError for the given fields.
func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// NewNotFoundError builds a NotFoundError for a resource id.
func NewNotFoundError(resource string, id int64) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: strconv.FormatInt(id, 10)}
}

// NewNotFoundByKey builds a NotFoundError for a non-numeric lookup key.
func NewNotFoundByKey(resource, key string) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: key}
}
