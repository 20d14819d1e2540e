package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is.
// Every typed error in this package unwraps to exactly one of these.
var (
	ErrObjectNotFound  = errors.New("object not found")
	ErrValueIsInvalid  = errors.New("value is invalid")
	ErrValueIsRequired = errors.New("value is required")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrConnectivity    = errors.New("network unreachable")
	ErrStorage         = errors.New("storage failure")
)

// sanitize collapses newlines so error messages stay single-line in logs.
func sanitize(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r", " "), "\n", " ")
}

// ObjectNotFoundError indicates that a referenced object does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without an underlying cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %v (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %v", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a supplied value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without an underlying cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsRequiredError indicates that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without an underlying cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ConflictError indicates that a mutation targets a state that forbids it:
// an invalid status transition, a duplicate serial, a stock unit reserved by
// another order, or a lost optimistic concurrency race.
type ConflictError struct {
	ParamName string
	Cause     error
}

// NewConflictError creates a ConflictError without an underlying cause.
func NewConflictError(paramName string) *ConflictError {
	return &ConflictError{ParamName: paramName}
}

// NewConflictErrorWithCause creates a ConflictError wrapping an underlying cause.
func NewConflictErrorWithCause(paramName string, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrConflict, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrConflict, e.ParamName))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// UnauthorizedError indicates the acting user lacks permission for an operation,
// including role mismatches and couriers acting on orders not assigned to them.
type UnauthorizedError struct {
	ParamName string
	Cause     error
}

// NewUnauthorizedError creates an UnauthorizedError without an underlying cause.
func NewUnauthorizedError(paramName string) *UnauthorizedError {
	return &UnauthorizedError{ParamName: paramName}
}

// NewUnauthorizedErrorWithCause creates an UnauthorizedError wrapping an underlying cause.
func NewUnauthorizedErrorWithCause(paramName string, cause error) *UnauthorizedError {
	return &UnauthorizedError{ParamName: paramName, Cause: cause}
}

func (e *UnauthorizedError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrUnauthorized, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrUnauthorized, e.ParamName))
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// ConnectivityError indicates a network-dependent call failed because the
// network was unreachable. Callers that own an offline action queue may
// convert this error into a deferred success; every other error kind must
// surface immediately.
type ConnectivityError struct {
	ParamName string
	Cause     error
}

// NewConnectivityError creates a ConnectivityError without an underlying cause.
func NewConnectivityError(paramName string) *ConnectivityError {
	return &ConnectivityError{ParamName: paramName}
}

// NewConnectivityErrorWithCause creates a ConnectivityError wrapping an underlying cause.
func NewConnectivityErrorWithCause(paramName string, cause error) *ConnectivityError {
	return &ConnectivityError{ParamName: paramName, Cause: cause}
}

func (e *ConnectivityError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrConnectivity, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrConnectivity, e.ParamName))
}

func (e *ConnectivityError) Unwrap() error {
	return ErrConnectivity
}

// StorageError indicates a backing store failure. It is fatal for the current
// request; committed state is never corrupted because each operation is
// persisted within a single transaction.
type StorageError struct {
	ParamName string
	Cause     error
}

// NewStorageError creates a StorageError wrapping an underlying cause.
func NewStorageError(paramName string, cause error) *StorageError {
	return &StorageError{ParamName: paramName, Cause: cause}
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrStorage, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrStorage, e.ParamName))
}

func (e *StorageError) Unwrap() error {
	return ErrStorage
}
