// Package apperr defines the error taxonomy shared by services and
// handlers. Handlers map these with errors.As onto HTTP statuses;
// everything else wraps with fmt.Errorf("%w", ...).
package apperr

import "fmt"

// ValidationError signals bad input shape or range.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validation builds a ValidationError with a formatted message.
func Validation(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// AuthorizationError signals that the actor's role lacks a capability.
// It always maps to a forbidden outcome, never a silent downgrade.
type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string { return e.Msg }

// Forbidden builds an AuthorizationError with a formatted message.
func Forbidden(format string, args ...interface{}) error {
	return &AuthorizationError{Msg: fmt.Sprintf(format, args...)}
}

// StateConflictError signals that an entity was not in the expected
// state for the requested transition.
type StateConflictError struct {
	Msg string
}

func (e *StateConflictError) Error() string { return e.Msg }

// StateConflict builds a StateConflictError with a formatted message.
func StateConflict(format string, args ...interface{}) error {
	return &StateConflictError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError signals that a referenced entity does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// NotFound builds a NotFoundError for the named resource.
func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// DuplicateError signals a uniqueness violation (payroll period,
// budget category, username).
type DuplicateError struct {
	Msg string
}

func (e *DuplicateError) Error() string { return e.Msg }

// Duplicate builds a DuplicateError with a formatted message.
func Duplicate(format string, args ...interface{}) error {
	return &DuplicateError{Msg: fmt.Sprintf(format, args...)}
}

// PersistenceError wraps an underlying storage failure. Callers see a
// generic message; the wrapped cause goes to the audit/error record only.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence wraps err as a PersistenceError for the named operation.
func Persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// AuthenticationError signals failed credential verification. Kept
// deliberately vague toward the caller; the audit log carries the reason.
type AuthenticationError struct {
	Msg string
}

func (e *AuthenticationError) Error() string { return e.Msg }

// InvalidCredentials is the uniform authentication failure.
func InvalidCredentials() error {
	return &AuthenticationError{Msg: "invalid username or password"}
}

// InactiveAccount rejects logins on deactivated accounts.
func InactiveAccount() error {
	return &AuthenticationError{Msg: "account is inactive, contact your administrator"}
}
