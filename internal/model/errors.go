package model

import "fmt"

// ValidationError names the first field that failed client-side validation.
// It is surfaced before any store call is made and is never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// AuthError means no usable identity could be resolved. Mutating operations
// are refused while it persists.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return "auth: " + e.Reason
}

// PersistenceError wraps a failure at the store boundary. Callers surface it
// as a transient status; nothing retries automatically.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
