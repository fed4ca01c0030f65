package core

import (
	"fmt"

	"github.com/google/uuid"
)

// ValidationError reports unusable lookup input. No dataset or network
// access happens when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ErrEmptyIdentifier is returned by Find for a blank query.
var ErrEmptyIdentifier = &ValidationError{Field: "email", Reason: "identifier is empty"}

// LoadError reports a failed dataset load. Err is usually a *fetch.Error
// or one of the sheet package errors.
type LoadError struct {
	Source string
	LoadID uuid.UUID
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dataset from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
