package models

import (
	"errors"
	"fmt"
)

// Sentinel categories. Concrete errors below unwrap to one of these so
// callers can branch with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage unavailable")
)

// ValidationError reports malformed user input. The operation that returned
// it made no state change.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NotFoundError reports a referenced record that does not exist.
type NotFoundError struct {
	Kind string
	Id   string
}

func NewStampNotFound(id string) *NotFoundError {
	return &NotFoundError{Kind: "stamp", Id: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.Id)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// StorageWarning reports a non-fatal persistence failure. Whoever receives
// one keeps running on the fallback state.
type StorageWarning struct {
	Op   string
	Path string
	Err  error
}

func (w *StorageWarning) Error() string {
	if w.Path == "" {
		return fmt.Sprintf("%s: %v", w.Op, w.Err)
	}
	return fmt.Sprintf("%s %s: %v", w.Op, w.Path, w.Err)
}

func (w *StorageWarning) Unwrap() []error {
	return []error{ErrStorage, w.Err}
}
