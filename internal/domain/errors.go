package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTaskNotFound signals that the referenced id has no matching row. It is
// not an error condition for the store itself; handlers map it to 404.
var ErrTaskNotFound = errors.New("task not found")

// FieldViolation describes a single schema violation on an input field.
type FieldViolation struct {
	Message string `json:"message"`
	Path    string `json:"path"`
}

// ValidationError carries every violation found in one piece of input.
// Violations are collected, not short-circuited, so a payload with three
// problems reports all three.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// NewValidationError builds a single-field validation error.
func NewValidationError(path, message string) *ValidationError {
	return &ValidationError{Violations: []FieldViolation{{Message: message, Path: path}}}
}

// StoreError wraps a connectivity or query failure. The cause stays
// server-side; clients only ever see a generic 500.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
