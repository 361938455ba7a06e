package model

import (
	"errors"
	"fmt"
)

// InvalidInputError marks malformed or impossible numeric input rejected at
// the boundary. All other anomalies (missing metadata, zero evidence,
// unknown source types) degrade to defaults and are never errors.
type InvalidInputError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s=%v (%s)", e.Field, e.Value, e.Reason)
}

// NewInvalidInput creates an InvalidInputError
func NewInvalidInput(field string, value interface{}, reason string) *InvalidInputError {
	return &InvalidInputError{Field: field, Value: value, Reason: reason}
}

// IsInvalidInput reports whether err is an InvalidInputError
func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}
