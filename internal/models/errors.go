package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInput marks a request that was rejected before any call was made.
	ErrInput = errors.New("invalid input")
	// ErrTransport marks a failed call to the completion endpoint.
	ErrTransport = errors.New("completion call failed")
	// ErrConfiguration marks missing credentials or an invalid catalog at startup.
	ErrConfiguration = errors.New("invalid configuration")
)

// InputError describes one rejected field of a SamplingRequest.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *InputError) Is(target error) bool {
	return target == ErrInput
}

// NewInputError builds an InputError for field.
func NewInputError(field string, format string, args ...any) *InputError {
	return &InputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
