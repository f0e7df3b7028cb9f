package model

import (
	"errors"
	"fmt"
)

// Error kinds raised by the mutation core. Match them with errors.Is.
var (
	// ErrUsage reports a violated precondition such as a minimum size or line count.
	ErrUsage = errors.New("usage error")
	// ErrIndexOutOfRange reports an index or offset beyond the valid range.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrUnexpected reports malformed tree syntax or a nil input.
	ErrUnexpected = errors.New("unexpected error")
)

// Error codes surfaced to the host alongside the reason.
const (
	CodeUsage           = 1
	CodeIndexOutOfRange = 2
	CodeUnexpected      = 3
)

// MutationError carries one of the three error kinds with a code and a reason.
type MutationError struct {
	Kind   error
	Code   int
	Reason string
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s (code %d): %s", e.Kind, e.Code, e.Reason)
}

// Unwrap exposes the kind so errors.Is(err, ErrUsage) works.
func (e *MutationError) Unwrap() error {
	return e.Kind
}

// NewUsageError builds an ErrUsage error.
func NewUsageError(format string, args ...any) error {
	return &MutationError{Kind: ErrUsage, Code: CodeUsage, Reason: fmt.Sprintf(format, args...)}
}

// NewIndexOutOfRangeError builds an ErrIndexOutOfRange error.
func NewIndexOutOfRangeError(format string, args ...any) error {
	return &MutationError{Kind: ErrIndexOutOfRange, Code: CodeIndexOutOfRange, Reason: fmt.Sprintf(format, args...)}
}

// NewUnexpectedError builds an ErrUnexpected error.
func NewUnexpectedError(format string, args ...any) error {
	return &MutationError{Kind: ErrUnexpected, Code: CodeUnexpected, Reason: fmt.Sprintf(format, args...)}
}
