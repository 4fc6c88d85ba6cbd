// Package fault defines the error kinds reported by the compiler.
package fault

import (
	"errors"
	"fmt"
)

var (
	// ErrInput marks errors caused by the program image or the command line.
	ErrInput = errors.New("input error")
	// ErrInternal marks violated compiler invariants, these indicate a compiler defect.
	ErrInternal = errors.New("internal compiler error")
)

// Input returns a formatted error that wraps ErrInput.
func Input(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInput, fmt.Sprintf(format, args...))
}

// Internal returns a formatted error that wraps ErrInternal.
func Internal(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInternal, fmt.Sprintf(format, args...))
}

// IsInternal returns whether the error chain contains an internal compiler error.
func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}
