package macperm

import (
	"errors"
	"fmt"
)

// Error represents a macperm error with additional context and actionable guidance.
type Error struct {
	Op   string // Operation that failed (e.g., "resolve home directory", "open settings")
	Err  error  // Underlying error
	Help string // Actionable guidance for the user
}

func (e *Error) Error() string {
	if e.Help != "" {
		return fmt.Sprintf("macperm: %s: %v\n  hint: %s", e.Op, e.Err, e.Help)
	}
	return fmt.Sprintf("macperm: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	// ErrQuit is returned by Manager.Run when the user chose to quit and no
	// quit handler was installed.
	ErrQuit = errors.New("macperm: quit requested")

	// ErrUnsupported is returned by operations that only exist on macOS.
	ErrUnsupported = errors.New("macperm: not supported on this platform")

	// ErrUnknownKind is returned when a permission name cannot be parsed.
	ErrUnknownKind = errors.New("macperm: unknown permission kind")
)
