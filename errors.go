package rx

import (
	"errors"
	"fmt"

	"github.com/coregx/rx/engine"
)

// ErrInvalidPattern is matched by every *CompileError.
var ErrInvalidPattern = errors.New("invalid regex pattern")

// CompileError represents a pattern compilation error.
type CompileError struct {
	Pattern string
	Engine  engine.Kind
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	return fmt.Sprintf("rx: compiling %q with %s: %v", e.Pattern, e.Engine, e.Err)
}

// Unwrap returns the underlying engine error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidPattern.
func (e *CompileError) Is(target error) bool {
	return target == ErrInvalidPattern
}
