package charindex

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds indicates a range that is negative or extends past the
	// end of the text.
	ErrOutOfBounds = errors.New("range out of bounds")

	// ErrMisaligned indicates an offset that falls inside a logical character.
	ErrMisaligned = errors.New("offset is not on a character boundary")
)

// RangeError reports a range that could not be converted.
type RangeError struct {
	Op     string
	Start  int
	Length int
	// Unit of the range; ignored when Chars is set.
	Unit Unit
	// Chars is set when the range was measured in logical characters.
	Chars bool
	Err   error
}

// Error implements the error interface
func (e *RangeError) Error() string {
	space := e.Unit.String()
	if e.Chars {
		space = "character"
	}
	return fmt.Sprintf("charindex: %s %s range [%d, %d): %v", e.Op, space, e.Start, e.Start+e.Length, e.Err)
}

// Unwrap returns the underlying error
func (e *RangeError) Unwrap() error {
	return e.Err
}
