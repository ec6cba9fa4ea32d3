package rectpack

import (
	"errors"
	"fmt"
)

// Sentinel errors for rectpack package.
var (
	// ErrOutOfSpace is returned when a rectangle cannot be placed in the
	// remaining free area of the canvas.
	ErrOutOfSpace = errors.New("rectpack: out of space")

	// ErrInvalidSize is returned for non-positive canvas or rectangle dimensions.
	ErrInvalidSize = errors.New("rectpack: invalid size")
)

// OutOfSpaceError reports the first rectangle that could not be placed.
// It unwraps to ErrOutOfSpace.
type OutOfSpaceError struct {
	// ID is the back-reference of the rejected rectangle.
	ID int

	// W and H are the requested dimensions.
	W, H int
}

func (e *OutOfSpaceError) Error() string {
	return fmt.Sprintf("rectpack: no room for rectangle %d (%dx%d)", e.ID, e.W, e.H)
}

// Unwrap returns ErrOutOfSpace.
func (e *OutOfSpaceError) Unwrap() error {
	return ErrOutOfSpace
}
