package texatlas

import (
	"errors"
	"fmt"
)

// Sentinel errors for texatlas. Request and build errors wrap one of them.
var (
	// ErrInvalidArgument is returned for malformed requests and build options.
	ErrInvalidArgument = errors.New("texatlas: invalid argument")

	// ErrDecodeFailure is returned when font or image data cannot be decoded.
	ErrDecodeFailure = errors.New("texatlas: decode failure")

	// ErrOutOfSpace is returned when the requests do not fit the canvas.
	ErrOutOfSpace = errors.New("texatlas: out of space")
)

// OutOfSpaceError names the first request that did not fit.
// It matches both ErrOutOfSpace and rectpack.ErrOutOfSpace.
type OutOfSpaceError struct {
	// ID is the identifier of the font or image request.
	ID string

	// Glyph is the codepoint that failed, valid when IsGlyph is set.
	Glyph   rune
	IsGlyph bool

	// Width and Height are the rectangle size including padding.
	Width, Height int

	// CanvasWidth and CanvasHeight are the requested canvas size.
	CanvasWidth, CanvasHeight int

	err error
}

func (e *OutOfSpaceError) Error() string {
	if e.IsGlyph {
		return fmt.Sprintf("texatlas: no room for glyph %U of %q (%dx%d) in %dx%d canvas",
			e.Glyph, e.ID, e.Width, e.Height, e.CanvasWidth, e.CanvasHeight)
	}
	return fmt.Sprintf("texatlas: no room for image %q (%dx%d) in %dx%d canvas",
		e.ID, e.Width, e.Height, e.CanvasWidth, e.CanvasHeight)
}

func (e *OutOfSpaceError) Unwrap() []error {
	if e.err == nil {
		return []error{ErrOutOfSpace}
	}
	return []error{ErrOutOfSpace, e.err}
}

func invalidArgf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func decodeFailure(kind, id string, err error) error {
	return fmt.Errorf("%w: %s %q: %w", ErrDecodeFailure, kind, id, err)
}
