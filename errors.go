package sptensor

import (
	"errors"
	"fmt"

	"github.com/hupe1980/sptensor/coord"
)

var (
	// ErrBadShape is returned when a shape has too many axes or an extent
	// that is zero or not encodable.
	ErrBadShape = errors.New("sptensor: invalid shape")

	// ErrDimensionMismatch is returned when a coordinate's length differs
	// from the tensor order.
	ErrDimensionMismatch = errors.New("sptensor: dimension mismatch")

	// ErrOutOfBounds is returned when a coordinate component is not below
	// the matching extent.
	ErrOutOfBounds = errors.New("sptensor: index out of bounds")

	// ErrModeMismatch is returned by Trace and Contract when the selected
	// modes are invalid or their extents differ.
	ErrModeMismatch = errors.New("sptensor: mode mismatch")

	// ErrNilTensor is returned when a nil tensor is passed to an operator.
	ErrNilTensor = errors.New("sptensor: nil tensor")
)

// BoundsError reports the first axis whose index is out of range.
type BoundsError struct {
	Axis   int
	Index  coord.Mode
	Extent coord.Mode
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("sptensor: index %d out of bounds for axis %d with extent %d", e.Index, e.Axis, e.Extent)
}

func (e *BoundsError) Unwrap() error { return ErrOutOfBounds }

// ModeError describes an invalid Trace or Contract mode selection.
type ModeError struct {
	Op      string
	ModeA   int
	ModeB   int
	ExtentA coord.Mode
	ExtentB coord.Mode
	Reason  string
}

func (e *ModeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("sptensor: %s modes (%d, %d): %s", e.Op, e.ModeA, e.ModeB, e.Reason)
	}
	return fmt.Sprintf("sptensor: %s modes (%d, %d) have extents %d and %d", e.Op, e.ModeA, e.ModeB, e.ExtentA, e.ExtentB)
}

func (e *ModeError) Unwrap() error { return ErrModeMismatch }
