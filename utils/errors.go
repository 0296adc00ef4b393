package utils

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the kernel. Every typed error below unwraps to one
// of these so callers can branch with errors.Is.
var (
	ErrInvalidArgument = errors.New("fem: invalid argument")
	ErrNumerical       = errors.New("fem: numerical error")
)

// SizeMismatchError reports operands of different lengths
type SizeMismatchError struct {
	Op          string
	Left, Right int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("%s: vector size must match (%d != %d)", e.Op, e.Left, e.Right)
}

func (e *SizeMismatchError) Unwrap() error { return ErrInvalidArgument }

// NilSourceError reports an absent input
type NilSourceError struct {
	What string
}

func (e *NilSourceError) Error() string {
	return fmt.Sprintf("%s is nil", e.What)
}

func (e *NilSourceError) Unwrap() error { return ErrInvalidArgument }

// UnknownKindError reports an element kind identifier outside the supported set
type UnknownKindError struct {
	Name string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown or unimplemented finite element type %q", e.Name)
}

func (e *UnknownKindError) Unwrap() error { return ErrInvalidArgument }

// DegenerateTriangleError reports a triangle whose affine map is (nearly) singular.
// ID is the mesh triangle index, or -1 for a triangle not owned by a mesh.
type DegenerateTriangleError struct {
	ID       int
	Vertices [3][2]float64
	Jacobian float64
}

func (e *DegenerateTriangleError) Error() string {
	return fmt.Sprintf("degenerate triangle %d %v: jacobian determinant %.6e",
		e.ID, e.Vertices, e.Jacobian)
}

func (e *DegenerateTriangleError) Unwrap() error { return ErrNumerical }

// ZeroNormError reports normalization of a vector with zero norm
type ZeroNormError struct {
	Len int
}

func (e *ZeroNormError) Error() string {
	return fmt.Sprintf("cannot normalize zero vector of length %d", e.Len)
}

func (e *ZeroNormError) Unwrap() error { return ErrNumerical }
