package vector

import (
	"sync"

	"github.com/notargets/FEMKernel/utils"
	"gonum.org/v1/gonum/floats"
)

// Vector is an immutable ordered sequence of reals. Every operation returns a
// new Vector; the Euclidean norm is computed once on first use.
type Vector struct {
	elements []float64

	normOnce sync.Once
	norm     float64
}

// New copies elements into a new Vector
func New(elements []float64) (*Vector, error) {
	if elements == nil {
		return nil, &utils.NilSourceError{What: "vector source"}
	}
	data := make([]float64, len(elements))
	copy(data, elements)
	return &Vector{elements: data}, nil
}

// Zeros returns a vector of n zeros
func Zeros(n int) *Vector {
	return &Vector{elements: make([]float64, n)}
}

// wrap takes ownership of data, callers must not retain it
func wrap(data []float64) *Vector {
	return &Vector{elements: data}
}

func (v *Vector) Len() int { return len(v.elements) }

// At returns element i, panicking when i is out of range like slice indexing
func (v *Vector) At(i int) float64 { return v.elements[i] }

// RawData returns a copy of the elements
func (v *Vector) RawData() []float64 {
	data := make([]float64, len(v.elements))
	copy(data, v.elements)
	return data
}

// Norm returns the Euclidean norm, safe for concurrent use
func (v *Vector) Norm() float64 {
	v.normOnce.Do(func() {
		v.norm = floats.Norm(v.elements, 2)
	})
	return v.norm
}

func (v *Vector) checkSize(op string, w *Vector) error {
	if w == nil {
		return &utils.NilSourceError{What: op + " operand"}
	}
	if len(v.elements) != len(w.elements) {
		return &utils.SizeMismatchError{Op: op, Left: len(v.elements), Right: len(w.elements)}
	}
	return nil
}

// Add returns v + w
func (v *Vector) Add(w *Vector) (*Vector, error) {
	if err := v.checkSize("add", w); err != nil {
		return nil, err
	}
	return wrap(floats.AddTo(make([]float64, len(v.elements)), v.elements, w.elements)), nil
}

// Sub returns v - w
func (v *Vector) Sub(w *Vector) (*Vector, error) {
	if err := v.checkSize("sub", w); err != nil {
		return nil, err
	}
	return wrap(floats.SubTo(make([]float64, len(v.elements)), v.elements, w.elements)), nil
}

// AXPY returns v + alpha*w
func (v *Vector) AXPY(alpha float64, w *Vector) (*Vector, error) {
	if err := v.checkSize("axpy", w); err != nil {
		return nil, err
	}
	return wrap(floats.AddScaledTo(make([]float64, len(v.elements)), v.elements, alpha, w.elements)), nil
}

// Scale returns s*v
func (v *Vector) Scale(s float64) *Vector {
	return wrap(floats.ScaleTo(make([]float64, len(v.elements)), s, v.elements))
}

// Dot returns the inner product of v and w
func (v *Vector) Dot(w *Vector) (float64, error) {
	if err := v.checkSize("dot", w); err != nil {
		return 0, err
	}
	return floats.Dot(v.elements, w.elements), nil
}

// Normalize returns v / |v|
func (v *Vector) Normalize() (*Vector, error) {
	n := v.Norm()
	if n == 0 {
		return nil, &utils.ZeroNormError{Len: len(v.elements)}
	}
	return v.Scale(1 / n), nil
}
