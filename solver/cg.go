package solver

import (
	"context"
	"fmt"
	"math"

	"github.com/james-bowman/sparse"
	"github.com/notargets/FEMKernel/utils"
	"github.com/notargets/FEMKernel/vector"
)

// Operator applies a square matrix to a vector
type Operator interface {
	Size() int
	Apply(x *vector.Vector) (*vector.Vector, error)
}

// CSROperator applies an assembled sparse matrix
type CSROperator struct {
	m *sparse.CSR
}

func NewCSROperator(m *sparse.CSR) *CSROperator {
	return &CSROperator{m: m}
}

func (op *CSROperator) Size() int {
	r, _ := op.m.Dims()
	return r
}

func (op *CSROperator) Apply(x *vector.Vector) (*vector.Vector, error) {
	r, c := op.m.Dims()
	if x.Len() != c {
		return nil, &utils.SizeMismatchError{Op: "apply", Left: c, Right: x.Len()}
	}
	y := make([]float64, r)
	op.m.MulVecTo(y, false, x.RawData())
	return vector.New(y)
}

// ConjugateGradient solves A x = b for symmetric positive definite A starting
// from x, until ||b - A x|| <= accuracy*||b|| (absolute when b is zero). It
// returns the solution, the iteration count and the final relative residual.
func ConjugateGradient(ctx context.Context, A Operator, b, x *vector.Vector,
	accuracy float64, maxIterations int) (*vector.Vector, int, float64, error) {
	if A.Size() != b.Len() {
		return nil, 0, 0, &utils.SizeMismatchError{Op: "conjugate gradient", Left: A.Size(), Right: b.Len()}
	}
	scale := b.Norm()
	if scale == 0 {
		scale = 1
	}
	target := accuracy * scale

	ax, err := A.Apply(x)
	if err != nil {
		return nil, 0, 0, err
	}
	r, err := b.Sub(ax)
	if err != nil {
		return nil, 0, 0, err
	}
	rs, _ := r.Dot(r)
	if math.Sqrt(rs) <= target {
		return x, 0, math.Sqrt(rs) / scale, nil
	}
	p := r
	for it := 1; it <= maxIterations; it++ {
		if err := ctx.Err(); err != nil {
			return nil, it - 1, math.Sqrt(rs) / scale, err
		}
		ap, err := A.Apply(p)
		if err != nil {
			return nil, it, 0, err
		}
		pap, _ := p.Dot(ap)
		if !(pap > 0) {
			return nil, it, math.Sqrt(rs) / scale,
				fmt.Errorf("matrix is not positive definite (p'Ap = %g): %w", pap, utils.ErrNumerical)
		}
		alpha := rs / pap
		if x, err = x.AXPY(alpha, p); err != nil {
			return nil, it, 0, err
		}
		if r, err = r.AXPY(-alpha, ap); err != nil {
			return nil, it, 0, err
		}
		rsNew, _ := r.Dot(r)
		if math.Sqrt(rsNew) <= target {
			return x, it, math.Sqrt(rsNew) / scale, nil
		}
		if p, err = r.AXPY(rsNew/rs, p); err != nil {
			return nil, it, 0, err
		}
		rs = rsNew
	}
	return nil, maxIterations, math.Sqrt(rs) / scale,
		fmt.Errorf("conjugate gradient did not reach %g in %d iterations (residual %g): %w",
			accuracy, maxIterations, math.Sqrt(rs)/scale, utils.ErrNumerical)
}
