package evaluator

import (
	"fmt"
	"math"

	"github.com/notargets/FEMKernel/element"
	"github.com/notargets/FEMKernel/field"
	"github.com/notargets/FEMKernel/mesh"
	"github.com/notargets/FEMKernel/partitions"
	"github.com/notargets/FEMKernel/quadrature"
	"github.com/notargets/FEMKernel/space"
	"github.com/notargets/FEMKernel/utils"
	log "github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
)

// ExactSolution is a pointwise reference solution
type ExactSolution func(x, y float64) float64

// ErrorEvaluator computes discrete L2 errors. The element loop is split into
// partitions, each integrated by one goroutine, and the partial sums are
// added at the end: results for different worker counts agree to rounding.
type ErrorEvaluator struct {
	Workers    int // <= 0: one per CPU
	Strategy   partitions.PartitionStrategy
	Quadrature *quadrature.Quadrature // nil: the space's rule
}

type Option func(*ErrorEvaluator)

func WithWorkers(n int) Option {
	return func(ev *ErrorEvaluator) { ev.Workers = n }
}

func WithStrategy(s partitions.PartitionStrategy) Option {
	return func(ev *ErrorEvaluator) { ev.Strategy = s }
}

// WithQuadrature integrates with q instead of the space's rule
func WithQuadrature(q *quadrature.Quadrature) Option {
	return func(ev *ErrorEvaluator) { ev.Quadrature = q }
}

func New(opts ...Option) *ErrorEvaluator {
	ev := &ErrorEvaluator{Strategy: partitions.BlockPartition}
	for _, opt := range opts {
		opt(ev)
	}
	return ev
}

// CalculateError is a serial ErrorEvaluator with the space's rule
func CalculateError(sp *space.Space, exact ExactSolution, f *field.VectorField) (float64, error) {
	return New(WithWorkers(1)).CalculateError(sp, exact, f)
}

// CalculateError returns sqrt( sum_e ∫_e (exact - u_h)^2 ), u_h interpolating
// component 0 of f with the nodes of each element
func (ev *ErrorEvaluator) CalculateError(sp *space.Space, exact ExactSolution, f *field.VectorField) (float64, error) {
	q, err := ev.check(sp, exact, f)
	if err != nil {
		return 0, err
	}
	layout, err := ev.layout(len(sp.Elements))
	if err != nil {
		return 0, err
	}

	p := pool.NewWithResults[float64]().WithErrors().WithFirstError().
		WithMaxGoroutines(layout.NumPartitions)
	for _, part := range layout.Partitions {
		part := part
		p.Go(func() (float64, error) {
			var partial float64
			for _, e := range part.Elements {
				sq, err := elementSquareError(q, sp.Elements[e], exact, f)
				if err != nil {
					return 0, err
				}
				partial += sq
			}
			return partial, nil
		})
	}
	partials, err := p.Wait()
	if err != nil {
		return 0, fmt.Errorf("calculate error: %w", err)
	}

	var squareError float64
	for _, s := range partials {
		squareError += s
	}
	log.WithFields(log.Fields{
		"elements":   len(sp.Elements),
		"partitions": layout.NumPartitions,
		"quadrature": q.Rule().Name,
		"l2":         math.Sqrt(squareError),
	}).Debug("L2 error evaluated")
	return math.Sqrt(squareError), nil
}

// ElementErrors returns, per element, the integral of the squared error
func (ev *ErrorEvaluator) ElementErrors(sp *space.Space, exact ExactSolution, f *field.VectorField) ([]float64, error) {
	q, err := ev.check(sp, exact, f)
	if err != nil {
		return nil, err
	}
	layout, err := ev.layout(len(sp.Elements))
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(sp.Elements))
	p := pool.New().WithErrors().WithFirstError().WithMaxGoroutines(layout.NumPartitions)
	for _, part := range layout.Partitions {
		part := part
		p.Go(func() error {
			for _, e := range part.Elements {
				sq, err := elementSquareError(q, sp.Elements[e], exact, f)
				if err != nil {
					return err
				}
				out[e] = sq
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("element errors: %w", err)
	}
	return out, nil
}

func (ev *ErrorEvaluator) check(sp *space.Space, exact ExactSolution, f *field.VectorField) (*quadrature.Quadrature, error) {
	if sp == nil {
		return nil, &utils.NilSourceError{What: "space"}
	}
	if exact == nil {
		return nil, &utils.NilSourceError{What: "exact solution"}
	}
	if f == nil {
		return nil, &utils.NilSourceError{What: "field"}
	}
	if f.NumVertices() < sp.NumDOF() {
		return nil, &utils.SizeMismatchError{Op: "calculate error", Left: f.NumVertices(), Right: sp.NumDOF()}
	}
	q := ev.Quadrature
	if q == nil {
		q = sp.Quadrature
	}
	if q == nil {
		return nil, &utils.NilSourceError{What: "quadrature"}
	}
	return q, nil
}

func (ev *ErrorEvaluator) layout(numElements int) (*partitions.Layout, error) {
	pb := &partitions.PartitionBuilder{
		NumElements:   numElements,
		NumPartitions: ev.Workers,
		Strategy:      ev.Strategy,
	}
	return pb.BuildPartitions()
}

func elementSquareError(q *quadrature.Quadrature, fe element.FiniteElement,
	exact ExactSolution, f *field.VectorField) (float64, error) {
	return q.Integrate(func(p mesh.Point2D) float64 {
		d := exact(p.X, p.Y) - fe.Interpolate(p, func(dof int) float64 {
			return f.GetValueAt(dof, 0)
		})
		return d * d
	}, fe.Triangle)
}
