package quadrature

import (
	"fmt"
	"math"

	"github.com/notargets/FEMKernel/mesh"
	"github.com/notargets/FEMKernel/utils"
)

// Quadrature integrates scalar functions over physical triangles with one
// reference rule, fixed at construction
type Quadrature struct {
	rule     Rule
	degenTol float64
}

// Option configures a Quadrature
type Option func(*Quadrature)

// WithDegenerateTolerance overrides mesh.DegenerateTolerance
func WithDegenerateTolerance(tol float64) Option {
	return func(q *Quadrature) { q.degenTol = tol }
}

// New returns a Quadrature exact for polynomials up to degree
func New(degree int, opts ...Option) (*Quadrature, error) {
	rule, err := RuleForDegree(degree)
	if err != nil {
		return nil, err
	}
	return NewFromRule(rule, opts...)
}

// NewFromRule wraps a caller supplied rule after validating it
func NewFromRule(rule Rule, opts ...Option) (*Quadrature, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	q := &Quadrature{
		rule: Rule{
			Name:    rule.Name,
			Degree:  rule.Degree,
			Points:  append([]mesh.Point2D(nil), rule.Points...),
			Weights: append([]float64(nil), rule.Weights...),
		},
		degenTol: mesh.DegenerateTolerance,
	}
	for _, opt := range opts {
		opt(q)
	}
	if !(q.degenTol >= 0) || math.IsInf(q.degenTol, 0) {
		return nil, fmt.Errorf("degenerate tolerance %g must be finite and non-negative: %w",
			q.degenTol, utils.ErrInvalidArgument)
	}
	return q, nil
}

// Degree is the polynomial exactness of the rule
func (q *Quadrature) Degree() int { return q.rule.Degree }

func (q *Quadrature) Rule() Rule { return q.rule }

// DegenerateTolerance is the relative |det J| threshold below which a
// triangle is rejected
func (q *Quadrature) DegenerateTolerance() float64 { return q.degenTol }

// Points returns the rule's points mapped onto tri, with the physical
// weights (reference weight * |det J|). The triangle is checked for
// degeneracy first.
func (q *Quadrature) Points(tri mesh.Triangle) ([]mesh.Point2D, []float64, error) {
	if err := tri.CheckDegenerate(q.degenTol); err != nil {
		return nil, nil, err
	}
	detJ := math.Abs(tri.Jacobian())
	pts := make([]mesh.Point2D, len(q.rule.Points))
	wts := make([]float64, len(q.rule.Weights))
	for i, p := range q.rule.Points {
		pts[i] = tri.Map(p)
		wts[i] = q.rule.Weights[i] * detJ
	}
	return pts, wts, nil
}

// Integrate approximates the integral of f over tri
func (q *Quadrature) Integrate(f func(mesh.Point2D) float64, tri mesh.Triangle) (float64, error) {
	if f == nil {
		return 0, &utils.NilSourceError{What: "integrand"}
	}
	if err := tri.CheckDegenerate(q.degenTol); err != nil {
		return 0, err
	}
	var sum float64
	for i, p := range q.rule.Points {
		sum += q.rule.Weights[i] * f(tri.Map(p))
	}
	return sum * math.Abs(tri.Jacobian()), nil
}

func (q *Quadrature) String() string {
	return fmt.Sprintf("Quadrature: %s, degree %d, %d points", q.rule.Name, q.rule.Degree, q.rule.NumPoints())
}
