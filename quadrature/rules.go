package quadrature

import (
	"fmt"
	"math"

	"github.com/notargets/FEMKernel/element/library/gonudg"
	"github.com/notargets/FEMKernel/mesh"
	"github.com/notargets/FEMKernel/utils"
)

// MaxDegree is the highest exactness degree New will build a rule for
const MaxDegree = 30

// Rule is a quadrature rule on the reference triangle (0,0),(1,0),(0,1).
// The weights sum to the reference area, 1/2. Degree is the highest total
// polynomial degree the rule integrates exactly.
type Rule struct {
	Name    string
	Degree  int
	Points  []mesh.Point2D
	Weights []float64
}

func (r Rule) NumPoints() int { return len(r.Points) }

// Validate checks the rule is usable on the reference triangle
func (r Rule) Validate() error {
	if len(r.Points) == 0 || len(r.Points) != len(r.Weights) {
		return fmt.Errorf("rule %q has %d points and %d weights: %w",
			r.Name, len(r.Points), len(r.Weights), utils.ErrInvalidArgument)
	}
	if r.Degree < 0 {
		return fmt.Errorf("rule %q has negative degree %d: %w", r.Name, r.Degree, utils.ErrInvalidArgument)
	}
	var sum float64
	for _, w := range r.Weights {
		sum += w
	}
	if math.Abs(sum-0.5) > 1.e-12 {
		return fmt.Errorf("rule %q weights sum to %.15g, want 0.5: %w", r.Name, sum, utils.ErrInvalidArgument)
	}
	return nil
}

// symmetricOrbit expands a barycentric orbit (a, b, b) with weight w, given
// for a unit-area reference, into its three reference points
func symmetricOrbit(a, b, w float64) ([]mesh.Point2D, []float64) {
	pts := []mesh.Point2D{{X: b, Y: b}, {X: a, Y: b}, {X: b, Y: a}}
	return pts, []float64{w / 2, w / 2, w / 2}
}

func buildRule(name string, degree int, centroidWeight float64, orbits ...[3]float64) Rule {
	r := Rule{Name: name, Degree: degree}
	if centroidWeight != 0 {
		r.Points = append(r.Points, mesh.Point2D{X: 1. / 3., Y: 1. / 3.})
		r.Weights = append(r.Weights, centroidWeight/2)
	}
	for _, o := range orbits {
		p, w := symmetricOrbit(o[0], o[1], o[2])
		r.Points = append(r.Points, p...)
		r.Weights = append(r.Weights, w...)
	}
	return r
}

// Tabulated symmetric rules, weights normalized to a unit-area triangle
var (
	Centroid = buildRule("centroid", 1, 1.)

	ThreePoint = buildRule("three-point", 2, 0.,
		[3]float64{2. / 3., 1. / 6., 1. / 3.})

	// Dunavant degree 4
	SixPoint = buildRule("dunavant-6", 4, 0.,
		[3]float64{0.108103018168070, 0.445948490915965, 0.223381589678011},
		[3]float64{0.816847572980459, 0.091576213509771, 0.109951743655322})

	// Radon degree 5
	SevenPoint = buildRule("radon-7", 5, 0.225,
		[3]float64{0.059715871789770, 0.470142064105115, 0.132394152788506},
		[3]float64{0.797426985353087, 0.101286507323456, 0.125939180544827})

	tabulated = []Rule{Centroid, ThreePoint, SixPoint, SevenPoint}
)

// CollapsedRule builds a Gauss-Jacobi tensor rule exact to the given degree,
// using the collapsed map x = (1+a)(1-b)/4, y = (1+b)/2 from [-1,1]^2. The
// (1-b) factor of that map is absorbed in a Jacobi(1,0) rule along b.
func CollapsedRule(degree int) (Rule, error) {
	if degree < 0 || degree > MaxDegree {
		return Rule{}, fmt.Errorf("collapsed rule degree %d outside [0,%d]: %w",
			degree, MaxDegree, utils.ErrInvalidArgument)
	}
	// n points per direction integrate degree 2n-1
	n := (degree + 2) / 2
	ra, wa, err := gonudg.JacobiGQ(0, 0, n-1)
	if err != nil {
		return Rule{}, fmt.Errorf("collapsed rule degree %d: %w", degree, err)
	}
	rb, wb, err := gonudg.JacobiGQ(1, 0, n-1)
	if err != nil {
		return Rule{}, fmt.Errorf("collapsed rule degree %d: %w", degree, err)
	}
	r := Rule{
		Name:    fmt.Sprintf("gauss-jacobi-%dx%d", n, n),
		Degree:  degree,
		Points:  make([]mesh.Point2D, 0, n*n),
		Weights: make([]float64, 0, n*n),
	}
	for j := range rb {
		for i := range ra {
			r.Points = append(r.Points, mesh.Point2D{
				X: (1 + ra[i]) * (1 - rb[j]) / 4,
				Y: (1 + rb[j]) / 2,
			})
			r.Weights = append(r.Weights, wa[i]*wb[j]/8)
		}
	}
	return r, nil
}

// RuleForDegree returns the cheapest tabulated rule exact to degree, or a
// collapsed Gauss-Jacobi rule beyond the tabulated range
func RuleForDegree(degree int) (Rule, error) {
	if degree < 0 || degree > MaxDegree {
		return Rule{}, fmt.Errorf("quadrature degree %d outside [0,%d]: %w",
			degree, MaxDegree, utils.ErrInvalidArgument)
	}
	for _, r := range tabulated {
		if r.Degree >= degree {
			return r, nil
		}
	}
	return CollapsedRule(degree)
}
