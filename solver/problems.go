package solver

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/notargets/FEMKernel/evaluator"
	"github.com/notargets/FEMKernel/utils"
)

// Problem is a manufactured solution of -div(kappa grad u) = f with constant
// kappa: f = -kappa * Laplacian(u), and u itself is the Dirichlet data.
type Problem struct {
	Name      string
	Exact     evaluator.ExactSolution
	Laplacian func(x, y float64) float64
}

// Source returns f for conductivity kappa
func (p Problem) Source(kappa float64) func(x, y float64) float64 {
	return func(x, y float64) float64 { return -kappa * p.Laplacian(x, y) }
}

var problems = map[string]Problem{
	"linear": {
		Name:      "linear",
		Exact:     func(x, y float64) float64 { return 1 + 2*x - 3*y },
		Laplacian: func(x, y float64) float64 { return 0 },
	},
	"quadratic": {
		Name:      "quadratic",
		Exact:     func(x, y float64) float64 { return 1 + x*x + 2*y*y },
		Laplacian: func(x, y float64) float64 { return 6 },
	},
	"sine": {
		Name:  "sine",
		Exact: func(x, y float64) float64 { return math.Sin(math.Pi*x) * math.Sin(math.Pi*y) },
		Laplacian: func(x, y float64) float64 {
			return -2 * math.Pi * math.Pi * math.Sin(math.Pi*x) * math.Sin(math.Pi*y)
		},
	},
}

// LookupProblem finds a catalogued problem, case-insensitively
func LookupProblem(name string) (Problem, error) {
	p, ok := problems[strings.ToLower(name)]
	if !ok {
		return Problem{}, fmt.Errorf("unknown problem %q, want one of %v: %w",
			name, ProblemNames(), utils.ErrInvalidArgument)
	}
	return p, nil
}

func ProblemNames() []string {
	names := make([]string, 0, len(problems))
	for name := range problems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
