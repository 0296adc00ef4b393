// Package solver computes finite element solutions of the steady heat
// equation -div(kappa grad u) = f with Dirichlet data on the mesh boundary.
package solver

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/notargets/FEMKernel/field"
	"github.com/notargets/FEMKernel/partitions"
	"github.com/notargets/FEMKernel/space"
	"github.com/notargets/FEMKernel/utils"
	"github.com/notargets/FEMKernel/vector"
	log "github.com/sirupsen/logrus"
)

const DefaultAccuracy = 1.e-6

type Solver struct {
	Accuracy      float64 // relative residual ||r||/||b|| to stop at
	MaxIterations int     // <= 0: ten times the number of unknowns
	Workers       int     // assembly goroutines, <= 0: one per CPU
	Strategy      partitions.PartitionStrategy
	Conductivity  float64
}

// Stats reports how the linear solve went
type Stats struct {
	Iterations   int
	Residual     float64 // final relative residual
	NumDOF       int
	NumDirichlet int
	Elapsed      time.Duration
}

type Option func(*Solver)

func WithAccuracy(a float64) Option {
	return func(s *Solver) { s.Accuracy = a }
}

func WithMaxIterations(n int) Option {
	return func(s *Solver) { s.MaxIterations = n }
}

func WithWorkers(n int) Option {
	return func(s *Solver) { s.Workers = n }
}

func WithStrategy(st partitions.PartitionStrategy) Option {
	return func(s *Solver) { s.Strategy = st }
}

func WithConductivity(kappa float64) Option {
	return func(s *Solver) { s.Conductivity = kappa }
}

func New(opts ...Option) *Solver {
	s := &Solver{
		Accuracy:     DefaultAccuracy,
		Strategy:     partitions.BlockPartition,
		Conductivity: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Solver) check(sp *space.Space, prob Problem) error {
	switch {
	case sp == nil:
		return &utils.NilSourceError{What: "space"}
	case prob.Exact == nil:
		return &utils.NilSourceError{What: "exact solution of problem " + prob.Name}
	case prob.Laplacian == nil:
		return &utils.NilSourceError{What: "laplacian of problem " + prob.Name}
	case !(s.Accuracy > 0):
		return fmt.Errorf("accuracy %g must be positive: %w", s.Accuracy, utils.ErrInvalidArgument)
	case !(s.Conductivity > 0) || math.IsInf(s.Conductivity, 0):
		return fmt.Errorf("conductivity %g must be positive and finite: %w", s.Conductivity, utils.ErrInvalidArgument)
	}
	return nil
}

// Solve assembles and solves the problem on sp. The returned scalar field
// holds one value per DOF of sp.
func (s *Solver) Solve(ctx context.Context, sp *space.Space, prob Problem) (*field.VectorField, Stats, error) {
	start := time.Now()
	sys, err := s.Assemble(ctx, sp, prob)
	if err != nil {
		return nil, Stats{}, err
	}
	stats := Stats{NumDOF: sp.NumDOF(), NumDirichlet: len(sys.Dirichlet)}

	maxIter := s.MaxIterations
	if maxIter <= 0 {
		maxIter = 10 * stats.NumDOF
	}
	x0 := make([]float64, stats.NumDOF)
	for d, g := range sys.Dirichlet {
		x0[d] = g
	}
	x, err := vector.New(x0)
	if err != nil {
		return nil, stats, err
	}
	x, stats.Iterations, stats.Residual, err = ConjugateGradient(ctx, NewCSROperator(sys.Matrix),
		sys.RHS, x, s.Accuracy, maxIter)
	stats.Elapsed = time.Since(start)
	if err != nil {
		return nil, stats, fmt.Errorf("solve %s on %v: %w", prob.Name, sp, err)
	}

	f, err := field.NewScalarField(x)
	if err != nil {
		return nil, stats, err
	}
	log.WithFields(log.Fields{
		"problem":    prob.Name,
		"space":      sp.String(),
		"iterations": stats.Iterations,
		"residual":   stats.Residual,
		"elapsed":    stats.Elapsed,
	}).Info("heat problem solved")
	return f, stats, nil
}
