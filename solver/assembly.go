package solver

import (
	"context"
	"fmt"

	"github.com/james-bowman/sparse"
	"github.com/notargets/FEMKernel/element"
	"github.com/notargets/FEMKernel/partitions"
	"github.com/notargets/FEMKernel/quadrature"
	"github.com/notargets/FEMKernel/space"
	"github.com/notargets/FEMKernel/vector"
	log "github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
)

// System is the assembled linear system with the Dirichlet rows and columns
// eliminated: row d of a Dirichlet DOF is the identity and RHS[d] = g(d).
type System struct {
	Matrix    *sparse.CSR
	RHS       *vector.Vector
	Dirichlet map[int]float64
}

// localSystem is one element's stiffness (row-major) and load
type localSystem struct {
	dofs []int
	k    []float64
	f    []float64
}

func elementSystem(q *quadrature.Quadrature, fe element.FiniteElement, kappa float64,
	source func(x, y float64) float64) (localSystem, error) {
	pts, wts, err := q.Points(fe.Triangle)
	if err != nil {
		return localSystem{}, err
	}
	np := len(fe.Nodes)
	ls := localSystem{
		dofs: make([]int, np),
		k:    make([]float64, np*np),
		f:    make([]float64, np),
	}
	for i, n := range fe.Nodes {
		ls.dofs[i] = n.Vertex
	}
	phi := make([]float64, np)
	grad := make([][2]float64, np)
	for qi, p := range pts {
		w := wts[qi]
		for i, n := range fe.Nodes {
			phi[i] = n.Phi(p)
			g := n.Gradient(p)
			grad[i] = [2]float64{g.X, g.Y}
		}
		fw := w * source(p.X, p.Y)
		for i := 0; i < np; i++ {
			ls.f[i] += fw * phi[i]
			for j := 0; j < np; j++ {
				ls.k[i*np+j] += w * kappa * (grad[i][0]*grad[j][0] + grad[i][1]*grad[j][1])
			}
		}
	}
	return ls, nil
}

// Assemble integrates the element systems of sp in parallel and scatters them
// into a global sparse matrix, eliminating the Dirichlet DOFs symmetrically
func (s *Solver) Assemble(ctx context.Context, sp *space.Space, prob Problem) (*System, error) {
	if err := s.check(sp, prob); err != nil {
		return nil, err
	}
	pb := &partitions.PartitionBuilder{
		NumElements:   len(sp.Elements),
		NumPartitions: s.Workers,
		Strategy:      s.Strategy,
	}
	layout, err := pb.BuildPartitions()
	if err != nil {
		return nil, err
	}

	source := prob.Source(s.Conductivity)
	locals := make([]localSystem, len(sp.Elements))
	p := pool.New().WithErrors().WithFirstError().WithMaxGoroutines(layout.NumPartitions)
	for _, part := range layout.Partitions {
		part := part
		p.Go(func() error {
			for _, e := range part.Elements {
				if err := ctx.Err(); err != nil {
					return err
				}
				ls, err := elementSystem(sp.Quadrature, sp.Elements[e], s.Conductivity, source)
				if err != nil {
					return err
				}
				locals[e] = ls
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}

	dirichlet := make(map[int]float64)
	for _, v := range sp.Mesh.BoundaryVertices() {
		pt := sp.Mesh.Vertices[v]
		dirichlet[v] = prob.Exact(pt.X, pt.Y)
	}

	n := sp.NumDOF()
	dok := sparse.NewDOK(n, n)
	rhs := make([]float64, n)
	for _, ls := range locals {
		np := len(ls.dofs)
		for i, gi := range ls.dofs {
			if _, fixed := dirichlet[gi]; fixed {
				continue
			}
			rhs[gi] += ls.f[i]
			for j, gj := range ls.dofs {
				kij := ls.k[i*np+j]
				if g, fixed := dirichlet[gj]; fixed {
					rhs[gi] -= kij * g
					continue
				}
				dok.Set(gi, gj, dok.At(gi, gj)+kij)
			}
		}
	}
	for d, g := range dirichlet {
		dok.Set(d, d, 1)
		rhs[d] = g
	}

	b, err := vector.New(rhs)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"dof":        n,
		"dirichlet":  len(dirichlet),
		"partitions": layout.NumPartitions,
		"quadrature": sp.Quadrature.Rule().Name,
	}).Debug("system assembled")
	return &System{Matrix: dok.ToCSR(), RHS: b, Dirichlet: dirichlet}, nil
}
