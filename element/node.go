package element

import (
	"github.com/notargets/FEMKernel/mesh"
)

// Barycentric holds, for one triangle, the affine coefficients of its three
// barycentric coordinates: lambda_i(x,y) = A[i] + B[i]*x + C[i]*y
type Barycentric struct {
	A, B, C [3]float64
}

// NewBarycentric precomputes the coordinates of tri. The triangle must not be
// degenerate; see mesh.Triangle.CheckDegenerate.
func NewBarycentric(tri mesh.Triangle) (Barycentric, error) {
	if err := tri.CheckDegenerate(mesh.DegenerateTolerance); err != nil {
		return Barycentric{}, err
	}
	v := tri.Vertices
	det := tri.Jacobian()
	var b Barycentric
	for i := 0; i < 3; i++ {
		j, k := (i+1)%3, (i+2)%3
		b.A[i] = (v[j].X*v[k].Y - v[k].X*v[j].Y) / det
		b.B[i] = (v[j].Y - v[k].Y) / det
		b.C[i] = (v[k].X - v[j].X) / det
	}
	return b, nil
}

// Lambda evaluates coordinate i at p
func (b Barycentric) Lambda(i int, p mesh.Point2D) float64 {
	return b.A[i] + b.B[i]*p.X + b.C[i]*p.Y
}

// All evaluates the three coordinates at p
func (b Barycentric) All(p mesh.Point2D) (l [3]float64) {
	for i := range l {
		l[i] = b.Lambda(i, p)
	}
	return
}

// Grad is the constant gradient of coordinate i
func (b Barycentric) Grad(i int) mesh.Point2D {
	return mesh.Point2D{X: b.B[i], Y: b.C[i]}
}

type NodeKind uint8

const (
	VertexNode NodeKind = iota
	BubbleNode
)

func (nk NodeKind) String() string {
	if nk == BubbleNode {
		return "bubble"
	}
	return "vertex"
}

// BubbleScale normalizes the bubble to 1 at the centroid
const BubbleScale = 27.

// Node is a local shape function of one element together with the global
// degree of freedom it is attached to. It is a plain value: evaluation only
// reads the copied barycentric coefficients.
type Node struct {
	Kind   NodeKind
	Local  int // vertex number 0..2 within the triangle, 3 for the bubble
	Vertex int // global degree of freedom: mesh vertex, or bubble index past the vertices
	Bary   Barycentric
}

// Phi evaluates the shape function at p
func (n Node) Phi(p mesh.Point2D) float64 {
	if n.Kind == BubbleNode {
		l := n.Bary.All(p)
		return BubbleScale * l[0] * l[1] * l[2]
	}
	return n.Bary.Lambda(n.Local, p)
}

// Gradient evaluates the gradient of the shape function at p
func (n Node) Gradient(p mesh.Point2D) mesh.Point2D {
	if n.Kind == BubbleNode {
		l := n.Bary.All(p)
		g0, g1, g2 := n.Bary.Grad(0), n.Bary.Grad(1), n.Bary.Grad(2)
		return g0.Scale(l[1] * l[2]).
			Add(g1.Scale(l[0] * l[2])).
			Add(g2.Scale(l[0] * l[1])).
			Scale(BubbleScale)
	}
	return n.Bary.Grad(n.Local)
}
