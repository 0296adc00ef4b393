package mesh

import (
	"fmt"
	"math"
	"sort"

	"github.com/notargets/FEMKernel/utils"
)

// DegenerateTolerance is the relative size of the jacobian determinant, against
// the squared longest edge, below which a triangle is treated as degenerate
const DegenerateTolerance = 1.e-12

// Point2D is a location in the plane
type Point2D struct {
	X, Y float64
}

func (p Point2D) Add(q Point2D) Point2D { return Point2D{p.X + q.X, p.Y + q.Y} }

func (p Point2D) Sub(q Point2D) Point2D { return Point2D{p.X - q.X, p.Y - q.Y} }

func (p Point2D) Scale(s float64) Point2D { return Point2D{s * p.X, s * p.Y} }

// Triangle is three ordered vertices. ID is the index of the triangle within
// its mesh, -1 for a free standing triangle.
type Triangle struct {
	ID       int
	Vertices [3]Point2D
}

// NewTriangle returns a free standing triangle
func NewTriangle(a, b, c Point2D) Triangle {
	return Triangle{ID: -1, Vertices: [3]Point2D{a, b, c}}
}

// Jacobian returns the signed determinant of the affine map from the reference
// triangle (0,0),(1,0),(0,1) onto t. Its magnitude is twice the area.
func (t Triangle) Jacobian() float64 {
	e1 := t.Vertices[1].Sub(t.Vertices[0])
	e2 := t.Vertices[2].Sub(t.Vertices[0])
	return e1.X*e2.Y - e2.X*e1.Y
}

func (t Triangle) Area() float64 {
	return 0.5 * math.Abs(t.Jacobian())
}

// Map sends a point of the reference triangle to physical space:
// x = v0 + r*(v1-v0) + s*(v2-v0)
func (t Triangle) Map(ref Point2D) Point2D {
	v0 := t.Vertices[0]
	e1 := t.Vertices[1].Sub(v0)
	e2 := t.Vertices[2].Sub(v0)
	return Point2D{
		X: v0.X + ref.X*e1.X + ref.Y*e2.X,
		Y: v0.Y + ref.X*e1.Y + ref.Y*e2.Y,
	}
}

func (t Triangle) Centroid() Point2D {
	return t.Vertices[0].Add(t.Vertices[1]).Add(t.Vertices[2]).Scale(1. / 3.)
}

// LongestEdge returns the length of the longest side
func (t Triangle) LongestEdge() float64 {
	var h float64
	for i := 0; i < 3; i++ {
		d := t.Vertices[(i+1)%3].Sub(t.Vertices[i])
		h = math.Max(h, math.Hypot(d.X, d.Y))
	}
	return h
}

// CheckDegenerate returns a numerical error when |det J| <= tol * h^2, h the
// longest edge. Non-finite coordinates are also rejected.
func (t Triangle) CheckDegenerate(tol float64) error {
	det := t.Jacobian()
	h := t.LongestEdge()
	if math.IsNaN(det) || math.IsInf(det, 0) || math.Abs(det) <= tol*h*h {
		return t.degenerateError(det)
	}
	return nil
}

func (t Triangle) degenerateError(det float64) error {
	de := &utils.DegenerateTriangleError{ID: t.ID, Jacobian: det}
	for i, v := range t.Vertices {
		de.Vertices[i] = [2]float64{v.X, v.Y}
	}
	return de
}

// Mesh is an immutable triangulation: vertex coordinates plus, per triangle,
// the three vertex indices (EToV, element to vertex)
type Mesh struct {
	Vertices []Point2D
	EToV     [][3]int
}

// NewMesh validates the connectivity and copies the inputs
func NewMesh(vertices []Point2D, eToV [][3]int) (*Mesh, error) {
	if vertices == nil {
		return nil, &utils.NilSourceError{What: "mesh vertices"}
	}
	if eToV == nil {
		return nil, &utils.NilSourceError{What: "mesh triangles"}
	}
	nv := len(vertices)
	for k, tri := range eToV {
		for _, v := range tri {
			if v < 0 || v >= nv {
				return nil, fmt.Errorf("triangle %d references vertex %d outside [0,%d): %w",
					k, v, nv, utils.ErrInvalidArgument)
			}
		}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
			return nil, fmt.Errorf("triangle %d repeats a vertex %v: %w", k, tri, utils.ErrInvalidArgument)
		}
	}
	m := &Mesh{
		Vertices: make([]Point2D, nv),
		EToV:     make([][3]int, len(eToV)),
	}
	copy(m.Vertices, vertices)
	copy(m.EToV, eToV)
	return m, nil
}

func (m *Mesh) NumVertices() int { return len(m.Vertices) }

func (m *Mesh) NumElements() int { return len(m.EToV) }

// Triangle returns the geometry of triangle k
func (m *Mesh) Triangle(k int) Triangle {
	tri := m.EToV[k]
	return Triangle{
		ID:       k,
		Vertices: [3]Point2D{m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]},
	}
}

type edge struct{ a, b int }

func newEdge(a, b int) edge {
	if a > b {
		a, b = b, a
	}
	return edge{a, b}
}

// BoundaryVertices returns, in increasing order, the vertices lying on an edge
// shared by exactly one triangle
func (m *Mesh) BoundaryVertices() []int {
	count := make(map[edge]int, 3*len(m.EToV))
	for _, tri := range m.EToV {
		for i := 0; i < 3; i++ {
			count[newEdge(tri[i], tri[(i+1)%3])]++
		}
	}
	onBoundary := make(map[int]bool)
	for e, n := range count {
		if n == 1 {
			onBoundary[e.a] = true
			onBoundary[e.b] = true
		}
	}
	verts := make([]int, 0, len(onBoundary))
	for v := range onBoundary {
		verts = append(verts, v)
	}
	sort.Ints(verts)
	return verts
}

// String summarizes the mesh size
func (m *Mesh) String() string {
	return fmt.Sprintf("Mesh: %d vertices, %d triangles", m.NumVertices(), m.NumElements())
}
