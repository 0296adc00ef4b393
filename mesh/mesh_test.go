package mesh

import (
	"errors"
	"testing"

	"github.com/notargets/FEMKernel/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriangleGeometry(t *testing.T) {
	tri := NewTriangle(Point2D{0, 0}, Point2D{1, 0}, Point2D{0, 1})
	assert.Equal(t, -1, tri.ID)
	assert.InDelta(t, 1., tri.Jacobian(), 1.e-15)
	assert.InDelta(t, .5, tri.Area(), 1.e-15)

	// Clockwise ordering flips the sign of the jacobian but not the area
	cw := NewTriangle(Point2D{0, 0}, Point2D{0, 1}, Point2D{1, 0})
	assert.InDelta(t, -1., cw.Jacobian(), 1.e-15)
	assert.InDelta(t, .5, cw.Area(), 1.e-15)

	phys := NewTriangle(Point2D{1, 1}, Point2D{4, 2}, Point2D{2, 5})
	assert.Equal(t, phys.Vertices[0], phys.Map(Point2D{0, 0}))
	assert.Equal(t, phys.Vertices[1], phys.Map(Point2D{1, 0}))
	assert.Equal(t, phys.Vertices[2], phys.Map(Point2D{0, 1}))
	c := phys.Map(Point2D{1. / 3., 1. / 3.})
	assert.InDelta(t, phys.Centroid().X, c.X, 1.e-14)
	assert.InDelta(t, phys.Centroid().Y, c.Y, 1.e-14)
	// (3*4 - 1*1) / 2
	assert.InDelta(t, 5.5, phys.Area(), 1.e-14)
}

func TestCheckDegenerate(t *testing.T) {
	ok := NewTriangle(Point2D{0, 0}, Point2D{1, 0}, Point2D{0, 1})
	assert.NoError(t, ok.CheckDegenerate(DegenerateTolerance))

	cases := map[string]Triangle{
		"collinear":   NewTriangle(Point2D{0, 0}, Point2D{1, 1}, Point2D{2, 2}),
		"coincident":  NewTriangle(Point2D{1, 1}, Point2D{1, 1}, Point2D{1, 1}),
		"sliver":      NewTriangle(Point2D{0, 0}, Point2D{1, 0}, Point2D{.5, 1.e-14}),
		"non finite":  NewTriangle(Point2D{0, 0}, Point2D{1, 0}, Point2D{0, posInf()}),
		"repeated pt": {ID: 7, Vertices: [3]Point2D{{0, 0}, {0, 0}, {0, 1}}},
	}
	for name, tri := range cases {
		t.Run(name, func(t *testing.T) {
			err := tri.CheckDegenerate(DegenerateTolerance)
			require.Error(t, err)
			assert.True(t, errors.Is(err, utils.ErrNumerical))
			var de *utils.DegenerateTriangleError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tri.ID, de.ID)
		})
	}
}

func posInf() float64 {
	var zero float64
	return 1 / zero
}

func TestNewMeshValidation(t *testing.T) {
	verts := []Point2D{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	m, err := NewMesh(verts, [][3]int{{0, 1, 2}, {0, 2, 3}})
	require.NoError(t, err)
	assert.Equal(t, 4, m.NumVertices())
	assert.Equal(t, 2, m.NumElements())
	tri := m.Triangle(1)
	assert.Equal(t, 1, tri.ID)
	assert.Equal(t, [3]Point2D{{0, 0}, {1, 1}, {0, 1}}, tri.Vertices)

	// Inputs are copied
	verts[0] = Point2D{9, 9}
	assert.Equal(t, Point2D{0, 0}, m.Vertices[0])

	_, err = NewMesh(verts, [][3]int{{0, 1, 4}})
	assert.True(t, errors.Is(err, utils.ErrInvalidArgument))
	_, err = NewMesh(verts, [][3]int{{-1, 1, 2}})
	assert.True(t, errors.Is(err, utils.ErrInvalidArgument))
	_, err = NewMesh(verts, [][3]int{{1, 1, 2}})
	assert.True(t, errors.Is(err, utils.ErrInvalidArgument))
	_, err = NewMesh(nil, [][3]int{})
	assert.True(t, errors.Is(err, utils.ErrInvalidArgument))
	_, err = NewMesh(verts, nil)
	assert.True(t, errors.Is(err, utils.ErrInvalidArgument))
}

func TestBoundaryVertices(t *testing.T) {
	// 3x3 vertex grid, only the center vertex 4 is interior
	verts := make([]Point2D, 0, 9)
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			verts = append(verts, Point2D{float64(i), float64(j)})
		}
	}
	eToV := [][3]int{
		{0, 1, 4}, {0, 4, 3}, {1, 2, 5}, {1, 5, 4},
		{3, 4, 7}, {3, 7, 6}, {4, 5, 8}, {4, 8, 7},
	}
	m, err := NewMesh(verts, eToV)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 5, 6, 7, 8}, m.BoundaryVertices())
}
