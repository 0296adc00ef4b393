// Package meshtest builds small structured meshes used as fixtures by the
// package tests.
package meshtest

import (
	"fmt"

	"github.com/notargets/FEMKernel/mesh"
)

// Rectangle returns an nx by ny grid over [x0,x1]x[y0,y1], each cell split
// into two triangles along its diagonal. Vertices are numbered row by row.
func Rectangle(nx, ny int, x0, x1, y0, y1 float64) *mesh.Mesh {
	if nx < 1 || ny < 1 {
		panic(fmt.Sprintf("meshtest: invalid grid %dx%d", nx, ny))
	}
	verts := make([]mesh.Point2D, 0, (nx+1)*(ny+1))
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			verts = append(verts, mesh.Point2D{
				X: x0 + (x1-x0)*float64(i)/float64(nx),
				Y: y0 + (y1-y0)*float64(j)/float64(ny),
			})
		}
	}
	id := func(i, j int) int { return j*(nx+1) + i }
	eToV := make([][3]int, 0, 2*nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			eToV = append(eToV,
				[3]int{id(i, j), id(i+1, j), id(i+1, j+1)},
				[3]int{id(i, j), id(i+1, j+1), id(i, j+1)})
		}
	}
	m, err := mesh.NewMesh(verts, eToV)
	if err != nil {
		panic(err)
	}
	return m
}

// UnitSquare is Rectangle over [0,1]x[0,1] with n cells per side
func UnitSquare(n int) *mesh.Mesh {
	return Rectangle(n, n, 0, 1, 0, 1)
}
