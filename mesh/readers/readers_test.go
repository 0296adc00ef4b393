package readers

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/notargets/FEMKernel/mesh"
	"github.com/notargets/FEMKernel/mesh/meshtest"
	"github.com/notargets/FEMKernel/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func totalArea(m *mesh.Mesh) float64 {
	var a float64
	for k := 0; k < m.NumElements(); k++ {
		a += m.Triangle(k).Area()
	}
	return a
}

func TestReadNativeMeshFile(t *testing.T) {
	m, err := ReadMeshFile(filepath.Join("testdata", "square.mesh"))
	require.NoError(t, err)
	assert.Equal(t, 4, m.NumVertices())
	assert.Equal(t, 2, m.NumElements())
	assert.Equal(t, [3]int{0, 2, 3}, m.EToV[1])
	assert.Equal(t, mesh.Point2D{X: 0, Y: 1}, m.Vertices[3])
	assert.InDelta(t, 1., totalArea(m), 1.e-15)

	// The extension may be omitted
	m2, err := ReadMeshFile(filepath.Join("testdata", "square"))
	require.NoError(t, err)
	assert.Equal(t, m.EToV, m2.EToV)
}

func TestReadGambitNeutralFile(t *testing.T) {
	m, err := ReadMeshFile(filepath.Join("testdata", "square.neu"))
	require.NoError(t, err)
	assert.Equal(t, 5, m.NumVertices())
	assert.Equal(t, 4, m.NumElements())
	// 1-based node ids become 0-based indices
	assert.Equal(t, [3]int{0, 1, 4}, m.EToV[0])
	assert.Equal(t, mesh.Point2D{X: .5, Y: .5}, m.Vertices[4])
	assert.InDelta(t, 1., totalArea(m), 1.e-15)
	assert.Equal(t, []int{0, 1, 2, 3}, m.BoundaryVertices())
}

func TestReadMeshFileNotFound(t *testing.T) {
	_, err := ReadMeshFile(filepath.Join(t.TempDir(), "missing.mesh"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = ReadMeshFile(filepath.Join(t.TempDir(), "nodir", "missing"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = ReadMeshFile(filepath.Join("testdata", "square.msh"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestReadNativeMeshErrors(t *testing.T) {
	cases := map[string]struct {
		content, msg string
	}{
		"missing header":   {"0 0\n", "line 1"},
		"bad count":        {"vertices -2\n", "invalid vertices count"},
		"short vertex":     {"vertices 1\n0\n", "line 2"},
		"bad vertex":       {"vertices 1\n0 x\n", "vertex 0"},
		"truncated":        {"vertices 3\n0 0\n1 0\n", "reading vertex 2"},
		"missing section":  {"vertices 1\n0 0\n", "triangles"},
		"bad triangle":     {"vertices 3\n0 0\n1 0\n0 1\ntriangles 1\n0 1\n", "line 6"},
		"vertex out range": {"vertices 3\n0 0\n1 0\n0 1\ntriangles 1\n0 1 3\n", "outside"},
	}
	for name, c := range cases {
		_, err := ReadNativeMesh(strings.NewReader(c.content))
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), c.msg, name)
	}

	_, err := ReadNativeMesh(strings.NewReader("vertices 3\n0 0\n1 0\n0 1\ntriangles 1\n0 0 1\n"))
	assert.True(t, errors.Is(err, utils.ErrInvalidArgument))
}

// gambitFile assembles a neutral file with the given node and cell records
func gambitFile(numNodes, numCells int, nodes, cells []string, trailer string) string {
	var b strings.Builder
	b.WriteString("        CONTROL INFO 2.4.6\n** GAMBIT NEUTRAL FILE\ntest\n")
	b.WriteString("     NUMNP     NELEM     NGRPS    NBSETS     NDFCD     NDFVL\n")
	fmt.Fprintf(&b, "%10d%10d%10d%10d%10d%10d\nENDOFSECTION\n", numNodes, numCells, 1, 0, 2, 2)
	if nodes != nil {
		b.WriteString("   NODAL COORDINATES 2.4.6\n")
		for _, n := range nodes {
			b.WriteString(n + "\n")
		}
		b.WriteString("ENDOFSECTION\n")
	}
	if cells != nil {
		b.WriteString("      ELEMENTS/CELLS 2.4.6\n")
		for _, c := range cells {
			b.WriteString(c + "\n")
		}
		b.WriteString("ENDOFSECTION\n")
	}
	b.WriteString(trailer)
	return b.String()
}

func TestReadGambitNeutralErrors(t *testing.T) {
	nodes := []string{"1 0 0", "2 1 0", "3 0 1"}
	cases := map[string]struct {
		content, msg string
	}{
		"quad cell":      {gambitFile(3, 1, nodes, []string{"1 2 4 1 2 3 3"}, ""), "unsupported type 2"},
		"unknown node":   {gambitFile(3, 1, nodes, []string{"1 3 3 1 2 9"}, ""), "unknown node id 9"},
		"short cell":     {gambitFile(3, 1, nodes, []string{"1 3 3 1 2"}, ""), "want 3 node ids"},
		"bad coordinate": {gambitFile(3, 1, []string{"1 0 0", "2 1 abc", "3 0 1"}, nil, ""), "invalid coordinates"},
		"duplicate node": {gambitFile(3, 1, []string{"1 0 0", "2 1 0", "2 0 1"}, nil, ""), "duplicate node id 2"},
		"no cells":       {gambitFile(3, 1, nodes, nil, ""), "missing ELEMENTS/CELLS"},
		"no nodes":       {gambitFile(3, 1, nil, nil, ""), "missing NODAL COORDINATES"},
		"no header":      {"   NODAL COORDINATES 2.4.6\n1 0 0\nENDOFSECTION\n", "before the NUMNP header"},
		"unterminated": {
			gambitFile(3, 1, nodes, []string{"1 3 3 1 2 3"}, " BOUNDARY CONDITIONS 2.4.6\nwall 1 1 0 6\n"),
			"unterminated section",
		},
		"missing end": {
			strings.Replace(gambitFile(3, 1, nodes, []string{"1 3 3 1 2 3"}, ""), "3 0 1\nENDOFSECTION", "3 0 1\n4 1 1", 1),
			"expected ENDOFSECTION",
		},
	}
	for name, c := range cases {
		_, err := ReadGambitNeutral(strings.NewReader(c.content))
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), c.msg, name)
	}

	m, err := ReadGambitNeutral(strings.NewReader(
		gambitFile(3, 1, nodes, []string{"1 3 3 3 1 2"}, " BOUNDARY CONDITIONS 2.4.6\nwall 1 1 0 6\nENDOFSECTION\n")))
	require.NoError(t, err)
	assert.Equal(t, [3]int{2, 0, 1}, m.EToV[0])
}

func TestReadMeshFileWrapsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.mesh")
	require.NoError(t, os.WriteFile(path, []byte("vertices 1\n"), 0o644))
	_, err := ReadMeshFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.False(t, errors.Is(err, fs.ErrNotExist))
}

func TestWriteNativeMesh(t *testing.T) {
	m := meshtest.Rectangle(3, 2, -1, 1.5, 0, .3)
	var b strings.Builder
	require.NoError(t, WriteNativeMesh(&b, m))
	assert.True(t, strings.HasPrefix(b.String(), "vertices 12\n"))

	back, err := ReadNativeMesh(strings.NewReader(b.String()))
	require.NoError(t, err)
	assert.Equal(t, m.Vertices, back.Vertices)
	assert.Equal(t, m.EToV, back.EToV)
}
