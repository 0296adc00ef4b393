package readers

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/notargets/FEMKernel/mesh"
)

// ReadNativeMesh parses the native text format:
//
//	# comment
//	vertices N
//	x y        (N lines)
//	triangles M
//	i j k      (M lines, 0-based vertex indices)
//
// Blank lines and text after '#' are ignored.
func ReadNativeMesh(r io.Reader) (*mesh.Mesh, error) {
	lr := newLineReader(r)
	next := func() (string, error) {
		for {
			line, err := lr.next()
			if err != nil {
				return "", err
			}
			if i := strings.IndexByte(line, '#'); i >= 0 {
				line = strings.TrimSpace(line[:i])
			}
			if line != "" {
				return line, nil
			}
		}
	}
	header := func(keyword string) (int, error) {
		line, err := next()
		if err != nil {
			return 0, lr.errorf("expected %q section: %v", keyword, err)
		}
		fields := strings.Fields(line)
		if len(fields) != 2 || strings.ToLower(fields[0]) != keyword {
			return 0, lr.errorf("expected %q <count>, got %q", keyword, line)
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 0 {
			return 0, lr.errorf("invalid %s count %q", keyword, fields[1])
		}
		return n, nil
	}

	nv, err := header("vertices")
	if err != nil {
		return nil, err
	}
	verts := make([]mesh.Point2D, nv)
	for i := range verts {
		line, err := next()
		if err != nil {
			return nil, lr.errorf("reading vertex %d of %d: %v", i, nv, err)
		}
		xy, err := parseFloats(strings.Fields(line))
		if err != nil || len(xy) != 2 {
			return nil, lr.errorf("vertex %d: want \"x y\", got %q", i, line)
		}
		verts[i] = mesh.Point2D{X: xy[0], Y: xy[1]}
	}

	nt, err := header("triangles")
	if err != nil {
		return nil, err
	}
	eToV := make([][3]int, nt)
	for k := range eToV {
		line, err := next()
		if err != nil {
			return nil, lr.errorf("reading triangle %d of %d: %v", k, nt, err)
		}
		ids, err := parseInts(strings.Fields(line))
		if err != nil || len(ids) != 3 {
			return nil, lr.errorf("triangle %d: want \"i j k\", got %q", k, line)
		}
		eToV[k] = [3]int{ids[0], ids[1], ids[2]}
	}
	return mesh.NewMesh(verts, eToV)
}

// WriteNativeMesh writes m in the format read by ReadNativeMesh
func WriteNativeMesh(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "vertices %d\n", m.NumVertices())
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "%s %s\n", strconv.FormatFloat(v.X, 'g', -1, 64), strconv.FormatFloat(v.Y, 'g', -1, 64))
	}
	fmt.Fprintf(bw, "triangles %d\n", m.NumElements())
	for _, tri := range m.EToV {
		fmt.Fprintf(bw, "%d %d %d\n", tri[0], tri[1], tri[2])
	}
	return bw.Flush()
}
