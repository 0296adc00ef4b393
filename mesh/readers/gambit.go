package readers

import (
	"errors"
	"io"
	"strings"

	"github.com/notargets/FEMKernel/mesh"
)

const (
	gambitTriangle = 3 // NTYPE of a triangle cell
	endOfSection   = "ENDOFSECTION"
)

// ReadGambitNeutral parses a 2D Gambit neutral file. Only the nodal
// coordinates and the linear triangle cells (NTYPE 3, NDP 3) are used;
// group and boundary condition sections are skipped.
func ReadGambitNeutral(r io.Reader) (*mesh.Mesh, error) {
	lr := newLineReader(r)
	var (
		numNodes, numElements = -1, -1
		verts                 []mesh.Point2D
		eToV                  [][3]int
		nodeIndex             = make(map[int]int)
	)

	for {
		line, err := lr.next()
		if errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch {
		case strings.HasPrefix(line, "NUMNP"):
			if numNodes, numElements, err = readGambitCounts(lr); err != nil {
				return nil, err
			}
		case strings.HasPrefix(line, "NODAL COORDINATES"):
			if numNodes < 0 {
				return nil, lr.errorf("nodal coordinates before the NUMNP header")
			}
			if verts, err = readGambitNodes(lr, numNodes, nodeIndex); err != nil {
				return nil, err
			}
		case strings.HasPrefix(line, "ELEMENTS/CELLS"):
			if numElements < 0 {
				return nil, lr.errorf("elements before the NUMNP header")
			}
			if eToV, err = readGambitCells(lr, numElements, nodeIndex); err != nil {
				return nil, err
			}
		case strings.HasPrefix(line, "ELEMENT GROUP"), strings.HasPrefix(line, "BOUNDARY CONDITIONS"):
			if err = skipSection(lr); err != nil {
				return nil, err
			}
		}
	}
	if verts == nil {
		return nil, lr.errorf("missing NODAL COORDINATES section")
	}
	if eToV == nil {
		return nil, lr.errorf("missing ELEMENTS/CELLS section")
	}
	return mesh.NewMesh(verts, eToV)
}

func readGambitCounts(lr *lineReader) (numNodes, numElements int, err error) {
	line, err := lr.next()
	if err != nil {
		return 0, 0, lr.errorf("reading NUMNP values: %v", err)
	}
	counts, err := parseInts(strings.Fields(line))
	if err != nil || len(counts) < 2 {
		return 0, 0, lr.errorf("invalid NUMNP values %q", line)
	}
	if counts[0] < 0 || counts[1] < 0 {
		return 0, 0, lr.errorf("negative NUMNP/NELEM in %q", line)
	}
	return counts[0], counts[1], nil
}

func readGambitNodes(lr *lineReader, n int, nodeIndex map[int]int) ([]mesh.Point2D, error) {
	verts := make([]mesh.Point2D, n)
	for i := range verts {
		line, err := lr.next()
		if err != nil {
			return nil, lr.errorf("reading node %d of %d: %v", i+1, n, err)
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, lr.errorf("node: want \"id x y\", got %q", line)
		}
		ids, err := parseInts(fields[:1])
		if err != nil {
			return nil, lr.errorf("invalid node id %q", fields[0])
		}
		xy, err := parseFloats(fields[1:3])
		if err != nil {
			return nil, lr.errorf("invalid coordinates in %q", line)
		}
		if _, dup := nodeIndex[ids[0]]; dup {
			return nil, lr.errorf("duplicate node id %d", ids[0])
		}
		nodeIndex[ids[0]] = i
		verts[i] = mesh.Point2D{X: xy[0], Y: xy[1]}
	}
	return verts, expectEndOfSection(lr)
}

func readGambitCells(lr *lineReader, n int, nodeIndex map[int]int) ([][3]int, error) {
	eToV := make([][3]int, n)
	for k := range eToV {
		line, err := lr.next()
		if err != nil {
			return nil, lr.errorf("reading element %d of %d: %v", k+1, n, err)
		}
		vals, err := parseInts(strings.Fields(line))
		if err != nil || len(vals) < 3 {
			return nil, lr.errorf("element: want \"id type ndp nodes...\", got %q", line)
		}
		ntype, ndp := vals[1], vals[2]
		if ntype != gambitTriangle || ndp != 3 {
			return nil, lr.errorf("element %d: unsupported type %d with %d nodes, only linear triangles",
				vals[0], ntype, ndp)
		}
		if len(vals) != 6 {
			return nil, lr.errorf("element %d: want 3 node ids, got %d", vals[0], len(vals)-3)
		}
		for i := 0; i < 3; i++ {
			idx, ok := nodeIndex[vals[3+i]]
			if !ok {
				return nil, lr.errorf("element %d: unknown node id %d", vals[0], vals[3+i])
			}
			eToV[k][i] = idx
		}
	}
	return eToV, expectEndOfSection(lr)
}

func expectEndOfSection(lr *lineReader) error {
	line, err := lr.next()
	if err != nil {
		return lr.errorf("expected %s: %v", endOfSection, err)
	}
	if line != endOfSection {
		return lr.errorf("expected %s, got %q", endOfSection, line)
	}
	return nil
}

func skipSection(lr *lineReader) error {
	for {
		line, err := lr.next()
		if err != nil {
			return lr.errorf("unterminated section: %v", err)
		}
		if line == endOfSection {
			return nil
		}
	}
}
