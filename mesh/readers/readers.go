package readers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/notargets/FEMKernel/mesh"
)

// ReadMeshFile loads a 2D triangle mesh, choosing the format by extension:
// ".neu" is a Gambit neutral file, ".mesh" the native text format. A path
// without extension is read as path + ".mesh".
func ReadMeshFile(path string) (*mesh.Mesh, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		path += ".mesh"
		ext = ".mesh"
	}
	var read func(io.Reader) (*mesh.Mesh, error)
	switch ext {
	case ".neu":
		read = ReadGambitNeutral
	case ".mesh":
		read = ReadNativeMesh
	default:
		return nil, fmt.Errorf("unsupported mesh file extension %q in %s", ext, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	msh, err := read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return msh, nil
}

// lineReader yields trimmed lines with their 1-based numbers
type lineReader struct {
	scanner *bufio.Scanner
	line    int
}

func newLineReader(r io.Reader) *lineReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 1024*1024)
	return &lineReader{scanner: s}
}

// next returns the next line, io.ErrUnexpectedEOF at the end of input
func (lr *lineReader) next() (string, error) {
	if !lr.scanner.Scan() {
		if err := lr.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	lr.line++
	return strings.TrimSpace(lr.scanner.Text()), nil
}

func (lr *lineReader) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("line %d: %s", lr.line, fmt.Sprintf(format, args...))
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseInts(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
