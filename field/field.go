package field

import (
	"fmt"

	"github.com/notargets/FEMKernel/utils"
	"github.com/notargets/FEMKernel/vector"
)

// VectorField is a discrete solution: a dense vector addressed by
// (vertex, component), stored vertex-major
type VectorField struct {
	values     *vector.Vector
	components int
}

// NewVectorField wraps values holding components entries per vertex
func NewVectorField(values *vector.Vector, components int) (*VectorField, error) {
	if values == nil {
		return nil, &utils.NilSourceError{What: "field values"}
	}
	if components < 1 {
		return nil, fmt.Errorf("field needs at least one component, got %d: %w",
			components, utils.ErrInvalidArgument)
	}
	if values.Len()%components != 0 {
		return nil, fmt.Errorf("field length %d is not a multiple of %d components: %w",
			values.Len(), components, utils.ErrInvalidArgument)
	}
	return &VectorField{values: values, components: components}, nil
}

// NewScalarField is a one-component field
func NewScalarField(values *vector.Vector) (*VectorField, error) {
	return NewVectorField(values, 1)
}

// GetValueAt returns the value of component at vertex. Indices out of range
// panic, as slice indexing does.
func (f *VectorField) GetValueAt(vertex, component int) float64 {
	if component < 0 || component >= f.components {
		panic(fmt.Sprintf("field: component %d out of range [0,%d)", component, f.components))
	}
	return f.values.At(vertex*f.components + component)
}

func (f *VectorField) Components() int { return f.components }

// NumVertices is the number of addressable vertices (degrees of freedom)
func (f *VectorField) NumVertices() int { return f.values.Len() / f.components }

func (f *VectorField) Values() *vector.Vector { return f.values }
