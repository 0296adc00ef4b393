package space

import (
	"fmt"

	"github.com/notargets/FEMKernel/element"
	"github.com/notargets/FEMKernel/mesh"
	"github.com/notargets/FEMKernel/quadrature"
	"github.com/notargets/FEMKernel/utils"
)

// Space is a finite element space over a mesh: one FiniteElement per mesh
// triangle, in triangle order. Degrees of freedom are numbered mesh vertices
// first, then, for P1b, one bubble per element (element k owns NumVertices+k).
type Space struct {
	Mesh       *mesh.Mesh
	Kind       element.Kind
	Quadrature *quadrature.Quadrature
	Elements   []element.FiniteElement
}

// DefaultQuadratureDegree returns the rule degree used when none is
// configured: 2 integrates P1 mass products exactly, 6 integrates the
// bubble-bubble product of P1b exactly.
func DefaultQuadratureDegree(k element.Kind) int {
	if k == element.P1b {
		return 6
	}
	return 2
}

// NewSpaceFromName parses the element kind identifier and builds the space
func NewSpaceFromName(name string, m *mesh.Mesh, q *quadrature.Quadrature) (*Space, error) {
	k, err := element.ParseKind(name)
	if err != nil {
		return nil, err
	}
	return NewSpace(k, m, q)
}

// NewSpace builds the elements of kind k over m. q is the rule shared by all
// integrations on this space and must reach k's minimum degree.
func NewSpace(k element.Kind, m *mesh.Mesh, q *quadrature.Quadrature) (*Space, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("element kind %d: %w", k, utils.ErrInvalidArgument)
	}
	if m == nil {
		return nil, &utils.NilSourceError{What: "mesh"}
	}
	if q == nil {
		return nil, &utils.NilSourceError{What: "quadrature"}
	}
	if q.Degree() < k.MinQuadratureDegree() {
		return nil, fmt.Errorf("%s space needs quadrature degree >= %d, got %d: %w",
			k, k.MinQuadratureDegree(), q.Degree(), utils.ErrInvalidArgument)
	}

	sp := &Space{
		Mesh:       m,
		Kind:       k,
		Quadrature: q,
		Elements:   make([]element.FiniteElement, m.NumElements()),
	}
	nv := m.NumVertices()
	for e := range m.EToV {
		// the quadrature's tolerance applies on top of the element's own check
		tri := m.Triangle(e)
		if err := tri.CheckDegenerate(q.DegenerateTolerance()); err != nil {
			return nil, fmt.Errorf("building %s element %d: %w", k, e, err)
		}
		fe, err := element.NewFiniteElement(k, tri, m.EToV[e], nv+e)
		if err != nil {
			return nil, fmt.Errorf("building %s element %d: %w", k, e, err)
		}
		sp.Elements[e] = fe
	}
	return sp, nil
}

// NumDOF is the length of a scalar field on the space
func (sp *Space) NumDOF() int {
	if sp.Kind == element.P1b {
		return sp.Mesh.NumVertices() + sp.Mesh.NumElements()
	}
	return sp.Mesh.NumVertices()
}

// IsBubble reports whether dof belongs to an element interior
func (sp *Space) IsBubble(dof int) bool {
	return dof >= sp.Mesh.NumVertices()
}

func (sp *Space) String() string {
	props := sp.Kind.Properties()
	return fmt.Sprintf("Space: %s (%s), %d elements, %d DOFs, %s",
		props.Name, props.ShortName, len(sp.Elements), sp.NumDOF(), sp.Quadrature)
}
